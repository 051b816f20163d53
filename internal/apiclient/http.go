package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"
	"time"

	"seatreserve/internal/auth"
	"seatreserve/internal/reservations"
	"seatreserve/internal/shared/apperrors"
	"seatreserve/internal/shared/utils/response"
	"seatreserve/internal/spaces"
)

// HTTPClient talks to the reservation API over HTTP and unwraps its response envelope.
type HTTPClient struct {
	BaseURL    *url.URL
	HTTPClient *http.Client

	mu    sync.RWMutex
	token string
}

// NewHTTPClient parses baseURL (e.g. http://localhost:8080/api/v1). A zero timeout means 10s.
func NewHTTPClient(baseURL string, timeout time.Duration) (*HTTPClient, error) {
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid baseURL: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("invalid baseURL %q: scheme and host are required", baseURL)
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &HTTPClient{
		BaseURL:    parsed,
		HTTPClient: &http.Client{Timeout: timeout},
	}, nil
}

func (c *HTTPClient) UseToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *HTTPClient) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *HTTPClient) ListBuildings(ctx context.Context) ([]spaces.Building, error) {
	var out []spaces.Building
	err := c.do(ctx, "list buildings", http.MethodGet, "/buildings", nil, nil, &out)
	return out, err
}

func (c *HTTPClient) ListFloors(ctx context.Context, buildingID string) ([]spaces.Floor, error) {
	var out []spaces.Floor
	err := c.do(ctx, "list floors", http.MethodGet, "/buildings/"+url.PathEscape(buildingID)+"/floors", nil, nil, &out)
	return out, err
}

func (c *HTTPClient) ListSpaces(ctx context.Context, floorID string) ([]spaces.Space, error) {
	var out []spaces.Space
	err := c.do(ctx, "list spaces", http.MethodGet, "/floors/"+url.PathEscape(floorID)+"/spaces", nil, nil, &out)
	return out, err
}

func (c *HTTPClient) SearchAvailableSpaces(ctx context.Context, q spaces.SearchQuery) ([]spaces.Space, error) {
	var out []spaces.Space
	err := c.do(ctx, "search available spaces", http.MethodGet, "/reservations/available", searchParams(q), nil, &out)
	return out, err
}

func (c *HTTPClient) GetSpace(ctx context.Context, id string) (*spaces.Space, error) {
	var out spaces.Space
	if err := c.do(ctx, "get space", http.MethodGet, "/spaces/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ListReservations(ctx context.Context) (*reservations.Partitions, error) {
	var out reservations.Partitions
	if err := c.do(ctx, "list reservations", http.MethodGet, "/reservations", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetReservation(ctx context.Context, id string) (*reservations.Reservation, error) {
	var out reservations.Reservation
	if err := c.do(ctx, "get reservation", http.MethodGet, "/reservations/"+url.PathEscape(id), nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CreateReservation(ctx context.Context, in reservations.NewReservation) (*reservations.Reservation, error) {
	body := reservations.CreateReservationRequest{
		SpaceID:   in.SpaceID,
		StartTime: in.StartTime.UTC().Format(time.RFC3339),
		EndTime:   in.EndTime.UTC().Format(time.RFC3339),
		Notes:     in.Notes,
	}
	var out reservations.Reservation
	if err := c.do(ctx, "create reservation", http.MethodPost, "/reservations", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CancelReservation(ctx context.Context, id string) error {
	return c.do(ctx, "cancel reservation", http.MethodDelete, "/reservations/"+url.PathEscape(id), nil, nil, nil)
}

func (c *HTTPClient) CheckIn(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	var out reservations.CheckInUpdate
	if err := c.do(ctx, "check in", http.MethodPost, "/reservations/"+url.PathEscape(id)+"/checkin", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) CheckOut(ctx context.Context, id string) (*reservations.CheckInUpdate, error) {
	var out reservations.CheckInUpdate
	if err := c.do(ctx, "check out", http.MethodPost, "/reservations/"+url.PathEscape(id)+"/checkout", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, email, password string) (*auth.Session, error) {
	body := auth.LoginRequest{Email: email, Password: password}
	var out auth.Session
	if err := c.do(ctx, "login", http.MethodPost, "/auth/login", nil, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, "logout", http.MethodPost, "/auth/logout", nil, nil, nil)
}

// searchParams encodes the query the way the API binds it; amenities are comma joined.
func searchParams(q spaces.SearchQuery) url.Values {
	params := url.Values{}
	if !q.StartTime.IsZero() {
		params.Set("startTime", q.StartTime.UTC().Format(time.RFC3339))
	}
	if !q.EndTime.IsZero() {
		params.Set("endTime", q.EndTime.UTC().Format(time.RFC3339))
	}
	if q.BuildingID != "" {
		params.Set("buildingId", q.BuildingID)
	}
	if q.FloorID != "" {
		params.Set("floorId", q.FloorID)
	}
	if q.SpaceType != "" {
		params.Set("spaceType", string(q.SpaceType))
	}
	if len(q.Amenities) > 0 {
		params.Set("amenities", strings.Join(q.Amenities, ","))
	}
	return params
}

// do performs one request. Non-2xx answers become tagged errors; out receives the envelope's data.
func (c *HTTPClient) do(ctx context.Context, op, method, reqPath string, query url.Values, body, out any) error {
	u := *c.BaseURL
	u.Path = path.Join(c.BaseURL.Path, reqPath)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		jsonBytes, err := json.Marshal(body)
		if err != nil {
			return apperrors.Backend(op, fmt.Errorf("failed to marshal request body: %w", err))
		}
		reqBody = bytes.NewReader(jsonBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return apperrors.Backend(op, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return apperrors.Backend(op, fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	var env response.Envelope
	decodeErr := json.NewDecoder(resp.Body).Decode(&env)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := http.StatusText(resp.StatusCode)
		if decodeErr == nil {
			if text := env.ErrorText(); text != "" {
				message = text
			}
		}
		return apperrors.FromHTTPStatus(op, resp.StatusCode, message)
	}
	if decodeErr != nil && !errors.Is(decodeErr, io.EOF) {
		return apperrors.Backend(op, fmt.Errorf("failed to decode response: %w", decodeErr))
	}

	if out == nil || len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return apperrors.Backend(op, fmt.Errorf("failed to decode %s data: %w", op, err))
	}
	return nil
}
