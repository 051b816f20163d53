package response

import "encoding/json"

type StandardApiResponse struct {
	Status     string      `json:"status"`           // "success" or "error"
	StatusCode int         `json:"status_code"`      // HTTP status code
	Message    string      `json:"message"`          // Human-readable message
	Data       interface{} `json:"data,omitempty"`   // Payload for success
	Errors     interface{} `json:"errors,omitempty"` // Validation or error details
}

// Envelope is the decoding side of StandardApiResponse; Data is left raw for the caller.
type Envelope struct {
	Status     string          `json:"status"`
	StatusCode int             `json:"status_code"`
	Message    string          `json:"message"`
	Data       json.RawMessage `json:"data,omitempty"`
	Errors     json.RawMessage `json:"errors,omitempty"`
}

// ErrorText returns the most specific error text the envelope carries.
func (e Envelope) ErrorText() string {
	var text string
	if len(e.Errors) > 0 && json.Unmarshal(e.Errors, &text) == nil && text != "" {
		return text
	}
	return e.Message
}
