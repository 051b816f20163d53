package reservations

import (
	"net/http"

	"seatreserve/internal/shared/middleware"
	"seatreserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) ListMine(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	partitions, err := c.service.ListMine(ctx.Request.Context(), userID)
	if err != nil {
		response.RespondError(ctx, "Failed to get reservations", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservations retrieved successfully", partitions, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	reservation, err := c.service.Get(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get reservation", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation retrieved successfully", reservation, nil)
}

func (c *Controller) Create(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateReservationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	in, err := req.ToNewReservation(userID)
	if err != nil {
		response.RespondError(ctx, "Validation failed", err)
		return
	}

	reservation, err := c.service.Create(ctx.Request.Context(), in)
	if err != nil {
		response.RespondError(ctx, "Failed to create reservation", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

func (c *Controller) Cancel(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.Cancel(ctx.Request.Context(), userID, ctx.Param("id")); err != nil {
		response.RespondError(ctx, "Failed to cancel reservation", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Reservation cancelled successfully", gin.H{"id": ctx.Param("id")}, nil)
}

func (c *Controller) CheckIn(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	update, err := c.service.CheckIn(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to check in", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checked in successfully", update, nil)
}

func (c *Controller) CheckOut(ctx *gin.Context) {
	userID, ok := middleware.UserID(ctx)
	if !ok {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	update, err := c.service.CheckOut(ctx.Request.Context(), userID, ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to check out", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Checked out successfully", update, nil)
}
