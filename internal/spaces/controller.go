package spaces

import (
	"net/http"

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

func (c *Controller) ListBuildings(ctx *gin.Context) {
	buildings, err := c.service.ListBuildings(ctx.Request.Context())
	if err != nil {
		response.RespondError(ctx, "Failed to get buildings", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Buildings retrieved successfully", buildings, nil)
}

func (c *Controller) GetBuilding(ctx *gin.Context) {
	building, err := c.service.GetBuilding(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get building", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Building retrieved successfully", building, nil)
}

func (c *Controller) ListFloors(ctx *gin.Context) {
	floors, err := c.service.ListFloors(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get floors", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Floors retrieved successfully", floors, nil)
}

func (c *Controller) ListSpaces(ctx *gin.Context) {
	spaces, err := c.service.ListSpaces(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get spaces", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Spaces retrieved successfully", spaces, nil)
}

func (c *Controller) GetSpace(ctx *gin.Context) {
	space, err := c.service.GetSpaceDetails(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		response.RespondError(ctx, "Failed to get space", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Space retrieved successfully", space, nil)
}

func (c *Controller) ListSpaceTypes(ctx *gin.Context) {
	response.RespondJSON(ctx, "success", http.StatusOK, "Space types retrieved successfully", c.service.SpaceTypes(), nil)
}

func (c *Controller) SearchAvailable(ctx *gin.Context) {
	var req SearchAvailableRequest
	if err := ctx.ShouldBindQuery(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	query, err := req.ToQuery()
	if err != nil {
		response.RespondError(ctx, "Validation failed", err)
		return
	}

	spaces, err := c.service.SearchAvailable(ctx.Request.Context(), query)
	if err != nil {
		response.RespondError(ctx, "Failed to search available spaces", err)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Available spaces retrieved successfully", spaces, nil)
}
