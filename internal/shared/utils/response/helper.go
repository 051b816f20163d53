package response

import (
	"seatreserve/internal/shared/apperrors"

	"github.com/gin-gonic/gin"
)

func RespondJSON(c *gin.Context, status string, code int, message string, data interface{}, errors interface{}) {
	c.JSON(code, StandardApiResponse{
		Status:     status,
		StatusCode: code,
		Message:    message,
		Data:       data,
		Errors:     errors,
	})
}

// RespondError answers with the status code matching the error's kind.
func RespondError(c *gin.Context, message string, err error) {
	RespondJSON(c, "error", apperrors.HTTPStatus(err), message, nil, apperrors.Message(err))
}
