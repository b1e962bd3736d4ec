package httperr

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a use case error onto the HTTP response.
func Respond(c *gin.Context, err error) {
	_ = c.Error(err)

	if ve, ok := AsValidation(err); ok {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_error",
			Message: ve.Message,
			Field:   ve.Field,
		})
		return
	}

	if IsConflict(err) {
		Write(c, http.StatusConflict, "slot_taken", "This time was just booked, please choose another.")
		return
	}

	if IsDataUnavailable(err) {
		c.Header("Retry-After", "5")
		Write(c, http.StatusServiceUnavailable, "availability_unavailable", "Availability could not be loaded, try again.")
		return
	}

	var be BusinessError
	if errors.As(err, &be) {
		switch {
		case be.Code == "forbidden":
			Forbidden(c, be.Code, "Not allowed for this resource.")
		case strings.HasSuffix(be.Code, "_not_found"):
			NotFound(c, be.Code, "Not found.")
		case be.Code == "outside_availability":
			Write(c, http.StatusUnprocessableEntity, be.Code, "The requested time is not offered.")
		default:
			BadRequest(c, be.Code, "Request cannot be processed.")
		}
		return
	}

	Internal(c, "internal_error", "Unexpected error.")
}
