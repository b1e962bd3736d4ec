package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/booking-slots/internal/httperr"
	"github.com/BruksfildServices01/booking-slots/internal/middleware"
	"github.com/BruksfildServices01/booking-slots/internal/wallclock"
)

func callerID(c *gin.Context) string {
	return middleware.CallerID(c)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(400, gin.H{
			"error_code": "invalid_request",
			"message":    err.Error(),
		})
		return false
	}
	return true
}

// queryDate parses a required "YYYY-MM-DD" query parameter.
func queryDate(c *gin.Context, name string) (wallclock.Date, bool) {
	raw := c.Query(name)
	if raw == "" {
		httperr.Respond(c, httperr.ErrValidation(name, "is required"))
		return wallclock.Date{}, false
	}
	d, err := wallclock.ParseDate(raw)
	if err != nil {
		httperr.Respond(c, httperr.ErrValidation(name, "must be YYYY-MM-DD"))
		return wallclock.Date{}, false
	}
	return d, true
}
