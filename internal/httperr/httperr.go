package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HTTPError struct {
	Code    string       `json:"error_code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
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

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Unprocessable(c *gin.Context, code, message string) {
	Write(c, http.StatusUnprocessableEntity, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

// From maps a domain error to its stable status code. A business
// rejection about an occupied time window comes back 409, every other
// business rejection 422.
func From(c *gin.Context, err error) {
	if ve, ok := IsValidation(err); ok {
		c.JSON(http.StatusBadRequest, HTTPError{
			Code:    "validation_failed",
			Message: "One or more fields are invalid.",
			Fields:  ve.Fields,
		})
		return
	}
	if IsForbidden(err) {
		Forbidden(c, err.Error(), "You do not own this resource.")
		return
	}
	if IsNotFound(err) {
		NotFound(c, err.Error(), "Resource not found.")
		return
	}
	if IsBusiness(err, "slot_occupied") {
		Conflict(c, "slot_occupied", "The requested time is already booked.")
		return
	}
	var be BusinessError
	if errors.As(err, &be) {
		Unprocessable(c, be.Code, "The request is not valid in the current state.")
		return
	}
	Internal(c, "internal_error", "Unexpected error.")
}
