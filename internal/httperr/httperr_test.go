package httperr

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func statusOf(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	From(c, err)
	return w.Code, w.Body.String()
}

func TestFromMapsDomainErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", ValidationError{Fields: []FieldError{{Index: 0, Field: "start_time", Message: "must be HH:MM"}}}, http.StatusBadRequest, "validation_failed"},
		{"forbidden", ErrForbidden("not_reservation_teacher"), http.StatusForbidden, "not_reservation_teacher"},
		{"not found", ErrNotFound("reservation_not_found"), http.StatusNotFound, "reservation_not_found"},
		{"occupied slot", ErrBusiness("slot_occupied"), http.StatusConflict, "slot_occupied"},
		{"outside availability", ErrBusiness("slot_unavailable"), http.StatusUnprocessableEntity, "slot_unavailable"},
		{"no credits", ErrBusiness("insufficient_lessons"), http.StatusUnprocessableEntity, "insufficient_lessons"},
		{"bad transition", ErrBusiness("invalid_status"), http.StatusUnprocessableEntity, "invalid_status"},
		{"unexpected", errors.New("pq: connection refused"), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := statusOf(t, tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantCode)
		})
	}
}

func TestFromIncludesValidationFields(t *testing.T) {
	_, body := statusOf(t, ValidationError{Fields: []FieldError{
		{Index: 2, Field: "weekday", Message: "must be between 0 and 6"},
	}})
	assert.Contains(t, body, `"index":2`)
	assert.Contains(t, body, `"weekday"`)
}

func TestIsBusinessMatchesCode(t *testing.T) {
	err := ErrBusiness("too_soon")
	assert.True(t, IsBusiness(err, "too_soon"))
	assert.False(t, IsBusiness(err, "slot_occupied"))
	assert.False(t, IsBusiness(errors.New("too_soon"), "too_soon"))
}
