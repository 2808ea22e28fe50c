package ginserver

import (
	"net/http"
	"net/http/httptest"
	"testing"

	gin "github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	domainaccommodation "stayhub/internal/domain/accommodation"
	domainreservation "stayhub/internal/domain/reservation"
	"stayhub/internal/domain/shared/fault"
)

func TestWriteErrorStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", domainaccommodation.ErrNotFound, http.StatusNotFound},
		{"permission", fault.New(fault.Permission, "nope"), http.StatusForbidden},
		{"validation", domainreservation.ErrIllegalTransition, http.StatusBadRequest},
		{"availability", domainreservation.ErrDatesUnavailable, http.StatusConflict},
		{"state", domainreservation.ErrTerminalState, http.StatusConflict},
		{"infrastructure", fault.New(fault.Infrastructure, "db down"), http.StatusInternalServerError},
		{"unclassified", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			recorder := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(recorder)
			writeError(c, tc.err)
			assert.Equal(t, tc.status, recorder.Code)
		})
	}
}

func TestInfrastructureDetailsAreHidden(t *testing.T) {
	gin.SetMode(gin.TestMode)
	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)

	writeError(c, fault.Wrap(fault.Infrastructure, "store: save failed", assert.AnError))
	assert.NotContains(t, recorder.Body.String(), "save failed")
	assert.Contains(t, recorder.Body.String(), "internal error")
}
