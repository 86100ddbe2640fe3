package service

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthchecker(t *testing.T) {
	hc := NewHealthchecker(8080)
	assert.Equal(t, "0.0.0.0:8080", hc.Server.Addr)

	rec := httptest.NewRecorder()
	hc.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}
