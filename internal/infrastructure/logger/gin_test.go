package logger

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestGinRecoveryReturns500(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(GinLogger(), GinRecovery(true))
	r.GET("/boom", func(c *gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}
}

func TestIsBrokenPipeError(t *testing.T) {
	if !isBrokenPipeError(errors.New("write: Broken Pipe")) {
		t.Fatalf("broken pipe not detected")
	}
	if !isBrokenPipeError(errors.New("read: connection reset by peer")) {
		t.Fatalf("connection reset not detected")
	}
	if isBrokenPipeError(errors.New("timeout")) {
		t.Fatalf("timeout reported as broken pipe")
	}
}
