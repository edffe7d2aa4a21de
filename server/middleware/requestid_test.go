package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/bkocaman/harbor/logger"
)

func requestIDEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.Use(RequestID())
	engine.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString(logger.FieldRequestID))
	})
	return engine
}

func TestRequestIDEchoesCallerHeader(t *testing.T) {
	engine := requestIDEngine()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(HeaderRequestID, "upstream-42")
	engine.ServeHTTP(w, req)

	if got := w.Header().Get(HeaderRequestID); got != "upstream-42" {
		t.Errorf("response header = %q, want the caller's id", got)
	}
	if w.Body.String() != "upstream-42" {
		t.Errorf("context id = %q, want the caller's id", w.Body.String())
	}
}

func TestRequestIDMintsWhenAbsent(t *testing.T) {
	engine := requestIDEngine()

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))

	id := w.Header().Get(HeaderRequestID)
	if id == "" {
		t.Fatal("no request id minted")
	}
	if w.Body.String() != id {
		t.Errorf("context id %q does not match header %q", w.Body.String(), id)
	}
}
