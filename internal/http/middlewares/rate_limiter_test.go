package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func TestRateLimiterBlocksOverLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Minute)

	r := gin.New()
	r.GET("/", rl.Middleware(KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	statuses := make([]int, 0, 3)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"

		r.ServeHTTP(w, req)
		statuses = append(statuses, w.Code)
	}

	if statuses[0] != http.StatusOK || statuses[1] != http.StatusOK {
		t.Errorf("first two requests = %v, want 200s", statuses[:2])
	}

	if statuses[2] != http.StatusTooManyRequests {
		t.Errorf("third request = %d, want 429", statuses[2])
	}
}

func TestRateLimiterSeparateKeys(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, time.Minute)

	r := gin.New()
	r.GET("/", rl.Middleware(KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	for _, addr := range []string{"10.0.0.1:1", "10.0.0.2:1"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = addr

		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request from %s = %d, want 200", addr, w.Code)
		}
	}
}

func TestRateLimiterWindowReset(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(1, 10*time.Millisecond)

	r := gin.New()
	r.GET("/", rl.Middleware(KeyByIP), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	send := func() int {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1"
		r.ServeHTTP(w, req)
		return w.Code
	}

	if code := send(); code != http.StatusOK {
		t.Fatalf("first request = %d, want 200", code)
	}

	if code := send(); code != http.StatusTooManyRequests {
		t.Fatalf("second request = %d, want 429", code)
	}

	time.Sleep(20 * time.Millisecond)

	if code := send(); code != http.StatusOK {
		t.Errorf("request after window = %d, want 200", code)
	}
}
