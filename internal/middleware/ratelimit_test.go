package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

func rateLimitedRouter(rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited", func(c *gin.Context) {
		c.Set("userId", "acc-1")
	}, rl.ByUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimiterAllowsWithinBurst(t *testing.T) {
	rl := NewRateLimiter(60, 3)
	defer rl.Stop()
	router := rateLimitedRouter(rl)

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}
}

func TestRateLimiterRejectsBeyondBurst(t *testing.T) {
	rl := NewRateLimiter(60, 2)
	defer rl.Stop()
	router := rateLimitedRouter(rl)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i+1, w.Code)
		}
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/limited", nil))
	if w.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 after burst exhausted, got %d", w.Code)
	}
	if w.Header().Get("Retry-After") == "" {
		t.Error("expected Retry-After header on 429 response")
	}
}

func TestRateLimiterKeysAreIndependent(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	defer rl.Stop()

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/limited/:user", func(c *gin.Context) {
		c.Set("userId", c.Param("user"))
	}, rl.ByUser(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/limited/acc-1", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/limited/acc-2", nil))

	if first.Code != http.StatusOK || second.Code != http.StatusOK {
		t.Errorf("expected both users to have their own bucket, got %d and %d", first.Code, second.Code)
	}
	if rl.Len() != 2 {
		t.Errorf("expected 2 tracked keys, got %d", rl.Len())
	}
}

func TestRateLimiterCleanupDropsIdleKeys(t *testing.T) {
	rl := NewRateLimiter(60, 1)
	defer rl.Stop()

	rl.get("acc-1")
	rl.get("acc-2")
	if rl.Len() != 2 {
		t.Fatalf("expected 2 tracked keys, got %d", rl.Len())
	}

	time.Sleep(5 * time.Millisecond)
	rl.cleanup(time.Millisecond)

	if rl.Len() != 0 {
		t.Errorf("expected idle keys to be swept, got %d", rl.Len())
	}
}
