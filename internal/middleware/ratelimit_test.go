package middleware

import (
	"net/http"
	"net/http/httptest"
	"testbuddy-checkout/internal/config"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestRateLimit(t *testing.T) {
	var tests = []struct {
		name     string
		cfg      config.RateLimit
		expected []int
	}{
		{"Enabled", config.RateLimit{Enabled: true, Rate: 0.001, Burst: 2}, []int{200, 200, 429}},
		{"Disabled", config.RateLimit{Enabled: false}, []int{200, 200, 200}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.POST("/", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, RateLimit(&tt.cfg))

			for i, want := range tt.expected {
				req := httptest.NewRequest(http.MethodPost, "/", nil)
				req.RemoteAddr = "10.0.0.1:1234"
				rec := httptest.NewRecorder()
				e.ServeHTTP(rec, req)

				if rec.Code != want {
					t.Errorf("request %d: expected status %d, got %d", i, want, rec.Code)
				}
			}
		})
	}
}
