package middleware

import (
	"net/http"
	"testbuddy-checkout/internal/config"
	"testbuddy-checkout/internal/service"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
)

// RateLimit throttles checkout calls per client IP.
func RateLimit(cfg *config.RateLimit) echo.MiddlewareFunc {
	if !cfg.Enabled {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}

	store := echomw.NewRateLimiterMemoryStoreWithConfig(echomw.RateLimiterMemoryStoreConfig{
		Rate:  rate.Limit(cfg.Rate),
		Burst: cfg.Burst,
	})

	return echomw.RateLimiterWithConfig(echomw.RateLimiterConfig{
		Store: store,
		IdentifierExtractor: func(c echo.Context) (string, error) {
			return c.RealIP(), nil
		},
		DenyHandler: func(c echo.Context, identifier string, err error) error {
			return c.JSON(http.StatusTooManyRequests, map[string]any{
				"error": "too many requests",
				"notices": []service.Notice{
					{Level: service.NoticeError, Message: "Too many attempts. Please wait a moment."},
				},
			})
		},
	})
}
