package server

import (
	"context"
	"testbuddy-checkout/internal/config"
	"testbuddy-checkout/internal/handler"
	mw "testbuddy-checkout/internal/middleware"
	"testbuddy-checkout/internal/sdk"
	"testbuddy-checkout/internal/service"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

type Server struct {
	echo            *echo.Echo
	checkoutHandler *handler.CheckoutHandler
	rateLimit       *config.RateLimit
}

func NewServer(cfg *config.Config, checkoutService service.CheckoutService, loader sdk.Loader) *Server {
	e := echo.New()
	e.HideBanner = true

	e.File("/", "web/index.html")

	e.Use(middleware.RequestLogger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	s := &Server{
		echo:            e,
		checkoutHandler: handler.NewCheckoutHandler(checkoutService, loader, cfg.SDK.ScriptURL, cfg.BaseURL),
		rateLimit:       &cfg.RateLimit,
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.echo.GET("/sdk/checkout.js", s.checkoutHandler.Script)

	api := s.echo.Group("/api")

	api.GET("/health", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"status": "ok"})
	})

	// -------- checkout --------
	checkout := api.Group("/checkout", mw.RateLimit(s.rateLimit))
	checkout.POST("", s.checkoutHandler.Begin)
	checkout.POST("/:id/verify", s.checkoutHandler.Verify).Name = "checkout.verify"
}

func (s *Server) Handler() *echo.Echo {
	return s.echo
}

func (s *Server) Start(address string) error {
	return s.echo.Start(address)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
