package gateway

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"suzurigw/product"
)

type Server struct {
	e        *echo.Echo
	port     string
	logger   *logrus.Logger
	products *product.Service
}

func NewServer(e *echo.Echo, port string, products *product.Service, logger *logrus.Logger) *Server {
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORSWithConfig(middleware.DefaultCORSConfig))

	s := &Server{e: e, port: port, logger: logger, products: products}

	e.POST("/api/v1/products", s.createProduct)
	e.GET("/api/v1/items", s.listItems)
	e.GET("/api/v1/my-products", s.listUserProducts)
	e.POST("/api/v1/upload", s.saveUpload)
	e.GET("/healthz", s.health)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	return s
}

func (s *Server) Run(stopCh <-chan os.Signal, shutDownTime time.Duration) error {
	go func() {
		if err := s.e.Start(s.port); err != nil {
			s.logger.Infof("shutting down the server: %v", err)
		}
	}()

	<-stopCh
	ctx, cancel := context.WithTimeout(context.Background(), shutDownTime)
	defer cancel()
	if err := s.e.Shutdown(ctx); err != nil {
		s.logger.Errorln(err)
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
