package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Raghu4002/railway-reservation/api"
	"github.com/Raghu4002/railway-reservation/config"
	"github.com/Raghu4002/railway-reservation/internal/service/booking"
	"github.com/Raghu4002/railway-reservation/internal/service/locations"
	"github.com/Raghu4002/railway-reservation/internal/service/trains"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, trainSvc trains.TrainUseCase, bookingSvc booking.BookingUseCase, locationSvc locations.LocationUseCase) error {
	httpServer := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: newRouter(cfg, trainSvc, bookingSvc, locationSvc),
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpServer.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(cfg *config.Config, trainSvc trains.TrainUseCase, bookingSvc booking.BookingUseCase, locationSvc locations.LocationUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestID(), api.RequestLogger())

	api.NewBookingHandler(bookingSvc).Register(router.Group("/bookings", api.Authenticate()))
	api.NewTrainHandler(trainSvc).Register(router.Group("/trains", api.AuthOptional()))
	api.NewLocationHandler(locationSvc).Register(router.Group("/locations", api.AuthOptional()))

	if cfg.HTTP.SwaggerDir != "" {
		router.StaticFS("/swagger", http.Dir(cfg.HTTP.SwaggerDir))
		router.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return router
}
