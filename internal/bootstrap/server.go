package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightorders/api"
	"github.com/Domenick1991/flightorders/config"
	"github.com/Domenick1991/flightorders/internal/service/flights"
	"github.com/Domenick1991/flightorders/internal/service/orders"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails. Shutdown drains in-flight requests for up to 5 seconds.
func Run(ctx context.Context, cfg *config.Config, flightSvc flights.FlightUseCase, orderSvc orders.OrderUseCase) error {
	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: NewRouter(flightSvc, orderSvc),
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	})

	return g.Wait()
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(flightSvc flights.FlightUseCase, orderSvc orders.OrderUseCase) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	apiGroup := router.Group("/api")
	flightsGroup := apiGroup.Group("/flights")
	ordersGroup := apiGroup.Group("/orders")
	adminGroup := apiGroup.Group("/admin")

	api.NewFlightHandler(flightSvc).Register(flightsGroup, adminGroup)
	api.NewOrderHandler(orderSvc).Register(flightsGroup, ordersGroup)

	return router
}
