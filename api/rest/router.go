package rest

import (
	"context"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/hedisam/txchain/internal/custompromauto"
)

// RouterConfig holds the knobs of the HTTP surface.
type RouterConfig struct {
	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

// NewRouter mounts every API route on a new gin engine. ctx bounds background work started by the middleware.
func NewRouter(ctx context.Context, logger *logrus.Logger, server *Server, stream *StreamHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		AccessLogMiddleware(logger),
		PrometheusMiddleware(),
		cors.New(corsConfig(cfg.CORSOrigins)),
	)

	router.GET("/metrics", gin.WrapH(custompromauto.Handler()))

	RegisterFunc(logger, router, http.MethodGet, "/balance/:address", server.GetBalance)
	RegisterFunc(logger, router, http.MethodGet, "/balances", server.ListBalances)
	RegisterFunc(logger, router, http.MethodGet, "/transactions", server.ListTransactions)
	RegisterFunc(logger, router, http.MethodGet, "/transactions/tail", server.GetTail)
	router.GET("/transactions/stream", stream.ServeWS)

	send := router.Group("/", RateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst))
	RegisterFunc(logger, send, http.MethodPost, "/send", server.Send)

	return router
}

// CheckOrigin returns a websocket origin check accepting the same origins as the CORS configuration.
func CheckOrigin(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 || slices.Contains(origins, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || slices.Contains(origins, origin)
	}
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", RequestIDHeader},
		ExposeHeaders: []string{"Content-Length", RequestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
		return cfg
	}

	cfg.AllowOrigins = origins
	cfg.AllowCredentials = true
	return cfg
}
