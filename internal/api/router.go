package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/relgraphio/relgraph/internal/dbpool"
	"github.com/relgraphio/relgraph/internal/middleware"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log         *logrus.Logger
	Pool        *dbpool.Pool
	Graph       GraphService
	Paths       PathService
	Analyze     AnalyzeService
	Schemas     SchemaService
	CORSOrigins []string
	Version     string
}

// Router-level limits.
const (
	maxBodySize = 1 << 20 // 1 MB; requests are small parameter payloads
	rateLimit   = 100     // requests per second per IP
	rateBurst   = 200     // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Schemas, log, deps.Version)
	graph := NewGraphHandler(deps.Graph, log)
	paths := NewPathHandler(deps.Paths, log)
	analyze := NewAnalyzeHandler(deps.Analyze, log)
	schemas := NewSchemaHandler(deps.Schemas, log)

	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// Schema registry.
	api.GET("/schemas", schemas.List)
	api.GET("/schemas/:schema", schemas.Get)

	// Traversal and aggregation.
	api.POST("/graph/:schema/traverse", graph.Traverse)
	api.POST("/graph/:schema/aggregate", graph.Aggregate)
	api.POST("/graph/:schema/estimate", graph.Estimate)
	api.GET("/graph/:schema/neighbors/:id", graph.Neighbors)

	// Shortest paths.
	api.POST("/graph/:schema/path", paths.Path)
	api.POST("/graph/:schema/paths", paths.Paths)

	// Network analysis.
	api.POST("/graph/:schema/centrality", analyze.Centrality)
	api.POST("/graph/:schema/components", analyze.Components)
	api.POST("/graph/:schema/resilience", analyze.Resilience)
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(r.Group("/api/v1"), deps)

	return r
}
