package router

import (
	"protest-tracker/config"
	"protest-tracker/internal/auth"
	"protest-tracker/internal/cache"
	"protest-tracker/internal/database"
	"protest-tracker/internal/handler"
	"protest-tracker/internal/metrics"
	"protest-tracker/internal/middleware"
	"protest-tracker/internal/repository"
	"protest-tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Dependencies are the process-wide resources shared by every request.
type Dependencies struct {
	Pool   *pgxpool.Pool
	Redis  *redis.Client // nil disables the list cache
	Schema database.SchemaInitializer
	Config *config.Config
}

func InitRouter(deps Dependencies) *gin.Engine {
	handler.RegisterValidators()

	r := gin.New()
	r.ContextWithFallback = true
	r.Use(middleware.RequestID(), middleware.AccessLog(), gin.Recovery(),
		middleware.CORSMiddleware(deps.Config.Server.CORSAllowedOrigins))

	tokens := auth.NewJWTIssuer(deps.Config.Auth.JWTSecret, deps.Config.Auth.TokenTTL)
	listCache := cache.NewProtestListCache(deps.Redis, deps.Config.Redis.CacheTTL)

	organizers := handler.NewOrganizerHandler(service.NewOrganizerService(
		repository.NewOrganizerRepository(deps.Pool), auth.NewBcryptHasher(0), tokens))
	protests := handler.NewProtestHandler(service.NewProtestService(
		repository.NewProtestRepository(deps.Pool), listCache))

	// 健康檢查與監控不等待 schema
	handler.NewHealthHandler().RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{})))

	ready := middleware.SchemaReadiness(deps.Schema)
	public := r.Group("/api", ready)
	authed := r.Group("/api", ready, middleware.AuthMiddleware(tokens))

	organizers.RegisterRoutes(public, authed)
	protests.RegisterRoutes(public, authed)

	return r
}

