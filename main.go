package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/nesba5git/onpointflies/handlers"
	"github.com/nesba5git/onpointflies/internal/auth"
	"github.com/nesba5git/onpointflies/internal/config"
	"github.com/nesba5git/onpointflies/internal/database"
	"github.com/nesba5git/onpointflies/internal/shop"
	"github.com/nesba5git/onpointflies/internal/storage"
	"github.com/nesba5git/onpointflies/internal/users"
	"github.com/nesba5git/onpointflies/pkg/logger"
	"github.com/nesba5git/onpointflies/pkg/metrics"
	"github.com/nesba5git/onpointflies/pkg/middleware"
)

var startTime = time.Now()

func main() {
	// initialize logging (can be controlled with LOG_LEVEL env: debug|info|warn|error|fatal)
	logger.Init(os.Getenv("LOG_LEVEL"))
	logger.Debugf("startup: LOG_LEVEL=%s", logger.LevelString())

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	logger.Infof("config loaded: auth0=%v mongo=%v redis=%v", cfg.Auth0.Domain != "", cfg.MongoDB.URI != "", cfg.Redis.Host != "")

	ctx := context.Background()

	r := gin.New()
	r.Use(middleware.CORS())
	r.Use(gin.Logger(), gin.Recovery())

	// Connect to Redis early so the rate limiter and the optional
	// Redis-backed user store can use it.
	var redisClient *redis.Client
	if cfg.Redis.Host != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.Warnf("failed to connect to Redis (%s:%s): %v", cfg.Redis.Host, cfg.Redis.Port, err)
			redisClient = nil
		} else {
			logger.Infof("Connected to Redis: %s:%s", cfg.Redis.Host, cfg.Redis.Port)
		}
	}

	// Optional global rate limiter (per-user when authenticated, otherwise per-IP)
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.UseRedis && redisClient != nil {
			win := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
			r.Use(middleware.RedisRateLimitMiddleware(redisClient, cfg.RateLimit.RPS, cfg.RateLimit.Burst, win))
		} else {
			r.Use(middleware.RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
		}
	}

	// Token verifier + userinfo fallback. A missing Auth0 config does
	// not crash startup: protected routes answer server_misconfigured.
	var verifier auth.TokenVerifier
	var userInfo auth.UserInfoLookup
	if err := cfg.Auth0.Validate(); err != nil {
		logger.Warnf("auth disabled: %v", err)
	} else {
		v, err := auth.NewVerifier(ctx, cfg.Auth0.JWKSURL(), cfg.Auth0.Issuer(), cfg.Auth0.ClientID)
		if err != nil {
			logger.Warnf("failed to initialize token verifier: %v", err)
		} else {
			verifier = v
		}
		ui, err := auth.NewOIDCUserInfo(ctx, cfg.Auth0.Issuer())
		if err != nil {
			logger.Warnf("userinfo lookup unavailable: %v", err)
		} else {
			userInfo = ui
		}
	}

	// MongoDB with retry/backoff to tolerate startup races.
	var mongoClient *mongo.Client
	if cfg.MongoDB.URI != "" {
		const maxAttempts = 5
		backoff := time.Second
		var errConn error
		for attempt := 1; attempt <= maxAttempts; attempt++ {
			mongoClient, errConn = database.ConnectMongo(ctx, cfg.MongoDB.URI, cfg.MongoDB.Timeout)
			if errConn == nil {
				break
			}
			logger.Warnf("attempt %d/%d: failed to connect to MongoDB: %v", attempt, maxAttempts, errConn)
			if attempt < maxAttempts {
				time.Sleep(backoff)
				backoff *= 2
			}
		}
		if errConn != nil {
			logger.Warnf("could not connect to MongoDB after %d attempts: %v", maxAttempts, errConn)
			mongoClient = nil
		} else {
			defer func() { _ = mongoClient.Disconnect(ctx) }()
		}
	}

	// User record store: Redis when selected, else MongoDB, else an
	// in-memory fallback so the service still comes up in dev.
	var userStore users.Store
	switch {
	case cfg.Redis.UseUserStore && redisClient != nil:
		userStore = users.NewRedisStore(redisClient, "user:")
		logger.Infof("Using Redis for user records")
	case mongoClient != nil:
		userStore = users.NewMongoStore(mongoClient.Database(cfg.MongoDB.Database).Collection("users"))
		logger.Infof("Using MongoDB for user records")
	default:
		userStore = users.NewMemoryStore()
		logger.Warn("no persistent store configured; user records are in-memory only")
	}
	userSvc := users.NewService(userStore)

	var shopRepo shop.Repository
	if mongoClient != nil {
		shopRepo = shop.NewMongoRepo(mongoClient.Database(cfg.MongoDB.Database))
	} else {
		shopRepo = shop.NewMemoryRepo()
		logger.Warn("no MongoDB configured; shop data is in-memory only")
	}
	shopSvc := shop.NewService(shopRepo)

	// Upload storage is optional; the handler answers 503 when absent.
	var uploads *storage.MinIOStorage
	if mcfg := storage.LoadMinIOConfig(); mcfg.Endpoint != "" {
		uploads, err = storage.NewMinIOStorage(mcfg)
		if err != nil {
			logger.Warnf("upload storage unavailable: %v", err)
			uploads = nil
		}
	}

	// Identity resolution chain shared by the middleware and diagnostics.
	allow := auth.ParseAllowList(cfg.Auth0.AdminEmails)
	emails := auth.NewEmailResolver(userInfo)
	roles := auth.NewRoleResolver(allow, userStore)
	authn := middleware.NewAuthenticator(verifier, emails, roles)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})

	// readiness: 200 only when the critical dependencies are available
	r.GET("/ready", func(c *gin.Context) {
		ready := true
		deps := map[string]bool{}

		deps["auth"] = verifier != nil
		if cfg.Auth0.Validate() == nil && verifier == nil {
			ready = false
		}

		storageOK := userStore.Ping(c.Request.Context()) == nil
		deps["storage"] = storageOK
		if !storageOK {
			ready = false
		}

		if cfg.RateLimit.UseRedis || cfg.Redis.UseUserStore {
			deps["redis"] = redisClient != nil
			if redisClient == nil {
				ready = false
			}
		} else {
			deps["redis"] = true
		}

		status := gin.H{"deps": deps, "uptime": time.Since(startTime).String()}
		if !ready {
			status["status"] = "not_ready"
			c.JSON(http.StatusServiceUnavailable, status)
			return
		}
		status["status"] = "ready"
		c.JSON(http.StatusOK, status)
	})

	shopHandler := handlers.NewShopHandler(shopSvc, userSvc)
	catalogHandler := handlers.NewCatalogHandler(shopSvc)
	inventoryHandler := handlers.NewInventoryHandler(shopSvc)
	uploadHandler := handlers.NewUploadHandler(uploads)
	debugHandler := handlers.NewDebugHandler(cfg.Auth0, verifier, emails, roles)

	// Public routes: client auth config, catalog and inventory reads,
	// stored assets and the diagnostic report (it authenticates
	// internally and answers 401 to callers without a valid token).
	public := r.Group("/api")
	handlers.RegisterAuthConfig(public, cfg)
	public.GET("/catalog", catalogHandler.List)
	public.GET("/inventory", inventoryHandler.List)
	public.GET("/upload/:key", uploadHandler.Serve)
	public.GET("/auth-debug", debugHandler.Report)

	// Authenticated routes
	authed := r.Group("/api", authn.Middleware())
	handlers.NewUserHandler(userSvc).Register(authed)
	shopHandler.Register(authed)
	authed.POST("/inventory", inventoryHandler.Add)
	authed.PUT("/inventory", inventoryHandler.Update)
	authed.DELETE("/inventory", inventoryHandler.Delete)

	// Admin routes
	admin := r.Group("/api", authn.Middleware(), middleware.RequireAdmin())
	handlers.NewRolesHandler(userSvc).Register(admin)
	admin.POST("/catalog", catalogHandler.Add)
	admin.PUT("/catalog", catalogHandler.Update)
	admin.DELETE("/catalog", catalogHandler.Delete)
	admin.GET("/upload", uploadHandler.List)
	admin.POST("/upload", uploadHandler.Upload)

	handlers.RegisterSwagger(r)

	metrics.RegisterCollectors(prometheus.DefaultRegisterer)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
	logger.Infof("Config summary: auth0=%v mongo=%v redis=%v admin_emails=%d", cfg.Auth0.Domain != "", mongoClient != nil, redisClient != nil, allow.Len())
	logger.Infof("Starting onpointflies API on %s", addr)
	if err := r.Run(addr); err != nil {
		logger.Fatalf("server failed: %v", err)
	}
}
