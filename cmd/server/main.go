package main // Entry point package

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/styleshoehub/storefront-gateway/internal/auth"
	"github.com/styleshoehub/storefront-gateway/internal/cart"
	"github.com/styleshoehub/storefront-gateway/internal/config"
	"github.com/styleshoehub/storefront-gateway/internal/database"
	"github.com/styleshoehub/storefront-gateway/internal/handler"
	"github.com/styleshoehub/storefront-gateway/internal/imagehost"
	"github.com/styleshoehub/storefront-gateway/internal/kvcache"
	"github.com/styleshoehub/storefront-gateway/internal/middleware"
	"github.com/styleshoehub/storefront-gateway/internal/queue"
	"github.com/styleshoehub/storefront-gateway/internal/repository"
	"github.com/styleshoehub/storefront-gateway/internal/roles"
	"github.com/styleshoehub/storefront-gateway/internal/router"
	queuepub "github.com/styleshoehub/storefront-gateway/internal/service"
	"github.com/styleshoehub/storefront-gateway/internal/upstream"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	cacheCfg := config.LoadCacheConfig()
	rateCfg := config.LoadRateLimitConfig()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if cfg.Env == "dev" {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// MySQL holds session continuity state: refresh tokens, plus dev-mode
	// accounts when no external auth provider is configured.
	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("database open failed")
	}
	defer func() { _ = db.Close() }()

	// Redis is optional: with it absent every cache degrades to in-process
	// memory and the rate limiter and page cache become passthroughs.
	rdb := config.NewRedisClient()
	kv := kvcache.New(rdb)

	// The one shared upstream data client, its query cache and the
	// invalidation plumbing every mutation reports through.
	apiClient := upstream.NewClient(cfg.UpstreamAPIURL, log)
	queryCache := upstream.NewQueryCache(kv, cacheCfg.Prefix, cacheCfg.TTL)
	resolver := roles.NewResolver(upstream.RoleClient{C: apiClient}, kv, cacheCfg.RoleTTL, log)
	invalidator := upstream.NewInvalidator(queryCache, resolver)
	api := upstream.NewAPI(apiClient, queryCache, invalidator)

	// Session stack: auth provider, refresh token store, JWT minting.
	var provider auth.Provider
	switch cfg.AuthMode {
	case "dev":
		provider = auth.NewDevProvider(repository.NewUserRepo(db), cfg.BcryptCost, log)
	default:
		provider = auth.NewHTTPProvider(cfg.AuthProviderURL, cfg.AuthProviderKey, log)
	}
	sessions := auth.NewSessionManager(provider, repository.NewTokenRepo(db), cfg.JWTSecret, cfg.AccessTTLMin, cfg.RefreshTTLDays)

	images := imagehost.New(cfg.ImageHostURL, cfg.ImageHostKey)
	publisher := queuepub.New(log)
	go queue.StartActivityConsumer(log)
	cartStore := cart.NewStore(api.Cart)

	authH := handler.NewAuthHandler(sessions, api.Users, log)
	storefrontH := handler.NewStorefrontHandler(api)
	cartH := handler.NewCartHandler(cartStore, api)
	ordersH := handler.NewOrdersHandler(api, publisher, log)
	appsH := handler.NewApplicationsHandler(api)
	claimsH := handler.NewClaimsHandler(api, images, publisher, log)
	blogsH := handler.NewBlogsHandler(api, images)
	agentH := handler.NewAgentHandler(api)
	adminH := handler.NewAdminHandler(api, publisher, log)
	uploadH := handler.NewUploadHandler(images)

	e := echo.New()
	e.HideBanner = true

	// Session resolution runs first so the rate limiter can key on the
	// signed-in email and guards can read the identity.
	e.Use(middleware.SessionAuth(sessions))
	e.Use(middleware.NewTokenBucket(rateCfg, rdb))

	router.RegisterRoutes(e)
	router.RegisterPublic(e, storefrontH, middleware.PublicResponseCache(cacheCfg, rdb))
	router.RegisterAuth(e, authH, uploadH, resolver)
	router.RegisterCustomer(e, cartH, ordersH, appsH, claimsH, resolver)
	router.RegisterAgent(e, agentH, appsH, claimsH, blogsH, resolver)
	router.RegisterAdmin(e, adminH, appsH, claimsH, resolver)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Str("auth_mode", cfg.AuthMode).Msg("listening")
	if err := e.Start(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
