package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/fashionhub/auth-service/internal/application/auth"
	"github.com/fashionhub/auth-service/internal/config"
	"github.com/fashionhub/auth-service/internal/domain"
	"github.com/fashionhub/auth-service/internal/infrastructure/db/postgres"
	"github.com/fashionhub/auth-service/internal/infrastructure/memory"
	"github.com/fashionhub/auth-service/internal/infrastructure/messaging/rabbitmq"
	"github.com/fashionhub/auth-service/internal/infrastructure/redis"
	"github.com/fashionhub/auth-service/internal/infrastructure/security"
	"github.com/fashionhub/auth-service/internal/logger"
	http_handlers "github.com/fashionhub/auth-service/internal/transport/http/handlers"
	"github.com/fashionhub/auth-service/internal/transport/http/middleware"
	"github.com/fashionhub/auth-service/internal/transport/http/response"
	"github.com/fashionhub/auth-service/internal/transport/http/router"
)

/*
========================
 Public entry (prod)
========================
*/

func NewServer() (*http.Server, func(), error) {
	return newServer(defaultDeps())
}

// NewServerWithDeps allows injecting dependencies for testing.
func NewServerWithDeps(deps Deps) (*http.Server, func(), error) {
	return newServer(deps)
}

/*
========================
 Dependency injection
========================
*/

type Deps struct {
	LoadConfig func() (*config.Config, error)

	NewDB func(addr string, debug bool) (DBCloser, error)

	NewRedis func(addr, password string, db int) RedisClient

	NewMailer func(rabbitURL, frontendURL string) (auth.Mailer, error)

	NewRouter func(router.Deps) (http.Handler, error)
}

type DBCloser interface {
	Close() error
}

type RedisClient interface {
	Ping(ctx context.Context) error
	Close() error
}

/*
========================
 Core bootstrap logic
========================
*/

func newServer(deps Deps) (*http.Server, func(), error) {
	// 0) config
	cfg, err := deps.LoadConfig()
	if err != nil {
		return nil, nil, err
	}

	// 1) db
	db, err := deps.NewDB(cfg.DBAddr, cfg.DBDebug)
	if err != nil {
		return nil, nil, err
	}

	cleanupFns := []func(){
		func() { _ = db.Close() },
	}

	sqlDB, ok := db.(*sql.DB)
	if !ok {
		runCleanup(cleanupFns)
		return nil, nil, errors.New("bootstrap: NewDB did not return *sql.DB")
	}

	// schema bootstrap is a dev convenience; prod runs migrations
	if cfg.Env == "dev" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := postgres.EnsureSchema(ctx, sqlDB); err != nil {
			cancel()
			runCleanup(cleanupFns)
			return nil, nil, err
		}
		cancel()
	}

	userRepo := postgres.NewUserRepo(sqlDB)

	// 2) redis: the revocation ledger lives here. In dev we degrade to the
	// in-memory ledger; in prod a dead redis is a startup failure because
	// logout and bulk revocation would silently stop working.
	var redisCli RedisClient
	if deps.NewRedis != nil {
		c := deps.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := c.Ping(ctx); err != nil {
			if cfg.Env != "dev" {
				_ = c.Close()
				runCleanup(cleanupFns)
				return nil, nil, err
			}
			logger.Logger.Warn().Err(err).Msg("redis unavailable; using in-memory revocation ledger")
			_ = c.Close()
		} else {
			logger.Logger.Info().Msg("redis connected")
			redisCli = c
			cleanupFns = append(cleanupFns, func() { _ = c.Close() })
		}
	}

	var ledger auth.RevocationLedger
	if redisCli != nil {
		ledger = redis.NewRevocationLedger(redisCli.(*redis.Client))
	} else {
		memLedger := memory.NewRevocationLedger()
		cleanupFns = append(cleanupFns, memLedger.Close)
		ledger = memLedger
	}

	// 3) mailer
	mailer, err := deps.NewMailer(cfg.RabbitURL, cfg.FrontendURL)
	if err != nil {
		if cfg.Env == "dev" {
			logger.Logger.Warn().Err(err).Msg("rabbitmq unavailable; using noop mailer")
			mailer = memory.NewNoopMailer()
		} else {
			runCleanup(cleanupFns)
			return nil, nil, err
		}
	}
	if c, ok := mailer.(interface{ Close() error }); ok {
		cleanupFns = append(cleanupFns, func() { _ = c.Close() })
	}

	// 4) security
	logger.Logger.Info().Str("issuer", cfg.JWTIssuer).Msg("initializing jwt signer")
	hasher := security.NewBcryptHasher(cfg.BcryptCost)
	signer := security.NewJWTSigner(cfg.JWTSecret, cfg.JWTIssuer, cfg.SessionTokenTTL)
	secrets := security.NewSecretTokens()

	// 5) service
	authSvc := auth.NewService(
		userRepo,
		hasher,
		signer,
		secrets,
		ledger,
		mailer,
		auth.Config{
			VerifyTokenTTL:       cfg.VerifyEmailTokenTTL,
			ResetTokenTTL:        cfg.PasswordResetTokenTTL,
			RequireVerifiedEmail: cfg.RequireVerifiedEmail,
		},
	)

	// 6) handlers + middleware
	authH := http_handlers.NewAuthHandler(authSvc)
	adminH := http_handlers.NewAdminHandler(authSvc)
	healthH := http_handlers.NewHealthHandler(sqlDB)

	authMW := middleware.Auth(authSvc, response.WriteError)
	adminMW := middleware.RequireRole(response.WriteError, domain.RoleAdmin)

	// rate limit (fail-open)
	var fwLimiter *redis.FixedWindowLimiter
	if redisCli != nil {
		fwLimiter = redis.NewFixedWindowLimiter(redisCli.(*redis.Client))
	}

	rl := func(key string, limit int, window time.Duration) func(http.Handler) http.Handler {
		if fwLimiter == nil {
			return nil
		}
		return middleware.RateLimitFixedWindow(
			fwLimiter,
			middleware.FixedWindowConfig{
				RouteKey: key,
				Limit:    limit,
				Window:   window,
			},
			response.WriteError,
		)
	}

	// 7) router
	mux, err := deps.NewRouter(router.Deps{
		Health: healthH,
		Auth:   authH,
		Admin:  adminH,

		RequestID: middleware.RequestID,
		AuthMW:    authMW,
		AdminMW:   adminMW,

		RegisterRL: rl("auth.register", 3, time.Minute),
		LoginRL:    rl("auth.login", 5, time.Minute),
		ForgotRL:   rl("auth.email_flows", 3, 10*time.Minute),
	})
	if err != nil {
		runCleanup(cleanupFns)
		return nil, nil, err
	}

	// 8) server
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	cleanup := func() {
		runCleanup(cleanupFns)
	}

	return srv, cleanup, nil
}

/*
========================
 Default deps (prod)
========================
*/

func defaultDeps() Deps {
	return Deps{
		LoadConfig: config.Load,
		NewDB: func(addr string, debug bool) (DBCloser, error) {
			return config.NewDB(addr, debug)
		},
		NewRedis: func(addr, password string, db int) RedisClient {
			return redis.New(addr, password, db)
		},
		NewMailer: func(url, frontendURL string) (auth.Mailer, error) {
			return rabbitmq.NewMailer(url, frontendURL)
		},
		NewRouter: func(d router.Deps) (http.Handler, error) {
			return router.New(d)
		},
	}
}

/*
========================
 helpers
========================
*/

func runCleanup(fns []func()) {
	for i := len(fns) - 1; i >= 0; i-- {
		fns[i]()
	}
}
