package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/gatekit/core/authn"
	"github.com/dmitrymomot/gatekit/core/config"
	"github.com/dmitrymomot/gatekit/core/cookie"
	"github.com/dmitrymomot/gatekit/core/csrf"
	"github.com/dmitrymomot/gatekit/core/logger"
	"github.com/dmitrymomot/gatekit/core/server"
	"github.com/dmitrymomot/gatekit/core/session"
	"github.com/dmitrymomot/gatekit/core/sessiontransport"
	"github.com/dmitrymomot/gatekit/pipeline"
)

type appConfig struct {
	AppName     string `env:"APP_NAME" envDefault:"gatekit"`
	Environment string `env:"APP_ENV" envDefault:"development"`

	// DatabaseURL enables the Postgres user store; empty means in-memory.
	DatabaseURL string `env:"DATABASE_URL" envDefault:""`

	// RedisURL enables the Redis session store; empty means in-memory.
	RedisURL string `env:"REDIS_URL" envDefault:""`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var (
		appCfg       appConfig
		serverCfg    server.Config
		cookieCfg    cookie.Config
		sessionCfg   session.Config
		transportCfg sessiontransport.CookieConfig
		csrfCfg      csrf.Config
		pipeCfg      pipeline.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&serverCfg)
	config.MustLoad(&cookieCfg)
	config.MustLoad(&sessionCfg)
	config.MustLoad(&transportCfg)
	config.MustLoad(&csrfCfg)
	config.MustLoad(&pipeCfg)

	var log *slog.Logger
	if appCfg.Environment == "production" {
		log = logger.New(logger.WithProduction(appCfg.AppName))
	} else {
		log = logger.New(logger.WithDevelopment(appCfg.AppName))
	}

	userStore, cleanup, err := newUserStore(ctx, appCfg.DatabaseURL)
	if err != nil {
		log.Error("failed to initialize user store", logger.Error(err))
		os.Exit(1)
	}
	defer cleanup()

	sessionStore, err := newSessionStore(ctx, appCfg.RedisURL)
	if err != nil {
		log.Error("failed to initialize session store", logger.Error(err))
		os.Exit(1)
	}

	cookieMgr, err := cookie.NewFromConfig(cookieCfg)
	if err != nil {
		log.Error("failed to initialize cookie manager", logger.Error(err))
		os.Exit(1)
	}

	sessionMgr := session.NewFromConfig(sessionCfg, sessionStore)
	sessions := sessiontransport.NewCookie(sessionMgr, cookieMgr, transportCfg.CookieName)
	csrfMgr := csrf.NewManager(cookieMgr, csrfCfg)
	auth := authn.NewService(userStore)

	app := newAPI(auth, sessions, csrfMgr).routes()

	guarded := pipeline.New(app, pipeCfg, pipeline.Deps{
		Logger:        log,
		Sessions:      sessions,
		CSRF:          csrfMgr,
		Authenticator: auth,
	})

	srv, err := server.NewFromConfig(serverCfg, server.WithLogger(log))
	if err != nil {
		log.Error("failed to initialize server", logger.Error(err))
		os.Exit(1)
	}

	log.Info("listening", logger.Component("server"), slog.String("addr", serverCfg.Addr))

	if err := srv.Run(ctx, guarded)(); err != nil {
		log.Error("server exited", logger.Error(err))
		os.Exit(1)
	}
}

// newUserStore returns the Postgres-backed store when a database URL is
// configured, running migrations on startup, and an in-memory store otherwise.
func newUserStore(ctx context.Context, databaseURL string) (authn.UserStore, func(), error) {
	if databaseURL == "" {
		return authn.NewMemoryStore(), func() {}, nil
	}

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, err
	}

	store := authn.NewPostgresStore(pool)
	if err := store.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, err
	}

	return store, pool.Close, nil
}

// newSessionStore returns the Redis-backed store when a Redis URL is
// configured and an in-memory store otherwise.
func newSessionStore(ctx context.Context, redisURL string) (session.Store, error) {
	if redisURL == "" {
		return session.NewMemoryStore(), nil
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return session.NewRedisStore(client), nil
}
