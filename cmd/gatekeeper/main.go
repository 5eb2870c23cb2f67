package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"gatekeeper/config"
	"gatekeeper/internal/delivery"
	"gatekeeper/internal/delivery/http"
	"gatekeeper/internal/delivery/http/middleware"
	"gatekeeper/internal/delivery/http/router/handler"
	"gatekeeper/internal/domain/repository"
	"gatekeeper/internal/domain/service"
	"gatekeeper/internal/infra/auth"
	logs "gatekeeper/internal/infra/log"
	"gatekeeper/internal/infra/persistence/postgres"
	"gatekeeper/internal/infra/session"
	"gatekeeper/internal/usecase/impl"

	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewUserRepository,
			postgres.NewSessionRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			newPasswordHasher,
			newPathGate,
			newSessionStore,
			newAuthenticator,
		),
	)
}

// newPasswordHasher creates the bcrypt hasher, honoring a configured cost.
func newPasswordHasher(cfg *config.Config) service.PasswordHasher {
	if cfg.Auth != nil && cfg.Auth.BcryptCost > 0 {
		return auth.NewBcryptHasherWithCost(cfg.Auth.BcryptCost)
	}

	return auth.NewBcryptHasher()
}

// newPathGate compiles the configured excluded paths once at startup.
func newPathGate(cfg *config.Config) (service.PathGate, error) {
	gate, err := auth.ParseExclusions(cfg.Auth.ExcludedPaths)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse excluded paths")
	}

	return gate, nil
}

type sessionStoreParams struct {
	fx.In
	fx.Lifecycle

	Config      *config.Config
	SessionRepo repository.SessionRepository
	Logger      *slog.Logger
}

// newSessionStore selects the configured session store backend and, when a
// TTL is set and the backend supports purging, schedules the expiry reaper.
func newSessionStore(params sessionStoreParams) (service.SessionStore, error) {
	ttl := time.Duration(params.Config.Auth.SessionDurationSeconds) * time.Second

	var store service.SessionStore
	switch params.Config.Auth.SessionStore {
	case config.StoreRedis:
		if params.Config.Redis == nil {
			return nil, errors.New("redis session store selected but redis configuration is missing")
		}
		client := redis.NewClient(&redis.Options{
			Addr:     params.Config.Redis.Addr,
			Password: params.Config.Redis.Password,
			DB:       params.Config.Redis.DB,
		})
		params.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				return errors.Wrap(client.Ping(ctx).Err(), "failed to ping Redis")
			},
			OnStop: func(_ context.Context) error {
				return client.Close()
			},
		})
		store = session.NewRedisStore(client, ttl)
	case config.StorePostgres:
		store = session.NewDBStore(params.SessionRepo, ttl)
	default:
		store = session.NewMemoryStore(ttl)
	}

	// Redis entries carry their own expiry semantics at resolve time; the
	// reaper only sweeps backends that accumulate stale entries.
	if purger, ok := store.(session.Purger); ok && ttl > 0 {
		reaper := session.NewReaper(purger, ttl, params.Logger)
		reaperCtx, cancelReaper := context.WithCancel(context.Background())
		params.Append(fx.Hook{
			OnStart: func(_ context.Context) error {
				go reaper.Run(reaperCtx)

				return nil
			},
			OnStop: func(_ context.Context) error {
				cancelReaper()

				return nil
			},
		})
	}

	return store, nil
}

// newAuthenticator selects the configured identity resolution strategy.
func newAuthenticator(
	cfg *config.Config,
	users repository.UserRepository,
	hasher service.PasswordHasher,
	sessions service.SessionStore,
	logger *slog.Logger,
) (service.Authenticator, error) {
	switch cfg.Auth.Strategy {
	case config.StrategyBasic:
		return auth.NewBasicAuthenticator(users, hasher, logger), nil
	case config.StrategySession:
		return auth.NewSessionAuthenticator(cfg.Auth.SessionCookieName, sessions, users, logger), nil
	default:
		return nil, errors.Errorf("unknown auth strategy: %q", cfg.Auth.Strategy)
	}
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthPolicy,
			impl.NewAccountService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewStatusHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
