// Package server wires configuration, storage and the auth core together and
// runs the HTTP and gRPC servers until a termination signal arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/dmitrijs2005/mtmt/internal/logging"
	"github.com/dmitrijs2005/mtmt/internal/server/auth"
	"github.com/dmitrijs2005/mtmt/internal/server/auth/password"
	"github.com/dmitrijs2005/mtmt/internal/server/config"
	"github.com/dmitrijs2005/mtmt/internal/server/dto"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/refreshtokens"
	"github.com/dmitrijs2005/mtmt/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/mtmt/internal/server/rest"
	"github.com/dmitrijs2005/mtmt/internal/server/services"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"

	gs "github.com/dmitrijs2005/mtmt/internal/server/grpc"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const healthInterval = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	rdb    *redis.Client
	http   *rest.Server
	grpc   *gs.GRPCServer
	checks map[string]rest.HealthCheck
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.Env)

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	})

	app, err := newApp(c, logger, db, rdb, rm)
	if err != nil {
		db.Close()
		rdb.Close()
		return nil, err
	}
	return app, nil
}

func newApp(c *config.Config, logger logging.Logger, db *sql.DB, rdb *redis.Client, rm repomanager.RepositoryManager) (*App, error) {
	users := rm.Users(db)
	tokens := refreshtokens.NewRedisRepository(rdb, c.StoreTimeout)
	hasher := password.NewHasher(bcrypt.DefaultCost)

	codec, err := auth.NewCodec([]byte(c.SecretKey))
	if err != nil {
		return nil, fmt.Errorf("token codec: %w", err)
	}

	issuer, err := auth.NewIssuer(codec, tokens, c.AccessTokenValidityDuration, c.RefreshTokenValidityDuration)
	if err != nil {
		return nil, fmt.Errorf("token issuer: %w", err)
	}

	authenticator, err := auth.NewAuthenticator(users, hasher, c.StoreTimeout)
	if err != nil {
		return nil, fmt.Errorf("authenticator: %w", err)
	}

	guard, err := auth.NewGuard(codec, users, c.PublicPaths, c.StoreTimeout, logger)
	if err != nil {
		return nil, fmt.Errorf("guard: %w", err)
	}

	checks := map[string]rest.HealthCheck{
		"postgres": db.PingContext,
		"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
	}

	httpServer := rest.NewServer(c.EndpointAddrHTTP, c.ShutdownTimeout, rest.Deps{
		Guard:     guard,
		Auth:      services.NewAuthService(authenticator, issuer, codec, users, tokens, c.StoreTimeout),
		SignUp:    services.NewSignUpService(db, rm, hasher, c.StoreTimeout),
		Profiles:  services.NewProfileService(db, rm, c.StoreTimeout),
		Validator: dto.NewValidator(),
		Health:    checks,
		Logger:    logger,
	})

	grpcServer := gs.NewGRPCServer(c.EndpointAddrGRPC, logger, guard, gs.DefaultPublicMethods)

	return &App{
		config: c,
		logger: logger,
		db:     db,
		rdb:    rdb,
		http:   httpServer,
		grpc:   grpcServer,
		checks: checks,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// watchHealth mirrors dependency checks into the gRPC health service.
func (app *App) watchHealth(ctx context.Context) {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()

	for {
		serving := true
		for name, check := range app.checks {
			checkCtx, cancel := context.WithTimeout(ctx, app.config.StoreTimeout)
			err := check(checkCtx)
			cancel()

			app.grpc.SetServing(name, err == nil)
			serving = serving && err == nil
		}
		app.grpc.SetServing("", serving)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (app *App) close(ctx context.Context) {
	if err := app.rdb.Close(); err != nil {
		app.logger.Error(ctx, "close redis", "error", err)
	}
	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "close db", "error", err)
	}
}

func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(3)
	go func() {
		defer wg.Done()
		if err := app.http.Run(ctx); err != nil {
			app.logger.Error(ctx, "http server", "error", err)
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		if err := app.grpc.Run(ctx); err != nil {
			app.logger.Error(ctx, "grpc server", "error", err)
			cancelFunc()
		}
	}()
	go func() {
		defer wg.Done()
		app.watchHealth(ctx)
	}()

	wg.Wait()

	app.close(context.Background())
	app.logger.Info(context.Background(), "App stopped")
}
