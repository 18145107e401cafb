//go:build e2e

package e2e

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"property-revenue-sync/cmd/bootstrap"
	"property-revenue-sync/cmd/bootstrap/components"
	"property-revenue-sync/internal/pkg/config"
	"property-revenue-sync/tests/common/authtest"
	"property-revenue-sync/tests/common/redistest"
	"property-revenue-sync/tests/common/sourcetest"
	"property-revenue-sync/tests/common/storetest"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/fx"
)

const (
	sourceToken = "e2e-source-token"
	storeToken  = "e2e-store-token"
)

// ------------------------------------------------------------
// Per-suite environment
// ------------------------------------------------------------
type environment struct {
	router *gin.Engine
	cfg    config.Config
	source *sourcetest.Server
	store  *storetest.Server
	redis  *redis.Client
}

func setupE2EEnvironment(t *testing.T) environment {
	gin.SetMode(gin.TestMode)

	redisAddr := redistest.StartOnce(t)
	source := sourcetest.NewServer(t, sourceToken)
	store := storetest.NewServer(t, storeToken)

	cfg := createTestConfig(source.URL, store.URL, redisAddr)
	router, app := buildE2EApp(cfg)
	require.NotNil(t, router, "router setup failed")

	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := app.Stop(ctx); err != nil {
			slog.Warn("failed to stop fx app", "error", err.Error())
		}
	})

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	t.Cleanup(func() { _ = rdb.Close() })

	slog.Info("e2e environment ready", "redis_addr", redisAddr, "source_url", source.URL, "store_url", store.URL)

	return environment{router: router, cfg: cfg, source: source, store: store, redis: rdb}
}

// createTestConfig points the app at the fakes. Each suite gets its own Redis key prefix so
// suites never read each other's snapshots.
func createTestConfig(sourceURL, storeURL, redisAddr string) config.Config {
	cfg := config.NewTestConfig()
	cfg.Source.BaseURL = sourceURL
	cfg.Source.APIToken = sourceToken
	cfg.Source.PageSize = 2
	cfg.Store.BaseURL = storeURL
	cfg.Store.APITokens = []string{"revoked-store-token", storeToken}
	cfg.Redis = config.RedisConfig{
		Addr:        redisAddr,
		KeyPrefix:   fmt.Sprintf("e2e-%s:", uuid.NewString()),
		SnapshotTTL: time.Hour,
	}
	return cfg
}

// ------------------------------------------------------------
// App construction
// ------------------------------------------------------------
func buildE2EApp(cfg config.Config) (*gin.Engine, *fx.App) {
	var router *gin.Engine

	testConfigModule := fx.Module("testconfig",
		fx.Provide(func() config.Config { return cfg }),
		bootstrap.ConfigSections,
	)

	app := fx.New(
		testConfigModule,
		fx.Provide(func() *gin.Engine { return gin.New() }),
		bootstrap.LoggerModule,
		bootstrap.JWTModule,
		bootstrap.ClientsModule,
		bootstrap.RedisModule,
		components.UseCaseModule,
		components.HandlerModule,

		fx.Populate(&router),

		fx.NopLogger,
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.Start(ctx); err != nil {
		panic(fmt.Sprintf("failed to start fx app: %v", err))
	}
	if router == nil {
		panic("fx app started without a router")
	}
	return router, app
}

// ------------------------------------------------------------
// Shared suite
// ------------------------------------------------------------
type SharedSuite struct {
	suite.Suite
	Router *gin.Engine
	Config config.Config
	Source *sourcetest.Server
	Store  *storetest.Server
	Redis  *redis.Client
	JWT    *authtest.JWTHelper
}

func (s *SharedSuite) SetupSharedSuite(t *testing.T) {
	env := setupE2EEnvironment(t)
	s.Router = env.router
	s.Config = env.cfg
	s.Source = env.source
	s.Store = env.store
	s.Redis = env.redis
	s.JWT = authtest.NewJWTHelper(env.cfg.JWT)
	require.NotEmpty(t, s.Config, "config missing")
	require.NotNil(t, s.Router, "router missing")
}

func (s *SharedSuite) SetupSuite() {
	s.SetupSharedSuite(s.T())
}

// RedisKey returns the namespaced key a snapshot is stored under.
func (s *SharedSuite) RedisKey(key string) string {
	return s.Config.Redis.KeyPrefix + key
}
