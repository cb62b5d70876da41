package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"parkhub/backend/libs/db"
	"parkhub/backend/libs/redis"
	"parkhub/backend/services/parking-service/internal/auth"
	"parkhub/backend/services/parking-service/internal/catalog"
	appconfig "parkhub/backend/services/parking-service/internal/config"
	httpserver "parkhub/backend/services/parking-service/internal/http"
	"parkhub/backend/services/parking-service/internal/http/handlers"
	"parkhub/backend/services/parking-service/internal/http/middleware"
	"parkhub/backend/services/parking-service/internal/parking"
	"parkhub/backend/services/parking-service/internal/redisstore"
	"parkhub/backend/services/parking-service/internal/service"
	"parkhub/backend/services/parking-service/internal/snapshot"
	"parkhub/backend/services/parking-service/internal/ws"
)

const shutdownSnapshotTimeout = 10 * time.Second

// App wires dependencies for the parking service.
type App struct {
	server  *httpserver.Server
	parking *service.ParkingService
	hub     *ws.Hub
	db      *sql.DB
	cache   *goredis.Client
	logger  *zap.Logger
}

// New builds the application graph. The snapshot store, when configured, is
// also consulted for previously saved state before the registry comes up.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	var (
		sqlDB *sql.DB
		store snapshot.Store
		err   error
	)
	switch cfg.Snapshot.Backend {
	case appconfig.SnapshotPostgres:
		sqlDB, err = db.NewPostgresDB(cfg.Snapshot.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("app: connect postgres: %w", err)
		}
		pgStore := snapshot.NewPostgresStore(sqlDB)
		if err = pgStore.EnsureSchema(context.Background()); err != nil {
			sqlDB.Close()
			return nil, fmt.Errorf("app: ensure snapshot schema: %w", err)
		}
		store = pgStore
	case appconfig.SnapshotFile:
		store, err = snapshot.NewFileStore(cfg.Snapshot.Path)
		if err != nil {
			return nil, fmt.Errorf("app: open snapshot file store: %w", err)
		}
	case appconfig.SnapshotNone:
	}

	cat, registry, err := restoreState(store, logger)
	if err != nil {
		if sqlDB != nil {
			sqlDB.Close()
		}
		return nil, err
	}

	var (
		cache    *goredis.Client
		occupied *redisstore.Store
	)
	if cfg.Redis.Addr != "" {
		cache, err = redis.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			logger.Warn("redis unavailable, occupancy cache disabled", zap.Error(err))
		} else {
			occupied = redisstore.NewStore(cache, cfg.OccupiedTTL())
		}
	}

	hub := ws.NewHub(logger)
	parkingSvc := service.NewParkingService(registry, cat, occupied, hub, store, logger)

	tokenSvc := auth.NewTokenService(cfg.Auth.JWTSecret, cfg.TokenTTL())
	hasher := auth.NewBcryptHasher(0)
	operators := make([]handlers.Operator, 0, len(cfg.Auth.Operators))
	for _, op := range cfg.Auth.Operators {
		operators = append(operators, handlers.Operator{
			Username:     op.Username,
			PasswordHash: op.PasswordHash,
		})
	}

	authHandler := handlers.NewAuthHandler(operators, tokenSvc, hasher, logger)
	clientsHandler := handlers.NewClientsHandler(parkingSvc, logger)
	lotsHandler := handlers.NewLotsHandler(parkingSvc, logger)
	sessionsHandler := handlers.NewSessionsHandler(parkingSvc, logger)
	reportsHandler := handlers.NewReportsHandler(parkingSvc, logger)

	routes := httpserver.Routes{
		Login: authHandler.HandleLogin,

		RegisterClient:  clientsHandler.HandleRegisterClient,
		RegisterVehicle: clientsHandler.HandleRegisterVehicle,

		CreateLot:  lotsHandler.HandleCreateLot,
		ListLots:   lotsHandler.HandleListLots,
		GrantSpots: lotsHandler.HandleGrantSpots,

		CheckIn:         sessionsHandler.HandleCheckIn,
		CheckOut:        sessionsHandler.HandleCheckOut,
		ContractService: sessionsHandler.HandleContractService,

		TotalRevenue:    reportsHandler.HandleTotalRevenue,
		RevenueInMonth:  reportsHandler.HandleRevenueInMonth,
		AverageFee:      reportsHandler.HandleAverageFee,
		TopClients:      reportsHandler.HandleTopClients,
		SubscriberUsage: reportsHandler.HandleSubscriberUsage,
		RevenueByLot:    reportsHandler.HandleRevenueByLot,

		SaveSnapshot:  handlers.NewSnapshotHandler(parkingSvc, logger),
		OccupancyFeed: hub.Handler(),
		Health:        handlers.NewHealthHandler(),

		Authorize: middleware.Auth(tokenSvc),
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server:  server,
		parking: parkingSvc,
		hub:     hub,
		db:      sqlDB,
		cache:   cache,
		logger:  logger,
	}, nil
}

func restoreState(store snapshot.Store, logger *zap.Logger) (*catalog.Catalog, *parking.Registry, error) {
	if store == nil {
		cat := catalog.New()
		return cat, parking.NewRegistry(cat), nil
	}

	state, err := store.Load(context.Background())
	if errors.Is(err, snapshot.ErrNoSnapshot) {
		cat := catalog.New()
		return cat, parking.NewRegistry(cat), nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("app: load snapshot: %w", err)
	}

	cat, err := catalog.Restore(state.Catalog)
	if err != nil {
		return nil, nil, fmt.Errorf("app: restore catalog: %w", err)
	}
	registry, err := parking.RestoreRegistry(state.Lots, cat)
	if err != nil {
		return nil, nil, fmt.Errorf("app: restore lots: %w", err)
	}
	logger.Info("state restored from snapshot",
		zap.Time("saved_at", state.SavedAt),
		zap.Int("lots", len(state.Lots)),
	)
	return cat, registry, nil
}

// Run serves HTTP traffic until context cancellation, then persists a final
// state snapshot.
func (a *App) Run(ctx context.Context) error {
	runErr := a.server.Run(ctx)

	saveCtx, cancel := context.WithTimeout(context.Background(), shutdownSnapshotTimeout)
	defer cancel()
	if err := a.parking.SaveState(saveCtx); err != nil {
		a.logger.Error("failed to save state on shutdown", zap.Error(err))
	}

	return runErr
}

// Close releases acquired resources.
func (a *App) Close() {
	a.hub.Close()
	if a.cache != nil {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn("failed to close redis client", zap.Error(err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
}
