package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/cache"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/database"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/events"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/network"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/adapters/providers/submission"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/api/handlers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/api/routes"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/application/services"
	domainproviders "github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/providers"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/domain/repositories"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/clients/postgres"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/clients/redis"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/clients/sqlite"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/internal/infrastructure/observability"
	"github.com/Shehabmohammed598/med-appoint-muse-sub000/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger("med-appoint-sync", cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Durable offline booking store. A dead store is fatal: without it the
	// engine cannot keep its only correctness guarantee.
	sqliteClient, err := sqlite.NewClient(cfg.Store.Path)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open offline booking store")
	}
	defer sqliteClient.Close()

	bookingRepo, err := database.NewOfflineBookingAdapter(sqliteClient)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize offline booking store")
	}
	log.Info().Str("path", cfg.Store.Path).Msg("offline booking store ready")

	// Redis backs the sync event bus and the doctor-load cache; the engine
	// degrades gracefully without it.
	var eventBus domainproviders.EventBus
	var cacheProvider domainproviders.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("redis unavailable, sync events and load caching disabled")
	} else {
		defer redisClient.Close()
		eventBus = events.NewRedisEventBus(redisClient)
		defer eventBus.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Doctor load snapshots come from the hosted backend's database when
	// configured; otherwise ranking sees an empty roster.
	var loadRepo repositories.DoctorLoadRepository
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Warn().Err(err).Msg("load database unavailable, doctor ranking degraded")
		loadRepo = database.NewStaticDoctorLoadAdapter(nil)
	} else {
		defer pgClient.Close()
		loadRepo = database.NewDoctorLoadAdapter(pgClient)
		if cacheProvider != nil {
			loadRepo = database.NewCachedDoctorLoadAdapter(loadRepo, cacheProvider)
		}
	}

	submissionProvider := submission.NewSubmissionProvider(cfg.Submission)

	monitor := network.NewMonitor(network.Options{
		Prober:        network.NewHTTPProber(cfg.Monitor.ProbeURL, cfg.Monitor.ProbeTimeout),
		Interval:      cfg.Monitor.Interval,
		SlowThreshold: cfg.Monitor.SlowThreshold,
		Logger:        *observability.GetLogger(),
	})
	monitor.Start(ctx)
	defer monitor.Stop()

	estimator := services.NewWaitEstimator()
	planner := services.NewSlotPlanner(estimator)
	ranker := services.NewDoctorRanker(loadRepo)
	bookingService := services.NewBookingService(
		bookingRepo, submissionProvider, monitor, eventBus,
		*observability.GetLogger(), cfg.Submission.Timeout,
	)
	syncService := services.NewSyncService(
		bookingRepo, submissionProvider, monitor, eventBus,
		*observability.GetLogger(), cfg.Sync.SubmissionTimeout, cfg.Sync.SyncedRetention,
	)
	syncService.Start(ctx)
	defer syncService.Stop()

	go runPurgeLoop(ctx, syncService, cfg.Sync.PurgeInterval)

	slotsHandler := handlers.NewSlotsHandler(planner, estimator, ranker, cfg.Queueing)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	syncHandler := handlers.NewSyncHandler(syncService)
	var sseHandler *handlers.SSEHandler
	if eventBus != nil {
		sseHandler = handlers.NewSSEHandler(eventBus)
	}

	router := routes.NewRouter(slotsHandler, bookingHandler, syncHandler, sseHandler)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}

// runPurgeLoop garbage-collects expired synced bookings on an interval
func runPurgeLoop(ctx context.Context, sync *services.SyncService, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed, err := sync.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("failed to purge expired synced bookings")
				continue
			}
			if removed > 0 {
				log.Info().Int("removed", removed).Msg("purged expired synced bookings")
			}
		}
	}
}
