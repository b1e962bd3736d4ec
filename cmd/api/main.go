package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/booking-slots/internal/audit"
	"github.com/BruksfildServices01/booking-slots/internal/clock"
	"github.com/BruksfildServices01/booking-slots/internal/config"
	dbpkg "github.com/BruksfildServices01/booking-slots/internal/db"
	domain "github.com/BruksfildServices01/booking-slots/internal/domain/availability"
	"github.com/BruksfildServices01/booking-slots/internal/events"
	"github.com/BruksfildServices01/booking-slots/internal/infra/cache"
	infraEvents "github.com/BruksfildServices01/booking-slots/internal/infra/events"
	"github.com/BruksfildServices01/booking-slots/internal/logger"
	"github.com/BruksfildServices01/booking-slots/internal/routes"
)

func main() {
	cfg, err := config.Load(os.Getenv("SLOTS_CONFIG"))
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer lg.Sync()

	db, err := dbpkg.NewDB(cfg.DB, lg)
	if err != nil {
		lg.Fatal("database init failed", zap.Error(err))
	}

	// ---- audit ----
	auditDispatcher := audit.NewDispatcher(audit.New(db), lg.Named("audit"))
	defer auditDispatcher.Close()

	// ---- slot cache ----
	var slotCache domain.SlotCache = domain.NopCache{}
	var redisCache *cache.RedisSlotCache
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		redisCache = cache.NewRedisSlotCache(rdb, cfg.Booking.SlotTTL)
		if err := redisCache.Ping(context.Background()); err != nil {
			lg.Warn("redis unreachable, slot cache will miss until it recovers", zap.Error(err))
		}
		slotCache = redisCache
	}

	// ---- booking events ----
	var publisher events.Publisher = events.Nop{}
	if brokers := infraEvents.SplitBrokers(cfg.Kafka.Brokers); len(brokers) > 0 {
		kp := infraEvents.NewKafkaPublisher(brokers, cfg.Kafka.Topic, lg)
		defer kp.Close()
		publisher = kp
		lg.Info("publishing booking events", zap.Strings("brokers", brokers), zap.String("topic", cfg.Kafka.Topic))
	}

	ready := func() error {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		if err := sqlDB.Ping(); err != nil {
			return errors.New("database unreachable")
		}
		return nil
	}

	r := gin.New()
	r.Use(gin.Recovery())

	routes.RegisterRoutes(r, db, cfg, routes.Infra{
		Logger:    lg,
		Audit:     auditDispatcher,
		Cache:     slotCache,
		Publisher: publisher,
		Clock:     clock.New(cfg.Booking.Timezone),
		Ready:     ready,
	})

	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	go func() {
		lg.Info("server listening", zap.String("addr", cfg.Addr()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		lg.Error("graceful shutdown failed", zap.Error(err))
	}
}
