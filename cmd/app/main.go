package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Raghu4002/railway-reservation/config"
	"github.com/Raghu4002/railway-reservation/internal/bootstrap"
	"github.com/Raghu4002/railway-reservation/internal/cache"
	"github.com/Raghu4002/railway-reservation/internal/kafka"
	"github.com/Raghu4002/railway-reservation/internal/ledger"
	"github.com/Raghu4002/railway-reservation/internal/repository"
	"github.com/Raghu4002/railway-reservation/internal/service/booking"
	"github.com/Raghu4002/railway-reservation/internal/service/locations"
	"github.com/Raghu4002/railway-reservation/internal/service/trains"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.TrainsCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	trainRepo := repository.NewTrainRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	locationRepo := repository.NewLocationRepository(pool)
	seatLedger := ledger.NewPGLedger(pool)

	trainService := trains.NewTrainService(trainRepo, locationRepo, redisCache)
	locationService := locations.NewLocationService(locationRepo)
	bookingService := booking.NewBookingService(
		bookingRepo,
		trainRepo,
		seatLedger,
		redisCache,
		producer,
		cfg.Kafka.BookingTopic,
		cfg.Booking.ReferenceMaxAttempts,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
	)

	if err := bootstrap.Run(ctx, cfg, trainService, bookingService, locationService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
