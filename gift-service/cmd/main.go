package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"giftshop/gift-service/internal/app/gift/config"
	"giftshop/gift-service/internal/app/gift/handler"
	"giftshop/gift-service/internal/app/gift/infrastructure"
	"giftshop/gift-service/internal/app/gift/infrastructure/cache"
	"giftshop/gift-service/internal/app/gift/infrastructure/messaging"
	"giftshop/gift-service/internal/app/gift/processor"
	"giftshop/gift-service/internal/app/gift/repository"
	"giftshop/gift-service/internal/app/gift/service"
	"giftshop/gift-service/internal/app/gift/util"
	"giftshop/gift-service/internal/app/gift/validation"
	"giftshop/pkg/logger"
)

const serviceName = "gift-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(serviceName, cfg.Log.Level)

	if cfg.Log.LogstashAddr != "" {
		if err := logger.InitLogstash(cfg.Log.LogstashAddr, serviceName, cfg.Log.Level); err != nil {
			logger.Warn().Err(err).Msg("Failed to connect to Logstash, using stdout only")
		} else {
			logger.Info().Str("logstash_addr", cfg.Log.LogstashAddr).Msg("Connected to Logstash")
		}
	}

	db, err := connectDB(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	logger.Info().
		Str("host", cfg.Database.Host).
		Str("database", cfg.Database.DBName).
		Msg("Connected to PostgreSQL")

	if err := repository.RunMigrations(cfg.Database.URL()); err != nil {
		logger.Fatal().Err(err).Msg("Failed to apply migrations")
	}

	redisClient, err := cache.NewRedisClient(cfg.Redis.Address(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer redisClient.Close()
	logger.Info().Str("address", cfg.Redis.Address()).Msg("Connected to Redis")

	categoryCache := cache.NewCategoryCache(redisClient)
	tokenBlacklist := cache.NewTokenBlacklist(redisClient)

	var publisher infrastructure.MessagePublisher
	if len(cfg.Kafka.Brokers) > 0 {
		publisher = messaging.NewKafkaProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		logger.Info().
			Strs("brokers", cfg.Kafka.Brokers).
			Str("topic", cfg.Kafka.Topic).
			Msg("Initialized Kafka producer")
	} else {
		publisher = messaging.NewNoopPublisher()
		logger.Warn().Msg("KAFKA_BROKERS is empty, product events are disabled")
	}
	defer publisher.Close()

	categoryRepo := repository.NewCategoryRepository(db)
	productRepo := repository.NewProductRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	wishlistRepo := repository.NewWishlistRepository(db)
	txManager := repository.NewTxManager(db)

	jwtManager := util.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.AccessTokenDuration)

	categoryService := service.NewCategoryService(categoryRepo, txManager, categoryCache, cfg.Cache.CategoriesTTL)
	productService := service.NewProductService(productRepo, categoryRepo, txManager, publisher)
	memberService := service.NewMemberService(memberRepo, txManager, jwtManager, tokenBlacklist)
	wishlistService := service.NewWishlistService(wishlistRepo, memberRepo, productRepo, txManager)

	validator := validation.New()
	router := handler.SetupRoutes(handler.Handlers{
		Category: handler.NewCategoryHandler(categoryService, validator),
		Product:  handler.NewProductHandler(productService, validator),
		Member:   handler.NewMemberHandler(memberService, validator),
		Wishlist: handler.NewWishlistHandler(wishlistService, validator),
		Auth:     handler.NewAuthMiddleware(memberService),
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Cache.WarmupSchedule != "" {
		scheduler := processor.NewCronScheduler(categoryService)
		if err := scheduler.Start(ctx, cfg.Cache.WarmupSchedule); err != nil {
			logger.Fatal().Err(err).Msg("Failed to start cache warmup scheduler")
		}
		defer scheduler.Stop()
	}

	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("Starting Gift Service")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down Gift Service...")
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}

	logger.Info().Msg("Gift Service stopped gracefully")
}

// connectDB подключается к PostgreSQL с повторами, пока база поднимается
func connectDB(cfg config.DatabaseConfig) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	}

	var err error
	for i := 0; i < 10; i++ {
		var db *gorm.DB
		if db, err = openDB(cfg.DSN(), gormConfig); err == nil {
			return db, nil
		}

		logger.Warn().
			Int("attempt", i+1).
			Err(err).
			Msg("Failed to connect to database, retrying...")
		time.Sleep(3 * time.Second)
	}

	return nil, fmt.Errorf("failed to connect after 10 attempts: %w", err)
}

func openDB(dsn string, gormConfig *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, err
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(1 * time.Minute)
	return db, nil
}
