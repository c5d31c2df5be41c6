package main

import (
	"context"
	"log"
	"net/http"

	"github.com/SergeyKozhin/calendar-reminder-backend/internal/api"
	calendars_service "github.com/SergeyKozhin/calendar-reminder-backend/internal/business/calendars"
	events_service "github.com/SergeyKozhin/calendar-reminder-backend/internal/business/events"
	reminders_service "github.com/SergeyKozhin/calendar-reminder-backend/internal/business/reminders"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/clock"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/config"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database/calendars"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database/events"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/database/reminders"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/pkg/jwt"
	"github.com/SergeyKozhin/calendar-reminder-backend/internal/redis"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	jwts := jwt.NewManger(config.Secret(), config.JwtTTL())
	clk := clock.New(config.Location())

	redisPool := redis.NewRedisPool(config.RedisURL(), logger)
	locker := redis.NewLocker(redisPool, logger, config.LockTTL(), config.LockWait())

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		log.Fatalf("unable to initializae db: %v", err)
	}
	if err := database.Migrate(ctx, db); err != nil {
		log.Fatalf("unable to migrate db: %v", err)
	}

	calendarsRepository := calendars.NewRepository()
	eventsRepository := events.NewRepository(config.Location())
	remindersRepository := reminders.NewRepository(config.Location())

	eventsService := events_service.NewService(
		db,
		logger,
		clk,
		locker,
		eventsRepository,
		calendarsRepository,
		config.ICSProductID(),
	)
	remindersService := reminders_service.NewService(db, clk, remindersRepository)
	calendarsService := calendars_service.NewService(db, clk, calendarsRepository)

	api, err := api.NewApi(
		logger,
		clk,
		config.Location(),
		jwts,
		calendarsService,
		eventsService,
		remindersService,
	)
	if err != nil {
		logger.Fatalw("error initiating api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	closer.Bind(func() {
		_ = server.Shutdown(context.Background())
	})

	logger.Infow("Started server", "port", config.Port())
	logger.Fatalw("server error", "err", server.ListenAndServe())
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
