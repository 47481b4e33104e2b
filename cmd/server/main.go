package main

import (
    "context"
    "errors"
    "net/http"
    "os"
    "os/signal"
    "syscall"
    "time"

    "github.com/joho/godotenv"
    zlog "github.com/rs/zerolog/log"
    "golang.org/x/sync/errgroup"
    gormmysql "gorm.io/driver/mysql"
    "gorm.io/gorm"
    gormlogger "gorm.io/gorm/logger"

    "github.com/iliyamo/hotel-room-booking/internal/booking"
    "github.com/iliyamo/hotel-room-booking/internal/config"
    "github.com/iliyamo/hotel-room-booking/internal/database"
    "github.com/iliyamo/hotel-room-booking/internal/discount"
    "github.com/iliyamo/hotel-room-booking/internal/lock"
    "github.com/iliyamo/hotel-room-booking/internal/logger"
    "github.com/iliyamo/hotel-room-booking/internal/metrics"
    "github.com/iliyamo/hotel-room-booking/internal/pricing"
    "github.com/iliyamo/hotel-room-booking/internal/queue"
    "github.com/iliyamo/hotel-room-booking/internal/reporting"
    "github.com/iliyamo/hotel-room-booking/internal/repository"
    "github.com/iliyamo/hotel-room-booking/internal/router"
    queue_publisher "github.com/iliyamo/hotel-room-booking/internal/service"
    "github.com/iliyamo/hotel-room-booking/internal/tracing"
)

func main() {
    _ = godotenv.Load() // .env is optional

    cfg, err := config.Load()
    if err != nil {
        zlog.Fatal().Err(err).Msg("load config")
    }
    log := logger.New(os.Stdout, cfg.LogLevel, cfg.Env, cfg.ServiceName)

    shutdownTracing, err := tracing.Init(cfg.ServiceName, cfg.JaegerEndpoint, log)
    if err != nil {
        log.Fatal().Err(err).Msg("init tracing")
    }

    db, err := database.Open(database.DSN(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName))
    if err != nil {
        log.Fatal().Err(err).Msg("connect mysql")
    }
    defer db.Close()
    if cfg.DBAutoMigrate {
        if err := database.Migrate(context.Background(), db); err != nil {
            log.Fatal().Err(err).Msg("migrate schema")
        }
    }
    gdb, err := gorm.Open(gormmysql.New(gormmysql.Config{Conn: db}), &gorm.Config{
        Logger: gormlogger.Default.LogMode(gormlogger.Silent),
    })
    if err != nil {
        log.Fatal().Err(err).Msg("open gorm")
    }

    rdb := config.NewRedisClient(log)
    if rdb != nil {
        defer rdb.Close()
    }

    var locker lock.RoomLocker
    if rdb != nil {
        locker = lock.NewRedis(rdb, cfg.Booking.LockPrefix, cfg.Booking.LockTimeout, cfg.Booking.LockTTL)
        log.Info().Msg("room locks: redis")
    } else {
        locker = lock.NewLocal(cfg.Booking.LockTimeout)
        log.Warn().Msg("room locks: in-process, run a single instance only")
    }

    rooms := repository.NewRoomRepo(db)
    reservations := repository.NewReservationRepo(db)
    validator := discount.NewValidator(repository.NewDiscountRepo(gdb), log)

    deps := booking.Deps{
        Rooms:        rooms,
        Store:        reservations,
        Pricer:       pricing.NewEngine(validator, cfg.Booking.CurrencyScale),
        Locker:       locker,
        Metrics:      metrics.NewBooking(nil),
        Log:          log,
        StoreTimeout: cfg.Booking.StoreTimeout,
    }
    if cfg.RabbitURL != "" {
        deps.Events = queue_publisher.NewPublisher(cfg.RabbitURL, log)
    } else {
        log.Warn().Msg("RABBITMQ_URL not set, booking events are not published")
    }
    bookings := booking.NewService(deps)
    reports := reporting.NewService(repository.NewRevenueRepo(db), log)

    e := router.New(router.Deps{
        Bookings:    bookings,
        Reports:     reports,
        DB:          db,
        Redis:       rdb,
        RateLimit:   config.LoadRateLimitConfig(),
        Cache:       config.LoadCacheConfig(),
        JWTSecret:   cfg.JWTSecret,
        ServiceName: cfg.ServiceName,
        Log:         log,
    })

    ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
    defer stop()

    g, gctx := errgroup.WithContext(ctx)
    g.Go(func() error {
        addr := ":" + cfg.Port
        log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")
        if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
            return err
        }
        return nil
    })
    g.Go(func() error {
        <-gctx.Done()
        sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
        defer cancel()
        return e.Shutdown(sctx)
    })
    if cfg.RabbitURL != "" && cfg.ConsumerEnabled {
        consumer := queue.NewConsumer(cfg.RabbitURL, cfg.JournalPath, log)
        g.Go(func() error { return consumer.Run(gctx) })
    }

    if err := g.Wait(); err != nil {
        log.Error().Err(err).Msg("server stopped with error")
    }
    sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := shutdownTracing(sctx); err != nil {
        log.Warn().Err(err).Msg("flush traces")
    }
    log.Info().Msg("bye")
}
