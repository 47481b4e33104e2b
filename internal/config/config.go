package config // package config loads application configuration from environment variables

import (
    "fmt"
    "os"
    "strconv"
    "strings"
    "time"
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.
type Config struct {
    Env           string // application environment (e.g. "development", "production")
    Port          string // HTTP port to listen on
    LogLevel      string // zerolog level name
    DBUser        string // database username
    DBPass        string // database password (optional)
    DBHost        string // database host address
    DBPort        string // database port number
    DBName        string // database name
    DBAutoMigrate bool   // create missing tables on start
    JWTSecret     string // secret used to verify (and, in devtoken, sign) access tokens
    AccessTTLMin  int    // access token time-to-live in minutes (devtoken)

    Booking BookingConfig

    RabbitURL       string // broker url; empty disables publishing and the consumer
    ConsumerEnabled bool   // run the booking event consumer in-process
    JournalPath     string // file the consumer appends events to

    JaegerEndpoint string // collector endpoint; empty disables tracing
    ServiceName    string // service name reported to tracing and logs
}

// BookingConfig tunes the booking engine.
type BookingConfig struct {
    LockTimeout   time.Duration // max wait for a room's exclusivity before RoomBusy
    LockTTL       time.Duration // lifetime of a Redis room lock if its holder dies
    LockPrefix    string        // Redis key prefix of room locks
    StoreTimeout  time.Duration // max wait on database row locks per write
    CurrencyScale int32         // decimal places money is rounded to
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must(); all missing or
// malformed values are reported together in the returned error.
func Load() (Config, error) {
    l := &loader{}
    cfg := Config{
        Env:           l.must("APP_ENV"),
        Port:          l.must("APP_PORT"),
        LogLevel:      envStr("LOG_LEVEL", "info"),
        DBUser:        l.must("DB_USER"),
        DBPass:        os.Getenv("DB_PASS"), // empty allowed
        DBHost:        l.must("DB_HOST"),
        DBPort:        l.must("DB_PORT"),
        DBName:        l.must("DB_NAME"),
        DBAutoMigrate: envBool("DB_AUTO_MIGRATE", true),
        JWTSecret:     l.must("JWT_SECRET"),
        AccessTTLMin:  envInt("ACCESS_TOKEN_TTL_MIN", 60),

        Booking: BookingConfig{
            LockTimeout:   envDur("BOOKING_LOCK_TIMEOUT", 3*time.Second),
            LockTTL:       envDur("BOOKING_LOCK_TTL", 15*time.Second),
            LockPrefix:    envStr("BOOKING_LOCK_PREFIX", "lock:room"),
            StoreTimeout:  envDur("BOOKING_STORE_TIMEOUT", 5*time.Second),
            CurrencyScale: int32(l.intRange("CURRENCY_SCALE", 2, 0, 8)),
        },

        RabbitURL:       envStr("RABBITMQ_URL", os.Getenv("AMQP_URL")),
        ConsumerEnabled: envBool("BOOKING_CONSUMER_ENABLED", true),
        JournalPath:     envStr("BOOKING_JOURNAL_PATH", "logs/booking.log"),

        JaegerEndpoint: os.Getenv("JAEGER_ENDPOINT"),
        ServiceName:    envStr("SERVICE_NAME", "hotel-room-booking"),
    }
    if cfg.Booking.LockTTL < cfg.Booking.LockTimeout {
        l.fail("BOOKING_LOCK_TTL must not be shorter than BOOKING_LOCK_TIMEOUT")
    }
    if err := l.err(); err != nil {
        return Config{}, err
    }
    return cfg, nil
}

// loader collects configuration problems so they can be reported at once.
type loader struct {
    problems []string
}

func (l *loader) fail(msg string) { l.problems = append(l.problems, msg) }

func (l *loader) err() error {
    if len(l.problems) == 0 {
        return nil
    }
    return fmt.Errorf("invalid configuration: %s", strings.Join(l.problems, "; "))
}

// must retrieves the value of a required environment variable.  An unset
// or empty variable is recorded as a problem.
func (l *loader) must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        l.fail("missing required env var: " + key)
    }
    return v
}

// intRange reads an optional integer that must lie within [lo, hi].
func (l *loader) intRange(key string, def, lo, hi int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil || n < lo || n > hi {
        l.fail(fmt.Sprintf("invalid int for %s: %q (want %d..%d)", key, v, lo, hi))
        return def
    }
    return n
}
