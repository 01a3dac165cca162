package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	TeamPolicySingle = "single"
	TeamPolicySplit  = "split"
	TeamPolicyManual = "manual"
)

type Config struct {
	App struct {
		Env         string
		Port        string
		FrontendURL string
		Timezone    string
	}
	DB struct {
		Host         string
		Port         string
		User         string
		Password     string
		Name         string
		SSLMode      string
		MaxOpenConns int
		MaxIdleConns int
	}
	JWT struct {
		AccessTokenSecret        string
		AccessTokenExpiryMinutes int
		Issuer                   string
	}
	Roster struct {
		TeamPolicy string // single, split or manual
		TeamCount  int    // teams created by the split policy
	}
	Notify struct {
		Drivers      []string // log, kafka, redis, sns
		KafkaBrokers string
		KafkaTopic   string
		RedisChannel string
		SNSTopicARN  string
		AWSRegion    string
		Timeout      time.Duration
	}
	Redis struct {
		URL string
	}
	Venue struct {
		CacheTTL time.Duration
	}
	Log struct {
		Level string
		JSON  bool
	}
}

var defaults = map[string]interface{}{
	"APP_ENV":                         "development",
	"PORT":                            "8088",
	"FRONTEND_URL":                    "http://localhost:3000",
	"APP_TIMEZONE":                    "UTC",
	"DB_HOST":                         "localhost",
	"DB_PORT":                         "5432",
	"DB_USER":                         "postgres",
	"DB_PASSWORD":                     "password",
	"DB_NAME":                         "pitchside_db",
	"DB_SSLMODE":                      "disable",
	"DB_MAX_OPEN_CONNS":               25,
	"DB_MAX_IDLE_CONNS":               5,
	"JWT_ACCESS_TOKEN_SECRET":         "your-very-strong-access-secret",
	"JWT_ACCESS_TOKEN_EXPIRY_MINUTES": 15,
	"JWT_ISSUER":                      "pitchside",
	"ROSTER_TEAM_POLICY":              TeamPolicySingle,
	"ROSTER_TEAM_COUNT":               2,
	"NOTIFY_DRIVERS":                  "log",
	"NOTIFY_TIMEOUT":                  "5s",
	"KAFKA_BROKERS":                   "",
	"KAFKA_TOPIC":                     "match-events",
	"REDIS_URL":                       "",
	"REDIS_CHANNEL":                   "match-events",
	"SNS_TOPIC_ARN":                   "",
	"AWS_REGION":                      "",
	"VENUE_CACHE_TTL":                 "10m",
	"LOG_LEVEL":                       "info",
	"LOG_JSON":                        false,
}

// Load reads configuration from the environment, after loading a .env file
// when one is present.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.AutomaticEnv()
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	// --- App Configuration ---
	cfg.App.Env = v.GetString("APP_ENV")
	cfg.App.Port = v.GetString("PORT")
	cfg.App.FrontendURL = v.GetString("FRONTEND_URL")
	cfg.App.Timezone = v.GetString("APP_TIMEZONE")
	if _, err := time.LoadLocation(cfg.App.Timezone); err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE: %w", err)
	}

	// --- Database Configuration ---
	cfg.DB.Host = v.GetString("DB_HOST")
	cfg.DB.Port = v.GetString("DB_PORT")
	cfg.DB.User = v.GetString("DB_USER")
	cfg.DB.Password = v.GetString("DB_PASSWORD")
	cfg.DB.Name = v.GetString("DB_NAME")
	cfg.DB.SSLMode = v.GetString("DB_SSLMODE")

	var err error
	if cfg.DB.MaxOpenConns, err = getInt(v, "DB_MAX_OPEN_CONNS"); err != nil {
		return nil, err
	}
	if cfg.DB.MaxIdleConns, err = getInt(v, "DB_MAX_IDLE_CONNS"); err != nil {
		return nil, err
	}

	// --- JWT Configuration ---
	cfg.JWT.AccessTokenSecret = v.GetString("JWT_ACCESS_TOKEN_SECRET")
	cfg.JWT.Issuer = v.GetString("JWT_ISSUER")
	if cfg.JWT.AccessTokenExpiryMinutes, err = getInt(v, "JWT_ACCESS_TOKEN_EXPIRY_MINUTES"); err != nil {
		return nil, err
	}
	if cfg.JWT.AccessTokenSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_TOKEN_SECRET is empty")
	}

	// --- Roster Configuration ---
	cfg.Roster.TeamPolicy = strings.ToLower(strings.TrimSpace(v.GetString("ROSTER_TEAM_POLICY")))
	switch cfg.Roster.TeamPolicy {
	case TeamPolicySingle, TeamPolicySplit, TeamPolicyManual:
	default:
		return nil, fmt.Errorf("invalid ROSTER_TEAM_POLICY %q: expected %s, %s or %s", cfg.Roster.TeamPolicy, TeamPolicySingle, TeamPolicySplit, TeamPolicyManual)
	}
	if cfg.Roster.TeamCount, err = getInt(v, "ROSTER_TEAM_COUNT"); err != nil {
		return nil, err
	}
	if cfg.Roster.TeamCount < 1 {
		return nil, fmt.Errorf("invalid ROSTER_TEAM_COUNT: must be at least 1")
	}

	// --- Notifications ---
	cfg.Notify.Drivers = splitList(v.GetString("NOTIFY_DRIVERS"))
	cfg.Notify.KafkaBrokers = v.GetString("KAFKA_BROKERS")
	cfg.Notify.KafkaTopic = v.GetString("KAFKA_TOPIC")
	cfg.Notify.RedisChannel = v.GetString("REDIS_CHANNEL")
	cfg.Notify.SNSTopicARN = v.GetString("SNS_TOPIC_ARN")
	cfg.Notify.AWSRegion = v.GetString("AWS_REGION")
	if cfg.Notify.Timeout, err = getDuration(v, "NOTIFY_TIMEOUT"); err != nil {
		return nil, err
	}

	cfg.Redis.URL = v.GetString("REDIS_URL")
	if cfg.Venue.CacheTTL, err = getDuration(v, "VENUE_CACHE_TTL"); err != nil {
		return nil, err
	}

	cfg.Log.Level = v.GetString("LOG_LEVEL")
	cfg.Log.JSON = v.GetBool("LOG_JSON")

	return cfg, nil
}

// Location returns the time zone match dates and times are interpreted in.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NewLogger builds the root logger. Components derive named sub-loggers from it.
func NewLogger(cfg *Config) hclog.Logger {
	return hclog.New(&hclog.LoggerOptions{
		Name:       "pitchside",
		Level:      hclog.LevelFromString(cfg.Log.Level),
		JSONFormat: cfg.Log.JSON,
		Output:     os.Stderr,
	})
}

// ConnectDB opens the postgres connection pool.
func ConnectDB(cfg *Config, log hclog.Logger) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		cfg.DB.Host,
		cfg.DB.User,
		cfg.DB.Password,
		cfg.DB.Name,
		cfg.DB.Port,
		cfg.DB.SSLMode,
		cfg.App.Timezone,
	)

	gormConfig := &gorm.Config{TranslateError: true}
	if cfg.App.Env == "development" {
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)

	if cfg.DB.Password == "password" && cfg.App.Env == "production" {
		log.Warn("using default DB password in production; set DB_PASSWORD")
	}
	log.Info("connected to database", "host", cfg.DB.Host, "name", cfg.DB.Name)
	return db, nil
}

func getInt(v *viper.Viper, key string) (int, error) {
	raw := strings.TrimSpace(v.GetString(key))
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("env var %s: expected integer, got '%s'", key, raw)
	}
	return n, nil
}

func getDuration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("env var %s: expected duration, got '%s'", key, raw)
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
