package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ahmadalnaib/project-board/internal/db"
)

// Store drivers.
const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Config is the server configuration.
type Config struct {
	Server   ServerConfig
	Database db.Config
	Store    StoreConfig
	Listing  ListingConfig
	Seed     SeedConfig
	Log      LogConfig
}

type ServerConfig struct {
	Addr           string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
}

type StoreConfig struct {
	Driver string
}

type ListingConfig struct {
	PerPage    int
	OnEachSide int
}

// SeedConfig controls the generated rows loaded at startup. Zero projects
// disables seeding.
type SeedConfig struct {
	Users           int
	Projects        int
	TasksPerProject int
	RandomSeed      uint64
}

type LogConfig struct {
	Level  string
	Format string
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"http://localhost:3000"},
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
		},
		Database: db.DefaultConfig(),
		Store:    StoreConfig{Driver: DriverPostgres},
		Listing:  ListingConfig{PerPage: 10, OnEachSide: 1},
		Seed:     SeedConfig{RandomSeed: 1},
		Log:      LogConfig{Level: "info", Format: "text"},
	}
}

// Load reads config.yaml from configPath when present and applies
// environment overrides. Database keys also honour DB_HOST, DB_PORT and so
// on; every other key maps to BOARD_<SECTION>_<KEY>.
func Load(configPath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)
	v.SetEnvPrefix("BOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for _, key := range []string{"host", "port", "user", "password", "dbname", "sslmode"} {
		if err := v.BindEnv("database."+key, "DB_"+strings.ToUpper(key)); err != nil {
			return cfg, fmt.Errorf("failed to bind env for database.%s: %w", key, err)
		}
	}

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return cfg, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.Server.Addr = v.GetString("server.addr")
	cfg.Server.AllowedOrigins = v.GetStringSlice("server.allowed_origins")
	cfg.Server.ReadTimeout = v.GetDuration("server.read_timeout")
	cfg.Server.WriteTimeout = v.GetDuration("server.write_timeout")
	cfg.Server.IdleTimeout = v.GetDuration("server.idle_timeout")

	cfg.Database.Host = v.GetString("database.host")
	cfg.Database.Port = v.GetInt("database.port")
	cfg.Database.User = v.GetString("database.user")
	cfg.Database.Password = v.GetString("database.password")
	cfg.Database.DBName = v.GetString("database.dbname")
	cfg.Database.SSLMode = v.GetString("database.sslmode")
	cfg.Database.MaxConns = v.GetInt32("database.max_conns")

	cfg.Store.Driver = strings.ToLower(v.GetString("store.driver"))
	cfg.Listing.PerPage = v.GetInt("listing.per_page")
	cfg.Listing.OnEachSide = v.GetInt("listing.on_each_side")

	cfg.Seed.Users = v.GetInt("seed.users")
	cfg.Seed.Projects = v.GetInt("seed.projects")
	cfg.Seed.TasksPerProject = v.GetInt("seed.tasks_per_project")
	cfg.Seed.RandomSeed = v.GetUint64("seed.random_seed")

	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper, cfg Config) {
	v.SetDefault("server.addr", cfg.Server.Addr)
	v.SetDefault("server.allowed_origins", cfg.Server.AllowedOrigins)
	v.SetDefault("server.read_timeout", cfg.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", cfg.Server.WriteTimeout)
	v.SetDefault("server.idle_timeout", cfg.Server.IdleTimeout)
	v.SetDefault("database.host", cfg.Database.Host)
	v.SetDefault("database.port", cfg.Database.Port)
	v.SetDefault("database.user", cfg.Database.User)
	v.SetDefault("database.password", cfg.Database.Password)
	v.SetDefault("database.dbname", cfg.Database.DBName)
	v.SetDefault("database.sslmode", cfg.Database.SSLMode)
	v.SetDefault("database.max_conns", cfg.Database.MaxConns)
	v.SetDefault("store.driver", cfg.Store.Driver)
	v.SetDefault("listing.per_page", cfg.Listing.PerPage)
	v.SetDefault("listing.on_each_side", cfg.Listing.OnEachSide)
	v.SetDefault("seed.users", cfg.Seed.Users)
	v.SetDefault("seed.projects", cfg.Seed.Projects)
	v.SetDefault("seed.tasks_per_project", cfg.Seed.TasksPerProject)
	v.SetDefault("seed.random_seed", cfg.Seed.RandomSeed)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
}

// Validate rejects settings the server cannot run with.
func (c Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Listing.PerPage < 1 {
		return fmt.Errorf("listing.per_page must be positive, got %d", c.Listing.PerPage)
	}
	if c.Listing.OnEachSide < 0 {
		return fmt.Errorf("listing.on_each_side must not be negative, got %d", c.Listing.OnEachSide)
	}
	return nil
}

// SlogLevel parses log.level, defaulting to info.
func (l LogConfig) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(l.Level)); err != nil {
		return slog.LevelInfo
	}
	return level
}
