package config

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type ServerConfig struct {
	Port string `yaml:"port"`
}

type SQLiteConfig struct {
	Path string `yaml:"path"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type MQConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
}

type CalendarConfig struct {
	Enabled         bool   `yaml:"enabled"`
	CredentialsFile string `yaml:"credentials_file"`
	TokenFile       string `yaml:"token_file"`
	CalendarID      string `yaml:"calendar_id"`
}

type PlannerConfig struct {
	// StripDeletedCategory controls whether deleting a category also clears
	// the tag from tasks that still reference it. Default is to leave the
	// dangling tag in place.
	StripDeletedCategory bool `yaml:"strip_deleted_category"`
}

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	SQLite   SQLiteConfig   `yaml:"sqlite"`
	Redis    RedisConfig    `yaml:"redis"`
	MQ       MQConfig       `yaml:"mq"`
	JWT      JWTConfig      `yaml:"jwt"`
	Calendar CalendarConfig `yaml:"calendar"`
	Planner  PlannerConfig  `yaml:"planner"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{Port: "8086"},
		SQLite: SQLiteConfig{Path: "planner.db"},
	}
}

// Load reads config.yaml (when present), then applies environment overrides.
// A missing file is not an error: the planner runs standalone with local
// persistence only.
func Load() *Config {
	cfg := defaults()

	path := os.Getenv("PLANNER_CONFIG")
	if path == "" {
		path = "config.yaml"
	}

	f, err := os.Open(path)
	if err == nil {
		defer f.Close()
		decoder := yaml.NewDecoder(f)
		if err := decoder.Decode(&cfg); err != nil {
			log.Fatalf("failed to decode %s: %v", path, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("failed to open %s: %v", path, err)
	}

	overrideFromEnv(&cfg)

	return &cfg
}

func overrideFromEnv(cfg *Config) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Server.Port = port
	}

	if path := os.Getenv("SQLITE_PATH"); path != "" {
		cfg.SQLite.Path = path
	}

	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Redis.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Redis.Password = password
	}
	if db := os.Getenv("REDIS_DB"); db != "" {
		if n, err := strconv.Atoi(db); err == nil {
			cfg.Redis.DB = n
		}
	}

	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.MQ.URL = url
	}

	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.JWT.Secret = secret
	}

	if enabled := os.Getenv("CALENDAR_ENABLED"); enabled != "" {
		cfg.Calendar.Enabled = enabled == "true" || enabled == "1"
	}
	if id := os.Getenv("CALENDAR_ID"); id != "" {
		cfg.Calendar.CalendarID = id
	}

	if strip := os.Getenv("PLANNER_STRIP_DELETED_CATEGORY"); strip != "" {
		cfg.Planner.StripDeletedCategory = strip == "true" || strip == "1"
	}
}
