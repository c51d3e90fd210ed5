package config

import (
	"log"
	"os"
	"path/filepath"

	"github.com/anthanhphan/gosdk/conflux"
	"github.com/anthanhphan/gosdk/logger"
)

// Config holds the files-manager API configuration.
type Config struct {
	Server  ServerConfig  `json:"server" yaml:"server"`
	Mongo   MongoConfig   `json:"mongo" yaml:"mongo"`
	Redis   RedisConfig   `json:"redis" yaml:"redis"`
	Storage StorageConfig `json:"storage" yaml:"storage"`
	Logger  logger.Config `json:"logger" yaml:"logger"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
	// BodyLimitBytes caps upload request size; base64 payloads are about
	// a third larger than the decoded bytes.
	BodyLimitBytes int `json:"body_limit_bytes" yaml:"body_limit_bytes"`
}

type MongoConfig struct {
	URI      string `json:"uri" yaml:"uri"`
	Database string `json:"database" yaml:"database"`
}

type RedisConfig struct {
	Addr     string `json:"addr" yaml:"addr"`
	Password string `json:"password" yaml:"password"`
	DB       int    `json:"db" yaml:"db"`
}

type StorageConfig struct {
	// BaseDir is the root under which blobs are written, one file per
	// generated identifier. FOLDER_PATH overrides the default so the
	// service stays drop-in compatible with existing deployments.
	BaseDir string `json:"base_dir" yaml:"base_dir"`
}

// DefaultBaseDir is used when neither yaml nor FOLDER_PATH provides one.
const DefaultBaseDir = "/tmp/files_manager"

// DefaultConfig returns configuration with default values.
func DefaultConfig() *Config {
	baseDir := os.Getenv("FOLDER_PATH")
	if baseDir == "" {
		baseDir = DefaultBaseDir
	}

	return &Config{
		Server: ServerConfig{
			Addr:           ":5000",
			BodyLimitBytes: 64 * 1024 * 1024, // 64MB
		},
		Mongo: MongoConfig{
			URI:      "mongodb://localhost:27017",
			Database: "files_manager",
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Storage: StorageConfig{
			BaseDir: baseDir,
		},
		Logger: logger.Config{
			LogLevel:    logger.LevelInfo,
			LogEncoding: logger.EncodingJSON,
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// explicit path was given and the conventional file is absent.
func Load(path string) (*Config, error) {
	configPath := path
	if configPath == "" {
		env := os.Getenv("ENV")
		if env == "" {
			env = "local"
		}
		configPath = filepath.Join("internal", "api", "config", env+".yaml")
	}

	cfg := DefaultConfig()

	parsedCfg, err := conflux.ParseConfig(configPath, cfg)
	if err != nil {
		log.Printf("Config file not found or failed to parse, using defaults. Path: %s, Error: %v", configPath, err)
		if path != "" {
			return nil, err
		}
		return cfg, nil
	}

	return parsedCfg, nil
}

// MustLoad loads configuration or exits on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}
