package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultAPIURL = "http://localhost:8000"

// Config captures runtime configuration for the web client and the
// development backend.
type Config struct {
	API  APIConfig  `yaml:"api"`
	Web  WebConfig  `yaml:"web"`
	Log  LogConfig  `yaml:"log"`
	Stub StubConfig `yaml:"stub"`
}

type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
}

type WebConfig struct {
	ListenAddr string `yaml:"listen_addr"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// StubConfig configures the development backend.
type StubConfig struct {
	ListenAddr string    `yaml:"listen_addr"`
	DBPath     string    `yaml:"db_path"`
	LLM        LLMConfig `yaml:"llm"`
}

type LLMConfig struct {
	BaseURL string  `yaml:"base_url"`
	APIKey  string  `yaml:"api_key"`
	Model   string  `yaml:"model"`
	QPS     float64 `yaml:"qps"`
}

func Default() Config {
	return Config{
		API: APIConfig{BaseURL: DefaultAPIURL},
		Web: WebConfig{ListenAddr: ":8090"},
		Log: LogConfig{Level: "info"},
		Stub: StubConfig{
			ListenAddr: ":8000",
			DBPath:     "analyses.db",
			LLM: LLMConfig{
				BaseURL: "https://api.deepseek.com/v1",
				Model:   "deepseek-chat",
				QPS:     1,
			},
		},
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in that order of precedence (environment wins).
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.API.BaseURL = getEnv("API_URL", cfg.API.BaseURL)
	cfg.Web.ListenAddr = getEnv("LISTEN_ADDR", cfg.Web.ListenAddr)
	cfg.Log.Level = getEnv("LOG_LEVEL", cfg.Log.Level)
	cfg.Log.File = getEnv("LOG_FILE", cfg.Log.File)
	cfg.Stub.ListenAddr = getEnv("STUB_LISTEN_ADDR", cfg.Stub.ListenAddr)
	cfg.Stub.DBPath = getEnv("STUB_DB_PATH", cfg.Stub.DBPath)
	cfg.Stub.LLM.BaseURL = getEnv("LLM_BASE_URL", cfg.Stub.LLM.BaseURL)
	cfg.Stub.LLM.APIKey = getEnv("LLM_API_KEY", cfg.Stub.LLM.APIKey)
	cfg.Stub.LLM.Model = getEnv("LLM_MODEL", cfg.Stub.LLM.Model)

	if timeout := os.Getenv("API_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil {
			return Config{}, fmt.Errorf("parse API_TIMEOUT: %w", err)
		}
		cfg.API.Timeout = d
	}

	if qps := os.Getenv("LLM_QPS"); qps != "" {
		v, err := strconv.ParseFloat(qps, 64)
		if err != nil {
			return Config{}, fmt.Errorf("parse LLM_QPS: %w", err)
		}
		cfg.Stub.LLM.QPS = v
	}

	cfg.API.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.API.BaseURL), "/")
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = DefaultAPIURL
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
