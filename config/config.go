package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/simmerbot/internal/domain"
)

// Config es la configuración completa del bot. Se carga una vez y no cambia.
type Config struct {
	Mode     domain.Mode    `yaml:"-"`
	Scanner  ScannerConfig  `yaml:"scanner"`
	API      APIConfig      `yaml:"api"`
	Log      LogConfig      `yaml:"log"`
	Telegram TelegramConfig `yaml:"telegram"`
	Status   StatusConfig   `yaml:"status"`
}

// ScannerConfig controla filtro, gate, tamaño del trade y el poll driver.
type ScannerConfig struct {
	Query               string  `yaml:"query"`
	Limit               int     `yaml:"limit"`
	MinOpportunityScore float64 `yaml:"min_opportunity_score"`
	ExcludeFast         bool    `yaml:"exclude_fast"`
	MinVolume24h        float64 `yaml:"min_volume_24h"`
	MaxContexts         int     `yaml:"max_contexts"`
	ContextWorkers      int     `yaml:"context_workers"`
	MaxUSD              float64 `yaml:"max_usd"`
	MaxSpreadPct        float64 `yaml:"max_spread_pct"`
	IntervalSeconds     int     `yaml:"interval_seconds"`
}

// APIConfig contiene el endpoint de Simmer y la credencial.
type APIConfig struct {
	BaseURL       string  `yaml:"base_url"`
	APIKey        string  `yaml:"-"` // solo por entorno
	TimeoutSec    int     `yaml:"timeout_seconds"`
	RatePerSecond float64 `yaml:"rate_per_second"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// TelegramConfig habilita el notificador de Telegram si ambos campos están presentes.
type TelegramConfig struct {
	BotToken string `yaml:"-"`
	ChatID   string `yaml:"chat_id"`
}

// StatusConfig habilita el endpoint HTTP de estado (solo modo poll).
type StatusConfig struct {
	Addr string `yaml:"addr"`
}

// Load carga la configuración para mode: defaults del modo, luego el YAML
// (opcional; path vacío o archivo inexistente se ignoran), luego .env y
// variables de entorno. La credencial ausente no es un error de carga.
func Load(path string, mode domain.Mode) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	cfg := defaultsFor(mode)

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// sin archivo: solo defaults + entorno
		case err != nil:
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
			}
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}
	return cfg, nil
}

// defaultsFor devuelve los valores por defecto de cada modo.
func defaultsFor(mode domain.Mode) *Config {
	cfg := &Config{
		Mode: mode,
		Scanner: ScannerConfig{
			Query:               "bitcoin",
			Limit:               25,
			MinOpportunityScore: 20,
			ExcludeFast:         true,
			MaxContexts:         2,
			ContextWorkers:      1,
			MaxSpreadPct:        0.05,
			IntervalSeconds:     300,
		},
	}
	switch mode {
	case domain.ModePick:
		cfg.Scanner.Limit = 100
		cfg.Scanner.MinOpportunityScore = 10
		cfg.Scanner.MinVolume24h = 500
		cfg.Scanner.MaxUSD = 2
	case domain.ModeAuto:
		cfg.Scanner.Limit = 100
		cfg.Scanner.MinOpportunityScore = 10
		cfg.Scanner.MinVolume24h = 500
		cfg.Scanner.MaxUSD = 10
	}
	return cfg
}

// ScanInterval devuelve el intervalo del poll driver como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// Timeout devuelve el timeout HTTP del cliente de Simmer.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSec) * time.Second
}

// TelegramEnabled indica si hay token y chat configurados.
func (c *Config) TelegramEnabled() bool {
	return c.Telegram.BotToken != "" && c.Telegram.ChatID != ""
}

// Validate rechaza valores que ningún modo puede usar.
func (c *Config) Validate() error {
	s := c.Scanner
	switch {
	case s.Limit <= 0:
		return &domain.ConfigError{Key: "SCAN_LIMIT", Reason: "must be positive"}
	case s.ContextWorkers <= 0:
		return &domain.ConfigError{Key: "context_workers", Reason: "must be positive"}
	case s.MaxContexts < 0:
		return &domain.ConfigError{Key: "MAX_CONTEXTS", Reason: "must not be negative"}
	case s.MinVolume24h < 0:
		return &domain.ConfigError{Key: "MIN_VOLUME_24H", Reason: "must not be negative"}
	case s.MaxSpreadPct < 0:
		return &domain.ConfigError{Key: "MAX_SPREAD_PCT", Reason: "must not be negative"}
	case s.IntervalSeconds <= 0:
		return &domain.ConfigError{Key: "SCAN_INTERVAL_SEC", Reason: "must be positive"}
	case c.Mode.Trades() && s.MaxUSD <= 0:
		return &domain.ConfigError{Key: "MAX_USD", Reason: "must be positive"}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return &domain.ConfigError{Key: "LOG_FORMAT", Reason: fmt.Sprintf("unknown format %q", c.Log.Format)}
	}
	return nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	s := &cfg.Scanner

	if v := os.Getenv("SCAN_QUERY"); v != "" {
		s.Query = v
	}
	if err := envInt("SCAN_LIMIT", &s.Limit); err != nil {
		return err
	}
	if err := envFloat("MIN_OPPORTUNITY_SCORE", &s.MinOpportunityScore); err != nil {
		return err
	}
	if err := envBool("EXCLUDE_FAST", &s.ExcludeFast); err != nil {
		return err
	}
	if err := envFloat("MIN_VOLUME_24H", &s.MinVolume24h); err != nil {
		return err
	}
	if err := envFloat("MAX_USD", &s.MaxUSD); err != nil {
		return err
	}
	if err := envFloat("MAX_SPREAD_PCT", &s.MaxSpreadPct); err != nil {
		return err
	}
	if err := envInt("MAX_CONTEXTS", &s.MaxContexts); err != nil {
		return err
	}
	if err := envInt("SCAN_INTERVAL_SEC", &s.IntervalSeconds); err != nil {
		return err
	}

	cfg.API.APIKey = strings.TrimSpace(os.Getenv("SIMMER_API_KEY"))
	if v := os.Getenv("SIMMER_API_BASE"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("STATUS_ADDR"); v != "" {
		cfg.Status.Addr = v
	}
	return nil
}

// setDefaults completa lo que ni el YAML ni el entorno definieron.
func setDefaults(cfg *Config) {
	if cfg.API.BaseURL == "" {
		cfg.API.BaseURL = "https://api.simmer.markets"
	}
	if cfg.API.TimeoutSec <= 0 {
		cfg.API.TimeoutSec = 30
	}
	if cfg.API.RatePerSecond <= 0 {
		cfg.API.RatePerSecond = 5
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

func envInt(key string, dst *int) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return &domain.ConfigError{Key: key, Reason: fmt.Sprintf("not an integer: %q", v)}
	}
	*dst = n
	return nil
}

func envFloat(key string, dst *float64) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return &domain.ConfigError{Key: key, Reason: fmt.Sprintf("not a number: %q", v)}
	}
	*dst = f
	return nil
}

func envBool(key string, dst *bool) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return &domain.ConfigError{Key: key, Reason: fmt.Sprintf("not a boolean: %q", v)}
	}
	*dst = b
	return nil
}
