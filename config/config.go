package config

import (
	"encoding/json"
	"fmt"
	"kolam/design"
	"kolam/log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	ConfigFileName = "config.json"

	defaultAPIBaseURL         = "https://kolam-backend-1-s6v0.onrender.com"
	defaultPlaceholderBaseURL = "https://picsum.photos"
)

// GetConfigDir returns the path to the application's configuration directory
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config home directory: %w", err)
	}
	return filepath.Join(homeDir, ".kolam"), nil
}

// Config represents the application configuration. Every scalar field can be
// overridden from the environment.
type Config struct {
	// APIBaseURL is the image service root. Grid images are read from
	// {APIBaseURL}/images/group/{token}.
	APIBaseURL string `json:"api_base_url" env:"KOLAM_API_BASE_URL"`
	// PlaceholderBaseURL serves seeded placeholder images when the image
	// service fails and for free-text designs.
	PlaceholderBaseURL string `json:"placeholder_base_url" env:"KOLAM_PLACEHOLDER_BASE_URL"`
	// NextStepURL is opened after a free-text design is generated. Empty
	// disables navigation.
	NextStepURL string `json:"next_step_url" env:"KOLAM_NEXT_STEP_URL"`
	// Suggestions is the fixed list of grid tokens offered in the dropdown.
	Suggestions []design.Suggestion `json:"suggestions"`
	// SlideIntervalMs is how long a slide stays up before autoplay advances.
	SlideIntervalMs int `json:"slide_interval_ms" env:"KOLAM_SLIDE_INTERVAL_MS"`
	// GenerationDelayMs is the simulated latency of free-text generation.
	GenerationDelayMs int `json:"generation_delay_ms" env:"KOLAM_GENERATION_DELAY_MS"`
	// FetchTimeoutMs bounds a single grid request.
	FetchTimeoutMs int `json:"fetch_timeout_ms" env:"KOLAM_FETCH_TIMEOUT_MS"`
	// CacheTTLSeconds controls how long successful grid responses are reused.
	// Zero disables the cache.
	CacheTTLSeconds int `json:"cache_ttl_seconds" env:"KOLAM_CACHE_TTL_SECONDS"`
	// RequestsPerSecond paces outgoing grid requests.
	RequestsPerSecond float64 `json:"requests_per_second" env:"KOLAM_REQUESTS_PER_SECOND"`
}

// DefaultSuggestions returns the eight grid tokens offered out of the box.
func DefaultSuggestions() []design.Suggestion {
	return []design.Suggestion{
		{Value: "3*3", Label: "3x3 dots kolam"},
		{Value: "5*5", Label: "5x5 dots kolam"},
		{Value: "6*6", Label: "6x6 dots kolam"},
		{Value: "7*7", Label: "7x7 dots kolam"},
		{Value: "9*9", Label: "9x9 dots kolam"},
		{Value: "11*11", Label: "11x11 dots kolam"},
		{Value: "fs", Label: "Free style kolams"},
		{Value: "rk", Label: "Rangoli kolams"},
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		APIBaseURL:         defaultAPIBaseURL,
		PlaceholderBaseURL: defaultPlaceholderBaseURL,
		NextStepURL:        "",
		Suggestions:        DefaultSuggestions(),
		SlideIntervalMs:    5000,
		GenerationDelayMs:  2000,
		FetchTimeoutMs:     15000,
		CacheTTLSeconds:    300,
		RequestsPerSecond:  2,
	}
}

// Validate reports the first problem that would make the config unusable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIBaseURL) == "" {
		return fmt.Errorf("api_base_url must not be empty")
	}
	if len(c.Suggestions) == 0 {
		return fmt.Errorf("at least one suggestion is required")
	}
	seen := make(map[string]bool, len(c.Suggestions))
	for _, s := range c.Suggestions {
		if strings.TrimSpace(s.Value) == "" {
			return fmt.Errorf("suggestion %q has an empty value", s.Label)
		}
		if seen[s.Value] {
			return fmt.Errorf("duplicate suggestion value %q", s.Value)
		}
		seen[s.Value] = true
	}
	if c.SlideIntervalMs <= 0 {
		return fmt.Errorf("slide_interval_ms must be positive, got %d", c.SlideIntervalMs)
	}
	if c.GenerationDelayMs < 0 {
		return fmt.Errorf("generation_delay_ms must not be negative, got %d", c.GenerationDelayMs)
	}
	if c.FetchTimeoutMs <= 0 {
		return fmt.Errorf("fetch_timeout_ms must be positive, got %d", c.FetchTimeoutMs)
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds must not be negative, got %d", c.CacheTTLSeconds)
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive, got %v", c.RequestsPerSecond)
	}
	return nil
}

func (c *Config) SlideInterval() time.Duration {
	return time.Duration(c.SlideIntervalMs) * time.Millisecond
}

func (c *Config) GenerationDelay() time.Duration {
	return time.Duration(c.GenerationDelayMs) * time.Millisecond
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMs) * time.Millisecond
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// LoadConfig reads the config file, applies environment overrides and falls
// back to defaults on any problem. It never fails.
func LoadConfig() *Config {
	cfg := loadConfigFile()
	if err := cleanenv.ReadEnv(cfg); err != nil {
		log.WarningLog.Printf("failed to apply environment overrides: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.ErrorLog.Printf("invalid config, using defaults: %v", err)
		return DefaultConfig()
	}
	return cfg
}

func loadConfigFile() *Config {
	configDir, err := GetConfigDir()
	if err != nil {
		log.ErrorLog.Printf("failed to get config directory: %v", err)
		return DefaultConfig()
	}

	configPath := filepath.Join(configDir, ConfigFileName)
	data, err := readConfigFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// Create and save default config if file doesn't exist
			defaultCfg := DefaultConfig()
			if saveErr := saveConfig(defaultCfg); saveErr != nil {
				log.WarningLog.Printf("failed to save default config: %v", saveErr)
			}
			return defaultCfg
		}

		log.WarningLog.Printf("failed to get config file: %v", err)
		return DefaultConfig()
	}

	// Start from defaults so fields missing from older files keep sane values.
	config := DefaultConfig()
	config.Suggestions = nil
	if err := json.Unmarshal(data, config); err != nil {
		preview := string(data)
		if len(preview) > 200 {
			preview = preview[:200] + "..."
		}
		log.ErrorLog.Printf("failed to parse config file at %s: %v\nConfig content preview: %s", configPath, err, preview)

		// Backup the corrupted config before falling back to defaults
		backupPath := configPath + ".corrupt." + time.Now().Format("20060102-150405")
		if backupErr := os.WriteFile(backupPath, data, 0644); backupErr == nil {
			log.InfoLog.Printf("Backed up corrupted config to: %s", backupPath)
		}

		return DefaultConfig()
	}
	if config.Suggestions == nil {
		config.Suggestions = DefaultSuggestions()
	}

	return config
}

// readConfigFile reads the config under a shared lock so a concurrent
// SaveConfig never hands us a half-written file.
func readConfigFile(configPath string) ([]byte, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, err
	}

	lock := NewFileLock(configPath)
	if err := lock.RLock(); err != nil {
		log.WarningLog.Printf("failed to acquire read lock: %v", err)
		// Continue without lock - better to have stale data than fail
	} else {
		defer lock.Unlock()
	}

	return os.ReadFile(configPath)
}

// saveConfig saves the configuration to disk under an exclusive lock.
func saveConfig(config *Config) error {
	configDir, err := GetConfigDir()
	if err != nil {
		return fmt.Errorf("failed to get config directory: %w", err)
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(configDir, ConfigFileName)

	lock := NewFileLock(configPath)
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("failed to acquire write lock: %w", err)
	}
	defer lock.Unlock()

	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}

// SaveConfig writes the configuration under an exclusive file lock.
func SaveConfig(config *Config) error {
	if err := config.Validate(); err != nil {
		return fmt.Errorf("refusing to save invalid config: %w", err)
	}
	return saveConfig(config)
}
