package paging

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds simulator configuration as read from a file or the environment
type Config struct {
	// Simulation Configuration
	Frames    int    `json:"frames"`    // Number of physical frames
	Pages     int    `json:"pages"`     // Page universe size, 0 derives it from the sequence
	Algorithm string `json:"algorithm"` // Replacement policy (FIFO, LRU, MRU, OPT)
	Sequence  []int  `json:"sequence"`  // Reference sequence, may be supplied later

	// Auto-play Configuration
	StepIntervalMs int `json:"step_interval_ms"` // Delay between auto-play steps, 0 runs in batch

	// Trace Configuration
	TraceCompression string `json:"trace_compression"` // Trace compression (none, lz4, snappy)

	LogLevel string `json:"log_level"` // Log level (debug, info, warn, error), any case
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Frames:           3,
		Pages:            10,
		Algorithm:        string(FIFO),
		StepIntervalMs:   0,
		TraceCompression: "snappy",
		LogLevel:         "info",
	}
}

// LoadConfigFromFile loads configuration from a JSON file
func LoadConfigFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	err = json.Unmarshal(data, config)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadConfigFromEnv applies PAGESIM_* environment variables on top of
// DefaultConfig. Malformed numbers are reported, not ignored.
func LoadConfigFromEnv() (*Config, error) {
	config := DefaultConfig()
	if err := config.ApplyEnv(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields with PAGESIM_* environment variables that are set
func (c *Config) ApplyEnv() error {
	if val := os.Getenv("PAGESIM_FRAMES"); val != "" {
		frames, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PAGESIM_FRAMES %q: %w", val, err)
		}
		c.Frames = frames
	}

	if val := os.Getenv("PAGESIM_PAGES"); val != "" {
		pages, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PAGESIM_PAGES %q: %w", val, err)
		}
		c.Pages = pages
	}

	if val := os.Getenv("PAGESIM_ALGORITHM"); val != "" {
		c.Algorithm = val
	}

	if val := os.Getenv("PAGESIM_STEP_INTERVAL_MS"); val != "" {
		interval, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("invalid PAGESIM_STEP_INTERVAL_MS %q: %w", val, err)
		}
		c.StepIntervalMs = interval
	}

	if val := os.Getenv("PAGESIM_TRACE_COMPRESSION"); val != "" {
		c.TraceCompression = val
	}

	if val := os.Getenv("PAGESIM_LOG_LEVEL"); val != "" {
		c.LogLevel = val
	}

	return nil
}

// SaveToFile saves the configuration to a JSON file
func (c *Config) SaveToFile(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(path, data, 0644)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate validates the configuration. The sequence is only checked
// against the page universe when both are given.
func (c *Config) Validate() error {
	const op = "Config.Validate"

	if c.Frames <= 0 {
		return ErrInvalidFrameCount(op, c.Frames)
	}

	if c.Pages < 0 {
		return ErrInvalidPageCount(op, c.Pages)
	}

	if _, err := ParseAlgorithm(c.Algorithm); err != nil {
		return err
	}

	if c.StepIntervalMs < 0 {
		return fmt.Errorf("step interval must not be negative, got %d", c.StepIntervalMs)
	}

	if _, err := ParseCompressionType(c.TraceCompression); err != nil {
		return err
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	for _, id := range c.Sequence {
		if id < 0 || (c.Pages > 0 && id >= c.Pages) {
			return ErrPageIDOutOfRange(op, PageID(id), c.Pages)
		}
	}

	return nil
}

// StepInterval returns the auto-play delay
func (c *Config) StepInterval() time.Duration {
	return time.Duration(c.StepIntervalMs) * time.Millisecond
}

// SimulationConfig resolves the configuration into engine parameters for
// sequence. A zero page count is derived from the sequence.
func (c *Config) SimulationConfig(sequence []PageID) (SimulationConfig, error) {
	alg, err := ParseAlgorithm(c.Algorithm)
	if err != nil {
		return SimulationConfig{}, err
	}

	pages := c.Pages
	if pages == 0 {
		pages = PagesFor(sequence)
	}

	cfg := SimulationConfig{
		Frames:    c.Frames,
		Pages:     pages,
		Algorithm: alg,
		Sequence:  sequence,
	}
	if len(sequence) == 0 {
		return cfg, ErrEmptySequence("Config.SimulationConfig")
	}
	return cfg, cfg.Validate()
}

// ReferenceSequence converts the configured sequence to page ids
func (c *Config) ReferenceSequence() []PageID {
	refs := make([]PageID, len(c.Sequence))
	for i, id := range c.Sequence {
		refs[i] = PageID(id)
	}
	return refs
}

// Clone creates a deep copy of the configuration
func (c *Config) Clone() *Config {
	clone := *c
	if c.Sequence != nil {
		clone.Sequence = append([]int(nil), c.Sequence...)
	}
	return &clone
}
