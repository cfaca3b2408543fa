// Package config handles Gymbro configuration loading.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// DefaultSearchPaths returns the config file search order.
// An explicit path (from -config flag) is checked first.
// Then: ./config.yaml, ~/.config/gymbro/config.yaml, /etc/gymbro/config.yaml.
func DefaultSearchPaths() []string {
	paths := []string{"config.yaml"}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "gymbro", "config.yaml"))
	}

	paths = append(paths, "/etc/gymbro/config.yaml")
	return paths
}

// FindConfig locates a config file. If explicit is non-empty, it must exist.
// Otherwise, searches DefaultSearchPaths and returns the first that exists.
// Returns an empty path and no error when nothing was found; the caller
// falls back to Default() in that case.
func FindConfig(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	for _, p := range DefaultSearchPaths() {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", nil
}

// Config holds all Gymbro configuration.
type Config struct {
	Ollama   OllamaConfig  `yaml:"ollama"`
	Chat     ChatConfig    `yaml:"chat"`
	Outputs  OutputsConfig `yaml:"outputs"`
	DataDir  string        `yaml:"data_dir"`
	LogLevel string        `yaml:"log_level"`
}

// OllamaConfig defines the connection to the local model server and the
// generation parameters passed through on every chat request.
type OllamaConfig struct {
	URL         string  `yaml:"url"`
	Model       string  `yaml:"model"`
	Temperature float64 `yaml:"temperature"`
	NumPredict  int     `yaml:"num_predict"`
	NumCtx      int     `yaml:"num_ctx"`
}

// ChatConfig defines turn-level behavior.
type ChatConfig struct {
	// MaxContextMessages bounds how many history messages are sent to the
	// model per turn. The system preamble does not count against this.
	MaxContextMessages int `yaml:"max_context_messages"`

	// Routing selects how tool invocation is decided: "heuristic" matches
	// keyword rules locally, "native" trusts the model's tool-call signal.
	Routing string `yaml:"routing"`
}

// OutputsConfig defines where tool artifacts are written.
type OutputsConfig struct {
	Dir            string `yaml:"dir"`
	WorkoutPlan    string `yaml:"workout_plan"`
	ProgressReport string `yaml:"progress_report"`
}

// WorkoutPlanPath returns the full path for the workout plan artifact.
func (o OutputsConfig) WorkoutPlanPath() string {
	return filepath.Join(o.Dir, o.WorkoutPlan)
}

// ProgressReportPath returns the full path for the progress report artifact.
func (o OutputsConfig) ProgressReportPath() string {
	return filepath.Join(o.Dir, o.ProgressReport)
}

// Load reads configuration from a YAML file, expands environment variables
// in its contents, and applies GYMBRO_* environment overrides.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	// Expand environment variables
	expanded := os.ExpandEnv(string(data))

	cfg := Default()
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	return cfg, nil
}

// Default returns a default configuration that works against a local
// Ollama with a small tool-capable model.
func Default() *Config {
	return &Config{
		Ollama: OllamaConfig{
			URL:         "http://localhost:11434",
			Model:       "llama3.2",
			Temperature: 0.4,
			NumPredict:  96,
			NumCtx:      1024,
		},
		Chat: ChatConfig{
			MaxContextMessages: 6,
			Routing:            "heuristic",
		},
		Outputs: OutputsConfig{
			Dir:            "outputs",
			WorkoutPlan:    "workout_plan.txt",
			ProgressReport: "progress_report.csv",
		},
		DataDir:  ".",
		LogLevel: "info",
	}
}

// applyEnv overlays GYMBRO_* environment variables on top of file values.
// These names predate the YAML config and are kept for compatibility with
// existing shell setups.
func (c *Config) applyEnv() {
	if v := os.Getenv("GYMBRO_MODEL"); v != "" {
		c.Ollama.Model = v
	}
	if v := os.Getenv("GYMBRO_OLLAMA_URL"); v != "" {
		c.Ollama.URL = v
	}
	if v := os.Getenv("GYMBRO_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.Ollama.Temperature = f
		}
	}
	if v := os.Getenv("GYMBRO_NUM_PREDICT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Ollama.NumPredict = n
		}
	}
	if v := os.Getenv("GYMBRO_NUM_CTX"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Ollama.NumCtx = n
		}
	}
	if v := os.Getenv("GYMBRO_MAX_CONTEXT_MESSAGES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Chat.MaxContextMessages = n
		}
	}
	if v := os.Getenv("GYMBRO_ROUTING"); v != "" {
		c.Chat.Routing = v
	}
}
