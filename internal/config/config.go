// Package config resolves runtime settings: built-in defaults, then an
// optional TOML file, then TASKBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/sandeepkv93/taskboard/internal/styling"
)

type Config struct {
	DBPath          string        `toml:"db_path"`
	LogFile         string        `toml:"log_file"`
	LogLevel        string        `toml:"log_level"`
	AutoFocus       bool          `toml:"auto_focus"`
	MarkdownStyle   string        `toml:"markdown_style"`
	EditorMaxHeight int           `toml:"editor_max_height"`
	CardWidth       int           `toml:"card_width"`
	StyleRules      styling.Rules `toml:"style_rules"`
}

func Default() Config {
	return Config{
		DBPath:          "taskboard.db",
		LogFile:         "taskboard.log",
		LogLevel:        "info",
		AutoFocus:       true,
		MarkdownStyle:   "dark",
		EditorMaxHeight: 10,
		CardWidth:       72,
	}
}

// Load applies the TOML file at path (skipped when empty) and the
// environment on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("load config %s: %w", path, err)
		}
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func FromEnv(base Config) Config {
	cfg := base
	if v, ok := getEnvString("TASKBOARD_DB_PATH"); ok {
		cfg.DBPath = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_FILE"); ok {
		cfg.LogFile = v
	}
	if v, ok := getEnvString("TASKBOARD_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnvBool("TASKBOARD_AUTO_FOCUS"); ok {
		cfg.AutoFocus = v
	}
	if v, ok := getEnvString("TASKBOARD_MARKDOWN_STYLE"); ok {
		cfg.MarkdownStyle = v
	}
	if v, ok := getEnvInt("TASKBOARD_EDITOR_MAX_HEIGHT"); ok && v > 0 {
		cfg.EditorMaxHeight = v
	}
	if v, ok := getEnvInt("TASKBOARD_CARD_WIDTH"); ok && v > 0 {
		cfg.CardWidth = v
	}
	return cfg
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.DBPath) == "" {
		return errors.New("config: db_path is required")
	}
	if c.EditorMaxHeight <= 0 {
		return fmt.Errorf("config: editor_max_height must be positive, got %d", c.EditorMaxHeight)
	}
	if c.CardWidth <= 0 {
		return fmt.Errorf("config: card_width must be positive, got %d", c.CardWidth)
	}
	if err := c.StyleRules.Compile(); err != nil {
		return fmt.Errorf("config: style_rules: %w", err)
	}
	return nil
}

func getEnvString(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	return raw, raw != ""
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
