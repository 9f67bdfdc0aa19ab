package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sandeepkv93/taskboard/internal/styling"
)

func TestDefaults(t *testing.T) {
	cfg := Default()
	if cfg.DBPath != "taskboard.db" || cfg.LogFile != "taskboard.log" || cfg.LogLevel != "info" {
		t.Fatalf("unexpected path defaults: %+v", cfg)
	}
	if !cfg.AutoFocus || cfg.MarkdownStyle != "dark" || cfg.EditorMaxHeight != 10 || cfg.CardWidth != 72 {
		t.Fatalf("unexpected ui defaults: %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taskboard.toml")
	body := `
db_path = "data/board.db"
markdown_style = "light"
card_width = 60
auto_focus = false

[[style_rules]]
regex = "urgent"
class_name = "hot"
style = "color: red"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TASKBOARD_CARD_WIDTH", "80")
	t.Setenv("TASKBOARD_AUTO_FOCUS", "yes")
	t.Setenv("TASKBOARD_EDITOR_MAX_HEIGHT", "not-a-number")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "data/board.db" || cfg.MarkdownStyle != "light" {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.CardWidth != 80 || !cfg.AutoFocus {
		t.Fatalf("env overrides not applied: %+v", cfg)
	}
	if cfg.EditorMaxHeight != 10 {
		t.Fatalf("invalid env value should be ignored: %+v", cfg)
	}
	want := styling.Rule{Regex: "urgent", ClassName: "hot", Style: "color: red"}
	if len(cfg.StyleRules) != 1 || cfg.StyleRules[0] != want {
		t.Fatalf("unexpected style rules: %+v", cfg.StyleRules)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}

	path := filepath.Join(t.TempDir(), "bad-rule.toml")
	if err := os.WriteFile(path, []byte("[[style_rules]]\nregex = \"(\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); !errors.Is(err, styling.ErrInvalidPattern) {
		t.Fatalf("expected ErrInvalidPattern, got %v", err)
	}
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("TASKBOARD_DB_PATH", "/tmp/env.db")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBPath != "/tmp/env.db" {
		t.Fatalf("unexpected db path %q", cfg.DBPath)
	}
}
