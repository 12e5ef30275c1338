package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
)

func TestLoadSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ConfigFile)

	cfg := Default()
	cfg.LogLevel = "debug"
	cfg.BaseDir = "/srv"
	cfg.Exclude = []string{"node_modules", "**/.git"}
	cfg.Aliases["uni"] = "/home/me/Uni"
	cfg.History.Enabled = false

	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.LogLevel != "debug" || got.BaseDir != "/srv" || got.History.Enabled {
		t.Errorf("loaded config = %+v", got)
	}
	if len(got.Exclude) != 2 || got.Aliases["uni"] != "/home/me/Uni" {
		t.Errorf("loaded config = %+v", got)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ConfigFile)
	if err := os.WriteFile(path, []byte("base_dir: /data\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if !cfg.History.Enabled {
		t.Error("history should stay enabled by default")
	}
	if cfg.Aliases == nil {
		t.Error("aliases should be non-nil")
	}
}

func TestLoadInvalid(t *testing.T) {
	dir := t.TempDir()
	tests := map[string]string{
		"bad yaml":  "log_level: [",
		"bad level": "log_level: loud\n",
		"bad alias": "aliases:\n  \"a/b\": /tmp\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name+".yaml")
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := Load(path); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestLoadOrDefaultMissing(t *testing.T) {
	t.Setenv(EnvLogLevel, "")
	t.Setenv(EnvBaseDir, "")
	t.Setenv(EnvHistory, "")

	cfg, err := LoadOrDefault(filepath.Join(t.TempDir(), ConfigFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "error")
	t.Setenv(EnvBaseDir, "/opt")
	t.Setenv(EnvHistory, "false")

	cfg := Default()
	if err := cfg.ApplyEnv(); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.LogLevel != "error" || cfg.BaseDir != "/opt" || cfg.History.Enabled {
		t.Errorf("config = %+v", cfg)
	}

	t.Setenv(EnvHistory, "maybe")
	if err := Default().ApplyEnv(); err == nil {
		t.Error("expected error for unparsable WCD_HISTORY")
	}
}

func TestDotenvNextToConfig(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte("WCD_BASE_DIR=/from/dotenv\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvBaseDir, "")
	os.Unsetenv(EnvBaseDir)

	cfg, err := LoadOrDefault(filepath.Join(dir, ConfigFile))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.BaseDir != "/from/dotenv" {
		t.Errorf("BaseDir = %q, want /from/dotenv", cfg.BaseDir)
	}
}

func TestExpandAlias(t *testing.T) {
	cfg := Default()
	cfg.Aliases["uni"] = "/home/me/Uni"

	tests := []struct {
		expr    string
		want    string
		wantErr bool
	}{
		{expr: "@uni", want: "/home/me/Uni"},
		{expr: "@uni/21*/Ein*", want: filepath.Join("/home/me/Uni", "21*", "Ein*")},
		{expr: "plain/*", want: "plain/*"},
		{expr: "~/src/*", want: filepath.Join(xdg.Home, "src/*")},
		{expr: "@nope/x", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := cfg.ExpandAlias(tt.expr)
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("expand: %v", err)
			}
			if got != tt.want {
				t.Errorf("ExpandAlias(%q) = %q, want %q", tt.expr, got, tt.want)
			}
		})
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := Default()
	if cfg.HistoryPath() != DefaultHistoryPath() {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath())
	}
	cfg.History.Path = "/tmp/h.db"
	if cfg.HistoryPath() != "/tmp/h.db" {
		t.Errorf("HistoryPath = %q", cfg.HistoryPath())
	}
}
