package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qerrors "github.com/quakeditor/quake/internal/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveFlash != time.Second {
		t.Errorf("SaveFlash = %v, want 1s", cfg.SaveFlash)
	}
	if !cfg.LineNumbers {
		t.Error("LineNumbers should default to true")
	}
	if cfg.LogFile != "" {
		t.Errorf("LogFile = %q, want empty", cfg.LogFile)
	}
}

func TestLoad_AllFields(t *testing.T) {
	path := writeConfig(t, `
save_flash: 250ms
line_numbers: false
log_file: /tmp/quake.log
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveFlash != 250*time.Millisecond {
		t.Errorf("SaveFlash = %v", cfg.SaveFlash)
	}
	if cfg.LineNumbers {
		t.Error("LineNumbers should be false")
	}
	if cfg.LogFile != "/tmp/quake.log" {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
	if cfg.Path() != path {
		t.Errorf("Path = %q, want %q", cfg.Path(), path)
	}
}

func TestLoad_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "log_file: editor.log\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.SaveFlash != DefaultSaveFlash || !cfg.LineNumbers {
		t.Errorf("unset fields should keep defaults: %+v", cfg)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		kind    qerrors.Kind
	}{
		{"malformed yaml", "save_flash: [1, 2\n", qerrors.KindConfig},
		{"bad duration", "save_flash: soon\n", qerrors.KindConfig},
		{"negative duration", "save_flash: -1s\n", qerrors.KindInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil {
				t.Fatal("expected error")
			}
			if !qerrors.Is(err, tt.kind) {
				t.Errorf("kind = %v, want %v (%v)", qerrors.GetKind(err), tt.kind, err)
			}
		})
	}
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	p, err := DefaultPath()
	if err != nil {
		t.Skipf("no config dir on this platform: %v", err)
	}
	if filepath.Base(p) != "config.yaml" || filepath.Base(filepath.Dir(p)) != "quake" {
		t.Errorf("DefaultPath = %q", p)
	}
}
