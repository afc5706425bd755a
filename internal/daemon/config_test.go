package daemon

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cheerlink/cheerlink/internal/app/engagement"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.Host != "127.0.0.1" {
		t.Errorf("host = %q, want 127.0.0.1", cfg.API.Host)
	}
	if cfg.API.Port != 11721 {
		t.Errorf("port = %d, want 11721", cfg.API.Port)
	}
	if cfg.Engagement.WindowMS != 30000 {
		t.Errorf("window = %d, want 30000", cfg.Engagement.WindowMS)
	}
	if cfg.Engagement.LevelDownDelayMS != 3000 {
		t.Errorf("level down delay = %d, want 3000", cfg.Engagement.LevelDownDelayMS)
	}
	if cfg.Engagement.Thresholds != [4]int{10, 15, 20, 25} {
		t.Errorf("thresholds = %v, want [10 15 20 25]", cfg.Engagement.Thresholds)
	}
	if cfg.Telemetry.Prometheus {
		t.Error("prometheus should default off")
	}
}

func TestLoadConfig_NoFileUsesDefaults(t *testing.T) {
	t.Setenv("CHEERLINK_HOME", t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 11721 {
		t.Errorf("port = %d, want default 11721", cfg.API.Port)
	}
}

func TestSaveLoadConfig_Roundtrip(t *testing.T) {
	t.Setenv("CHEERLINK_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.API.Port = 9999
	cfg.Feedback.BridgeURL = "http://localhost:8123/haptic"
	cfg.Telemetry.Prometheus = true
	if err := SaveConfig(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.API.Port != 9999 {
		t.Errorf("port = %d, want 9999", loaded.API.Port)
	}
	if loaded.Feedback.BridgeURL != "http://localhost:8123/haptic" {
		t.Errorf("bridge url = %q", loaded.Feedback.BridgeURL)
	}
	if !loaded.Telemetry.Prometheus {
		t.Error("prometheus flag lost in roundtrip")
	}
}

func TestLoadConfig_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CHEERLINK_HOME", dir)

	partial := "[api]\nport = 4242\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(partial), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.API.Port != 4242 {
		t.Errorf("port = %d, want 4242", cfg.API.Port)
	}
	if cfg.Engagement.WindowMS != 30000 {
		t.Errorf("window = %d, want default 30000", cfg.Engagement.WindowMS)
	}
}

func TestTuningFromConfig(t *testing.T) {
	ec := EngagementConfig{
		WindowMS:         20000,
		LevelDownDelayMS: 1500,
		Thresholds:       [4]int{5, 8, 12, 16},
	}
	tn := tuningFromConfig(ec)
	if tn.Window != 20*time.Second {
		t.Errorf("window = %v, want 20s", tn.Window)
	}
	if tn.LevelDownDelay != 1500*time.Millisecond {
		t.Errorf("delay = %v, want 1.5s", tn.LevelDownDelay)
	}
	if tn.Thresholds != [4]int{5, 8, 12, 16} {
		t.Errorf("thresholds = %v", tn.Thresholds)
	}
}

func TestTuningFromConfig_RejectsNonAscendingThresholds(t *testing.T) {
	ec := EngagementConfig{
		WindowMS:         30000,
		LevelDownDelayMS: 3000,
		Thresholds:       [4]int{10, 9, 20, 25},
	}
	tn := tuningFromConfig(ec)
	if tn.Thresholds != engagement.DefaultTuning().Thresholds {
		t.Errorf("thresholds = %v, want defaults for non-ascending config", tn.Thresholds)
	}
}
