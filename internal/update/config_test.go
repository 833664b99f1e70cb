package update

import "testing"

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("NUKECORE_DB_PATH", "/tmp/core.db")
	t.Setenv("NUKECORE_SPRINT_MINUTES", "50")
	t.Setenv("NUKECORE_TIMELINE_SCALE", "3.5")
	t.Setenv("NUKECORE_ALERT_BUFFER", "128")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.DatabasePath != "/tmp/core.db" {
		t.Fatalf("expected db path override, got %q", cfg.DatabasePath)
	}
	if cfg.SprintMinutes != 50 {
		t.Fatalf("expected sprint minutes 50, got %d", cfg.SprintMinutes)
	}
	if cfg.TimelineScale != 3.5 {
		t.Fatalf("expected timeline scale 3.5, got %v", cfg.TimelineScale)
	}
	if cfg.AlertBuffer != 128 {
		t.Fatalf("expected alert buffer 128, got %d", cfg.AlertBuffer)
	}
}

func TestRuntimeConfigIgnoresInvalidValues(t *testing.T) {
	t.Setenv("NUKECORE_SPRINT_MINUTES", "not-a-number")
	t.Setenv("NUKECORE_TIMELINE_SCALE", "-1")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.SprintMinutes != 25 {
		t.Fatalf("expected default sprint minutes kept, got %d", cfg.SprintMinutes)
	}
	if cfg.TimelineScale != 2.0 {
		t.Fatalf("expected default scale kept, got %v", cfg.TimelineScale)
	}
}
