package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath  string
	StatsPath     string
	SprintMinutes int
	TimelineScale float64
	AlertBuffer   int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:  "nukecore.db",
		StatsPath:     "",
		SprintMinutes: 25,
		TimelineScale: 2.0,
		AlertBuffer:   64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("NUKECORE_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("NUKECORE_STATS_PATH")); v != "" {
		cfg.StatsPath = v
	}
	if v, ok := getEnvInt("NUKECORE_SPRINT_MINUTES"); ok && v > 0 {
		cfg.SprintMinutes = v
	}
	if v, ok := getEnvFloat("NUKECORE_TIMELINE_SCALE"); ok && v > 0 {
		cfg.TimelineScale = v
	}
	if v, ok := getEnvInt("NUKECORE_ALERT_BUFFER"); ok && v > 0 {
		cfg.AlertBuffer = v
	}
	return cfg
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

func getEnvFloat(name string) (float64, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
