package update

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type userStatsState struct {
	TasksCompleted int `json:"tasks_completed"`
	FocusMinutes   int `json:"focus_minutes"`
	Streak         int `json:"streak"`
	XP             int `json:"xp"`
}

func (m *Model) persistStats() {
	if strings.TrimSpace(m.statsFilePath) == "" {
		return
	}
	if err := saveUserStats(m.statsFilePath, m.Stats); err != nil {
		m.Status = StatusBar{Text: fmt.Sprintf("persist stats failed: %v", err), IsError: true}
	}
}

func saveUserStats(path string, stats UserStats) error {
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	payload, err := json.MarshalIndent(userStatsState{
		TasksCompleted: stats.TasksCompleted,
		FocusMinutes:   stats.FocusMinutes,
		Streak:         stats.Streak,
		XP:             stats.XP,
	}, "", "  ")
	if err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, append(payload, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func loadUserStats(path string) (UserStats, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return UserStats{}, nil
	}
	raw, err := os.ReadFile(trimmed)
	if err != nil {
		if os.IsNotExist(err) {
			return UserStats{}, nil
		}
		return UserStats{}, err
	}
	if strings.TrimSpace(string(raw)) == "" {
		return UserStats{}, nil
	}
	var state userStatsState
	if err := json.Unmarshal(raw, &state); err != nil {
		return UserStats{}, err
	}
	return UserStats{
		TasksCompleted: state.TasksCompleted,
		FocusMinutes:   state.FocusMinutes,
		Streak:         state.Streak,
		XP:             state.XP,
	}, nil
}
