package model

import (
	"errors"
	"strings"
)

// Reflection is a daily logbook entry: what happened, what was learned,
// and what to do differently next time.
type Reflection struct {
	ID                string
	Date              string
	Content           string
	Learning          string
	PreventiveMeasure string
}

func (r Reflection) Validate() error {
	if strings.TrimSpace(r.ID) == "" {
		return errors.New("model: reflection id is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return errors.New("model: reflection content is required")
	}
	return nil
}
