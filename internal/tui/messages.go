package tui

import (
	"github.com/rgehrsitz/paygo/internal/domain"
)

// Scene represents different screens in the TUI
type Scene int

const (
	SceneCalculator Scene = iota
	SceneWeeks
)

func (s Scene) String() string {
	switch s {
	case SceneCalculator:
		return "Calculator"
	case SceneWeeks:
		return "Saved Weeks"
	default:
		return "Unknown"
	}
}

// FormLoadedMsg carries the form state restored from the store
type FormLoadedMsg struct {
	Form domain.FormState
	Err  error
}

// FormSavedMsg reports the result of persisting the form
type FormSavedMsg struct {
	Err error
}

// WeeksLoadedMsg carries the saved weeks, latest payday first
type WeeksLoadedMsg struct {
	Weeks []domain.WeekRecord
	Err   error
}

// WeekSavedMsg reports the result of saving a week
type WeekSavedMsg struct {
	Record domain.WeekRecord
	Err    error
}

// WeekDeletedMsg reports the result of deleting a week
type WeekDeletedMsg struct {
	ID  string
	Err error
}
