package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	ReadInput Phase = iota
	ResolveMovies
	AddMovies
)

func (p Phase) String() string {
	switch p {
	case ReadInput:
		return "read_input"
	case ResolveMovies:
		return "resolve_movies"
	case AddMovies:
		return "add_movies"
	default:
		return ""
	}
}

// sendProgress sends a progress update through the channel without blocking.
func sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

func readInputUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ReadInput,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Read %d titles", total),
	}
}

func resolvedUpdate(step, total int, res ItemResult) ProgressUpdate {
	if res.Error != nil {
		return ProgressUpdate{
			Phase:   ResolveMovies,
			Step:    step,
			Total:   total,
			Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Item.Title, res.Error),
		}
	}
	return ProgressUpdate{
		Phase:   ResolveMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s → %s (%s)", step, total, res.Item.Title, res.Entry.Title, res.Entry.Year),
		Data:    res.Entry,
	}
}

func addedUpdate(step, total int, res ItemResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Entry.Title),
		Data:    res.Entry,
	}
}

func skippedUpdate(step, total int, res ItemResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   AddMovies,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] - %s already in collection", step, total, res.Entry.Title),
	}
}
