package assemble

import "time"

// State is a step of a generation run.
type State int

const (
	Initializing State = iota
	EmittingCard
	PageBoundary
	Finalizing
	Complete
	Failed
)

func (s State) String() string {
	switch s {
	case Initializing:
		return "initializing"
	case EmittingCard:
		return "emitting_card"
	case PageBoundary:
		return "page_boundary"
	case Finalizing:
		return "finalizing"
	case Complete:
		return "complete"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no transition leaves s.
func (s State) Terminal() bool {
	return s == Complete || s == Failed
}

// Observer receives progress notifications from generation runs.
// Calls are made synchronously from the generating goroutine.
type Observer interface {
	StateChanged(s State)
	CardRendered(d time.Duration)
	Finished(cards, pages int, d time.Duration, err error)
}

type nopObserver struct{}

func (nopObserver) StateChanged(State)                      {}
func (nopObserver) CardRendered(time.Duration)              {}
func (nopObserver) Finished(int, int, time.Duration, error) {}
