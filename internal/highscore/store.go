// Package highscore persists the best score and, with the badger backend, a
// history of finished runs.
package highscore

import (
	"errors"
	"fmt"
	"time"
)

// Store is the persistence collaborator handed to sim.NewSession.
type Store interface {
	LoadHighScore() int
	SaveHighScore(score int) error
	Close() error
}

// RunRecord summarises one finished run.
type RunRecord struct {
	ID      string    `json:"id"`
	Score   int       `json:"score"`
	Kills   int       `json:"kills"`
	Waves   int       `json:"waves"`
	Frames  int       `json:"frames"`
	Seed    uint64    `json:"seed"`
	EndedAt time.Time `json:"ended_at"`
}

// RunRecorder is implemented by stores that keep a run history.
type RunRecorder interface {
	RecordRun(rec RunRecord) error
	RecentRuns(n int) ([]RunRecord, error)
}

var ErrUnknownBackend = errors.New("unknown highscore backend")

// Open returns the store for backend ("file" or "badger") rooted at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "file":
		return NewFileStore(path), nil
	case "badger":
		return OpenBadgerStore(path)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
}
