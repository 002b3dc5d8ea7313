package director

import (
	"encoding/json"
	"os"
	"sync"
	"time"

	"github.com/consilium-ai/consilium/pkg/config"
)

// ModeChangeEvent is one circuit breaker mode-transition log line.
type ModeChangeEvent struct {
	Timestamp time.Time           `json:"timestamp"`
	Event     string              `json:"event"`
	OldMode   config.DirectorMode `json:"oldMode"`
	NewMode   config.DirectorMode `json:"newMode"`
	Reason    string              `json:"reason"`
}

// EventLog is an append-only JSONL writer for circuit breaker events, the
// same shape as pkg/tasklog.Log but its own file.
type EventLog struct {
	mu   sync.Mutex
	path string
}

// NewEventLog builds an EventLog writing to path.
func NewEventLog(path string) *EventLog {
	return &EventLog{path: path}
}

// Append writes one ModeChangeEvent as a single JSON line.
func (l *EventLog) Append(event ModeChangeEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(event)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}
