package tasklog

import (
	"bufio"
	"encoding/json"
	"os"
	"sync"
)

// Log is an append-only JSONL writer for TaskRunRecord entries, one file
// shared by every consult call. Guarded by a single mutex: writes are
// infrequent (one per task) and must never interleave partial lines.
type Log struct {
	mu   sync.Mutex
	path string
}

// NewLog returns a Log for the task-run log at path; it opens nothing. The
// file is opened (and created if absent) fresh on every Append, so a log
// rotated out from under the process is picked back up automatically.
func NewLog(path string) *Log {
	return &Log{path: path}
}

// Append writes one TaskRunRecord as a single JSON line.
func (l *Log) Append(record TaskRunRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	line, err := json.Marshal(record)
	if err != nil {
		return err
	}
	_, err = f.Write(append(line, '\n'))
	return err
}

// Tail returns the last limit records. Malformed lines are skipped rather
// than aborting the whole read.
func (l *Log) Tail(limit int) ([]TaskRunRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.Open(l.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var all []TaskRunRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec TaskRunRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		all = append(all, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if limit <= 0 || limit >= len(all) {
		return all, nil
	}
	return all[len(all)-limit:], nil
}
