package voice

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"fjacquet/finsight/internal/fileutils"
	"fjacquet/finsight/internal/logging"

	"gopkg.in/yaml.v3"
)

// DefaultHistorySize is the default and largest command history size.
const DefaultHistorySize = 10

// HistoryEntry is one finalized transcript.
type HistoryEntry struct {
	Command   string    `json:"command" yaml:"command"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
}

// History keeps the most recent transcripts of one session, optionally
// mirrored to a YAML file. It is display data only.
type History struct {
	mu      sync.Mutex
	path    string
	size    int
	entries []HistoryEntry
	logger  logging.Logger
}

// NewHistory creates a history bounded to size entries. When path is not
// empty the previous contents are loaded from it; an unreadable file is
// logged and treated as empty.
func NewHistory(path string, size int, logger logging.Logger) *History {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if size <= 0 || size > DefaultHistorySize {
		size = DefaultHistorySize
	}
	h := &History{path: path, size: size, logger: logger}
	if path != "" {
		if err := h.load(); err != nil {
			logger.WithError(err).Warn("Could not load command history", logging.F(logging.FieldPath, path))
		}
	}
	return h
}

// Add appends a transcript, drops the oldest entries beyond the bound and
// persists the result.
func (h *History) Add(command string, at time.Time) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries, HistoryEntry{Command: command, Timestamp: at})
	if len(h.entries) > h.size {
		h.entries = append([]HistoryEntry(nil), h.entries[len(h.entries)-h.size:]...)
	}
	if err := h.save(); err != nil {
		h.logger.WithError(err).Warn("Could not save command history", logging.F(logging.FieldPath, h.path))
	}
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]HistoryEntry, len(h.entries))
	copy(out, h.entries)
	return out
}

// Clear empties the history and its file.
func (h *History) Clear() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = nil
	return h.save()
}

func (h *History) load() error {
	data, err := os.ReadFile(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("error reading history file: %w", err)
	}

	var entries []HistoryEntry
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("error parsing history file: %w", err)
	}
	if len(entries) > h.size {
		entries = entries[len(entries)-h.size:]
	}
	h.entries = entries
	return nil
}

func (h *History) save() error {
	if h.path == "" {
		return nil
	}
	data, err := yaml.Marshal(h.entries)
	if err != nil {
		return fmt.Errorf("error encoding history: %w", err)
	}
	err = fileutils.WriteFileAtomic(h.path, 0o600, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
	if err != nil {
		return fmt.Errorf("error writing history file: %w", err)
	}
	return nil
}
