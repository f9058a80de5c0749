// Package log provides the intake event journal.
// This file appends JSON events to log.jsonl.
package log

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Event type constants.
const (
	EventSessionStarted   = "session_started"
	EventClassSelected    = "class_selected"
	EventStepChanged      = "step_changed"
	EventParticipantAdded = "participant_added"
	EventDraftDiscarded   = "draft_discarded"
	EventFlowReset        = "flow_reset"
	EventHandoff          = "handoff"
)

// Channel values identify the front end that produced an event.
const (
	ChannelTerminal = "terminal"
	ChannelTelegram = "telegram"
	ChannelCompose  = "compose"
)

// FileName is the journal file inside the log directory.
const FileName = "log.jsonl"

// LogEvent represents a single structured event written to the journal.
type LogEvent struct {
	Time         time.Time         `json:"time"`
	Event        string            `json:"event"`
	Session      string            `json:"session,omitempty"`
	Channel      string            `json:"channel,omitempty"`
	From         string            `json:"from,omitempty"`
	Step         string            `json:"step,omitempty"`
	ClassType    string            `json:"class_type,omitempty"`
	Participants int               `json:"participants,omitempty"`
	Mode         string            `json:"mode,omitempty"`
	Error        string            `json:"error,omitempty"`
	Data         map[string]string `json:"data,omitempty"`
}

// Logger writes append-only JSONL events to a journal file. A nil *Logger
// discards everything, so callers need not check whether journaling is on.
type Logger struct {
	path string
	mu   sync.Mutex
}

// NewLogger creates a Logger that writes to log.jsonl inside dir.
// Creates dir if it does not already exist.
// Does not truncate an existing journal.
func NewLogger(dir string) (*Logger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	return &Logger{
		path: filepath.Join(dir, FileName),
	}, nil
}

// Path returns the journal file path.
func (l *Logger) Path() string {
	if l == nil {
		return ""
	}
	return l.path
}

// Append writes a single LogEvent as one JSON line to the journal.
// If event.Time is the zero value, it is automatically set to time.Now().UTC().
// Thread-safe via mutex.
func (l *Logger) Append(event LogEvent) error {
	if l == nil {
		return nil
	}
	if event.Time.IsZero() {
		event.Time = time.Now().UTC()
	}

	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal log event: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write log event: %w", err)
	}

	return nil
}

// ReadAll reads and parses all events from the journal.
// Returns an empty slice (not an error) if the file does not exist.
func (l *Logger) ReadAll() ([]LogEvent, error) {
	if l == nil {
		return []LogEvent{}, nil
	}
	f, err := os.Open(l.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []LogEvent{}, nil
		}
		return nil, fmt.Errorf("open log file: %w", err)
	}
	defer f.Close()

	var events []LogEvent
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var event LogEvent
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("parse log line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log file: %w", err)
	}

	return events, nil
}
