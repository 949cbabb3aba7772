package logger

import (
	"fmt"
	"io"
	"math/rand"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// Entry field and event names.
const (
	FieldTimestampMicros = "timestamp_micros"
	FieldSessionID       = "session_id"

	EventSessionStart  = "session_start"
	EventRunCommand    = "run_command"
	EventLaunchFailure = "launch_failure"
	EventSessionEnd    = "session_end"
)

// Command kinds recorded with run_command events.
const (
	KindBuiltin  = "builtin"
	KindExternal = "external"
)

// Launch failure kinds.
const (
	FailureNotFound = "not_found"
	FailureSpawn    = "spawn"
)

// Session end reasons.
const (
	EndExit  = "exit"
	EndEOF   = "eof"
	EndError = "error"
)

// LogRecorder is a callback that stores events in an external datastore.
type LogRecorder func(le *structpb.Struct) error

// Logger captures shell events.
type Logger struct {
	Record LogRecorder
}

// NewJsonLinesLogRecorder creates a Logger that exports logs in newline
// delimited JSON object format.
func NewJsonLinesLogRecorder(w io.Writer) *Logger {
	marshaler := protojson.MarshalOptions{UseProtoNames: true}
	return &Logger{
		Record: func(le *structpb.Struct) error {
			entry, err := marshaler.Marshal(le)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(w, string(entry))
			return err
		},
	}
}

// Discard creates a Logger that drops every event.
func Discard() *Logger {
	return &Logger{
		Record: func(*structpb.Struct) error { return nil },
	}
}

func (l *Logger) recordEvent(sessionID, event string, fields map[string]interface{}) error {
	le, err := structpb.NewStruct(map[string]interface{}{
		FieldTimestampMicros: time.Now().UnixNano() / int64(time.Microsecond),
		FieldSessionID:       sessionID,
		event:                fields,
	})
	if err != nil {
		return err
	}

	return l.Record(le)
}

// NewSession creates a logger with attached session ID.
func (l *Logger) NewSession() *SessionLogger {
	return &SessionLogger{Logger: l, sessionID: fmt.Sprintf("%d", rand.Uint64())}
}

// SessionLogger logs messages with a shared session ID.
type SessionLogger struct {
	*Logger
	sessionID string
}

// SessionID returns the ID attached to every event of the session.
func (l *SessionLogger) SessionID() string {
	return l.sessionID
}

// record logs an event under the session. A nil SessionLogger drops events.
func (l *SessionLogger) record(event string, fields map[string]interface{}) error {
	if l == nil || l.Logger == nil {
		return nil
	}
	return l.recordEvent(l.sessionID, event, fields)
}

// SessionStart records the start of an interactive session.
func (l *SessionLogger) SessionStart(pid int, cwd string) error {
	return l.record(EventSessionStart, map[string]interface{}{
		"pid": pid,
		"cwd": cwd,
	})
}

// RunCommand records a completed command.
func (l *SessionLogger) RunCommand(argv []string, kind string, exitStatus int) error {
	return l.record(EventRunCommand, map[string]interface{}{
		"command":     toList(argv),
		"kind":        kind,
		"exit_status": exitStatus,
	})
}

// LaunchFailure records an external command that could not be started.
func (l *SessionLogger) LaunchFailure(argv []string, kind string, cause error) error {
	return l.record(EventLaunchFailure, map[string]interface{}{
		"command": toList(argv),
		"kind":    kind,
		"error":   cause.Error(),
	})
}

// SessionEnd records why the session stopped.
func (l *SessionLogger) SessionEnd(reason string) error {
	return l.record(EventSessionEnd, map[string]interface{}{
		"reason": reason,
	})
}

func toList(argv []string) []interface{} {
	out := make([]interface{}, 0, len(argv))
	for _, arg := range argv {
		out = append(out, arg)
	}
	return out
}
