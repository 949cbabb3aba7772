package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *structpb.Struct)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var rawEntry json.RawMessage
		if err := decoder.Decode(&rawEntry); err != nil {
			return err
		}

		var logEntry structpb.Struct
		if err := protojson.Unmarshal(rawEntry, &logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		LaunchFailures: NewPathCounter("command", "kind"),
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       StrCounter `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	CommandNames   StrCounter   `json:"command_names"`
	CommandKinds   StrCounter   `json:"command_kinds"`
	ExitStatuses   StrCounter   `json:"exit_statuses"`
	LaunchFailures *PathCounter `json:"launch_failures"`
	SessionEnds    StrCounter   `json:"session_ends"`
}

// Update adds a single log entry to the report.
func (r *Report) Update(le *structpb.Struct) {
	r.LogEntries++

	fields := le.GetFields()
	if id := fields[FieldSessionID].GetStringValue(); id != "" {
		r.Sessions.Increment(id)
	}

	for name, value := range fields {
		event := value.GetStructValue().GetFields()

		switch name {
		case FieldTimestampMicros, FieldSessionID:
			// Envelope fields.
		case EventSessionStart:
			// Counted through Sessions.
		case EventRunCommand:
			if command := event["command"].GetListValue().GetValues(); len(command) > 0 {
				r.CommandNames.Increment(command[0].GetStringValue())
			}
			r.CommandKinds.Increment(event["kind"].GetStringValue())
			r.ExitStatuses.Increment(fmt.Sprintf("%d", int(event["exit_status"].GetNumberValue())))
		case EventLaunchFailure:
			command := ""
			if values := event["command"].GetListValue().GetValues(); len(values) > 0 {
				command = values[0].GetStringValue()
			}
			r.LaunchFailures.Increment(command, event["kind"].GetStringValue())
		case EventSessionEnd:
			r.SessionEnds.Increment(event["reason"].GetStringValue())
		default:
			r.InvalidEntries.Increment(name)
		}
	}
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Count returns the number of times key was seen.
func (s StrCounter) Count(key string) int {
	return s.internal[key]
}

// Len returns the number of distinct keys.
func (s StrCounter) Len() int {
	return len(s.internal)
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	if s.internal == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of string tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Count returns the number of times the tuple was seen.
func (ctr *PathCounter) Count(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	out := []Count{}
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
