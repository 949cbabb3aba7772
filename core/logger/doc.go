// Package logger records shell activity as a newline delimited JSON event log.
//
// Each line is a protobuf Struct encoded with protojson holding a timestamp,
// the session ID and exactly one event keyed by its event name.
package logger
