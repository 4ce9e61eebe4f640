package log

import (
	"fmt"
	"strings"
)

// Level is the severity of a log message. The zero value is
// LevelInherit, which is not a severity of its own: a node holding it
// defers to the nearest ancestor with a concrete level.
type Level int

const (
	LevelInherit Level = iota
	LevelTrace
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelNames = map[Level]string{
	LevelInherit: "INHERIT",
	LevelTrace:   "TRACE",
	LevelDebug:   "DEBUG",
	LevelInfo:    "INFO",
	LevelWarn:    "WARN",
	LevelError:   "ERROR",
	LevelFatal:   "FATAL",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("LEVEL(%d)", int(l))
}

// IsSet reports whether l is a concrete severity rather than the
// inherit marker.
func (l Level) IsSet() bool {
	return l != LevelInherit
}

// ParseLevel maps a level name to a Level. The empty string and
// "inherit" parse to LevelInherit; any unrecognized name falls back to
// LevelInfo.
func ParseLevel(level string) Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "inherit":
		return LevelInherit
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return LevelInfo
	}
}

func (l Level) MarshalYAML() (interface{}, error) {
	return strings.ToLower(l.String()), nil
}

func (l *Level) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	*l = ParseLevel(s)
	return nil
}
