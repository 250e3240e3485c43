// Package log provides the named, leveled loggers used throughout tetracull.
//
// Each subsystem asks for its own module logger: "bvh" and "world" report BVH build
// statistics at debug level, "gltf" warns about document content it skips, "animation"
// warns about channels with no matching node, and the CLI logs as "tetracull". All of
// them share one colored backend writing to stderr; SetSink redirects it (tests use a
// buffer) and SetLevel filters it, with the CLI mapping -v / -vv to Info / Debug.
package log

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/op/go-logging"
)

type Level logging.Level

// The levels that can be passed to the SetLevel function.
const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelNames = map[Level]string{
	Debug:   "debug",
	Info:    "info",
	Notice:  "notice",
	Warning: "warning",
	Error:   "error",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// ParseLevel returns the Level matching the (case-insensitive) name given.
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for level, levelName := range levelNames {
		if levelName == name {
			return level, nil
		}
	}
	return Notice, fmt.Errorf("log: unknown level %q", name)
}

// The logger format
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The internal leveled logger backend
var leveledBackend logging.LeveledBackend

// The currently selected level; kept so that replacing the sink doesn't reset it.
var currentLevel = Notice

// The logger interface
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Override the backend output sink.
func SetSink(sink io.Writer) {
	backend := logging.NewLogBackend(sink, "", 0)
	backendWithFormatter := logging.NewBackendFormatter(backend, format)
	leveledBackend = logging.AddModuleLevel(backendWithFormatter)
	logging.SetBackend(leveledBackend)
	SetLevel(currentLevel)
}

// Set logger verbosity.
func SetLevel(level Level) {
	var loggerLevel logging.Level

	switch level {
	case Debug:
		loggerLevel = logging.DEBUG
	case Info:
		loggerLevel = logging.INFO
	case Notice:
		loggerLevel = logging.NOTICE
	case Warning:
		loggerLevel = logging.WARNING
	case Error:
		loggerLevel = logging.ERROR
	default:
		loggerLevel = logging.NOTICE
	}

	currentLevel = level
	leveledBackend.SetLevel(loggerLevel, "")
}

// CurrentLevel returns the verbosity set by the last SetLevel call.
func CurrentLevel() Level {
	return currentLevel
}

func init() {
	SetSink(os.Stderr)
	SetLevel(Notice)
}
