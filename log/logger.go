package log

import (
	"io"
	"os"

	"github.com/op/go-logging"
)

// Logger verbosity levels, most verbose first.
type Level uint8

const (
	Debug Level = iota
	Info
	Notice
	Warning
	Error
)

var levelMap = map[Level]logging.Level{
	Debug:   logging.DEBUG,
	Info:    logging.INFO,
	Notice:  logging.NOTICE,
	Warning: logging.WARNING,
	Error:   logging.ERROR,
}

// All emitted log lines use this format.
var format = logging.MustStringFormatter(
	`%{color}[%{time:15:04:05.000}] [%{module}] [%{level}]%{color:reset} %{message}`,
)

// The active leveled backend. Rebuilt whenever the sink changes.
var backend logging.LeveledBackend

// The Logger interface exposed to the rest of the codebase. It intentionally
// hides the concrete go-logging type so packages only depend on this package.
type Logger interface {
	Debug(v ...interface{})
	Debugf(format string, v ...interface{})

	Info(v ...interface{})
	Infof(format string, v ...interface{})

	Notice(v ...interface{})
	Noticef(format string, v ...interface{})

	Warning(v ...interface{})
	Warningf(format string, v ...interface{})

	Error(v ...interface{})
	Errorf(format string, v ...interface{})
}

// Create a new named logger. Names show up as the module field in log lines.
func New(name string) Logger {
	return logging.MustGetLogger(name)
}

// Redirect log output to the given sink. Resets verbosity to Notice.
func SetSink(sink io.Writer) {
	raw := logging.NewLogBackend(sink, "", 0)
	backend = logging.AddModuleLevel(logging.NewBackendFormatter(raw, format))
	backend.SetLevel(levelMap[Notice], "")
	logging.SetBackend(backend)
}

// Adjust logger verbosity for all modules.
func SetLevel(level Level) {
	lvl, exists := levelMap[level]
	if !exists {
		lvl = logging.NOTICE
	}
	backend.SetLevel(lvl, "")
}

func init() {
	SetSink(os.Stdout)
}
