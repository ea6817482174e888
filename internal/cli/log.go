package cli

import (
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing timestamps as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// levelFor picks the log level: --verbose wins, then the configured
// log_level, then info.
func levelFor(verbose bool, configured string) log.Level {
	if verbose {
		return LogDebug
	}
	if configured == "" {
		return LogInfo
	}
	level, err := log.ParseLevel(strings.ToLower(configured))
	if err != nil {
		return LogInfo
	}
	return level
}

// progress times one operation and logs it at debug level when done.
// Not safe for concurrent use.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with keyvals and the elapsed time, rounded to the
// millisecond.
func (p *progress) done(msg string, keyvals ...any) {
	keyvals = append(keyvals, "duration", time.Since(p.start).Round(time.Millisecond))
	p.logger.Debug(msg, keyvals...)
}
