package logger

import (
	"log"
	"os"
)

// Satisfies Logger interface
type stderrLogger struct {
	logger *log.Logger
}

func newStderrLogger() *stderrLogger {
	return &stderrLogger{
		// log package sends logs into stderr by default,
		// but prefix and flags must be adjustable
		logger: log.New(os.Stderr, "ERROR: ", log.Ldate|log.Ltime),
	}
}

func (l *stderrLogger) log(entry *LogEntry) {
	l.logger.Println(formatText(entry))
}

func (l *stderrLogger) Log(entry *LogEntry) {
	if !preprocess(entry, nil) {
		return
	}

	l.log(entry)

	if entry.rawLevel >= FatalLogLevel {
		handleCritical(entry)
	}
}
