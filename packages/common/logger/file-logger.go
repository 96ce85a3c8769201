package logger

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"slices"
	"sync"

	jsoniter "github.com/json-iterator/go"
)

const queueSize = 1024

// Satisfies ConcurrentLogger and ForwardingLogger interfaces.
//
// Until started, entries are only forwarded.
type FileLogger struct {
	name string

	// Guards isRunning and queue lifecycle
	stateMut  sync.RWMutex
	isRunning bool
	queue     chan *LogEntry
	done      chan struct{}

	// Guards out
	writeMut sync.Mutex
	out      io.Writer
	file     *os.File

	forwardingsMut sync.RWMutex
	forwardings    []Logger

	streams sync.Pool
}

func NewFileLogger(name string) *FileLogger {
	return &FileLogger{
		name:        name,
		forwardings: []Logger{},
		streams: sync.Pool{
			New: func() any {
				return jsoniter.NewStream(jsoniter.ConfigFastest, nil, 1024)
			},
		},
	}
}

// Opens <dir>/<name>.log and starts writing entries into it in background.
func (l *FileLogger) Start(dir string) error {
	l.stateMut.Lock()
	defer l.stateMut.Unlock()

	if l.isRunning {
		return errors.New("logger already started")
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	f, err := os.OpenFile(
		filepath.Join(dir, l.name+".log"),
		os.O_APPEND|os.O_CREATE|os.O_WRONLY,
		0644, // -rw-r--r--
	)
	if err != nil {
		return err
	}

	l.writeMut.Lock()
	l.file = f
	l.out = f
	l.writeMut.Unlock()

	l.queue = make(chan *LogEntry, queueSize)
	l.done = make(chan struct{})
	l.isRunning = true

	go l.consume(l.queue, l.done)

	return nil
}

func (l *FileLogger) consume(queue <-chan *LogEntry, done chan<- struct{}) {
	for entry := range queue {
		l.write(entry)
	}
	close(done)
}

// Writes all queued entries and closes the log file.
func (l *FileLogger) Stop() error {
	l.stateMut.Lock()

	if !l.isRunning {
		l.stateMut.Unlock()
		return errors.New("logger isn't started, hence can't be stopped")
	}

	l.isRunning = false
	close(l.queue)
	done := l.done

	l.stateMut.Unlock()

	<-done

	l.writeMut.Lock()
	defer l.writeMut.Unlock()

	err := l.file.Close()
	l.file = nil
	l.out = nil

	return err
}

func (l *FileLogger) write(entry *LogEntry) {
	stream := l.streams.Get().(*jsoniter.Stream)
	defer l.streams.Put(stream)

	stream.Reset(nil)
	stream.Error = nil

	stream.WriteVal(entry)
	if stream.Error != nil {
		Stderr.log(&LogEntry{Source: "LOG", Level: ErrorLogLevel.String(), Message: "failed to encode log entry", Error: stream.Error.Error()})
		return
	}

	// Without this all logs will be written in single line
	stream.WriteRaw("\n")

	l.writeMut.Lock()
	defer l.writeMut.Unlock()

	if l.out == nil {
		return
	}

	if _, err := l.out.Write(stream.Buffer()); err != nil {
		Stderr.log(&LogEntry{Source: "LOG", Level: ErrorLogLevel.String(), Message: "failed to write log entry", Error: err.Error()})
	}
}

func (l *FileLogger) log(entry *LogEntry) {
	l.stateMut.RLock()
	defer l.stateMut.RUnlock()

	if !l.isRunning {
		return
	}

	select {
	case l.queue <- entry:
	default:
		// queue is overflowed
		l.write(entry)
	}
}

func (l *FileLogger) Log(entry *LogEntry) {
	l.forwardingsMut.RLock()
	forwardings := l.forwardings
	l.forwardingsMut.RUnlock()

	if !preprocess(entry, forwardings) {
		return
	}

	// Immediatly handle panic or fatal log
	if entry.rawLevel >= FatalLogLevel {
		l.stateMut.RLock()
		if l.isRunning {
			l.write(entry)
		}
		l.stateMut.RUnlock()

		handleCritical(entry)
	}

	l.log(entry)
}

func (l *FileLogger) NewForwarding(logger Logger) error {
	if logger == nil {
		return errors.New("received nil instead of logger")
	}

	if logger, ok := logger.(*FileLogger); ok && l == logger {
		return errors.New("can't create forwarding to self")
	}

	l.forwardingsMut.Lock()
	defer l.forwardingsMut.Unlock()

	if slices.Contains(l.forwardings, logger) {
		return errors.New("forwarding to this logger already exists")
	}

	l.forwardings = append(slices.Clone(l.forwardings), logger)

	return nil
}

func (l *FileLogger) RemoveForwarding(logger Logger) error {
	l.forwardingsMut.Lock()
	defer l.forwardingsMut.Unlock()

	i := slices.Index(l.forwardings, logger)
	if i == -1 {
		return errors.New("forwarding to this logger doesn't exist")
	}

	l.forwardings = slices.Delete(slices.Clone(l.forwardings), i, i+1)

	return nil
}
