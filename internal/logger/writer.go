package logger

import (
	"bufio"
	"errors"
	"io"
	"sync"
)

const defaultSinkBuffer = 64 * 1024

// writeCmd is one unit of work for the writer goroutine: either a log
// line to append, or (when ack is set) a flush request.
type writeCmd struct {
	line []byte
	ack  chan error
}

// asyncWriter appends log lines to its sinks from a single goroutine.
// Sinks are buffered and flushed when the queue drains, so a burst of
// lines costs one flush instead of one per line; this suits the
// stdout-plus-logfile pair the bot writes to. The first write error is
// latched and returned from every call after it.
type asyncWriter struct {
	cmds      chan writeCmd
	done      chan struct{}
	closeOnce sync.Once

	mu    sync.Mutex
	err   error
	sinks []*bufio.Writer
}

func newAsyncWriter(writers []io.Writer, bufSize int) *asyncWriter {
	if bufSize <= 0 {
		bufSize = defaultSinkBuffer
	}
	w := &asyncWriter{
		cmds: make(chan writeCmd, 256),
		done: make(chan struct{}),
	}
	for _, sink := range writers {
		if sink == nil {
			continue
		}
		w.sinks = append(w.sinks, bufio.NewWriterSize(sink, bufSize))
	}
	go w.run()
	return w
}

func (w *asyncWriter) run() {
	defer close(w.done)
	for cmd := range w.cmds {
		if cmd.ack != nil {
			cmd.ack <- w.flushSinks()
			continue
		}
		if len(cmd.line) > 0 {
			w.append(cmd.line)
		}
		if len(w.cmds) == 0 {
			if err := w.flushSinks(); err != nil {
				w.latch(err)
			}
		}
	}
	if err := w.flushSinks(); err != nil {
		w.latch(err)
	}
}

// Write enqueues one line for the writer goroutine. It blocks only
// when the queue is full, so logging never reorders lines.
func (w *asyncWriter) Write(p []byte) error {
	if err := w.failure(); err != nil {
		return err
	}
	if len(p) == 0 {
		return nil
	}
	line := make([]byte, len(p))
	copy(line, p)
	w.cmds <- writeCmd{line: line}
	return nil
}

// Flush waits until everything queued so far has reached the sinks.
func (w *asyncWriter) Flush() error {
	if err := w.failure(); err != nil {
		return err
	}
	ack := make(chan error, 1)
	w.cmds <- writeCmd{ack: ack}
	return <-ack
}

// Close drains the queue, flushes the sinks, and reports the first
// write error encountered over the writer's lifetime.
func (w *asyncWriter) Close() error {
	w.closeOnce.Do(func() {
		close(w.cmds)
	})
	<-w.done
	return w.failure()
}

func (w *asyncWriter) append(line []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, sink := range w.sinks {
		if _, err := sink.Write(line); err != nil {
			if w.err == nil {
				w.err = err
			}
			return
		}
	}
}

func (w *asyncWriter) flushSinks() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var errs []error
	for _, sink := range w.sinks {
		if err := sink.Flush(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (w *asyncWriter) failure() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.err
}

func (w *asyncWriter) latch(err error) {
	if err == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.err == nil {
		w.err = err
	}
}
