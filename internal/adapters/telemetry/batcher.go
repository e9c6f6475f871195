package telemetry

import (
	"errors"
	"sync"
	"time"
)

// ErrBatchProcessorClosed is returned by Write after Close has been called.
var ErrBatchProcessorClosed = errors.New("telemetry: batch processor closed")

// BatchProcessor accumulates bytes written to it and flushes them to a
// callback either once the buffer reaches sizeLimit or timeLimit elapses
// since the first write into an empty buffer, whichever comes first. OTelSpan uses one to avoid
// emitting a span event per Write call from chatty log output.
type BatchProcessor struct {
	mu        sync.Mutex
	buf       []byte
	sizeLimit int
	timeLimit time.Duration
	flush     func([]byte)
	timer     *time.Timer
	closed    bool
}

// NewBatchProcessor creates a BatchProcessor that calls flush with the
// accumulated buffer whenever it reaches sizeLimit bytes or timeLimit
// elapses since the first unflushed write.
func NewBatchProcessor(sizeLimit int, timeLimit time.Duration, flush func([]byte)) *BatchProcessor {
	return &BatchProcessor{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		flush:     flush,
	}
}

// Write appends p to the internal buffer, flushing synchronously if the
// buffer has reached sizeLimit.
func (b *BatchProcessor) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, ErrBatchProcessorClosed
	}

	if len(b.buf) == 0 && b.timeLimit > 0 {
		b.timer = time.AfterFunc(b.timeLimit, b.timerFlush)
	}

	b.buf = append(b.buf, p...)

	if len(b.buf) >= b.sizeLimit {
		b.flushLocked()
	}

	return len(p), nil
}

func (b *BatchProcessor) timerFlush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked()
}

// Flush flushes any buffered bytes immediately.
func (b *BatchProcessor) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.flushLocked()
}

func (b *BatchProcessor) flushLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
	if len(b.buf) == 0 {
		return
	}
	data := b.buf
	b.buf = nil
	b.flush(data)
}

// Close flushes any remaining buffered bytes and marks the processor closed;
// subsequent Write calls return ErrBatchProcessorClosed.
func (b *BatchProcessor) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return nil
	}
	b.flushLocked()
	b.closed = true
	return nil
}
