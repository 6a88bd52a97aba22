package utils

import (
	"io"
	"sync"
)

type errorFlusher interface {
	Flush() error
}

type plainFlusher interface {
	Flush()
}

// FlushingWriter serializes writes to a report destination and flushes buffered
// destinations after each write. The first write or flush error is sticky: later
// writes return it without touching the destination.
type FlushingWriter struct {
	writer     io.Writer
	mutex      sync.Mutex
	firstError error
}

// NewFlushingWriter wraps writer. Nil and already wrapped writers are returned unchanged.
func NewFlushingWriter(writer io.Writer) io.Writer {
	if writer == nil {
		return nil
	}
	if _, alreadyWrapped := writer.(*FlushingWriter); alreadyWrapped {
		return writer
	}
	return &FlushingWriter{writer: writer}
}

// Write implements io.Writer.
func (flushingWriter *FlushingWriter) Write(data []byte) (int, error) {
	if flushingWriter == nil || flushingWriter.writer == nil {
		return 0, nil
	}

	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()

	if flushingWriter.firstError != nil {
		return 0, flushingWriter.firstError
	}

	bytesWritten, writeError := flushingWriter.writer.Write(data)
	if writeError == nil {
		writeError = flush(flushingWriter.writer)
	}
	flushingWriter.firstError = writeError
	return bytesWritten, writeError
}

// Err returns the first error seen by the writer.
func (flushingWriter *FlushingWriter) Err() error {
	if flushingWriter == nil {
		return nil
	}
	flushingWriter.mutex.Lock()
	defer flushingWriter.mutex.Unlock()
	return flushingWriter.firstError
}

func flush(writer io.Writer) error {
	switch flushable := writer.(type) {
	case errorFlusher:
		return flushable.Flush()
	case plainFlusher:
		flushable.Flush()
	}
	return nil
}
