// Copyright (c) 2024 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package gc

import (
	"io"

	"github.com/valyala/bytebufferpool"
)

// Buffer defines the interface for a reusable byte buffer.
// It abstracts the [bytebufferpool.ByteBuffer] type to avoid direct dependencies.
type Buffer interface {
	io.Writer
	WriteString(s string) (int, error)
	WriteByte(c byte) error
	ReadFrom(r io.Reader) (int64, error)
	Bytes() []byte
	String() string
	Len() int
	Reset()
}

// Pool defines the interface for buffer pooling.
// It abstracts the [bytebufferpool.Pool] type to avoid direct dependencies.
//
// Pool implementations must be safe for concurrent use by multiple goroutines.
type Pool interface {
	Get() Buffer
	Put(b Buffer)
}

// pool wraps [bytebufferpool.Pool] to implement Pool interface.
type pool struct{ p *bytebufferpool.Pool }

// Get returns a buffer from the pool.
func (p *pool) Get() Buffer { return p.p.Get() }

// Put resets the buffer and returns it to the pool.
// Buffers that did not come from a [bytebufferpool.Pool] are dropped.
func (p *pool) Put(b Buffer) {
	if buf, ok := b.(*bytebufferpool.ByteBuffer); ok {
		buf.Reset()
		p.p.Put(buf)
	}
}

// Default is the default buffer pool shared by prompt file reads,
// HTTP JSON responses and structured log lines.
//
// Example usage for reading a prompt file:
//
//	buf := gc.Default.Get()
//	defer gc.Default.Put(buf)
//
//	f, err := os.Open(path)
//	if err != nil {
//		return "", err
//	}
//	defer f.Close()
//
//	if _, err := buf.ReadFrom(f); err != nil {
//		return "", err
//	}
//	return buf.String(), nil
//
// Put resets the buffer, so callers must copy anything they keep
// (String already returns a copy) before handing the buffer back.
var Default Pool = &pool{p: &bytebufferpool.Pool{}}

// ReadString drains r into a pooled buffer and returns its contents.
// The returned string does not alias pooled memory.
func ReadString(r io.Reader) (string, error) {
	buf := Default.Get()
	defer Default.Put(buf)

	if _, err := buf.ReadFrom(r); err != nil {
		return "", err
	}
	return buf.String(), nil
}
