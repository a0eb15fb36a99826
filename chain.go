// Copyright (c) 2014-2015 Moriyoshi Koizumi
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package ioorigin

import (
	"io"
)

// link is one step of a closing chain. It owns exactly the closer one level
// inward and forwards release to it once.
type link struct {
	inner  io.Closer
	closed bool
}

func (l *link) release() error {
	if l.closed {
		return nil
	}
	l.closed = true
	if l.inner == nil {
		return nil
	}
	return l.inner.Close()
}

// chainedReader is a reader view synthesized on top of inner.
type chainedReader struct {
	r io.Reader
	link
}

func newChainedReader(r io.Reader, inner io.Closer) *chainedReader {
	return &chainedReader{r: r, link: link{inner: inner}}
}

func (c *chainedReader) Read(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.r.Read(p)
}

func (c *chainedReader) Close() error { return c.release() }

// chainedWriter is a writer view synthesized on top of inner. flush, when
// set, drains whatever the adapter still buffers before inner is released.
type chainedWriter struct {
	w     io.Writer
	flush func() error
	link
}

func newChainedWriter(w io.Writer, flush func() error, inner io.Closer) *chainedWriter {
	return &chainedWriter{w: w, flush: flush, link: link{inner: inner}}
}

func (c *chainedWriter) Write(p []byte) (int, error) {
	if c.closed {
		return 0, ErrClosed
	}
	return c.w.Write(p)
}

func (c *chainedWriter) Flush() error {
	if c.closed {
		return ErrClosed
	}
	if c.flush == nil {
		return nil
	}
	return c.flush()
}

// Close flushes and then releases inner even when the flush failed.
func (c *chainedWriter) Close() error {
	if c.closed {
		return nil
	}
	var err error
	if c.flush != nil {
		err = c.flush()
	}
	if rerr := c.release(); err == nil {
		err = rerr
	}
	return err
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// inwardCloser returns v's Close when it has one. Direct exposure of a
// caller-owned stream still lets the view release it.
func inwardCloser(v interface{}) io.Closer {
	if c, ok := v.(io.Closer); ok {
		return c
	}
	return nopCloser{}
}
