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
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

type flushRecorder struct {
	bytes.Buffer
	flushes int
	err     error
}

func (f *flushRecorder) Flush() error {
	f.flushes++
	return f.err
}

func TestIOComboUnsupported(t *testing.T) {
	c := &IOCombo{Reader: strings.NewReader("abc")}
	if _, err := c.Write([]byte("x")); err != Unsupported {
		t.Fatalf("write: %v", err)
	}
	if _, err := c.Seek(0, io.SeekStart); err != Unsupported {
		t.Fatalf("seek: %v", err)
	}
	if _, err := c.ReadAt(make([]byte, 1), 0); err != Unsupported {
		t.Fatalf("read at: %v", err)
	}
	if _, err := c.Size(); err != Unsupported {
		t.Fatalf("size: %v", err)
	}
	if c.Name() != "" {
		t.Fail()
	}
	if err := c.Close(); err != nil {
		t.Fatalf("close without closer: %v", err)
	}
	if _, err := c.Read(make([]byte, 1)); err != ErrClosed {
		t.Fatalf("read after close: %v", err)
	}
}

func TestIOComboCloseFlushesThenCloses(t *testing.T) {
	boom := errors.New("flush failed")
	f := &flushRecorder{err: boom}
	closer := &dummyCloser2{}
	c := &IOCombo{Writer: f, Flusher: f, Closer: closer}
	if _, err := c.Write([]byte("data")); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected flush error, got %v", err)
	}
	if closer.calls != 1 {
		t.Fatalf("closer should run even when flush fails, ran %d times", closer.calls)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if f.flushes != 1 || closer.calls != 1 {
		t.Fatalf("second close reached the resource: flushes=%d closes=%d", f.flushes, closer.calls)
	}
}

func TestNewIOComboRestrict(t *testing.T) {
	c := NewIOCombo(bytes.NewReader([]byte("abc")))
	if c.Reader == nil || c.Seeker == nil || c.ReaderAt == nil {
		t.Fatal("bytes.Reader primitives not discovered")
	}
	if !c.satisfies(OpenRead | OpenSeek) {
		t.Fatal("read+seek should be satisfied")
	}
	if c.satisfies(OpenWrite) {
		t.Fatal("write should not be satisfied")
	}
	c.restrict(OpenRead)
	if c.Seeker != nil {
		t.Fatal("seeker kept without OpenSeek")
	}
	if _, err := c.Seek(1, io.SeekStart); err != Unsupported {
		t.Fatalf("seek: %v", err)
	}
}
