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

// IOCombo wraps any I/O primitives interface in the way the resulting object provides
// all of the I/O privimites provided by io package as well as by ioorigin.
//
// Call on an unsupported operation returns Unsupported error. Once closed, every
// operation returns ErrClosed.
//
// IOCombo is what Origin.Channel hands out.
type IOCombo struct {
	Reader   io.Reader
	ReaderAt io.ReaderAt
	Writer   io.Writer
	WriterAt io.WriterAt
	Seeker   io.Seeker
	Closer   io.Closer
	Flusher  Flusher
	Sized    Sized
	Named    Named
	closed   bool
}

// NewIOCombo discovers every primitive v implements.
func NewIOCombo(v interface{}) *IOCombo {
	reader, _ := v.(io.Reader)
	readerAt, _ := v.(io.ReaderAt)
	writer, _ := v.(io.Writer)
	writerAt, _ := v.(io.WriterAt)
	seeker, _ := v.(io.Seeker)
	closer, _ := v.(io.Closer)
	flusher, _ := v.(Flusher)
	sized, _ := v.(Sized)
	named, _ := v.(Named)
	return &IOCombo{
		Reader:   reader,
		ReaderAt: readerAt,
		Writer:   writer,
		WriterAt: writerAt,
		Seeker:   seeker,
		Closer:   closer,
		Flusher:  flusher,
		Sized:    sized,
		Named:    named,
	}
}

// restrict drops the primitives mode does not ask for.
func (w *IOCombo) restrict(mode OpenMode) *IOCombo {
	if !mode.Readable() {
		w.Reader, w.ReaderAt = nil, nil
	}
	if !mode.Writable() {
		w.Writer, w.WriterAt, w.Flusher = nil, nil, nil
	}
	if !mode.Seekable() {
		w.Seeker = nil
	}
	return w
}

// satisfies reports whether every access mode asks for is present.
func (w *IOCombo) satisfies(mode OpenMode) bool {
	if mode.Readable() && w.Reader == nil {
		return false
	}
	if mode.Writable() && w.Writer == nil {
		return false
	}
	if mode.Seekable() && w.Seeker == nil {
		return false
	}
	return true
}

func (w *IOCombo) Read(b []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.Reader == nil {
		return 0, Unsupported
	}
	return w.Reader.Read(b)
}

func (w *IOCombo) ReadAt(b []byte, o int64) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.ReaderAt == nil {
		return 0, Unsupported
	}
	return w.ReaderAt.ReadAt(b, o)
}

func (w *IOCombo) Write(b []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.Writer == nil {
		return 0, Unsupported
	}
	return w.Writer.Write(b)
}

func (w *IOCombo) WriteAt(b []byte, o int64) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.WriterAt == nil {
		return 0, Unsupported
	}
	return w.WriterAt.WriteAt(b, o)
}

func (w *IOCombo) Seek(o int64, whence int) (int64, error) {
	if w.closed {
		return 0, ErrClosed
	}
	if w.Seeker == nil {
		return 0, Unsupported
	}
	return w.Seeker.Seek(o, whence)
}

func (w *IOCombo) Flush() error {
	if w.closed {
		return ErrClosed
	}
	if w.Flusher == nil {
		return Unsupported
	}
	return w.Flusher.Flush()
}

// Close flushes pending output and forwards to Closer. The combo counts as
// closed afterwards even if either step failed; the first error is returned.
func (w *IOCombo) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true
	var err error
	if w.Flusher != nil {
		err = w.Flusher.Flush()
	}
	if w.Closer != nil {
		if cerr := w.Closer.Close(); err == nil {
			err = cerr
		}
	}
	return err
}

func (w *IOCombo) Size() (int64, error) {
	if w.Sized == nil {
		return 0, Unsupported
	}
	return w.Sized.Size()
}

func (w *IOCombo) Name() string {
	if w.Named == nil {
		return ""
	}
	return w.Named.Name()
}
