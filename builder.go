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
	"bufio"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/encoding"
)

const DefaultBufferSize = 8192

// Builder combines an Origin with buffering, charset and open-mode
// configuration. Setters only record values; everything is validated when a
// terminal accessor resolves the configuration, so a Builder can be filled in
// any order.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	origin            *Origin
	bufferSize        int
	bufferSizeMax     int
	bufferSizeChecker func(requested int) int
	charset           string
	enc               encoding.Encoding
	openMode          OpenMode
	log               logrus.FieldLogger
}

func NewBuilder() *Builder {
	return &Builder{
		bufferSize: DefaultBufferSize,
		openMode:   OpenRead,
	}
}

func (b *Builder) SetOrigin(o *Origin) *Builder {
	b.origin = o
	return b
}

func (b *Builder) SetBufferSize(n int) *Builder {
	b.bufferSize = n
	return b
}

// SetBufferSizeMax sets the ceiling for the buffer size. Zero or less lifts
// it.
func (b *Builder) SetBufferSizeMax(n int) *Builder {
	b.bufferSizeMax = n
	return b
}

// SetBufferSizeChecker installs fn to correct a buffer size that exceeds the
// ceiling. Without one, such a size is rejected.
func (b *Builder) SetBufferSizeChecker(fn func(requested int) int) *Builder {
	b.bufferSizeChecker = fn
	return b
}

// SetCharset selects the charset by IANA name.
func (b *Builder) SetCharset(name string) *Builder {
	b.charset, b.enc = name, nil
	return b
}

func (b *Builder) SetEncoding(enc encoding.Encoding) *Builder {
	b.charset, b.enc = "", enc
	return b
}

func (b *Builder) SetOpenMode(m OpenMode) *Builder {
	b.openMode = m
	return b
}

func (b *Builder) SetLogger(l logrus.FieldLogger) *Builder {
	b.log = l
	return b
}

// Apply copies every field c sets onto b.
func (b *Builder) Apply(c *Config) *Builder {
	if c == nil {
		return b
	}
	if c.BufferSize != 0 {
		b.bufferSize = c.BufferSize
	}
	if c.BufferSizeMax != 0 {
		b.bufferSizeMax = c.BufferSizeMax
	}
	if c.Charset != "" {
		b.SetCharset(c.Charset)
	}
	if c.OpenMode != 0 {
		b.openMode = c.OpenMode
	}
	return b
}

func (b *Builder) logger() logrus.FieldLogger {
	if b.log != nil {
		return b.log
	}
	return logger
}

// BufferSize resolves the configured buffer size against the ceiling.
func (b *Builder) BufferSize() (int, error) {
	n := b.bufferSize
	if n < 1 {
		return 0, &ConfigError{Field: "buffer size", Err: fmt.Errorf("%w: %d", ErrInvalidBufferSize, n)}
	}
	if b.bufferSizeMax > 0 && n > b.bufferSizeMax {
		if b.bufferSizeChecker == nil {
			return 0, &ConfigError{
				Field: "buffer size",
				Err:   fmt.Errorf("%w: %d > %d", ErrBufferSizeExceeded, n, b.bufferSizeMax),
			}
		}
		corrected := b.bufferSizeChecker(n)
		b.logger().WithFields(logrus.Fields{
			"requested": n,
			"max":       b.bufferSizeMax,
			"corrected": corrected,
		}).Debug("ioorigin: buffer size corrected")
		n = corrected
		if n < 1 {
			return 0, &ConfigError{Field: "buffer size", Err: fmt.Errorf("%w: %d", ErrInvalidBufferSize, n)}
		}
	}
	return n, nil
}

// Encoding resolves the configured charset.
func (b *Builder) Encoding() (encoding.Encoding, error) {
	if b.enc != nil {
		return b.enc, nil
	}
	enc, err := LookupCharset(b.charset)
	if err != nil {
		return nil, &ConfigError{Field: "charset", Err: err}
	}
	return enc, nil
}

// Origin returns the configured origin.
func (b *Builder) Origin() (*Origin, error) {
	if b.origin == nil {
		return nil, &ConfigError{Field: "origin", Err: ErrNoOrigin}
	}
	return b.origin, nil
}

type resolved struct {
	origin *Origin
	size   int
	enc    encoding.Encoding
}

func (b *Builder) resolve(v View) (resolved, error) {
	o, err := b.Origin()
	if err != nil {
		return resolved{}, err
	}
	size, err := b.BufferSize()
	if err != nil {
		return resolved{}, err
	}
	enc, err := b.Encoding()
	if err != nil {
		return resolved{}, err
	}
	b.logger().WithFields(logrus.Fields{
		"origin":      o.String(),
		"view":        v.String(),
		"buffer_size": size,
		"charset":     charsetName(enc),
	}).Debug("ioorigin: builder resolved")
	return resolved{o, size, enc}, nil
}

// Buffer allocates a buffer of the resolved size.
func (b *Builder) Buffer() ([]byte, error) {
	size, err := b.BufferSize()
	if err != nil {
		return nil, err
	}
	return make([]byte, size), nil
}

// InputStream returns the origin's raw bytes behind a buffer of the
// resolved size. Text origins are encoded with the configured charset.
func (b *Builder) InputStream() (*BufferedReadCloser, error) {
	r, err := b.resolve(ViewInputStream)
	if err != nil {
		return nil, err
	}
	in, err := r.origin.inputStream(r.enc)
	if err != nil {
		return nil, err
	}
	return newBufferedReadCloser(in, r.size), nil
}

// Reader returns the origin as buffered UTF-8 text, decoded from the
// configured charset.
func (b *Builder) Reader() (*BufferedReadCloser, error) {
	r, err := b.resolve(ViewReader)
	if err != nil {
		return nil, err
	}
	in, err := r.origin.Reader(r.enc)
	if err != nil {
		return nil, err
	}
	return newBufferedReadCloser(in, r.size), nil
}

// OutputStream returns a buffered raw byte sink. Close flushes it before
// releasing the origin's handle.
func (b *Builder) OutputStream() (*BufferedWriteCloser, error) {
	r, err := b.resolve(ViewOutputStream)
	if err != nil {
		return nil, err
	}
	out, err := r.origin.outputStream(r.enc)
	if err != nil {
		return nil, err
	}
	return newBufferedWriteCloser(out, r.size), nil
}

// Writer returns a buffered UTF-8 text sink, encoded to the configured
// charset.
func (b *Builder) Writer() (*BufferedWriteCloser, error) {
	r, err := b.resolve(ViewWriter)
	if err != nil {
		return nil, err
	}
	out, err := r.origin.Writer(r.enc)
	if err != nil {
		return nil, err
	}
	return newBufferedWriteCloser(out, r.size), nil
}

// ByteArray returns the content. String origins are encoded with the
// configured charset.
func (b *Builder) ByteArray() ([]byte, error) {
	r, err := b.resolve(ViewByteArray)
	if err != nil {
		return nil, err
	}
	if s, ok := r.origin.src.(stringSource); ok && !isUTF8(r.enc) {
		out, err := encodeString(string(s), r.enc)
		if err != nil {
			return nil, r.origin.wrap("encode", ViewByteArray, err)
		}
		return out, nil
	}
	return r.origin.ByteArray()
}

func (b *Builder) CharSequence() (string, error) {
	r, err := b.resolve(ViewCharSequence)
	if err != nil {
		return "", err
	}
	return r.origin.CharSequence(r.enc)
}

// RandomAccess opens the origin with the configured open mode.
func (b *Builder) RandomAccess() (RandomAccessStore, error) {
	r, err := b.resolve(ViewRandomAccess)
	if err != nil {
		return nil, err
	}
	return r.origin.RandomAccess(b.openMode)
}

// Channel opens the origin with the configured open mode.
func (b *Builder) Channel() (Channel, error) {
	r, err := b.resolve(ViewChannel)
	if err != nil {
		return nil, err
	}
	return r.origin.Channel(b.openMode)
}

func (b *Builder) Path() (string, error) {
	o, err := b.Origin()
	if err != nil {
		return "", err
	}
	return o.Path()
}

func (b *Builder) File() (File, error) {
	o, err := b.Origin()
	if err != nil {
		return File{}, err
	}
	return o.File()
}

// BufferedReadCloser reads through a buffer of the resolved size. Close
// releases the stream it buffers.
type BufferedReadCloser struct {
	br *bufio.Reader
	link
}

func newBufferedReadCloser(rc io.ReadCloser, size int) *BufferedReadCloser {
	return &BufferedReadCloser{br: bufio.NewReaderSize(rc, size), link: link{inner: rc}}
}

func (r *BufferedReadCloser) Read(p []byte) (int, error) {
	if r.closed {
		return 0, ErrClosed
	}
	return r.br.Read(p)
}

// Size returns the size of the underlying buffer in bytes.
func (r *BufferedReadCloser) Size() int { return r.br.Size() }

func (r *BufferedReadCloser) Close() error { return r.release() }

// BufferedWriteCloser writes through a buffer of the resolved size. Close
// flushes and then releases the sink it buffers.
type BufferedWriteCloser struct {
	bw *bufio.Writer
	link
}

func newBufferedWriteCloser(wc io.WriteCloser, size int) *BufferedWriteCloser {
	return &BufferedWriteCloser{bw: bufio.NewWriterSize(wc, size), link: link{inner: wc}}
}

func (w *BufferedWriteCloser) Write(p []byte) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.bw.Write(p)
}

func (w *BufferedWriteCloser) WriteString(s string) (int, error) {
	if w.closed {
		return 0, ErrClosed
	}
	return w.bw.WriteString(s)
}

func (w *BufferedWriteCloser) Flush() error {
	if w.closed {
		return ErrClosed
	}
	return w.bw.Flush()
}

// Size returns the size of the underlying buffer in bytes.
func (w *BufferedWriteCloser) Size() int { return w.bw.Size() }

func (w *BufferedWriteCloser) Close() error {
	if w.closed {
		return nil
	}
	err := w.bw.Flush()
	if rerr := w.release(); err == nil {
		err = rerr
	}
	return err
}
