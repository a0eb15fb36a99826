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
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
)

// The functions below make up the conversion matrix. Each one switches over
// every source type in the same order of preference: hand the value out
// directly, synthesize an adapter from what the source holds, or report the
// pair as unsupported. Accessors on Origin consult Capable before getting
// here, so the capability cases only guard against internal misuse.

func byteArray(src source) ([]byte, error) {
	const v = ViewByteArray
	switch s := src.(type) {
	case bytesSource:
		logStrategy(logger, s.kind(), v, "direct")
		return []byte(s), nil
	case stringSource:
		logStrategy(logger, s.kind(), v, "utf-8 bytes")
		return []byte(s), nil
	case pathSource:
		logStrategy(logger, s.kind(), v, "read file")
		f, err := openRegular(string(s))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case fileSource:
		logStrategy(logger, s.kind(), v, "read fs entry")
		f, err := File(s).open()
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	case readerSource:
		logStrategy(logger, s.kind(), v, "drain reader")
		return io.ReadAll(s.r)
	case inputStreamSource:
		logStrategy(logger, s.kind(), v, "drain stream")
		return io.ReadAll(s.r)
	case randomAccessSource:
		logStrategy(logger, s.kind(), v, "read store")
		return io.ReadAll(&StoreReadWriter{Store: s.s, Size: storeSize(s.s)})
	case channelSource:
		r, ok := s.c.(io.Reader)
		if !ok {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "drain channel")
		return io.ReadAll(r)
	case uriSource:
		return viaURI(s, v, false, byteArray)
	case writerSource, outputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

func byteArrayRange(src source, off, n int64) ([]byte, error) {
	const v = ViewByteArray
	if off < 0 || n < 0 {
		return nil, ErrOutOfRange
	}
	switch s := src.(type) {
	case bytesSource:
		logStrategy(logger, s.kind(), v, "direct slice")
		return sliceRange(s, off, n)
	case pathSource:
		logStrategy(logger, s.kind(), v, "read file range")
		f, err := openRegular(string(s))
		if err != nil {
			return nil, err
		}
		defer f.Close()
		fi, err := f.Stat()
		if err != nil {
			return nil, err
		}
		return readRange(f, fi.Size(), off, n)
	case randomAccessSource:
		size := storeSize(s.s)
		if size < 0 {
			break
		}
		logStrategy(logger, s.kind(), v, "read store range")
		return readRange(s.s, size, off, n)
	case stringSource, fileSource, readerSource, inputStreamSource, channelSource, uriSource:
	case writerSource, outputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
	b, err := byteArray(src)
	if err != nil {
		return nil, err
	}
	return sliceRange(b, off, n)
}

func sliceRange(b []byte, off, n int64) ([]byte, error) {
	if off > int64(len(b)) || n > int64(len(b))-off {
		return nil, ErrOutOfRange
	}
	out := make([]byte, n)
	copy(out, b[off:off+n])
	return out, nil
}

func readRange(r io.ReaderAt, size, off, n int64) ([]byte, error) {
	if off > size || n > size-off {
		return nil, ErrOutOfRange
	}
	out := make([]byte, n)
	if n == 0 {
		return out, nil
	}
	got, err := r.ReadAt(out, off)
	if err == io.EOF && got < len(out) {
		// the extent shrank below what size promised
		return nil, ErrOutOfRange
	}
	if err != nil && err != io.EOF {
		return nil, err
	}
	return out, nil
}

func charSequence(src source, enc encoding.Encoding) (string, error) {
	const v = ViewCharSequence
	switch s := src.(type) {
	case stringSource:
		logStrategy(logger, s.kind(), v, "direct")
		return string(s), nil
	case readerSource:
		logStrategy(logger, s.kind(), v, "drain reader")
		b, err := io.ReadAll(s.r)
		return string(b), err
	case uriSource:
		return viaURI(s, v, false, func(inner source) (string, error) {
			return charSequence(inner, enc)
		})
	case bytesSource, pathSource, fileSource, inputStreamSource, randomAccessSource, channelSource:
		b, err := byteArray(src)
		if err != nil {
			return "", err
		}
		logStrategy(logger, s.kind(), v, "decode "+charsetName(enc))
		return decodeBytes(b, enc)
	case writerSource, outputStreamSource:
		return "", &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

// reader yields UTF-8 text.
func reader(src source, enc encoding.Encoding) (io.ReadCloser, error) {
	const v = ViewReader
	switch s := src.(type) {
	case readerSource:
		logStrategy(logger, s.kind(), v, "direct")
		if rc, ok := s.r.(io.ReadCloser); ok {
			return rc, nil
		}
		return newChainedReader(s.r, nopCloser{}), nil
	case stringSource:
		logStrategy(logger, s.kind(), v, "string reader")
		return newChainedReader(strings.NewReader(string(s)), nopCloser{}), nil
	case bytesSource:
		logStrategy(logger, s.kind(), v, "decode "+charsetName(enc))
		return newChainedReader(decodingReader(bytes.NewReader(s), enc), nopCloser{}), nil
	case uriSource:
		return viaURI(s, v, true, func(inner source) (io.ReadCloser, error) {
			return reader(inner, enc)
		})
	case pathSource, fileSource, inputStreamSource, randomAccessSource, channelSource:
		in, err := inputStream(src, nil)
		if err != nil {
			return nil, err
		}
		logStrategy(logger, s.kind(), v, "decode "+charsetName(enc)+" over input stream")
		return newChainedReader(decodingReader(in, enc), in), nil
	case writerSource, outputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

// writer accepts UTF-8 text.
func writer(src source, enc encoding.Encoding) (io.WriteCloser, error) {
	const v = ViewWriter
	switch s := src.(type) {
	case writerSource:
		logStrategy(logger, s.kind(), v, "direct")
		if wc, ok := s.w.(io.WriteCloser); ok {
			return wc, nil
		}
		return newChainedWriter(s.w, flushFunc(s.w), nopCloser{}), nil
	case uriSource:
		return viaURI(s, v, true, func(inner source) (io.WriteCloser, error) {
			return writer(inner, enc)
		})
	case outputStreamSource, pathSource, fileSource, randomAccessSource, channelSource:
		out, err := outputStream(src, nil)
		if err != nil {
			return nil, err
		}
		logStrategy(logger, s.kind(), v, "encode "+charsetName(enc)+" over output stream")
		w, flush := encodingWriter(out, enc)
		return newChainedWriter(w, flush, out), nil
	case bytesSource, stringSource, readerSource, inputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

// inputStream yields raw bytes. enc applies to text sources only.
func inputStream(src source, enc encoding.Encoding) (io.ReadCloser, error) {
	const v = ViewInputStream
	switch s := src.(type) {
	case inputStreamSource:
		logStrategy(logger, s.kind(), v, "direct")
		if rc, ok := s.r.(io.ReadCloser); ok {
			return rc, nil
		}
		return newChainedReader(s.r, nopCloser{}), nil
	case bytesSource:
		logStrategy(logger, s.kind(), v, "bytes reader")
		return newChainedReader(bytes.NewReader(s), nopCloser{}), nil
	case stringSource:
		logStrategy(logger, s.kind(), v, "encode "+charsetName(enc))
		return newChainedReader(encodingReader(strings.NewReader(string(s)), enc), nopCloser{}), nil
	case readerSource:
		logStrategy(logger, s.kind(), v, "encode "+charsetName(enc)+" over reader")
		return newChainedReader(encodingReader(s.r, enc), inwardCloser(s.r)), nil
	case pathSource:
		logStrategy(logger, s.kind(), v, "open file")
		f, err := openRegular(string(s))
		if err != nil {
			return nil, err
		}
		return f, nil
	case fileSource:
		logStrategy(logger, s.kind(), v, "open fs entry")
		return File(s).open()
	case randomAccessSource:
		logStrategy(logger, s.kind(), v, "store cursor")
		return newChainedReader(&StoreReadWriter{Store: s.s, Size: storeSize(s.s)}, s.s), nil
	case channelSource:
		r, ok := s.c.(io.Reader)
		if !ok {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "channel reader")
		return newChainedReader(r, s.c), nil
	case uriSource:
		return viaURI(s, v, true, func(inner source) (io.ReadCloser, error) {
			return inputStream(inner, enc)
		})
	case writerSource, outputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

// outputStream accepts raw bytes. enc applies to text sinks only.
func outputStream(src source, enc encoding.Encoding) (io.WriteCloser, error) {
	const v = ViewOutputStream
	switch s := src.(type) {
	case outputStreamSource:
		logStrategy(logger, s.kind(), v, "direct")
		if wc, ok := s.w.(io.WriteCloser); ok {
			return wc, nil
		}
		return newChainedWriter(s.w, flushFunc(s.w), nopCloser{}), nil
	case writerSource:
		logStrategy(logger, s.kind(), v, "decode "+charsetName(enc)+" into writer")
		w, flush := decodingWriter(s.w, enc)
		return newChainedWriter(w, chainFlush(flush, flushFunc(s.w)), inwardCloser(s.w)), nil
	case pathSource:
		logStrategy(logger, s.kind(), v, "create file")
		f, err := createFile(string(s))
		if err != nil {
			return nil, err
		}
		return f, nil
	case fileSource:
		p, err := File(s).Path()
		if err != nil {
			return nil, err
		}
		logStrategy(logger, s.kind(), v, "create file")
		f, err := createFile(p)
		if err != nil {
			return nil, err
		}
		return f, nil
	case randomAccessSource:
		logStrategy(logger, s.kind(), v, "store cursor")
		return newChainedWriter(&StoreReadWriter{Store: s.s, Size: -1}, nil, s.s), nil
	case channelSource:
		w, ok := s.c.(io.Writer)
		if !ok {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "channel writer")
		return newChainedWriter(w, flushFunc(w), s.c), nil
	case uriSource:
		return viaURI(s, v, true, func(inner source) (io.WriteCloser, error) {
			return outputStream(inner, enc)
		})
	case bytesSource, stringSource, readerSource, inputStreamSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

// createFile truncates or creates p, along with its parent directories.
func createFile(p string) (*os.File, error) {
	return openFile(p, OpenWrite|OpenTruncate)
}

func flushFunc(w io.Writer) func() error {
	if f, ok := w.(Flusher); ok {
		return f.Flush
	}
	return nil
}

func chainFlush(fns ...func() error) func() error {
	return func() error {
		for _, fn := range fns {
			if fn == nil {
				continue
			}
			if err := fn(); err != nil {
				return err
			}
		}
		return nil
	}
}

func pathOf(src source) (string, error) {
	const v = ViewPath
	switch s := src.(type) {
	case pathSource:
		logStrategy(logger, s.kind(), v, "direct")
		return filepath.Abs(string(s))
	case fileSource:
		logStrategy(logger, s.kind(), v, "fs root")
		return File(s).Path()
	case randomAccessSource:
		n, ok := s.s.(Named)
		if !ok || n.Name() == "" {
			return "", ErrNotLocal
		}
		logStrategy(logger, s.kind(), v, "store name")
		return filepath.Abs(n.Name())
	case uriSource:
		return viaURI(s, v, false, pathOf)
	case bytesSource, stringSource, readerSource, writerSource, inputStreamSource, outputStreamSource, channelSource:
		return "", &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

func fileOf(src source) (File, error) {
	const v = ViewFile
	switch s := src.(type) {
	case fileSource:
		logStrategy(logger, s.kind(), v, "direct")
		return File(s), nil
	case pathSource, randomAccessSource:
		p, err := pathOf(src)
		if err != nil {
			return File{}, err
		}
		logStrategy(logger, s.kind(), v, "local file")
		return LocalFile(p)
	case uriSource:
		return viaURI(s, v, false, fileOf)
	case bytesSource, stringSource, readerSource, writerSource, inputStreamSource, outputStreamSource, channelSource:
		return File{}, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

func randomAccess(src source, mode OpenMode) (RandomAccessStore, error) {
	const v = ViewRandomAccess
	switch s := src.(type) {
	case randomAccessSource:
		logStrategy(logger, s.kind(), v, "direct")
		return s.s, nil
	case bytesSource:
		if mode.Writable() {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "memory store")
		return newReadOnlyMemoryStore(s), nil
	case pathSource:
		logStrategy(logger, s.kind(), v, "open file "+mode.String())
		f, err := openFile(string(s), mode)
		if err != nil {
			return nil, err
		}
		return NewSeekerWrapper(f), nil
	case fileSource:
		f := File(s)
		if f.Root != "" {
			p, err := f.Path()
			if err != nil {
				return nil, err
			}
			return randomAccess(pathSource(p), mode)
		}
		if mode.Writable() {
			return nil, ErrNotLocal
		}
		b, err := byteArray(src)
		if err != nil {
			return nil, err
		}
		logStrategy(logger, s.kind(), v, "memory store")
		return newReadOnlyMemoryStore(b), nil
	case uriSource:
		return viaURI(s, v, true, func(inner source) (RandomAccessStore, error) {
			return randomAccess(inner, mode)
		})
	case stringSource, readerSource, writerSource, inputStreamSource, outputStreamSource, channelSource:
		return nil, &CapabilityError{src.kind(), v}
	default:
		panic(unhandled(src, v))
	}
}

func channel(src source, mode OpenMode) (Channel, error) {
	const v = ViewChannel
	var combo *IOCombo
	// owned is set when the combo wraps a handle opened here rather than a
	// value the caller passed in.
	owned := false
	switch s := src.(type) {
	case channelSource:
		if ch, ok := s.c.(Channel); ok {
			logStrategy(logger, s.kind(), v, "direct")
			return ch, nil
		}
		logStrategy(logger, s.kind(), v, "combo")
		combo = NewIOCombo(s.c)
	case bytesSource:
		if mode.Writable() {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "bytes reader")
		combo = NewIOCombo(bytes.NewReader(s))
	case stringSource:
		if mode.Writable() {
			return nil, ErrOpenMode
		}
		logStrategy(logger, s.kind(), v, "string reader")
		combo = NewIOCombo(strings.NewReader(string(s)))
	case pathSource:
		logStrategy(logger, s.kind(), v, "open file "+mode.String())
		f, err := openFile(string(s), mode)
		if err != nil {
			return nil, err
		}
		combo, owned = NewIOCombo(f), true
	case fileSource:
		f := File(s)
		if f.Root != "" {
			p, err := f.Path()
			if err != nil {
				return nil, err
			}
			return channel(pathSource(p), mode)
		}
		if mode.Writable() {
			return nil, ErrNotLocal
		}
		logStrategy(logger, s.kind(), v, "open fs entry")
		file, err := f.open()
		if err != nil {
			return nil, err
		}
		combo, owned = NewIOCombo(file), true
	case readerSource, inputStreamSource:
		if mode.Writable() || mode.Seekable() {
			return nil, ErrOpenMode
		}
		r := s.(interface{ reader() io.Reader }).reader()
		logStrategy(logger, s.kind(), v, "stream")
		combo = &IOCombo{Reader: r, Closer: inwardCloser(r)}
	case writerSource, outputStreamSource:
		if mode.Readable() || mode.Seekable() {
			return nil, ErrOpenMode
		}
		w := s.(interface{ writer() io.Writer }).writer()
		logStrategy(logger, s.kind(), v, "stream")
		combo = &IOCombo{Writer: w, Flusher: flusherOf(w), Closer: inwardCloser(w)}
	case randomAccessSource:
		logStrategy(logger, s.kind(), v, "store cursor")
		combo = NewIOCombo(&StoreReadWriter{Store: s.s, Size: storeSize(s.s)})
		combo.ReaderAt, combo.WriterAt, combo.Closer = s.s, s.s, s.s
		combo.Sized, _ = s.s.(Sized)
		combo.Named, _ = s.s.(Named)
	case uriSource:
		return viaURI(s, v, true, func(inner source) (Channel, error) {
			return channel(inner, mode)
		})
	default:
		panic(unhandled(src, v))
	}
	combo.restrict(mode)
	if !combo.satisfies(mode) {
		if owned {
			combo.Close()
		}
		return nil, ErrOpenMode
	}
	return combo, nil
}

func flusherOf(w io.Writer) Flusher {
	f, _ := w.(Flusher)
	return f
}

func (s readerSource) reader() io.Reader       { return s.r }
func (s inputStreamSource) reader() io.Reader  { return s.r }
func (s writerSource) writer() io.Writer       { return s.w }
func (s outputStreamSource) writer() io.Writer { return s.w }
