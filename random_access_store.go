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
	"errors"
	"io"
	"os"
)

// RandomAccessStore models an I/O channel for a blob.
type RandomAccessStore interface {
	io.ReaderAt
	io.WriterAt
	io.Closer
}

// SizedRandomAccessStore models an I/O channel for a blob is supposed to have a specific size.
type SizedRandomAccessStore interface {
	RandomAccessStore
	Size() (int64, error)
}

// NamedRandomAccessStore models an I/O channel for a named blob (probably a file)
type NamedRandomAccessStore interface {
	RandomAccessStore
	Name() string
}

type statter interface {
	Stat() (os.FileInfo, error)
}

// SeekerWrapper wraps a RandomAccessStore so that it always reports its size
// and, when it has one, its name.
type SeekerWrapper struct {
	s  RandomAccessStore
	sk io.Seeker
	ns Named
	st statter
}

// Just delegates the operation to the underlying RandomAccessStore's ReadAt() method.
func (s *SeekerWrapper) ReadAt(p []byte, offset int64) (int, error) { return s.s.ReadAt(p, offset) }

// Just delegates the operation to the underlying RandomAccessStore's WriteAt() method.
func (s *SeekerWrapper) WriteAt(p []byte, offset int64) (int, error) { return s.s.WriteAt(p, offset) }

// Just delegates the operation to the underlying RandomAccessStore's Close() method.
func (s *SeekerWrapper) Close() error { return s.s.Close() }

// If the underlying RandomAccessStore also provides Named, delegates the call to its Name() method.  Otherwise, returns an empty string.
func (s *SeekerWrapper) Name() string {
	if s.ns != nil {
		return s.ns.Name()
	}
	return ""
}

// Size stats the store when it can, and otherwise seeks to the end and back
// so the store's cursor is left where it was.
func (s *SeekerWrapper) Size() (int64, error) {
	if s.st != nil {
		fi, err := s.st.Stat()
		if err != nil {
			return 0, err
		}
		return fi.Size(), nil
	}
	if s.sk == nil {
		return 0, Unsupported
	}
	cur, err := s.sk.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, err
	}
	end, err := s.sk.Seek(0, io.SeekEnd)
	if err != nil {
		return 0, err
	}
	if _, err := s.sk.Seek(cur, io.SeekStart); err != nil {
		return 0, err
	}
	return end, nil
}

var (
	_ SizedRandomAccessStore = (*SeekerWrapper)(nil)
	_ NamedRandomAccessStore = (*SeekerWrapper)(nil)
	_ SizedRandomAccessStore = (*MemoryRandomAccessStore)(nil)
)

// Creates a new SeekerWrapper instance.
func NewSeekerWrapper(s RandomAccessStore) *SeekerWrapper {
	sk, _ := s.(io.Seeker)
	var ns Named
	if named, ok := s.(NamedRandomAccessStore); ok {
		ns = named
	}
	st, _ := s.(statter)
	return &SeekerWrapper{s, sk, ns, st}
}

// storeSize returns the size of s, or -1 when s cannot tell.
func storeSize(s RandomAccessStore) int64 {
	sized, ok := s.(SizedRandomAccessStore)
	if !ok {
		sized = NewSeekerWrapper(s)
	}
	n, err := sized.Size()
	if err != nil {
		return -1
	}
	return n
}

// StoreReadWriter wraps a RandomAccessStore for it to behave like io.Reader or io.Writer.
// A negative Size means the size is not known yet.
type StoreReadWriter struct {
	Store    RandomAccessStore
	Position int64
	Size     int64
}

func (rw *StoreReadWriter) Write(p []byte) (int, error) {
	n, err := rw.Store.WriteAt(p, rw.Position)
	rw.Position += int64(n)
	if rw.Size >= 0 && rw.Position > rw.Size {
		rw.Size = rw.Position
	}
	return n, err
}

func (rw *StoreReadWriter) Read(p []byte) (int, error) {
	if rw.Size >= 0 && rw.Position >= rw.Size {
		return 0, io.EOF
	}
	n, err := rw.Store.ReadAt(p, rw.Position)
	if err == io.EOF {
		rw.Size = rw.Position + int64(n)
		if n > 0 {
			err = nil
		}
	}
	rw.Position += int64(n)
	return n, err
}

// Close does not close Store; the chain that created the StoreReadWriter does.
func (rw *StoreReadWriter) Close() error { return nil }

func (rw *StoreReadWriter) Seek(pos int64, whence int) (int64, error) {
	var abs int64
	switch whence {
	case io.SeekStart:
		abs = pos
	case io.SeekCurrent:
		abs = rw.Position + pos
	case io.SeekEnd:
		if rw.Size < 0 {
			return -1, errors.New("trying to seek to EOF while the store size is not known")
		}
		abs = rw.Size + pos
	default:
		return rw.Position, errors.New("invalid whence")
	}
	if abs < 0 {
		return rw.Position, errors.New("cannot seek to negative position")
	}
	rw.Position = abs
	return rw.Position, nil
}

// MemoryRandomAccessStore implements a RandomAccessStore backed by a byte slice.
type MemoryRandomAccessStore struct {
	buf      []byte
	readOnly bool
}

func (s *MemoryRandomAccessStore) WriteAt(p []byte, offset int64) (int, error) {
	if s.readOnly {
		return 0, ErrOpenMode
	}
	if offset < 0 {
		return 0, ErrOutOfRange
	}
	o := int(offset)
	e := o + len(p)
	if e > len(s.buf) {
		if e <= cap(s.buf) {
			s.buf = s.buf[0:e]
		} else {
			c := cap(s.buf) * 2
			if c < e {
				c = e
			}
			newBuf := make([]byte, e, c)
			copy(newBuf, s.buf)
			s.buf = newBuf
		}
	}
	n := copy(s.buf[o:e], p)
	return n, nil
}

func (s *MemoryRandomAccessStore) ReadAt(p []byte, offset int64) (int, error) {
	if offset < 0 {
		return 0, ErrOutOfRange
	}
	if offset >= int64(len(s.buf)) {
		return 0, io.EOF
	}
	n := copy(p, s.buf[offset:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (s *MemoryRandomAccessStore) Size() (int64, error) {
	return int64(len(s.buf)), nil
}

// Bytes returns the store's current contents without copying.
func (s *MemoryRandomAccessStore) Bytes() []byte { return s.buf }

func (s *MemoryRandomAccessStore) Close() error { return nil }

func NewMemoryRandomAccessStore() *MemoryRandomAccessStore {
	return &MemoryRandomAccessStore{
		buf: make([]byte, 0, 16),
	}
}

// newReadOnlyMemoryStore exposes buf through the store interface without
// copying it. Writes fail with ErrOpenMode.
func newReadOnlyMemoryStore(buf []byte) *MemoryRandomAccessStore {
	return &MemoryRandomAccessStore{buf: buf, readOnly: true}
}
