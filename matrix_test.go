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
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

var fixture20 = []byte("0123456789abcdefghij")

// writeFixture creates a fresh copy of fixture20 under t's temp dir.
func writeFixture(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "fixture.bin")
	if err := os.WriteFile(p, fixture20, 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func openFixture(t *testing.T) *os.File {
	t.Helper()
	f, err := os.OpenFile(writeFixture(t), os.O_RDWR, 0)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

// fixtureOrigin returns a new origin of kind k over fixture20 (or an empty
// sink for the write-only kinds).
func fixtureOrigin(t *testing.T, k Kind) *Origin {
	t.Helper()
	switch k {
	case KindBytes:
		return FromBytes(append([]byte(nil), fixture20...))
	case KindString:
		return FromString(string(fixture20))
	case KindPath:
		return FromPath(writeFixture(t))
	case KindFile:
		f, err := LocalFile(writeFixture(t))
		if err != nil {
			t.Fatal(err)
		}
		return FromFile(f)
	case KindReader:
		return FromReader(strings.NewReader(string(fixture20)))
	case KindWriter:
		return FromWriter(&bytes.Buffer{})
	case KindInputStream:
		return FromInputStream(bytes.NewReader(fixture20))
	case KindOutputStream:
		return FromOutputStream(&bytes.Buffer{})
	case KindRandomAccess:
		return FromRandomAccess(openFixture(t))
	case KindChannel:
		return FromChannel(openFixture(t))
	case KindURI:
		return FromURI(&url.URL{Scheme: "file", Path: filepath.ToSlash(writeFixture(t))})
	}
	t.Fatalf("no fixture for %s", k)
	return nil
}

// request asks o for view v and returns whatever must be closed afterwards.
func request(o *Origin, v View) (io.Closer, error) {
	mode := OpenRead
	if o.Kind() == KindWriter || o.Kind() == KindOutputStream {
		mode = OpenWrite
	}
	var c io.Closer
	var err error
	switch v {
	case ViewByteArray:
		_, err = o.ByteArray()
	case ViewCharSequence:
		_, err = o.CharSequence(nil)
	case ViewReader:
		c, err = o.Reader(nil)
	case ViewWriter:
		c, err = o.Writer(nil)
	case ViewInputStream:
		c, err = o.InputStream()
	case ViewOutputStream:
		c, err = o.OutputStream()
	case ViewPath:
		_, err = o.Path()
	case ViewFile:
		_, err = o.File()
	case ViewRandomAccess:
		c, err = o.RandomAccess(mode)
	case ViewChannel:
		c, err = o.Channel(mode)
	default:
		panic("unknown view")
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func TestConversionMatrixIsDeterministic(t *testing.T) {
	for _, k := range Kinds() {
		for _, v := range Views() {
			for attempt := 0; attempt < 2; attempt++ {
				c, err := request(fixtureOrigin(t, k), v)
				if Capable(k, v) {
					if err != nil {
						t.Errorf("%s -> %s (attempt %d): %v", k, v, attempt, err)
						continue
					}
					if c != nil {
						if err := c.Close(); err != nil {
							t.Errorf("%s -> %s: close: %v", k, v, err)
						}
					}
					continue
				}
				if !IsCapability(err) {
					t.Errorf("%s -> %s (attempt %d): expected capability error, got %v", k, v, attempt, err)
				}
			}
		}
	}
}

func TestEmptyRangeForEveryReadableKind(t *testing.T) {
	for _, k := range Kinds() {
		if !Capable(k, ViewByteArray) {
			continue
		}
		b, err := fixtureOrigin(t, k).ByteArrayRange(0, 0)
		if err != nil {
			t.Errorf("%s: %v", k, err)
			continue
		}
		if b == nil || len(b) != 0 {
			t.Errorf("%s: expected empty slice, got %v", k, b)
		}
	}
}

func TestSingleByteRanges(t *testing.T) {
	for _, k := range Kinds() {
		if !Capable(k, ViewByteArray) {
			continue
		}
		all, err := fixtureOrigin(t, k).ByteArray()
		if err != nil {
			t.Fatalf("%s: %v", k, err)
		}
		if !bytes.Equal(all, fixture20) {
			t.Fatalf("%s: full read %q", k, all)
		}
		for i := int64(0); i < 2; i++ {
			b, err := fixtureOrigin(t, k).ByteArrayRange(i, 1)
			if err != nil {
				t.Fatalf("%s: range(%d,1): %v", k, i, err)
			}
			if len(b) != 1 || b[0] != fixture20[i] || b[0] != all[i] {
				t.Fatalf("%s: range(%d,1) = %v", k, i, b)
			}
		}
	}
}

func TestRangeOutOfBounds(t *testing.T) {
	for _, k := range []Kind{KindBytes, KindPath, KindRandomAccess, KindInputStream} {
		for _, r := range [][2]int64{{-1, 1}, {0, -1}, {0, 21}, {20, 1}, {21, 0}} {
			_, err := fixtureOrigin(t, k).ByteArrayRange(r[0], r[1])
			if !IsIO(err) || !errors.Is(err, ErrOutOfRange) {
				t.Errorf("%s: range%v: expected out-of-range I/O error, got %v", k, r, err)
			}
		}
		b, err := fixtureOrigin(t, k).ByteArrayRange(15, 5)
		if err != nil || string(b) != "fghij" {
			t.Errorf("%s: tail range %q %v", k, b, err)
		}
	}
}

// staleStore claims more content than it holds, as a file truncated after
// being stat'ed would.
type staleStore struct {
	*MemoryRandomAccessStore
	size int64
}

func (s staleStore) Size() (int64, error) { return s.size, nil }

func TestRangeShortReadIsOutOfRange(t *testing.T) {
	m := NewMemoryRandomAccessStore()
	if _, err := m.WriteAt(fixture20[:10], 0); err != nil {
		t.Fatal(err)
	}
	o := FromRandomAccess(staleStore{m, 20})
	b, err := o.ByteArrayRange(5, 10)
	if !IsIO(err) || !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("expected out-of-range I/O error, got %q %v", b, err)
	}
	b, err = o.ByteArrayRange(5, 5)
	if err != nil || string(b) != "56789" {
		t.Fatalf("range within actual extent: %q %v", b, err)
	}
}
