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
	"path/filepath"
	"testing"
)

type dummyCloser2 struct {
	calls int
	err   error
}

func (c *dummyCloser2) Close() error {
	c.calls++
	return c.err
}

func TestCloseHook(t *testing.T) {
	callbacks := 0
	h := NewCloseHook(&dummyCloser2{}, func(c io.Closer) {
		_, ok := c.(*dummyCloser2)
		if !ok {
			t.Fail()
		}
		callbacks++
	})
	err := h.Close()
	if err != nil {
		t.Fail()
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if callbacks != 1 {
		t.Fatalf("callback ran %d times", callbacks)
	}
}

func TestCloseHookErrorSkipsCallback(t *testing.T) {
	boom := errors.New("boom")
	c := &dummyCloser2{err: boom}
	h := NewCloseHook(c, func(io.Closer) { t.Fatal("callback after failed close") })
	if err := h.Close(); !errors.Is(err, boom) {
		t.Fatalf("expected %v, got %v", boom, err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close: %v", err)
	}
	if c.calls != 1 {
		t.Fatalf("closer called %d times", c.calls)
	}
}

func TestMakeIdempotentFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "f"))
	if err != nil {
		t.Fatal(err)
	}
	h := MakeIdempotent(f)
	if MakeIdempotent(h) != h {
		t.Fatal("wrapping twice should return the same hook")
	}
	if _, err := h.Write([]byte("x")); err != nil {
		t.Fatalf("write through hook: %v", err)
	}
	if err := h.Close(); err != nil {
		t.Fatal(err)
	}
	if err := h.Close(); err != nil {
		t.Fatalf("second close of idempotent file: %v", err)
	}
	if _, err := h.Write([]byte("x")); !errors.Is(err, ErrClosed) {
		t.Fatalf("write after close: %v", err)
	}
}
