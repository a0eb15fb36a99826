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

// CloseHook forwards Close to the wrapped closer exactly once and then runs
// Callback. Subsequent calls to Close return nil without touching the
// wrapped closer.
type CloseHook struct {
	IOCombo
	Callback func(s io.Closer)
	released bool
}

func (c *CloseHook) Close() error {
	if c.released {
		return nil
	}
	c.released = true
	c.IOCombo.closed = true
	err := c.Closer.Close()
	if err != nil {
		return err
	}
	if c.Callback != nil {
		c.Callback(c.Closer)
	}
	return nil
}

func NewCloseHook(c io.Closer, callback func(s io.Closer)) *CloseHook {
	return &CloseHook{
		IOCombo:  *NewIOCombo(c),
		Callback: callback,
	}
}

// MakeIdempotent wraps c so that it is safe to release more than once, which
// is what an Origin expects from any resource shared between sibling views.
func MakeIdempotent(c io.Closer) *CloseHook {
	if h, ok := c.(*CloseHook); ok {
		return h
	}
	return NewCloseHook(c, nil)
}
