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
	"fmt"
)

var (
	// Returned by IOCombo methods when the specified operation is not supported by the underlying
	// implementation. *CapabilityError values match it with errors.Is.
	Unsupported = errors.New("unsupported operation")

	// ErrClosed is returned by operations on a view that has already been closed.
	ErrClosed = errors.New("view already closed")

	ErrOutOfRange = errors.New("byte range out of bounds")

	// ErrOpenMode is returned when the requested OpenMode asks for access the
	// origin cannot give, such as writing to an in-memory byte slice.
	ErrOpenMode = errors.New("open mode inconsistent with origin")

	// ErrNotLocal is returned when a path is requested from a file system that
	// is not backed by the local operating system.
	ErrNotLocal = errors.New("not a local file system entry")

	ErrScheme = errors.New("unsupported URI scheme")

	// ErrIsDirectory is returned when a directory is found where a regular
	// file is expected.
	ErrIsDirectory = errors.New("is a directory")

	ErrNoOrigin           = errors.New("no origin configured")
	ErrInvalidBufferSize  = errors.New("buffer size must be positive")
	ErrBufferSizeExceeded = errors.New("buffer size exceeds maximum")
	ErrUnknownCharset     = errors.New("unknown charset")
)

// CapabilityError reports that an origin kind has no strategy at all for the
// requested view. It indicates a logic error on the caller's side and is never
// worth retrying.
type CapabilityError struct {
	Kind Kind
	View View
}

func (e *CapabilityError) Error() string {
	return fmt.Sprintf("ioorigin: %s origin cannot provide a %s view", e.Kind, e.View)
}

func (e *CapabilityError) Is(target error) bool {
	return target == Unsupported
}

// OpError reports that a supported conversion failed because of the resource
// behind the origin.
type OpError struct {
	Op   string
	Kind Kind
	View View
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("ioorigin: %s %s origin as %s: %v", e.Op, e.Kind, e.View, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// ConfigError is returned by Builder accessors when the accumulated
// configuration turns out to be invalid.
type ConfigError struct {
	Field string
	Err   error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("ioorigin: invalid %s: %v", e.Field, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// IsCapability reports whether err stems from an unsupported (kind, view) pair.
func IsCapability(err error) bool {
	var ce *CapabilityError
	return errors.As(err, &ce)
}

// IsIO reports whether err stems from the resource behind a supported conversion.
func IsIO(err error) bool {
	var oe *OpError
	return errors.As(err, &oe)
}
