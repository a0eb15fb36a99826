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
	"fmt"
	"os"
	"strings"
)

// Kind identifies which representation an Origin wraps.
type Kind uint8

const (
	KindBytes Kind = iota
	KindString
	KindPath
	KindFile
	KindReader
	KindWriter
	KindInputStream
	KindOutputStream
	KindRandomAccess
	KindChannel
	KindURI
	numKinds
)

var kindNames = [numKinds]string{
	KindBytes:        "bytes",
	KindString:       "string",
	KindPath:         "path",
	KindFile:         "file",
	KindReader:       "reader",
	KindWriter:       "writer",
	KindInputStream:  "input stream",
	KindOutputStream: "output stream",
	KindRandomAccess: "random access",
	KindChannel:      "channel",
	KindURI:          "uri",
}

func (k Kind) String() string {
	if k < numKinds {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds returns every Kind in declaration order.
func Kinds() []Kind {
	ks := make([]Kind, 0, numKinds)
	for k := Kind(0); k < numKinds; k++ {
		ks = append(ks, k)
	}
	return ks
}

// View identifies the shape a caller asks an Origin for.
type View uint8

const (
	ViewByteArray View = iota
	ViewCharSequence
	ViewReader
	ViewWriter
	ViewInputStream
	ViewOutputStream
	ViewPath
	ViewFile
	ViewRandomAccess
	ViewChannel
	numViews
)

var viewNames = [numViews]string{
	ViewByteArray:    "byte array",
	ViewCharSequence: "char sequence",
	ViewReader:       "reader",
	ViewWriter:       "writer",
	ViewInputStream:  "input stream",
	ViewOutputStream: "output stream",
	ViewPath:         "path",
	ViewFile:         "file",
	ViewRandomAccess: "random access",
	ViewChannel:      "channel",
}

func (v View) String() string {
	if v < numViews {
		return viewNames[v]
	}
	return "unknown"
}

// Views returns every View in declaration order.
func Views() []View {
	vs := make([]View, 0, numViews)
	for v := View(0); v < numViews; v++ {
		vs = append(vs, v)
	}
	return vs
}

const (
	_y = true
	__ = false
)

// capabilities is authoritative: accessors consult it before dispatching.
var capabilities = [numKinds][numViews]bool{
	//                 bytes chars  rd  wr  in  out path file ra  chan
	KindBytes:        {_y, _y, _y, __, _y, __, __, __, _y, _y},
	KindString:       {_y, _y, _y, __, _y, __, __, __, __, _y},
	KindPath:         {_y, _y, _y, _y, _y, _y, _y, _y, _y, _y},
	KindFile:         {_y, _y, _y, _y, _y, _y, _y, _y, _y, _y},
	KindReader:       {_y, _y, _y, __, _y, __, __, __, __, _y},
	KindWriter:       {__, __, __, _y, __, _y, __, __, __, _y},
	KindInputStream:  {_y, _y, _y, __, _y, __, __, __, __, _y},
	KindOutputStream: {__, __, __, _y, __, _y, __, __, __, _y},
	KindRandomAccess: {_y, _y, _y, _y, _y, _y, _y, _y, _y, _y},
	KindChannel:      {_y, _y, _y, _y, _y, _y, __, __, __, _y},
	KindURI:          {_y, _y, _y, _y, _y, _y, _y, _y, _y, _y},
}

// Capable reports whether an origin of kind k has a strategy for view v.
func Capable(k Kind, v View) bool {
	if k >= numKinds || v >= numViews {
		return false
	}
	return capabilities[k][v]
}

// OpenMode selects the access a RandomAccess or Channel view is opened with.
type OpenMode uint8

const (
	OpenRead OpenMode = 1 << iota
	OpenWrite
	OpenSeek
	OpenAppend
	OpenCreate
	OpenTruncate
)

// ReadWrite is the mode most callers want for a random-access file.
const ReadWrite = OpenRead | OpenWrite | OpenSeek

func (m OpenMode) normalize() OpenMode {
	if m&(OpenRead|OpenWrite|OpenAppend) == 0 {
		m |= OpenRead
	}
	return m
}

func (m OpenMode) Readable() bool { return m.normalize()&OpenRead != 0 }

func (m OpenMode) Writable() bool { return m&(OpenWrite|OpenAppend) != 0 }

func (m OpenMode) Seekable() bool { return m&OpenSeek != 0 }

func (m OpenMode) flag() int {
	m = m.normalize()
	var f int
	switch {
	case m.Readable() && m.Writable():
		f = os.O_RDWR
	case m.Writable():
		f = os.O_WRONLY
	default:
		f = os.O_RDONLY
	}
	if m&OpenAppend != 0 {
		f |= os.O_APPEND
	}
	if m&OpenCreate != 0 {
		f |= os.O_CREATE
	}
	if m&OpenTruncate != 0 {
		f |= os.O_TRUNC
	}
	return f
}

var openModeNames = []string{"read", "write", "seek", "append", "create", "truncate"}

func (m OpenMode) String() string {
	var parts []string
	for i, name := range openModeNames {
		if m&(1<<uint(i)) != 0 {
			parts = append(parts, name)
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// ParseOpenMode parses the form produced by OpenMode.String.
func ParseOpenMode(s string) (OpenMode, error) {
	var m OpenMode
	if s == "" || s == "none" {
		return m, nil
	}
outer:
	for _, part := range strings.Split(s, "|") {
		part = strings.TrimSpace(part)
		for i, name := range openModeNames {
			if part == name {
				m |= 1 << uint(i)
				continue outer
			}
		}
		return 0, &ConfigError{Field: "open mode", Err: fmt.Errorf("unknown flag %q", part)}
	}
	return m, nil
}
