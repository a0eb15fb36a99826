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
	"os"
	"testing"
)

func TestReadOnlyKindsHaveNoWriteViews(t *testing.T) {
	for _, k := range []Kind{KindBytes, KindString, KindReader, KindInputStream} {
		for _, v := range []View{ViewWriter, ViewOutputStream} {
			if Capable(k, v) {
				t.Errorf("%s origin claims a %s view", k, v)
			}
		}
	}
}

func TestWriteOnlyKindsHaveNoReadViews(t *testing.T) {
	for _, k := range []Kind{KindWriter, KindOutputStream} {
		for _, v := range []View{ViewByteArray, ViewCharSequence, ViewReader, ViewInputStream, ViewRandomAccess} {
			if Capable(k, v) {
				t.Errorf("%s origin claims a %s view", k, v)
			}
		}
	}
}

func TestCapableOutOfRange(t *testing.T) {
	if Capable(numKinds, ViewByteArray) || Capable(KindBytes, numViews) {
		t.Fail()
	}
	if Kind(200).String() != "unknown" || View(200).String() != "unknown" {
		t.Fail()
	}
	if len(Kinds()) != int(numKinds) || len(Views()) != int(numViews) {
		t.Fail()
	}
}

func TestOpenModeFlag(t *testing.T) {
	for _, tc := range []struct {
		mode OpenMode
		flag int
	}{
		{0, os.O_RDONLY},
		{OpenRead, os.O_RDONLY},
		{OpenSeek, os.O_RDONLY},
		{OpenWrite, os.O_WRONLY},
		{ReadWrite, os.O_RDWR},
		{OpenAppend, os.O_WRONLY | os.O_APPEND},
		{OpenWrite | OpenCreate | OpenTruncate, os.O_WRONLY | os.O_CREATE | os.O_TRUNC},
	} {
		if got := tc.mode.flag(); got != tc.flag {
			t.Errorf("%s: flag %#x, want %#x", tc.mode, got, tc.flag)
		}
	}
	if !OpenMode(0).Readable() || OpenMode(0).Writable() {
		t.Error("zero mode should mean read-only")
	}
	if OpenWrite.Readable() {
		t.Error("write-only mode readable")
	}
}

func TestParseOpenMode(t *testing.T) {
	m, err := ParseOpenMode("read | write|seek")
	if err != nil {
		t.Fatal(err)
	}
	if m != ReadWrite {
		t.Fatalf("parsed %s", m)
	}
	if m.String() != "read|write|seek" {
		t.Fatalf("string %q", m.String())
	}
	if m, err := ParseOpenMode("none"); err != nil || m != 0 {
		t.Fatalf("none: %s %v", m, err)
	}
	if _, err := ParseOpenMode("read|exclusive"); err == nil {
		t.Fatal("unknown flag accepted")
	}
}
