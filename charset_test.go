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
	"testing"
)

func TestLookupCharset(t *testing.T) {
	for _, name := range []string{"", "utf-8", "UTF8", "ISO-8859-1", "Shift_JIS", "windows-1252"} {
		enc, err := LookupCharset(name)
		if err != nil || enc == nil {
			t.Errorf("%q: %v", name, err)
		}
	}
	if _, err := LookupCharset("klingon"); !errors.Is(err, ErrUnknownCharset) {
		t.Fatalf("unknown charset: %v", err)
	}
}

func TestTranscodeHelpers(t *testing.T) {
	enc, err := LookupCharset("Shift_JIS")
	if err != nil {
		t.Fatal(err)
	}
	b, err := encodeString("日本", enc)
	if err != nil {
		t.Fatal(err)
	}
	if len(b) != 4 {
		t.Fatalf("Shift_JIS bytes %x", b)
	}
	s, err := decodeBytes(b, enc)
	if err != nil || s != "日本" {
		t.Fatalf("decoded %q %v", s, err)
	}
	if s, _ := FromBytes(b).CharSequence(enc); s != "日本" {
		t.Fatalf("char sequence %q", s)
	}
	if charsetName(nil) != "UTF-8" {
		t.Fail()
	}
}
