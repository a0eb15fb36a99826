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
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/ianaindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// LookupCharset resolves an IANA charset name such as "UTF-8", "ISO-8859-1"
// or "Shift_JIS". The empty name means UTF-8.
func LookupCharset(name string) (encoding.Encoding, error) {
	if name == "" || strings.EqualFold(name, "utf-8") || strings.EqualFold(name, "utf8") {
		return unicode.UTF8, nil
	}
	enc, err := ianaindex.IANA.Encoding(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownCharset, name)
	}
	if enc == nil {
		return nil, fmt.Errorf("%w: %q has no implementation", ErrUnknownCharset, name)
	}
	return enc, nil
}

func charsetName(enc encoding.Encoding) string {
	if isUTF8(enc) {
		return "UTF-8"
	}
	name, err := ianaindex.IANA.Name(enc)
	if err != nil {
		return fmt.Sprint(enc)
	}
	return name
}

// isUTF8 reports whether text in enc needs no transcoding.
func isUTF8(enc encoding.Encoding) bool {
	return enc == nil || enc == unicode.UTF8 || enc == encoding.Nop
}

// decodeBytes converts b from enc to UTF-8.
func decodeBytes(b []byte, enc encoding.Encoding) (string, error) {
	if isUTF8(enc) {
		return string(b), nil
	}
	out, err := enc.NewDecoder().Bytes(b)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// encodeString converts UTF-8 text s to enc.
func encodeString(s string, enc encoding.Encoding) ([]byte, error) {
	if isUTF8(enc) {
		return []byte(s), nil
	}
	return enc.NewEncoder().Bytes([]byte(s))
}

// decodingReader yields UTF-8 text from r, which is in enc.
func decodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if isUTF8(enc) {
		return r
	}
	return transform.NewReader(r, enc.NewDecoder())
}

// encodingReader yields bytes in enc from r, which is UTF-8 text.
func encodingReader(r io.Reader, enc encoding.Encoding) io.Reader {
	if isUTF8(enc) {
		return r
	}
	return transform.NewReader(r, enc.NewEncoder())
}

// encodingWriter accepts UTF-8 text and writes it to w in enc. The returned
// flush must run before w is released.
func encodingWriter(w io.Writer, enc encoding.Encoding) (io.Writer, func() error) {
	if isUTF8(enc) {
		return w, nil
	}
	tw := transform.NewWriter(w, enc.NewEncoder())
	return tw, tw.Close
}

// decodingWriter accepts bytes in enc and writes UTF-8 text to w.
func decodingWriter(w io.Writer, enc encoding.Encoding) (io.Writer, func() error) {
	if isUTF8(enc) {
		return w, nil
	}
	tw := transform.NewWriter(w, enc.NewDecoder())
	return tw, tw.Close
}
