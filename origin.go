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
	"io"
	"net/url"

	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/text/encoding"
)

// Origin is an immutable handle over exactly one I/O source or sink. It never
// opens anything on construction; handles are acquired when a view is
// requested, and every view owns the adapters it was built from.
//
// An Origin is not safe for concurrent use when the value it wraps is not.
type Origin struct {
	src source
}

func FromBytes(b []byte) *Origin { return &Origin{bytesSource(b)} }

func FromString(s string) *Origin { return &Origin{stringSource(s)} }

func FromPath(p string) *Origin { return &Origin{pathSource(p)} }

func FromFile(f File) *Origin { return &Origin{fileSource(f)} }

// FromReader wraps a stream of UTF-8 text.
func FromReader(r io.Reader) *Origin { return &Origin{readerSource{r}} }

// FromWriter wraps a sink for UTF-8 text.
func FromWriter(w io.Writer) *Origin { return &Origin{writerSource{w}} }

// FromInputStream wraps a stream of raw bytes.
func FromInputStream(r io.Reader) *Origin { return &Origin{inputStreamSource{r}} }

// FromOutputStream wraps a sink for raw bytes.
func FromOutputStream(w io.Writer) *Origin { return &Origin{outputStreamSource{w}} }

func FromRandomAccess(s RandomAccessStore) *Origin { return &Origin{randomAccessSource{s}} }

// FromChannel wraps c; whether it can be read, written or seeked is
// discovered from the interfaces it implements.
func FromChannel(c io.Closer) *Origin { return &Origin{channelSource{c}} }

// FromURI wraps u. file URIs are served from the local file system, http and
// https URIs are fetched with DefaultHTTPClient.
func FromURI(u *url.URL) *Origin { return &Origin{uriSource{u: u}} }

// FromURIWithClient is FromURI with an explicit client for http and https.
func FromURIWithClient(u *url.URL, client *retryablehttp.Client) *Origin {
	return &Origin{uriSource{u: u, client: client}}
}

// ParseURI parses rawURI and wraps the result.
func ParseURI(rawURI string) (*Origin, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, err
	}
	return FromURI(u), nil
}

func (o *Origin) Kind() Kind { return o.src.kind() }

func (o *Origin) String() string {
	switch s := o.src.(type) {
	case pathSource:
		return fmt.Sprintf("%s origin %q", s.kind(), string(s))
	case fileSource:
		return fmt.Sprintf("%s origin %q", s.kind(), File(s).String())
	case uriSource:
		return fmt.Sprintf("%s origin %s", s.kind(), s.u.Redacted())
	case bytesSource:
		return fmt.Sprintf("%s origin (%d bytes)", s.kind(), len(s))
	}
	return o.src.kind().String() + " origin"
}

// Value returns the wrapped value as passed to the constructor.
func (o *Origin) Value() interface{} {
	switch s := o.src.(type) {
	case bytesSource:
		return []byte(s)
	case stringSource:
		return string(s)
	case pathSource:
		return string(s)
	case fileSource:
		return File(s)
	case readerSource:
		return s.r
	case writerSource:
		return s.w
	case inputStreamSource:
		return s.r
	case outputStreamSource:
		return s.w
	case randomAccessSource:
		return s.s
	case channelSource:
		return s.c
	case uriSource:
		return s.u
	default:
		panic(unhandled(o.src, numViews))
	}
}

func (o *Origin) check(v View) error {
	if !Capable(o.Kind(), v) {
		return &CapabilityError{Kind: o.Kind(), View: v}
	}
	return nil
}

// wrap turns a resource failure into an *OpError, leaving errors that are
// already classified untouched.
func (o *Origin) wrap(op string, v View, err error) error {
	var ce *CapabilityError
	var oe *OpError
	if errors.As(err, &ce) || errors.As(err, &oe) {
		return err
	}
	return &OpError{Op: op, Kind: o.Kind(), View: v, Err: err}
}

// ByteArray returns the whole content. A bytes origin hands out its slice
// without copying.
func (o *Origin) ByteArray() ([]byte, error) {
	if err := o.check(ViewByteArray); err != nil {
		return nil, err
	}
	b, err := byteArray(o.src)
	if err != nil {
		return nil, o.wrap("read", ViewByteArray, err)
	}
	return b, nil
}

// ByteArrayRange returns exactly n bytes starting at off. A range reaching
// past the end of the content fails with ErrOutOfRange.
func (o *Origin) ByteArrayRange(off, n int64) ([]byte, error) {
	if err := o.check(ViewByteArray); err != nil {
		return nil, err
	}
	b, err := byteArrayRange(o.src, off, n)
	if err != nil {
		return nil, o.wrap("read range", ViewByteArray, err)
	}
	return b, nil
}

// CharSequence returns the content as text, decoding bytes from enc. A nil
// enc means UTF-8.
func (o *Origin) CharSequence(enc encoding.Encoding) (string, error) {
	if err := o.check(ViewCharSequence); err != nil {
		return "", err
	}
	s, err := charSequence(o.src, enc)
	if err != nil {
		return "", o.wrap("read", ViewCharSequence, err)
	}
	return s, nil
}

// Reader returns a stream of UTF-8 text decoded from enc.
func (o *Origin) Reader(enc encoding.Encoding) (io.ReadCloser, error) {
	if err := o.check(ViewReader); err != nil {
		return nil, err
	}
	r, err := reader(o.src, enc)
	if err != nil {
		return nil, o.wrap("open", ViewReader, err)
	}
	return r, nil
}

// Writer returns a sink accepting UTF-8 text that is stored encoded in enc.
func (o *Origin) Writer(enc encoding.Encoding) (io.WriteCloser, error) {
	if err := o.check(ViewWriter); err != nil {
		return nil, err
	}
	w, err := writer(o.src, enc)
	if err != nil {
		return nil, o.wrap("create", ViewWriter, err)
	}
	return w, nil
}

func (o *Origin) InputStream() (io.ReadCloser, error) {
	return o.inputStream(nil)
}

func (o *Origin) inputStream(enc encoding.Encoding) (io.ReadCloser, error) {
	if err := o.check(ViewInputStream); err != nil {
		return nil, err
	}
	r, err := inputStream(o.src, enc)
	if err != nil {
		return nil, o.wrap("open", ViewInputStream, err)
	}
	return r, nil
}

// OutputStream returns a raw byte sink. File-backed origins are truncated and
// have their parent directories created.
func (o *Origin) OutputStream() (io.WriteCloser, error) {
	return o.outputStream(nil)
}

func (o *Origin) outputStream(enc encoding.Encoding) (io.WriteCloser, error) {
	if err := o.check(ViewOutputStream); err != nil {
		return nil, err
	}
	w, err := outputStream(o.src, enc)
	if err != nil {
		return nil, o.wrap("create", ViewOutputStream, err)
	}
	return w, nil
}

// Path returns the absolute OS path behind the origin.
func (o *Origin) Path() (string, error) {
	if err := o.check(ViewPath); err != nil {
		return "", err
	}
	p, err := pathOf(o.src)
	if err != nil {
		return "", o.wrap("locate", ViewPath, err)
	}
	return p, nil
}

func (o *Origin) File() (File, error) {
	if err := o.check(ViewFile); err != nil {
		return File{}, err
	}
	f, err := fileOf(o.src)
	if err != nil {
		return File{}, o.wrap("locate", ViewFile, err)
	}
	return f, nil
}

// RandomAccess opens the origin as a random-access store. Write access
// creates missing files and parent directories.
func (o *Origin) RandomAccess(mode OpenMode) (RandomAccessStore, error) {
	if err := o.check(ViewRandomAccess); err != nil {
		return nil, err
	}
	s, err := randomAccess(o.src, mode)
	if err != nil {
		return nil, o.wrap("open "+mode.String(), ViewRandomAccess, err)
	}
	return s, nil
}

// Channel opens the origin with the access mode asks for. Operations mode
// leaves out fail with Unsupported on the returned channel.
func (o *Origin) Channel(mode OpenMode) (Channel, error) {
	if err := o.check(ViewChannel); err != nil {
		return nil, err
	}
	c, err := channel(o.src, mode)
	if err != nil {
		return nil, o.wrap("open "+mode.String(), ViewChannel, err)
	}
	return c, nil
}

// Size reports the length of the content in bytes for origins that know it
// without consuming anything. Streams report a *CapabilityError; a store or
// remote URI that cannot tell its size reports an *OpError. Both match
// Unsupported.
func (o *Origin) Size() (int64, error) {
	switch s := o.src.(type) {
	case bytesSource:
		return int64(len(s)), nil
	case stringSource:
		return int64(len(s)), nil
	case pathSource:
		n, err := regularSize(string(s))
		if err != nil {
			return 0, o.wrap("stat", ViewByteArray, err)
		}
		return n, nil
	case fileSource:
		n, err := File(s).size()
		if err != nil {
			return 0, o.wrap("stat", ViewByteArray, err)
		}
		return n, nil
	case randomAccessSource:
		if n := storeSize(s.s); n >= 0 {
			return n, nil
		}
		return 0, o.wrap("stat", ViewRandomAccess, Unsupported)
	case uriSource:
		u := s.u
		if u.Scheme == "" || u.Scheme == "file" {
			inner, _, err := s.resolve(ViewPath)
			if err != nil {
				return 0, o.wrap("stat", ViewByteArray, err)
			}
			return (&Origin{inner}).Size()
		}
		return 0, o.wrap("stat", ViewByteArray, Unsupported)
	case readerSource, writerSource, inputStreamSource, outputStreamSource, channelSource:
		return 0, &CapabilityError{Kind: o.Kind(), View: ViewByteArray}
	default:
		panic(unhandled(o.src, ViewByteArray))
	}
}
