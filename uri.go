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
	"net/http"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-retryablehttp"
)

// DefaultHTTPClient fetches http and https URIs for origins created without
// an explicit client.
var DefaultHTTPClient = NewHTTPClient()

// NewHTTPClient returns a retrying client that logs through the package
// logger.
func NewHTTPClient() *retryablehttp.Client {
	c := retryablehttp.NewClient()
	c.Logger = leveledLogger{}
	return c
}

func (s uriSource) httpClient() *retryablehttp.Client {
	if s.client != nil {
		return s.client
	}
	return DefaultHTTPClient
}

// fetch issues a GET and hands back the body of a successful response.
func (s uriSource) fetch() (io.ReadCloser, error) {
	req, err := retryablehttp.NewRequest(http.MethodGet, s.u.String(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		resp.Body.Close()
		return nil, fmt.Errorf("GET %s: %s", s.u.Redacted(), resp.Status)
	}
	return resp.Body, nil
}

// resolve picks the physical strategy for s from its scheme. The returned
// closer releases whatever resolve acquired; callers producing a stream view
// hand it to the view instead of closing it.
func (s uriSource) resolve(v View) (source, io.Closer, error) {
	switch strings.ToLower(s.u.Scheme) {
	case "", "file":
		if h := s.u.Hostname(); h != "" && !strings.EqualFold(h, "localhost") {
			return nil, nil, fmt.Errorf("%w: file URI names host %q", ErrNotLocal, h)
		}
		p := s.u.Path
		if p == "" {
			p = s.u.Opaque
		}
		return pathSource(filepath.FromSlash(p)), nopCloser{}, nil
	case "http", "https":
		switch v {
		case ViewWriter, ViewOutputStream:
			return nil, nil, fmt.Errorf("%w: %s is read-only", ErrScheme, s.u.Scheme)
		case ViewPath, ViewFile:
			return nil, nil, ErrNotLocal
		}
		body, err := s.fetch()
		if err != nil {
			return nil, nil, err
		}
		if v == ViewRandomAccess || v == ViewChannel {
			b, err := io.ReadAll(body)
			body.Close()
			if err != nil {
				return nil, nil, err
			}
			return bytesSource(b), nopCloser{}, nil
		}
		return inputStreamSource{body}, body, nil
	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrScheme, s.u.Scheme)
	}
}

// viaURI resolves s and runs fn on the resolved source. keep transfers what
// resolve acquired to fn's result; otherwise it is released once fn returns.
func viaURI[T any](s uriSource, v View, keep bool, fn func(source) (T, error)) (T, error) {
	var zero T
	inner, c, err := s.resolve(v)
	if err != nil {
		return zero, err
	}
	logStrategy(logger, KindURI, v, "resolved to "+inner.kind().String())
	r, err := fn(inner)
	if err != nil || !keep {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return zero, err
	}
	return r, nil
}
