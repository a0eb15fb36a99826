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
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseConfig(t *testing.T) {
	c, err := ParseConfig([]byte(`
buffer_size: 65536
buffer_size_max: 1048576
charset: Shift_JIS
open_mode: read|write|seek
`))
	if err != nil {
		t.Fatal(err)
	}
	if c.BufferSize != 65536 || c.BufferSizeMax != 1048576 || c.Charset != "Shift_JIS" || c.OpenMode != ReadWrite {
		t.Fatalf("unexpected config %+v", c)
	}
	out, err := c.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(out), "open_mode: read|write|seek") {
		t.Fatalf("marshalled:\n%s", out)
	}
}

func TestParseConfigRejectsUnknownKeys(t *testing.T) {
	_, err := ParseConfig([]byte("buffer_sise: 12\n"))
	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("expected config error, got %v", err)
	}
	if _, err := ParseConfig([]byte("open_mode: read|sideways\n")); err == nil {
		t.Fatal("bad open mode accepted")
	}
}

func TestLoadConfigFromPath(t *testing.T) {
	p := filepath.Join(t.TempDir(), "builder.yaml")
	if err := os.WriteFile(p, []byte("buffer_size: 128\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadConfig(FromPath(p))
	if err != nil {
		t.Fatal(err)
	}
	b := NewBuilder().SetOrigin(FromString("x")).Apply(c)
	if n, _ := b.BufferSize(); n != 128 {
		t.Fatalf("buffer size %d", n)
	}

	empty, err := ParseConfig(nil)
	if err != nil || *empty != (Config{}) {
		t.Fatalf("empty config %+v %v", empty, err)
	}
	if _, err := LoadConfig(FromPath(filepath.Join(t.TempDir(), "missing.yaml"))); !IsIO(err) {
		t.Fatalf("missing config: %v", err)
	}
}
