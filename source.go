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
	"io/fs"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/hashicorp/go-retryablehttp"
)

// source is the closed set of values an Origin can wrap. Each concrete type
// corresponds to exactly one Kind.
type source interface {
	kind() Kind
}

type (
	bytesSource        []byte
	stringSource       string
	pathSource         string
	fileSource         File
	readerSource       struct{ r io.Reader }
	writerSource       struct{ w io.Writer }
	inputStreamSource  struct{ r io.Reader }
	outputStreamSource struct{ w io.Writer }
	randomAccessSource struct{ s RandomAccessStore }
	channelSource      struct{ c io.Closer }
	uriSource          struct {
		u      *url.URL
		client *retryablehttp.Client
	}
)

func (bytesSource) kind() Kind        { return KindBytes }
func (stringSource) kind() Kind       { return KindString }
func (pathSource) kind() Kind         { return KindPath }
func (fileSource) kind() Kind         { return KindFile }
func (readerSource) kind() Kind       { return KindReader }
func (writerSource) kind() Kind       { return KindWriter }
func (inputStreamSource) kind() Kind  { return KindInputStream }
func (outputStreamSource) kind() Kind { return KindOutputStream }
func (randomAccessSource) kind() Kind { return KindRandomAccess }
func (channelSource) kind() Kind      { return KindChannel }
func (uriSource) kind() Kind          { return KindURI }

// unhandled is raised by a dispatch switch that met a source type it does not
// list. Adding a Kind without extending every switch trips it in tests.
func unhandled(src source, v View) string {
	return fmt.Sprintf("ioorigin: no dispatch case for %T as %s", src, v)
}

// File names an entry of a file system; it is the second path flavor next to
// plain OS paths. Root, when set, is the local directory the entry lives
// under, which makes the entry reachable as an OS path and writable. FS may be
// left nil when Root is set.
type File struct {
	FS   fs.FS
	Root string
	Name string
}

// LocalFile returns the File for an OS path.
func LocalFile(p string) (File, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return File{}, err
	}
	dir, name := filepath.Split(abs)
	return File{FS: os.DirFS(dir), Root: filepath.Clean(dir), Name: name}, nil
}

// Path returns the absolute OS path of a local File.
func (f File) Path() (string, error) {
	if f.Root == "" {
		return "", ErrNotLocal
	}
	return filepath.Abs(filepath.Join(f.Root, filepath.FromSlash(f.Name)))
}

func (f File) String() string {
	if f.Root != "" {
		return filepath.Join(f.Root, filepath.FromSlash(f.Name))
	}
	return path.Clean(f.Name)
}

func (f File) open() (fs.File, error) {
	if f.Root != "" {
		p, err := f.Path()
		if err != nil {
			return nil, err
		}
		osf, err := openRegular(p)
		if err != nil {
			return nil, err
		}
		return osf, nil
	}
	if f.FS == nil {
		return nil, &fs.PathError{Op: "open", Path: f.Name, Err: fs.ErrInvalid}
	}
	file, err := f.FS.Open(f.Name)
	if err != nil {
		return nil, err
	}
	fi, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if fi.IsDir() {
		file.Close()
		return nil, &fs.PathError{Op: "open", Path: f.Name, Err: ErrIsDirectory}
	}
	return file, nil
}

func (f File) size() (int64, error) {
	if f.Root != "" {
		p, err := f.Path()
		if err != nil {
			return 0, err
		}
		return regularSize(p)
	}
	if f.FS == nil {
		return 0, &fs.PathError{Op: "stat", Path: f.Name, Err: fs.ErrInvalid}
	}
	fi, err := fs.Stat(f.FS, f.Name)
	if err != nil {
		return 0, err
	}
	if fi.IsDir() {
		return 0, &fs.PathError{Op: "stat", Path: f.Name, Err: ErrIsDirectory}
	}
	return fi.Size(), nil
}

// openRegular opens p for reading and refuses anything but a regular file.
func openRegular(p string) (*os.File, error) {
	f, err := os.Open(p)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: p, Err: ErrIsDirectory}
	}
	return f, nil
}

func regularSize(p string) (int64, error) {
	fi, err := os.Stat(p)
	if err != nil {
		return 0, err
	}
	if fi.IsDir() {
		return 0, &fs.PathError{Op: "stat", Path: p, Err: ErrIsDirectory}
	}
	return fi.Size(), nil
}

// openFile opens p with mode. Write access creates the file and any missing
// parent directories.
func openFile(p string, mode OpenMode) (*os.File, error) {
	flag := mode.flag()
	if mode.Writable() {
		flag |= os.O_CREATE
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			return nil, err
		}
	}
	f, err := os.OpenFile(p, flag, 0666)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &fs.PathError{Op: "open", Path: p, Err: ErrIsDirectory}
	}
	return f, nil
}
