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

// Package ioorigin provides a uniform façade over the many shapes an I/O source or
// sink can take in Go: a byte slice, a string, a path, a file system entry, a reader,
// a writer, a random-access store, a channel or a URI.
//
// An Origin wraps exactly one of those values. Call sites accept an *Origin and ask it
// for the view they need (a byte slice, a text reader, a raw output stream, a seekable
// channel ...). The origin either hands its value out directly, synthesizes an adapter
// from a richer representation, or fails with a *CapabilityError when the conversion
// makes no sense (asking an in-memory byte slice for an output stream, for instance).
//
// Every synthesized adapter owns exactly the one resource it wraps and forwards Close
// to it, so closing the outermost view releases the physical handle underneath.
// Sibling views derived from one Origin are not reference counted: the resource being
// released must tolerate Close being called more than once. MakeIdempotent helps with
// resources that don't.
//
// A Builder composes an Origin with buffering, charset and open-mode configuration.
//
// An I/O channel is an abstraction of a stateful object (that is either taken care of by the operating
// system or implemented in userland) from/to which information is retrieved / stored through a set of
// I/O primitives, such as Read() and Write().
//
// A blob is opaque data which can be randomly accessed by io.ReaderAt and io.WriterAt while a stream
// can be accessed by io.Reader and io.Writer, additionally with io.Seeker.
package ioorigin
