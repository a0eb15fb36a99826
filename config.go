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
	"io"

	"gopkg.in/yaml.v3"
)

// Config is the file form of a Builder configuration:
//
//	buffer_size: 65536
//	buffer_size_max: 1048576
//	charset: ISO-8859-1
//	open_mode: read|write|seek
//
// Fields left out keep the Builder's values.
type Config struct {
	BufferSize    int      `yaml:"buffer_size,omitempty"`
	BufferSizeMax int      `yaml:"buffer_size_max,omitempty"`
	Charset       string   `yaml:"charset,omitempty"`
	OpenMode      OpenMode `yaml:"open_mode,omitempty"`
}

// LoadConfig reads a YAML configuration from o. Unknown keys are rejected.
func LoadConfig(o *Origin) (*Config, error) {
	r, err := o.InputStream()
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return decodeConfig(r)
}

// ParseConfig parses a YAML configuration held in memory.
func ParseConfig(b []byte) (*Config, error) {
	return LoadConfig(FromBytes(b))
}

func decodeConfig(r io.Reader) (*Config, error) {
	c := &Config{}
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, &ConfigError{Field: "config", Err: err}
	}
	return c, nil
}

// Marshal renders c in the form LoadConfig reads.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

func (m OpenMode) MarshalYAML() (interface{}, error) {
	return m.String(), nil
}

func (m *OpenMode) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := ParseOpenMode(s)
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
