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

	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the logger used for conversion diagnostics. A nil
// logger restores the logrus standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

// Logger returns the logger used for conversion diagnostics.
func Logger() logrus.FieldLogger {
	return logger
}

func logStrategy(l logrus.FieldLogger, k Kind, v View, strategy string) {
	l.WithFields(logrus.Fields{
		"kind":     k.String(),
		"view":     v.String(),
		"strategy": strategy,
	}).Debug("ioorigin: resolved view")
}

// leveledLogger lets retryablehttp report retries through logrus. A zero
// leveledLogger follows whatever SetLogger last installed.
type leveledLogger struct {
	l logrus.FieldLogger
}

var _ retryablehttp.LeveledLogger = leveledLogger{}

func (ll leveledLogger) entry(keysAndValues []interface{}) logrus.FieldLogger {
	fields := make(logrus.Fields, len(keysAndValues)/2)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	l := ll.l
	if l == nil {
		l = logger
	}
	return l.WithFields(fields)
}

func (ll leveledLogger) Error(msg string, keysAndValues ...interface{}) {
	ll.entry(keysAndValues).Error(msg)
}

func (ll leveledLogger) Info(msg string, keysAndValues ...interface{}) {
	ll.entry(keysAndValues).Info(msg)
}

func (ll leveledLogger) Debug(msg string, keysAndValues ...interface{}) {
	ll.entry(keysAndValues).Debug(msg)
}

func (ll leveledLogger) Warn(msg string, keysAndValues ...interface{}) {
	ll.entry(keysAndValues).Warn(msg)
}
