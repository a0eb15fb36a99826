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

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/moriyoshi/go-ioorigin"
	digest "github.com/opencontainers/go-digest"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// options are the builder settings shared by every command.
type options struct {
	bufferSize    int
	bufferSizeMax int
	charset       string
	configPath    string
	verbose       bool
	log           *logrus.Logger
}

func (o *options) flagSet() *pflag.FlagSet {
	fs := pflag.NewFlagSet("builder", pflag.ContinueOnError)
	fs.IntVar(&o.bufferSize, "buffer-size", 0, "buffer size in bytes (default from config or 8192)")
	fs.IntVar(&o.bufferSizeMax, "buffer-size-max", 0, "reject buffer sizes above this value")
	fs.StringVar(&o.charset, "charset", "", "IANA charset of text content (default UTF-8)")
	fs.StringVar(&o.configPath, "config", "", "YAML builder configuration, a path or URI")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "log conversion decisions")
	return fs
}

func (o *options) setupLogging(errOut io.Writer) {
	o.log = logrus.New()
	o.log.SetOutput(errOut)
	o.log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	if o.verbose {
		o.log.SetLevel(logrus.DebugLevel)
	}
	ioorigin.SetLogger(o.log)
}

// builder returns a Builder for origin with the config file applied first
// and explicit flags on top of it.
func (o *options) builder(origin *ioorigin.Origin) (*ioorigin.Builder, error) {
	b := ioorigin.NewBuilder().SetOrigin(origin).SetLogger(o.log)
	if o.configPath != "" {
		src, err := parseOrigin(o.configPath, nil)
		if err != nil {
			return nil, err
		}
		c, err := ioorigin.LoadConfig(src)
		if err != nil {
			return nil, err
		}
		b.Apply(c)
	}
	if o.bufferSize != 0 {
		b.SetBufferSize(o.bufferSize)
	}
	if o.bufferSizeMax != 0 {
		b.SetBufferSizeMax(o.bufferSizeMax)
	}
	if o.charset != "" {
		b.SetCharset(o.charset)
	}
	return b, nil
}

// parseOrigin maps a command line argument to an origin. std stands in for
// "-".
func parseOrigin(arg string, std *ioorigin.Origin) (*ioorigin.Origin, error) {
	switch {
	case arg == "-":
		if std == nil {
			return nil, fmt.Errorf("%q is not usable here", arg)
		}
		return std, nil
	case strings.Contains(arg, "://"):
		return ioorigin.ParseURI(arg)
	default:
		return ioorigin.FromPath(arg), nil
	}
}

func stdin(cmd *cobra.Command) *ioorigin.Origin {
	return ioorigin.FromInputStream(cmd.InOrStdin())
}

func stdout(cmd *cobra.Command) *ioorigin.Origin {
	return ioorigin.FromOutputStream(cmd.OutOrStdout())
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "ioorigin",
		Short:         "convert between I/O origins",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			opts.setupLogging(cmd.ErrOrStderr())
		},
	}
	root.PersistentFlags().AddFlagSet(opts.flagSet())
	root.AddCommand(newCatCmd(opts), newDigestCmd(opts), newCopyCmd(opts), newViewsCmd(opts))
	return root
}

func newCatCmd(opts *options) *cobra.Command {
	var decode bool
	cmd := &cobra.Command{
		Use:   "cat SOURCE",
		Short: "copy SOURCE to standard output",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseOrigin(args[0], stdin(cmd))
			if err != nil {
				return err
			}
			b, err := opts.builder(src)
			if err != nil {
				return err
			}
			var in io.ReadCloser
			if decode {
				in, err = b.Reader()
			} else {
				in, err = b.InputStream()
			}
			if err != nil {
				return err
			}
			defer in.Close()
			_, err = io.Copy(cmd.OutOrStdout(), in)
			return err
		},
	}
	cmd.Flags().BoolVarP(&decode, "decode", "d", false, "decode SOURCE from --charset to UTF-8")
	return cmd
}

func newDigestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "digest SOURCE",
		Short: "print the sha256 digest of SOURCE",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseOrigin(args[0], stdin(cmd))
			if err != nil {
				return err
			}
			b, err := opts.builder(src)
			if err != nil {
				return err
			}
			in, err := b.InputStream()
			if err != nil {
				return err
			}
			defer in.Close()
			d, err := digest.FromReader(in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), d)
			return nil
		},
	}
}

func newCopyCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "copy SOURCE DEST",
		Short: "copy SOURCE into DEST, creating parent directories",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseOrigin(args[0], stdin(cmd))
			if err != nil {
				return err
			}
			dst, err := parseOrigin(args[1], stdout(cmd))
			if err != nil {
				return err
			}
			sb, err := opts.builder(src)
			if err != nil {
				return err
			}
			db, err := opts.builder(dst)
			if err != nil {
				return err
			}
			in, err := sb.InputStream()
			if err != nil {
				return err
			}
			defer in.Close()
			out, err := db.OutputStream()
			if err != nil {
				return err
			}
			n, err := io.Copy(out, in)
			if cerr := out.Close(); err == nil {
				err = cerr
			}
			if err != nil {
				return err
			}
			opts.log.WithFields(logrus.Fields{"from": src.String(), "to": dst.String(), "bytes": n}).Info("copied")
			return nil
		},
	}
}

func newViewsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "views SOURCE",
		Short: "list the views SOURCE can provide",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := parseOrigin(args[0], stdin(cmd))
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s\n", src)
			for _, v := range ioorigin.Views() {
				mark := "no"
				if ioorigin.Capable(src.Kind(), v) {
					mark = "yes"
				}
				fmt.Fprintf(w, "  %-14s %s\n", v, mark)
			}
			return nil
		},
	}
}
