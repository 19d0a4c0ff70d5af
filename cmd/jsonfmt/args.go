/*
Copyright 2025 Trident Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package main

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strconv"

	"github.com/samber/oops"

	"github.com/jplu/jsonfmt/jsonfmt"
)

// convertArgs turns positional strings into typed arguments, one per value
// directive of format. Bytes in format that are not value directives are
// skipped here and reported by the emitter. When openSources is false, 'n'
// arguments carry only their file size and no reader. The returned function
// closes the opened files.
func convertArgs(format string, raw []string, openSources bool) ([]jsonfmt.Arg, func() error, error) {
	var (
		args    []jsonfmt.Arg
		closers []io.Closer
	)
	closeAll := func() error {
		var errs []error
		for _, c := range closers {
			errs = append(errs, c.Close())
		}
		return errors.Join(errs...)
	}

	for offset := 0; offset < len(format); offset++ {
		directive := format[offset]
		kind := jsonfmt.DirectiveKind(directive)
		if kind == jsonfmt.KindNone {
			continue
		}
		index := len(args)
		if index >= len(raw) {
			_ = closeAll()
			return nil, nil, oops.Code("ARGUMENT_INVALID").
				With("directive", string(directive), "offset", offset, "index", index).
				Errorf("directive %q at offset %d has no argument", directive, offset)
		}
		arg, closer, err := convertArg(directive, kind, raw[index], openSources)
		if err != nil {
			_ = closeAll()
			return nil, nil, err
		}
		if closer != nil {
			closers = append(closers, closer)
		}
		args = append(args, arg)
	}

	if len(raw) > len(args) {
		_ = closeAll()
		return nil, nil, oops.Code("ARGUMENT_INVALID").
			With("expected", len(args), "got", len(raw)).
			Errorf("format takes %d arguments, got %d", len(args), len(raw))
	}
	return args, closeAll, nil
}

// convertArg converts a single positional string for directive.
func convertArg(directive byte, kind jsonfmt.Kind, s string, openSources bool) (jsonfmt.Arg, io.Closer, error) {
	switch kind {
	case jsonfmt.KindInt:
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return jsonfmt.Arg{}, nil, oops.Code("ARGUMENT_INVALID").
				With("directive", string(directive), "value", s).Wrapf(err, "invalid integer")
		}
		return jsonfmt.Int(v), nil, nil
	case jsonfmt.KindFloat:
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return jsonfmt.Arg{}, nil, oops.Code("ARGUMENT_INVALID").
				With("directive", string(directive), "value", s).Wrapf(err, "invalid number")
		}
		return jsonfmt.Float(v), nil, nil
	case jsonfmt.KindBytes:
		return jsonfmt.Bytes([]byte(s)), nil, nil
	case jsonfmt.KindString:
		return jsonfmt.String(s), nil, nil
	case jsonfmt.KindSource:
		return openSource(s, openSources)
	}
	return jsonfmt.Arg{}, nil, oops.Code("ARGUMENT_INVALID").Errorf("directive %q takes no argument", directive)
}

// openSource returns a Source argument streaming the file at path. Its size
// is taken from the file metadata. With open false the file is not opened.
func openSource(path string, open bool) (jsonfmt.Arg, io.Closer, error) {
	info, err := os.Stat(path)
	if err != nil {
		return jsonfmt.Arg{}, nil, oops.Code("SOURCE_FAILED").With("path", path).Wrap(err)
	}
	if !info.Mode().IsRegular() {
		return jsonfmt.Arg{}, nil, oops.Code("SOURCE_FAILED").With("path", path).
			Errorf("%s is not a regular file", path)
	}
	size := int(info.Size())
	if !open {
		return jsonfmt.Source(nil, size), nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return jsonfmt.Arg{}, nil, oops.Code("SOURCE_FAILED").With("path", path).Wrap(err)
	}
	return jsonfmt.Source(bufio.NewReader(f), size), f, nil
}

// classify attaches an error code and position context to emitter errors.
func classify(err error) error {
	if err == nil {
		return nil
	}

	var (
		fe *jsonfmt.FormatError
		ae *jsonfmt.ArgumentError
		se *jsonfmt.SourceError
	)
	switch {
	case errors.As(err, &fe):
		return oops.Code("FORMAT_INVALID").
			With("directive", string(fe.Directive), "offset", fe.Offset).Wrap(err)
	case errors.As(err, &ae):
		return oops.Code("ARGUMENT_INVALID").
			With("offset", ae.Offset, "index", ae.Index, "want", ae.Want.String(), "got", ae.Got.String()).Wrap(err)
	case errors.As(err, &se):
		return oops.Code("SOURCE_FAILED").
			With("index", se.Index, "pulled", se.Pulled, "want", se.Want).Wrap(err)
	}
	return oops.Wrap(err)
}
