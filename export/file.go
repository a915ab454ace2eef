// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package export

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/rankstat/rankmath"
)

// A File exports summaries to a local file, replacing any existing
// contents. The file is tab-separated if Path ends in ".tsv" and
// comma-separated otherwise.
type File struct {
	Path string
}

// Export implements rankmath.Exporter.
func (f *File) Export(ctx context.Context, s *rankmath.Summary) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	out, err := os.Create(f.Path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := out.Close(); err == nil {
			err = cerr
		}
	}()
	if err := Write(out, s, Comma(f.Path)); err != nil {
		return fmt.Errorf("%s: %w", f.Path, err)
	}
	return nil
}

// ReadFile reads a summary from the file at path, choosing the
// separator by its extension.
func ReadFile(path string) (*rankmath.Summary, error) {
	in, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer in.Close()
	s, err := Read(in, Comma(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
