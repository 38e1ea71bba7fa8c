// Package batch decodes record files concurrently. Each file is read,
// decompressed by extension, parsed and decoded independently.
package batch

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"rs2tools/pkg/log"
	"rs2tools/pkg/record"
	"rs2tools/pkg/rs2crypto"
	"rs2tools/pkg/transform"
)

// Decoded is one record and its plaintext. Err is set instead of Text when
// the record could not be decrypted (for example a one-word record).
type Decoded struct {
	File  string   `json:"file,omitempty"`
	Line  int      `json:"line,omitempty"`
	Name  string   `json:"name,omitempty"`
	Words []uint32 `json:"words"`
	Text  string   `json:"text"`
	Err   string   `json:"error,omitempty"`
}

type FileResult struct {
	Path    string
	Records []Decoded
}

// Failed counts records that did not decode.
func (f *FileResult) Failed() int {
	n := 0
	for _, d := range f.Records {
		if d.Err != "" {
			n++
		}
	}
	return n
}

// DecodeRecords decodes recs in order, stopping early if ctx is cancelled.
func DecodeRecords(ctx context.Context, file string, recs []record.Record) ([]Decoded, error) {
	out := make([]Decoded, 0, len(recs))
	for _, rec := range recs {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		d := Decoded{File: file, Line: rec.Line, Name: rec.Name, Words: rec.Words}
		text, err := rs2crypto.DecryptString(rec.Words)
		if err != nil {
			d.Err = err.Error()
			log.Warn().Str("file", file).Int("line", rec.Line).Err(err).Msg("record not decoded")
		} else {
			d.Text = text
		}
		out = append(out, d)
	}
	return out, nil
}

// DecodeFile reads, decompresses and decodes one record file.
func DecodeFile(ctx context.Context, path string) (*FileResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %w", err)
	}
	tr, err := transform.ForPath(path)
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	data, err := tr.Reverse(raw)
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	recs, err := record.ReadAll(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("batch: %s: %w", path, err)
	}
	decoded, err := DecodeRecords(ctx, path, recs)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("file", path).Int("records", len(decoded)).Msg("decoded file")
	return &FileResult{Path: path, Records: decoded}, nil
}

// DecodeFiles decodes paths with at most workers files in flight
// (workers <= 0 means runtime.NumCPU()). Results are in input order. The
// first file error cancels the remaining work.
func DecodeFiles(ctx context.Context, paths []string, workers int) ([]*FileResult, error) {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	results := make([]*FileResult, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			res, err := DecodeFile(ctx, path)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
