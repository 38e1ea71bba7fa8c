package batch

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"rs2tools/pkg/transform"
)

// WriteReport writes every decoded record as text lines
// ("file:line<TAB>name<TAB>text") or as JSON lines.
func WriteReport(w io.Writer, results []*FileResult, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		for _, fr := range results {
			for _, d := range fr.Records {
				if err := enc.Encode(d); err != nil {
					return fmt.Errorf("batch: write report: %w", err)
				}
			}
		}
		return nil
	case "text", "":
		for _, fr := range results {
			for _, d := range fr.Records {
				text := d.Text
				if d.Err != "" {
					text = "error: " + d.Err
				}
				if _, err := fmt.Fprintf(w, "%s:%d\t%s\t%s\n", d.File, d.Line, d.Name, text); err != nil {
					return fmt.Errorf("batch: write report: %w", err)
				}
			}
		}
		return nil
	default:
		return fmt.Errorf("batch: unknown report format %q", format)
	}
}

// SaveReport renders the report and writes it to path through the named
// compression transform.
func SaveReport(path string, results []*FileResult, format, compression string) error {
	tr, err := transform.ForName(compression)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := WriteReport(&buf, results, format); err != nil {
		return err
	}
	data, err := tr.Apply(buf.Bytes())
	if err != nil {
		return fmt.Errorf("batch: compress report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("batch: %w", err)
	}
	return nil
}
