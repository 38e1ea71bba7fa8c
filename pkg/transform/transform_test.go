package transform

import (
	"bytes"
	"errors"
	"fmt"
	"testing"
)

var sample = []byte("gom3name: {1040990352, 2495382815}\ngom3md5: {3029409044, 1812751812}\n")

func TestCompressionRoundTrip(t *testing.T) {
	for _, name := range []string{"none", "gzip", "zstd"} {
		tr, err := ForName(name)
		if err != nil {
			t.Fatalf("ForName(%q) failed: %v", name, err)
		}
		enc, err := tr.Apply(sample)
		if err != nil {
			t.Fatalf("%s: Apply failed: %v", name, err)
		}
		dec, err := tr.Reverse(enc)
		if err != nil {
			t.Fatalf("%s: Reverse failed: %v", name, err)
		}
		if !bytes.Equal(dec, sample) {
			t.Fatalf("%s: round trip mismatch: %q", name, dec)
		}
	}
}

func TestForPath(t *testing.T) {
	tests := map[string]string{
		"names.txt":     "*transform.noOpTransform",
		"names.txt.gz":  "*transform.gzipTransform",
		"names.txt.ZST": "*transform.zstdTransform",
		"names.gz.zst":  "*transform.Pipeline",
		"names.gz.txt":  "*transform.noOpTransform",
	}
	for path, want := range tests {
		tr, err := ForPath(path)
		if err != nil {
			t.Fatalf("ForPath(%q) failed: %v", path, err)
		}
		if got := fmt.Sprintf("%T", tr); got != want {
			t.Errorf("ForPath(%q): expected %s, got %s", path, want, got)
		}
	}
}

func TestForNameUnknown(t *testing.T) {
	_, err := ForName("lz4")
	var ue *UnknownError
	if !errors.As(err, &ue) || ue.Name != "lz4" {
		t.Fatalf("Expected UnknownError for lz4, got %v", err)
	}
}

func TestPipelineOrder(t *testing.T) {
	gz := NewGzipTransform()
	zs, err := NewZstdTransform()
	if err != nil {
		t.Fatalf("NewZstdTransform failed: %v", err)
	}
	p, err := NewPipeline(gz, zs)
	if err != nil {
		t.Fatalf("NewPipeline failed: %v", err)
	}
	enc, err := p.Encode(sample)
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	// The outer layer is zstd, so gzip alone must not be able to read it.
	if _, err := gz.Reverse(enc); err == nil {
		t.Fatal("Expected gzip to reject zstd framed data")
	}
	dec, err := p.Decode(enc)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if !bytes.Equal(dec, sample) {
		t.Fatalf("Pipeline round trip mismatch: %q", dec)
	}

	fromPath, err := ForPath("names.txt.gz.zst")
	if err != nil {
		t.Fatalf("ForPath failed: %v", err)
	}
	if dec, err = fromPath.Reverse(enc); err != nil || !bytes.Equal(dec, sample) {
		t.Fatalf("ForPath stacked decode mismatch: %q, %v", dec, err)
	}

	if _, err := NewPipeline(); err == nil {
		t.Fatal("Expected an error for an empty pipeline")
	}
}
