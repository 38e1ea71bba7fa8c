// Package transform provides reversible byte transforms applied to record
// files and decode reports on their way to and from disk.
package transform

import (
	"path/filepath"
	"strings"
)

type Transform interface {
	Apply(data []byte) ([]byte, error)
	Reverse(data []byte) ([]byte, error)
}

type noOpTransform struct{}

func NewNoOpTransform() Transform                            { return &noOpTransform{} }
func (n *noOpTransform) Apply(data []byte) ([]byte, error)   { return data, nil }
func (n *noOpTransform) Reverse(data []byte) ([]byte, error) { return data, nil }

// ForName returns the transform registered under a compression name
// ("none", "gzip" or "zstd").
func ForName(name string) (Transform, error) {
	switch strings.ToLower(name) {
	case "", "none":
		return NewNoOpTransform(), nil
	case "gzip", "gz":
		return NewGzipTransform(), nil
	case "zstd", "zst":
		return NewZstdTransform()
	default:
		return nil, &UnknownError{Name: name}
	}
}

// ForPath picks transforms from the trailing compression extensions of path,
// so "names.txt.gz.zst" is unwrapped as zstd then gzip. A path without one
// gets the no-op transform.
func ForPath(path string) (Transform, error) {
	var stack []Transform
	for {
		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".gz" && ext != ".zst" {
			break
		}
		t, err := ForName(ext[1:])
		if err != nil {
			return nil, err
		}
		stack = append([]Transform{t}, stack...)
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	switch len(stack) {
	case 0:
		return NewNoOpTransform(), nil
	case 1:
		return stack[0], nil
	default:
		return NewPipeline(stack...)
	}
}

type UnknownError struct {
	Name string
}

func (e *UnknownError) Error() string {
	return "transform: unknown compression " + e.Name
}
