package transform

import (
	"errors"
	"fmt"
)

// Pipeline applies transforms 0..N on the way out and N..0 on the way in.
type Pipeline struct {
	transforms []Transform
}

// NewPipeline requires at least one transform. Use NewNoOpTransform() for an
// explicitly empty pipeline.
func NewPipeline(transforms ...Transform) (*Pipeline, error) {
	if len(transforms) == 0 {
		return nil, errors.New("transform: pipeline requires at least one transform; use NewNoOpTransform() for an empty pipeline")
	}

	s := make([]Transform, len(transforms))
	copy(s, transforms)

	return &Pipeline{transforms: s}, nil
}

// Encode applies the pipeline in forward order.
func (p *Pipeline) Encode(data []byte) ([]byte, error) {
	var err error
	cur := data
	for i, t := range p.transforms {
		cur, err = t.Apply(cur)
		if err != nil {
			return nil, fmt.Errorf("encode: transform %d (%T) Apply failed: %w", i, t, err)
		}
	}
	return cur, nil
}

// Decode applies the pipeline in reverse order.
func (p *Pipeline) Decode(data []byte) ([]byte, error) {
	var err error
	cur := data
	for i := len(p.transforms) - 1; i >= 0; i-- {
		t := p.transforms[i]
		cur, err = t.Reverse(cur)
		if err != nil {
			return nil, fmt.Errorf("decode: transform %d (%T) Reverse failed: %w", i, t, err)
		}
	}
	return cur, nil
}

func (p *Pipeline) Apply(data []byte) ([]byte, error)   { return p.Encode(data) }
func (p *Pipeline) Reverse(data []byte) ([]byte, error) { return p.Decode(data) }
