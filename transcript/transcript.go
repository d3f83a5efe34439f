package transcript

import (
	"encoding/hex"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/alice/group"
)

// ErrInvalidInput is returned for transcript inputs that cannot be parsed.
var ErrInvalidInput = errors.New("transcript: invalid input")

// Kind distinguishes the transcript input variants.
type Kind int

const (
	KindText Kind = iota
	KindHex
	KindPoint
)

// KnownPoint names a point that is substituted at challenge time.
type KnownPoint string

const (
	PointY KnownPoint = "Y"
	PointR KnownPoint = "R"
)

const (
	tagText  = "!text"
	tagHex   = "!hex"
	tagPoint = "!point"
)

// Input is one transcript item.
type Input struct {
	Kind  Kind
	Data  []byte     // text or decoded hex bytes
	Point KnownPoint // for KindPoint
}

// Text returns a literal text input.
func Text(s string) Input {
	return Input{Kind: KindText, Data: []byte(s)}
}

// Hex returns a literal bytes input, rendered as hex in YAML.
func Hex(b []byte) Input {
	return Input{Kind: KindHex, Data: b}
}

// Point returns a placeholder input for p.
func Point(p KnownPoint) Input {
	return Input{Kind: KindPoint, Point: p}
}

// MarshalYAML implements yaml.Marshaler.
func (in Input) MarshalYAML() (any, error) {
	node := &yaml.Node{Kind: yaml.ScalarNode, Style: yaml.TaggedStyle}
	switch in.Kind {
	case KindText:
		node.Tag, node.Value = tagText, string(in.Data)
	case KindHex:
		node.Tag, node.Value = tagHex, hex.EncodeToString(in.Data)
	case KindPoint:
		node.Tag, node.Value = tagPoint, string(in.Point)
	default:
		return nil, fmt.Errorf("%w: kind %d", ErrInvalidInput, in.Kind)
	}
	return node, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (in *Input) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("%w: line %d: expected a tagged scalar", ErrInvalidInput, node.Line)
	}
	switch node.Tag {
	case tagText:
		*in = Text(node.Value)
	case tagHex:
		b, err := hex.DecodeString(node.Value)
		if err != nil {
			return fmt.Errorf("%w: line %d: %v", ErrInvalidInput, node.Line, err)
		}
		*in = Hex(b)
	case tagPoint:
		switch p := KnownPoint(node.Value); p {
		case PointY, PointR:
			*in = Point(p)
		default:
			return fmt.Errorf("%w: line %d: unknown point %q", ErrInvalidInput, node.Line, node.Value)
		}
	default:
		return fmt.Errorf("%w: line %d: unknown tag %q", ErrInvalidInput, node.Line, node.Tag)
	}
	return nil
}

// Transcript is an ordered list of inputs hashed into a challenge.
type Transcript struct {
	HashFunction HashFunction `yaml:"hash_function"`
	Input        []Input      `yaml:"input"`
}

// New returns a transcript over the given inputs.
func New(h HashFunction, inputs ...Input) *Transcript {
	return &Transcript{HashFunction: h, Input: inputs}
}

// Parse decodes a YAML transcript. A missing hash function defaults to
// DefaultHashFunction.
func Parse(data []byte) (*Transcript, error) {
	var t Transcript
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("transcript: %w", err)
	}
	if t.HashFunction == "" {
		t.HashFunction = DefaultHashFunction
	}
	return &t, nil
}

// Challenge hashes the inputs in order, substituting y and r for the
// point placeholders, and reduces the digest into a scalar of g.
func (t *Transcript) Challenge(g group.Group, y, r group.Point) group.Scalar {
	hf := t.HashFunction
	if hf == "" {
		hf = DefaultHashFunction
	}
	h := hf.New()
	for _, in := range t.Input {
		switch in.Kind {
		case KindText, KindHex:
			h.Write(in.Data)
		case KindPoint:
			if in.Point == PointY {
				h.Write(y.Bytes())
			} else {
				h.Write(r.Bytes())
			}
		}
	}
	return g.ReduceScalar(h.Sum(nil))
}

// Challenger binds t to g, giving a function of the two known points.
func (t *Transcript) Challenger(g group.Group) func(y, r group.Point) group.Scalar {
	return func(y, r group.Point) group.Scalar {
		return t.Challenge(g, y, r)
	}
}
