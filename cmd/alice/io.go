package main

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/alice/curve"
	"github.com/f3rmion/alice/group"
)

func (a *app) readYAML(v any) error {
	data, err := io.ReadAll(a.stdin)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("input: %w", err)
	}
	return nil
}

func (a *app) writeYAML(v any) error {
	enc := yaml.NewEncoder(a.stdout)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

// scalarText returns the tagged text form of v.
func scalarText(id curve.ID, v group.Scalar) string {
	return curve.NewScalar(id, v).String()
}

// pointText returns the tagged text form of v.
func pointText(id curve.ID, v group.Point) string {
	return curve.NewPoint(id, v).String()
}

func pointsText(id curve.ID, vs []group.Point) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = pointText(id, v)
	}
	return out
}

func parseScalar(id curve.ID, s, field string) (group.Scalar, error) {
	_, v, err := curve.DecodeScalar(s, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func parsePoint(id curve.ID, s, field string) (group.Point, error) {
	_, v, err := curve.DecodePoint(s, id)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func parseScalars(id curve.ID, ss []string, field string) ([]group.Scalar, error) {
	out := make([]group.Scalar, len(ss))
	for i, s := range ss {
		v, err := parseScalar(id, s, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parsePoints(id curve.ID, ss []string, field string) ([]group.Point, error) {
	out := make([]group.Point, len(ss))
	for i, s := range ss {
		v, err := parsePoint(id, s, fmt.Sprintf("%s[%d]", field, i))
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

// curveOf resolves the curve named in a document, falling back to the
// configured one.
func (a *app) curveOf(name string) (curve.ID, error) {
	if name != "" {
		return curve.Parse(name)
	}
	return a.curve()
}
