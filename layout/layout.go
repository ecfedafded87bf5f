// Package layout describes a message as an ordered list of wire kinds, such
// as "uint16,uint,string", and decodes or encodes it with a flow.Inflow or
// flow.Outflow without a Go type for the message.
package layout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oy3o/flow"
)

var (
	// ErrUnknownKind indicates a layout names a kind that is not registered.
	ErrUnknownKind = errors.New("layout: unknown kind")

	// ErrDuplicateKind indicates Register was called twice with the same name.
	ErrDuplicateKind = errors.New("layout: kind already registered")

	// ErrEmptyLayout indicates a layout with no kinds.
	ErrEmptyLayout = errors.New("layout: empty layout")

	// ErrValueCount indicates the number of values does not match the layout.
	ErrValueCount = errors.New("layout: value count does not match layout")

	// ErrValueType indicates a value of the wrong Go type for its kind.
	ErrValueType = errors.New("layout: value type does not match kind")
)

// Field is one decoded element of a layout.
type Field struct {
	Kind  string `json:"kind" yaml:"kind"`
	Value any    `json:"value" yaml:"value"`
}

// Layout is an ordered list of kinds.
type Layout []Kind

// Parse parses a comma separated list of kind names.
func Parse(spec string) (Layout, error) {
	var l Layout
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		k, ok := Lookup(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownKind, name)
		}
		l = append(l, k)
	}
	if len(l) == 0 {
		return nil, ErrEmptyLayout
	}
	return l, nil
}

// String returns the layout in the form accepted by Parse.
func (l Layout) String() string {
	names := make([]string, len(l))
	for i, k := range l {
		names[i] = k.Name
	}
	return strings.Join(names, ",")
}

// Decode reads one value per kind. On error the fields decoded so far are returned.
func (l Layout) Decode(in flow.Inflow) ([]Field, error) {
	fields := make([]Field, 0, len(l))
	for i, k := range l {
		v, err := k.Decode(in)
		if err != nil {
			return fields, fmt.Errorf("layout: field %d (%s): %w", i, k.Name, err)
		}
		fields = append(fields, Field{Kind: k.Name, Value: v})
	}
	return fields, nil
}

// Encode writes values in layout order. values[i] must have the Go type of l[i].
func (l Layout) Encode(out flow.Outflow, values []any) error {
	if len(values) != len(l) {
		return fmt.Errorf("%w: %d values for %d kinds", ErrValueCount, len(values), len(l))
	}
	for i, k := range l {
		if err := k.Encode(out, values[i]); err != nil {
			return fmt.Errorf("layout: field %d (%s): %w", i, k.Name, err)
		}
	}
	return nil
}

// ParseValues converts one text argument per kind into typed values for Encode.
func (l Layout) ParseValues(args []string) ([]any, error) {
	if len(args) != len(l) {
		return nil, fmt.Errorf("%w: %d values for %d kinds", ErrValueCount, len(args), len(l))
	}
	values := make([]any, len(l))
	for i, k := range l {
		v, err := k.Parse(args[i])
		if err != nil {
			return nil, fmt.Errorf("layout: field %d (%s): %w", i, k.Name, err)
		}
		values[i] = v
	}
	return values, nil
}
