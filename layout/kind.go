package layout

import (
	"encoding/hex"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/oy3o/flow"
	"github.com/puzpuzpuz/xsync/v4"
	"gopkg.in/yaml.v3"
)

// Kind binds a name to the Inflow/Outflow operations of one wire element.
type Kind struct {
	Name string
	// Decode reads one value.
	Decode func(in flow.Inflow) (any, error)
	// Encode writes v, which must have the Go type Decode returns.
	Encode func(out flow.Outflow, v any) error
	// Parse converts text to the Go type Encode accepts.
	Parse func(s string) (any, error)
}

// bytesPrefix names the fixed-length raw kind, "bytes:N".
const bytesPrefix = "bytes:"

// kinds is shared by every goroutine parsing layouts.
var kinds = xsync.NewMap[string, Kind]()

// Register adds a kind. It fails if the name is taken.
func Register(k Kind) error {
	if k.Name == "" || k.Decode == nil || k.Encode == nil || k.Parse == nil {
		return fmt.Errorf("layout: incomplete kind %q", k.Name)
	}
	if strings.HasPrefix(k.Name, bytesPrefix) {
		return fmt.Errorf("layout: kind name %q is reserved", k.Name)
	}
	if _, loaded := kinds.LoadOrStore(k.Name, k); loaded {
		return fmt.Errorf("%w: %q", ErrDuplicateKind, k.Name)
	}
	return nil
}

// Lookup returns the kind registered under name. "bytes:N" is resolved
// on the fly for any N >= 0.
func Lookup(name string) (Kind, bool) {
	if k, ok := kinds.Load(name); ok {
		return k, true
	}
	if n, ok := strings.CutPrefix(name, bytesPrefix); ok {
		size, err := strconv.Atoi(n)
		if err != nil || size < 0 {
			return Kind{}, false
		}
		return rawBytes(name, size), true
	}
	return Kind{}, false
}

// Names returns the registered kind names in sorted order.
func Names() []string {
	names := make([]string, 0, kinds.Size())
	kinds.Range(func(name string, _ Kind) bool {
		names = append(names, name)
		return true
	})
	slices.Sort(names)
	return names
}

// typed builds a kind from a typed getter and putter; text is parsed as YAML.
func typed[T any](name string, get func(flow.Inflow) (T, error), put func(flow.Outflow, T) error) Kind {
	return Kind{
		Name: name,
		Decode: func(in flow.Inflow) (any, error) {
			v, err := get(in)
			if err != nil {
				return nil, err
			}
			return v, nil
		},
		Encode: func(out flow.Outflow, v any) error {
			t, ok := v.(T)
			if !ok {
				return fmt.Errorf("%w: %T", ErrValueType, v)
			}
			return put(out, t)
		},
		Parse: func(s string) (any, error) {
			var t T
			if err := yaml.Unmarshal([]byte(s), &t); err != nil {
				return nil, err
			}
			return t, nil
		},
	}
}

func rawBytes(name string, size int) Kind {
	return Kind{
		Name: name,
		Decode: func(in flow.Inflow) (any, error) {
			b, err := in.GetByteArray(size)
			if err != nil {
				return nil, err
			}
			return b, nil
		},
		Encode: func(out flow.Outflow, v any) error {
			b, ok := v.([]byte)
			if !ok {
				return fmt.Errorf("%w: %T", ErrValueType, v)
			}
			if len(b) != size {
				return fmt.Errorf("%w: %d bytes for %s", ErrValueType, len(b), name)
			}
			return out.PutByteArray(b)
		},
		Parse: func(s string) (any, error) {
			return hex.DecodeString(s)
		},
	}
}

func getFlags(in flow.Inflow) ([]bool, error) {
	flags, err := in.GetFlagsBlock()
	if err != nil {
		return nil, err
	}
	return flags[:], nil
}

func init() {
	builtin := []Kind{
		typed("uint8", flow.Inflow.GetUInt8, flow.Outflow.PutUInt8),
		typed("byte", flow.Inflow.GetByte, flow.Outflow.PutByte),
		typed("int8", flow.Inflow.GetInt8, flow.Outflow.PutInt8),
		typed("bool", flow.Inflow.GetBoolean, flow.Outflow.PutBoolean),
		typed("flags", getFlags, flow.Outflow.PutFlags8),
		typed("uint16", flow.Inflow.GetUInt16, flow.Outflow.PutUInt16),
		typed("int16", flow.Inflow.GetInt16, flow.Outflow.PutInt16),
		typed("uint31", flow.Inflow.GetUInt31, flow.Outflow.PutUInt31),
		typed("uint32", flow.Inflow.GetUInt32, flow.Outflow.PutUInt32),
		typed("int32", flow.Inflow.GetInt32, flow.Outflow.PutInt32),
		typed("int64", flow.Inflow.GetInt64, flow.Outflow.PutInt64),
		typed("float32", flow.Inflow.GetFloat32, flow.Outflow.PutFloat32),
		typed("float64", flow.Inflow.GetFloat64, flow.Outflow.PutFloat64),
		typed("uint", flow.Inflow.GetUInt, flow.Outflow.PutUInt),
		typed("int32[]", flow.Inflow.GetInt32Array, flow.Outflow.PutInt32Array),
		typed("uint32[]", flow.Inflow.GetUInt32Array, flow.Outflow.PutUInt32Array),
		typed("int64[]", flow.Inflow.GetInt64Array, flow.Outflow.PutInt64Array),
		typed("float32[]", flow.Inflow.GetFloat32Array, flow.Outflow.PutFloat32Array),
		typed("float64[]", flow.Inflow.GetFloat64Array, flow.Outflow.PutFloat64Array),
		typed("string", flow.Inflow.GetString, flow.Outflow.PutString),
	}
	// strings are taken verbatim, "123" stays text
	builtin[len(builtin)-1].Parse = func(s string) (any, error) { return s, nil }

	for _, k := range builtin {
		if err := Register(k); err != nil {
			panic(err)
		}
	}
}
