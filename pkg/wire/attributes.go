package wire

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/fxamacker/cbor/v2"
)

// ErrAttributeMissing is returned when a requested attribute is absent.
var ErrAttributeMissing = errors.New("attribute missing")

// Attributes maps attribute IDs to their raw CBOR values. Values stay
// encoded until the receiver decodes them with Get.
type Attributes map[AttributeID]cbor.RawMessage

// Has returns true if the attribute is present.
func (a Attributes) Has(id AttributeID) bool {
	_, ok := a[id]
	return ok
}

// IDs returns the present attribute IDs in ascending order.
func (a Attributes) IDs() []AttributeID {
	return slices.Sorted(maps.Keys(a))
}

// Put encodes v and stores it under id.
func (a Attributes) Put(id AttributeID, v any) error {
	data, err := Marshal(v)
	if err != nil {
		return fmt.Errorf("encode attribute %d: %w", id, err)
	}
	a[id] = data
	return nil
}

// Get decodes the attribute id into a T.
// Returns ErrAttributeMissing if the attribute is absent.
func Get[T any](a Attributes, id AttributeID) (T, error) {
	var v T
	raw, ok := a[id]
	if !ok {
		return v, fmt.Errorf("%w: %d", ErrAttributeMissing, id)
	}
	if err := Unmarshal(raw, &v); err != nil {
		return v, fmt.Errorf("decode attribute %d: %w", id, err)
	}
	return v, nil
}

// Lookup decodes the attribute id if present. The boolean is false when the
// attribute is absent or cannot be decoded into a T.
func Lookup[T any](a Attributes, id AttributeID) (T, bool) {
	v, err := Get[T](a, id)
	return v, err == nil
}

// AttributeBuilder collects attributes for a request or notification,
// keeping the first encoding error.
type AttributeBuilder struct {
	attrs Attributes
	err   error
}

// NewAttributeBuilder creates an empty builder.
func NewAttributeBuilder() *AttributeBuilder {
	return &AttributeBuilder{attrs: make(Attributes)}
}

// Put adds an attribute. Once an error occurred further calls are ignored.
func (b *AttributeBuilder) Put(id AttributeID, v any) *AttributeBuilder {
	if b.err == nil {
		b.err = b.attrs.Put(id, v)
	}
	return b
}

// PutIf adds an attribute only when cond holds.
func (b *AttributeBuilder) PutIf(cond bool, id AttributeID, v any) *AttributeBuilder {
	if cond {
		b.Put(id, v)
	}
	return b
}

// Build returns the collected attributes or the first encoding error.
func (b *AttributeBuilder) Build() (Attributes, error) {
	if b.err != nil {
		return nil, b.err
	}
	return b.attrs, nil
}

// CapabilityEntry is one entry of a capability list: every combination of
// the listed modes, formats and file formats is supported, with HDR
// availability given for the whole entry. Values are enum ordinals.
type CapabilityEntry struct {
	Modes       []uint8 `cbor:"1,keyasint"`
	Formats     []uint8 `cbor:"2,keyasint"`
	FileFormats []uint8 `cbor:"3,keyasint"`
	HDR         bool    `cbor:"4,keyasint,omitempty"`
}

// Range is a closed floating point interval.
type Range struct {
	Min float64 `cbor:"1,keyasint"`
	Max float64 `cbor:"2,keyasint"`
}

// Bounded is an integer value together with its allowed bounds.
type Bounded struct {
	Min   int `cbor:"1,keyasint"`
	Value int `cbor:"2,keyasint"`
	Max   int `cbor:"3,keyasint"`
}

// Enums converts enum values to their wire form, a CBOR byte string of
// ordinals.
func Enums[E ~uint8](values ...E) []uint8 {
	out := make([]uint8, len(values))
	for i, v := range values {
		out[i] = uint8(v)
	}
	return out
}

// AsEnums converts ordinals back to enum values.
func AsEnums[E ~uint8](ordinals []uint8) []E {
	out := make([]E, len(ordinals))
	for i, o := range ordinals {
		out[i] = E(o)
	}
	return out
}
