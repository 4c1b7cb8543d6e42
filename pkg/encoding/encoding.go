// Package encoding converts permutation states to and from text and bytes.
package encoding

import (
	"encoding/json"
	"strconv"
	"strings"

	"koalabear-perm/pkg/field"

	"github.com/consensys/gnark-crypto/field/koalabear"
	"github.com/pkg/errors"
)

// ElementSize is the number of bytes of a packed element.
const ElementSize = koalabear.Bytes

var (
	ErrNotCanonical = errors.New("encoding: value is not a canonical field element")
	ErrBadLength    = errors.New("encoding: wrong number of elements")
)

// PackFes packs field elements into bytes, 4 bytes per canonical value,
// little-endian.
func PackFes(fes []field.Element) []byte {
	result := make([]byte, len(fes)*ElementSize)
	for i := range fes {
		koalabear.LittleEndian.PutElement((*[ElementSize]byte)(result[i*ElementSize:]), fes[i])
	}
	return result
}

// UnpackFes unpacks bytes written by PackFes. Values >= P are rejected.
func UnpackFes(bs []byte) ([]field.Element, error) {
	if len(bs)%ElementSize != 0 {
		return nil, errors.Wrapf(ErrBadLength, "%d bytes is not a multiple of %d", len(bs), ElementSize)
	}
	result := make([]field.Element, len(bs)/ElementSize)
	for i := range result {
		e, err := koalabear.LittleEndian.Element((*[ElementSize]byte)(bs[i*ElementSize:]))
		if err != nil {
			return nil, errors.Wrapf(ErrNotCanonical, "element %d", i)
		}
		result[i] = e
	}
	return result, nil
}

// ParseState parses canonical integers separated by commas or whitespace.
// Brackets around the list are ignored, so FormatState output and JSON
// arrays both parse. If width > 0 the state must have exactly width elements.
func ParseState(s string, width int) ([]field.Element, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "[")
	s = strings.TrimSuffix(s, "]")
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})

	state := make([]field.Element, len(fields))
	for i, f := range fields {
		v, err := strconv.ParseUint(f, 10, 32)
		if err != nil {
			return nil, errors.Wrapf(err, "element %d", i)
		}
		if v >= field.P {
			return nil, errors.Wrapf(ErrNotCanonical, "element %d: %d", i, v)
		}
		state[i] = field.FromCanonical(uint32(v))
	}
	if width > 0 && len(state) != width {
		return nil, errors.Wrapf(ErrBadLength, "got %d elements, want %d", len(state), width)
	}
	return state, nil
}

// FormatState writes the canonical values of state as "[a, b, ...]".
func FormatState(state []field.Element) string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i := range state {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(strconv.FormatUint(uint64(field.ToCanonical(state[i])), 10))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Result is the JSON form of one permutation call.
type Result struct {
	Permutation string   `json:"permutation"`
	Width       int      `json:"width"`
	Input       []uint32 `json:"input"`
	Output      []uint32 `json:"output"`
}

// MarshalResult encodes a permutation call as indented JSON.
func MarshalResult(name string, input, output []field.Element) ([]byte, error) {
	r := Result{
		Permutation: name,
		Width:       len(input),
		Input:       field.ToCanonicalSlice(input),
		Output:      field.ToCanonicalSlice(output),
	}
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "encoding result")
	}
	return data, nil
}
