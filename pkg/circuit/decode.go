package circuit

import (
	"encoding/json"
	"fmt"
	"io"
)

// Unknown is a record whose type tag this package does not model. It is
// kept so that partitioning can count it.
type Unknown struct {
	Type string `json:"type"`
	ID   string `json:"id,omitempty"`
}

func (u Unknown) ElementType() string { return u.Type }
func (u Unknown) Key() string         { return deriveKey(u.ID, u.Type, u) }

// Decode reads a JSON array of type-tagged records. Records of unmodelled
// types decode to Unknown.
func Decode(r io.Reader) ([]Element, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("circuit: decode: %w", err)
	}
	out := make([]Element, 0, len(raw))
	for i, data := range raw {
		e, err := DecodeElement(data)
		if err != nil {
			return nil, fmt.Errorf("circuit: record %d: %w", i, err)
		}
		out = append(out, e)
	}
	return out, nil
}

// DecodeElement decodes one record. The record ID is taken from "id" or,
// failing that, from the "<type>_id" field.
func DecodeElement(data []byte) (Element, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	var typ string
	if t, ok := fields["type"]; ok {
		if err := json.Unmarshal(t, &typ); err != nil {
			return nil, fmt.Errorf("type tag: %w", err)
		}
	}
	if typ == "" {
		return nil, fmt.Errorf("missing type tag")
	}
	id := recordID(fields, typ)

	switch typ {
	case TypeBoard:
		return decodeAs[Board](data, func(v *Board) { v.ID = or(v.ID, id) })
	case TypePanel:
		return decodeAs[Panel](data, func(v *Panel) { v.ID = or(v.ID, id) })
	case TypePlatedHole:
		return decodeAs[PlatedHole](data, func(v *PlatedHole) { v.ID = or(v.ID, id) })
	case TypeHole:
		return decodeAs[Hole](data, func(v *Hole) { v.ID = or(v.ID, id) })
	case TypePad:
		return decodeAs[Pad](data, func(v *Pad) { v.ID = or(v.ID, id) })
	case TypeVia:
		return decodeAs[Via](data, func(v *Via) { v.ID = or(v.ID, id) })
	case TypeCutout:
		return decodeAs[Cutout](data, func(v *Cutout) { v.ID = or(v.ID, id) })
	case TypeCopperPour:
		return decodeAs[CopperPour](data, func(v *CopperPour) { v.ID = or(v.ID, id) })
	default:
		return Unknown{Type: typ, ID: id}, nil
	}
}

func decodeAs[T Element](data []byte, fix func(*T)) (Element, error) {
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%s: %w", v.ElementType(), err)
	}
	fix(&v)
	return v, nil
}

func recordID(fields map[string]json.RawMessage, typ string) string {
	for _, name := range []string{"id", typ + "_id"} {
		var id string
		if raw, ok := fields[name]; ok && json.Unmarshal(raw, &id) == nil && id != "" {
			return id
		}
	}
	return ""
}

func or(a, b string) string {
	if a != "" {
		return a
	}
	return b
}
