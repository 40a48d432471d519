// Package jsonutil provides helpers for composing JSON objects without
// losing the member order produced by the encoder.
package jsonutil

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Field is a single object member
type Field struct {
	Key   string
	Value json.RawMessage
}

// IsObject reports whether data holds a JSON object
func IsObject(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) > 1 && trimmed[0] == '{' && trimmed[len(trimmed)-1] == '}'
}

// MergeObject appends fields to the JSON object in base. Members of base keep
// their order. A field whose key already exists in base is an error.
func MergeObject(base []byte, fields ...Field) ([]byte, error) {
	if !IsObject(base) {
		return nil, fmt.Errorf("cannot merge fields into non-object JSON value")
	}

	var existing map[string]json.RawMessage
	if err := json.Unmarshal(base, &existing); err != nil {
		return nil, fmt.Errorf("error decoding object: %w", err)
	}

	trimmed := bytes.TrimSpace(base)
	inner := bytes.TrimSpace(trimmed[1 : len(trimmed)-1])

	var buf bytes.Buffer
	buf.WriteByte('{')
	buf.Write(inner)
	needComma := len(inner) > 0

	for _, f := range fields {
		if _, ok := existing[f.Key]; ok {
			return nil, fmt.Errorf("duplicate object member %q", f.Key)
		}
		if needComma {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, f); err != nil {
			return nil, err
		}
		needComma = true
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Object builds a JSON object from fields in the given order
func Object(fields ...Field) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeMember(&buf, f); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeMember(buf *bytes.Buffer, f Field) error {
	key, err := json.Marshal(f.Key)
	if err != nil {
		return err
	}
	buf.Write(key)
	buf.WriteByte(':')
	if len(f.Value) == 0 {
		buf.WriteString("null")
		return nil
	}
	buf.Write(f.Value)
	return nil
}
