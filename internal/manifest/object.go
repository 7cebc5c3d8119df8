package manifest

import (
	"bytes"
	"encoding/json"
)

// canonicalOrder is the fixed leading key sequence of a written manifest.
// Keys not listed here follow in insertion order.
var canonicalOrder = []string{
	"name",
	"short_name",
	"description",
	"entrypoint",
	"commands",
	"listeners",
	"configuration",
	"skipBotEvents",
}

// Object is a JSON object with explicit key order.
type Object struct {
	keys   []string
	values map[string]any
}

// NewObject returns an empty ordered object.
func NewObject() *Object {
	return &Object{values: map[string]any{}}
}

// Set stores the value, appending the key on first use.
func (o *Object) Set(key string, value any) {
	if _, ok := o.values[key]; !ok {
		o.keys = append(o.keys, key)
	}

	o.values[key] = value
}

// Get returns the stored value, or false.
func (o *Object) Get(key string) (any, bool) {
	v, ok := o.values[key]

	return v, ok
}

// Keys returns the keys in their current order.
func (o *Object) Keys() []string {
	return append([]string(nil), o.keys...)
}

// Reorder moves the canonical keys to the front, in canonical order; the
// rest keep their insertion order.
func (o *Object) Reorder() {
	ordered := make([]string, 0, len(o.keys))

	for _, k := range canonicalOrder {
		if _, ok := o.values[k]; ok {
			ordered = append(ordered, k)
		}
	}

	for _, k := range o.keys {
		if !isCanonical(k) {
			ordered = append(ordered, k)
		}
	}

	o.keys = ordered
}

func isCanonical(key string) bool {
	for _, k := range canonicalOrder {
		if k == key {
			return true
		}
	}

	return false
}

// MarshalJSON serializes the object with its keys in order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, k := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}

		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}

		buf.Write(kb)
		buf.WriteByte(':')

		vb, err := json.Marshal(o.values[k])
		if err != nil {
			return nil, err
		}

		buf.Write(vb)
	}

	buf.WriteByte('}')

	return buf.Bytes(), nil
}
