package types

import (
	"bytes"
	"encoding/json"
)

// OrderedObject is a mapping that remembers key insertion order.
type OrderedObject struct {
	Keys   []string
	Values map[string]interface{}
}

// NewOrderedObject returns an empty OrderedObject.
func NewOrderedObject() *OrderedObject {
	return &OrderedObject{Values: make(map[string]interface{})}
}

// Get retrieves a value by key.
func (o *OrderedObject) Get(key string) (interface{}, bool) {
	value, ok := o.Values[key]
	return value, ok
}

// Set stores value under key, appending the key if it is new.
func (o *OrderedObject) Set(key string, value interface{}) {
	if o.Values == nil {
		o.Values = make(map[string]interface{})
	}
	if _, exists := o.Values[key]; !exists {
		o.Keys = append(o.Keys, key)
	}
	o.Values[key] = value
}

// Len returns the number of keys.
func (o *OrderedObject) Len() int {
	return len(o.Keys)
}

// MarshalJSON preserves key order during marshaling.
func (o *OrderedObject) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.Keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valueBytes, err := json.Marshal(o.Values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
