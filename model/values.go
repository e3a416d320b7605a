package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Value is one submitted answer. Single-value field types carry a
// scalar string; checkbox fields carry the list of selected options.
// On the wire it is a JSON string or a JSON array accordingly.
type Value struct {
	text   string
	list   []string
	isList bool
}

func StringValue(s string) Value {
	return Value{text: s}
}

func ListValue(opts ...string) Value {
	return Value{list: append([]string(nil), opts...), isList: true}
}

func (v Value) IsList() bool {
	return v.isList
}

func (v Value) Text() string {
	return v.text
}

func (v Value) List() []string {
	return append([]string(nil), v.list...)
}

// Empty reports whether the value fails a required check: a blank
// scalar, or a list with no selections.
func (v Value) Empty() bool {
	if v.isList {
		return len(v.list) == 0
	}
	return v.text == ""
}

func (v Value) MarshalJSON() ([]byte, error) {
	if v.isList {
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	}
	return json.Marshal(v.text)
}

func (v *Value) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		v.isList = true
		v.text = ""
		return json.Unmarshal(data, &v.list)
	}
	v.isList = false
	v.list = nil
	return json.Unmarshal(data, &v.text)
}

// Values maps field labels to submitted values, keeping the labels in
// the order they were first set. The JSON codec preserves that order
// in both directions, so a response round-trips in schema order.
type Values struct {
	labels  []string
	byLabel map[string]Value
}

func NewValues() Values {
	return Values{byLabel: map[string]Value{}}
}

func (vs Values) Len() int {
	return len(vs.labels)
}

// Labels returns the keys in insertion order.
func (vs Values) Labels() []string {
	return append([]string(nil), vs.labels...)
}

func (vs Values) Get(label string) (Value, bool) {
	v, ok := vs.byLabel[label]
	return v, ok
}

// Set returns a copy with label set to v. A label not seen before is
// appended to the order; the receiver is left untouched.
func (vs Values) Set(label string, v Value) Values {
	out := vs.clone()
	if _, ok := out.byLabel[label]; !ok {
		out.labels = append(out.labels, label)
	}
	out.byLabel[label] = v
	return out
}

func (vs Values) clone() Values {
	out := Values{
		labels:  append([]string(nil), vs.labels...),
		byLabel: make(map[string]Value, len(vs.byLabel)),
	}
	for k, v := range vs.byLabel {
		out.byLabel[k] = v
	}
	return out
}

func (vs Values) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, label := range vs.labels {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(label)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(vs.byLabel[label])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (vs *Values) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("values: expected object, got %v", tok)
	}

	*vs = NewValues()
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		label := tok.(string)

		var v Value
		if err := dec.Decode(&v); err != nil {
			return err
		}
		vs.labels = append(vs.labels, label)
		vs.byLabel[label] = v
	}

	_, err = dec.Token()
	return err
}
