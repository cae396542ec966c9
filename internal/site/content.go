package site

import (
	"bytes"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

// Content is the raw, kind-specific content map of a section. Values are
// kept as raw JSON so a patch leaves every untouched key byte-identical.
// Use Section.Payload for a typed view.
type Content map[string]json.RawMessage

// MarshalJSON encodes a nil map as an empty object.
func (c Content) MarshalJSON() ([]byte, error) {
	if c == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(map[string]json.RawMessage(c))
}

// Clone returns a deep copy.
func (c Content) Clone() Content {
	if c == nil {
		return nil
	}
	return Content(cloneRawMap(c))
}

// Keys returns the content keys in sorted order.
func (c Content) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Has reports whether key is present with a non-null value.
func (c Content) Has(key string) bool {
	v, ok := c[key]
	return ok && !isNull(v)
}

// Set stores v under key as JSON.
func (c Content) Set(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c[key] = raw
	return nil
}

// String returns the first of keys holding a non-empty string or number.
func (c Content) String(keys ...string) string {
	for _, k := range keys {
		if s := rawString(c[k]); s != "" {
			return s
		}
	}
	return ""
}

// Int returns the first of keys holding a number (or numeric string).
func (c Content) Int(keys ...string) (int, bool) {
	for _, k := range keys {
		raw, ok := c[k]
		if !ok {
			continue
		}
		var f float64
		if err := json.Unmarshal(raw, &f); err == nil {
			return int(f), true
		}
		if n, err := strconv.Atoi(rawString(raw)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// Bool returns the first of keys holding true.
func (c Content) Bool(keys ...string) bool {
	for _, k := range keys {
		var b bool
		if err := json.Unmarshal(c[k], &b); err == nil && b {
			return true
		}
	}
	return false
}

// StringList returns the first of keys holding an array, keeping only
// string (or number) elements.
func (c Content) StringList(keys ...string) []string {
	for _, k := range keys {
		var items []json.RawMessage
		if err := json.Unmarshal(c[k], &items); err != nil || len(items) == 0 {
			continue
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if s := rawString(it); s != "" {
				out = append(out, s)
			} else if obj := asObject(it); obj != nil {
				if s := obj.String("text", "title", "name", "label"); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	}
	return nil
}

// Objects returns the first of keys holding an array; string elements are
// wrapped as {"value": s} so callers can treat every element uniformly.
func (c Content) Objects(keys ...string) []Content {
	for _, k := range keys {
		var items []json.RawMessage
		if err := json.Unmarshal(c[k], &items); err != nil || len(items) == 0 {
			continue
		}
		out := make([]Content, 0, len(items))
		for _, it := range items {
			if obj := asObject(it); obj != nil {
				out = append(out, obj)
			} else if s := rawString(it); s != "" {
				out = append(out, Content{"value": mustRaw(s)})
			}
		}
		return out
	}
	return nil
}

// Object returns the first of keys holding a JSON object.
func (c Content) Object(keys ...string) Content {
	for _, k := range keys {
		if obj := asObject(c[k]); obj != nil {
			return obj
		}
	}
	return nil
}

func asObject(raw json.RawMessage) Content {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] != '{' {
		return nil
	}
	var m map[string]json.RawMessage
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return Content(m)
}

func rawString(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return ""
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return ""
		}
		return n.String()
	}
	return ""
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

func mustRaw(v any) json.RawMessage {
	raw, _ := json.Marshal(v)
	return raw
}
