package instrument

import (
	"encoding/json"
	"log/slog"
	"strings"
)

// Redacted replaces every masked value.
const Redacted = "***"

// Masker hides the values of sensitive keys, compared case-insensitively,
// in log attributes and decoded JSON documents.
type Masker struct {
	keys map[string]struct{}
}

// NewMasker builds a Masker for fields. Blank fields are ignored.
func NewMasker(fields []string) *Masker {
	keys := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		if field = strings.ToLower(strings.TrimSpace(field)); field != "" {
			keys[field] = struct{}{}
		}
	}

	return &Masker{keys: keys}
}

// Empty reports whether nothing would ever be masked.
func (m *Masker) Empty() bool {
	return m == nil || len(m.keys) == 0
}

// Has reports whether key is sensitive.
func (m *Masker) Has(key string) bool {
	if m.Empty() {
		return false
	}
	_, found := m.keys[strings.ToLower(key)]
	return found
}

// Value walks maps and slices produced by encoding/json and masks sensitive
// keys at any depth. Other values are returned untouched.
func (m *Masker) Value(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			if m.Has(k) {
				out[k] = Redacted
				continue
			}
			out[k] = m.Value(inner)
		}
		return out
	case map[string]string:
		out := make(map[string]any, len(val))
		for k, inner := range val {
			out[k] = inner
		}
		return m.Value(out)
	case []any:
		out := make([]any, len(val))
		for i, inner := range val {
			out[i] = m.Value(inner)
		}
		return out
	default:
		return v
	}
}

// JSON decodes payload and masks it. ok is false when payload is not JSON.
func (m *Masker) JSON(payload []byte) (masked any, ok bool) {
	if len(payload) == 0 {
		return nil, false
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return nil, false
	}

	return m.Value(doc), true
}

// Attr masks one log attribute. String values that hold a JSON object or
// array are decoded, masked and encoded again.
func (m *Masker) Attr(attr slog.Attr) slog.Attr {
	if m.Has(attr.Key) {
		return slog.String(attr.Key, Redacted)
	}

	switch attr.Value.Kind() {
	case slog.KindGroup:
		group := attr.Value.Group()
		out := make([]slog.Attr, 0, len(group))
		for _, ga := range group {
			out = append(out, m.Attr(ga))
		}
		attr.Value = slog.GroupValue(out...)
	case slog.KindString:
		if s, ok := m.reencode([]byte(attr.Value.String())); ok {
			attr.Value = slog.StringValue(s)
		}
	case slog.KindAny:
		switch val := attr.Value.Any().(type) {
		case map[string]any, map[string]string, []any:
			attr.Value = slog.AnyValue(m.Value(val))
		case []byte:
			if s, ok := m.reencode(val); ok {
				attr.Value = slog.StringValue(s)
			}
		}
	}

	return attr
}

func (m *Masker) reencode(payload []byte) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}

	doc, ok := m.JSON(payload)
	if !ok {
		return "", false
	}

	out, err := json.Marshal(doc)
	if err != nil {
		return "", false
	}

	return string(out), true
}
