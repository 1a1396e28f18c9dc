package canonical

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"veridoc/internal/domain"
)

// Encode maps a JSON-compatible value to exactly one byte string:
// lexicographically sorted object keys, order-preserving arrays, the
// literal null, and ES6 number formatting. Values that are not already
// plain JSON primitives are passed through Normalize first, so the
// recursive writer never needs to know about host types. A bare time.Time
// is still accepted defensively and collapsed to its ISO form, in case a
// caller skipped the normalization pre-pass.
func Encode(v any) ([]byte, error) {
	switch value := v.(type) {
	case nil, bool, string, json.Number,
		float64, float32,
		int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		map[string]any, []any:
		buf := &bytes.Buffer{}
		if err := writeValue(buf, value); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case time.Time:
		buf := &bytes.Buffer{}
		writeString(buf, ISOTimestamp(value))
		return buf.Bytes(), nil
	case json.RawMessage:
		return EncodeJSON([]byte(value))
	case []byte:
		return EncodeJSON(value)
	default:
		normalized, err := Normalize(value)
		if err != nil {
			return nil, err
		}
		buf := &bytes.Buffer{}
		if err := writeValue(buf, normalized); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	}
}

// EncodeJSON canonicalizes a raw JSON document.
func EncodeJSON(input []byte) ([]byte, error) {
	value, err := decodeLoose(input)
	if err != nil {
		return nil, err
	}
	buf := &bytes.Buffer{}
	if err := writeValue(buf, value); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func writeValue(buf *bytes.Buffer, value any) error {
	switch v := value.(type) {
	case nil:
		buf.WriteString("null")
	case bool:
		if v {
			buf.WriteString("true")
		} else {
			buf.WriteString("false")
		}
	case string:
		writeString(buf, v)
	case json.Number:
		num, err := formatNumberString(v.String())
		if err != nil {
			return err
		}
		buf.WriteString(num)
	case float64:
		num, err := formatNumber(v)
		if err != nil {
			return err
		}
		buf.WriteString(num)
	case float32:
		return writeValue(buf, float64(v))
	case int:
		return writeValue(buf, float64(v))
	case int8:
		return writeValue(buf, float64(v))
	case int16:
		return writeValue(buf, float64(v))
	case int32:
		return writeValue(buf, float64(v))
	case int64:
		return writeValue(buf, float64(v))
	case uint:
		return writeValue(buf, float64(v))
	case uint8:
		return writeValue(buf, float64(v))
	case uint16:
		return writeValue(buf, float64(v))
	case uint32:
		return writeValue(buf, float64(v))
	case uint64:
		return writeValue(buf, float64(v))
	case time.Time:
		// Defense in depth: a date this deep means a caller bypassed
		// Normalize. Collapse it the same way the pre-pass would.
		writeString(buf, ISOTimestamp(v))
	case map[string]any:
		return writeObject(buf, v)
	case []any:
		return writeArray(buf, v)
	default:
		return fmt.Errorf("%w: unsupported type %T", domain.ErrEncodingDefect, value)
	}
	return nil
}

func writeObject(buf *bytes.Buffer, obj map[string]any) error {
	keys := sortedKeys(obj)
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeString(buf, k)
		buf.WriteByte(':')
		if err := writeValue(buf, obj[k]); err != nil {
			return err
		}
	}
	buf.WriteByte('}')
	return nil
}

func writeArray(buf *bytes.Buffer, arr []any) error {
	buf.WriteByte('[')
	for i, item := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeValue(buf, item); err != nil {
			return err
		}
	}
	buf.WriteByte(']')
	return nil
}

func writeString(buf *bytes.Buffer, s string) {
	buf.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\':
			buf.WriteByte('\\')
			buf.WriteRune(r)
		case '\b':
			buf.WriteString(`\b`)
		case '\f':
			buf.WriteString(`\f`)
		case '\n':
			buf.WriteString(`\n`)
		case '\r':
			buf.WriteString(`\r`)
		case '\t':
			buf.WriteString(`\t`)
		default:
			if r < 0x20 {
				buf.WriteString(`\u00`)
				buf.WriteByte(hexLower[r>>4])
				buf.WriteByte(hexLower[r&0x0f])
			} else {
				buf.WriteRune(r)
			}
		}
	}
	buf.WriteByte('"')
}

var hexLower = []byte("0123456789abcdef")
