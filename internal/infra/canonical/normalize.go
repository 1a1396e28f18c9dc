package canonical

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"time"

	"veridoc/internal/domain"
)

// ISOTimestampLayout renders millisecond precision with a Z suffix,
// matching the wire form every verified_at value is normalized to.
const ISOTimestampLayout = "2006-01-02T15:04:05.000Z"

// ISODateLayout is the date-only form used for expiry dates.
const ISODateLayout = "2006-01-02"

// ISOTimestamp formats t in the canonical timestamp form.
func ISOTimestamp(t time.Time) string {
	return t.UTC().Format(ISOTimestampLayout)
}

// ISODate formats t in the canonical date-only form (UTC).
func ISODate(t time.Time) string {
	return t.UTC().Format(ISODateLayout)
}

// Normalize collapses a value to plain JSON primitives via a JSON
// round-trip: dates become ISO strings, struct fields become map entries,
// numbers become json.Number so no float precision is invented. This is
// the single place host types are flattened; the encoder itself deals only
// in normalized primitives afterwards. Values json cannot serialize
// (functions, channels, cycles) fail with ErrEncodingDefect.
func Normalize(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrEncodingDefect, err)
	}
	return decodeLoose(raw)
}

func decodeLoose(input []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()

	var value any
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if err := ensureEOF(dec); err != nil {
		return nil, err
	}
	return value, nil
}

func ensureEOF(dec *json.Decoder) error {
	var extra any
	if err := dec.Decode(&extra); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return errors.New("invalid JSON: trailing data")
}

func sortedKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
