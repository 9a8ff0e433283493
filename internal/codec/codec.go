// Package codec converts timestamp fields between their in-memory
// representation and the storage-safe string form used by the local
// snapshot envelopes and the remote backend.
package codec

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimestamp is returned when a persisted value cannot be
// interpreted as a timestamp. Callers that load whole collections drop
// the offending record rather than failing the load.
var ErrInvalidTimestamp = errors.New("codec: invalid timestamp")

// Time is a timestamp that round-trips through JSON as an RFC 3339
// string. Decoding also accepts epoch milliseconds, which is what
// JavaScript Date values serialize to in older snapshots.
type Time struct {
	time.Time
}

// Now returns the current time as a codec.Time, truncated to UTC.
func Now() Time {
	return Time{time.Now().UTC()}
}

// FromTime wraps a time.Time value.
func FromTime(t time.Time) Time {
	return Time{t.UTC()}
}

// acceptedLayouts are the string forms Decode recognizes, in order of
// how commonly they appear in persisted snapshots.
var acceptedLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.999Z0700",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Decode interprets v as a timestamp. It accepts a native time value
// (passed through), an ISO-8601 / RFC 3339 string, or a number of epoch
// milliseconds. Anything else yields ErrInvalidTimestamp.
func Decode(v any) (Time, error) {
	switch x := v.(type) {
	case nil:
		return Time{}, ErrInvalidTimestamp
	case time.Time:
		return Time{x.UTC()}, nil
	case Time:
		return x, nil
	case string:
		return decodeString(x)
	case float64:
		return Time{time.UnixMilli(int64(x)).UTC()}, nil
	case int64:
		return Time{time.UnixMilli(x).UTC()}, nil
	case json.Number:
		ms, err := x.Int64()
		if err != nil {
			return Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, x.String())
		}
		return Time{time.UnixMilli(ms).UTC()}, nil
	default:
		return Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidTimestamp, v)
	}
}

func decodeString(s string) (Time, error) {
	for _, layout := range acceptedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Time{t.UTC()}, nil
		}
	}
	return Time{}, fmt.Errorf("%w: %q", ErrInvalidTimestamp, s)
}

// Encode renders t in the storage form (RFC 3339 with nanoseconds, UTC).
func Encode(t Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

// MarshalJSON encodes the timestamp as an RFC 3339 string.
func (t Time) MarshalJSON() ([]byte, error) {
	return json.Marshal(Encode(t))
}

// UnmarshalJSON decodes a string or numeric timestamp. A JSON null or
// an unparseable value is an ErrInvalidTimestamp, never a silent zero.
func (t *Time) UnmarshalJSON(data []byte) error {
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidTimestamp, string(data))
	}
	decoded, err := Decode(raw)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// Value implements driver.Valuer so timestamp columns are stored as
// backend-native DATETIME values, not strings.
func (t Time) Value() (driver.Value, error) {
	return t.UTC(), nil
}

// Scan implements sql.Scanner.
func (t *Time) Scan(src any) error {
	if src == nil {
		return fmt.Errorf("%w: NULL column", ErrInvalidTimestamp)
	}
	if b, ok := src.([]byte); ok {
		src = string(b)
	}
	decoded, err := Decode(src)
	if err != nil {
		return err
	}
	*t = decoded
	return nil
}

// Equal compares two timestamps at nanosecond precision.
func (t Time) Equal(other Time) bool {
	return t.Time.Equal(other.Time)
}

// SameDay reports whether both timestamps fall on the same calendar day
// in UTC. Used for "due today" style queries.
func (t Time) SameDay(other Time) bool {
	y1, m1, d1 := t.UTC().Date()
	y2, m2, d2 := other.UTC().Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
