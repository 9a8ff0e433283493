package codec

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	orig := FromTime(time.Date(2025, 3, 14, 9, 26, 53, 589000000, time.UTC))

	data, err := json.Marshal(orig)
	require.NoError(t, err)

	var decoded Time
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, orig.Equal(decoded), "want %v, got %v", orig, decoded)
}

func TestDecodeString(t *testing.T) {
	cases := []struct {
		name  string
		input string
	}{
		{"rfc3339", "2025-01-02T15:04:05Z"},
		{"rfc3339 nano", "2025-01-02T15:04:05.123456789Z"},
		{"rfc3339 offset", "2025-01-02T15:04:05-03:00"},
		{"date only", "2025-01-02"},
		{"space separated", "2025-01-02 15:04:05"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Decode(tc.input)
			require.NoError(t, err)
			assert.Equal(t, 2025, got.Year())
			assert.Equal(t, time.January, got.Month())
		})
	}
}

func TestDecodeEpochMillis(t *testing.T) {
	want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

	got, err := Decode(float64(want.UnixMilli()))
	require.NoError(t, err)
	assert.True(t, got.Time.Equal(want))
}

func TestDecodeNativeTime(t *testing.T) {
	now := time.Now()

	got, err := Decode(now)
	require.NoError(t, err)
	assert.True(t, got.Time.Equal(now))
}

func TestDecodeGarbage(t *testing.T) {
	for _, v := range []any{"not-a-date", "", true, []string{"x"}, nil} {
		_, err := Decode(v)
		assert.ErrorIs(t, err, ErrInvalidTimestamp, "input %#v", v)
	}
}

func TestUnmarshalGarbageString(t *testing.T) {
	var ts Time
	err := json.Unmarshal([]byte(`"not-a-date"`), &ts)
	assert.ErrorIs(t, err, ErrInvalidTimestamp)
}

func TestOptionalNull(t *testing.T) {
	var holder struct {
		At *Time `json:"at"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"at":null}`), &holder))
	assert.Nil(t, holder.At)
}

func TestSameDay(t *testing.T) {
	morning := FromTime(time.Date(2025, 5, 20, 8, 0, 0, 0, time.UTC))
	evening := FromTime(time.Date(2025, 5, 20, 23, 59, 0, 0, time.UTC))
	nextDay := FromTime(time.Date(2025, 5, 21, 0, 1, 0, 0, time.UTC))

	assert.True(t, morning.SameDay(evening))
	assert.False(t, morning.SameDay(nextDay))
}

func TestScanValue(t *testing.T) {
	orig := Now()

	v, err := orig.Value()
	require.NoError(t, err)

	var scanned Time
	require.NoError(t, scanned.Scan(v))
	assert.True(t, orig.Equal(scanned))

	var bad Time
	assert.ErrorIs(t, bad.Scan("nope"), ErrInvalidTimestamp)
}
