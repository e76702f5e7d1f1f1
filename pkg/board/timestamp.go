package board

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// Timestamp is a creation time in Unix milliseconds. The zero value sorts
// before every real note.
//
// It decodes from any of:
//
//	1717000000000                                  // milliseconds
//	{"seconds": 1717000000, "nanoseconds": 5000000} // document store export
//	{"_seconds": 1717000000, "_nanoseconds": 0}     // admin SDK export
//	"2024-05-29T16:26:40Z"                          // RFC 3339
//	"1717000000000"                                 // quoted milliseconds
//	null
//
// and always encodes as milliseconds.
type Timestamp int64

// FromTime converts t to a Timestamp.
func FromTime(t time.Time) Timestamp {
	return Timestamp(t.UnixMilli())
}

// Millis returns the timestamp in Unix milliseconds.
func (ts Timestamp) Millis() int64 { return int64(ts) }

// Time returns the timestamp as a UTC time.
func (ts Timestamp) Time() time.Time { return time.UnixMilli(int64(ts)).UTC() }

type secondsObject struct {
	Seconds      *int64 `json:"seconds"`
	Nanoseconds  int64  `json:"nanoseconds"`
	USeconds     *int64 `json:"_seconds"`
	UNanoseconds int64  `json:"_nanoseconds"`
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*ts = 0
		return nil
	}

	switch data[0] {
	case '{':
		var obj secondsObject
		if err := json.Unmarshal(data, &obj); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
		switch {
		case obj.Seconds != nil:
			*ts = Timestamp(*obj.Seconds*1000 + obj.Nanoseconds/int64(time.Millisecond))
		case obj.USeconds != nil:
			*ts = Timestamp(*obj.USeconds*1000 + obj.UNanoseconds/int64(time.Millisecond))
		default:
			return fmt.Errorf("createdAt: object has no seconds field")
		}
		return nil

	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
		if s == "" {
			*ts = 0
			return nil
		}
		if ms, err := strconv.ParseInt(s, 10, 64); err == nil {
			*ts = Timestamp(ms)
			return nil
		}
		t, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
		*ts = FromTime(t)
		return nil

	default:
		var f float64
		if err := json.Unmarshal(data, &f); err != nil {
			return fmt.Errorf("createdAt: %w", err)
		}
		*ts = Timestamp(int64(f))
		return nil
	}
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return strconv.AppendInt(nil, int64(ts), 10), nil
}
