package rfctime

import (
	"bytes"
	"encoding/json"
	"time"
)

// Format of timestamps in the burger API.
//
// The API always answers in UTC with millisecond resolution, like "2023-01-01T00:00:00.000Z".
const APIFormat = "2006-01-02T15:04:05.000Z07:00"

// Timestamp is a date-time exchanged with the burger API.
type Timestamp time.Time

func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

func (t Timestamp) Equal(other Timestamp) bool {
	return t.Time().Equal(other.Time())
}

func (t Timestamp) IsZero() bool {
	return t.Time().IsZero()
}

func (t Timestamp) String() string {
	return t.Time().UTC().Format(APIFormat)
}

// Parse accepts RFC3339 date-time with or without fraction.
func Parse(s string) (Timestamp, error) {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return Timestamp{}, err
	}
	return Timestamp(t), nil
}

// implement encoding/json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// implement encoding/json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	ts, err := Parse(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
