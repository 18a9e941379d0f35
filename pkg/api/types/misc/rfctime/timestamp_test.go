package rfctime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stellarburgers/burger/pkg/api/types/misc/rfctime"
	"github.com/stellarburgers/burger/pkg/utils/try"
)

func TestTimestamp(t *testing.T) {
	t.Run("it parses timestamps with milliseconds", func(t *testing.T) {
		ts := try.To(rfctime.Parse("2023-01-01T10:20:30.456Z")).OrFatal(t)
		expected := time.Date(2023, 1, 1, 10, 20, 30, 456_000_000, time.UTC)
		if !ts.Time().Equal(expected) {
			t.Errorf("unexpected time: %s", ts)
		}
	})

	t.Run("it formats timestamps in UTC with milliseconds", func(t *testing.T) {
		jst := time.FixedZone("JST", 9*60*60)
		ts := rfctime.Timestamp(time.Date(2023, 1, 1, 9, 0, 0, 0, jst))
		if got := ts.String(); got != "2023-01-01T00:00:00.000Z" {
			t.Errorf("unexpected format: %s", got)
		}
	})

	t.Run("it round trips through json", func(t *testing.T) {
		var holder struct {
			At rfctime.Timestamp `json:"at"`
		}
		if err := json.Unmarshal([]byte(`{"at":"2024-05-06T07:08:09.010Z"}`), &holder); err != nil {
			t.Fatal(err)
		}
		buf := try.To(json.Marshal(holder)).OrFatal(t)
		if string(buf) != `{"at":"2024-05-06T07:08:09.010Z"}` {
			t.Errorf("unexpected json: %s", buf)
		}
	})

	t.Run("null leaves zero value", func(t *testing.T) {
		var holder struct {
			At rfctime.Timestamp `json:"at"`
		}
		if err := json.Unmarshal([]byte(`{"at":null}`), &holder); err != nil {
			t.Fatal(err)
		}
		if !holder.At.IsZero() {
			t.Errorf("expected zero, got %s", holder.At)
		}
	})
}
