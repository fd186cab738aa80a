package database

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

// TestJSONRoundTrip tests that maps survive a store round trip unchanged.
func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name  string
		notes map[string]string
	}{
		{"empty", map[string]string{}},
		{"single", map[string]string{"overview": "Rank slipped two places"}},
		{"unicode and newlines", map[string]string{"budget": "Δ 5%\nsecond line", "reforms": "✓ done"}},
		{"envelope-like keys", map[string]string{"version": "1", "data": "x"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			s := NewMemoryStore()
			if err := SetJSON(ctx, s, KeyNotes, tc.notes); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var got map[string]string
			found, err := GetJSON(ctx, s, KeyNotes, &got)
			if err != nil || !found {
				t.Fatalf("expected value, found=%v err=%v", found, err)
			}
			if !reflect.DeepEqual(got, tc.notes) {
				t.Errorf("got %v, expected %v", got, tc.notes)
			}
		})
	}
}

// TestSetJSONIsDeterministic tests that equal values store identical bytes.
func TestSetJSONIsDeterministic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := NewMemoryStore()
	value := map[string]string{"b": "2", "a": "1", "c": "3"}

	if err := SetJSON(ctx, s, KeyNotes, value); err != nil {
		t.Fatal(err)
	}
	first, _, _ := s.Get(ctx, KeyNotes)
	if err := SetJSON(ctx, s, KeyNotes, value); err != nil {
		t.Fatal(err)
	}
	second, _, _ := s.Get(ctx, KeyNotes)

	if first != second {
		t.Errorf("stored bytes differ:\n%s\n%s", first, second)
	}
	if first != `{"version":1,"data":{"a":"1","b":"2","c":"3"}}` {
		t.Errorf("unexpected encoding: %s", first)
	}
}

// TestGetJSON tests decoding edge cases.
func TestGetJSON(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("missing key", func(t *testing.T) {
		t.Parallel()

		v := map[string]string{"keep": "me"}
		found, err := GetJSON(ctx, NewMemoryStore(), KeyNotes, &v)
		if err != nil || found {
			t.Fatalf("expected not found, found=%v err=%v", found, err)
		}
		if v["keep"] != "me" {
			t.Error("destination must be untouched when the key is missing")
		}
	})

	t.Run("legacy bare value", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore()
		_ = s.Set(ctx, KeyScorecard, `{"overallRank":44,"globalTCI":63.2}`)

		var got struct {
			OverallRank int     `json:"overallRank"`
			GlobalTCI   float64 `json:"globalTCI"`
		}
		found, err := GetJSON(ctx, s, KeyScorecard, &got)
		if err != nil || !found {
			t.Fatalf("expected value, found=%v err=%v", found, err)
		}
		if got.OverallRank != 44 || got.GlobalTCI != 63.2 {
			t.Errorf("unexpected decode: %+v", got)
		}
	})

	t.Run("legacy bare list", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore()
		_ = s.Set(ctx, KeySnapshots, `[{"id":1}]`)

		var got []map[string]int
		if _, err := GetJSON(ctx, s, KeySnapshots, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 1 || got[0]["id"] != 1 {
			t.Errorf("unexpected decode: %v", got)
		}
	})

	t.Run("corrupt value", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore()
		_ = s.Set(ctx, KeyNotes, `{"overview": "unterminated`)

		var got map[string]string
		found, err := GetJSON(ctx, s, KeyNotes, &got)
		if !found {
			t.Error("expected found=true for a present but corrupt key")
		}
		if !errors.Is(err, ErrCorrupt) {
			t.Errorf("expected ErrCorrupt, got %v", err)
		}
	})

	t.Run("wrong shape", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore()
		_ = s.Set(ctx, KeyNotes, `{"version":1,"data":[1,2,3]}`)

		var got map[string]string
		if _, err := GetJSON(ctx, s, KeyNotes, &got); !errors.Is(err, ErrCorrupt) {
			t.Errorf("expected ErrCorrupt, got %v", err)
		}
	})

	t.Run("newer version", func(t *testing.T) {
		t.Parallel()

		s := NewMemoryStore()
		_ = s.Set(ctx, KeyNotes, `{"version":99,"data":{}}`)

		var got map[string]string
		if _, err := GetJSON(ctx, s, KeyNotes, &got); !errors.Is(err, ErrUnsupportedVersion) {
			t.Errorf("expected ErrUnsupportedVersion, got %v", err)
		}
	})
}
