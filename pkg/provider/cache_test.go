package provider

import (
	"testing"

	"f1telemetrycompare/pkg/model"
)

func TestCacheRoundTrip(t *testing.T) {
	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	var missed model.LapRecord
	hit, err := cache.Get("2024_Monaco_Q_VER", &missed)
	if err != nil {
		t.Fatalf("get on empty cache: %v", err)
	}
	if hit {
		t.Fatal("expected miss on empty cache")
	}

	record := testLapRecord("VER")
	if err := cache.Put("2024_Monaco_Q_VER", record); err != nil {
		t.Fatalf("put: %v", err)
	}

	var got model.LapRecord
	hit, err = cache.Get("2024_Monaco_Q_VER", &got)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !hit {
		t.Fatal("expected hit after put")
	}
	if got.DriverCode != record.DriverCode || got.LapTime != record.LapTime || len(got.Samples) != len(record.Samples) {
		t.Errorf("got %+v, want %+v", got, record)
	}
}
