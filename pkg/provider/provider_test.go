package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"f1telemetrycompare/pkg/model"
)

var testRef = model.SessionRef{Year: 2024, RaceName: "Monaco", SessionType: "Q"}

func testLapRecord(driver string) model.LapRecord {
	return model.LapRecord{
		DriverCode: driver,
		TeamName:   "Red Bull Racing",
		LapNumber:  12,
		LapTime:    70.270,
		Samples: []model.TelemetrySample{
			{Distance: 0, Speed: 100, Throttle: 100, Gear: 3, LapTime: 0},
			{Distance: 120, Speed: 200, Throttle: 100, Gear: 5, LapTime: 2.5},
			{Distance: 230, Speed: 150, Throttle: 60, Brake: 20, Gear: 4, LapTime: 4.8},
		},
	}
}

func newTestServer(t *testing.T, hits *int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/session":
			if r.URL.Query().Get("year") != "2024" || r.URL.Query().Get("race") != "Monaco" {
				http.NotFound(w, r)
				return
			}
			json.NewEncoder(w).Encode(model.SessionInfo{
				Year:        2024,
				RaceName:    "Monaco",
				SessionType: "Q",
				TrackName:   "Circuit de Monaco",
				Drivers:     []string{"VER", "LEC", "HAM"},
			})
		case "/v1/fastestlap":
			driver := r.URL.Query().Get("driver")
			if driver == "" {
				http.Error(w, "missing driver", http.StatusBadRequest)
				return
			}
			if hits != nil {
				*hits++
			}
			json.NewEncoder(w).Encode(testLapRecord(driver))
		default:
			http.NotFound(w, r)
		}
	}))
}

func TestGetSessionInfo(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	info, err := client.GetSessionInfo(context.Background(), testRef)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.TrackName != "Circuit de Monaco" {
		t.Errorf("TrackName: got %q", info.TrackName)
	}
	if len(info.Drivers) != 3 {
		t.Errorf("Drivers: got %v", info.Drivers)
	}
}

func TestGetFastestLap(t *testing.T) {
	srv := newTestServer(t, nil)
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	record, err := client.GetFastestLap(context.Background(), testRef, "VER")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.DriverCode != "VER" {
		t.Errorf("DriverCode: got %q", record.DriverCode)
	}
	if record.LapTime != 70.270 {
		t.Errorf("LapTime: got %f", record.LapTime)
	}
	if len(record.Samples) != 3 {
		t.Errorf("Samples: got %d", len(record.Samples))
	}
}

func TestGetFastestLapUsesCache(t *testing.T) {
	hits := 0
	srv := newTestServer(t, &hits)
	defer srv.Close()

	cache, err := NewCache(t.TempDir())
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}
	client := NewClient(srv.URL, cache)

	for i := 0; i < 3; i++ {
		record, err := client.GetFastestLap(context.Background(), testRef, "LEC")
		if err != nil {
			t.Fatalf("fetch %d: %v", i, err)
		}
		if record.DriverCode != "LEC" {
			t.Errorf("fetch %d: DriverCode %q", i, record.DriverCode)
		}
	}

	if hits != 1 {
		t.Errorf("API hits: got %d, want 1", hits)
	}
}

func TestGetFastestLapServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, nil)
	if _, err := client.GetFastestLap(context.Background(), testRef, "VER"); err == nil {
		t.Fatal("expected error, got nil")
	}
}
