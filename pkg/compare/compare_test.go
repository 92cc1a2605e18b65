package compare

import (
	"math"
	"testing"

	"github.com/pkg/errors"

	"f1telemetrycompare/pkg/model"
)

func lapRecord(driver string, lapTime float64, speeds ...float64) model.LapRecord {
	samples := make([]model.TelemetrySample, len(speeds))
	for i, speed := range speeds {
		samples[i] = model.TelemetrySample{
			Distance: float64(i) * 100,
			Speed:    speed,
			Throttle: 100,
			Gear:     5,
			LapTime:  float64(i) * 0.5,
		}
	}
	return model.LapRecord{
		DriverCode: driver,
		TeamName:   "Team " + driver,
		LapNumber:  7,
		LapTime:    lapTime,
		Samples:    samples,
	}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCompare(t *testing.T) {
	a := lapRecord("VER", 70.270, 100, 200, 150)
	b := lapRecord("LEC", 70.486, 90, 180, 140)

	result, err := Compare(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.DriverA != "VER" || result.DriverB != "LEC" {
		t.Errorf("drivers: got %s vs %s", result.DriverA, result.DriverB)
	}
	if result.MaxSpeedA != 200 {
		t.Errorf("MaxSpeedA: got %f, want 200", result.MaxSpeedA)
	}
	if result.AvgSpeedA != 150 {
		t.Errorf("AvgSpeedA: got %f, want 150", result.AvgSpeedA)
	}
	if result.MaxSpeedB != 180 {
		t.Errorf("MaxSpeedB: got %f, want 180", result.MaxSpeedB)
	}
	if !almostEqual(result.AvgSpeedB, 410.0/3.0) {
		t.Errorf("AvgSpeedB: got %f, want %f", result.AvgSpeedB, 410.0/3.0)
	}
	if result.FasterDriver != "VER" {
		t.Errorf("FasterDriver: got %s, want VER", result.FasterDriver)
	}
	if !almostEqual(result.TimeDelta, 0.216) {
		t.Errorf("TimeDelta: got %f, want 0.216", result.TimeDelta)
	}
}

func TestCompareSwappedInputs(t *testing.T) {
	a := lapRecord("VER", 70.270, 100, 200, 150)
	b := lapRecord("LEC", 70.486, 90, 180, 140)

	ab, err := Compare(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ba, err := Compare(b, a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if ba.DriverA != ab.DriverB || ba.DriverB != ab.DriverA {
		t.Errorf("swap did not swap drivers: %+v vs %+v", ab, ba)
	}
	if ba.LapTimeA != ab.LapTimeB || ba.LapTimeB != ab.LapTimeA {
		t.Errorf("swap did not swap lap times: %+v vs %+v", ab, ba)
	}
	if ba.MaxSpeedA != ab.MaxSpeedB || ba.AvgSpeedA != ab.AvgSpeedB {
		t.Errorf("swap did not swap speed stats: %+v vs %+v", ab, ba)
	}
	if ba.FasterDriver != ab.FasterDriver {
		t.Errorf("FasterDriver changed on swap: %s vs %s", ab.FasterDriver, ba.FasterDriver)
	}
	if ba.TimeDelta != ab.TimeDelta {
		t.Errorf("TimeDelta changed on swap: %f vs %f", ab.TimeDelta, ba.TimeDelta)
	}
}

func TestCompareTieBreak(t *testing.T) {
	a := lapRecord("VER", 70.270, 150)
	b := lapRecord("LEC", 70.270, 140)

	result, err := Compare(a, b)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// equal lap times prefer driver A
	if result.FasterDriver != "VER" {
		t.Errorf("FasterDriver: got %s, want VER", result.FasterDriver)
	}
	if result.TimeDelta != 0 {
		t.Errorf("TimeDelta: got %f, want 0", result.TimeDelta)
	}
}

func TestCompareProperties(t *testing.T) {
	cases := []struct {
		name string
		a    model.LapRecord
		b    model.LapRecord
	}{
		{"a faster", lapRecord("HAM", 88.123, 120, 310, 205), lapRecord("RUS", 88.457, 118, 305, 210)},
		{"b faster", lapRecord("NOR", 91.002, 95, 280, 190), lapRecord("PIA", 90.874, 99, 283, 185)},
		{"single sample", lapRecord("ALO", 75.5, 200), lapRecord("STR", 76.0, 198)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Compare(tc.a, tc.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.TimeDelta < 0 {
				t.Errorf("TimeDelta negative: %f", result.TimeDelta)
			}
			want := math.Round(math.Abs(tc.a.LapTime-tc.b.LapTime)*1000) / 1000
			if !almostEqual(result.TimeDelta, want) {
				t.Errorf("TimeDelta: got %f, want %f", result.TimeDelta, want)
			}
			if result.FasterDriver != tc.a.DriverCode && result.FasterDriver != tc.b.DriverCode {
				t.Errorf("FasterDriver %q is neither input driver", result.FasterDriver)
			}
			if result.MaxSpeedA < result.AvgSpeedA {
				t.Errorf("MaxSpeedA %f < AvgSpeedA %f", result.MaxSpeedA, result.AvgSpeedA)
			}
			if result.MaxSpeedB < result.AvgSpeedB {
				t.Errorf("MaxSpeedB %f < AvgSpeedB %f", result.MaxSpeedB, result.AvgSpeedB)
			}
		})
	}
}

func TestCompareInvalidInput(t *testing.T) {
	valid := lapRecord("VER", 70.270, 100, 200, 150)

	cases := []struct {
		name string
		a    model.LapRecord
		b    model.LapRecord
	}{
		{"a empty", lapRecord("VER", 70.270), valid},
		{"b empty", valid, lapRecord("LEC", 70.486)},
		{"a zero lap time", lapRecord("VER", 0, 100), valid},
		{"b negative lap time", valid, lapRecord("LEC", -1, 100)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compare(tc.a, tc.b)
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !errors.Is(err, ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestCompareDoesNotMutateInputs(t *testing.T) {
	a := lapRecord("VER", 70.270, 100, 200, 150)
	b := lapRecord("LEC", 70.486, 90, 180, 140)
	aSpeed := a.Samples[1].Speed
	bTime := b.LapTime

	if _, err := Compare(a, b); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if a.Samples[1].Speed != aSpeed || b.LapTime != bTime {
		t.Error("inputs were mutated")
	}
}
