package compare

import (
	"math"

	"github.com/pkg/errors"

	"f1telemetrycompare/pkg/model"
)

// ErrInvalidInput is returned when a lap record has no samples or a
// non-positive lap time.
var ErrInvalidInput = errors.New("invalid lap record")

// Compare derives a ComparisonResult from two lap records. It is pure: no
// I/O, inputs are never mutated, and swapping the inputs only swaps the A/B
// labeling. When both lap times are equal, driver A is reported as faster.
func Compare(a, b model.LapRecord) (model.ComparisonResult, error) {
	if err := validate(a); err != nil {
		return model.ComparisonResult{}, err
	}
	if err := validate(b); err != nil {
		return model.ComparisonResult{}, err
	}

	result := model.ComparisonResult{
		DriverA:   a.DriverCode,
		DriverB:   b.DriverCode,
		TeamA:     a.TeamName,
		TeamB:     b.TeamName,
		LapTimeA:  a.LapTime,
		LapTimeB:  b.LapTime,
		MaxSpeedA: maxSpeed(a.Samples),
		MaxSpeedB: maxSpeed(b.Samples),
		AvgSpeedA: avgSpeed(a.Samples),
		AvgSpeedB: avgSpeed(b.Samples),
	}

	if b.LapTime < a.LapTime {
		result.FasterDriver = b.DriverCode
	} else {
		result.FasterDriver = a.DriverCode
	}
	result.TimeDelta = roundToMillis(math.Abs(a.LapTime - b.LapTime))

	return result, nil
}

func validate(lr model.LapRecord) error {
	if len(lr.Samples) == 0 {
		return errors.Wrapf(ErrInvalidInput, "driver %s: no telemetry samples", lr.DriverCode)
	}
	if lr.LapTime <= 0 {
		return errors.Wrapf(ErrInvalidInput, "driver %s: lap time %.3f", lr.DriverCode, lr.LapTime)
	}
	return nil
}

func maxSpeed(samples []model.TelemetrySample) float64 {
	max := samples[0].Speed
	for _, s := range samples[1:] {
		if s.Speed > max {
			max = s.Speed
		}
	}
	return max
}

func avgSpeed(samples []model.TelemetrySample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.Speed
	}
	return sum / float64(len(samples))
}

func roundToMillis(seconds float64) float64 {
	return math.Round(seconds*1000) / 1000
}
