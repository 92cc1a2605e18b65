package model

import "fmt"

// TelemetrySample is one instant of a lap as delivered by the timing API.
type TelemetrySample struct {
	Distance float64 `json:"distance"`
	Speed    float64 `json:"speed"`
	Throttle float64 `json:"throttle"`
	Brake    float64 `json:"brake"`
	Gear     int     `json:"gear"`
	LapTime  float64 `json:"lapTime"`
}

// LapRecord holds the telemetry of one driver's fastest lap in a session.
type LapRecord struct {
	DriverCode string            `json:"driverCode"`
	TeamName   string            `json:"teamName"`
	LapNumber  int               `json:"lapNumber"`
	LapTime    float64           `json:"lapTime"`
	Samples    []TelemetrySample `json:"samples"`
}

func (lr LapRecord) String() string {
	return fmt.Sprintf("%s (%s): lap %d, %.3fs, %d samples", lr.DriverCode, lr.TeamName, lr.LapNumber, lr.LapTime, len(lr.Samples))
}

// ComparisonResult is derived purely from two LapRecords and never mutated.
type ComparisonResult struct {
	DriverA      string  `json:"driverA"`
	DriverB      string  `json:"driverB"`
	TeamA        string  `json:"teamA"`
	TeamB        string  `json:"teamB"`
	LapTimeA     float64 `json:"lapTimeA"`
	LapTimeB     float64 `json:"lapTimeB"`
	MaxSpeedA    float64 `json:"maxSpeedA"`
	MaxSpeedB    float64 `json:"maxSpeedB"`
	AvgSpeedA    float64 `json:"avgSpeedA"`
	AvgSpeedB    float64 `json:"avgSpeedB"`
	FasterDriver string  `json:"fasterDriver"`
	TimeDelta    float64 `json:"timeDeltaSeconds"`
}

// SessionInfo describes a race weekend activity as reported by the timing API.
type SessionInfo struct {
	Year        int      `json:"year"`
	RaceName    string   `json:"raceName"`
	SessionType string   `json:"sessionType"`
	TrackName   string   `json:"trackName"`
	Drivers     []string `json:"drivers"`
}

func (si SessionInfo) String() string {
	return fmt.Sprintf("%d %s %s", si.Year, si.RaceName, si.SessionType)
}

// SessionRef identifies a session to fetch.
type SessionRef struct {
	Year        int    `json:"year"`
	RaceName    string `json:"raceName"`
	SessionType string `json:"sessionType"`
}

func (sr SessionRef) ID() string {
	return fmt.Sprintf("%d_%s_%s", sr.Year, sr.RaceName, sr.SessionType)
}

// ComparisonReady is published when a fresh comparison has been computed.
type ComparisonReady struct {
	Session SessionRef       `json:"session"`
	Result  ComparisonResult `json:"result"`
}

func (cr ComparisonReady) String() string {
	return fmt.Sprintf("  ▸ Sesión: %s\n  ▸ Pilotos: %s vs %s\n  ▸ Más rápido: %s (+%.3fs)",
		cr.Session.ID(), cr.Result.DriverA, cr.Result.DriverB, cr.Result.FasterDriver, cr.Result.TimeDelta)
}
