// Package timeline converts a day's reservations into a conflict-aware,
// lane-packed layout for the floor timeline view.
//
// # Overview
//
// The package takes the raw inputs for one service day (reservations,
// tables, a turn-time policy, and the service window) and produces a
// [Layout]: one [Row] per table (plus a synthetic unassigned row), each
// holding positioned [Bar]s. All time arithmetic uses minutes since
// midnight; bar positions are percentages of the service window. Pixel
// coordinates never appear in this package.
//
// # Usage
//
//	sheet, _ := timeline.ReadDaySheetFile("2026-08-23.json")
//	layout, dropped := timeline.Build(sheet, policy, window)
//	for _, d := range dropped {
//	    log.Warn("excluded from layout", "reservation", d.ReservationID, "reason", d.Reason)
//	}
package timeline

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Status is the lifecycle state of a reservation.
type Status string

// Reservation statuses.
const (
	StatusBooked         Status = "booked"
	StatusConfirmed      Status = "confirmed"
	StatusSeated         Status = "seated"
	StatusCompleted      Status = "completed"
	StatusCancelled      Status = "cancelled"
	StatusNoShow         Status = "no_show"
	StatusPendingPayment Status = "pending_payment"
)

// IsTerminalNegative reports whether the status is a terminal negative
// outcome (cancelled or no-show). These render as a fixed short interval
// rather than claiming a full turn.
func (s Status) IsTerminalNegative() bool {
	return s == StatusCancelled || s == StatusNoShow
}

// Reservation is one booking as supplied by the caller. The engine never
// mutates a reservation; reassignment is emitted as a proposal only.
type Reservation struct {
	ID              string `json:"id" bson:"id"`
	StartTime       string `json:"start_time" bson:"start_time"` // "HH:MM"
	Covers          int    `json:"covers" bson:"covers"`
	Status          Status `json:"status" bson:"status"`
	TableIDs        []int  `json:"table_ids,omitempty" bson:"table_ids,omitempty"`
	ExpectedMinutes int    `json:"expected_minutes,omitempty" bson:"expected_minutes,omitempty"`
	CompletedAt     string `json:"completed_at,omitempty" bson:"completed_at,omitempty"` // ISO 8601
}

// Table is a physical seating resource. Static within a layout pass.
type Table struct {
	ID          int    `json:"id" bson:"id"`
	Key         string `json:"key" bson:"key"`
	MinCapacity int    `json:"min_capacity" bson:"min_capacity"`
	MaxCapacity int    `json:"max_capacity" bson:"max_capacity"`
}

// DaySheet bundles the inputs for one service day.
type DaySheet struct {
	Date         string        `json:"date" bson:"date"` // "YYYY-MM-DD"
	Reservations []Reservation `json:"reservations" bson:"reservations"`
	Tables       []Table       `json:"tables" bson:"tables"`
}

// TurnTimePolicy maps party-size tiers to expected turn durations in
// minutes. Used only when a reservation carries no explicit duration.
type TurnTimePolicy struct {
	TwoTop  int `json:"two_top" bson:"two_top" toml:"two_top"`    // covers <= 2
	FourTop int `json:"four_top" bson:"four_top" toml:"four_top"` // covers <= 4
	SixTop  int `json:"six_top" bson:"six_top" toml:"six_top"`    // covers <= 6
	Large   int `json:"large" bson:"large" toml:"large"`          // covers > 6
}

// Minutes returns the turn duration for a party size. Unusual sizes
// (zero, negative) fall back to the large-party tier rather than failing.
func (p TurnTimePolicy) Minutes(covers int) int {
	switch {
	case covers >= 1 && covers <= 2:
		return p.TwoTop
	case covers >= 3 && covers <= 4:
		return p.FourTop
	case covers >= 5 && covers <= 6:
		return p.SixTop
	default:
		return p.Large
	}
}

// ServiceWindow defines the visible span of the service day. It is the
// 0-100% axis every bar position is expressed against.
type ServiceWindow struct {
	StartHour int `json:"start_hour" bson:"start_hour" toml:"start_hour"`
	EndHour   int `json:"end_hour" bson:"end_hour" toml:"end_hour"`
}

// StartMinute returns the window start in minutes since midnight.
func (w ServiceWindow) StartMinute() int { return w.StartHour * 60 }

// EndMinute returns the window end in minutes since midnight.
func (w ServiceWindow) EndMinute() int { return w.EndHour * 60 }

// TotalMinutes returns the window span in minutes.
func (w ServiceWindow) TotalMinutes() int { return (w.EndHour - w.StartHour) * 60 }

// Percent converts a minutes-since-midnight value to a percentage of the
// service window. Values outside the window map below 0 or above 100.
func (w ServiceWindow) Percent(minute int) float64 {
	total := w.TotalMinutes()
	if total <= 0 {
		return 0
	}
	return float64(minute-w.StartMinute()) / float64(total) * 100
}

// Validate checks that the window spans at least one hour of the day.
func (w ServiceWindow) Validate() error {
	if w.StartHour < 0 || w.EndHour > 24 || w.EndHour <= w.StartHour {
		return fmt.Errorf("invalid service window %d:00-%d:00", w.StartHour, w.EndHour)
	}
	return nil
}

/// ParseClock parses an "HH:MM" wall-clock string into minutes since
// midnight.
func ParseClock(s string) (int, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("parse clock %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	minute, err := strconv.Atoi(m)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("parse clock %q: out of range", s)
	}
	return hour*60 + minute, nil
}

// minuteOfDay converts an ISO 8601 timestamp to minutes since midnight of
// its own calendar day.
func minuteOfDay(iso string) (int, error) {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}

// naturalLess orders table keys numerically when both are numbers
// ("2" < "10") and lexicographically otherwise, with numeric keys sorting
// before non-numeric ones.
func naturalLess(a, b string) bool {
	an, aerr := strconv.Atoi(a)
	bn, berr := strconv.Atoi(b)
	switch {
	case aerr == nil && berr == nil:
		return an < bn
	case aerr == nil:
		return true
	case berr == nil:
		return false
	default:
		return a < b
	}
}
