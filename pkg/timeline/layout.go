package timeline

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
)

// Row geometry constants, in content units. Row height is a deterministic
// function of lane count only.
const (
	MinRowHeight = 56.0
	RowPadding   = 8.0
	BarHeight    = 36.0
	LaneGap      = 6.0
)

// RowHeight returns the content-unit height of a row with the given lane
// count. Non-decreasing in laneCount, strictly increasing past one lane.
func RowHeight(laneCount int) float64 {
	if laneCount < 1 {
		laneCount = 1
	}
	h := 2*RowPadding + float64(laneCount)*BarHeight + float64(laneCount-1)*LaneGap
	if h < MinRowHeight {
		return MinRowHeight
	}
	return h
}

// =============================================================================
// Layout Types
// =============================================================================

// Bar is one positioned reservation interval within a row. Bars are
// recomputed on every layout pass and never persisted as authoritative
// state.
type Bar struct {
	ReservationID string  `json:"reservation_id" bson:"reservation_id"`
	StartMinute   int     `json:"start_minute" bson:"start_minute"`
	EndMinute     int     `json:"end_minute" bson:"end_minute"`
	StartPercent  float64 `json:"start_percent" bson:"start_percent"`
	WidthPercent  float64 `json:"width_percent" bson:"width_percent"`
	Lane          int     `json:"lane" bson:"lane"`
	Conflict      bool    `json:"conflict" bson:"conflict"`
}

// Row holds the bars for one table. The synthetic unassigned row has a
// nil Table and always sorts last.
type Row struct {
	Table     *Table  `json:"table,omitempty" bson:"table,omitempty"`
	Bars      []Bar   `json:"bars" bson:"bars"`
	LaneCount int     `json:"lane_count" bson:"lane_count"`
	Height    float64 `json:"height" bson:"height"`
}

// IsUnassigned reports whether this is the synthetic unassigned row.
func (r Row) IsUnassigned() bool { return r.Table == nil }

// Label returns the display key for the row.
func (r Row) Label() string {
	if r.Table == nil {
		return "Unassigned"
	}
	return r.Table.Key
}

// Layout is the complete renderable result of one layout pass.
type Layout struct {
	Date   string        `json:"date,omitempty" bson:"date,omitempty"`
	Window ServiceWindow `json:"window" bson:"window"`
	Rows   []Row         `json:"rows" bson:"rows"`
}

// TotalHeight returns the summed height of all rows in content units.
func (l *Layout) TotalHeight() float64 {
	var h float64
	for _, r := range l.Rows {
		h += r.Height
	}
	return h
}

// BarCount returns the total number of bars across all rows.
func (l *Layout) BarCount() int {
	var n int
	for _, r := range l.Rows {
		n += len(r.Bars)
	}
	return n
}

// Dropped records a reservation excluded from layout, with the reason.
// The caller surfaces these as warnings; they never abort a layout pass.
type Dropped struct {
	ReservationID string `json:"reservation_id" bson:"reservation_id"`
	Reason        string `json:"reason" bson:"reason"`
}

// =============================================================================
// Layout Builder
// =============================================================================

// Build partitions a day sheet's reservations into table buckets, packs
// each bucket into lanes, flags conflicts, and returns ordered rows.
//
// A reservation with no assigned table lands in the unassigned row. A
// reservation assigned to several tables produces one independent bar per
// table (duplication, not sharing). Reservations whose start time cannot
// be parsed are dropped and reported.
func Build(sheet DaySheet, policy TurnTimePolicy, window ServiceWindow) (*Layout, []Dropped) {
	type bucket struct {
		table *Table
		spans []Span
	}

	buckets := make(map[int]*bucket, len(sheet.Tables)+1)
	ordered := make([]*bucket, 0, len(sheet.Tables)+1)
	for i := range sheet.Tables {
		t := &sheet.Tables[i]
		if _, dup := buckets[t.ID]; dup {
			continue
		}
		b := &bucket{table: t}
		buckets[t.ID] = b
		ordered = append(ordered, b)
	}
	unassigned := &bucket{}

	var dropped []Dropped
	for _, r := range sheet.Reservations {
		span, ok := Resolve(r, policy)
		if !ok {
			dropped = append(dropped, Dropped{
				ReservationID: r.ID,
				Reason:        fmt.Sprintf("unparsable start time %q", r.StartTime),
			})
			continue
		}

		ids := dedupeInts(r.TableIDs)
		if len(ids) == 0 {
			unassigned.spans = append(unassigned.spans, span)
			continue
		}
		for _, id := range ids {
			b, found := buckets[id]
			if !found {
				// Assignment to a table missing from the sheet still
				// deserves a bar somewhere visible.
				unassigned.spans = append(unassigned.spans, span)
				continue
			}
			b.spans = append(b.spans, span)
		}
	}

	// Stable sort over the sheet-declared table order keeps rows with
	// equal keys in a deterministic position from one pass to the next.
	sort.SliceStable(ordered, func(i, j int) bool {
		return naturalLess(ordered[i].table.Key, ordered[j].table.Key)
	})
	ordered = append(ordered, unassigned) // always last

	layout := &Layout{Date: sheet.Date, Window: window}
	for _, b := range ordered {
		layout.Rows = append(layout.Rows, buildRow(b.table, b.spans, window))
	}
	return layout, dropped
}

// buildRow packs one bucket's spans and positions the resulting bars.
func buildRow(table *Table, spans []Span, window ServiceWindow) Row {
	laneOf, laneCount := packLanes(spans)
	conflicted := Conflicts(spans)

	bars := make([]Bar, 0, len(spans))
	for i, s := range spans {
		bars = append(bars, Bar{
			ReservationID: s.ReservationID,
			StartMinute:   s.Start,
			EndMinute:     s.End,
			StartPercent:  window.Percent(s.Start),
			WidthPercent:  window.Percent(s.End) - window.Percent(s.Start),
			Lane:          laneOf[i],
			Conflict:      conflicted[s.ReservationID],
		})
	}
	sort.SliceStable(bars, func(i, j int) bool {
		if bars[i].StartMinute != bars[j].StartMinute {
			return bars[i].StartMinute < bars[j].StartMinute
		}
		return bars[i].Lane < bars[j].Lane
	})

	return Row{Table: table, Bars: bars, LaneCount: laneCount, Height: RowHeight(laneCount)}
}

func dedupeInts(ids []int) []int {
	if len(ids) < 2 {
		return ids
	}
	seen := make(map[int]bool, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}

// =============================================================================
// Serialization
// =============================================================================

// MarshalLayout serializes a Layout to pretty-printed JSON bytes.
func MarshalLayout(l *Layout) ([]byte, error) {
	return json.MarshalIndent(l, "", "  ")
}

// UnmarshalLayout deserializes JSON bytes into a Layout.
func UnmarshalLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("unmarshal layout: %w", err)
	}
	return &l, nil
}

// WriteLayoutFile writes a Layout to a JSON file.
func WriteLayoutFile(l *Layout, path string) error {
	data, err := MarshalLayout(l)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// MarshalDaySheet serializes a DaySheet to pretty-printed JSON bytes.
func MarshalDaySheet(sheet DaySheet) ([]byte, error) {
	return json.MarshalIndent(sheet, "", "  ")
}

// ReadDaySheetFile reads a DaySheet from a JSON file.
func ReadDaySheetFile(path string) (DaySheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DaySheet{}, fmt.Errorf("read %s: %w", path, err)
	}
	var sheet DaySheet
	if err := json.Unmarshal(data, &sheet); err != nil {
		return DaySheet{}, fmt.Errorf("unmarshal day sheet: %w", err)
	}
	return sheet, nil
}
