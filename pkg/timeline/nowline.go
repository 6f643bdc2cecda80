package timeline

import "time"

// NowPercent returns the now-line position as a percentage of the service
// window, and whether the current time falls inside the window at all.
// Callers in live mode recompute this on a periodic tick.
func NowPercent(now time.Time, window ServiceWindow) (float64, bool) {
	minute := now.Hour()*60 + now.Minute()
	if minute < window.StartMinute() || minute > window.EndMinute() {
		return 0, false
	}
	return window.Percent(minute), true
}
