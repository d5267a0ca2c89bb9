// Package time contains time related helpers
package time

import "time"

// Now is the clock used by code that stamps or measures time, tests swap it
var Now = time.Now

// Since is Now().Sub(t)
func Since(t time.Time) time.Duration { return Now().Sub(t) }

// Ms renders a duration as fractional milliseconds for logs and responses
func Ms(d time.Duration) float64 {
	return float64(d.Microseconds()) / 1000.0
}
