package util

import "time"

// RoundDown rounds down value to next multiple of modulo
// only works for positive integers
func RoundDown(value, modulo int64) int64 {
	if value < 0 {
		return 0
	}
	return (value / modulo) * modulo
}

// GridStart returns the latest multiple of step (counted from the unix epoch)
// that lies strictly before t, so that t falls into the interval (start, start+step]
func GridStart(t time.Time, step time.Duration) time.Time {
	ns := t.UnixNano() - 1
	if ns >= 0 {
		return time.Unix(0, RoundDown(ns, int64(step))).UTC()
	}
	// floor division, RoundDown clamps negative values
	rem := ns % int64(step)
	if rem < 0 {
		rem += int64(step)
	}
	return time.Unix(0, ns-rem).UTC()
}
