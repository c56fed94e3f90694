package database

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/martin2250/vitalsampler/sampler"
)

// ErrInvalidMeasurement indicates that the insert failed because the measurement has no time or an unknown channel
var ErrInvalidMeasurement = errors.New("measurement has no time or an unknown channel")

// ChannelInfo describes the measurements stored for one channel
type ChannelInfo struct {
	Channel sampler.Channel
	Count   int
	First   time.Time
	Last    time.Time
}

// Database holds raw measurements per channel in memory
type Database struct {
	channels map[sampler.Channel][]sampler.Measurement
	mux      sync.RWMutex
}

// NewDatabase creates an empty database
func NewDatabase() *Database {
	return &Database{
		channels: make(map[sampler.Channel][]sampler.Measurement),
	}
}

// InsertMeasurement stores a measurement, measurements may arrive in any order
func (db *Database) InsertMeasurement(m sampler.Measurement) error {
	if m.Time.IsZero() || !m.Channel.Valid() {
		return ErrInvalidMeasurement
	}

	db.mux.Lock()
	db.channels[m.Channel] = append(db.channels[m.Channel], m)
	db.mux.Unlock()

	return nil
}

// Insert stores a batch of measurements, returning the number of rejected measurements
func (db *Database) Insert(ms []sampler.Measurement) (rejected int) {
	db.mux.Lock()
	defer db.mux.Unlock()

	for _, m := range ms {
		if m.Time.IsZero() || !m.Channel.Valid() {
			rejected++
			continue
		}
		db.channels[m.Channel] = append(db.channels[m.Channel], m)
	}

	return rejected
}

// Snapshot copies the stored measurements of the given channels, or of all
// channels if none are given. within a channel, insertion order is kept
func (db *Database) Snapshot(channels ...sampler.Channel) []sampler.Measurement {
	db.mux.RLock()
	defer db.mux.RUnlock()

	if len(channels) == 0 {
		channels = sampler.Channels
	}

	var out []sampler.Measurement
	for _, c := range channels {
		out = append(out, db.channels[c]...)
	}

	return out
}

// Channels describes every channel that holds at least one measurement, ordered by channel
func (db *Database) Channels() []ChannelInfo {
	db.mux.RLock()
	defer db.mux.RUnlock()

	infos := make([]ChannelInfo, 0, len(db.channels))

	for c, ms := range db.channels {
		if len(ms) == 0 {
			continue
		}

		info := ChannelInfo{
			Channel: c,
			Count:   len(ms),
			First:   ms[0].Time,
			Last:    ms[0].Time,
		}
		for _, m := range ms[1:] {
			if m.Time.Before(info.First) {
				info.First = m.Time
			}
			if m.Time.After(info.Last) {
				info.Last = m.Time
			}
		}
		infos = append(infos, info)
	}

	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Channel < infos[j].Channel
	})

	return infos
}

// Earliest returns the time of the oldest stored measurement of the given channels (all if none given)
func (db *Database) Earliest(channels ...sampler.Channel) (time.Time, bool) {
	want := make(map[sampler.Channel]bool, len(channels))
	for _, c := range channels {
		want[c] = true
	}

	var first time.Time
	found := false

	for _, info := range db.Channels() {
		if len(want) > 0 && !want[info.Channel] {
			continue
		}
		if !found || info.First.Before(first) {
			first = info.First
			found = true
		}
	}

	return first, found
}

// Expire drops every measurement older than before and returns the number of dropped measurements
func (db *Database) Expire(before time.Time) int {
	db.mux.Lock()
	defer db.mux.Unlock()

	dropped := 0

	for c, ms := range db.channels {
		kept := ms[:0]
		for _, m := range ms {
			if m.Time.Before(before) {
				dropped++
				continue
			}
			kept = append(kept, m)
		}

		if len(kept) == 0 {
			delete(db.channels, c)
		} else {
			db.channels[c] = kept
		}
	}

	return dropped
}

// Len returns the number of stored measurements
func (db *Database) Len() int {
	db.mux.RLock()
	defer db.mux.RUnlock()

	n := 0
	for _, ms := range db.channels {
		n += len(ms)
	}
	return n
}
