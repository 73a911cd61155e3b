// Package wavestore holds the in-memory columnar representation of a loaded
// capture: one shared time column plus N named value columns. A Store is
// created once per load and treated as read-only by every consumer.
package wavestore

import (
	"fmt"
	"math"
	"sort"
)

// Series is one named value column. Values are index-aligned with the store's
// time column and never mutated after load.
type Series struct {
	Name   string
	Values []float64
}

// Store is the column-oriented waveform container shared (read-only) by all
// plot panels and engines.
type Store struct {
	time   []float64
	series []Series
	byName map[string]int
}

// New validates the columns and builds a Store. The time column must be
// finite and non-decreasing, and every series must match its length.
func New(time []float64, series []Series) (*Store, error) {
	for i, v := range time {
		// A NaN compares false against everything, so it would pass the
		// ordering check and break the binary search in NearestIndex.
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("time column not finite at index %d: %g", i, v)
		}
		if i > 0 && v < time[i-1] {
			return nil, fmt.Errorf("time column not monotonic at index %d: %g < %g", i, v, time[i-1])
		}
	}
	byName := make(map[string]int, len(series))
	for i, s := range series {
		if len(s.Values) != len(time) {
			return nil, fmt.Errorf("series %q has %d samples, time has %d", s.Name, len(s.Values), len(time))
		}
		if _, dup := byName[s.Name]; dup {
			return nil, fmt.Errorf("duplicate series name %q", s.Name)
		}
		byName[s.Name] = i
	}
	return &Store{time: time, series: series, byName: byName}, nil
}

// Len returns the number of samples.
func (s *Store) Len() int { return len(s.time) }

// TimeAt returns the time of sample i.
func (s *Store) TimeAt(i int) float64 { return s.time[i] }

// ValueAt returns the value of the named series at sample i.
func (s *Store) ValueAt(name string, i int) (float64, bool) {
	ix, ok := s.byName[name]
	if !ok {
		return 0, false
	}
	return s.series[ix].Values[i], true
}

// Series returns the named series, or nil when unknown.
func (s *Store) Series(name string) *Series {
	ix, ok := s.byName[name]
	if !ok {
		return nil
	}
	return &s.series[ix]
}

// SeriesNames returns the column names in file order.
func (s *Store) SeriesNames() []string {
	out := make([]string, len(s.series))
	for i, sr := range s.series {
		out[i] = sr.Name
	}
	return out
}

// TimeBounds returns the first and last time sample. ok is false for an
// empty store.
func (s *Store) TimeBounds() (lo, hi float64, ok bool) {
	if len(s.time) == 0 {
		return 0, 0, false
	}
	return s.time[0], s.time[len(s.time)-1], true
}

// NearestIndex returns the index of the sample whose time is closest to t.
// Ties at exact midpoints resolve to the lower index. The time column is
// sorted, so this is a binary search.
func (s *Store) NearestIndex(t float64) int {
	n := len(s.time)
	if n == 0 {
		return -1
	}
	i := sort.SearchFloat64s(s.time, t)
	if i == 0 {
		return 0
	}
	if i == n {
		return n - 1
	}
	if t-s.time[i-1] <= s.time[i]-t {
		return i - 1
	}
	return i
}

// DownsampleStride returns the stride the renderer should step by so that at
// most maxPoints samples are drawn. A stride of 1 means draw everything.
func DownsampleStride(n, maxPoints int) int {
	if maxPoints <= 0 || n <= maxPoints {
		return 1
	}
	return n / maxPoints
}
