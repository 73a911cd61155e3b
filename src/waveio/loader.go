// Package waveio loads a comma-separated capture (first column time, header
// row naming each column) into a wavestore.Store, maintaining a binary
// columnar cache keyed by the source's fingerprint so repeat launches skip
// text parsing entirely.
package waveio

import (
	"bufio"
	"errors"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/misawa-san/waveview/src/wavelog"
	"github.com/misawa-san/waveview/src/wavestore"
)

// Options tunes Load. The zero value gives a cache sibling to the source.
type Options struct {
	// CachePath overrides where the binary cache lives. Empty means
	// "<sourcePath>.wvcache".
	CachePath string
	// DisableCache skips both reading and writing the cache artifact.
	DisableCache bool
}

func (o Options) cachePath(sourcePath string) string {
	if o.CachePath != "" {
		return o.CachePath
	}
	return sourcePath + ".wvcache"
}

// Load returns the waveform store for sourcePath, via the cache fast path
// when the recorded fingerprint still matches and the parse path otherwise.
// Both paths yield identical stores; the cache is purely a speedup. A cache
// write failure is logged and swallowed — the parsed data is still good.
func Load(sourcePath string, opts Options) (*wavestore.Store, error) {
	defer wavelog.TimeTrack(time.Now(), "load "+sourcePath)

	fp, err := FingerprintFile(sourcePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}

	cachePath := opts.cachePath(sourcePath)
	if !opts.DisableCache {
		store, err := readCache(cachePath, fp)
		if err == nil {
			wavelog.Debugf("cache hit: %s (%d samples, %d series)", cachePath, store.Len(), len(store.SeriesNames()))
			return store, nil
		}
		wavelog.Debugf("cache unusable, reparsing: %v", err)
	}

	store, err := parseSource(sourcePath)
	if err != nil {
		return nil, err
	}
	if !opts.DisableCache {
		if err := writeCache(cachePath, fp, store); err != nil {
			wavelog.Warnf("cache write failed for %s: %v", cachePath, err)
		}
	}
	return store, nil
}

// parseSource reads the textual source in one pass, appending straight into
// per-column buffers. No row objects are built, so peak memory stays at
// roughly the size of the resulting columns.
func parseSource(path string) (*wavestore.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrSourceNotFound
		}
		return nil, err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	if !sc.Scan() {
		if err := sc.Err(); err != nil {
			return nil, err
		}
		return nil, &ParseError{Row: 1, Msg: "missing header row"}
	}
	header := strings.Split(strings.TrimRight(sc.Text(), "\r"), ",")
	if len(header) < 1 || strings.TrimSpace(header[0]) == "" {
		return nil, &ParseError{Row: 1, Col: 1, Msg: "empty time column name"}
	}
	// The header must not itself be a data row: a numeric first field means
	// the file has no header at all.
	if _, err := strconv.ParseFloat(strings.TrimSpace(header[0]), 64); err == nil {
		return nil, &ParseError{Row: 1, Col: 1, Msg: "first row looks like data, expected a header naming the time column"}
	}

	names := make([]string, len(header)-1)
	for i, h := range header[1:] {
		names[i] = strings.TrimSpace(h)
		if names[i] == "" {
			return nil, &ParseError{Row: 1, Col: i + 2, Msg: "empty series name"}
		}
	}

	times := []float64{}
	cols := make([][]float64, len(names))
	row := 1
	for sc.Scan() {
		row++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		fields := strings.Split(line, ",")
		if len(fields) != len(header) {
			return nil, &ParseError{Row: row, Msg: "wrong column count: got " + strconv.Itoa(len(fields)) + ", want " + strconv.Itoa(len(header))}
		}
		t, err := strconv.ParseFloat(strings.TrimSpace(fields[0]), 64)
		if err != nil {
			return nil, &ParseError{Row: row, Col: 1, Msg: "bad time value " + strconv.Quote(fields[0])}
		}
		// ParseFloat accepts NaN and Inf spellings, but a non-finite time
		// would slip past the ordering check below (NaN compares false) and
		// leave the time column unsearchable.
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, &ParseError{Row: row, Col: 1, Msg: "non-finite time value " + strconv.Quote(fields[0])}
		}
		if len(times) > 0 && t < times[len(times)-1] {
			return nil, &OrderError{Row: row, Prev: times[len(times)-1], Got: t}
		}
		times = append(times, t)
		for i, cell := range fields[1:] {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, &ParseError{Row: row, Col: i + 2, Msg: "bad value " + strconv.Quote(cell)}
			}
			cols[i] = append(cols[i], v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(times) == 0 {
		return nil, ErrSourceEmpty
	}

	series := make([]wavestore.Series, len(names))
	for i, n := range names {
		series[i] = wavestore.Series{Name: n, Values: cols[i]}
	}
	store, err := wavestore.New(times, series)
	if err != nil {
		return nil, err
	}
	wavelog.Infof("parsed %s: %d samples, %d series", path, store.Len(), len(names))
	return store, nil
}
