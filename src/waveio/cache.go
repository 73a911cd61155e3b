package waveio

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"

	"github.com/misawa-san/waveview/src/wavestore"
)

// Cache artifact layout (little-endian, private format):
//
//	magic "WVC1" | version u8 | fingerprint u64 | rows u64 | cols u64
//	cols * (nameLen u16 | name bytes)
//	time column (rows * f64)
//	cols * value column (rows * f64)
//
// Any structural surprise is treated as stale and the cache is rebuilt from
// the source; the format carries no cross-version guarantees.
var cacheMagic = [4]byte{'W', 'V', 'C', '1'}

const cacheVersion = 1

// maxCacheSeries bounds the column count read back from a cache header so a
// corrupt file cannot drive a huge allocation.
const maxCacheSeries = 1 << 16

func readCache(path string, fp Fingerprint) (*wavestore.Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCacheStale, err)
	}
	defer f.Close()
	r := bufio.NewReaderSize(f, 1<<20)

	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return nil, fmt.Errorf("%w: short header", errCacheStale)
	}
	if magic != cacheMagic {
		return nil, fmt.Errorf("%w: bad magic", errCacheStale)
	}
	ver, err := r.ReadByte()
	if err != nil || ver != cacheVersion {
		return nil, fmt.Errorf("%w: version %d", errCacheStale, ver)
	}
	var hdr [3]uint64
	for i := range hdr {
		if err := binary.Read(r, binary.LittleEndian, &hdr[i]); err != nil {
			return nil, fmt.Errorf("%w: short header", errCacheStale)
		}
	}
	if Fingerprint(hdr[0]) != fp {
		return nil, fmt.Errorf("%w: fingerprint mismatch", errCacheStale)
	}
	rows, cols := hdr[1], hdr[2]
	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCacheStale, err)
	}
	// Each row contributes 8 bytes per column (time included), so counts the
	// file could not possibly hold are corruption, not data. This keeps a
	// bit-flipped header from driving a huge allocation below.
	if cols > maxCacheSeries || rows > uint64(fi.Size())/8 {
		return nil, fmt.Errorf("%w: implausible geometry rows=%d cols=%d", errCacheStale, rows, cols)
	}

	names := make([]string, cols)
	for i := range names {
		var n uint16
		if err := binary.Read(r, binary.LittleEndian, &n); err != nil {
			return nil, fmt.Errorf("%w: short name table", errCacheStale)
		}
		b := make([]byte, n)
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("%w: short name table", errCacheStale)
		}
		names[i] = string(b)
	}

	readColumn := func() ([]float64, error) {
		col := make([]float64, rows)
		buf := make([]byte, 8)
		for i := range col {
			if _, err := io.ReadFull(r, buf); err != nil {
				return nil, fmt.Errorf("%w: short column", errCacheStale)
			}
			col[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf))
		}
		return col, nil
	}

	times, err := readColumn()
	if err != nil {
		return nil, err
	}
	series := make([]wavestore.Series, cols)
	for i := range series {
		vals, err := readColumn()
		if err != nil {
			return nil, err
		}
		series[i] = wavestore.Series{Name: names[i], Values: vals}
	}
	store, err := wavestore.New(times, series)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errCacheStale, err)
	}
	return store, nil
}

// writeCache serializes the store next to a temp path and renames it into
// place, so a crash mid-write never clobbers a previously valid cache.
func writeCache(path string, fp Fingerprint, store *wavestore.Store) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	w := bufio.NewWriterSize(tmp, 1<<20)

	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}

	names := store.SeriesNames()
	if _, err := w.Write(cacheMagic[:]); err != nil {
		return fail(err)
	}
	if err := w.WriteByte(cacheVersion); err != nil {
		return fail(err)
	}
	for _, v := range []uint64{uint64(fp), uint64(store.Len()), uint64(len(names))} {
		if err := binary.Write(w, binary.LittleEndian, v); err != nil {
			return fail(err)
		}
	}
	for _, name := range names {
		if len(name) > math.MaxUint16 {
			return fail(fmt.Errorf("series name too long to cache: %d bytes", len(name)))
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(len(name))); err != nil {
			return fail(err)
		}
		if _, err := w.WriteString(name); err != nil {
			return fail(err)
		}
	}

	writeColumn := func(get func(i int) float64) error {
		var buf [8]byte
		for i := 0; i < store.Len(); i++ {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(get(i)))
			if _, err := w.Write(buf[:]); err != nil {
				return err
			}
		}
		return nil
	}

	if err := writeColumn(store.TimeAt); err != nil {
		return fail(err)
	}
	for _, name := range names {
		vals := store.Series(name).Values
		if err := writeColumn(func(i int) float64 { return vals[i] }); err != nil {
			return fail(err)
		}
	}

	if err := w.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, path)
}
