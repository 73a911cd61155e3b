package waveio

import (
	"encoding/binary"
	"os"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint identifies a source file by path, size and modification time.
// A cache is reusable only while the live source still hashes to the same
// fingerprint; any edit, truncation or replacement invalidates it.
type Fingerprint uint64

// FingerprintFile derives the fingerprint from the source's metadata. No file
// content is read: mtime+size catches every rewrite we care about, and hashing
// the content itself would cost the pass the cache exists to avoid.
func FingerprintFile(path string) (Fingerprint, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	h := xxhash.New()
	_, _ = h.WriteString(path)
	_, _ = h.Write([]byte{0})
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(fi.Size()))
	_, _ = h.Write(buf[:])
	_, _ = h.Write([]byte{0})
	binary.LittleEndian.PutUint64(buf[:], uint64(fi.ModTime().UnixNano()))
	_, _ = h.Write(buf[:])
	return Fingerprint(h.Sum64()), nil
}
