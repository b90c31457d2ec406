package ldm

import (
	"strings"

	"github.com/google/uuid"
)

// GUID is a disk or disk-group identifier, normalized to its raw 16-byte
// form regardless of whether the wire format was the ASCII hyphenated
// string (PRIVHEAD, revision-3 disk VBLKs) or raw bytes (revision-4 disk
// VBLKs).
type GUID [16]byte

// parseASCIIGUID normalizes the hyphenated string form, as carried in
// PRIVHEAD's disk_guid/disk_group_guid/host_guid fields and in revision-3
// disk VBLKs.
func parseASCIIGUID(s string) (GUID, error) {
	s = strings.TrimRight(s, "\x00")
	u, err := uuid.Parse(s)
	if err != nil {
		return GUID{}, newErrf(KindInvalid, "invalid GUID %q: %s", s, err)
	}
	var g GUID
	copy(g[:], u[:])
	return g, nil
}

// rawGUID normalizes the 16 raw bytes carried in a revision-4 disk VBLK.
func rawGUID(b []byte) GUID {
	var g GUID
	copy(g[:], b)
	return g
}

// String renders the canonical lowercase-hyphenated form.
func (g GUID) String() string {
	return uuid.UUID(g).String()
}
