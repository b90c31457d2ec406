// Package mbr reads the 512-byte MBR partition table, adapted from the
// teacher's disk/partition/MBR/mbr.go but trimmed to the partition-0 type
// probe an LDM reader needs: is this disk MBR-style LDM, or does it carry a
// protective MBR pointing at a GPT.
package mbr

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/aarsakian/go-ldm/sector"
)

const (
	// TypeLDM is MBR partition type 0x42, Windows LDM (dynamic disk).
	TypeLDM = 0x42
	// TypeEFIProtective is MBR partition type 0xEE, a protective MBR
	// whose real partitioning lives in a GPT.
	TypeEFIProtective = 0xEE

	partitionTableOffset = 446
	partitionEntrySize   = 16
	bootSignatureOffset  = 510
)

// Entry is one of the four fixed MBR partition table slots.
type Entry struct {
	Flag     byte
	StartCHS [3]byte
	Type     byte
	EndCHS   [3]byte
	StartLBA uint32
	Size     uint32 // sectors
}

// MBR is the first sector of a disk, partition table only.
type MBR struct {
	Entries [4]Entry
}

// Read parses sector 0 of dev.
func Read(dev sector.Device) (*MBR, error) {
	raw, err := dev.ReadAt(0, 512)
	if err != nil {
		return nil, errors.Wrap(err, "read: reading MBR sector")
	}
	if raw[bootSignatureOffset] != 0x55 || raw[bootSignatureOffset+1] != 0xAA {
		return nil, errors.New("invalid: missing MBR boot signature")
	}

	var m MBR
	for i := range m.Entries {
		off := partitionTableOffset + i*partitionEntrySize
		e := &m.Entries[i]
		e.Flag = raw[off]
		copy(e.StartCHS[:], raw[off+1:off+4])
		e.Type = raw[off+4]
		copy(e.EndCHS[:], raw[off+5:off+8])
		e.StartLBA = binary.LittleEndian.Uint32(raw[off+8 : off+12])
		e.Size = binary.LittleEndian.Uint32(raw[off+12 : off+16])
	}
	return &m, nil
}

// Partition returns the n'th (0-based) partition table entry.
func (m *MBR) Partition(n int) Entry {
	return m.Entries[n]
}
