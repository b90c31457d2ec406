// Package gpt reads a GPT header and partition array, adapted from the
// teacher's disk/partition/GPT/gpt.go but trimmed to a header plus an
// indexed entry lookup, and fixing the reference implementation's
// loop-index bug (it always inspected entry 0 regardless of loop position).
package gpt

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/aarsakian/go-ldm/sector"
)

const (
	headerLBA = 1
	signature = "EFI PART"
)

// Entry is one GPT partition table entry, trimmed to the fields an LDM
// reader needs.
type Entry struct {
	TypeGUID   [16]byte
	UniqueGUID [16]byte
	FirstLBA   uint64
	LastLBA    uint64
}

// GPT is an opened GPT header, lazily indexing its partition array off dev.
type GPT struct {
	dev               sector.Device
	partitionArrayLBA uint64
	numEntries        uint32
	entrySize         uint32
}

// Open reads and validates the GPT header at LBA 1 of dev.
func Open(dev sector.Device) (*GPT, error) {
	sectorSize := int64(dev.SectorSize())
	raw, err := dev.ReadAt(headerLBA*sectorSize, int(sectorSize))
	if err != nil {
		return nil, errors.Wrap(err, "read: reading GPT header")
	}
	if string(raw[0:8]) != signature {
		return nil, errors.New("invalid: missing GPT signature")
	}

	return &GPT{
		dev:               dev,
		partitionArrayLBA: binary.LittleEndian.Uint64(raw[72:80]),
		numEntries:        binary.LittleEndian.Uint32(raw[80:84]),
		entrySize:         binary.LittleEndian.Uint32(raw[84:88]),
	}, nil
}

// Len returns the partition-table array length.
func (g *GPT) Len() int {
	return int(g.numEntries)
}

// Entry reads the i'th partition table entry.
func (g *GPT) Entry(i int) (Entry, error) {
	if i < 0 || i >= int(g.numEntries) {
		return Entry{}, errors.Errorf("invalid_part: partition index %d out of range", i)
	}

	sectorSize := int64(g.dev.SectorSize())
	off := int64(g.partitionArrayLBA)*sectorSize + int64(i)*int64(g.entrySize)
	raw, err := g.dev.ReadAt(off, int(g.entrySize))
	if err != nil {
		return Entry{}, errors.Wrapf(err, "read: reading GPT entry %d", i)
	}

	var e Entry
	copy(e.TypeGUID[:], raw[0:16])
	copy(e.UniqueGUID[:], raw[16:32])
	e.FirstLBA = binary.LittleEndian.Uint64(raw[32:40])
	e.LastLBA = binary.LittleEndian.Uint64(raw[40:48])
	return e, nil
}

// FindByType returns the first partition table entry whose type GUID
// matches typeGUID. The reference implementation this is grounded on
// always re-inspected entry 0 here regardless of the loop variable; this
// walks the array by the loop index instead.
func (g *GPT) FindByType(typeGUID [16]byte) (Entry, error) {
	for i := 0; i < g.Len(); i++ {
		e, err := g.Entry(i)
		if err != nil {
			return Entry{}, err
		}
		if e.TypeGUID == typeGUID {
			return e, nil
		}
	}
	return Entry{}, errors.New("invalid_part: LDM metadata partition not found")
}
