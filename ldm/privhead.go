package ldm

import (
	"encoding/binary"
	"strings"

	"github.com/aarsakian/go-ldm/partition/gpt"
	"github.com/aarsakian/go-ldm/partition/mbr"
	"github.com/aarsakian/go-ldm/sector"
)

const privheadSize = 391

// ldmMetadataTypeGUID is the GPT partition type GUID for the LDM metadata
// partition, byte-swapped from its canonical string form the way a raw
// GUID is laid out on disk (time_low/time_mid/time_hi_and_version are
// little-endian on GPT media).
var ldmMetadataTypeGUID = [16]byte{
	0xAA, 0xC8, 0x08, 0x58, 0x8F, 0x7E, 0xE0, 0x42,
	0x85, 0xD2, 0xE1, 0xE9, 0x04, 0x34, 0xCF, 0xB3,
}

// privhead is the per-disk private header, packed on disk (no padding).
// Offsets are given as comments since the field widths are irregular.
type privhead struct {
	diskGUID      string // 48, 64 B, ASCII
	hostGUID      string // 112, 64 B, ASCII
	diskGroupGUID string // 176, 64 B, ASCII
	diskGroupName string // 240, 32 B

	logicalDiskStart uint64 // 283
	logicalDiskSize  uint64 // 291
	ldmConfigStart   uint64 // 299
	ldmConfigSize    uint64 // 307
}

func readPrivhead(dev sector.Device) (*privhead, error) {
	m, err := mbr.Read(dev)
	if err != nil {
		return nil, wrapErr(collaboratorKind(err), err, "reading MBR")
	}

	switch m.Partition(0).Type {
	case mbr.TypeLDM:
		return readPrivheadAt(dev, uint64(6)*uint64(dev.SectorSize()))
	case mbr.TypeEFIProtective:
		return readPrivheadGPT(dev)
	default:
		return nil, newErr(KindNotLDM, "device does not contain LDM metadata")
	}
}

func readPrivheadGPT(dev sector.Device) (*privhead, error) {
	g, err := gpt.Open(dev)
	if err != nil {
		return nil, wrapErr(collaboratorKind(err), err, "opening GPT")
	}

	entry, err := g.FindByType(ldmMetadataTypeGUID)
	if err != nil {
		return nil, newErr(KindNotLDM, "device does not contain LDM metadata")
	}

	// PRIVHEAD sits in the last LBA of the LDM metadata partition.
	return readPrivheadAt(dev, entry.LastLBA*uint64(dev.SectorSize()))
}

// collaboratorKind classifies an error from the MBR/GPT readers, which
// report failures as plain errors prefixed "invalid:" or "read:" rather
// than a typed Kind.
func collaboratorKind(err error) Kind {
	if strings.HasPrefix(err.Error(), "invalid:") {
		return KindInvalid
	}
	return KindIO
}

func readPrivheadAt(dev sector.Device, offset uint64) (*privhead, error) {
	raw, err := dev.ReadAt(int64(offset), privheadSize)
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading PRIVHEAD")
	}

	if string(raw[0:8]) != "PRIVHEAD" {
		return nil, newErrf(KindInvalid, "PRIVHEAD not found at offset %#x", offset)
	}

	return &privhead{
		diskGUID:         nulString(raw[48:112]),
		hostGUID:         nulString(raw[112:176]),
		diskGroupGUID:    nulString(raw[176:240]),
		diskGroupName:    nulString(raw[240:272]),
		logicalDiskStart: binary.BigEndian.Uint64(raw[283:291]),
		logicalDiskSize:  binary.BigEndian.Uint64(raw[291:299]),
		ldmConfigStart:   binary.BigEndian.Uint64(raw[299:307]),
		ldmConfigSize:    binary.BigEndian.Uint64(raw[307:315]),
	}, nil
}

func nulString(b []byte) string {
	return strings.TrimRight(string(b), "\x00")
}
