package ldm

import (
	"encoding/binary"
	"strings"
)

const (
	tocblockOffset  = 2 // sectors into the config region
	tocblockMagic   = "TOCBLOCK"
	vmdbMagic       = "VMDB"
	bitmapEntrySize = 8 + 2 + 8 + 8 + 8 // name, flags1, start, size, flags2
)

// vmdb is the parsed VMDB header. cellSize/firstOffset locate the VBLK
// stream that follows it; the committed counts gate topology assembly.
type vmdb struct {
	offset       int // byte offset of the VMDB within config
	cellSize     uint32
	firstOffset  uint32
	committedSeq uint64

	nCommittedVol   uint32
	nCommittedComp  uint32
	nCommittedPart  uint32
	nCommittedDisk  uint32
}

// findVMDB locates the TOCBLOCK 2 sectors into config, follows its
// "config" bitmap descriptor to the VMDB, and validates both magic values.
func findVMDB(config []byte, sectorSize uint32) (*vmdb, error) {
	tocOff := int(tocblockOffset) * int(sectorSize)
	if len(config) < tocOff+8 {
		return nil, newErrf(KindInvalid, "config region too short for TOCBLOCK")
	}
	if string(config[tocOff:tocOff+8]) != tocblockMagic {
		return nil, newErrf(KindInvalid, "didn't find TOCBLOCK at config offset %#x", tocOff)
	}

	// bitmap[0] begins at tocOff + 8 (magic) + 4 (seq1) + 4 (padding1) +
	// 4 (seq2) + 16 (padding2) = tocOff + 36.
	bitmapBase := tocOff + 36
	var vmdbStartSector uint64
	found := false
	for i := 0; i < 2; i++ {
		entry := config[bitmapBase+i*bitmapEntrySize : bitmapBase+(i+1)*bitmapEntrySize]
		name := strings.TrimRight(string(entry[0:8]), "\x00")
		if name == "config" {
			vmdbStartSector = binary.BigEndian.Uint64(entry[10:18])
			found = true
			break
		}
	}
	if !found {
		return nil, newErr(KindInvalid, "TOCBLOCK doesn't contain a config bitmap")
	}

	vmdbOff := int(vmdbStartSector) * int(sectorSize)
	if len(config) < vmdbOff+4 || string(config[vmdbOff:vmdbOff+4]) != vmdbMagic {
		return nil, newErrf(KindInvalid, "didn't find VMDB at config offset %#x", vmdbOff)
	}

	raw := config[vmdbOff:]
	return &vmdb{
		offset:         vmdbOff,
		cellSize:       binary.BigEndian.Uint32(raw[8:12]),
		firstOffset:    binary.BigEndian.Uint32(raw[12:16]),
		committedSeq:   binary.BigEndian.Uint64(raw[117:125]),
		nCommittedVol:  binary.BigEndian.Uint32(raw[133:137]),
		nCommittedComp: binary.BigEndian.Uint32(raw[137:141]),
		nCommittedPart: binary.BigEndian.Uint32(raw[141:145]),
		nCommittedDisk: binary.BigEndian.Uint32(raw[145:149]),
	}, nil
}
