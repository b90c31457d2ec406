package ldm

import "encoding/binary"

const (
	vblkHeadSize = 16 // magic[4] + seq + record_id + entry + entries_total
	vblkRecHeadSize = 8 // status + flags + type + size
)

type vblkHead struct {
	recordID     uint32
	entry        uint16
	entriesTotal uint16
}

// reassembly accumulates the cells of a record that spans multiple VBLK
// cells, keyed by record_id.
type reassembly struct {
	entriesTotal uint16
	entriesFound uint16
	data         []byte
}

// parseVBLKs iterates the VBLK cell stream starting at vmdb's first-cell
// offset, reassembling multi-cell records by record_id+entry, and
// dispatches every complete record's payload to decodeRecord. Iteration
// stops at the first cell that doesn't begin with "VBLK" — a cell-order
// shuffle of a spanned record's entries yields the same record set,
// since reassembly keys strictly on record_id and entry, not arrival
// order.
func parseVBLKs(config []byte, v *vmdb, dg *DiskGroup) error {
	dataSize := int(v.cellSize) - vblkHeadSize
	if dataSize <= 0 {
		return newErrf(KindInvalid, "VBLK cell size %d too small for a cell header", v.cellSize)
	}

	pending := make(map[uint32]*reassembly)
	// preserve first-sight order so dispatch order is deterministic
	var pendingOrder []uint32

	pos := v.offset + int(v.firstOffset)
	for pos+vblkHeadSize <= len(config) {
		cell := config[pos:]
		if string(cell[0:4]) != "VBLK" {
			break
		}

		head := parseVBLKHead(cell)
		if head.entriesTotal > 0 && head.entry >= head.entriesTotal {
			return newErrf(KindInvalid, "VBLK record %d has entry (%d) >= total entries (%d)",
				head.recordID, head.entry, head.entriesTotal)
		}

		if pos+vblkHeadSize+dataSize > len(config) {
			return newErr(KindInvalid, "VBLK cell truncated by config region")
		}
		payload := cell[vblkHeadSize : vblkHeadSize+dataSize]

		if head.entriesTotal > 1 {
			r, ok := pending[head.recordID]
			if !ok {
				r = &reassembly{
					entriesTotal: head.entriesTotal,
					data:         make([]byte, int(head.entriesTotal)*dataSize),
				}
				pending[head.recordID] = r
				pendingOrder = append(pendingOrder, head.recordID)
			}
			copy(r.data[int(head.entry)*dataSize:], payload)
			r.entriesFound++
		} else {
			if err := decodeRecord(payload, dg); err != nil {
				return err
			}
		}

		pos += vblkHeadSize + dataSize
	}

	for _, id := range pendingOrder {
		r := pending[id]
		if r.entriesFound != r.entriesTotal {
			return newErrf(KindInvalid, "expected %d entries for record %d, found %d",
				r.entriesTotal, id, r.entriesFound)
		}
		if err := decodeRecord(r.data, dg); err != nil {
			return err
		}
	}

	return nil
}

func parseVBLKHead(cell []byte) vblkHead {
	return vblkHead{
		recordID:     binary.BigEndian.Uint32(cell[8:12]),
		entry:        binary.BigEndian.Uint16(cell[12:14]),
		entriesTotal: binary.BigEndian.Uint16(cell[14:16]),
	}
}

// decodeRecord reads the fixed record header and routes by type code to
// the matching per-record decoder.
func decodeRecord(data []byte, dg *DiskGroup) error {
	if len(data) < vblkRecHeadSize {
		return newErr(KindInvalid, "VBLK record shorter than its header")
	}

	flags := data[2]
	typeByte := data[3]
	revision := typeByte >> 4
	typeCode := typeByte & 0x0f

	body := data[vblkRecHeadSize:]

	switch typeCode {
	case 0x00:
		return nil // blank, ignored
	case 0x01:
		return decodeVolume(revision, flags, body, dg)
	case 0x02:
		return decodeComponent(revision, flags, body, dg)
	case 0x03:
		return decodePartition(revision, flags, body, dg)
	case 0x04:
		return decodeDisk(revision, flags, body, dg)
	case 0x05:
		return decodeDiskGroup(revision, flags, body, dg)
	default:
		return newErrf(KindNotSupported, "unsupported VBLK record type %#x", typeCode)
	}
}
