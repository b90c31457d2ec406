package ldm

import "encoding/binary"

// This file builds minimal, byte-exact synthetic LDM disk images for the
// library/assembler tests, the same way the reference implementation's
// own fixtures are hand-built sector images rather than captures from a
// real dynamic disk.

const (
	testSectorSize  = 512
	testCellSize    = 128
	testCellPayload = testCellSize - vblkHeadSize
)

// fakeDevice backs sector.Device with an in-memory byte slice.
type fakeDevice struct {
	path string
	buf  []byte
}

func (d *fakeDevice) ReadAt(off int64, length int) ([]byte, error) {
	if off < 0 || int(off)+length > len(d.buf) {
		return nil, newErr(KindIO, "read past end of fake device")
	}
	out := make([]byte, length)
	copy(out, d.buf[off:int(off)+length])
	return out, nil
}

func (d *fakeDevice) SectorSize() uint32 { return testSectorSize }
func (d *fakeDevice) Size() int64        { return int64(len(d.buf)) }
func (d *fakeDevice) Path() string       { return d.path }
func (d *fakeDevice) Close() error       { return nil }

// tlvWriter accumulates a VBLK record body using the same var-int/var-string
// TLV convention the cursor in tlv.go reads.
type tlvWriter struct {
	buf []byte
}

func (w *tlvWriter) varInt32(v uint32) {
	w.buf = append(w.buf, 4, byte(v>>24), byte(v>>16), byte(v>>8), byte(v))
}

func (w *tlvWriter) varInt64(v uint64) {
	b := make([]byte, 9)
	b[0] = 8
	binary.BigEndian.PutUint64(b[1:], v)
	w.buf = append(w.buf, b...)
}

func (w *tlvWriter) varString(s string) {
	w.buf = append(w.buf, byte(len(s)))
	w.buf = append(w.buf, []byte(s)...)
}

func (w *tlvWriter) varSkip(n int) {
	w.buf = append(w.buf, byte(n))
	w.buf = append(w.buf, make([]byte, n)...)
}

func (w *tlvWriter) fixed(b ...byte) {
	w.buf = append(w.buf, b...)
}

func (w *tlvWriter) zero(n int) {
	w.buf = append(w.buf, make([]byte, n)...)
}

func (w *tlvWriter) be64(v uint64) {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, v)
	w.buf = append(w.buf, b...)
}

func (w *tlvWriter) byte1(b byte) {
	w.buf = append(w.buf, b)
}

// vblkRecordBytes builds a complete VBLK record (8-byte rec head + TLV
// body) for the given revision/type code.
func vblkRecordBytes(revision, typeCode byte, body []byte) []byte {
	out := make([]byte, vblkRecHeadSize)
	out[3] = revision<<4 | typeCode
	return append(out, body...)
}

// vblkCell pads a record to testCellPayload bytes and prepends the
// 16-byte cell header, entries_total=1.
func vblkCell(seq, recordID uint32, record []byte) []byte {
	return vblkCellEntry(seq, recordID, 0, 1, record)
}

// vblkCellEntry is vblkCell generalized to an arbitrary entry/entries_total,
// for building records that span more than one cell.
func vblkCellEntry(seq, recordID uint32, entry, entriesTotal uint16, payload []byte) []byte {
	if len(payload) > testCellPayload {
		panic("synthetic payload too large for test cell size")
	}
	head := make([]byte, vblkHeadSize)
	copy(head[0:4], "VBLK")
	binary.BigEndian.PutUint32(head[4:8], seq)
	binary.BigEndian.PutUint32(head[8:12], recordID)
	binary.BigEndian.PutUint16(head[12:14], entry)
	binary.BigEndian.PutUint16(head[14:16], entriesTotal)

	padded := make([]byte, testCellPayload)
	copy(padded, payload)
	return append(head, padded...)
}

// testDiskGroupFixture is the byte-level recipe for a single disk carrying
// one Gen/Spanned volume over one partition on one disk.
type testDiskGroupFixture struct {
	diskGroupGUID string
	diskGUID      string
	diskGroupName string
	committedSeq  uint64
	diskName      string
	devicePath    string
}

func buildSingleDiskImage(f testDiskGroupFixture) *fakeDevice {
	const (
		privheadSector   = 6
		configStartSect  = 20
		configSizeSect   = 8
		tocSectorOffset  = 2  // sectors into config
		vmdbSectorOffset = 5  // sectors into config
		vblkFirstOffset  = 256
	)

	deviceSize := (configStartSect+configSizeSect+1)*testSectorSize + 4096
	dev := make([]byte, deviceSize)

	// MBR: partition 0 type 0x42 (LDM), boot signature.
	dev[446+4] = 0x42
	dev[510] = 0x55
	dev[511] = 0xAA

	// PRIVHEAD at sector 6.
	phOff := privheadSector * testSectorSize
	copy(dev[phOff:], "PRIVHEAD")
	copy(dev[phOff+48:], f.diskGUID)
	copy(dev[phOff+176:], f.diskGroupGUID)
	copy(dev[phOff+240:], f.diskGroupName)
	binary.BigEndian.PutUint64(dev[phOff+283:], 34)  // logical_disk_start
	binary.BigEndian.PutUint64(dev[phOff+291:], 5000) // logical_disk_size
	binary.BigEndian.PutUint64(dev[phOff+299:], configStartSect)
	binary.BigEndian.PutUint64(dev[phOff+307:], configSizeSect)

	configOff := configStartSect * testSectorSize

	// TOCBLOCK 2 sectors into config.
	tocOff := configOff + tocSectorOffset*testSectorSize
	copy(dev[tocOff:], "TOCBLOCK")
	bitmap0 := tocOff + 36
	copy(dev[bitmap0:], "config")
	binary.BigEndian.PutUint64(dev[bitmap0+10:], vmdbSectorOffset)

	// VMDB.
	vmdbOff := configOff + vmdbSectorOffset*testSectorSize
	copy(dev[vmdbOff:], "VMDB")
	binary.BigEndian.PutUint32(dev[vmdbOff+8:], testCellSize)
	binary.BigEndian.PutUint32(dev[vmdbOff+12:], vblkFirstOffset)
	binary.BigEndian.PutUint64(dev[vmdbOff+117:], f.committedSeq)
	binary.BigEndian.PutUint32(dev[vmdbOff+133:], 1) // vols
	binary.BigEndian.PutUint32(dev[vmdbOff+137:], 1) // comps
	binary.BigEndian.PutUint32(dev[vmdbOff+141:], 1) // parts
	binary.BigEndian.PutUint32(dev[vmdbOff+145:], 1) // disks

	cellsOff := vmdbOff + vblkFirstOffset

	// Disk record, revision 4, raw GUID.
	diskGUIDRaw := mustParseASCIIGUIDBytes(f.diskGUID)
	dw := &tlvWriter{}
	dw.varInt32(1)
	dw.varString(f.diskName)
	dw.fixed(diskGUIDRaw[:]...)
	diskRecord := vblkRecordBytes(4, 0x04, dw.buf)

	// Partition record, revision 3, no column-index flag.
	pw := &tlvWriter{}
	pw.varInt32(1)
	pw.varString("part0")
	pw.zero(4)
	pw.zero(8)
	pw.be64(2048) // start
	pw.be64(0)    // vol offset
	pw.varInt64(1000)
	pw.varInt32(1) // parent component id
	pw.varInt32(1) // disk id
	partRecord := vblkRecordBytes(3, 0x03, pw.buf)

	// Component record, revision 3, Spanned, no stripe flag.
	cw := &tlvWriter{}
	cw.varInt32(1)
	cw.varString("comp0")
	cw.varSkip(0)
	cw.byte1(2) // Spanned
	cw.zero(4)
	cw.varInt32(1) // n_parts
	cw.zero(8 + 8)
	cw.varInt32(1) // parent volume id
	cw.zero(1)
	compRecord := vblkRecordBytes(3, 0x02, cw.buf)

	// Volume record, revision 5, Gen, no optional tails.
	vw := &tlvWriter{}
	vw.varInt32(1)
	vw.varString("vol0")
	vw.varSkip(3) // volume-type-tag
	vw.varSkip(0) // documented divergence region
	vw.zero(14)   // volume state
	vw.byte1(3)   // Gen
	vw.zero(1 + 1 + 3)
	vw.byte1(0) // flags
	vw.varInt32(1) // n_comps
	vw.zero(8 + 8)
	vw.varInt64(1000) // size
	vw.zero(4)
	vw.byte1(0x07) // partition type
	vw.zero(16)
	volRecord := vblkRecordBytes(5, 0x01, vw.buf)

	// Disk group record, revision 4.
	gw := &tlvWriter{}
	gw.varInt32(1)
	gw.varString(f.diskGroupName)
	dgRecord := vblkRecordBytes(4, 0x05, gw.buf)

	cells := append([]byte{}, vblkCell(1, 1, diskRecord)...)
	cells = append(cells, vblkCell(2, 2, partRecord)...)
	cells = append(cells, vblkCell(3, 3, compRecord)...)
	cells = append(cells, vblkCell(4, 4, volRecord)...)
	cells = append(cells, vblkCell(5, 5, dgRecord)...)
	copy(dev[cellsOff:], cells)

	return &fakeDevice{path: f.devicePath, buf: dev}
}

// mustParseASCIIGUIDBytes panics if s isn't a valid hyphenated GUID; the
// fixtures above only ever pass literals, so a parse failure is a bug in
// the test itself.
func mustParseASCIIGUIDBytes(s string) [16]byte {
	g, err := parseASCIIGUID(s)
	if err != nil {
		panic(err)
	}
	return g
}
