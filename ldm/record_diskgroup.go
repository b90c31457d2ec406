package ldm

// decodeDiskGroup parses a type 0x05 VBLK record body, revisions 3 or 4.
// It carries the disk group's record id and name; the disk group's GUID
// (from PRIVHEAD) and committed sequence (from the VMDB) are already known
// by the time this runs (see assemble.go), so this fills in the id, and
// the name only if none is set yet. An already-set name is kept and not
// compared against the record's.
func decodeDiskGroup(revision, flags byte, body []byte, dg *DiskGroup) error {
	if revision != 3 && revision != 4 {
		return newErrf(KindNotSupported, "unsupported disk group VBLK revision %d", revision)
	}

	c := newCursor(body)

	id, err := c.varInt32()
	if err != nil {
		return err
	}

	name, err := c.varString()
	if err != nil {
		return err
	}

	dg.ID = id
	if dg.Name == "" {
		dg.Name = name
	}
	return nil
}
