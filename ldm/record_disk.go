package ldm

// decodeDisk parses a type 0x04 VBLK record body. Revision 3 carries the
// disk GUID as an ASCII hyphenated string; revision 4 carries it as 16
// raw bytes. Other revisions are unsupported.
func decodeDisk(revision, flags byte, body []byte, dg *DiskGroup) error {
	c := newCursor(body)
	disk := &Disk{}

	id, err := c.varInt32()
	if err != nil {
		return err
	}
	disk.ID = id

	if disk.Name, err = c.varString(); err != nil {
		return err
	}

	switch revision {
	case 3:
		guidStr, err := c.varString()
		if err != nil {
			return err
		}
		g, err := parseASCIIGUID(guidStr)
		if err != nil {
			return newErrf(KindInvalid, "disk %d has invalid GUID: %s", disk.ID, guidStr)
		}
		disk.GUID = g

	case 4:
		raw, err := c.fixed(16)
		if err != nil {
			return err
		}
		disk.GUID = rawGUID(raw)

	default:
		return newErrf(KindNotSupported, "unsupported disk VBLK revision %d", revision)
	}

	dg.disksByID[disk.ID] = disk
	dg.Disks = append(dg.Disks, disk)
	return nil
}
