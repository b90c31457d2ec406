package ldm

// decodePartition parses a type 0x03 VBLK record body, revision 3 only.
func decodePartition(revision, flags byte, body []byte, dg *DiskGroup) error {
	if revision != 3 {
		return newErrf(KindNotSupported, "unsupported partition VBLK revision %d", revision)
	}

	c := newCursor(body)
	part := &Partition{}

	id, err := c.varInt32()
	if err != nil {
		return err
	}
	part.ID = id

	if part.Name, err = c.varString(); err != nil {
		return err
	}

	if err := c.skipFixed(4); err != nil { // zeroes
		return err
	}
	if err := c.skipFixed(8); err != nil { // log commit id
		return err
	}

	if part.Start, err = c.be64(); err != nil {
		return err
	}
	if part.VolOffset, err = c.be64(); err != nil {
		return err
	}

	if part.Size, err = c.varInt64(); err != nil {
		return err
	}

	if part.ParentID, err = c.varInt32(); err != nil {
		return err
	}

	if part.DiskID, err = c.varInt32(); err != nil {
		return err
	}

	if flags&0x08 != 0 {
		if part.ColumnIdx, err = c.varInt32(); err != nil {
			return err
		}
	}

	dg.partsByID[part.ID] = part
	dg.Parts = append(dg.Parts, part)
	return nil
}
