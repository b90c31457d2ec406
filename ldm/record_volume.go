package ldm

// decodeVolume parses a type 0x01 VBLK record body, revision 5 only. The
// volume-type-tag and the field immediately after it are read via varSkip
// and never interpreted: per the reference implementation's own flagged
// divergence from published documentation, the second of those fields is
// observed as a non-empty variable-length string rather than the
// documented single zero byte, so both are treated as opaque.
func decodeVolume(revision, flags byte, body []byte, dg *DiskGroup) error {
	if revision != 5 {
		return newErrf(KindNotSupported, "unsupported volume VBLK revision %d", revision)
	}

	c := newCursor(body)
	vol := &Volume{}

	id, err := c.varInt32()
	if err != nil {
		return err
	}
	vol.ID = id

	if vol.Name, err = c.varString(); err != nil {
		return err
	}

	if err := c.varSkip(); err != nil { // volume-type-tag ("gen"/"raid5")
		return err
	}
	if err := c.varSkip(); err != nil { // divergence from documentation, see above
		return err
	}
	if err := c.skipFixed(14); err != nil { // volume state
		return err
	}

	typeByte, err := c.byte1()
	if err != nil {
		return err
	}
	vol.Type = VolumeType(typeByte)
	switch vol.Type {
	case VolumeTypeGen, VolumeTypeRaid5:
	default:
		return newErrf(KindNotSupported, "unsupported volume VBLK type %d", typeByte)
	}

	if err := c.skipFixed(1 + 1 + 3); err != nil { // unknown, volume number, zeroes
		return err
	}

	volFlags, err := c.byte1()
	if err != nil {
		return err
	}
	vol.Flags = volFlags

	if vol.NComps, err = c.varInt32(); err != nil {
		return err
	}

	if err := c.skipFixed(8 + 8); err != nil { // commit id, id
		return err
	}

	if vol.Size, err = c.varInt64(); err != nil {
		return err
	}

	if err := c.skipFixed(4); err != nil { // zeroes
		return err
	}

	partType, err := c.byte1()
	if err != nil {
		return err
	}
	vol.PartType = partType

	if err := c.skipFixed(16); err != nil { // volume id
		return err
	}

	if vol.Flags&0x08 != 0 {
		if vol.ID1, err = c.varString(); err != nil {
			return err
		}
	}
	if vol.Flags&0x20 != 0 {
		if vol.ID2, err = c.varString(); err != nil {
			return err
		}
	}
	if vol.Flags&0x80 != 0 {
		if vol.Size2, err = c.varInt64(); err != nil {
			return err
		}
	}
	if vol.Flags&0x02 != 0 {
		if vol.Hint, err = c.varString(); err != nil {
			return err
		}
	}

	dg.volsByID[vol.ID] = vol
	dg.Vols = append(dg.Vols, vol)
	return nil
}
