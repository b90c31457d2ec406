package ldm

// decodeComponent parses a type 0x02 VBLK record body, revision 3 only.
func decodeComponent(revision, flags byte, body []byte, dg *DiskGroup) error {
	if revision != 3 {
		return newErrf(KindNotSupported, "unsupported component VBLK revision %d", revision)
	}

	c := newCursor(body)
	comp := &Component{}

	id, err := c.varInt32()
	if err != nil {
		return err
	}
	comp.ID = id

	if comp.Name, err = c.varString(); err != nil {
		return err
	}

	if err := c.varSkip(); err != nil { // volume-state, treated as opaque: its revision-3 layout is not interpreted
		return err
	}

	typeByte, err := c.byte1()
	if err != nil {
		return err
	}
	comp.Type = ComponentType(typeByte)
	switch comp.Type {
	case ComponentTypeStriped, ComponentTypeSpanned, ComponentTypeRaid:
	default:
		return newErrf(KindNotSupported, "component %d has unsupported type %d", comp.ID, typeByte)
	}

	if err := c.skipFixed(4); err != nil { // zeroes
		return err
	}

	if comp.NParts, err = c.varInt32(); err != nil {
		return err
	}

	if err := c.skipFixed(8 + 8); err != nil { // log commit id, zeroes
		return err
	}

	if comp.ParentID, err = c.varInt32(); err != nil {
		return err
	}

	if err := c.skipFixed(1); err != nil { // zeroes
		return err
	}

	if flags&0x10 != 0 {
		if comp.StripeSize, err = c.varInt64(); err != nil {
			return err
		}
		if comp.NColumns, err = c.varInt32(); err != nil {
			return err
		}
	}

	dg.compsByID[comp.ID] = comp
	dg.Comps = append(dg.Comps, comp)
	return nil
}
