package ldm

import (
	"fmt"
	"sort"

	"github.com/aarsakian/go-ldm/logger"
	"github.com/aarsakian/go-ldm/sector"
)

// parseDisk reads everything this module needs from a single disk: its
// private header, its config region, and the VMDB header locating the
// VBLK stream. It stops short of walking the VBLK stream itself, since
// the multi-disk merge in library.go only does that for the first disk
// observed for a given disk group.
func parseDisk(dev sector.Device) (*privhead, []byte, *vmdb, error) {
	ph, err := readPrivhead(dev)
	if err != nil {
		return nil, nil, nil, err
	}

	config, err := readConfig(dev, ph)
	if err != nil {
		return nil, nil, nil, err
	}

	v, err := findVMDB(config, dev.SectorSize())
	if err != nil {
		return nil, nil, nil, err
	}

	return ph, config, v, nil
}

// assembleDiskGroup walks the VBLK stream of the first disk observed for
// a disk group, cross-links the decoded records into a topology per the
// counting/resolution rules, and stamps this disk's own device fields.
func assembleDiskGroup(dev sector.Device, ph *privhead, config []byte, v *vmdb) (*DiskGroup, error) {
	dgGUID, err := parseASCIIGUID(ph.diskGroupGUID)
	if err != nil {
		return nil, err
	}

	dg := newDiskGroup()
	dg.GUID = dgGUID
	dg.Name = ph.diskGroupName
	dg.CommittedSeq = v.committedSeq
	dg.NDisks = v.nCommittedDisk
	dg.NComps = v.nCommittedComp
	dg.NParts = v.nCommittedPart
	dg.NVols = v.nCommittedVol

	if err := parseVBLKs(config, v, dg); err != nil {
		return nil, err
	}

	if err := linkTopology(dg); err != nil {
		return nil, err
	}

	if err := stampDevice(dg, ph, dev); err != nil {
		return nil, err
	}

	return dg, nil
}

// linkTopology implements §4.8: validates declared counts, resolves
// partition→disk and partition→component references, sorts each
// component's partitions by column index, resolves component→volume
// references, and stamps the disk-group name onto every volume and disk.
func linkTopology(dg *DiskGroup) error {
	if uint32(len(dg.Disks)) != dg.NDisks {
		return newErrf(KindInvalid, "expected %d disk VBLKs, found %d", dg.NDisks, len(dg.Disks))
	}
	if uint32(len(dg.Comps)) != dg.NComps {
		return newErrf(KindInvalid, "expected %d component VBLKs, found %d", dg.NComps, len(dg.Comps))
	}
	if uint32(len(dg.Parts)) != dg.NParts {
		return newErrf(KindInvalid, "expected %d partition VBLKs, found %d", dg.NParts, len(dg.Parts))
	}
	if uint32(len(dg.Vols)) != dg.NVols {
		return newErrf(KindInvalid, "expected %d volume VBLKs, found %d", dg.NVols, len(dg.Vols))
	}

	for _, part := range dg.Parts {
		disk, ok := dg.disksByID[part.DiskID]
		if !ok {
			return newErrf(KindInvalid, "partition %d references unknown disk %d", part.ID, part.DiskID)
		}
		part.Disk = disk

		comp, ok := dg.compsByID[part.ParentID]
		if !ok {
			return newErrf(KindInvalid, "partition %d references unknown component %d", part.ID, part.ParentID)
		}
		comp.Parts = append(comp.Parts, part)
	}

	for _, comp := range dg.Comps {
		if uint32(len(comp.Parts)) != comp.NParts {
			return newErrf(KindInvalid, "component %d expected %d partitions, found %d",
				comp.ID, comp.NParts, len(comp.Parts))
		}

		sort.Slice(comp.Parts, func(i, j int) bool {
			return comp.Parts[i].ColumnIdx < comp.Parts[j].ColumnIdx
		})
		if err := checkNoDuplicateColumns(comp); err != nil {
			return err
		}

		vol, ok := dg.volsByID[comp.ParentID]
		if !ok {
			return newErrf(KindInvalid, "component %d references unknown volume %d", comp.ID, comp.ParentID)
		}
		vol.Comps = append(vol.Comps, comp)
	}

	for _, vol := range dg.Vols {
		if uint32(len(vol.Comps)) != vol.NComps {
			return newErrf(KindInvalid, "volume %d expected %d components, found %d",
				vol.ID, vol.NComps, len(vol.Comps))
		}
		vol.DGName = dg.Name
	}

	for _, disk := range dg.Disks {
		disk.DGName = dg.Name
	}

	return nil
}

func checkNoDuplicateColumns(comp *Component) error {
	seen := make(map[uint32]bool, len(comp.Parts))
	for _, p := range comp.Parts {
		if seen[p.ColumnIdx] {
			return newErrf(KindInvalid, "component %d has duplicate column index %d", comp.ID, p.ColumnIdx)
		}
		seen[p.ColumnIdx] = true
	}
	return nil
}

// stampDevice fills in the device path and data/metadata extents of the
// Disk record in dg whose GUID matches ph's disk GUID — the disk that dev
// was just read from. A disk referenced by other disks' partitions but not
// yet observed keeps an empty Device.
func stampDevice(dg *DiskGroup, ph *privhead, dev sector.Device) error {
	diskGUID, err := parseASCIIGUID(ph.diskGUID)
	if err != nil {
		return err
	}

	disk := dg.DiskByGUID(diskGUID)
	if disk == nil {
		logger.Get().Warning(fmt.Sprintf(
			"disk_group=%s device=%s: disk does not belong to this disk group's topology, ignoring",
			dg.Name, dev.Path()))
		return nil
	}

	disk.Device = dev.Path()
	disk.DataStart = ph.logicalDiskStart
	disk.DataSize = ph.logicalDiskSize
	disk.MetadataStart = ph.ldmConfigStart
	disk.MetadataSize = ph.ldmConfigSize
	return nil
}
