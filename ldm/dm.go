package ldm

import (
	"fmt"

	"github.com/aarsakian/go-ldm/logger"
)

// DMTable is one Linux device-mapper table: a target name and its
// multi-line table body. GenerateDMTables orders its output so that a
// table's dependencies appear before their consumers.
type DMTable struct {
	Name string
	Body string
}

// GenerateDMTables renders the DM tables needed to expose vol as a block
// device, per §4.10's volume-shape rules.
func GenerateDMTables(vol *Volume) ([]DMTable, error) {
	switch vol.Type {
	case VolumeTypeGen:
		if len(vol.Comps) > 1 {
			return generateMirrored(vol)
		}
		if len(vol.Comps) == 0 {
			return nil, newErrf(KindInvalid, "volume %s has no components", vol.Name)
		}

		comp := vol.Comps[0]
		switch comp.Type {
		case ComponentTypeSpanned:
			return generateSpanned(vol, comp)
		case ComponentTypeStriped:
			return generateStriped(vol, comp)
		default:
			return nil, newErr(KindNotSupported,
				"unsupported configuration: volume is type Gen, component is neither Spanned nor Striped")
		}

	case VolumeTypeRaid5:
		return generateRaid5(vol)

	default:
		return nil, newErrf(KindNotSupported, "unsupported volume type %d", vol.Type)
	}
}

// generatePartitionTable renders the per-partition linear table a
// volume's mirror/raid5 table references as a child. Spanned and striped
// tables name each partition's device directly and use no child table.
func generatePartitionTable(dgName string, part *Partition) (DMTable, error) {
	disk := part.Disk
	if disk.Device == "" {
		return DMTable{}, newErrf(KindMissingDisk,
			"disk %s required by partition %s is missing", disk.Name, part.Name)
	}

	return DMTable{
		Name: dmTableName(dgName, part.Name),
		Body: fmt.Sprintf("0 %d linear %s %d\n",
			part.Size, disk.Device, disk.DataStart+part.Start),
	}, nil
}

func generateSpanned(vol *Volume, comp *Component) ([]DMTable, error) {
	var pos uint64
	body := ""

	for _, part := range comp.Parts {
		disk := part.Disk
		if disk.Device == "" {
			return nil, newErrf(KindMissingDisk,
				"disk %s required by spanned volume %s is missing", disk.Name, vol.Name)
		}

		if pos != part.VolOffset {
			return nil, newErr(KindInvalid,
				"partition volume offset does not match sizes of preceding partitions")
		}

		body += fmt.Sprintf("%d %d linear %s %d\n",
			pos, pos+part.Size, disk.Device, disk.DataStart+part.Start)
		pos += part.Size
	}

	return []DMTable{{Name: dmTableName(vol.DGName, vol.Name), Body: body}}, nil
}

func generateStriped(vol *Volume, comp *Component) ([]DMTable, error) {
	body := fmt.Sprintf("0 %d striped %d %d", vol.Size, comp.NColumns, comp.StripeSize)

	for _, part := range comp.Parts {
		disk := part.Disk
		if disk.Device == "" {
			return nil, newErrf(KindMissingDisk,
				"disk %s required by striped volume %s is missing", disk.Name, vol.Name)
		}
		body += fmt.Sprintf(" %s %d", disk.Device, disk.DataStart+part.Start)
	}
	body += "\n"

	return []DMTable{{Name: dmTableName(vol.DGName, vol.Name), Body: body}}, nil
}

func generateMirrored(vol *Volume) ([]DMTable, error) {
	var children []DMTable
	body := fmt.Sprintf("0 %d raid raid1 1 128 %d", vol.Size, len(vol.Comps))

	found := 0
	for _, comp := range vol.Comps {
		if comp.Type != ComponentTypeSpanned || len(comp.Parts) != 1 {
			return nil, newErr(KindNotSupported,
				"unsupported configuration: mirrored volume must contain only simple partitions")
		}

		child, err := generatePartitionTable(vol.DGName, comp.Parts[0])
		if err != nil {
			if IsKind(err, KindMissingDisk) {
				logger.Get().Warning(fmt.Sprintf(
					"disk_group=%s volume=%s device=%s: missing disk, degrading mirror leg to -",
					vol.DGName, vol.Name, comp.Parts[0].Disk.Name))
				body += " - -"
				continue
			}
			return nil, err
		}

		children = append(children, child)
		found++
		body += " - /dev/mapper/" + child.Name
	}

	if found == 0 {
		return nil, newErr(KindMissingDisk, "mirrored volume is missing all components")
	}
	body += "\n"

	mirror := DMTable{Name: dmTableName(vol.DGName, vol.Name), Body: body}
	return append(children, mirror), nil
}

func generateRaid5(vol *Volume) ([]DMTable, error) {
	if len(vol.Comps) != 1 {
		return nil, newErr(KindNotSupported,
			"unsupported configuration: volume type Raid5 should have a single child component")
	}
	comp := vol.Comps[0]
	if comp.Type != ComponentTypeRaid {
		return nil, newErr(KindNotSupported,
			"unsupported configuration: child component of Raid5 volume must be of type Raid")
	}

	var children []DMTable
	body := fmt.Sprintf("0 %d raid raid5_ls 1 %d %d", vol.Size, comp.StripeSize, comp.NColumns)

	found := 0
	for _, part := range comp.Parts {
		child, err := generatePartitionTable(vol.DGName, part)
		if err != nil {
			if IsKind(err, KindMissingDisk) {
				logger.Get().Warning(fmt.Sprintf(
					"disk_group=%s volume=%s device=%s: missing disk, degrading RAID5 column to -",
					vol.DGName, vol.Name, part.Disk.Name))
				body += " - -"
				continue
			}
			return nil, err
		}

		children = append(children, child)
		found++
		body += " - /dev/mapper/" + child.Name
	}

	if found < int(comp.NColumns)-1 {
		return nil, newErr(KindMissingDisk, "RAID5 volume is missing more than 1 component")
	}
	body += "\n"

	raid5 := DMTable{Name: dmTableName(vol.DGName, vol.Name), Body: body}
	return append(children, raid5), nil
}
