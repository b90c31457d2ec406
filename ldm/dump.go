package ldm

import (
	"fmt"

	"github.com/aarsakian/go-ldm/logger"
)

// Dump logs the full assembled topology of dg, one Info line per field,
// mirroring the reference implementation's own inspection dump.
func (dg *DiskGroup) Dump() {
	log := logger.Get()

	log.Info(fmt.Sprintf("GUID: %s", dg.GUID))
	log.Info(fmt.Sprintf("ID: %d", dg.ID))
	log.Info(fmt.Sprintf("Name: %s", dg.Name))
	log.Info(fmt.Sprintf("Disks: %d", dg.NDisks))
	log.Info(fmt.Sprintf("Components: %d", dg.NComps))
	log.Info(fmt.Sprintf("Partitions: %d", dg.NParts))
	log.Info(fmt.Sprintf("Volumes: %d", dg.NVols))

	for _, vol := range dg.Vols {
		vol.dump(log)
	}
}

func (vol *Volume) dump(log logger.Logger) {
	var volType string
	switch vol.Type {
	case VolumeTypeGen:
		volType = "gen"
	case VolumeTypeRaid5:
		volType = "raid5"
	default:
		volType = "unknown"
	}

	log.Info(fmt.Sprintf("Volume: %s", vol.Name))
	log.Info(fmt.Sprintf("  ID: %d", vol.ID))
	log.Info(fmt.Sprintf("  Type: %s", volType))
	log.Info(fmt.Sprintf("  Size: %d", vol.Size))
	log.Info(fmt.Sprintf("  Partition type: %d", vol.PartType))
	log.Info(fmt.Sprintf("  Flags: %d", vol.Flags))
	if vol.ID1 != "" {
		log.Info(fmt.Sprintf("  ID1: %s", vol.ID1))
	}
	if vol.ID2 != "" {
		log.Info(fmt.Sprintf("  ID2: %s", vol.ID2))
	}
	if vol.Size2 > 0 {
		log.Info(fmt.Sprintf("  Size2: %d", vol.Size2))
	}
	if vol.Hint != "" {
		log.Info(fmt.Sprintf("  Drive Hint: %s", vol.Hint))
	}

	for _, comp := range vol.Comps {
		comp.dump(log)
	}
}

func (comp *Component) dump(log logger.Logger) {
	var compType string
	switch comp.Type {
	case ComponentTypeStriped:
		compType = "STRIPED"
	case ComponentTypeSpanned:
		compType = "SPANNED"
	case ComponentTypeRaid:
		compType = "RAID"
	}

	log.Info(fmt.Sprintf("  Component: %s", comp.Name))
	log.Info(fmt.Sprintf("    ID: %d", comp.ID))
	log.Info(fmt.Sprintf("    Type: %s", compType))
	if comp.StripeSize > 0 {
		log.Info(fmt.Sprintf("    Stripe Size: %d", comp.StripeSize))
	}
	if comp.NColumns > 0 {
		log.Info(fmt.Sprintf("    Columns: %d", comp.NColumns))
	}

	for _, part := range comp.Parts {
		part.dump(log)
	}
}

func (part *Partition) dump(log logger.Logger) {
	log.Info(fmt.Sprintf("    Partition: %s", part.Name))
	log.Info(fmt.Sprintf("      ID: %d", part.ID))
	log.Info(fmt.Sprintf("      Start: %d", part.Start))
	log.Info(fmt.Sprintf("      Size: %d", part.Size))
	log.Info(fmt.Sprintf("      Volume Offset: %d", part.VolOffset))
	log.Info(fmt.Sprintf("      Component Index: %d", part.ColumnIdx))

	disk := part.Disk
	log.Info(fmt.Sprintf("      Disk: %s", disk.Name))
	log.Info(fmt.Sprintf("        ID: %d", disk.ID))
	log.Info(fmt.Sprintf("        GUID: %s", disk.GUID))
	log.Info(fmt.Sprintf("        Device: %s", disk.Device))
	log.Info(fmt.Sprintf("        Data Start: %d", disk.DataStart))
	log.Info(fmt.Sprintf("        Data Size: %d", disk.DataSize))
	log.Info(fmt.Sprintf("        Metadata Start: %d", disk.MetadataStart))
	log.Info(fmt.Sprintf("        Metadata Size: %d", disk.MetadataSize))
}
