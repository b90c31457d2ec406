package ldm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diskWithDevice(id uint32, name, device string, dataStart uint64) *Disk {
	return &Disk{ID: id, Name: name, Device: device, DataStart: dataStart}
}

func diskMissing(id uint32, name string) *Disk {
	return &Disk{ID: id, Name: name}
}

func TestGenerateDMTablesSpannedAcrossTwoDisks(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 34)
	d1 := diskWithDevice(2, "disk1", "/dev/sdb", 34)
	p0 := &Partition{ID: 1, Name: "p0", Start: 100, Size: 500, VolOffset: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 200, Size: 300, VolOffset: 500, Disk: d1}
	comp := &Component{ID: 1, Type: ComponentTypeSpanned, NParts: 2, Parts: []*Partition{p0, p1}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 800, Comps: []*Component{comp}}

	tables, err := GenerateDMTables(vol)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "ldm_dg0_vol0", tables[0].Name)
	assert.Equal(t, "0 500 linear /dev/sda 134\n500 800 linear /dev/sdb 234\n", tables[0].Body)
}

func TestGenerateDMTablesSpannedRejectsGapBetweenPartitions(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	p0 := &Partition{ID: 1, Name: "p0", Start: 0, Size: 500, VolOffset: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 600, Size: 300, VolOffset: 999, Disk: d0}
	comp := &Component{ID: 1, Type: ComponentTypeSpanned, NParts: 2, Parts: []*Partition{p0, p1}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 800, Comps: []*Component{comp}}

	_, err := GenerateDMTables(vol)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindInvalid))
}

func TestGenerateDMTablesStripedTwoColumns(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	d1 := diskWithDevice(2, "disk1", "/dev/sdb", 0)
	p0 := &Partition{ID: 1, Name: "p0", Start: 10, ColumnIdx: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 20, ColumnIdx: 1, Disk: d1}
	comp := &Component{ID: 1, Type: ComponentTypeStriped, NParts: 2, NColumns: 2, StripeSize: 128,
		Parts: []*Partition{p0, p1}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 2000, Comps: []*Component{comp}}

	tables, err := GenerateDMTables(vol)
	require.NoError(t, err)
	require.Len(t, tables, 1)
	assert.Equal(t, "0 2000 striped 2 128 /dev/sda 10 /dev/sdb 20\n", tables[0].Body)
}

func TestGenerateDMTablesStripedFailsOnMissingDisk(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	d1 := diskMissing(2, "disk1")
	p0 := &Partition{ID: 1, Name: "p0", Start: 10, ColumnIdx: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 20, ColumnIdx: 1, Disk: d1}
	comp := &Component{ID: 1, Type: ComponentTypeStriped, NParts: 2, NColumns: 2, StripeSize: 128,
		Parts: []*Partition{p0, p1}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 2000, Comps: []*Component{comp}}

	_, err := GenerateDMTables(vol)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingDisk))
}

func mirroredLeg(id uint32, part *Partition) *Component {
	return &Component{ID: id, Type: ComponentTypeSpanned, NParts: 1, Parts: []*Partition{part}}
}

func TestGenerateDMTablesMirroredWithMissingLegDegrades(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	missing := diskMissing(2, "disk1")

	p0 := &Partition{ID: 1, Name: "p0", Start: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 0, Disk: missing}

	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 1000,
		Comps: []*Component{mirroredLeg(1, p0), mirroredLeg(2, p1)}}

	tables, err := GenerateDMTables(vol)
	require.NoError(t, err)
	require.Len(t, tables, 2) // one surviving leg's linear table + the raid1 table

	mirror := tables[len(tables)-1]
	assert.Equal(t, "ldm_dg0_vol0", mirror.Name)
	assert.Contains(t, mirror.Body, "raid raid1 1 128 2")
	assert.Contains(t, mirror.Body, " - -")
	assert.Contains(t, mirror.Body, " - /dev/mapper/ldm_dg0_p0")
}

func TestGenerateDMTablesMirroredFailsWhenAllLegsMissing(t *testing.T) {
	p0 := &Partition{ID: 1, Name: "p0", Start: 0, Disk: diskMissing(1, "disk0")}
	p1 := &Partition{ID: 2, Name: "p1", Start: 0, Disk: diskMissing(2, "disk1")}

	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Size: 1000,
		Comps: []*Component{mirroredLeg(1, p0), mirroredLeg(2, p1)}}

	_, err := GenerateDMTables(vol)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingDisk))
}

func TestGenerateDMTablesRaid5WithEveryDiskPresent(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	d1 := diskWithDevice(2, "disk1", "/dev/sdb", 0)
	d2 := diskWithDevice(3, "disk2", "/dev/sdc", 0)

	p0 := &Partition{ID: 1, Name: "p0", Start: 10, ColumnIdx: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 20, ColumnIdx: 1, Disk: d1}
	p2 := &Partition{ID: 3, Name: "p2", Start: 30, ColumnIdx: 2, Disk: d2}

	comp := &Component{ID: 1, Type: ComponentTypeRaid, NParts: 3, NColumns: 3, StripeSize: 128,
		Parts: []*Partition{p0, p1, p2}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeRaid5, Size: 3000, Comps: []*Component{comp}}

	tables, err := GenerateDMTables(vol)
	require.NoError(t, err)
	require.Len(t, tables, 4) // 3 leg linear tables + the raid5 table

	raid5 := tables[len(tables)-1]
	assert.Equal(t, "ldm_dg0_vol0", raid5.Name)
	assert.Equal(t, "0 3000 raid raid5_ls 1 128 3 - /dev/mapper/ldm_dg0_p0"+
		" - /dev/mapper/ldm_dg0_p1 - /dev/mapper/ldm_dg0_p2\n", raid5.Body)
}

func TestGenerateDMTablesRaid5ToleratesOneMissingDisk(t *testing.T) {
	d0 := diskWithDevice(1, "disk0", "/dev/sda", 0)
	d1 := diskMissing(2, "disk1")
	d2 := diskWithDevice(3, "disk2", "/dev/sdc", 0)

	p0 := &Partition{ID: 1, Name: "p0", Start: 10, ColumnIdx: 0, Disk: d0}
	p1 := &Partition{ID: 2, Name: "p1", Start: 20, ColumnIdx: 1, Disk: d1}
	p2 := &Partition{ID: 3, Name: "p2", Start: 30, ColumnIdx: 2, Disk: d2}

	comp := &Component{ID: 1, Type: ComponentTypeRaid, NParts: 3, NColumns: 3, StripeSize: 128,
		Parts: []*Partition{p0, p1, p2}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeRaid5, Size: 3000, Comps: []*Component{comp}}

	tables, err := GenerateDMTables(vol)
	require.NoError(t, err)
	raid5 := tables[len(tables)-1]
	assert.Contains(t, raid5.Body, " - -")
}

func TestGenerateDMTablesRaid5FailsWithTwoMissingDisks(t *testing.T) {
	p0 := &Partition{ID: 1, Name: "p0", Start: 10, ColumnIdx: 0, Disk: diskMissing(1, "disk0")}
	p1 := &Partition{ID: 2, Name: "p1", Start: 20, ColumnIdx: 1, Disk: diskMissing(2, "disk1")}
	p2 := &Partition{ID: 3, Name: "p2", Start: 30, ColumnIdx: 2, Disk: diskWithDevice(3, "disk2", "/dev/sdc", 0)}

	comp := &Component{ID: 1, Type: ComponentTypeRaid, NParts: 3, NColumns: 3, StripeSize: 128,
		Parts: []*Partition{p0, p1, p2}}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeRaid5, Size: 3000, Comps: []*Component{comp}}

	_, err := GenerateDMTables(vol)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindMissingDisk))
}

func TestGenerateDMTablesUnsupportedComponentShape(t *testing.T) {
	comp := &Component{ID: 1, Type: ComponentTypeRaid}
	vol := &Volume{ID: 1, Name: "vol0", DGName: "dg0", Type: VolumeTypeGen, Comps: []*Component{comp}}

	_, err := GenerateDMTables(vol)
	require.Error(t, err)
	assert.True(t, IsKind(err, KindNotSupported))
}
