package ldm

// VolumeType discriminates the two record-level volume shapes that appear
// on disk; the DM emitter further distinguishes Gen volumes by their
// single child component's shape (Spanned, Striped, or >1 component ⇒
// mirrored).
type VolumeType uint8

const (
	VolumeTypeGen   VolumeType = 3
	VolumeTypeRaid5 VolumeType = 4
)

// ComponentType discriminates how a component's partitions compose.
type ComponentType uint8

const (
	ComponentTypeStriped ComponentType = 1
	ComponentTypeSpanned ComponentType = 2
	ComponentTypeRaid    ComponentType = 3
)

// Disk is a physical disk belonging to a DiskGroup. The device fields are
// populated only once this physical disk has actually been observed via
// Add; a Disk referenced by a partition but never added has an empty
// Device.
type Disk struct {
	ID     uint32
	Name   string
	GUID   GUID
	DGName string

	Device        string
	DataStart     uint64 // sectors
	DataSize      uint64
	MetadataStart uint64
	MetadataSize  uint64
}

// Partition references exactly one Disk and belongs to exactly one
// Component.
type Partition struct {
	ID         uint32
	Name       string
	ParentID   uint32 // component id
	DiskID     uint32
	Start      uint64 // sectors, on disk
	Size       uint64 // sectors
	VolOffset  uint64 // sectors, within the owning volume
	ColumnIdx  uint32

	Disk *Disk
}

// Component groups ≥1 Partition, ordered by column index, and belongs to
// exactly one Volume.
type Component struct {
	ID         uint32
	Name       string
	ParentID   uint32 // volume id
	Type       ComponentType
	NParts     uint32
	StripeSize uint64
	NColumns   uint32

	Parts []*Partition
}

// Volume groups ≥1 Component.
type Volume struct {
	ID          uint32
	Name        string
	Type        VolumeType
	Flags       uint8
	NComps      uint32
	Size        uint64 // sectors
	PartType    uint8
	ID1, ID2    string
	Size2       uint64
	Hint        string
	DGName      string

	Comps []*Component
}

// DiskGroup owns all records observed for one LDM disk-group GUID, keyed
// by id for cross-linking during assembly. Children hold non-owning
// back-references (Partition.Disk); disks never reference partitions, so
// the ownership graph is acyclic.
type DiskGroup struct {
	GUID GUID
	ID   uint32
	Name string

	CommittedSeq uint64

	NDisks uint32
	NComps uint32
	NParts uint32
	NVols  uint32

	disksByID  map[uint32]*Disk
	compsByID  map[uint32]*Component
	partsByID  map[uint32]*Partition
	volsByID   map[uint32]*Volume

	Disks []*Disk
	Comps []*Component
	Parts []*Partition
	Vols  []*Volume
}

func newDiskGroup() *DiskGroup {
	return &DiskGroup{
		disksByID: make(map[uint32]*Disk),
		compsByID: make(map[uint32]*Component),
		partsByID: make(map[uint32]*Partition),
		volsByID:  make(map[uint32]*Volume),
	}
}

// DiskByGUID returns the Disk record in this group whose GUID matches g,
// or nil if none does.
func (dg *DiskGroup) DiskByGUID(g GUID) *Disk {
	for _, d := range dg.Disks {
		if d.GUID == g {
			return d
		}
	}
	return nil
}
