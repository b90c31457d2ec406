// Package ldm reconstructs Windows LDM (Logical Disk Manager) disk-group
// topology from one or more block devices and emits Linux device-mapper
// table text for the resulting volumes.
package ldm

import (
	"github.com/aarsakian/go-ldm/logger"
	"github.com/aarsakian/go-ldm/sector"
)

// Library is the in-memory set of disk groups assembled so far. The zero
// value is ready to use.
type Library struct {
	groups []*DiskGroup
}

// DiskGroups returns every disk group assembled so far.
func (l *Library) DiskGroups() []*DiskGroup {
	return l.groups
}

func (l *Library) findByGUID(g GUID) *DiskGroup {
	for _, dg := range l.groups {
		if dg.GUID == g {
			return dg
		}
	}
	return nil
}

// Add reads dev's private header, config region, and VMDB, then either
// installs a freshly assembled disk group (if this is the first disk seen
// for its GUID) or verifies consistency and refreshes device fields on an
// existing one (§4.9). The caller owns dev and is responsible for closing
// it on every return path.
func (l *Library) Add(dev sector.Device) error {
	ph, config, v, err := parseDisk(dev)
	if err != nil {
		logger.Get().Error(err)
		return err
	}

	dgGUID, err := parseASCIIGUID(ph.diskGroupGUID)
	if err != nil {
		return err
	}

	existing := l.findByGUID(dgGUID)
	if existing == nil {
		dg, err := assembleDiskGroup(dev, ph, config, v)
		if err != nil {
			return err
		}
		l.groups = append(l.groups, dg)
		logger.Get().Info("installed disk group " + dg.Name)
		return nil
	}

	if existing.CommittedSeq != v.committedSeq {
		return newErrf(KindInconsistent,
			"disk group %s: committed sequence %d on %s does not match stored sequence %d",
			existing.Name, v.committedSeq, dev.Path(), existing.CommittedSeq)
	}

	return stampDevice(existing, ph, dev)
}
