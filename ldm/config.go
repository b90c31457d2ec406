package ldm

import "github.com/aarsakian/go-ldm/sector"

// readConfig reads the entire LDM config region declared by ph into
// memory, bounds-checked against the device's total size.
func readConfig(dev sector.Device, ph *privhead) ([]byte, error) {
	sectorSize := uint64(dev.SectorSize())
	start := ph.ldmConfigStart * sectorSize
	size := ph.ldmConfigSize * sectorSize

	deviceSize := uint64(dev.Size())
	if start > deviceSize {
		return nil, newErrf(KindInvalid, "LDM config start (%#x) is outside the device", start)
	}
	if start+size > deviceSize {
		return nil, newErrf(KindInvalid, "LDM config end (%#x) is outside the device", start+size)
	}

	config, err := dev.ReadAt(int64(start), int(size))
	if err != nil {
		return nil, wrapErr(KindIO, err, "reading LDM config region")
	}
	return config, nil
}
