// Package sector provides positional, length-exact reads against an opened
// block device, forensic image, or VMDK sparse disk, abstracting away where
// the bytes backing an LDM disk group actually live.
package sector

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// DefaultSectorSize is used when a device's logical sector size cannot be
// determined.
const DefaultSectorSize = 512

// Device is a read-only, positional view of a block device's bytes. All
// offsets and lengths are in bytes, not sectors.
type Device interface {
	// ReadAt reads exactly length bytes starting at byte offset off. A short
	// read (device ends before length bytes are available) is reported as
	// an error, never as a short slice.
	ReadAt(off int64, length int) ([]byte, error)

	// SectorSize returns the device's logical sector size in bytes.
	SectorSize() uint32

	// Size returns the device's total size in bytes.
	Size() int64

	// Path returns the path the device was opened from, for labeling disks
	// once they're matched into a disk group.
	Path() string

	Close() error
}

// Open opens path and selects a backend by file extension, the way the
// teacher's img.GetHandler/reader_image.go/reader_vmdk.go choose between a
// raw device, an EWF evidence file, and a VMDK sparse disk.
func Open(path string) (Device, error) {
	switch strings.ToLower(filepathExt(path)) {
	case ".e01":
		return openEWF(path)
	case ".vmdk":
		return openVMDK(path)
	default:
		return openBlockDevice(path)
	}
}

func filepathExt(p string) string {
	return path.Ext(p)
}

// errShortRead is returned by a backend's ReadAt when fewer bytes than
// requested were available.
var errShortRead = errors.New("short read")
