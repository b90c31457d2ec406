package sector

import (
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// blockDevice backs Device with a raw file descriptor, grounded on the
// teacher's img/reader_unix.go UnixReader, but using unix.Pread for
// positional reads (matching ldm.c's use of pread(2)) instead of
// seek-then-read, and returning errors instead of log.Fatal.
type blockDevice struct {
	path       string
	fd         int
	sectorSize uint32
	size       int64
}

func openBlockDevice(p string) (Device, error) {
	fd, err := unix.Open(p, unix.O_RDONLY, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s for reading", p)
	}

	d := &blockDevice{path: p, fd: fd}

	secsize, err := unix.IoctlGetInt(fd, unix.BLKSSZGET)
	if err != nil {
		d.sectorSize = DefaultSectorSize
	} else {
		d.sectorSize = uint32(secsize)
	}

	if size, err := unix.IoctlGetInt(fd, unix.BLKGETSIZE64); err == nil {
		d.size = int64(size)
	} else if fi, err := os.Stat(p); err == nil {
		d.size = fi.Size()
	}

	return d, nil
}

func (d *blockDevice) ReadAt(off int64, length int) ([]byte, error) {
	buf := make([]byte, length)
	read := 0
	for read < length {
		n, err := unix.Pread(d.fd, buf[read:], off+int64(read))
		if err != nil {
			return nil, errors.Wrapf(err, "reading from %s", d.path)
		}
		if n == 0 {
			return nil, errors.Wrapf(errShortRead, "%s", d.path)
		}
		read += n
	}
	return buf, nil
}

func (d *blockDevice) SectorSize() uint32 { return d.sectorSize }
func (d *blockDevice) Size() int64        { return d.size }
func (d *blockDevice) Path() string       { return d.path }

func (d *blockDevice) Close() error {
	return unix.Close(d.fd)
}
