package sector

import (
	"path/filepath"
	"strings"

	ewfLib "github.com/aarsakian/EWF_Reader/ewf"
	"github.com/pkg/errors"
)

// ewfDevice backs Device with an EWF (.E01) forensic evidence file,
// grounded on the teacher's img/reader_image.go.
type ewfDevice struct {
	path string
	fd   ewfLib.EWF_Image
}

func openEWF(p string) (Device, error) {
	if strings.ToLower(filepath.Ext(p)) != ".e01" {
		return nil, errors.Errorf("%s: only EWF (.E01) images are supported", p)
	}

	var image ewfLib.EWF_Image
	image.ParseEvidence(evidenceSegments(p))

	return &ewfDevice{path: p, fd: image}, nil
}

// evidenceSegments returns the .E01, .E02, ... segment files belonging to
// an EWF evidence set, starting from the first segment's path.
func evidenceSegments(first string) []string {
	dir := filepath.Dir(first)
	base := strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))

	matches, err := filepath.Glob(filepath.Join(dir, base+".[Ee][0-9][0-9]"))
	if err != nil || len(matches) == 0 {
		return []string{first}
	}
	return matches
}

func (d *ewfDevice) ReadAt(off int64, length int) ([]byte, error) {
	data := d.fd.RetrieveData(off, int64(length))
	if len(data) != length {
		return nil, errors.Wrapf(errShortRead, "%s", d.path)
	}
	return data, nil
}

func (d *ewfDevice) SectorSize() uint32 { return DefaultSectorSize }

func (d *ewfDevice) Size() int64 {
	return int64(d.fd.Chuncksize) * int64(d.fd.NofChunks)
}

func (d *ewfDevice) Path() string { return d.path }

func (d *ewfDevice) Close() error { return nil }
