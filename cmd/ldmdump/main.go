// Command ldmdump is a thin demonstration caller over the ldm library: it
// adds every -disk flag to a Library and either prints the DM table text
// for each volume (-dm-tables) or dumps each assembled disk group through
// the logger, which writes it to the -logfile file only; without -logfile
// the dump produces no output.
// It is not a general-purpose CLI front-end; it exists to exercise the
// library the way the teacher's main.go exercises disk.Disk.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/aarsakian/go-ldm/ldm"
	ldmlogger "github.com/aarsakian/go-ldm/logger"
	"github.com/aarsakian/go-ldm/sector"
)

type diskFlags []string

func (d *diskFlags) String() string     { return strings.Join(*d, ",") }
func (d *diskFlags) Set(v string) error { *d = append(*d, v); return nil }

func main() {
	var disks diskFlags
	flag.Var(&disks, "disk", "path to a disk, image, or vmdk carrying LDM metadata (repeatable)")
	dmTables := flag.Bool("dm-tables", false, "print DM table text instead of dumping each disk group to -logfile")
	logfile := flag.String("logfile", "", "append diagnostic logging to this file")
	flag.Parse()

	ldmlogger.InitializeLogger(*logfile != "", *logfile)

	if len(disks) == 0 {
		log.Fatal("at least one -disk is required")
	}

	var lib ldm.Library
	for _, path := range disks {
		if err := addDisk(&lib, path); err != nil {
			log.Fatalf("adding %s: %s", path, err)
		}
	}

	for _, dg := range lib.DiskGroups() {
		if !*dmTables {
			dg.Dump()
			continue
		}

		for _, vol := range dg.Vols {
			tables, err := ldm.GenerateDMTables(vol)
			if err != nil {
				log.Fatalf("generating DM tables for volume %s: %s", vol.Name, err)
			}
			for _, t := range tables {
				fmt.Printf("%s\n%s", t.Name, t.Body)
			}
		}
	}
}

func addDisk(lib *ldm.Library, path string) error {
	dev, err := sector.Open(path)
	if err != nil {
		return err
	}
	defer dev.Close()

	return lib.Add(dev)
}
