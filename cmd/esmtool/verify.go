package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/Faultbox/resdayn/internal/data"
	"github.com/Faultbox/resdayn/internal/vfs"
	"github.com/Faultbox/resdayn/pkg/esm"
)

// cmdVerify loads the given files, then cross-checks what they describe:
// every placed reference must name a known record, every teleport door a
// known cell, and, when a data directory or archives are given, every
// model path an asset that exists.
func cmdVerify(args []string) {
	fs := flag.NewFlagSet("verify", flag.ExitOnError)
	dataDir := fs.String("data", "", "Data Files directory for the asset check")
	archives := fs.String("archives", "", "Comma-separated BSA archives for the asset check")
	limit := fs.Int("n", 20, "Report at most N problems per check (0 = all)")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	l := loadStore(fs.Args())
	s := l.Store()
	stats := l.Stats()

	fmt.Printf("Loaded %d files, %d records in %s\n",
		len(stats.Files), stats.Records, stats.Elapsed.Round(time.Millisecond))
	fmt.Printf("  %d inserted, %d deletions, %d of unknown kind\n",
		stats.Inserted, stats.Deleted, stats.Unknown)

	problems := 0
	shown := 0
	report := func(format string, args ...any) {
		problems++
		if *limit == 0 || shown < *limit {
			fmt.Printf("  "+format+"\n", args...)
			shown++
		}
	}

	// Exterior cells carry display names too; doors teleport to either.
	cellNames := make(map[string]bool)
	for _, c := range s.Cells() {
		if c.Name != "" {
			cellNames[strings.ToLower(c.Name)] = true
		}
	}

	fmt.Println("\nChecking placed references:")
	shown = 0
	before := problems
	for _, c := range s.Cells() {
		for _, ref := range c.Refs {
			if ref.Deleted || ref.ID == "" {
				continue
			}
			if _, _, ok := s.Any(ref.ID); !ok {
				report("unresolved reference %q in %s", ref.ID, cellLabel(c))
			}
			if ref.Dest != nil && ref.Dest.Cell != "" && !cellNames[strings.ToLower(ref.Dest.Cell)] {
				report("door %q in %s leads to unknown cell %q", ref.ID, cellLabel(c), ref.Dest.Cell)
			}
		}
	}
	if problems == before {
		fmt.Println("  ok")
	}

	fmt.Println("\nChecking leveled lists:")
	shown = 0
	before = problems
	s.Each(func(e data.Entry) {
		var entries []esm.LeveledEntry
		switch t := e.Record.(type) {
		case *esm.LeveledItem:
			entries = t.Entries
		case *esm.LeveledCreature:
			entries = t.Entries
		default:
			return
		}
		for _, le := range entries {
			if _, _, ok := s.Any(le.ID); !ok {
				report("list %q names unknown record %q", e.ID, le.ID)
			}
		}
	})
	if problems == before {
		fmt.Println("  ok")
	}

	if *dataDir != "" || *archives != "" {
		m := vfs.NewManager(*dataDir)
		defer m.Close()
		for _, a := range strings.Split(*archives, ",") {
			if a = strings.TrimSpace(a); a == "" {
				continue
			}
			if err := m.AddArchive(a); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}

		fmt.Println("\nChecking model paths:")
		shown = 0
		before = problems
		s.Each(func(e data.Entry) {
			model := modelOf(e.Record)
			if model == "" {
				return
			}
			if !m.Exists("meshes\\" + model) {
				report("%s %q model %q not found", e.Tag, e.ID, model)
			}
		})
		if problems == before {
			fmt.Println("  ok")
		}
	}

	if problems > 0 {
		fmt.Printf("\n%d problems found\n", problems)
		os.Exit(1)
	}
	fmt.Println("\nNo problems found")
}

// modelOf returns the mesh path a record renders with, if its kind has one.
func modelOf(rec esm.Record) string {
	switch t := rec.(type) {
	case *esm.Static:
		return t.Model
	case *esm.Door:
		return t.Model
	case *esm.Activator:
		return t.Model
	case *esm.Container:
		return t.Model
	case *esm.Light:
		return t.Model
	case *esm.NPC:
		return t.Model
	case *esm.Creature:
		return t.Model
	case *esm.BodyPart:
		return t.Model
	case *esm.Weapon:
		return t.Model
	case *esm.Armor:
		return t.Model
	case *esm.Clothing:
		return t.Model
	case *esm.MiscItem:
		return t.Model
	case *esm.Book:
		return t.Model
	case *esm.Ingredient:
		return t.Model
	case *esm.Potion:
		return t.Model
	case *esm.Apparatus:
		return t.Model
	case *esm.Lockpick:
		return t.Model
	case *esm.Probe:
		return t.Model
	case *esm.RepairItem:
		return t.Model
	default:
		return ""
	}
}
