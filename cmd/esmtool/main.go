// esmtool is a CLI utility for inspecting Morrowind content files.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/resdayn/internal/config"
	"github.com/Faultbox/resdayn/internal/data"
	"github.com/Faultbox/resdayn/internal/logger"
	"github.com/Faultbox/resdayn/pkg/esm"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "info":
		cmdInfo(args)
	case "list", "ls":
		cmdList(args)
	case "dump":
		cmdDump(args)
	case "cells":
		cmdCells(args)
	case "refs":
		cmdRefs(args)
	case "verify":
		cmdVerify(args)
	case "export":
		cmdExport(args)
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`esmtool - Morrowind content file utility

Usage:
  esmtool <command> [options] [files...]

Commands run against the content files named on the command line, or the
configured load order when none are given.

Commands:
  info <file.esm>                  Show file header and record counts
  list [-kind TAG] [-match S]      List records from the loaded files
  dump -id <id>                    Print one record as YAML
  cells [-match S]                 List cells with reference counts
  refs -cell <name|x,y>            List references placed in a cell
  verify [-data DIR]               Load files and cross-check references
  export -db <out.db>              Export loaded records to SQLite

Examples:
  esmtool info "Data Files/Morrowind.esm"
  esmtool list -kind WEAP Morrowind.esm
  esmtool dump -id fargoth Morrowind.esm
  esmtool refs -cell "Seyda Neen, Census and Excise Office" Morrowind.esm
  esmtool refs -cell -2,4 Morrowind.esm
  esmtool verify -data "Data Files" Morrowind.esm Tribunal.esm
  esmtool export -db world.db Morrowind.esm`)
}

// loadStore loads the named content files, falling back to the configured
// load order when none are named.
func loadStore(files []string) *data.Loader {
	if len(files) == 0 {
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		files = cfg.Data.ContentPaths()
	}
	if len(files) == 0 {
		fmt.Fprintln(os.Stderr, "No content files named and none configured")
		os.Exit(1)
	}

	l := data.NewLoader(data.NewStore())
	if err := l.LoadAll(files...); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return l
}

func initLogging(verbose bool) {
	if !verbose {
		return
	}
	if err := logger.Init(logger.DefaultOptions("debug", "")); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func cmdInfo(args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: esmtool info <file.esm>")
		os.Exit(1)
	}

	l := data.NewLoader(data.NewStore())
	header, err := l.LoadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	kind := "plugin (.esp)"
	if header.IsMaster() {
		kind = "master (.esm)"
	}

	fmt.Printf("File:        %s\n", args[0])
	fmt.Printf("Version:     %.2f\n", header.Version)
	fmt.Printf("Type:        %s\n", kind)
	fmt.Printf("Author:      %s\n", header.Author)
	fmt.Printf("Description: %s\n", strings.ReplaceAll(header.Description, "\r\n", " "))
	for _, m := range header.Masters {
		fmt.Printf("Master:      %s (%d bytes)\n", m.Name, m.Size)
	}

	stats := l.Stats()
	fmt.Printf("Records:     %d (%d claimed by header)\n", stats.Records, header.NumRecords)
	if stats.Deleted > 0 || stats.Unknown > 0 {
		fmt.Printf("             %d deletions, %d of unknown kind\n", stats.Deleted, stats.Unknown)
	}
	fmt.Println()
	fmt.Println("Records by kind:")
	for _, kc := range stats.KindCounts() {
		fmt.Printf("  %-6s %d\n", kc.Tag, kc.Count)
	}
}

func cmdList(args []string) {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	kind := fs.String("kind", "", "Only records of this kind (STAT, WEAP, NPC_, ...)")
	match := fs.String("match", "", "Only IDs containing this substring")
	limit := fs.Int("n", 0, "Limit output to N records (0 = all)")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	s := loadStore(fs.Args()).Store()
	tag := esm.Tag(strings.ToUpper(*kind))
	needle := strings.ToLower(*match)

	// Dialogue topics and start scripts live outside the unified index.
	switch tag {
	case esm.TagDIAL:
		count := 0
		for _, t := range s.Topics() {
			if needle != "" && !strings.Contains(strings.ToLower(t.Dialogue.ID), needle) {
				continue
			}
			fmt.Printf("%-40s %d entries\n", t.Dialogue.ID, len(t.Infos))
			if count++; *limit > 0 && count >= *limit {
				break
			}
		}
		return
	case esm.TagSSCR:
		for _, id := range s.StartScripts() {
			fmt.Println(id)
		}
		return
	}

	var rows []data.Entry
	s.Each(func(e data.Entry) {
		if tag != "" && e.Tag != tag {
			return
		}
		if needle != "" && !strings.Contains(strings.ToLower(e.ID), needle) {
			return
		}
		rows = append(rows, e)
	})
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].ID) < strings.ToLower(rows[j].ID)
	})

	for i, e := range rows {
		if *limit > 0 && i >= *limit {
			break
		}
		fmt.Printf("%-6s %s\n", e.Tag, e.ID)
	}
	fmt.Fprintf(os.Stderr, "\n(%d records matched)\n", len(rows))
}

func cmdDump(args []string) {
	fs := flag.NewFlagSet("dump", flag.ExitOnError)
	id := fs.String("id", "", "Record ID to dump")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	if *id == "" {
		fmt.Fprintln(os.Stderr, "Usage: esmtool dump -id <id> [files...]")
		os.Exit(1)
	}

	s := loadStore(fs.Args()).Store()

	if tag, rec, ok := s.Any(*id); ok {
		out, err := yaml.Marshal(rec)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("# %s\n%s", tag, out)
		return
	}

	// Topics are keyed by their original-case name.
	if t := s.Topic(*id); t != nil {
		out, err := yaml.Marshal(t)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("# DIAL\n%s", out)
		return
	}

	fmt.Fprintf(os.Stderr, "Record not found: %s\n", *id)
	os.Exit(1)
}

func cmdCells(args []string) {
	fs := flag.NewFlagSet("cells", flag.ExitOnError)
	match := fs.String("match", "", "Only cells whose name or region contains this substring")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	s := loadStore(fs.Args()).Store()
	needle := strings.ToLower(*match)

	interiors, exteriors := 0, 0
	for _, c := range s.Cells() {
		label := cellLabel(c)
		if needle != "" && !strings.Contains(strings.ToLower(label), needle) {
			continue
		}
		if c.IsInterior() {
			interiors++
			water := "-"
			if c.HasWater() {
				water = fmt.Sprintf("%.0f", c.WaterHeight)
			}
			fmt.Printf("interior  %-48s %5d refs  water %s\n", c.Name, len(c.Refs), water)
		} else {
			exteriors++
			fmt.Printf("exterior  %-48s %5d refs\n", label, len(c.Refs))
		}
	}
	fmt.Fprintf(os.Stderr, "\n(%d interior, %d exterior)\n", interiors, exteriors)
}

func cmdRefs(args []string) {
	fs := flag.NewFlagSet("refs", flag.ExitOnError)
	cellArg := fs.String("cell", "", "Cell name, or x,y grid for exteriors")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	if *cellArg == "" {
		fmt.Fprintln(os.Stderr, "Usage: esmtool refs -cell <name|x,y> [files...]")
		os.Exit(1)
	}

	s := loadStore(fs.Args()).Store()

	c := findCell(s, *cellArg)
	if c == nil {
		fmt.Fprintf(os.Stderr, "Cell not found: %s\n", *cellArg)
		os.Exit(1)
	}

	fmt.Printf("%s: %d references\n", cellLabel(c), len(c.Refs))
	for _, ref := range c.Refs {
		tag := esm.Tag("????")
		if t, _, ok := s.Any(ref.ID); ok {
			tag = t
		}
		extra := ""
		if ref.Count != 1 {
			extra += fmt.Sprintf("  x%d", ref.Count)
		}
		if ref.Scale != 1 {
			extra += fmt.Sprintf("  scale %.2f", ref.Scale)
		}
		if ref.Owner != "" {
			extra += "  owner " + ref.Owner
		}
		if ref.Dest != nil {
			if ref.Dest.Cell != "" {
				extra += "  -> " + ref.Dest.Cell
			} else {
				extra += "  -> exterior"
			}
		}
		if ref.Deleted {
			extra += "  (deleted)"
		}
		fmt.Printf("  [%6d] %-6s %-32s (%8.1f, %8.1f, %8.1f)%s\n",
			ref.RefNum, tag, ref.ID, ref.Pos.X, ref.Pos.Y, ref.Pos.Z, extra)
	}

	for _, mv := range c.MovedRefs {
		fmt.Printf("  [%6d] moved to (%d,%d)\n", mv.RefNum, mv.Grid.X, mv.Grid.Y)
	}
}

// findCell resolves a -cell argument: an x,y pair names an exterior cell,
// anything else an interior by name.
func findCell(s *data.Store, arg string) *esm.Cell {
	if x, y, ok := parseGrid(arg); ok {
		return s.ExteriorCell(x, y)
	}
	return s.InteriorCell(arg)
}

func parseGrid(arg string) (int32, int32, bool) {
	parts := strings.Split(arg, ",")
	if len(parts) != 2 {
		return 0, 0, false
	}
	x, errX := strconv.ParseInt(strings.TrimSpace(parts[0]), 10, 32)
	y, errY := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 32)
	if errX != nil || errY != nil {
		return 0, 0, false
	}
	return int32(x), int32(y), true
}

func cellLabel(c *esm.Cell) string {
	if c.IsInterior() {
		return c.Name
	}
	label := fmt.Sprintf("(%d,%d)", c.Grid.X, c.Grid.Y)
	switch {
	case c.Region != "":
		label += " " + c.Region
	case c.Name != "":
		label += " " + c.Name
	}
	return label
}
