package main

import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Faultbox/resdayn/internal/data"
)

// cmdExport writes the loaded records into a SQLite database: one generic
// records table with the full JSON per record, plus relational tables for
// the things worth querying directly (cells, placed references, dialogue).
func cmdExport(args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	dbPath := fs.String("db", "", "SQLite database to write")
	verbose := fs.Bool("v", false, "Debug logging")
	fs.Parse(args)
	initLogging(*verbose)

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: esmtool export -db <out.db> [files...]")
		os.Exit(1)
	}

	l := loadStore(fs.Args())

	start := time.Now()
	rows, err := exportSQLite(*dbPath, l)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Exported %d rows to %s in %s\n", rows, *dbPath, time.Since(start).Round(time.Millisecond))
}

func exportSQLite(path string, l *data.Loader) (int, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return 0, err
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	// One-shot bulk write into a fresh file; if it fails the file is
	// rebuilt, so durability pragmas buy nothing here.
	pragmas := []string{
		"PRAGMA journal_mode=MEMORY;",
		"PRAGMA synchronous=OFF;",
		"PRAGMA temp_store=MEMORY;",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return 0, err
		}
	}

	if err := initSchema(db); err != nil {
		return 0, err
	}

	tx, err := db.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	rows := 0
	count := func(res error) error {
		if res == nil {
			rows++
		}
		return res
	}

	if _, err := tx.Exec(`INSERT OR REPLACE INTO meta(key,value) VALUES('schema_version','1')`); err != nil {
		return 0, err
	}
	for _, f := range l.Stats().Files {
		if _, err := tx.Exec(`INSERT INTO files(name) VALUES(?)`, f); err != nil {
			return 0, err
		}
		rows++
	}

	insertRecord, err := tx.Prepare(`INSERT OR REPLACE INTO records(kind,id,raw_json) VALUES(?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer insertRecord.Close()
	insertCell, err := tx.Prepare(`INSERT INTO cells(name,x,y,interior,region,water_height,ref_count) VALUES(?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer insertCell.Close()
	insertRef, err := tx.Prepare(`INSERT INTO refs(cell,refnum,object_id,x,y,z,scale,owner,count) VALUES(?,?,?,?,?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer insertRef.Close()
	insertInfo, err := tx.Prepare(`INSERT OR REPLACE INTO dialogue(topic,pos,info_id,actor,response) VALUES(?,?,?,?,?)`)
	if err != nil {
		return 0, err
	}
	defer insertInfo.Close()

	s := l.Store()

	var eachErr error
	s.Each(func(e data.Entry) {
		if eachErr != nil {
			return
		}
		raw, err := json.Marshal(e.Record)
		if err != nil {
			eachErr = err
			return
		}
		_, err = insertRecord.Exec(string(e.Tag), e.ID, string(raw))
		eachErr = count(err)
	})
	if eachErr != nil {
		return 0, eachErr
	}

	// Skills and magic effects are keyed by index, dialogue by topic; none
	// of them appear in the unified index.
	for _, sk := range s.Skills() {
		raw, err := json.Marshal(sk)
		if err != nil {
			return 0, err
		}
		if err := count(exec(insertRecord, "SKIL", fmt.Sprint(sk.Index), string(raw))); err != nil {
			return 0, err
		}
	}
	for _, me := range s.MagicEffects() {
		raw, err := json.Marshal(me)
		if err != nil {
			return 0, err
		}
		if err := count(exec(insertRecord, "MGEF", fmt.Sprint(me.Index), string(raw))); err != nil {
			return 0, err
		}
	}

	for _, c := range s.Cells() {
		interior := 0
		if c.IsInterior() {
			interior = 1
		}
		label := cellLabel(c)
		if err := count(exec(insertCell, c.Name, c.Grid.X, c.Grid.Y, interior, c.Region, c.WaterHeight, len(c.Refs))); err != nil {
			return 0, err
		}
		for _, ref := range c.Refs {
			if ref.Deleted {
				continue
			}
			if err := count(exec(insertRef, label, ref.RefNum, ref.ID,
				ref.Pos.X, ref.Pos.Y, ref.Pos.Z, ref.Scale, ref.Owner, ref.Count)); err != nil {
				return 0, err
			}
		}
	}

	for _, t := range s.Topics() {
		for i, in := range t.Infos {
			if err := count(exec(insertInfo, t.Dialogue.ID, i, in.ID, in.Actor, in.Response)); err != nil {
				return 0, err
			}
		}
	}

	for i, id := range s.StartScripts() {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO start_scripts(pos,id) VALUES(?,?)`, i, id); err != nil {
			return 0, err
		}
		rows++
	}

	for _, land := range s.Lands() {
		if _, err := tx.Exec(`INSERT OR REPLACE INTO lands(x,y,min_height,max_height) VALUES(?,?,?,?)`,
			land.Grid.X, land.Grid.Y, land.MinHeight, land.MaxHeight); err != nil {
			return 0, err
		}
		rows++
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return rows, nil
}

func exec(stmt *sql.Stmt, args ...any) error {
	_, err := stmt.Exec(args...)
	return err
}

func initSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS files (
			name TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS records (
			kind TEXT NOT NULL,
			id TEXT NOT NULL,
			raw_json TEXT NOT NULL,
			PRIMARY KEY (kind, id)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_records_id ON records(id);`,
		`CREATE TABLE IF NOT EXISTS cells (
			name TEXT,
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			interior INTEGER NOT NULL,
			region TEXT,
			water_height REAL,
			ref_count INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS refs (
			cell TEXT NOT NULL,
			refnum INTEGER NOT NULL,
			object_id TEXT NOT NULL,
			x REAL NOT NULL,
			y REAL NOT NULL,
			z REAL NOT NULL,
			scale REAL NOT NULL,
			owner TEXT,
			count INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_refs_object ON refs(object_id);`,
		`CREATE TABLE IF NOT EXISTS dialogue (
			topic TEXT NOT NULL,
			pos INTEGER NOT NULL,
			info_id TEXT NOT NULL,
			actor TEXT,
			response TEXT,
			PRIMARY KEY (topic, info_id)
		);`,
		`CREATE TABLE IF NOT EXISTS start_scripts (
			pos INTEGER PRIMARY KEY,
			id TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS lands (
			x INTEGER NOT NULL,
			y INTEGER NOT NULL,
			min_height REAL NOT NULL,
			max_height REAL NOT NULL,
			PRIMARY KEY (x, y)
		);`,
	}
	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
