package esm

import (
	"bytes"

	"github.com/Faultbox/resdayn/pkg/encoding"
)

// Script is one SCPT record. The ID comes from the fixed name field inside
// SCHD rather than from a NAME subrecord.
type Script struct {
	RecordMeta
	ID        string
	NumShorts uint32
	NumLongs  uint32
	NumFloats uint32

	// Sizes the compiler recorded for the data segment and local variables.
	DataSize     uint32
	LocalVarSize uint32

	Variables []string
	Bytecode  []byte
	Text      string
}

func (*Script) Kind() Tag { return TagSCPT }

func decodeScript(r *Reader, flags RecordFlags) (*Script, error) {
	s := &Script{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case "SCHD":
			f := NewFieldReader(r.SubBytes())
			s.ID = f.String(32)
			s.NumShorts = f.Uint32()
			s.NumLongs = f.Uint32()
			s.NumFloats = f.Uint32()
			s.DataSize = f.Uint32()
			s.LocalVarSize = f.Uint32()
		case "SCVR":
			// Local variable names, null-separated in declaration order.
			for _, name := range bytes.Split(r.SubBytes(), []byte{0}) {
				if len(name) > 0 {
					s.Variables = append(s.Variables, encoding.Win1252ToUTF8(name))
				}
			}
		case "SCDT":
			s.Bytecode = r.SubBytes()
		case "SCTX":
			s.Text = r.ReadString()
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}

// StartScript is one SSCR record naming a script the engine launches on a
// new game. The script ID lives in DATA; NAME only carries an ordering
// number the construction set generated.
type StartScript struct {
	RecordMeta
	ID    string
	Index string
}

func (*StartScript) Kind() Tag { return TagSSCR }

func decodeStartScript(r *Reader, flags RecordFlags) (*StartScript, error) {
	s := &StartScript{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case subNAME:
			s.Index = r.ReadString()
		case subDATA:
			s.ID = r.ReadString()
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}
