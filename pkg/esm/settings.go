package esm

// VarType discriminates the typed value carried by game settings and global
// variables.
type VarType uint8

const (
	VarNone VarType = iota
	VarString
	VarInt
	VarFloat
	VarShort
	VarLong
)

// GameSetting is one GMST engine tuning value. The field named by Type holds
// the value; the others stay zero.
type GameSetting struct {
	RecordMeta
	ID     string
	Type   VarType
	String string
	Int    int32
	Float  float32
}

func (*GameSetting) Kind() Tag { return TagGMST }

func decodeGameSetting(r *Reader, flags RecordFlags) (*GameSetting, error) {
	g := &GameSetting{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			g.ID = r.ReadString()
		case "STRV":
			g.Type = VarString
			g.String = r.ReadString()
		case subINTV:
			g.Type = VarInt
			g.Int = NewFieldReader(r.SubBytes()).Int32()
		case subFLTV:
			g.Type = VarFloat
			g.Float = NewFieldReader(r.SubBytes()).Float32()
		case subDELE:
			g.Deleted = true
		}
		r.SkipSubrecord()
	}
	return g, nil
}

// GlobalVariable is one GLOB script-visible variable. The stored value is
// always a float regardless of the declared type.
type GlobalVariable struct {
	RecordMeta
	ID    string
	Type  VarType
	Value float32
}

func (*GlobalVariable) Kind() Tag { return TagGLOB }

func decodeGlobalVariable(r *Reader, flags RecordFlags) (*GlobalVariable, error) {
	g := &GlobalVariable{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			g.ID = r.ReadString()
		case subFNAM:
			switch NewFieldReader(r.SubBytes()).Uint8() {
			case 's':
				g.Type = VarShort
			case 'l':
				g.Type = VarLong
			case 'f':
				g.Type = VarFloat
			}
		case subFLTV:
			g.Value = NewFieldReader(r.SubBytes()).Float32()
		case subDELE:
			g.Deleted = true
		}
		r.SkipSubrecord()
	}
	return g, nil
}
