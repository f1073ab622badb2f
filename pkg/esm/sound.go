package esm

// Sound is one SOUN definition pointing at a sample file.
type Sound struct {
	RecordMeta
	ID       string
	File     string
	Volume   uint8
	MinRange uint8
	MaxRange uint8
}

func (*Sound) Kind() Tag { return TagSOUN }

func decodeSound(r *Reader, flags RecordFlags) (*Sound, error) {
	s := &Sound{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			s.ID = r.ReadString()
		case subFNAM:
			s.File = r.ReadString()
		case subDATA:
			f := NewFieldReader(r.SubBytes())
			s.Volume = f.Uint8()
			s.MinRange = f.Uint8()
			s.MaxRange = f.Uint8()
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}

// Sound generator event types.
const (
	SoundGenLeftFoot uint32 = iota
	SoundGenRightFoot
	SoundGenSwimLeft
	SoundGenSwimRight
	SoundGenMoan
	SoundGenRoar
	SoundGenScream
	SoundGenLand
)

// SoundGen is one SNDG entry tying a creature event to a sound. An empty
// Creature makes the entry the default for its event type.
type SoundGen struct {
	RecordMeta
	ID       string
	Type     uint32
	Creature string
	Sound    string
}

func (*SoundGen) Kind() Tag { return TagSNDG }

func decodeSoundGen(r *Reader, flags RecordFlags) (*SoundGen, error) {
	sg := &SoundGen{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			sg.ID = r.ReadString()
		case subDATA:
			sg.Type = NewFieldReader(r.SubBytes()).Uint32()
		case subCNAM:
			sg.Creature = r.ReadString()
		case subSNAM:
			sg.Sound = r.ReadString()
		case subDELE:
			sg.Deleted = true
		}
		r.SkipSubrecord()
	}
	return sg, nil
}
