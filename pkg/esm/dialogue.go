package esm

// Dialogue types carried in DIAL DATA.
const (
	DialogueTopic uint8 = iota
	DialogueVoice
	DialogueGreeting
	DialoguePersuasion
	DialogueJournal
)

// Dialogue is one DIAL record: a topic, journal, or voice group header. The
// INFO records that follow it in the file belong to it. Topic names keep
// their original case; scripts compare them case-insensitively but tooling
// displays them as written.
type Dialogue struct {
	RecordMeta
	ID   string
	Type uint8
}

func (*Dialogue) Kind() Tag { return TagDIAL }

func decodeDialogue(r *Reader, flags RecordFlags) (*Dialogue, error) {
	d := &Dialogue{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			d.ID = r.ReadString()
		case subDATA:
			d.Type = NewFieldReader(r.SubBytes()).Uint8()
		case subDELE:
			d.Deleted = true
		}
		r.SkipSubrecord()
	}
	return d, nil
}

// InfoCondition is one SCVR filter row with its INTV or FLTV operand. Rule
// keeps the packed selector string as stored: slot digit, variable type,
// two-digit function, comparison operator, then the variable name.
type InfoCondition struct {
	Rule    string
	Int     int32
	Float   float32
	IsFloat bool
}

// DialogueInfo is one INFO response entry. Prev and Next link entries into
// the topic's order; Topic names the owning DIAL group and is filled by the
// loader from record order rather than from the payload.
type DialogueInfo struct {
	RecordMeta
	ID    string
	Prev  string
	Next  string
	Topic string

	Type        uint32
	Disposition int32
	Rank        int8 // -1 when any rank matches
	Gender      int8 // -1 any, 0 male, 1 female
	PCRank      int8

	Actor     string
	Race      string
	Class     string
	Faction   string
	Cell      string
	PCFaction string

	Sound      string
	Response   string
	Conditions []InfoCondition
	Result     string

	QuestName     bool
	QuestFinished bool
	QuestRestart  bool
}

func (*DialogueInfo) Kind() Tag { return TagINFO }

func decodeDialogueInfo(r *Reader, flags RecordFlags) (*DialogueInfo, error) {
	in := &DialogueInfo{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case "INAM":
			in.ID = r.ReadString()
		case "PNAM":
			in.Prev = r.ReadString()
		case "NNAM":
			in.Next = r.ReadString()
		case subDATA:
			f := NewFieldReader(r.SubBytes())
			in.Type = f.Uint32()
			in.Disposition = f.Int32()
			in.Rank = f.Int8()
			in.Gender = f.Int8()
			in.PCRank = f.Int8()
		case "ONAM":
			in.Actor = r.ReadString()
		case subRNAM:
			in.Race = r.ReadString()
		case subCNAM:
			in.Class = r.ReadString()
		case subFNAM:
			in.Faction = r.ReadString()
		case subANAM:
			in.Cell = r.ReadString()
		case subDNAM:
			in.PCFaction = r.ReadString()
		case subSNAM:
			in.Sound = r.ReadString()
		case subNAME:
			in.Response = r.ReadString()
		case "SCVR":
			in.Conditions = append(in.Conditions, InfoCondition{Rule: r.ReadString()})
		case subINTV:
			if n := len(in.Conditions); n > 0 {
				in.Conditions[n-1].Int = NewFieldReader(r.SubBytes()).Int32()
			}
		case subFLTV:
			if n := len(in.Conditions); n > 0 {
				in.Conditions[n-1].Float = NewFieldReader(r.SubBytes()).Float32()
				in.Conditions[n-1].IsFloat = true
			}
		case subBNAM:
			in.Result = r.ReadString()
		case "QSTN":
			in.QuestName = NewFieldReader(r.SubBytes()).Uint8() != 0
		case "QSTF":
			in.QuestFinished = NewFieldReader(r.SubBytes()).Uint8() != 0
		case "QSTR":
			in.QuestRestart = NewFieldReader(r.SubBytes()).Uint8() != 0
		case subDELE:
			in.Deleted = true
		}
		r.SkipSubrecord()
	}
	return in, nil
}
