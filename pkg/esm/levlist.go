package esm

// Leveled list flag bits.
const (
	// LeveledAllLevels widens the roll to every entry at or below the
	// player's level instead of only the highest band.
	LeveledAllLevels uint32 = 0x1
	// LeveledEachItem rerolls per spawned item rather than once per list.
	// Item lists only.
	LeveledEachItem uint32 = 0x2
)

// LeveledEntry pairs a spawnable ID with the player level that unlocks it.
type LeveledEntry struct {
	ID    string
	Level uint16
}

// LeveledItem is one LEVI random item list.
type LeveledItem struct {
	RecordMeta
	ID         string
	Flags      uint32
	ChanceNone uint8
	Entries    []LeveledEntry
}

func (*LeveledItem) Kind() Tag { return TagLEVI }

// LeveledCreature is one LEVC random creature list.
type LeveledCreature struct {
	RecordMeta
	ID         string
	Flags      uint32
	ChanceNone uint8
	Entries    []LeveledEntry
}

func (*LeveledCreature) Kind() Tag { return TagLEVC }

// decodeLeveledList parses the shared LEVI/LEVC shape. entryTag selects the
// subrecord that opens an entry: INAM for items, CNAM for creatures.
func decodeLeveledList(r *Reader, entryTag Tag) (id string, flags uint32, chance uint8, entries []LeveledEntry, deleted bool, err error) {
	for r.HasMoreSubrecords() {
		var tag Tag
		tag, err = r.ReadSubTag()
		if err != nil {
			return
		}
		if _, err = r.ReadSubHeader(); err != nil {
			return
		}
		switch tag {
		case subNAME:
			id = r.ReadString()
		case subDATA:
			flags = NewFieldReader(r.SubBytes()).Uint32()
		case "NNAM":
			chance = NewFieldReader(r.SubBytes()).Uint8()
		case subINDX:
			if entries == nil {
				entries = make([]LeveledEntry, 0, NewFieldReader(r.SubBytes()).Uint32())
			}
		case entryTag:
			entries = append(entries, LeveledEntry{ID: r.ReadString()})
		case subINTV:
			if n := len(entries); n > 0 {
				entries[n-1].Level = NewFieldReader(r.SubBytes()).Uint16()
			}
		case subDELE:
			deleted = true
		}
		r.SkipSubrecord()
	}
	return
}

func decodeLeveledItem(r *Reader, flags RecordFlags) (*LeveledItem, error) {
	id, listFlags, chance, entries, deleted, err := decodeLeveledList(r, "INAM")
	if err != nil {
		return nil, err
	}
	return &LeveledItem{
		RecordMeta: RecordMeta{HeaderFlags: flags, Deleted: deleted},
		ID:         id, Flags: listFlags, ChanceNone: chance, Entries: entries,
	}, nil
}

func decodeLeveledCreature(r *Reader, flags RecordFlags) (*LeveledCreature, error) {
	id, listFlags, chance, entries, deleted, err := decodeLeveledList(r, subCNAM)
	if err != nil {
		return nil, err
	}
	return &LeveledCreature{
		RecordMeta: RecordMeta{HeaderFlags: flags, Deleted: deleted},
		ID:         id, Flags: listFlags, ChanceNone: chance, Entries: entries,
	}, nil
}
