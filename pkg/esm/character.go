package esm

// Specialization values used by classes and skills.
const (
	SpecCombat uint32 = iota
	SpecMagic
	SpecStealth
)

// Class is one CLAS character class definition.
type Class struct {
	RecordMeta
	ID             string
	Name           string
	Attributes     [2]uint32
	Specialization uint32
	Skills         [5][2]uint32 // minor/major skill ID pairs
	Playable       bool
	Services       uint32 // barter and service mask for NPCs of this class
	Description    string
}

func (*Class) Kind() Tag { return TagCLAS }

func decodeClass(r *Reader, flags RecordFlags) (*Class, error) {
	c := &Class{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			c.ID = r.ReadString()
		case subFNAM:
			c.Name = r.ReadString()
		case "CLDT":
			f := NewFieldReader(r.SubBytes())
			c.Attributes[0] = f.Uint32()
			c.Attributes[1] = f.Uint32()
			c.Specialization = f.Uint32()
			for i := range c.Skills {
				c.Skills[i][0] = f.Uint32()
				c.Skills[i][1] = f.Uint32()
			}
			c.Playable = f.Uint32() != 0
			c.Services = f.Uint32()
		case subDESC:
			c.Description = r.ReadString()
		case subDELE:
			c.Deleted = true
		}
		r.SkipSubrecord()
	}
	return c, nil
}

// FactionRank is one rank ladder step: the stats a member needs to be
// promoted into it.
type FactionRank struct {
	Name         string
	Attributes   [2]uint32
	PrimarySkill uint32
	FavoredSkill uint32
	Reputation   uint32
}

// FactionReaction is this faction's disposition adjustment toward another.
type FactionReaction struct {
	Faction string
	Value   int32
}

// Faction is one FACT guild or great-house definition.
type Faction struct {
	RecordMeta
	ID         string
	Name       string
	Attributes [2]uint32
	Skills     [7]int32
	Hidden     bool
	Ranks      []FactionRank
	Reactions  []FactionReaction
}

func (*Faction) Kind() Tag { return TagFACT }

func decodeFaction(r *Reader, flags RecordFlags) (*Faction, error) {
	fac := &Faction{RecordMeta: RecordMeta{HeaderFlags: flags}}
	var rankNames []string
	var rankData [10]FactionRank
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
			fac.ID = r.ReadString()
		case subFNAM:
			fac.Name = r.ReadString()
		case subRNAM:
			rankNames = append(rankNames, r.ReadString())
		case "FADT":
			f := NewFieldReader(r.SubBytes())
			fac.Attributes[0] = f.Uint32()
			fac.Attributes[1] = f.Uint32()
			for i := range rankData {
				rankData[i].Attributes[0] = f.Uint32()
				rankData[i].Attributes[1] = f.Uint32()
				rankData[i].PrimarySkill = f.Uint32()
				rankData[i].FavoredSkill = f.Uint32()
				rankData[i].Reputation = f.Uint32()
			}
			for i := range fac.Skills {
				fac.Skills[i] = f.Int32()
			}
			fac.Hidden = f.Uint32() != 0
		case subANAM:
			fac.Reactions = append(fac.Reactions, FactionReaction{Faction: r.ReadString()})
		case subINTV:
			// Pairs with the preceding ANAM.
			if n := len(fac.Reactions); n > 0 {
				fac.Reactions[n-1].Value = NewFieldReader(r.SubBytes()).Int32()
			}
		case subDELE:
			fac.Deleted = true
		}
		r.SkipSubrecord()
	}
	// The ladder has ten fixed slots; only the named ones are real ranks.
	for i, name := range rankNames {
		rank := FactionRank{Name: name}
		if i < len(rankData) {
			rank = rankData[i]
			rank.Name = name
		}
		fac.Ranks = append(fac.Ranks, rank)
	}
	return fac, nil
}

// SkillBonus is one racial skill adjustment.
type SkillBonus struct {
	Skill int32
	Bonus int32
}

// Race is one RACE definition.
type Race struct {
	RecordMeta
	ID           string
	Name         string
	SkillBonuses [7]SkillBonus
	Attributes   [8][2]uint32 // indexed by attribute, then male/female
	Height       [2]float32   // male, female
	Weight       [2]float32
	Playable     bool
	Beast        bool
	Spells       []string
	Description  string
}

func (*Race) Kind() Tag { return TagRACE }

func decodeRace(r *Reader, flags RecordFlags) (*Race, error) {
	rc := &Race{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			rc.ID = r.ReadString()
		case subFNAM:
			rc.Name = r.ReadString()
		case "RADT":
			f := NewFieldReader(r.SubBytes())
			for i := range rc.SkillBonuses {
				rc.SkillBonuses[i].Skill = f.Int32()
				rc.SkillBonuses[i].Bonus = f.Int32()
			}
			for i := range rc.Attributes {
				rc.Attributes[i][0] = f.Uint32()
				rc.Attributes[i][1] = f.Uint32()
			}
			rc.Height[0] = f.Float32()
			rc.Height[1] = f.Float32()
			rc.Weight[0] = f.Float32()
			rc.Weight[1] = f.Float32()
			raceFlags := f.Uint32()
			rc.Playable = raceFlags&0x1 != 0
			rc.Beast = raceFlags&0x2 != 0
		case subNPCS:
			rc.Spells = append(rc.Spells, NewFieldReader(r.SubBytes()).String(32))
		case subDESC:
			rc.Description = r.ReadString()
		case subDELE:
			rc.Deleted = true
		}
		r.SkipSubrecord()
	}
	return rc, nil
}

// BirthSign is one BSGN definition granting powers at character creation.
type BirthSign struct {
	RecordMeta
	ID          string
	Name        string
	Texture     string
	Description string
	Powers      []string
}

func (*BirthSign) Kind() Tag { return TagBSGN }

func decodeBirthSign(r *Reader, flags RecordFlags) (*BirthSign, error) {
	b := &BirthSign{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			b.ID = r.ReadString()
		case subFNAM:
			b.Name = r.ReadString()
		case subTNAM:
			b.Texture = r.ReadString()
		case subDESC:
			b.Description = r.ReadString()
		case subNPCS:
			b.Powers = append(b.Powers, NewFieldReader(r.SubBytes()).String(32))
		case subDELE:
			b.Deleted = true
		}
		r.SkipSubrecord()
	}
	return b, nil
}

// Skill is one SKIL definition. Skills are keyed by a fixed numeric index
// rather than a string ID.
type Skill struct {
	RecordMeta
	Index          int32
	Attribute      int32
	Specialization uint32
	UseValues      [4]float32 // experience per skill use, by action
	Description    string
}

func (*Skill) Kind() Tag { return TagSKIL }

func decodeSkill(r *Reader, flags RecordFlags) (*Skill, error) {
	s := &Skill{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case subINDX:
			s.Index = NewFieldReader(r.SubBytes()).Int32()
		case "SKDT":
			f := NewFieldReader(r.SubBytes())
			s.Attribute = f.Int32()
			s.Specialization = f.Uint32()
			for i := range s.UseValues {
				s.UseValues[i] = f.Float32()
			}
		case subDESC:
			s.Description = r.ReadString()
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}
