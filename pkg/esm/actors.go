package esm

// Position is a world-space position with euler rotation, as stored in DATA
// and DODT blocks.
type Position struct {
	X, Y, Z          float32
	RotX, RotY, RotZ float32
}

func decodePosition(f *FieldReader) Position {
	return Position{
		X: f.Float32(), Y: f.Float32(), Z: f.Float32(),
		RotX: f.Float32(), RotY: f.Float32(), RotZ: f.Float32(),
	}
}

// InventoryItem is one NPCO entry. A negative count marks a restocking
// stack.
type InventoryItem struct {
	Count int32
	ID    string
}

func decodeInventoryItem(b []byte) InventoryItem {
	f := NewFieldReader(b)
	return InventoryItem{Count: f.Int32(), ID: f.String(32)}
}

// AIData is the AIDT behavior block shared by NPCs and creatures.
type AIData struct {
	Hello    uint8
	Fight    uint8
	Flee     uint8
	Alarm    uint8
	Services uint32
}

func decodeAIData(b []byte) AIData {
	f := NewFieldReader(b)
	ai := AIData{Hello: f.Uint8()}
	f.Skip(1)
	ai.Fight = f.Uint8()
	ai.Flee = f.Uint8()
	ai.Alarm = f.Uint8()
	f.Skip(3)
	ai.Services = f.Uint32()
	return ai
}

// AIType selects which fields of an AIPackage are meaningful.
type AIType uint8

const (
	AIWander AIType = iota
	AITravel
	AIFollow
	AIEscort
	AIActivate
)

// AIPackage is one entry in an actor's AI schedule.
type AIPackage struct {
	Type      AIType
	Distance  uint16
	Duration  uint16
	TimeOfDay uint8
	Idles     [8]uint8
	Pos       [3]float32
	Target    string
	Cell      string // follow and escort only, from the trailing CNDT
}

func decodeAIPackage(typ AIType, b []byte) AIPackage {
	f := NewFieldReader(b)
	p := AIPackage{Type: typ}
	switch typ {
	case AIWander:
		p.Distance = f.Uint16()
		p.Duration = f.Uint16()
		p.TimeOfDay = f.Uint8()
		for i := range p.Idles {
			p.Idles[i] = f.Uint8()
		}
	case AITravel:
		p.Pos[0] = f.Float32()
		p.Pos[1] = f.Float32()
		p.Pos[2] = f.Float32()
	case AIFollow, AIEscort:
		p.Pos[0] = f.Float32()
		p.Pos[1] = f.Float32()
		p.Pos[2] = f.Float32()
		p.Duration = f.Uint16()
		p.Target = f.String(32)
	case AIActivate:
		p.Target = f.String(32)
	}
	return p
}

// TravelDest is one DODT travel service destination, with the target cell
// name from the paired DNAM when the destination is interior.
type TravelDest struct {
	Pos  Position
	Cell string
}

// NPC flag bits carried in FLAG.
const (
	NPCFemale    uint32 = 0x1
	NPCEssential uint32 = 0x2
	NPCRespawn   uint32 = 0x4
	NPCAutoCalc  uint32 = 0x10
)

// NPC is one NPC_ definition. When AutoCalc is set the file stores only the
// short stat block; attributes and skills stay zero and are derived at
// runtime from class and race.
type NPC struct {
	RecordMeta
	ID      string
	Name    string
	Model   string
	Race    string
	Class   string
	Faction string
	Head    string
	Hair    string
	Script  string

	Level       int16
	Attributes  [8]uint8
	Skills      [27]uint8
	Reputation  uint8
	Health      uint16
	Mana        uint16
	Fatigue     uint16
	Disposition uint8
	FactionID   uint8
	Rank        uint8
	Gold        int32
	AutoCalc    bool

	Flags        uint32
	Inventory    []InventoryItem
	Spells       []string
	AI           AIData
	AIPackages   []AIPackage
	Destinations []TravelDest
}

func (*NPC) Kind() Tag { return TagNPC }

// Female reports the FLAG female bit.
func (n *NPC) Female() bool { return n.Flags&NPCFemale != 0 }

func decodeNPC(r *Reader, flags RecordFlags) (*NPC, error) {
	n := &NPC{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		size, err := r.ReadSubHeader()
		if err != nil {
			return nil, err
		}
		switch tag {
		case subNAME:
			n.ID = r.ReadString()
		case subFNAM:
			n.Name = r.ReadString()
		case subMODL:
			n.Model = r.ReadString()
		case subRNAM:
			n.Race = r.ReadString()
		case subCNAM:
			n.Class = r.ReadString()
		case subANAM:
			n.Faction = r.ReadString()
		case subBNAM:
			n.Head = r.ReadString()
		case subKNAM:
			n.Hair = r.ReadString()
		case subSCRI:
			n.Script = r.ReadString()
		case "NPDT":
			// The declared size, not the autocalc flag, decides the layout:
			// 12 bytes for autocalced actors, 52 for fully-specified ones.
			f := NewFieldReader(r.SubBytes())
			if size == 12 {
				n.AutoCalc = true
				n.Level = f.Int16()
				n.Disposition = f.Uint8()
				n.Reputation = f.Uint8()
				n.Rank = f.Uint8()
				f.Skip(3)
				n.Gold = f.Int32()
			} else {
				n.Level = f.Int16()
				for i := range n.Attributes {
					n.Attributes[i] = f.Uint8()
				}
				for i := range n.Skills {
					n.Skills[i] = f.Uint8()
				}
				n.Reputation = f.Uint8()
				n.Health = f.Uint16()
				n.Mana = f.Uint16()
				n.Fatigue = f.Uint16()
				n.Disposition = f.Uint8()
				n.FactionID = f.Uint8()
				n.Rank = f.Uint8()
				f.Skip(1)
				n.Gold = f.Int32()
			}
		case "FLAG":
			n.Flags = NewFieldReader(r.SubBytes()).Uint32()
		case subNPCO:
			n.Inventory = append(n.Inventory, decodeInventoryItem(r.SubBytes()))
		case subNPCS:
			n.Spells = append(n.Spells, NewFieldReader(r.SubBytes()).String(32))
		case subAIDT:
			n.AI = decodeAIData(r.SubBytes())
		case "AI_W":
			n.AIPackages = append(n.AIPackages, decodeAIPackage(AIWander, r.SubBytes()))
		case "AI_T":
			n.AIPackages = append(n.AIPackages, decodeAIPackage(AITravel, r.SubBytes()))
		case "AI_F":
			n.AIPackages = append(n.AIPackages, decodeAIPackage(AIFollow, r.SubBytes()))
		case "AI_E":
			n.AIPackages = append(n.AIPackages, decodeAIPackage(AIEscort, r.SubBytes()))
		case "AI_A":
			n.AIPackages = append(n.AIPackages, decodeAIPackage(AIActivate, r.SubBytes()))
		case "CNDT":
			if i := len(n.AIPackages); i > 0 {
				n.AIPackages[i-1].Cell = r.ReadString()
			}
		case subDODT:
			n.Destinations = append(n.Destinations, TravelDest{Pos: decodePosition(NewFieldReader(r.SubBytes()))})
		case subDNAM:
			if i := len(n.Destinations); i > 0 {
				n.Destinations[i-1].Cell = r.ReadString()
			}
		case subDELE:
			n.Deleted = true
		}
		r.SkipSubrecord()
	}
	return n, nil
}

// Creature types carried in NPDT.
const (
	CreatureNormal int32 = iota
	CreatureDaedra
	CreatureUndead
	CreatureHumanoid
)

// Creature is one CREA definition.
type Creature struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Script string
	// Original points at the creature this one was cloned from and inherits
	// sound generation from.
	Original string

	Type       int32
	Level      int32
	Attributes [8]int32
	Health     int32
	Mana       int32
	Fatigue    int32
	Soul       int32
	Combat     int32
	Magic      int32
	Stealth    int32
	Attacks    [3][2]int32 // min/max damage per attack slot
	Gold       int32

	Flags uint32
	Scale float32 // 1.0 when the file carries no XSCL

	Inventory    []InventoryItem
	Spells       []string
	AI           AIData
	AIPackages   []AIPackage
	Destinations []TravelDest
}

func (*Creature) Kind() Tag { return TagCREA }

func decodeCreature(r *Reader, flags RecordFlags) (*Creature, error) {
	c := &Creature{RecordMeta: RecordMeta{HeaderFlags: flags}, Scale: 1}
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
		case subMODL:
			c.Model = r.ReadString()
		case subFNAM:
			c.Name = r.ReadString()
		case subSCRI:
			c.Script = r.ReadString()
		case subCNAM:
			c.Original = r.ReadString()
		case "NPDT":
			f := NewFieldReader(r.SubBytes())
			c.Type = f.Int32()
			c.Level = f.Int32()
			for i := range c.Attributes {
				c.Attributes[i] = f.Int32()
			}
			c.Health = f.Int32()
			c.Mana = f.Int32()
			c.Fatigue = f.Int32()
			c.Soul = f.Int32()
			c.Combat = f.Int32()
			c.Magic = f.Int32()
			c.Stealth = f.Int32()
			for i := range c.Attacks {
				c.Attacks[i][0] = f.Int32()
				c.Attacks[i][1] = f.Int32()
			}
			c.Gold = f.Int32()
		case "FLAG":
			c.Flags = NewFieldReader(r.SubBytes()).Uint32()
		case "XSCL":
			c.Scale = NewFieldReader(r.SubBytes()).Float32()
		case subNPCO:
			c.Inventory = append(c.Inventory, decodeInventoryItem(r.SubBytes()))
		case subNPCS:
			c.Spells = append(c.Spells, NewFieldReader(r.SubBytes()).String(32))
		case subAIDT:
			c.AI = decodeAIData(r.SubBytes())
		case "AI_W":
			c.AIPackages = append(c.AIPackages, decodeAIPackage(AIWander, r.SubBytes()))
		case "AI_T":
			c.AIPackages = append(c.AIPackages, decodeAIPackage(AITravel, r.SubBytes()))
		case "AI_F":
			c.AIPackages = append(c.AIPackages, decodeAIPackage(AIFollow, r.SubBytes()))
		case "AI_E":
			c.AIPackages = append(c.AIPackages, decodeAIPackage(AIEscort, r.SubBytes()))
		case "AI_A":
			c.AIPackages = append(c.AIPackages, decodeAIPackage(AIActivate, r.SubBytes()))
		case "CNDT":
			if i := len(c.AIPackages); i > 0 {
				c.AIPackages[i-1].Cell = r.ReadString()
			}
		case subDODT:
			c.Destinations = append(c.Destinations, TravelDest{Pos: decodePosition(NewFieldReader(r.SubBytes()))})
		case subDNAM:
			if i := len(c.Destinations); i > 0 {
				c.Destinations[i-1].Cell = r.ReadString()
			}
		case subDELE:
			c.Deleted = true
		}
		r.SkipSubrecord()
	}
	return c, nil
}

// BodyPart is one BODY mesh definition referenced by races and equipment.
type BodyPart struct {
	RecordMeta
	ID      string
	Model   string
	Race    string
	Part    uint8
	Vampire bool
	Female  bool
	Type    uint8 // 0 skin, 1 clothing, 2 armor
}

func (*BodyPart) Kind() Tag { return TagBODY }

func decodeBodyPart(r *Reader, flags RecordFlags) (*BodyPart, error) {
	b := &BodyPart{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case subMODL:
			b.Model = r.ReadString()
		case subFNAM:
			b.Race = r.ReadString()
		case "BYDT":
			f := NewFieldReader(r.SubBytes())
			b.Part = f.Uint8()
			b.Vampire = f.Uint8() != 0
			b.Female = f.Uint8()&0x1 != 0
			b.Type = f.Uint8()
		case subDELE:
			b.Deleted = true
		}
		r.SkipSubrecord()
	}
	return b, nil
}
