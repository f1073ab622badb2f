package esm

// Effect delivery ranges.
const (
	RangeSelf uint32 = iota
	RangeTouch
	RangeTarget
)

// Spell types carried in SPDT.
const (
	SpellTypeSpell uint32 = iota
	SpellTypeAbility
	SpellTypeBlight
	SpellTypeDisease
	SpellTypeCurse
	SpellTypePower
)

// Enchantment types carried in ENDT.
const (
	EnchantCastOnce uint32 = iota
	EnchantCastOnStrike
	EnchantCastWhenUsed
	EnchantConstant
)

// Effect is one ENAM block: a magic effect application inside a spell,
// enchantment, or potion.
type Effect struct {
	ID           int16
	Skill        int8 // -1 unless the effect targets a skill
	Attribute    int8 // -1 unless the effect targets an attribute
	Range        uint32
	Area         uint32
	Duration     uint32
	MagnitudeMin uint32
	MagnitudeMax uint32
}

func decodeEffect(b []byte) Effect {
	f := NewFieldReader(b)
	return Effect{
		ID:           f.Int16(),
		Skill:        f.Int8(),
		Attribute:    f.Int8(),
		Range:        f.Uint32(),
		Area:         f.Uint32(),
		Duration:     f.Uint32(),
		MagnitudeMin: f.Uint32(),
		MagnitudeMax: f.Uint32(),
	}
}

// MagicEffect is one MGEF hardcoded effect definition. Effects are keyed by
// a fixed numeric index rather than a string ID.
type MagicEffect struct {
	RecordMeta
	Index    int32
	School   int32
	BaseCost float32
	Flags    int32

	// Particle tint in stored order.
	ColorRed   int32
	ColorBlue  int32
	ColorGreen int32

	Speed   float32
	Size    float32
	SizeCap float32

	Icon       string
	Particle   string
	CastVisual string
	BoltVisual string
	HitVisual  string
	AreaVisual string
	CastSound  string
	BoltSound  string
	HitSound   string
	AreaSound  string

	Description string
}

func (*MagicEffect) Kind() Tag { return TagMGEF }

func decodeMagicEffect(r *Reader, flags RecordFlags) (*MagicEffect, error) {
	m := &MagicEffect{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			m.Index = NewFieldReader(r.SubBytes()).Int32()
		case "MEDT":
			f := NewFieldReader(r.SubBytes())
			m.School = f.Int32()
			m.BaseCost = f.Float32()
			m.Flags = f.Int32()
			m.ColorRed = f.Int32()
			m.ColorBlue = f.Int32()
			m.ColorGreen = f.Int32()
			m.Speed = f.Float32()
			m.Size = f.Float32()
			m.SizeCap = f.Float32()
		case subITEX:
			m.Icon = r.ReadString()
		case "PTEX":
			m.Particle = r.ReadString()
		case "CVFX":
			m.CastVisual = r.ReadString()
		case "BVFX":
			m.BoltVisual = r.ReadString()
		case "HVFX":
			m.HitVisual = r.ReadString()
		case "AVFX":
			m.AreaVisual = r.ReadString()
		case "CSND":
			m.CastSound = r.ReadString()
		case "BSND":
			m.BoltSound = r.ReadString()
		case "HSND":
			m.HitSound = r.ReadString()
		case "ASND":
			m.AreaSound = r.ReadString()
		case subDESC:
			m.Description = r.ReadString()
		case subDELE:
			m.Deleted = true
		}
		r.SkipSubrecord()
	}
	return m, nil
}

// Spell is one SPEL definition.
type Spell struct {
	RecordMeta
	ID      string
	Name    string
	Type    uint32
	Cost    uint32
	Flags   uint32 // 0x1 autocalc, 0x2 starting spell, 0x4 always succeeds
	Effects []Effect
}

func (*Spell) Kind() Tag { return TagSPEL }

func decodeSpell(r *Reader, flags RecordFlags) (*Spell, error) {
	s := &Spell{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			s.Name = r.ReadString()
		case "SPDT":
			f := NewFieldReader(r.SubBytes())
			s.Type = f.Uint32()
			s.Cost = f.Uint32()
			s.Flags = f.Uint32()
		case subENAM:
			s.Effects = append(s.Effects, decodeEffect(r.SubBytes()))
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}

// Enchantment is one ENCH definition attached to items by ID.
type Enchantment struct {
	RecordMeta
	ID       string
	Type     uint32
	Cost     uint32
	Charge   uint32
	AutoCalc bool
	Effects  []Effect
}

func (*Enchantment) Kind() Tag { return TagENCH }

func decodeEnchantment(r *Reader, flags RecordFlags) (*Enchantment, error) {
	e := &Enchantment{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			e.ID = r.ReadString()
		case "ENDT":
			f := NewFieldReader(r.SubBytes())
			e.Type = f.Uint32()
			e.Cost = f.Uint32()
			e.Charge = f.Uint32()
			e.AutoCalc = f.Uint32() != 0
		case subENAM:
			e.Effects = append(e.Effects, decodeEffect(r.SubBytes()))
		case subDELE:
			e.Deleted = true
		}
		r.SkipSubrecord()
	}
	return e, nil
}
