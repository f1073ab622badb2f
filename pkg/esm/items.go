package esm

// Weapon is one WEAP definition.
type Weapon struct {
	RecordMeta
	ID            string
	Model         string
	Name          string
	Weight        float32
	Value         uint32
	Type          uint16
	Health        uint16
	Speed         float32
	Reach         float32
	EnchantPoints uint16
	ChopMin       uint8
	ChopMax       uint8
	SlashMin      uint8
	SlashMax      uint8
	ThrustMin     uint8
	ThrustMax     uint8
	Flags         uint32 // 0x1 ignores normal weapon resistance, 0x2 silver
	Script        string
	Icon          string
	Enchantment   string
}

func (*Weapon) Kind() Tag { return TagWEAP }

func decodeWeapon(r *Reader, flags RecordFlags) (*Weapon, error) {
	w := &Weapon{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			w.ID = r.ReadString()
		case subMODL:
			w.Model = r.ReadString()
		case subFNAM:
			w.Name = r.ReadString()
		case "WPDT":
			f := NewFieldReader(r.SubBytes())
			w.Weight = f.Float32()
			w.Value = f.Uint32()
			w.Type = f.Uint16()
			w.Health = f.Uint16()
			w.Speed = f.Float32()
			w.Reach = f.Float32()
			w.EnchantPoints = f.Uint16()
			w.ChopMin = f.Uint8()
			w.ChopMax = f.Uint8()
			w.SlashMin = f.Uint8()
			w.SlashMax = f.Uint8()
			w.ThrustMin = f.Uint8()
			w.ThrustMax = f.Uint8()
			w.Flags = f.Uint32()
		case subSCRI:
			w.Script = r.ReadString()
		case subITEX:
			w.Icon = r.ReadString()
		case subENAM:
			w.Enchantment = r.ReadString()
		case subDELE:
			w.Deleted = true
		}
		r.SkipSubrecord()
	}
	return w, nil
}

// BodyPartRef maps one equipment slot to the body part models worn in it.
type BodyPartRef struct {
	Part   uint8
	Male   string
	Female string
}

// Armor is one ARMO definition.
type Armor struct {
	RecordMeta
	ID            string
	Model         string
	Name          string
	Script        string
	Type          uint32
	Weight        float32
	Value         uint32
	Health        uint32
	EnchantPoints uint32
	Rating        uint32
	Icon          string
	Parts         []BodyPartRef
	Enchantment   string
}

func (*Armor) Kind() Tag { return TagARMO }

func decodeArmor(r *Reader, flags RecordFlags) (*Armor, error) {
	a := &Armor{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			a.ID = r.ReadString()
		case subMODL:
			a.Model = r.ReadString()
		case subFNAM:
			a.Name = r.ReadString()
		case subSCRI:
			a.Script = r.ReadString()
		case "AODT":
			f := NewFieldReader(r.SubBytes())
			a.Type = f.Uint32()
			a.Weight = f.Float32()
			a.Value = f.Uint32()
			a.Health = f.Uint32()
			a.EnchantPoints = f.Uint32()
			a.Rating = f.Uint32()
		case subITEX:
			a.Icon = r.ReadString()
		case subINDX:
			a.Parts = append(a.Parts, BodyPartRef{Part: NewFieldReader(r.SubBytes()).Uint8()})
		case subBNAM:
			if n := len(a.Parts); n > 0 {
				a.Parts[n-1].Male = r.ReadString()
			}
		case subCNAM:
			if n := len(a.Parts); n > 0 {
				a.Parts[n-1].Female = r.ReadString()
			}
		case subENAM:
			a.Enchantment = r.ReadString()
		case subDELE:
			a.Deleted = true
		}
		r.SkipSubrecord()
	}
	return a, nil
}

// Clothing is one CLOT definition.
type Clothing struct {
	RecordMeta
	ID            string
	Model         string
	Name          string
	Type          uint32
	Weight        float32
	Value         uint16
	EnchantPoints uint16
	Script        string
	Icon          string
	Parts         []BodyPartRef
	Enchantment   string
}

func (*Clothing) Kind() Tag { return TagCLOT }

func decodeClothing(r *Reader, flags RecordFlags) (*Clothing, error) {
	c := &Clothing{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case "CTDT":
			f := NewFieldReader(r.SubBytes())
			c.Type = f.Uint32()
			c.Weight = f.Float32()
			c.Value = f.Uint16()
			c.EnchantPoints = f.Uint16()
		case subSCRI:
			c.Script = r.ReadString()
		case subITEX:
			c.Icon = r.ReadString()
		case subINDX:
			c.Parts = append(c.Parts, BodyPartRef{Part: NewFieldReader(r.SubBytes()).Uint8()})
		case subBNAM:
			if n := len(c.Parts); n > 0 {
				c.Parts[n-1].Male = r.ReadString()
			}
		case subCNAM:
			if n := len(c.Parts); n > 0 {
				c.Parts[n-1].Female = r.ReadString()
			}
		case subENAM:
			c.Enchantment = r.ReadString()
		case subDELE:
			c.Deleted = true
		}
		r.SkipSubrecord()
	}
	return c, nil
}

// MiscItem is one MISC definition: clutter, keys, gems, soul gems.
type MiscItem struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Weight float32
	Value  uint32
	IsKey  bool
	Script string
	Icon   string
}

func (*MiscItem) Kind() Tag { return TagMISC }

func decodeMiscItem(r *Reader, flags RecordFlags) (*MiscItem, error) {
	m := &MiscItem{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			m.ID = r.ReadString()
		case subMODL:
			m.Model = r.ReadString()
		case subFNAM:
			m.Name = r.ReadString()
		case "MCDT":
			f := NewFieldReader(r.SubBytes())
			m.Weight = f.Float32()
			m.Value = f.Uint32()
			m.IsKey = f.Uint32()&0x1 != 0
		case subSCRI:
			m.Script = r.ReadString()
		case subITEX:
			m.Icon = r.ReadString()
		case subDELE:
			m.Deleted = true
		}
		r.SkipSubrecord()
	}
	return m, nil
}

// Book is one BOOK definition, including scrolls.
type Book struct {
	RecordMeta
	ID            string
	Model         string
	Name          string
	Weight        float32
	Value         uint32
	Scroll        bool
	Skill         int32 // skill taught on reading, -1 for none
	EnchantPoints uint32
	Script        string
	Icon          string
	Text          string
	Enchantment   string
}

func (*Book) Kind() Tag { return TagBOOK }

func decodeBook(r *Reader, flags RecordFlags) (*Book, error) {
	b := &Book{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			b.Name = r.ReadString()
		case "BKDT":
			f := NewFieldReader(r.SubBytes())
			b.Weight = f.Float32()
			b.Value = f.Uint32()
			b.Scroll = f.Uint32() != 0
			b.Skill = f.Int32()
			b.EnchantPoints = f.Uint32()
		case subSCRI:
			b.Script = r.ReadString()
		case subITEX:
			b.Icon = r.ReadString()
		case "TEXT":
			b.Text = r.ReadString()
		case subENAM:
			b.Enchantment = r.ReadString()
		case subDELE:
			b.Deleted = true
		}
		r.SkipSubrecord()
	}
	return b, nil
}

// Ingredient is one INGR definition. The four effect slots line up across
// the Effects, Skills and Attributes arrays.
type Ingredient struct {
	RecordMeta
	ID         string
	Model      string
	Name       string
	Weight     float32
	Value      uint32
	Effects    [4]int32
	Skills     [4]int32
	Attributes [4]int32
	Script     string
	Icon       string
}

func (*Ingredient) Kind() Tag { return TagINGR }

func decodeIngredient(r *Reader, flags RecordFlags) (*Ingredient, error) {
	ing := &Ingredient{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			ing.ID = r.ReadString()
		case subMODL:
			ing.Model = r.ReadString()
		case subFNAM:
			ing.Name = r.ReadString()
		case "IRDT":
			f := NewFieldReader(r.SubBytes())
			ing.Weight = f.Float32()
			ing.Value = f.Uint32()
			for i := range ing.Effects {
				ing.Effects[i] = f.Int32()
			}
			for i := range ing.Skills {
				ing.Skills[i] = f.Int32()
			}
			for i := range ing.Attributes {
				ing.Attributes[i] = f.Int32()
			}
		case subSCRI:
			ing.Script = r.ReadString()
		case subITEX:
			ing.Icon = r.ReadString()
		case subDELE:
			ing.Deleted = true
		}
		r.SkipSubrecord()
	}
	return ing, nil
}

// Potion is one ALCH definition. The icon arrives in TEXT rather than the
// ITEX the other item kinds use.
type Potion struct {
	RecordMeta
	ID       string
	Model    string
	Name     string
	Weight   float32
	Value    uint32
	AutoCalc bool
	Script   string
	Icon     string
	Effects  []Effect
}

func (*Potion) Kind() Tag { return TagALCH }

func decodePotion(r *Reader, flags RecordFlags) (*Potion, error) {
	p := &Potion{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			p.ID = r.ReadString()
		case subMODL:
			p.Model = r.ReadString()
		case subFNAM:
			p.Name = r.ReadString()
		case "TEXT":
			p.Icon = r.ReadString()
		case "ALDT":
			f := NewFieldReader(r.SubBytes())
			p.Weight = f.Float32()
			p.Value = f.Uint32()
			p.AutoCalc = f.Uint32() != 0
		case subSCRI:
			p.Script = r.ReadString()
		case subENAM:
			p.Effects = append(p.Effects, decodeEffect(r.SubBytes()))
		case subDELE:
			p.Deleted = true
		}
		r.SkipSubrecord()
	}
	return p, nil
}

// Apparatus is one APPA alchemy tool definition.
type Apparatus struct {
	RecordMeta
	ID      string
	Model   string
	Name    string
	Type    uint32 // 0 mortar, 1 alembic, 2 calcinator, 3 retort
	Quality float32
	Weight  float32
	Value   uint32
	Script  string
	Icon    string
}

func (*Apparatus) Kind() Tag { return TagAPPA }

func decodeApparatus(r *Reader, flags RecordFlags) (*Apparatus, error) {
	a := &Apparatus{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			a.ID = r.ReadString()
		case subMODL:
			a.Model = r.ReadString()
		case subFNAM:
			a.Name = r.ReadString()
		case "AADT":
			f := NewFieldReader(r.SubBytes())
			a.Type = f.Uint32()
			a.Quality = f.Float32()
			a.Weight = f.Float32()
			a.Value = f.Uint32()
		case subSCRI:
			a.Script = r.ReadString()
		case subITEX:
			a.Icon = r.ReadString()
		case subDELE:
			a.Deleted = true
		}
		r.SkipSubrecord()
	}
	return a, nil
}

// toolData is the shared LKDT/PBDT/RIDT payload of the three tool kinds.
type toolData struct {
	Weight  float32
	Value   uint32
	Quality float32
	Uses    uint32
}

// Lockpick is one LOCK definition.
type Lockpick struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Data   toolData
	Script string
	Icon   string
}

func (*Lockpick) Kind() Tag { return TagLOCK }

// Probe is one PROB trap-disarm tool definition.
type Probe struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Data   toolData
	Script string
	Icon   string
}

func (*Probe) Kind() Tag { return TagPROB }

// RepairItem is one REPA definition.
type RepairItem struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Data   toolData
	Script string
	Icon   string
}

func (*RepairItem) Kind() Tag { return TagREPA }

// decodeTool parses the shared shape of LOCK, PROB and REPA. usesFirst
// selects the RIDT layout, which stores uses before quality.
func decodeTool(r *Reader, dataTag Tag, usesFirst bool) (id, model, name, script, icon string, data toolData, deleted bool, err error) {
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
		case subMODL:
			model = r.ReadString()
		case subFNAM:
			name = r.ReadString()
		case dataTag:
			f := NewFieldReader(r.SubBytes())
			data.Weight = f.Float32()
			data.Value = f.Uint32()
			if usesFirst {
				data.Uses = f.Uint32()
				data.Quality = f.Float32()
			} else {
				data.Quality = f.Float32()
				data.Uses = f.Uint32()
			}
		case subSCRI:
			script = r.ReadString()
		case subITEX:
			icon = r.ReadString()
		case subDELE:
			deleted = true
		}
		r.SkipSubrecord()
	}
	return
}

func decodeLockpick(r *Reader, flags RecordFlags) (*Lockpick, error) {
	id, model, name, script, icon, data, deleted, err := decodeTool(r, "LKDT", false)
	if err != nil {
		return nil, err
	}
	return &Lockpick{
		RecordMeta: RecordMeta{HeaderFlags: flags, Deleted: deleted},
		ID:         id, Model: model, Name: name, Data: data, Script: script, Icon: icon,
	}, nil
}

func decodeProbe(r *Reader, flags RecordFlags) (*Probe, error) {
	id, model, name, script, icon, data, deleted, err := decodeTool(r, "PBDT", false)
	if err != nil {
		return nil, err
	}
	return &Probe{
		RecordMeta: RecordMeta{HeaderFlags: flags, Deleted: deleted},
		ID:         id, Model: model, Name: name, Data: data, Script: script, Icon: icon,
	}, nil
}

func decodeRepairItem(r *Reader, flags RecordFlags) (*RepairItem, error) {
	id, model, name, script, icon, data, deleted, err := decodeTool(r, "RIDT", true)
	if err != nil {
		return nil, err
	}
	return &RepairItem{
		RecordMeta: RecordMeta{HeaderFlags: flags, Deleted: deleted},
		ID:         id, Model: model, Name: name, Data: data, Script: script, Icon: icon,
	}, nil
}

// Light is one LIGH definition, covering both carryable and fixed lights.
type Light struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Weight float32
	Value  uint32
	Time   int32 // burn time in seconds, negative for infinite
	Radius uint32
	Color  uint32 // packed RGBA
	Flags  uint32
	Script string
	Icon   string
	Sound  string
}

func (*Light) Kind() Tag { return TagLIGH }

// Light flag bits.
const (
	LightDynamic      uint32 = 0x1
	LightCarry        uint32 = 0x2
	LightNegative     uint32 = 0x4
	LightFlicker      uint32 = 0x8
	LightFire         uint32 = 0x10
	LightOffByDefault uint32 = 0x20
)

func decodeLight(r *Reader, flags RecordFlags) (*Light, error) {
	l := &Light{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			l.ID = r.ReadString()
		case subMODL:
			l.Model = r.ReadString()
		case subFNAM:
			l.Name = r.ReadString()
		case subITEX:
			l.Icon = r.ReadString()
		case "LHDT":
			f := NewFieldReader(r.SubBytes())
			l.Weight = f.Float32()
			l.Value = f.Uint32()
			l.Time = f.Int32()
			l.Radius = f.Uint32()
			l.Color = f.Uint32()
			l.Flags = f.Uint32()
		case subSCRI:
			l.Script = r.ReadString()
		case subSNAM:
			l.Sound = r.ReadString()
		case subDELE:
			l.Deleted = true
		}
		r.SkipSubrecord()
	}
	return l, nil
}
