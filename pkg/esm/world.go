package esm

// Static is one STAT definition: a placeable mesh with no behavior.
type Static struct {
	RecordMeta
	ID    string
	Model string
}

func (*Static) Kind() Tag { return TagSTAT }

func decodeStatic(r *Reader, flags RecordFlags) (*Static, error) {
	s := &Static{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case subMODL:
			s.Model = r.ReadString()
		case subDELE:
			s.Deleted = true
		}
		r.SkipSubrecord()
	}
	return s, nil
}

// Door is one DOOR definition.
type Door struct {
	RecordMeta
	ID         string
	Model      string
	Name       string
	Script     string
	OpenSound  string
	CloseSound string
}

func (*Door) Kind() Tag { return TagDOOR }

func decodeDoor(r *Reader, flags RecordFlags) (*Door, error) {
	d := &Door{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case subMODL:
			d.Model = r.ReadString()
		case subFNAM:
			d.Name = r.ReadString()
		case subSCRI:
			d.Script = r.ReadString()
		case subSNAM:
			d.OpenSound = r.ReadString()
		case subANAM:
			d.CloseSound = r.ReadString()
		case subDELE:
			d.Deleted = true
		}
		r.SkipSubrecord()
	}
	return d, nil
}

// Activator is one ACTI definition.
type Activator struct {
	RecordMeta
	ID     string
	Model  string
	Name   string
	Script string
}

func (*Activator) Kind() Tag { return TagACTI }

func decodeActivator(r *Reader, flags RecordFlags) (*Activator, error) {
	a := &Activator{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case subDELE:
			a.Deleted = true
		}
		r.SkipSubrecord()
	}
	return a, nil
}

// Container flag bits.
const (
	ContainerOrganic uint32 = 0x1
	ContainerRespawn uint32 = 0x2
)

// Container is one CONT definition with its base inventory.
type Container struct {
	RecordMeta
	ID       string
	Model    string
	Name     string
	Capacity float32
	Flags    uint32
	Script   string
	Items    []InventoryItem
}

func (*Container) Kind() Tag { return TagCONT }

func decodeContainer(r *Reader, flags RecordFlags) (*Container, error) {
	c := &Container{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case "CNDT":
			c.Capacity = NewFieldReader(r.SubBytes()).Float32()
		case "FLAG":
			c.Flags = NewFieldReader(r.SubBytes()).Uint32()
		case subSCRI:
			c.Script = r.ReadString()
		case subNPCO:
			c.Items = append(c.Items, decodeInventoryItem(r.SubBytes()))
		case subDELE:
			c.Deleted = true
		}
		r.SkipSubrecord()
	}
	return c, nil
}

// WeatherChances holds the per-weather probabilities of a region. The last
// two entries only appear in expansion-era files; base-game WEAT blocks are
// two bytes shorter and leave them zero.
type WeatherChances struct {
	Clear    uint8
	Cloudy   uint8
	Foggy    uint8
	Overcast uint8
	Rain     uint8
	Thunder  uint8
	Ash      uint8
	Blight   uint8
	Snow     uint8
	Blizzard uint8
}

// RegionSound is one ambient sound rolled for a region.
type RegionSound struct {
	Sound  string
	Chance uint8
}

// Region is one REGN definition grouping exterior cells.
type Region struct {
	RecordMeta
	ID            string
	Name          string
	Weather       WeatherChances
	SleepCreature string // leveled creature disturbing sleep, empty for none
	MapColor      uint32
	Sounds        []RegionSound
}

func (*Region) Kind() Tag { return TagREGN }

func decodeRegion(r *Reader, flags RecordFlags) (*Region, error) {
	re := &Region{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			re.ID = r.ReadString()
		case subFNAM:
			re.Name = r.ReadString()
		case "WEAT":
			f := NewFieldReader(r.SubBytes())
			re.Weather = WeatherChances{
				Clear:    f.Uint8(),
				Cloudy:   f.Uint8(),
				Foggy:    f.Uint8(),
				Overcast: f.Uint8(),
				Rain:     f.Uint8(),
				Thunder:  f.Uint8(),
				Ash:      f.Uint8(),
				Blight:   f.Uint8(),
				Snow:     f.Uint8(),
				Blizzard: f.Uint8(),
			}
		case subBNAM:
			re.SleepCreature = r.ReadString()
		case subCNAM:
			re.MapColor = NewFieldReader(r.SubBytes()).Uint32()
		case subSNAM:
			f := NewFieldReader(r.SubBytes())
			re.Sounds = append(re.Sounds, RegionSound{Sound: f.String(32), Chance: f.Uint8()})
		case subDELE:
			re.Deleted = true
		}
		r.SkipSubrecord()
	}
	return re, nil
}
