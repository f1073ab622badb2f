package esm

// Cell flag bits carried in DATA.
const (
	CellInterior      uint32 = 0x01
	CellHasWater      uint32 = 0x02
	CellSleepIllegal  uint32 = 0x04
	CellQuasiExterior uint32 = 0x80 // interior that behaves like an exterior
)

// Reference scale bounds enforced at decode time. The construction set
// writes values outside this range on occasion; the engine clamps them on
// load, so out-of-range scales in a file are noise, not signal.
const (
	minRefScale = 0.5
	maxRefScale = 2.0
)

// CellRef is one placed object reference inside a cell.
type CellRef struct {
	RefNum uint32
	ID     string
	Pos    Position
	Scale  float32 // 1.0 unless the file carries XSCL, clamped to [0.5, 2.0]

	Owner        string
	OwnerGlobal  string
	OwnerFaction string
	FactionRank  int32
	Soul         string

	Charge float32 // remaining enchantment charge
	Health int32   // remaining durability or uses
	Count  int32   // stack size, 1 unless the file carries NAM9

	Dest *TravelDest // teleport door destination, nil otherwise

	LockLevel int32
	Key       string
	Trap      string

	Blocked bool
	Deleted bool
}

// MovedRef marks a reference this file moves into another exterior cell.
type MovedRef struct {
	RefNum uint32
	Grid   GridKey
}

// AmbientLight is the AMBI interior lighting block.
type AmbientLight struct {
	Ambient    uint32
	Sunlight   uint32
	Fog        uint32
	FogDensity float32
}

// Cell is one CELL record: flags, lighting and water for the cell itself,
// plus every object reference placed in it.
type Cell struct {
	RecordMeta
	Name   string
	Flags  uint32
	Grid   GridKey // exterior cells only
	Region string

	MapColor    uint32
	WaterHeight float32
	Ambient     AmbientLight
	RefCounter  uint32 // highest reference number the writer handed out

	Refs      []CellRef
	MovedRefs []MovedRef
}

func (*Cell) Kind() Tag { return TagCELL }

// IsInterior reports whether the cell is an interior.
func (c *Cell) IsInterior() bool { return c.Flags&CellInterior != 0 }

// HasWater reports whether the cell renders a water plane.
func (c *Cell) HasWater() bool { return c.Flags&CellHasWater != 0 }

func decodeCell(r *Reader, flags RecordFlags) (*Cell, error) {
	c := &Cell{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			c.Name = r.ReadString()
		case subDATA:
			f := NewFieldReader(r.SubBytes())
			c.Flags = f.Uint32()
			c.Grid.X = f.Int32()
			c.Grid.Y = f.Int32()
		case "RGNN":
			c.Region = r.ReadString()
		case "NAM5":
			c.MapColor = NewFieldReader(r.SubBytes()).Uint32()
		case "WHGT":
			c.WaterHeight = NewFieldReader(r.SubBytes()).Float32()
		case subINTV:
			// Pre-expansion files store interior water height as an int.
			c.WaterHeight = float32(NewFieldReader(r.SubBytes()).Int32())
		case "AMBI":
			f := NewFieldReader(r.SubBytes())
			c.Ambient.Ambient = f.Uint32()
			c.Ambient.Sunlight = f.Uint32()
			c.Ambient.Fog = f.Uint32()
			c.Ambient.FogDensity = f.Float32()
		case "NAM0":
			c.RefCounter = NewFieldReader(r.SubBytes()).Uint32()
		case subMVRF:
			c.MovedRefs = append(c.MovedRefs, MovedRef{RefNum: NewFieldReader(r.SubBytes()).Uint32()})
		case "CNDT":
			// Pairs with the preceding MVRF.
			if n := len(c.MovedRefs); n > 0 {
				f := NewFieldReader(r.SubBytes())
				c.MovedRefs[n-1].Grid = GridKey{X: f.Int32(), Y: f.Int32()}
			}
		case subFRMR:
			ref, err := decodeCellRef(r, NewFieldReader(r.SubBytes()).Uint32())
			if err != nil {
				return nil, err
			}
			c.Refs = append(c.Refs, ref)
		case subDELE:
			c.Deleted = true
		}
		r.SkipSubrecord()
	}
	return c, nil
}

// decodeCellRef consumes the subrecords of one reference, stopping at the
// record end or at the tag that opens the next reference. The boundary tag
// is handed back to the reader so the caller sees it again.
func decodeCellRef(r *Reader, refNum uint32) (CellRef, error) {
	ref := CellRef{RefNum: refNum, Scale: 1, Count: 1}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return ref, err
		}
		if tag == subFRMR || tag == subMVRF {
			r.PushBackSubTag(tag)
			return ref, nil
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return ref, err
		}
		switch tag {
		case subNAME:
			ref.ID = r.ReadString()
		case "UNAM":
			ref.Blocked = NewFieldReader(r.SubBytes()).Uint8() != 0
		case "XSCL":
			s := NewFieldReader(r.SubBytes()).Float32()
			if s < minRefScale {
				s = minRefScale
			} else if s > maxRefScale {
				s = maxRefScale
			}
			ref.Scale = s
		case subANAM:
			ref.Owner = r.ReadString()
		case subBNAM:
			ref.OwnerGlobal = r.ReadString()
		case "XSOL":
			ref.Soul = r.ReadString()
		case subCNAM:
			ref.OwnerFaction = r.ReadString()
		case subINDX:
			ref.FactionRank = NewFieldReader(r.SubBytes()).Int32()
		case "XCHG":
			ref.Charge = NewFieldReader(r.SubBytes()).Float32()
		case subINTV:
			ref.Health = NewFieldReader(r.SubBytes()).Int32()
		case "NAM9":
			ref.Count = NewFieldReader(r.SubBytes()).Int32()
		case subDODT:
			ref.Dest = &TravelDest{Pos: decodePosition(NewFieldReader(r.SubBytes()))}
		case subDNAM:
			if ref.Dest != nil {
				ref.Dest.Cell = r.ReadString()
			}
		case subFLTV:
			ref.LockLevel = NewFieldReader(r.SubBytes()).Int32()
		case subKNAM:
			ref.Key = r.ReadString()
		case subTNAM:
			ref.Trap = r.ReadString()
		case subDATA:
			ref.Pos = decodePosition(NewFieldReader(r.SubBytes()))
		case subDELE:
			ref.Deleted = true
		}
		r.SkipSubrecord()
	}
	return ref, nil
}

// PathGridPoint is one PGRP node.
type PathGridPoint struct {
	X, Y, Z       int32
	AutoGenerated bool
	ConnCount     uint8
}

// PathGrid is one PGRD record: the AI waypoint graph of a cell. Edges holds
// the concatenated connection lists of all points; each point owns the next
// ConnCount entries in point order.
type PathGrid struct {
	RecordMeta
	Cell        string
	Grid        GridKey
	Granularity uint16
	Points      []PathGridPoint
	Edges       []uint32
}

func (*PathGrid) Kind() Tag { return TagPGRD }

// Connections returns the edge targets leaving point i.
func (p *PathGrid) Connections(i int) []uint32 {
	if i < 0 || i >= len(p.Points) {
		return nil
	}
	start := 0
	for j := 0; j < i; j++ {
		start += int(p.Points[j].ConnCount)
	}
	end := start + int(p.Points[i].ConnCount)
	if start > len(p.Edges) {
		return nil
	}
	if end > len(p.Edges) {
		end = len(p.Edges)
	}
	return p.Edges[start:end]
}

func decodePathGrid(r *Reader, flags RecordFlags) (*PathGrid, error) {
	p := &PathGrid{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
		case subDATA:
			f := NewFieldReader(r.SubBytes())
			p.Grid.X = f.Int32()
			p.Grid.Y = f.Int32()
			p.Granularity = f.Uint16()
			// The trailing point count duplicates len(PGRP)/16; PGRP wins.
		case subNAME:
			p.Cell = r.ReadString()
		case "PGRP":
			f := NewFieldReader(r.SubBytes())
			p.Points = make([]PathGridPoint, 0, size/16)
			for f.Remaining() >= 16 {
				pt := PathGridPoint{X: f.Int32(), Y: f.Int32(), Z: f.Int32()}
				pt.AutoGenerated = f.Uint8()&0x1 != 0
				pt.ConnCount = f.Uint8()
				f.Skip(2)
				p.Points = append(p.Points, pt)
			}
		case "PGRC":
			f := NewFieldReader(r.SubBytes())
			p.Edges = make([]uint32, 0, size/4)
			for f.Remaining() >= 4 {
				p.Edges = append(p.Edges, f.Uint32())
			}
		case subDELE:
			p.Deleted = true
		}
		r.SkipSubrecord()
	}
	return p, nil
}
