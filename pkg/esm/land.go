package esm

import "math"

// LandSize is the number of height vertices along one edge of a cell's
// terrain patch.
const LandSize = 65

// LandTextureSize is the edge length of the per-cell texture index grid.
const LandTextureSize = 16

// heightScale converts accumulated VHGT units to world units.
const heightScale = 8

// LAND DATA bits naming which optional components the record carries.
const (
	LandDataHeights  uint32 = 0x1 // VHGT, VNML, WNAM
	LandDataColors   uint32 = 0x2
	LandDataTextures uint32 = 0x4
)

// GridKey addresses an exterior cell or terrain patch by its grid
// coordinates.
type GridKey struct {
	X, Y int32
}

// Land is one LAND terrain patch. Heights, Normals, Colors and Textures are
// nil when the record does not carry the corresponding component.
type Land struct {
	RecordMeta
	Grid      GridKey
	DataFlags uint32

	// Heights holds 65x65 vertex heights in world units, row-major from the
	// south-west corner. Min and max are computed during decode.
	Heights   []float32
	MinHeight float32
	MaxHeight float32

	Normals  []int8   // 65x65 xyz triples
	Colors   []uint8  // 65x65 rgb triples
	WorldMap []uint8  // 9x9 low-resolution heights for the paper map
	Textures []uint16 // 16x16 land texture indices, row-major
}

func (*Land) Kind() Tag { return TagLAND }

func decodeLand(r *Reader, flags RecordFlags) (*Land, error) {
	l := &Land{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case subINTV:
			f := NewFieldReader(r.SubBytes())
			l.Grid.X = f.Int32()
			l.Grid.Y = f.Int32()
		case subDATA:
			l.DataFlags = NewFieldReader(r.SubBytes()).Uint32()
		case "VHGT":
			l.decodeHeights(NewFieldReader(r.SubBytes()))
		case "VNML":
			b := r.SubBytes()
			l.Normals = make([]int8, len(b))
			for i, v := range b {
				l.Normals[i] = int8(v)
			}
		case "WNAM":
			l.WorldMap = r.SubBytes()
		case "VCLR":
			l.Colors = r.SubBytes()
		case "VTEX":
			l.decodeTextures(NewFieldReader(r.SubBytes()))
		case subDELE:
			l.Deleted = true
		}
		// Also absorbs the 1-3 junk bytes trailing VHGT in shipped files.
		r.SkipSubrecord()
	}
	return l, nil
}

// decodeHeights expands the delta-compressed VHGT block: a float base
// followed by 65x65 signed byte deltas. The first delta of each row
// continues from the first column of the row below; the rest accumulate
// across the row. Every accumulated value is scaled to world units.
func (l *Land) decodeHeights(f *FieldReader) {
	base := f.Float32()
	l.Heights = make([]float32, LandSize*LandSize)
	minH := float32(math.Inf(1))
	maxH := float32(math.Inf(-1))

	rowOffset := base
	for y := 0; y < LandSize; y++ {
		rowOffset += float32(f.Int8())
		colOffset := rowOffset
		for x := 0; x < LandSize; x++ {
			if x > 0 {
				colOffset += float32(f.Int8())
			}
			h := colOffset * heightScale
			l.Heights[y*LandSize+x] = h
			if h < minH {
				minH = h
			}
			if h > maxH {
				maxH = h
			}
		}
	}
	l.MinHeight = minH
	l.MaxHeight = maxH
}

// decodeTextures flattens the VTEX grid to row-major order. The file stores
// the 16x16 indices as a 4x4 arrangement of 4x4 blocks.
func (l *Land) decodeTextures(f *FieldReader) {
	l.Textures = make([]uint16, LandTextureSize*LandTextureSize)
	for y1 := 0; y1 < 4; y1++ {
		for x1 := 0; x1 < 4; x1++ {
			for y2 := 0; y2 < 4; y2++ {
				for x2 := 0; x2 < 4; x2++ {
					l.Textures[(y1*4+y2)*LandTextureSize+x1*4+x2] = f.Uint16()
				}
			}
		}
	}
}

// HeightAt returns the decoded height at vertex (x, y), or 0 when the patch
// has no height data.
func (l *Land) HeightAt(x, y int) float32 {
	if l.Heights == nil || x < 0 || x >= LandSize || y < 0 || y >= LandSize {
		return 0
	}
	return l.Heights[y*LandSize+x]
}

// LandTexture is one LTEX entry mapping a texture index to a texture path.
type LandTexture struct {
	RecordMeta
	ID      string
	Index   uint32
	Texture string
}

func (*LandTexture) Kind() Tag { return TagLTEX }

func decodeLandTexture(r *Reader, flags RecordFlags) (*LandTexture, error) {
	t := &LandTexture{RecordMeta: RecordMeta{HeaderFlags: flags}}
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
			t.ID = r.ReadString()
		case subINTV:
			t.Index = NewFieldReader(r.SubBytes()).Uint32()
		case subDATA:
			t.Texture = r.ReadString()
		case subDELE:
			t.Deleted = true
		}
		r.SkipSubrecord()
	}
	return t, nil
}
