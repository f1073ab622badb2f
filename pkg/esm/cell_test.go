package esm

import "testing"

func TestDecodeCellInterior(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", "Balmora, Guild of Mages"),
		sub("DATA", pack(CellInterior|CellHasWater, int32(0), int32(0))),
		sub("WHGT", pack(float32(-50))),
		sub("AMBI", pack(uint32(0x202020), uint32(0x404040), uint32(0x808080), float32(0.7))),
	)

	c, ok := decodeOne(t, data).(*Cell)
	if !ok {
		t.Fatal("expected *Cell")
	}
	if !c.IsInterior() {
		t.Error("expected interior cell")
	}
	if !c.HasWater() {
		t.Error("expected water flag")
	}
	if c.Name != "Balmora, Guild of Mages" {
		t.Errorf("unexpected name %q", c.Name)
	}
	if c.WaterHeight != -50 {
		t.Errorf("expected water height -50, got %v", c.WaterHeight)
	}
	if c.Ambient.Sunlight != 0x404040 {
		t.Errorf("unexpected sunlight %#x", c.Ambient.Sunlight)
	}
	if c.Ambient.FogDensity != 0.7 {
		t.Errorf("unexpected fog density %v", c.Ambient.FogDensity)
	}
}

func TestDecodeCellIntWaterHeight(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", "Old Mournhold"),
		sub("DATA", pack(CellInterior, int32(0), int32(0))),
		sub("INTV", pack(int32(-20))),
	)

	c := decodeOne(t, data).(*Cell)
	if c.WaterHeight != -20 {
		t.Errorf("expected water height -20 from INTV, got %v", c.WaterHeight)
	}
}

func TestDecodeCellExteriorRefs(t *testing.T) {
	pos := pack(
		float32(1024), float32(2048), float32(128),
		float32(0), float32(0), float32(1.5),
	)
	data := rec("CELL", 0,
		subZ("NAME", ""),
		sub("DATA", pack(uint32(0), int32(-3), int32(7))),
		subZ("RGNN", "Bitter Coast Region"),
		sub("NAM5", pack(uint32(0x00112233))),
		sub("NAM0", pack(uint32(2))),
		sub("FRMR", pack(uint32(101))),
		subZ("NAME", "ex_hut_01"),
		sub("XSCL", pack(float32(5))),
		sub("DATA", pos),
		sub("FRMR", pack(uint32(102))),
		subZ("NAME", "chargen_door"),
		sub("DODT", pack(
			float32(10), float32(20), float32(30),
			float32(0), float32(0), float32(0),
		)),
		subZ("DNAM", "Seyda Neen, Census and Excise Office"),
		sub("FLTV", pack(int32(35))),
		subZ("KNAM", "key_census"),
		subZ("TNAM", "trap_shock00"),
		sub("DATA", pos),
	)

	c := decodeOne(t, data).(*Cell)
	if c.IsInterior() {
		t.Error("expected exterior cell")
	}
	if c.Grid.X != -3 || c.Grid.Y != 7 {
		t.Errorf("expected grid (-3, 7), got (%d, %d)", c.Grid.X, c.Grid.Y)
	}
	if c.Region != "Bitter Coast Region" {
		t.Errorf("unexpected region %q", c.Region)
	}
	if c.RefCounter != 2 {
		t.Errorf("expected ref counter 2, got %d", c.RefCounter)
	}
	if len(c.Refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(c.Refs))
	}

	hut := c.Refs[0]
	if hut.RefNum != 101 || hut.ID != "ex_hut_01" {
		t.Errorf("unexpected first ref %+v", hut)
	}
	if hut.Scale != 2 {
		t.Errorf("expected scale clamped to 2, got %v", hut.Scale)
	}
	if hut.Pos.X != 1024 || hut.Pos.RotZ != 1.5 {
		t.Errorf("unexpected position %+v", hut.Pos)
	}
	if hut.Dest != nil {
		t.Error("expected no teleport destination on first ref")
	}

	door := c.Refs[1]
	if door.RefNum != 102 || door.ID != "chargen_door" {
		t.Errorf("unexpected second ref %+v", door)
	}
	if door.Dest == nil {
		t.Fatal("expected teleport destination")
	}
	if door.Dest.Cell != "Seyda Neen, Census and Excise Office" {
		t.Errorf("unexpected destination cell %q", door.Dest.Cell)
	}
	if door.Dest.Pos.Z != 30 {
		t.Errorf("expected destination z 30, got %v", door.Dest.Pos.Z)
	}
	if door.LockLevel != 35 || door.Key != "key_census" || door.Trap != "trap_shock00" {
		t.Errorf("unexpected lock data %+v", door)
	}
}

func TestDecodeCellRefScaleClamp(t *testing.T) {
	tests := []struct {
		stored float32
		want   float32
	}{
		{0.1, 0.5},
		{0.5, 0.5},
		{1.3, 1.3},
		{2.0, 2.0},
		{90, 2.0},
	}

	for _, tc := range tests {
		data := rec("CELL", 0,
			subZ("NAME", "x"),
			sub("FRMR", pack(uint32(1))),
			subZ("NAME", "misc_crate"),
			sub("XSCL", pack(tc.stored)),
		)
		c := decodeOne(t, data).(*Cell)
		if len(c.Refs) != 1 {
			t.Fatalf("expected 1 ref, got %d", len(c.Refs))
		}
		if c.Refs[0].Scale != tc.want {
			t.Errorf("scale %v: expected clamp to %v, got %v", tc.stored, tc.want, c.Refs[0].Scale)
		}
	}
}

func TestDecodeCellRefDefaults(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", "x"),
		sub("FRMR", pack(uint32(9))),
		subZ("NAME", "misc_bowl"),
	)

	ref := decodeOne(t, data).(*Cell).Refs[0]
	if ref.Scale != 1 {
		t.Errorf("expected default scale 1, got %v", ref.Scale)
	}
	if ref.Count != 1 {
		t.Errorf("expected default count 1, got %d", ref.Count)
	}
	if ref.Deleted {
		t.Error("expected ref not deleted")
	}
}

func TestDecodeCellDeletedRef(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", "x"),
		sub("FRMR", pack(uint32(4))),
		subZ("NAME", "misc_skull"),
		sub("DELE", pack(int32(0))),
		sub("FRMR", pack(uint32(5))),
		subZ("NAME", "misc_plate"),
	)

	c := decodeOne(t, data).(*Cell)
	if len(c.Refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(c.Refs))
	}
	if !c.Refs[0].Deleted {
		t.Error("expected first ref deleted")
	}
	if c.Refs[1].Deleted {
		t.Error("expected second ref intact")
	}
}

func TestDecodeCellMovedRefs(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", ""),
		sub("DATA", pack(uint32(0), int32(-2), int32(6))),
		sub("MVRF", pack(uint32(333))),
		sub("CNDT", pack(int32(-2), int32(7))),
		sub("FRMR", pack(uint32(334))),
		subZ("NAME", "ex_rock_02"),
	)

	c := decodeOne(t, data).(*Cell)
	if len(c.MovedRefs) != 1 {
		t.Fatalf("expected 1 moved ref, got %d", len(c.MovedRefs))
	}
	m := c.MovedRefs[0]
	if m.RefNum != 333 {
		t.Errorf("expected moved ref 333, got %d", m.RefNum)
	}
	if m.Grid.X != -2 || m.Grid.Y != 7 {
		t.Errorf("expected target grid (-2, 7), got (%d, %d)", m.Grid.X, m.Grid.Y)
	}
	if len(c.Refs) != 1 || c.Refs[0].ID != "ex_rock_02" {
		t.Errorf("expected plain ref after moved ref, got %+v", c.Refs)
	}
}

func TestDecodeCellOwnership(t *testing.T) {
	data := rec("CELL", 0,
		subZ("NAME", "x"),
		sub("FRMR", pack(uint32(7))),
		subZ("NAME", "misc_goblet"),
		subZ("ANAM", "ralen hlaalo"),
		subZ("BNAM", "rent_paid"),
		sub("FRMR", pack(uint32(8))),
		subZ("NAME", "misc_soulgem"),
		subZ("CNAM", "mages guild"),
		sub("INDX", pack(int32(3))),
		subZ("XSOL", "scamp"),
		sub("XCHG", pack(float32(44.5))),
		sub("NAM9", pack(int32(5))),
	)

	c := decodeOne(t, data).(*Cell)
	if len(c.Refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(c.Refs))
	}
	if c.Refs[0].Owner != "ralen hlaalo" || c.Refs[0].OwnerGlobal != "rent_paid" {
		t.Errorf("unexpected ownership %+v", c.Refs[0])
	}
	gem := c.Refs[1]
	if gem.OwnerFaction != "mages guild" || gem.FactionRank != 3 {
		t.Errorf("unexpected faction ownership %+v", gem)
	}
	if gem.Soul != "scamp" || gem.Charge != 44.5 || gem.Count != 5 {
		t.Errorf("unexpected gem fields %+v", gem)
	}
}

func TestDecodePathGrid(t *testing.T) {
	points := concat(
		pack(int32(0), int32(0), int32(10), uint8(1), uint8(2), uint16(0)),
		pack(int32(100), int32(50), int32(12), uint8(0), uint8(1), uint16(0)),
		pack(int32(-40), int32(9), int32(8), uint8(0), uint8(0), uint16(0)),
	)
	data := rec("PGRD", 0,
		sub("DATA", pack(int32(-3), int32(7), uint16(1024), uint16(3))),
		subZ("NAME", "Balmora"),
		sub("PGRP", points),
		sub("PGRC", pack(uint32(1), uint32(2), uint32(0))),
	)

	p, ok := decodeOne(t, data).(*PathGrid)
	if !ok {
		t.Fatal("expected *PathGrid")
	}
	if p.Cell != "Balmora" {
		t.Errorf("unexpected cell %q", p.Cell)
	}
	if p.Grid.X != -3 || p.Grid.Y != 7 {
		t.Errorf("expected grid (-3, 7), got (%d, %d)", p.Grid.X, p.Grid.Y)
	}
	if p.Granularity != 1024 {
		t.Errorf("expected granularity 1024, got %d", p.Granularity)
	}
	if len(p.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(p.Points))
	}
	if !p.Points[0].AutoGenerated || p.Points[1].AutoGenerated {
		t.Error("unexpected autogenerated flags")
	}
	if p.Points[1].X != 100 || p.Points[1].Z != 12 {
		t.Errorf("unexpected point %+v", p.Points[1])
	}

	if got := p.Connections(0); len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("expected point 0 connected to [1 2], got %v", got)
	}
	if got := p.Connections(1); len(got) != 1 || got[0] != 0 {
		t.Errorf("expected point 1 connected to [0], got %v", got)
	}
	if got := p.Connections(2); len(got) != 0 {
		t.Errorf("expected no connections for point 2, got %v", got)
	}
	if p.Connections(5) != nil {
		t.Error("expected nil for out-of-range point")
	}
}
