package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/resdayn/pkg/esm"
)

func TestStoreInsertAndGet(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Static{ID: "Barrel_01", Model: `o\contain_barrel_01.nif`})

	st := s.Static("barrel_01")
	require.NotNil(t, st)
	assert.Equal(t, "Barrel_01", st.ID)

	got := s.Get(esm.TagSTAT, "BARREL_01")
	require.NotNil(t, got)
	assert.Same(t, st, got)

	tag, got, ok := s.Any("Barrel_01")
	require.True(t, ok)
	assert.Equal(t, esm.TagSTAT, tag)
	assert.Same(t, st, got)
}

func TestStoreLastWriterWins(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Weapon{ID: "sword", Value: 10})
	s.Insert(&esm.Weapon{ID: "Sword", Value: 90})

	w := s.Weapon("sword")
	require.NotNil(t, w)
	assert.Equal(t, uint32(90), w.Value)

	_, got, ok := s.Any("sword")
	require.True(t, ok)
	assert.Same(t, w, got)
}

func TestStoreDeletionIdempotence(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Static{ID: "foo"})
	require.NotNil(t, s.Static("foo"))

	tombstone := &esm.Static{RecordMeta: esm.RecordMeta{Deleted: true}, ID: "Foo"}
	s.Insert(tombstone)

	assert.Nil(t, s.Static("foo"))
	assert.Nil(t, s.Get(esm.TagSTAT, "foo"))
	_, _, ok := s.Any("foo")
	assert.False(t, ok)

	// A second tombstone for the same ID must be a no-op, not an error.
	s.Insert(tombstone)
	assert.Nil(t, s.Static("foo"))

	// As must deleting something never inserted.
	s.Remove(&esm.Static{ID: "never-existed"})
}

func TestStoreUnifiedIndexExclusion(t *testing.T) {
	s := NewStore()

	s.Insert(&esm.Dialogue{ID: "greeting"})
	s.Insert(&esm.DialogueInfo{ID: "101", Topic: "greeting", Response: "Hello."})
	s.Insert(&esm.StartScript{ID: "ScriptA"})
	s.Insert(&esm.StartScript{ID: "ScriptA"})

	_, _, ok := s.Any("greeting")
	assert.False(t, ok, "dialogue topics must stay out of the unified index")
	_, _, ok = s.Any("ScriptA")
	assert.False(t, ok, "start scripts must stay out of the unified index")
	_, _, ok = s.Any("101")
	assert.False(t, ok, "dialogue entries must stay out of the unified index")

	entries := s.DialogueEntries("greeting")
	require.Len(t, entries, 1)
	assert.Equal(t, "Hello.", entries[0].Response)

	topics := s.Topics()
	require.Len(t, topics, 1)
	assert.Equal(t, "greeting", topics[0].Dialogue.ID)

	assert.Equal(t, []string{"ScriptA"}, s.StartScripts())
}

func TestStoreStartScriptRemoval(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.StartScript{ID: "ScriptA"})
	s.Insert(&esm.StartScript{ID: "ScriptB"})

	s.Insert(&esm.StartScript{RecordMeta: esm.RecordMeta{Deleted: true}, ID: "scripta"})
	assert.Equal(t, []string{"ScriptB"}, s.StartScripts())

	// Reinserting after removal brings it back, at the end.
	s.Insert(&esm.StartScript{ID: "ScriptA"})
	assert.Equal(t, []string{"ScriptB", "ScriptA"}, s.StartScripts())
}

func TestStoreDialogueEntryReplacement(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Dialogue{ID: "latest rumors"})
	s.Insert(&esm.DialogueInfo{ID: "1", Topic: "latest rumors", Response: "first"})
	s.Insert(&esm.DialogueInfo{ID: "2", Topic: "latest rumors", Response: "second"})

	// An overlay file replacing an entry keeps its position.
	s.Insert(&esm.DialogueInfo{ID: "1", Topic: "latest rumors", Response: "patched"})
	entries := s.DialogueEntries("latest rumors")
	require.Len(t, entries, 2)
	assert.Equal(t, "patched", entries[0].Response)
	assert.Equal(t, "second", entries[1].Response)

	s.Insert(&esm.DialogueInfo{RecordMeta: esm.RecordMeta{Deleted: true}, ID: "1", Topic: "latest rumors"})
	entries = s.DialogueEntries("latest rumors")
	require.Len(t, entries, 1)
	assert.Equal(t, "second", entries[0].Response)

	assert.Empty(t, s.DialogueEntries("no such topic"))
}

func TestStoreTopicRedeclarationKeepsEntries(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Dialogue{ID: "Background"})
	s.Insert(&esm.DialogueInfo{ID: "1", Topic: "Background", Response: "from master"})

	// The overlay file re-declares the topic header before adding to it.
	s.Insert(&esm.Dialogue{ID: "Background", Type: esm.DialogueTopic})
	s.Insert(&esm.DialogueInfo{ID: "2", Topic: "Background", Response: "from plugin"})

	require.Len(t, s.DialogueEntries("Background"), 2)

	// Deleting the topic drops the whole group.
	s.Insert(&esm.Dialogue{RecordMeta: esm.RecordMeta{Deleted: true}, ID: "Background"})
	assert.Nil(t, s.Topic("Background"))
	assert.Empty(t, s.DialogueEntries("Background"))
}

func TestStoreCells(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Cell{Name: "Seyda Neen, Census and Excise Office", Flags: esm.CellInterior})
	s.Insert(&esm.Cell{Grid: esm.GridKey{X: -2, Y: 4}, Region: "bitter coast region"})
	s.Insert(&esm.Cell{Grid: esm.GridKey{X: 1, Y: 1}})

	interior := s.InteriorCell("seyda neen, census and excise office")
	require.NotNil(t, interior)
	assert.True(t, interior.IsInterior())

	// Interior cells are reachable through the unified index, exteriors
	// only through the grid.
	_, got, ok := s.Any("Seyda Neen, Census and Excise Office")
	require.True(t, ok)
	assert.Same(t, interior, got)

	ext := s.ExteriorCell(-2, 4)
	require.NotNil(t, ext)
	assert.Equal(t, "bitter coast region", ext.Region)
	assert.Nil(t, s.ExteriorCell(-2, 5))

	cells := s.Cells()
	require.Len(t, cells, 3)
	assert.Same(t, interior, cells[0])
	assert.Equal(t, esm.GridKey{X: -2, Y: 4}, cells[1].Grid)
	assert.Equal(t, esm.GridKey{X: 1, Y: 1}, cells[2].Grid)
}

func TestStoreExteriorCellDeletion(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Cell{Grid: esm.GridKey{X: 3, Y: -9}})
	require.NotNil(t, s.ExteriorCell(3, -9))

	s.Insert(&esm.Cell{RecordMeta: esm.RecordMeta{Deleted: true}, Grid: esm.GridKey{X: 3, Y: -9}})
	assert.Nil(t, s.ExteriorCell(3, -9))
}

func TestStoreLandAndPathGrids(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Land{Grid: esm.GridKey{X: -2, Y: 4}, MinHeight: -10, MaxHeight: 40})
	s.Insert(&esm.PathGrid{Cell: "Vivec, Arena", Points: []esm.PathGridPoint{{X: 1}}})
	s.Insert(&esm.PathGrid{Grid: esm.GridKey{X: -2, Y: 4}, Cell: "Bitter Coast Region"})

	land := s.Land(-2, 4)
	require.NotNil(t, land)
	assert.Equal(t, float32(40), land.MaxHeight)

	interior := &esm.Cell{Name: "Vivec, Arena", Flags: esm.CellInterior}
	pg := s.PathGrid(interior)
	require.NotNil(t, pg)
	assert.Len(t, pg.Points, 1)

	exterior := &esm.Cell{Grid: esm.GridKey{X: -2, Y: 4}}
	pg = s.PathGrid(exterior)
	require.NotNil(t, pg)
	assert.Equal(t, "Bitter Coast Region", pg.Cell)

	assert.Nil(t, s.PathGrid(nil))
	assert.Nil(t, s.PathGrid(&esm.Cell{Name: "nowhere", Flags: esm.CellInterior}))
}

func TestStoreSkillsAndEffectsByIndex(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Skill{Index: 26, Attribute: 3})
	s.Insert(&esm.Skill{Index: 5, Attribute: 0})
	s.Insert(&esm.MagicEffect{Index: 14, School: 2})

	require.NotNil(t, s.Skill(26))
	assert.Nil(t, s.Skill(99))
	require.NotNil(t, s.MagicEffect(14))

	skills := s.Skills()
	require.Len(t, skills, 2)
	assert.Equal(t, int32(5), skills[0].Index)
	assert.Equal(t, int32(26), skills[1].Index)

	effects := s.MagicEffects()
	require.Len(t, effects, 1)

	// Index-keyed kinds never appear in the unified index.
	_, _, ok := s.Any("")
	assert.False(t, ok)
}

func TestStoreEach(t *testing.T) {
	s := NewStore()
	s.Insert(&esm.Static{ID: "a"})
	s.Insert(&esm.Weapon{ID: "b"})
	s.Insert(&esm.Dialogue{ID: "c"})

	seen := map[esm.Tag]string{}
	s.Each(func(e Entry) { seen[e.Tag] = e.ID })

	assert.Equal(t, map[esm.Tag]string{esm.TagSTAT: "a", esm.TagWEAP: "b"}, seen)
}
