// Package data holds decoded content records and their lookup indexes.
package data

import (
	"sort"
	"strings"

	"github.com/Faultbox/resdayn/pkg/esm"
)

// Entry is one unified-index slot: the record plus the kind it was filed
// under.
type Entry struct {
	Tag    esm.Tag
	ID     string // as written in the defining file
	Record esm.Record
}

// Topic groups one dialogue header with its responses in file order.
type Topic struct {
	Dialogue *esm.Dialogue
	Infos    []*esm.DialogueInfo
}

// Store indexes records from one or more content files. Records are keyed by
// lower-cased ID except where noted: skills and magic effects by numeric
// index, terrain and exterior cells by grid coordinate, dialogue topics and
// start scripts by their original-case IDs.
//
// A Store is built single-threaded by a Loader and is safe for concurrent
// reads once loading completes. It is not safe for concurrent mutation.
type Store struct {
	gameSettings map[string]*esm.GameSetting
	globals      map[string]*esm.GlobalVariable
	classes      map[string]*esm.Class
	factions     map[string]*esm.Faction
	races        map[string]*esm.Race
	birthSigns   map[string]*esm.BirthSign
	scripts      map[string]*esm.Script
	regions      map[string]*esm.Region
	sounds       map[string]*esm.Sound
	soundGens    map[string]*esm.SoundGen
	landTextures map[string]*esm.LandTexture

	spells       map[string]*esm.Spell
	enchantments map[string]*esm.Enchantment

	statics    map[string]*esm.Static
	doors      map[string]*esm.Door
	activators map[string]*esm.Activator
	containers map[string]*esm.Container
	lights     map[string]*esm.Light

	weapons     map[string]*esm.Weapon
	armors      map[string]*esm.Armor
	clothing    map[string]*esm.Clothing
	books       map[string]*esm.Book
	ingredients map[string]*esm.Ingredient
	potions     map[string]*esm.Potion
	apparatus   map[string]*esm.Apparatus
	lockpicks   map[string]*esm.Lockpick
	probes      map[string]*esm.Probe
	repairItems map[string]*esm.RepairItem
	miscItems   map[string]*esm.MiscItem

	npcs      map[string]*esm.NPC
	creatures map[string]*esm.Creature
	bodyParts map[string]*esm.BodyPart

	leveledItems     map[string]*esm.LeveledItem
	leveledCreatures map[string]*esm.LeveledCreature

	// Skills and magic effects are engine-defined and carry a fixed numeric
	// index instead of a string ID.
	skills       map[int32]*esm.Skill
	magicEffects map[int32]*esm.MagicEffect

	interiors map[string]*esm.Cell
	exteriors map[esm.GridKey]*esm.Cell
	lands     map[esm.GridKey]*esm.Land

	interiorPaths map[string]*esm.PathGrid
	exteriorPaths map[esm.GridKey]*esm.PathGrid

	// Dialogue topics and start scripts keep the original-case ID as key;
	// both are excluded from the unified index.
	topics       map[string]*Topic
	startScripts []string
	startSeen    map[string]struct{}

	all map[string]Entry
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		gameSettings: make(map[string]*esm.GameSetting),
		globals:      make(map[string]*esm.GlobalVariable),
		classes:      make(map[string]*esm.Class),
		factions:     make(map[string]*esm.Faction),
		races:        make(map[string]*esm.Race),
		birthSigns:   make(map[string]*esm.BirthSign),
		scripts:      make(map[string]*esm.Script),
		regions:      make(map[string]*esm.Region),
		sounds:       make(map[string]*esm.Sound),
		soundGens:    make(map[string]*esm.SoundGen),
		landTextures: make(map[string]*esm.LandTexture),

		spells:       make(map[string]*esm.Spell),
		enchantments: make(map[string]*esm.Enchantment),

		statics:    make(map[string]*esm.Static),
		doors:      make(map[string]*esm.Door),
		activators: make(map[string]*esm.Activator),
		containers: make(map[string]*esm.Container),
		lights:     make(map[string]*esm.Light),

		weapons:     make(map[string]*esm.Weapon),
		armors:      make(map[string]*esm.Armor),
		clothing:    make(map[string]*esm.Clothing),
		books:       make(map[string]*esm.Book),
		ingredients: make(map[string]*esm.Ingredient),
		potions:     make(map[string]*esm.Potion),
		apparatus:   make(map[string]*esm.Apparatus),
		lockpicks:   make(map[string]*esm.Lockpick),
		probes:      make(map[string]*esm.Probe),
		repairItems: make(map[string]*esm.RepairItem),
		miscItems:   make(map[string]*esm.MiscItem),

		npcs:      make(map[string]*esm.NPC),
		creatures: make(map[string]*esm.Creature),
		bodyParts: make(map[string]*esm.BodyPart),

		leveledItems:     make(map[string]*esm.LeveledItem),
		leveledCreatures: make(map[string]*esm.LeveledCreature),

		skills:       make(map[int32]*esm.Skill),
		magicEffects: make(map[int32]*esm.MagicEffect),

		interiors: make(map[string]*esm.Cell),
		exteriors: make(map[esm.GridKey]*esm.Cell),
		lands:     make(map[esm.GridKey]*esm.Land),

		interiorPaths: make(map[string]*esm.PathGrid),
		exteriorPaths: make(map[esm.GridKey]*esm.PathGrid),

		topics:    make(map[string]*Topic),
		startSeen: make(map[string]struct{}),

		all: make(map[string]Entry),
	}
}

func lower(id string) string { return strings.ToLower(id) }

// index files a record in the unified index. Records without a string ID
// stay out of it.
func (s *Store) index(tag esm.Tag, id string, rec esm.Record) {
	if id == "" {
		return
	}
	s.all[lower(id)] = Entry{Tag: tag, ID: id, Record: rec}
}

func (s *Store) unindex(id string) {
	if id != "" {
		delete(s.all, lower(id))
	}
}

// Insert files a record under every index its kind uses. A record with the
// deleted flag is a tombstone and removes any earlier record with the same
// key instead. Later inserts overwrite earlier ones, which is how overlay
// files patch their masters.
func (s *Store) Insert(rec esm.Record) {
	if rec.Meta().Deleted {
		s.Remove(rec)
		return
	}
	switch t := rec.(type) {
	case *esm.GameSetting:
		s.gameSettings[lower(t.ID)] = t
		s.index(esm.TagGMST, t.ID, t)
	case *esm.GlobalVariable:
		s.globals[lower(t.ID)] = t
		s.index(esm.TagGLOB, t.ID, t)
	case *esm.Class:
		s.classes[lower(t.ID)] = t
		s.index(esm.TagCLAS, t.ID, t)
	case *esm.Faction:
		s.factions[lower(t.ID)] = t
		s.index(esm.TagFACT, t.ID, t)
	case *esm.Race:
		s.races[lower(t.ID)] = t
		s.index(esm.TagRACE, t.ID, t)
	case *esm.BirthSign:
		s.birthSigns[lower(t.ID)] = t
		s.index(esm.TagBSGN, t.ID, t)
	case *esm.Script:
		s.scripts[lower(t.ID)] = t
		s.index(esm.TagSCPT, t.ID, t)
	case *esm.Region:
		s.regions[lower(t.ID)] = t
		s.index(esm.TagREGN, t.ID, t)
	case *esm.Sound:
		s.sounds[lower(t.ID)] = t
		s.index(esm.TagSOUN, t.ID, t)
	case *esm.SoundGen:
		s.soundGens[lower(t.ID)] = t
		s.index(esm.TagSNDG, t.ID, t)
	case *esm.LandTexture:
		s.landTextures[lower(t.ID)] = t
		s.index(esm.TagLTEX, t.ID, t)
	case *esm.Spell:
		s.spells[lower(t.ID)] = t
		s.index(esm.TagSPEL, t.ID, t)
	case *esm.Enchantment:
		s.enchantments[lower(t.ID)] = t
		s.index(esm.TagENCH, t.ID, t)
	case *esm.Static:
		s.statics[lower(t.ID)] = t
		s.index(esm.TagSTAT, t.ID, t)
	case *esm.Door:
		s.doors[lower(t.ID)] = t
		s.index(esm.TagDOOR, t.ID, t)
	case *esm.Activator:
		s.activators[lower(t.ID)] = t
		s.index(esm.TagACTI, t.ID, t)
	case *esm.Container:
		s.containers[lower(t.ID)] = t
		s.index(esm.TagCONT, t.ID, t)
	case *esm.Light:
		s.lights[lower(t.ID)] = t
		s.index(esm.TagLIGH, t.ID, t)
	case *esm.Weapon:
		s.weapons[lower(t.ID)] = t
		s.index(esm.TagWEAP, t.ID, t)
	case *esm.Armor:
		s.armors[lower(t.ID)] = t
		s.index(esm.TagARMO, t.ID, t)
	case *esm.Clothing:
		s.clothing[lower(t.ID)] = t
		s.index(esm.TagCLOT, t.ID, t)
	case *esm.Book:
		s.books[lower(t.ID)] = t
		s.index(esm.TagBOOK, t.ID, t)
	case *esm.Ingredient:
		s.ingredients[lower(t.ID)] = t
		s.index(esm.TagINGR, t.ID, t)
	case *esm.Potion:
		s.potions[lower(t.ID)] = t
		s.index(esm.TagALCH, t.ID, t)
	case *esm.Apparatus:
		s.apparatus[lower(t.ID)] = t
		s.index(esm.TagAPPA, t.ID, t)
	case *esm.Lockpick:
		s.lockpicks[lower(t.ID)] = t
		s.index(esm.TagLOCK, t.ID, t)
	case *esm.Probe:
		s.probes[lower(t.ID)] = t
		s.index(esm.TagPROB, t.ID, t)
	case *esm.RepairItem:
		s.repairItems[lower(t.ID)] = t
		s.index(esm.TagREPA, t.ID, t)
	case *esm.MiscItem:
		s.miscItems[lower(t.ID)] = t
		s.index(esm.TagMISC, t.ID, t)
	case *esm.NPC:
		s.npcs[lower(t.ID)] = t
		s.index(esm.TagNPC, t.ID, t)
	case *esm.Creature:
		s.creatures[lower(t.ID)] = t
		s.index(esm.TagCREA, t.ID, t)
	case *esm.BodyPart:
		s.bodyParts[lower(t.ID)] = t
		s.index(esm.TagBODY, t.ID, t)
	case *esm.LeveledItem:
		s.leveledItems[lower(t.ID)] = t
		s.index(esm.TagLEVI, t.ID, t)
	case *esm.LeveledCreature:
		s.leveledCreatures[lower(t.ID)] = t
		s.index(esm.TagLEVC, t.ID, t)
	case *esm.Skill:
		s.skills[t.Index] = t
	case *esm.MagicEffect:
		s.magicEffects[t.Index] = t
	case *esm.Cell:
		s.insertCell(t)
	case *esm.Land:
		s.lands[t.Grid] = t
	case *esm.PathGrid:
		s.insertPathGrid(t)
	case *esm.Dialogue:
		s.insertTopic(t)
	case *esm.DialogueInfo:
		s.insertInfo(t)
	case *esm.StartScript:
		s.insertStartScript(t)
	}
}

func (s *Store) insertCell(c *esm.Cell) {
	if c.IsInterior() {
		s.interiors[lower(c.Name)] = c
		s.index(esm.TagCELL, c.Name, c)
		return
	}
	// Exterior cell names are display labels shared across cells, not
	// unique IDs; the grid index is the only lookup path.
	s.exteriors[c.Grid] = c
}

func (s *Store) insertPathGrid(p *esm.PathGrid) {
	if p.Grid == (esm.GridKey{}) && p.Cell != "" {
		s.interiorPaths[lower(p.Cell)] = p
		return
	}
	s.exteriorPaths[p.Grid] = p
}

func (s *Store) insertTopic(d *esm.Dialogue) {
	if topic, ok := s.topics[d.ID]; ok {
		// An overlay file re-declares the topic before appending to it.
		// Keep the entries collected so far.
		topic.Dialogue = d
		return
	}
	s.topics[d.ID] = &Topic{Dialogue: d}
}

func (s *Store) insertInfo(in *esm.DialogueInfo) {
	topic, ok := s.topics[in.Topic]
	if !ok {
		return
	}
	for i, old := range topic.Infos {
		if strings.EqualFold(old.ID, in.ID) {
			topic.Infos[i] = in
			return
		}
	}
	topic.Infos = append(topic.Infos, in)
}

func (s *Store) insertStartScript(ss *esm.StartScript) {
	key := lower(ss.ID)
	if key == "" {
		return
	}
	if _, ok := s.startSeen[key]; ok {
		return
	}
	s.startSeen[key] = struct{}{}
	s.startScripts = append(s.startScripts, ss.ID)
}

// Remove erases a record from its kind collection, the unified index and,
// for exterior cells, the grid index. Removing a key that was never
// inserted is a no-op.
func (s *Store) Remove(rec esm.Record) {
	switch t := rec.(type) {
	case *esm.GameSetting:
		delete(s.gameSettings, lower(t.ID))
		s.unindex(t.ID)
	case *esm.GlobalVariable:
		delete(s.globals, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Class:
		delete(s.classes, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Faction:
		delete(s.factions, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Race:
		delete(s.races, lower(t.ID))
		s.unindex(t.ID)
	case *esm.BirthSign:
		delete(s.birthSigns, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Script:
		delete(s.scripts, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Region:
		delete(s.regions, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Sound:
		delete(s.sounds, lower(t.ID))
		s.unindex(t.ID)
	case *esm.SoundGen:
		delete(s.soundGens, lower(t.ID))
		s.unindex(t.ID)
	case *esm.LandTexture:
		delete(s.landTextures, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Spell:
		delete(s.spells, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Enchantment:
		delete(s.enchantments, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Static:
		delete(s.statics, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Door:
		delete(s.doors, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Activator:
		delete(s.activators, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Container:
		delete(s.containers, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Light:
		delete(s.lights, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Weapon:
		delete(s.weapons, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Armor:
		delete(s.armors, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Clothing:
		delete(s.clothing, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Book:
		delete(s.books, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Ingredient:
		delete(s.ingredients, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Potion:
		delete(s.potions, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Apparatus:
		delete(s.apparatus, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Lockpick:
		delete(s.lockpicks, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Probe:
		delete(s.probes, lower(t.ID))
		s.unindex(t.ID)
	case *esm.RepairItem:
		delete(s.repairItems, lower(t.ID))
		s.unindex(t.ID)
	case *esm.MiscItem:
		delete(s.miscItems, lower(t.ID))
		s.unindex(t.ID)
	case *esm.NPC:
		delete(s.npcs, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Creature:
		delete(s.creatures, lower(t.ID))
		s.unindex(t.ID)
	case *esm.BodyPart:
		delete(s.bodyParts, lower(t.ID))
		s.unindex(t.ID)
	case *esm.LeveledItem:
		delete(s.leveledItems, lower(t.ID))
		s.unindex(t.ID)
	case *esm.LeveledCreature:
		delete(s.leveledCreatures, lower(t.ID))
		s.unindex(t.ID)
	case *esm.Skill:
		delete(s.skills, t.Index)
	case *esm.MagicEffect:
		delete(s.magicEffects, t.Index)
	case *esm.Cell:
		if t.IsInterior() {
			delete(s.interiors, lower(t.Name))
			s.unindex(t.Name)
		} else {
			delete(s.exteriors, t.Grid)
		}
	case *esm.Land:
		delete(s.lands, t.Grid)
	case *esm.PathGrid:
		if t.Grid == (esm.GridKey{}) && t.Cell != "" {
			delete(s.interiorPaths, lower(t.Cell))
		} else {
			delete(s.exteriorPaths, t.Grid)
		}
	case *esm.Dialogue:
		delete(s.topics, t.ID)
	case *esm.DialogueInfo:
		s.removeInfo(t)
	case *esm.StartScript:
		s.removeStartScript(t)
	}
}

func (s *Store) removeInfo(in *esm.DialogueInfo) {
	topic, ok := s.topics[in.Topic]
	if !ok {
		return
	}
	for i, old := range topic.Infos {
		if strings.EqualFold(old.ID, in.ID) {
			topic.Infos = append(topic.Infos[:i], topic.Infos[i+1:]...)
			return
		}
	}
}

func (s *Store) removeStartScript(ss *esm.StartScript) {
	key := lower(ss.ID)
	if _, ok := s.startSeen[key]; !ok {
		return
	}
	delete(s.startSeen, key)
	for i, id := range s.startScripts {
		if lower(id) == key {
			s.startScripts = append(s.startScripts[:i], s.startScripts[i+1:]...)
			return
		}
	}
}

// Get looks a record up by kind and ID, case-insensitively. It returns nil
// for unknown IDs and for kinds that are not keyed by string ID.
func (s *Store) Get(tag esm.Tag, id string) esm.Record {
	key := lower(id)
	switch tag {
	case esm.TagGMST:
		if r, ok := s.gameSettings[key]; ok {
			return r
		}
	case esm.TagGLOB:
		if r, ok := s.globals[key]; ok {
			return r
		}
	case esm.TagCLAS:
		if r, ok := s.classes[key]; ok {
			return r
		}
	case esm.TagFACT:
		if r, ok := s.factions[key]; ok {
			return r
		}
	case esm.TagRACE:
		if r, ok := s.races[key]; ok {
			return r
		}
	case esm.TagBSGN:
		if r, ok := s.birthSigns[key]; ok {
			return r
		}
	case esm.TagSCPT:
		if r, ok := s.scripts[key]; ok {
			return r
		}
	case esm.TagREGN:
		if r, ok := s.regions[key]; ok {
			return r
		}
	case esm.TagSOUN:
		if r, ok := s.sounds[key]; ok {
			return r
		}
	case esm.TagSNDG:
		if r, ok := s.soundGens[key]; ok {
			return r
		}
	case esm.TagLTEX:
		if r, ok := s.landTextures[key]; ok {
			return r
		}
	case esm.TagSPEL:
		if r, ok := s.spells[key]; ok {
			return r
		}
	case esm.TagENCH:
		if r, ok := s.enchantments[key]; ok {
			return r
		}
	case esm.TagSTAT:
		if r, ok := s.statics[key]; ok {
			return r
		}
	case esm.TagDOOR:
		if r, ok := s.doors[key]; ok {
			return r
		}
	case esm.TagACTI:
		if r, ok := s.activators[key]; ok {
			return r
		}
	case esm.TagCONT:
		if r, ok := s.containers[key]; ok {
			return r
		}
	case esm.TagLIGH:
		if r, ok := s.lights[key]; ok {
			return r
		}
	case esm.TagWEAP:
		if r, ok := s.weapons[key]; ok {
			return r
		}
	case esm.TagARMO:
		if r, ok := s.armors[key]; ok {
			return r
		}
	case esm.TagCLOT:
		if r, ok := s.clothing[key]; ok {
			return r
		}
	case esm.TagBOOK:
		if r, ok := s.books[key]; ok {
			return r
		}
	case esm.TagINGR:
		if r, ok := s.ingredients[key]; ok {
			return r
		}
	case esm.TagALCH:
		if r, ok := s.potions[key]; ok {
			return r
		}
	case esm.TagAPPA:
		if r, ok := s.apparatus[key]; ok {
			return r
		}
	case esm.TagLOCK:
		if r, ok := s.lockpicks[key]; ok {
			return r
		}
	case esm.TagPROB:
		if r, ok := s.probes[key]; ok {
			return r
		}
	case esm.TagREPA:
		if r, ok := s.repairItems[key]; ok {
			return r
		}
	case esm.TagMISC:
		if r, ok := s.miscItems[key]; ok {
			return r
		}
	case esm.TagNPC:
		if r, ok := s.npcs[key]; ok {
			return r
		}
	case esm.TagCREA:
		if r, ok := s.creatures[key]; ok {
			return r
		}
	case esm.TagBODY:
		if r, ok := s.bodyParts[key]; ok {
			return r
		}
	case esm.TagLEVI:
		if r, ok := s.leveledItems[key]; ok {
			return r
		}
	case esm.TagLEVC:
		if r, ok := s.leveledCreatures[key]; ok {
			return r
		}
	case esm.TagCELL:
		if r, ok := s.interiors[key]; ok {
			return r
		}
	case esm.TagDIAL:
		if t, ok := s.topics[id]; ok {
			return t.Dialogue
		}
	}
	return nil
}

// Any looks an ID up in the unified index. Dialogue topics, dialogue
// entries and start scripts are deliberately absent from it.
func (s *Store) Any(id string) (esm.Tag, esm.Record, bool) {
	e, ok := s.all[lower(id)]
	if !ok {
		return "", nil, false
	}
	return e.Tag, e.Record, true
}

// Each calls fn for every record in the unified index, in unspecified
// order.
func (s *Store) Each(fn func(Entry)) {
	for _, e := range s.all {
		fn(e)
	}
}

// Typed getters. All are case-insensitive and return nil for unknown IDs.

func (s *Store) GameSetting(id string) *esm.GameSetting { return s.gameSettings[lower(id)] }
func (s *Store) Global(id string) *esm.GlobalVariable   { return s.globals[lower(id)] }
func (s *Store) Class(id string) *esm.Class             { return s.classes[lower(id)] }
func (s *Store) Faction(id string) *esm.Faction         { return s.factions[lower(id)] }
func (s *Store) Race(id string) *esm.Race               { return s.races[lower(id)] }
func (s *Store) BirthSign(id string) *esm.BirthSign     { return s.birthSigns[lower(id)] }
func (s *Store) Script(id string) *esm.Script           { return s.scripts[lower(id)] }
func (s *Store) Region(id string) *esm.Region           { return s.regions[lower(id)] }
func (s *Store) Sound(id string) *esm.Sound             { return s.sounds[lower(id)] }
func (s *Store) SoundGen(id string) *esm.SoundGen       { return s.soundGens[lower(id)] }
func (s *Store) LandTexture(id string) *esm.LandTexture { return s.landTextures[lower(id)] }
func (s *Store) Spell(id string) *esm.Spell             { return s.spells[lower(id)] }
func (s *Store) Enchantment(id string) *esm.Enchantment { return s.enchantments[lower(id)] }
func (s *Store) Static(id string) *esm.Static           { return s.statics[lower(id)] }
func (s *Store) Door(id string) *esm.Door               { return s.doors[lower(id)] }
func (s *Store) Activator(id string) *esm.Activator     { return s.activators[lower(id)] }
func (s *Store) Container(id string) *esm.Container     { return s.containers[lower(id)] }
func (s *Store) Light(id string) *esm.Light             { return s.lights[lower(id)] }
func (s *Store) Weapon(id string) *esm.Weapon           { return s.weapons[lower(id)] }
func (s *Store) Armor(id string) *esm.Armor             { return s.armors[lower(id)] }
func (s *Store) Clothing(id string) *esm.Clothing       { return s.clothing[lower(id)] }
func (s *Store) Book(id string) *esm.Book               { return s.books[lower(id)] }
func (s *Store) Ingredient(id string) *esm.Ingredient   { return s.ingredients[lower(id)] }
func (s *Store) Potion(id string) *esm.Potion           { return s.potions[lower(id)] }
func (s *Store) Apparatus(id string) *esm.Apparatus     { return s.apparatus[lower(id)] }
func (s *Store) Lockpick(id string) *esm.Lockpick       { return s.lockpicks[lower(id)] }
func (s *Store) Probe(id string) *esm.Probe             { return s.probes[lower(id)] }
func (s *Store) RepairItem(id string) *esm.RepairItem   { return s.repairItems[lower(id)] }
func (s *Store) MiscItem(id string) *esm.MiscItem       { return s.miscItems[lower(id)] }
func (s *Store) NPC(id string) *esm.NPC                 { return s.npcs[lower(id)] }
func (s *Store) Creature(id string) *esm.Creature       { return s.creatures[lower(id)] }
func (s *Store) BodyPart(id string) *esm.BodyPart       { return s.bodyParts[lower(id)] }

func (s *Store) LeveledItem(id string) *esm.LeveledItem         { return s.leveledItems[lower(id)] }
func (s *Store) LeveledCreature(id string) *esm.LeveledCreature { return s.leveledCreatures[lower(id)] }

// Skill returns the skill with the given fixed index.
func (s *Store) Skill(index int32) *esm.Skill { return s.skills[index] }

// MagicEffect returns the effect with the given fixed index.
func (s *Store) MagicEffect(index int32) *esm.MagicEffect { return s.magicEffects[index] }

// InteriorCell returns an interior cell by name, case-insensitively.
func (s *Store) InteriorCell(name string) *esm.Cell { return s.interiors[lower(name)] }

// ExteriorCell returns the exterior cell at the given grid coordinate.
func (s *Store) ExteriorCell(x, y int32) *esm.Cell {
	return s.exteriors[esm.GridKey{X: x, Y: y}]
}

// Land returns the terrain tile at the given grid coordinate.
func (s *Store) Land(x, y int32) *esm.Land {
	return s.lands[esm.GridKey{X: x, Y: y}]
}

// Lands returns every terrain tile sorted by grid coordinate.
func (s *Store) Lands() []*esm.Land {
	out := make([]*esm.Land, 0, len(s.lands))
	for _, l := range s.lands {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Grid.X != out[j].Grid.X {
			return out[i].Grid.X < out[j].Grid.X
		}
		return out[i].Grid.Y < out[j].Grid.Y
	})
	return out
}

// PathGrid returns the waypoint graph of a cell, or nil if the cell has
// none.
func (s *Store) PathGrid(c *esm.Cell) *esm.PathGrid {
	if c == nil {
		return nil
	}
	if c.IsInterior() {
		return s.interiorPaths[lower(c.Name)]
	}
	return s.exteriorPaths[c.Grid]
}

// Cells returns every loaded cell: interiors sorted by name, then
// exteriors sorted by grid coordinate.
func (s *Store) Cells() []*esm.Cell {
	cells := make([]*esm.Cell, 0, len(s.interiors)+len(s.exteriors))
	for _, c := range s.interiors {
		cells = append(cells, c)
	}
	sort.Slice(cells, func(i, j int) bool {
		return lower(cells[i].Name) < lower(cells[j].Name)
	})
	ext := make([]*esm.Cell, 0, len(s.exteriors))
	for _, c := range s.exteriors {
		ext = append(ext, c)
	}
	sort.Slice(ext, func(i, j int) bool {
		if ext[i].Grid.X != ext[j].Grid.X {
			return ext[i].Grid.X < ext[j].Grid.X
		}
		return ext[i].Grid.Y < ext[j].Grid.Y
	})
	return append(cells, ext...)
}

// Topic returns a dialogue topic with its entries. Topic names are matched
// with their original case.
func (s *Store) Topic(name string) *Topic { return s.topics[name] }

// Topics returns every dialogue group sorted by topic name.
func (s *Store) Topics() []*Topic {
	out := make([]*Topic, 0, len(s.topics))
	for _, t := range s.topics {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Dialogue.ID < out[j].Dialogue.ID })
	return out
}

// DialogueEntries returns the responses filed under a topic, in file
// order. Unknown topics yield an empty list, not an error.
func (s *Store) DialogueEntries(topic string) []*esm.DialogueInfo {
	t, ok := s.topics[topic]
	if !ok {
		return nil
	}
	return t.Infos
}

// StartScripts returns the scripts launched on a new game, in first-seen
// order with duplicates dropped.
func (s *Store) StartScripts() []string { return s.startScripts }

// Skills returns all skills sorted by index.
func (s *Store) Skills() []*esm.Skill {
	out := make([]*esm.Skill, 0, len(s.skills))
	for _, sk := range s.skills {
		out = append(out, sk)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}

// MagicEffects returns all magic effects sorted by index.
func (s *Store) MagicEffects() []*esm.MagicEffect {
	out := make([]*esm.MagicEffect, 0, len(s.magicEffects))
	for _, m := range s.magicEffects {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Index < out[j].Index })
	return out
}
