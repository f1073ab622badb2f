package esm

// Tag is a four-character ASCII chunk identifier. The same type names both
// top-level record kinds (STAT, CELL, ...) and the subrecords inside them
// (NAME, DATA, ...).
type Tag string

// Top-level record tags.
const (
	TagTES3 Tag = "TES3" // file header
	TagGMST Tag = "GMST" // game setting
	TagGLOB Tag = "GLOB" // global variable
	TagCLAS Tag = "CLAS" // class
	TagFACT Tag = "FACT" // faction
	TagRACE Tag = "RACE" // race
	TagSOUN Tag = "SOUN" // sound
	TagSKIL Tag = "SKIL" // skill
	TagMGEF Tag = "MGEF" // magic effect
	TagSCPT Tag = "SCPT" // script
	TagREGN Tag = "REGN" // region
	TagBSGN Tag = "BSGN" // birthsign
	TagLTEX Tag = "LTEX" // land texture
	TagSTAT Tag = "STAT" // static
	TagDOOR Tag = "DOOR" // door
	TagMISC Tag = "MISC" // misc item
	TagWEAP Tag = "WEAP" // weapon
	TagCONT Tag = "CONT" // container
	TagSPEL Tag = "SPEL" // spell
	TagCREA Tag = "CREA" // creature
	TagBODY Tag = "BODY" // body part
	TagLIGH Tag = "LIGH" // light
	TagENCH Tag = "ENCH" // enchantment
	TagNPC  Tag = "NPC_" // non-player character
	TagARMO Tag = "ARMO" // armor
	TagCLOT Tag = "CLOT" // clothing
	TagREPA Tag = "REPA" // repair item
	TagACTI Tag = "ACTI" // activator
	TagAPPA Tag = "APPA" // alchemy apparatus
	TagLOCK Tag = "LOCK" // lockpick
	TagPROB Tag = "PROB" // probe
	TagINGR Tag = "INGR" // ingredient
	TagBOOK Tag = "BOOK" // book
	TagALCH Tag = "ALCH" // potion
	TagLEVI Tag = "LEVI" // leveled item list
	TagLEVC Tag = "LEVC" // leveled creature list
	TagCELL Tag = "CELL" // cell
	TagLAND Tag = "LAND" // terrain tile
	TagPGRD Tag = "PGRD" // path grid
	TagSNDG Tag = "SNDG" // sound generator
	TagDIAL Tag = "DIAL" // dialogue topic
	TagINFO Tag = "INFO" // dialogue entry
	TagSSCR Tag = "SSCR" // start script
)

// Subrecord tags shared across many record kinds. Kind-specific decoders use
// these plus literal tags for their own one-off fields.
const (
	subNAME Tag = "NAME"
	subMODL Tag = "MODL"
	subFNAM Tag = "FNAM"
	subSCRI Tag = "SCRI"
	subITEX Tag = "ITEX"
	subENAM Tag = "ENAM"
	subDESC Tag = "DESC"
	subDATA Tag = "DATA"
	subINDX Tag = "INDX"
	subINTV Tag = "INTV"
	subFLTV Tag = "FLTV"
	subSNAM Tag = "SNAM"
	subANAM Tag = "ANAM"
	subBNAM Tag = "BNAM"
	subCNAM Tag = "CNAM"
	subDNAM Tag = "DNAM"
	subKNAM Tag = "KNAM"
	subRNAM Tag = "RNAM"
	subTNAM Tag = "TNAM"
	subNPCO Tag = "NPCO"
	subNPCS Tag = "NPCS"
	subAIDT Tag = "AIDT"
	subDODT Tag = "DODT"
	subDELE Tag = "DELE"
	subFRMR Tag = "FRMR"
	subMVRF Tag = "MVRF"
)

// RecordFlags are the raw flag bits from a top-level record header.
type RecordFlags uint32

// Known record header flag bits.
const (
	FlagPersistent RecordFlags = 0x0400
	FlagBlocked    RecordFlags = 0x2000
)

// Persistent reports whether the record is flagged as persistent.
func (f RecordFlags) Persistent() bool { return f&FlagPersistent != 0 }

// Blocked reports whether the record is flagged as blocked.
func (f RecordFlags) Blocked() bool { return f&FlagBlocked != 0 }

// knownRecordTags lists every record kind the decoder dispatch understands,
// in canonical file order. Used by the CLI for enumeration; the decoder itself
// switches on the tag directly.
var knownRecordTags = []Tag{
	TagGMST, TagGLOB, TagCLAS, TagFACT, TagRACE, TagSOUN, TagSKIL, TagMGEF,
	TagSCPT, TagREGN, TagBSGN, TagLTEX, TagSTAT, TagDOOR, TagMISC, TagWEAP,
	TagCONT, TagSPEL, TagCREA, TagBODY, TagLIGH, TagENCH, TagNPC, TagARMO,
	TagCLOT, TagREPA, TagACTI, TagAPPA, TagLOCK, TagPROB, TagINGR, TagBOOK,
	TagALCH, TagLEVI, TagLEVC, TagCELL, TagLAND, TagPGRD, TagSNDG, TagDIAL,
	TagINFO, TagSSCR,
}

// KnownRecordTags returns the record kinds the decoder understands, in
// canonical order. The returned slice must not be modified.
func KnownRecordTags() []Tag { return knownRecordTags }

// IsKnownRecordTag reports whether tag names a record kind this package
// decodes. Unknown kinds are skipped whole during loading, never rejected.
func IsKnownRecordTag(tag Tag) bool {
	for _, t := range knownRecordTags {
		if t == tag {
			return true
		}
	}
	return false
}
