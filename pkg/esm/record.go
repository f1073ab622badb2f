package esm

// RecordMeta carries the fields every record kind shares: the flags from the
// record header and the deletion marker plugin files use to retire an entity
// from an earlier file in the load order.
type RecordMeta struct {
	HeaderFlags RecordFlags
	Deleted     bool
}

// Meta exposes the shared record fields through the Record interface.
func (m *RecordMeta) Meta() *RecordMeta { return m }

// Record is a decoded top-level entity.
type Record interface {
	// Kind returns the 4-byte record tag the entity was decoded from.
	Kind() Tag
	Meta() *RecordMeta
}

// DecodeRecord decodes the payload of the record whose header was just read.
// The reader must be positioned at the record's first subrecord. Records with
// an unrecognized tag decode to (nil, nil); the caller counts them and moves
// on. The caller always finishes with SkipRecord, so trailing subrecords a
// decoder does not consume cannot desynchronize the stream.
func DecodeRecord(r *Reader, tag Tag, flags RecordFlags) (Record, error) {
	switch tag {
	case TagTES3:
		return decodeFileHeader(r, flags)
	case TagGMST:
		return decodeGameSetting(r, flags)
	case TagGLOB:
		return decodeGlobalVariable(r, flags)
	case TagCLAS:
		return decodeClass(r, flags)
	case TagFACT:
		return decodeFaction(r, flags)
	case TagRACE:
		return decodeRace(r, flags)
	case TagBSGN:
		return decodeBirthSign(r, flags)
	case TagSKIL:
		return decodeSkill(r, flags)
	case TagMGEF:
		return decodeMagicEffect(r, flags)
	case TagSPEL:
		return decodeSpell(r, flags)
	case TagENCH:
		return decodeEnchantment(r, flags)
	case TagSCPT:
		return decodeScript(r, flags)
	case TagSSCR:
		return decodeStartScript(r, flags)
	case TagREGN:
		return decodeRegion(r, flags)
	case TagSOUN:
		return decodeSound(r, flags)
	case TagSNDG:
		return decodeSoundGen(r, flags)
	case TagLTEX:
		return decodeLandTexture(r, flags)
	case TagLAND:
		return decodeLand(r, flags)
	case TagCELL:
		return decodeCell(r, flags)
	case TagPGRD:
		return decodePathGrid(r, flags)
	case TagDIAL:
		return decodeDialogue(r, flags)
	case TagINFO:
		return decodeDialogueInfo(r, flags)
	case TagSTAT:
		return decodeStatic(r, flags)
	case TagDOOR:
		return decodeDoor(r, flags)
	case TagACTI:
		return decodeActivator(r, flags)
	case TagCONT:
		return decodeContainer(r, flags)
	case TagBODY:
		return decodeBodyPart(r, flags)
	case TagNPC:
		return decodeNPC(r, flags)
	case TagCREA:
		return decodeCreature(r, flags)
	case TagLEVI:
		return decodeLeveledItem(r, flags)
	case TagLEVC:
		return decodeLeveledCreature(r, flags)
	case TagWEAP:
		return decodeWeapon(r, flags)
	case TagARMO:
		return decodeArmor(r, flags)
	case TagCLOT:
		return decodeClothing(r, flags)
	case TagMISC:
		return decodeMiscItem(r, flags)
	case TagBOOK:
		return decodeBook(r, flags)
	case TagINGR:
		return decodeIngredient(r, flags)
	case TagALCH:
		return decodePotion(r, flags)
	case TagAPPA:
		return decodeApparatus(r, flags)
	case TagLOCK:
		return decodeLockpick(r, flags)
	case TagPROB:
		return decodeProbe(r, flags)
	case TagREPA:
		return decodeRepairItem(r, flags)
	case TagLIGH:
		return decodeLight(r, flags)
	default:
		return nil, nil
	}
}
