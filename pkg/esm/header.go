package esm

// File types carried in the TES3 header.
const (
	FileTypePlugin uint32 = 0  // .esp
	FileTypeMaster uint32 = 1  // .esm
	FileTypeSave   uint32 = 32 // .ess
)

// Master names a content file this file depends on, with the dependency's
// byte size as recorded at save time.
type Master struct {
	Name string
	Size uint64
}

// FileHeader is the TES3 record that opens every content file.
type FileHeader struct {
	RecordMeta
	Version     float32
	FileType    uint32
	Author      string
	Description string
	NumRecords  uint32 // record count the writer claimed, excluding TES3
	Masters     []Master
}

func (*FileHeader) Kind() Tag { return TagTES3 }

// IsMaster reports whether the file declares itself a master (.esm).
func (h *FileHeader) IsMaster() bool { return h.FileType == FileTypeMaster }

func decodeFileHeader(r *Reader, flags RecordFlags) (*FileHeader, error) {
	h := &FileHeader{RecordMeta: RecordMeta{HeaderFlags: flags}}
	for r.HasMoreSubrecords() {
		tag, err := r.ReadSubTag()
		if err != nil {
			return nil, err
		}
		if _, err := r.ReadSubHeader(); err != nil {
			return nil, err
		}
		switch tag {
		case "HEDR":
			f := NewFieldReader(r.SubBytes())
			h.Version = f.Float32()
			h.FileType = f.Uint32()
			h.Author = f.String(32)
			h.Description = f.String(256)
			h.NumRecords = f.Uint32()
		case "MAST":
			h.Masters = append(h.Masters, Master{Name: r.ReadString()})
		case subDATA:
			// Pairs with the preceding MAST.
			if n := len(h.Masters); n > 0 {
				f := NewFieldReader(r.SubBytes())
				h.Masters[n-1].Size = f.Uint64()
			}
		}
		r.SkipSubrecord()
	}
	return h, nil
}
