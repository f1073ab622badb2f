package data

import (
	"sort"
	"time"

	"github.com/Faultbox/resdayn/pkg/esm"
)

// Stats accumulates load statistics across content files.
type Stats struct {
	Files    []string
	Records  int // top-level records seen, not counting file headers
	Inserted int
	Deleted  int // tombstones applied
	Unknown  int // records of kinds this reader does not know
	ByKind   map[esm.Tag]int
	Elapsed  time.Duration
}

// KindCount is one row of the per-kind histogram.
type KindCount struct {
	Tag   esm.Tag
	Count int
}

// KindCounts returns the per-kind histogram sorted by count, largest
// first, with ties broken by tag.
func (s Stats) KindCounts() []KindCount {
	out := make([]KindCount, 0, len(s.ByKind))
	for tag, count := range s.ByKind {
		out = append(out, KindCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out
}
