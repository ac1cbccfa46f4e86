package resource

import (
	"sort"

	"github.com/cuemby/loom/pkg/entity"
)

// Item is one resource record once it has been loaded into memory (§3
// "Resource item").
type Item struct {
	Hash uint32
	Data []byte
}

// Storage is the loaded-or-not state of a single archive file: its items,
// sorted by hash, and the set of entities currently holding it loaded (§3
// "Resource storage"). Loaded iff Supplicants is non-empty.
type Storage struct {
	archivePath string
	loaded      bool
	items       []Item
	supplicants map[*entity.Entity]struct{}
}

func newStorage(archivePath string) *Storage {
	return &Storage{
		archivePath: archivePath,
		supplicants: make(map[*entity.Entity]struct{}),
	}
}

// Loaded reports whether the storage currently holds items in memory.
func (s *Storage) Loaded() bool { return s.loaded }

// SupplicantCount reports how many entities currently hold this storage
// loaded.
func (s *Storage) SupplicantCount() int { return len(s.supplicants) }

// lookup returns the first item whose hash matches. Duplicates are
// permitted in the archive; the first one read wins (§6: "duplicates are
// permitted and the first match wins on lookup").
func (s *Storage) lookup(hash uint32) (Item, bool) {
	for _, it := range s.items {
		if it.Hash == hash {
			return it, true
		}
	}
	return Item{}, false
}

// load sequentially reads headers and bytes from resolvedPath until EOF,
// inserting each item into the sorted-by-hash list (§4.4 "Load").
func (s *Storage) load(resolvedPath string) error {
	recs, err := readAllRecords(resolvedPath)
	if err != nil {
		return err
	}

	items := make([]Item, len(recs))
	for i, r := range recs {
		items[i] = Item{Hash: r.hash, Data: r.data}
	}
	sort.SliceStable(items, func(i, j int) bool { return items[i].Hash < items[j].Hash })

	s.items = items
	s.loaded = true
	return nil
}

// unload drops every item buffer and marks the storage not loaded. This is
// the single routing path for freeing items: both explicit unload and
// last-supplicant-departs go through it, per the resolved Open Question
// about honoring supplicant accounting uniformly.
func (s *Storage) unload() {
	s.items = nil
	s.loaded = false
}

// addSupplicant registers e as a holder of this storage. Idempotent. The
// first supplicant added to a not-yet-loaded storage triggers a load
// (§4.4 "Supplicant accounting").
func (s *Storage) addSupplicant(e *entity.Entity, resolvedPath string) error {
	if _, already := s.supplicants[e]; already {
		return nil
	}
	if len(s.supplicants) == 0 && !s.loaded {
		if err := s.load(resolvedPath); err != nil {
			return err
		}
	}
	s.supplicants[e] = struct{}{}
	return nil
}

// removeSupplicant withdraws e. If it was the last supplicant, the storage
// unloads (§4.4: "Removing the last supplicant unloads all items").
func (s *Storage) removeSupplicant(e *entity.Entity) {
	if _, present := s.supplicants[e]; !present {
		return
	}
	delete(s.supplicants, e)
	if len(s.supplicants) == 0 {
		s.unload()
	}
}
