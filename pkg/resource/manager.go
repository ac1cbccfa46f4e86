// Package resource implements the lazily-loaded, reference-counted
// resource store: the archive wire format (§6), the per-archive Storage,
// and the Manager that maps archive paths to storages (§4.4).
package resource

import (
	"os"
	"path/filepath"

	"github.com/cuemby/loom/pkg/entity"
)

// Mode selects declare's behavior: Development writes the archive,
// Release only verifies presence (§6 "Environment / config").
type Mode int

const (
	Development Mode = iota
	Release
)

// Manager owns every Storage, keyed by archive path, and resolves archive
// identifiers to files under Root (§3 "Resource Manager", §6 "Storage
// location").
type Manager struct {
	Root string
	Mode Mode

	storages map[string]*Storage
}

// NewManager returns a manager rooted at root, operating in the given
// mode. The default root the caller should pass is "program_data".
func NewManager(root string, mode Mode) *Manager {
	return &Manager{
		Root:     root,
		Mode:     mode,
		storages: make(map[string]*Storage),
	}
}

// resolvePath turns an archive identifier into its on-disk path: Root
// joined with "<archivePath>.data".
func (m *Manager) resolvePath(archivePath string) string {
	return filepath.Join(m.Root, archivePath+".data")
}

func (m *Manager) storageFor(archivePath string) *Storage {
	s, ok := m.storages[archivePath]
	if !ok {
		s = newStorage(archivePath)
		m.storages[archivePath] = s
	}
	return s
}

// Declare ensures the archive at archivePath has a record for
// sourceFilePath. In Development mode it reads sourceFilePath's bytes and
// appends a new record hashed from sourceFilePath itself, then reports
// whether the archive now contains that hash. In Release mode it only
// checks for the hash's presence and never writes (§4.4 "Declare").
func (m *Manager) Declare(archivePath, sourceFilePath string) bool {
	resolved := m.resolvePath(archivePath)
	hash := HashPath(sourceFilePath)

	if m.Mode == Development {
		data, err := os.ReadFile(sourceFilePath)
		if err != nil {
			return false
		}
		if err := appendRecord(resolved, record{hash: hash, data: data}); err != nil {
			return false
		}
	}

	recs, err := readAllRecords(resolved)
	if err != nil {
		return false
	}
	for _, r := range recs {
		if r.hash == hash {
			return true
		}
	}
	return false
}

// Fetch resolves resourcePath inside the archive at archivePath, adding
// entity as a supplicant. The first supplicant for an unloaded archive
// triggers a full load (§4.4 "Fetch").
func (m *Manager) Fetch(e *entity.Entity, archivePath, resourcePath string) ([]byte, bool) {
	storage := m.storageFor(archivePath)
	if err := storage.addSupplicant(e, m.resolvePath(archivePath)); err != nil {
		return nil, false
	}

	hash := HashPath(resourcePath)
	item, ok := storage.lookup(hash)
	if !ok {
		return nil, false
	}
	return item.Data, true
}

// Withdraw removes e as a supplicant from every storage it holds,
// unloading any storage whose last supplicant it was. Called when an
// entity is annihilated (§3 "withdraws its supplicant-ship from every
// resource storage").
func (m *Manager) Withdraw(e *entity.Entity) {
	for _, s := range m.storages {
		s.removeSupplicant(e)
	}
}

// Storage exposes the Storage for an archive path for introspection (e.g.
// tests checking Loaded or SupplicantCount), without creating one that
// doesn't already exist.
func (m *Manager) Storage(archivePath string) (*Storage, bool) {
	s, ok := m.storages[archivePath]
	return s, ok
}

// LoadedCount reports how many archives currently hold their items in
// memory, for introspection and metrics.
func (m *Manager) LoadedCount() int {
	n := 0
	for _, s := range m.storages {
		if s.Loaded() {
			n++
		}
	}
	return n
}

// Close unloads every storage the manager holds, routing through the same
// unload path a last-supplicant departure uses (§9 Open Question (c)).
// Called once, at engine shutdown.
func (m *Manager) Close() {
	for _, s := range m.storages {
		s.unload()
	}
}
