package locator

import (
	"fmt"
	"os"
)

// Handle identifies where font data comes from. It is either an OnDisk or an
// InMemory handle. Handles are immutable once constructed.
type Handle interface {
	// Index is the index of the face within a font collection (0 for single fonts).
	Index() uint32
	// ReadAll returns the raw font data. For in-memory handles the returned
	// slice is shared and must not be modified.
	ReadAll() ([]byte, error)
	// Key identifies the font resource, e.g. for de-duplication.
	Key() string
	String() string
	isHandle()
}

// OnDisk is a font file in the file system.
type OnDisk struct {
	Path      string
	FaceIndex uint32
}

// Index returns the index of the face within a font collection.
func (h OnDisk) Index() uint32 { return h.FaceIndex }

// ReadAll reads the font file.
func (h OnDisk) ReadAll() ([]byte, error) { return os.ReadFile(h.Path) }

// Key returns path and index.
func (h OnDisk) Key() string { return fmt.Sprintf("%s#%d", h.Path, h.FaceIndex) }

func (h OnDisk) String() string {
	return fmt.Sprintf("OnDisk{path=%q, index=%d}", h.Path, h.FaceIndex)
}

func (OnDisk) isHandle() {}

// InMemory is font data residing in memory, e.g. an embedded font.
// Copying an InMemory handle does not copy the data.
type InMemory struct {
	Name      string
	Data      []byte
	FaceIndex uint32
}

// Index returns the index of the face within a font collection.
func (h InMemory) Index() uint32 { return h.FaceIndex }

// ReadAll returns the (shared) font data.
func (h InMemory) ReadAll() ([]byte, error) {
	if len(h.Data) == 0 {
		return nil, fmt.Errorf("in-memory font %q has no data", h.Name)
	}
	return h.Data, nil
}

// Key returns name, data length and index.
func (h InMemory) Key() string {
	return fmt.Sprintf("mem:%s:%d#%d", h.Name, len(h.Data), h.FaceIndex)
}

func (h InMemory) String() string {
	return fmt.Sprintf("InMemory{name=%q, data_len=%d, index=%d}", h.Name, len(h.Data), h.FaceIndex)
}

func (InMemory) isHandle() {}

var _ Handle = OnDisk{}
var _ Handle = InMemory{}

// Dedup removes handles referring to the same font resource, keeping the first
// occurrence and the order of the others.
func Dedup(handles []Handle) []Handle {
	seen := make(map[string]bool, len(handles))
	out := handles[:0:0]
	for _, h := range handles {
		if h == nil || seen[h.Key()] {
			continue
		}
		seen[h.Key()] = true
		out = append(out, h)
	}
	return out
}
