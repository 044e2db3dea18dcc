package broadcast

import (
	"chat-router/errors"
	"encoding/json"
	"fmt"
	"sync"

	jsonpatch "github.com/evanphx/json-patch/v5"
)

// Replica is the dashboard side of the protocol: it applies patches in
// version order and tells the caller when a fresh snapshot is needed.
type Replica struct {
	mu      sync.RWMutex
	version string
	doc     []byte
}

func NewReplica() *Replica {
	return &Replica{}
}

// Reset installs a full snapshot as returned by broadcast.state.
func (r *Replica) Reset(version string, doc []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.version = version
	r.doc = append([]byte(nil), doc...)
}

// Apply moves the replica from oldVersion to newVersion.
// ErrVersionMismatch means an update was missed and the snapshot must be requested again.
func (r *Replica) Apply(oldVersion, newVersion string, patch []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.doc == nil || r.version != oldVersion {
		return fmt.Errorf("%w: at %q, patch from %q", errors.ErrVersionMismatch, r.version, oldVersion)
	}
	decoded, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return err
	}
	doc, err := decoded.Apply(r.doc)
	if err != nil {
		return err
	}
	r.doc = doc
	r.version = newVersion
	return nil
}

func (r *Replica) Version() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.version
}

func (r *Replica) Document() []byte {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]byte(nil), r.doc...)
}

func (r *Replica) Projection() (Projection, error) {
	var p Projection
	err := json.Unmarshal(r.Document(), &p)
	return p, err
}
