// Package packetdefs is a small, process-wide table mapping a packet
// definition's (identifier, version) pair to the GroupSchema that decodes
// its body — the codec.DefinitionStore collaborator a PACKET field
// consults on decode (§4.7). Modeled on addressmapper's plain
// sync-guarded lookup table rather than anything more elaborate: there is
// no need for a database or a generated registry here, just a table built
// once at startup.
package packetdefs

import (
	"fmt"
	"sync"

	codec "github.com/relayfish/playcodec"
)

type key struct {
	name    string
	version codec.Version
}

// Registry is a codec.DefinitionStore backed by an in-memory map.
type Registry struct {
	mu    sync.RWMutex
	specs map[key]codec.GroupSchema
}

// NewRegistry builds an empty definition registry.
func NewRegistry() *Registry {
	return &Registry{specs: make(map[key]codec.GroupSchema)}
}

// Register associates (name, version) with schema. Registering the same
// pair twice overwrites the earlier entry — definitions are expected to be
// registered once at startup, in an init() or a main() setup block.
func (r *Registry) Register(name string, version codec.Version, schema codec.GroupSchema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.specs[key{name: name, version: version}] = schema
}

// GetDefinition implements codec.DefinitionStore.
func (r *Registry) GetDefinition(name string, version codec.Version) (codec.GroupSchema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	schema, ok := r.specs[key{name: name, version: version}]
	return schema, ok
}

// String reports how many definitions are registered, mainly for debug
// logging from cmd/packetcat.
func (r *Registry) String() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := fmt.Sprintf("packetdefs.Registry(%d definitions)", len(r.specs))
	return out
}
