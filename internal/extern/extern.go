// Package extern holds the process-wide registry of host functions that
// generated code may call. It is populated once at startup by the
// builtins package and read by the runtime when it declares prototypes
// into each fresh REPL module.
package extern

import (
	"sync"

	"github.com/flare-lang/flare/internal/codegen"
	"github.com/flare-lang/flare/internal/types"
)

// Descriptor describes one external: its declared signature and the
// native function bound to it.
type Descriptor struct {
	Name string
	Args []types.Type
	Ret  types.Type
	Fn   codegen.NativeFn
}

// Sig returns the external's function type.
func (d *Descriptor) Sig() *types.FnType {
	return &types.FnType{Args: d.Args, Ret: d.Ret}
}

var (
	mu    sync.Mutex
	order []string
	table = make(map[string]*Descriptor)
)

// Register adds an external under its name. Later registrations of the
// same name replace the earlier descriptor but keep its position.
func Register(d *Descriptor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := table[d.Name]; !ok {
		order = append(order, d.Name)
	}
	table[d.Name] = d
}

// Lookup finds a registered external.
func Lookup(name string) (*Descriptor, bool) {
	mu.Lock()
	defer mu.Unlock()
	d, ok := table[name]
	return d, ok
}

// All returns the registered externals in registration order.
func All() []*Descriptor {
	mu.Lock()
	defer mu.Unlock()
	out := make([]*Descriptor, 0, len(order))
	for _, name := range order {
		out = append(out, table[name])
	}
	return out
}
