package anim

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrAlreadyBound = errors.New("anim: name already bound")
	ErrNilHandle    = errors.New("anim: nil handle")
)

// Binding maps state names to handles. It is append-only: a name is bound at
// most once. Asset loaders may bind from any goroutine; readers see a
// consistent view.
type Binding struct {
	mu       sync.RWMutex
	handles  map[string]Handle
	required []string
}

// NewBinding creates an empty binding that reports Ready once every required
// name has a handle.
func NewBinding(required ...string) *Binding {
	return &Binding{
		handles:  make(map[string]Handle, len(required)),
		required: append([]string(nil), required...),
	}
}

func (b *Binding) Bind(name string, h Handle) error {
	if h == nil {
		return fmt.Errorf("anim: bind %s: %w", name, ErrNilHandle)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handles[name]; ok {
		return fmt.Errorf("anim: bind %s: %w", name, ErrAlreadyBound)
	}
	b.handles[name] = h
	return nil
}

func (b *Binding) Lookup(name string) (Handle, bool) {
	if b == nil {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	h, ok := b.handles[name]
	return h, ok
}

// Ready reports whether every required name is bound.
func (b *Binding) Ready() bool {
	return b != nil && len(b.Missing()) == 0
}

// Missing returns the required names that are not bound yet, sorted.
func (b *Binding) Missing() []string {
	if b == nil {
		return nil
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	var out []string
	for _, name := range b.required {
		if _, ok := b.handles[name]; !ok {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}

func (b *Binding) Len() int {
	if b == nil {
		return 0
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handles)
}
