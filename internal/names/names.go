// Package names resolves numeric item, monster and skill identifiers to
// their symbolic (Aegis) names.
package names

import (
	"fmt"
	"strings"
)

// Kind is the identifier space a binding belongs to.
type Kind int

const (
	Item Kind = iota
	Mob
	Skill
	kindCount
)

func (k Kind) String() string {
	switch k {
	case Item:
		return "item"
	case Mob:
		return "mob"
	case Skill:
		return "skill"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// UnresolvedError reports an identifier without a name binding.
type UnresolvedError struct {
	Kind Kind
	ID   uint32
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s name for %s id %d is not known", e.Kind, e.Kind, e.ID)
}

// Resolver holds the id → name bindings of every kind. It is filled once
// by Preload (or Bind in tests) and only read afterwards.
type Resolver struct {
	tables [kindCount]map[uint32]string
}

// NewResolver returns an empty Resolver.
func NewResolver() *Resolver {
	r := &Resolver{}
	for i := range r.tables {
		r.tables[i] = make(map[uint32]string)
	}
	return r
}

// Bind records name for id, replacing an earlier binding.
func (r *Resolver) Bind(kind Kind, id uint32, name string) {
	r.tables[kind][id] = strings.TrimSpace(name)
}

// Resolve returns the name bound to id.
func (r *Resolver) Resolve(kind Kind, id uint32) (string, bool) {
	name, ok := r.tables[kind][id]
	return name, ok
}

// MustResolve is Resolve with an *UnresolvedError for missing bindings.
func (r *Resolver) MustResolve(kind Kind, id uint32) (string, error) {
	if name, ok := r.tables[kind][id]; ok {
		return name, nil
	}
	return "", &UnresolvedError{Kind: kind, ID: id}
}

// Len returns the number of bindings of kind.
func (r *Resolver) Len(kind Kind) int {
	return len(r.tables[kind])
}
