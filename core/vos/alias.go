package vos

import (
	"strings"

	"github.com/elliotchance/orderedmap/v3"
)

// Alias is a single command alias.
type Alias struct {
	Name  string
	Value string
}

// String formats the alias the way the alias builtin lists it.
func (a Alias) String() string {
	return a.Name + "='" + a.Value + "'"
}

// ParseAlias splits a "name=value" definition. ok is false if def has no '='.
func ParseAlias(def string) (alias Alias, ok bool) {
	name, value, ok := strings.Cut(def, "=")
	return Alias{Name: name, Value: value}, ok
}

// Aliases holds command aliases in definition order. Aliases are kept apart
// from the environment so they are never exported to child processes.
type Aliases struct {
	table *orderedmap.OrderedMap[string, string]
}

// NewAliases creates an alias table seeded with the given aliases.
func NewAliases(seed ...Alias) *Aliases {
	out := &Aliases{
		table: orderedmap.NewOrderedMap[string, string](),
	}
	for _, a := range seed {
		// Seeds come from validated config.
		_ = out.Set(a.Name, a.Value)
	}
	return out
}

// Set defines or replaces an alias.
func (a *Aliases) Set(name, value string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	a.table.Set(name, value)
	return nil
}

// Get looks up an alias.
func (a *Aliases) Get(name string) (string, bool) {
	return a.table.Get(name)
}

// Delete removes an alias, it reports whether the alias existed.
func (a *Aliases) Delete(name string) bool {
	return a.table.Delete(name)
}

// List returns all the aliases in definition order.
func (a *Aliases) List() []Alias {
	out := make([]Alias, 0, a.table.Len())
	for name, value := range a.table.AllFromFront() {
		out = append(out, Alias{Name: name, Value: value})
	}
	return out
}
