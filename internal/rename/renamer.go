// Package rename implements the name-disambiguation passes of the
// compiler: a single-traversal driver that rewrites every local
// declaration to a program-wide unique identifier under a pluggable
// naming policy, and an inverse pass that collapses disambiguation
// suffixes back to the original spelling where that is collision-free.
package rename

import (
	"strconv"
	"strings"

	"github.com/sable-lang/sable/internal/ast"
)

const (
	// Arguments is special cased to handle cases where a local name
	// shadows the implicit arguments binding. It is never renamed.
	Arguments = "arguments"

	// UniqueIDSeparator delimits a disambiguation suffix. It never
	// occurs in a genuine source identifier, so any name containing it
	// is recognized as already disambiguated.
	UniqueIDSeparator = "$sable$"

	// exportSafePrefix guards names the naming convention flags as
	// exported, so injected copies are never mistaken for intentionally
	// exported symbols.
	exportSafePrefix = "Sable_"
)

// Renamer is the per-scope naming policy frame. One instance exists per
// currently open lexical scope.
type Renamer interface {
	// AddDeclaredName registers a name declared directly in this scope.
	// When hoisted is set the name is declared in the nearest enclosing
	// hoist scope instead of the scope represented by this Renamer.
	AddDeclaredName(name string, hoisted bool)

	// GetReplacementName returns the replacement for a name declared in
	// this frame, or "" when the name is unknown here or keeps its
	// original spelling.
	GetReplacementName(oldName string) string

	// StripConstIfReplaced reports whether a rewrite should also clear
	// the declared constant marker.
	StripConstIfReplaced() bool

	// CreateForChildScope produces the frame for a scope nested in this
	// one. hoistingTargetScope is set for function bodies, modules and
	// the global scope.
	CreateForChildScope(scopeRoot *ast.Node, hoistingTargetScope bool) Renamer

	// GetHoistRenamer returns the closest hoisting target for var and
	// function declarations, possibly this frame itself.
	GetHoistRenamer() Renamer
}

// UniqueIDSupplier produces distinct id strings for the inline and
// boilerplate policies.
type UniqueIDSupplier func() string

// Convention answers naming-convention queries about the compiled
// corpus.
type Convention interface {
	// IsExported reports whether a name is externally visible by
	// convention even without an explicit export.
	IsExported(name string) bool
}

// UnderscoreConvention treats a leading underscore as an export marker.
type UnderscoreConvention struct{}

func (UnderscoreConvention) IsExported(name string) bool {
	return strings.HasPrefix(name, "_")
}

// NoConvention treats no name as exported.
type NoConvention struct{}

func (NoConvention) IsExported(string) bool { return false }

// ContextualRenamer renames every local name to be unique. The first
// encountered declaration of a given name is left in its original form;
// later declarations are suffixed with the running count of scopes that
// declared the name. The counter is monotonic across one whole pass
// run, so uniqueness needs no ancestor lookups.
//
// The root ContextualRenamer must represent the global scope: global
// declarations only reserve their name and are never renamed, since
// globals may be externally visible.
type ContextualRenamer struct {
	scopeRoot *ast.Node

	// nameUsage is shared between this frame and every frame derived
	// from it: it counts declarations of each name across the entire
	// pass run.
	nameUsage map[string]int

	// declarations is per frame: the names declared directly here and
	// their replacements ("" = keeps its original spelling).
	declarations map[string]string

	global       bool
	hoistRenamer Renamer
}

// NewContextualRenamer creates the root frame for the global scope.
func NewContextualRenamer() *ContextualRenamer {
	r := &ContextualRenamer{
		nameUsage:    make(map[string]int),
		declarations: make(map[string]string),
		global:       true,
	}
	r.hoistRenamer = r
	return r
}

func newChildContextualRenamer(scopeRoot *ast.Node, nameUsage map[string]int, hoistingTargetScope bool, parent Renamer) *ContextualRenamer {
	// The parameter list stands in for the function body scope: the two
	// are one namespace.
	if !ast.CreatesScope(scopeRoot) && !scopeRoot.IsParamList() {
		panic("rename: child frame for a node that opens no scope: " + scopeRoot.String())
	}
	if scopeRoot.IsFunction() && hoistingTargetScope {
		panic("rename: a function node frame must not be a hoist target")
	}

	r := &ContextualRenamer{
		scopeRoot:    scopeRoot,
		nameUsage:    nameUsage,
		declarations: make(map[string]string),
	}
	if hoistingTargetScope {
		if ast.CreatesBlockScope(scopeRoot) {
			panic("rename: block scope frame marked as hoist target: " + scopeRoot.String())
		}
		r.hoistRenamer = r
	} else {
		if !ast.CreatesBlockScope(scopeRoot) && !scopeRoot.IsFunction() {
			panic("rename: non-block frame missing hoist target: " + scopeRoot.String())
		}
		r.hoistRenamer = parent.GetHoistRenamer()
	}
	return r
}

func (r *ContextualRenamer) CreateForChildScope(scopeRoot *ast.Node, hoistingTargetScope bool) Renamer {
	return newChildContextualRenamer(scopeRoot, r.nameUsage, hoistingTargetScope, r)
}

func (r *ContextualRenamer) AddDeclaredName(name string, hoisted bool) {
	if hoisted && r.hoistRenamer != Renamer(r) {
		r.hoistRenamer.AddDeclaredName(name, true)
		return
	}
	if name == Arguments || name == "" {
		return
	}
	if r.global {
		r.reserveName(name)
		return
	}
	if _, ok := r.declarations[name]; ok {
		// Registration is idempotent per frame.
		return
	}
	id := r.incrementNameCount(name)
	newName := ""
	if id != 0 {
		newName = uniqueName(name, id)
	}
	r.declarations[name] = newName
}

func (r *ContextualRenamer) GetReplacementName(oldName string) string {
	return r.declarations[oldName]
}

func (r *ContextualRenamer) StripConstIfReplaced() bool { return false }

func (r *ContextualRenamer) GetHoistRenamer() Renamer { return r.hoistRenamer }

// uniqueName derives the replacement for the id-th declaration of name.
func uniqueName(name string, id int) string {
	return name + UniqueIDSeparator + strconv.Itoa(id)
}

// reserveName forces the count of a global name to at least one, so no
// later scope can claim the unsuffixed spelling.
func (r *ContextualRenamer) reserveName(name string) {
	if r.nameUsage[name] == 0 {
		r.nameUsage[name] = 1
	}
}

// incrementNameCount bumps the declaration count of name and returns
// the previous count.
func (r *ContextualRenamer) incrementNameCount(name string) int {
	id := r.nameUsage[name]
	r.nameUsage[name] = id + 1
	return id
}
