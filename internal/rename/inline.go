package rename

import (
	"strings"

	"github.com/sable-lang/sable/internal/ast"
)

// InlineRenamer renames every declared local unconditionally. It is
// used when injecting code into an already-normalized tree, where the
// injected names must not capture or be captured by anything around the
// injection point. Names that already carry a disambiguation suffix are
// stripped back to their base before the new suffix is attached, so
// repeated injections do not stack suffixes.
type InlineRenamer struct {
	convention       Convention
	uniqueIDSupplier UniqueIDSupplier
	idPrefix         string
	declarations     map[string]string
	hoistRenamer     Renamer
}

// NewInlineRenamer creates a frame that renames unconditionally. The id
// prefix must be non-empty so injected names are recognizable. A root
// frame is created with hoistingTargetScope set and a nil parent.
func NewInlineRenamer(convention Convention, supplier UniqueIDSupplier, idPrefix string, hoistingTargetScope bool, parent Renamer) *InlineRenamer {
	if idPrefix == "" {
		panic("rename: inline renamer requires a non-empty id prefix")
	}
	r := &InlineRenamer{
		convention:       convention,
		uniqueIDSupplier: supplier,
		idPrefix:         idPrefix,
		declarations:     make(map[string]string),
	}
	if hoistingTargetScope || parent == nil {
		r.hoistRenamer = r
	} else {
		r.hoistRenamer = parent.GetHoistRenamer()
	}
	return r
}

func (r *InlineRenamer) AddDeclaredName(name string, hoisted bool) {
	if hoisted && r.hoistRenamer != Renamer(r) {
		r.hoistRenamer.AddDeclaredName(name, true)
		return
	}
	if name == Arguments || name == "" {
		return
	}
	if _, ok := r.declarations[name]; ok {
		return
	}
	r.declarations[name] = r.uniqueName(name)
}

// uniqueName builds the replacement: the base of name (any existing
// suffix stripped), prefixed when the convention marks it exported,
// followed by the separator, the id prefix and a fresh id.
func (r *InlineRenamer) uniqueName(name string) string {
	if i := strings.LastIndex(name, UniqueIDSeparator); i >= 0 {
		name = name[:i]
	}
	if r.convention != nil && r.convention.IsExported(name) {
		name = exportSafePrefix + name
	}
	return name + UniqueIDSeparator + r.idPrefix + r.uniqueIDSupplier()
}

func (r *InlineRenamer) GetReplacementName(oldName string) string {
	return r.declarations[oldName]
}

// StripConstIfReplaced is true for the inline policy: a renamed
// constant no longer aliases its declaration, so the marker must not
// survive the rewrite.
func (r *InlineRenamer) StripConstIfReplaced() bool { return true }

func (r *InlineRenamer) CreateForChildScope(scopeRoot *ast.Node, hoistingTargetScope bool) Renamer {
	return NewInlineRenamer(r.convention, r.uniqueIDSupplier, r.idPrefix, hoistingTargetScope, r)
}

func (r *InlineRenamer) GetHoistRenamer() Renamer { return r.hoistRenamer }

// BoilerplateRenamer handles template code that is expanded many times
// into one program: top-level names keep contextual semantics so the
// template stays readable, while everything in nested scopes is renamed
// unconditionally to keep the expansions from colliding.
type BoilerplateRenamer struct {
	*ContextualRenamer
	convention       Convention
	uniqueIDSupplier UniqueIDSupplier
	idPrefix         string
}

func NewBoilerplateRenamer(convention Convention, supplier UniqueIDSupplier, idPrefix string) *BoilerplateRenamer {
	if idPrefix == "" {
		panic("rename: boilerplate renamer requires a non-empty id prefix")
	}
	return &BoilerplateRenamer{
		ContextualRenamer: NewContextualRenamer(),
		convention:        convention,
		uniqueIDSupplier:  supplier,
		idPrefix:          idPrefix,
	}
}

func (r *BoilerplateRenamer) CreateForChildScope(scopeRoot *ast.Node, hoistingTargetScope bool) Renamer {
	return NewInlineRenamer(r.convention, r.uniqueIDSupplier, r.idPrefix, hoistingTargetScope, r)
}

// WhitelistedRenamer filters another policy down to an allowed name
// set: names outside the set are neither registered nor renamed.
type WhitelistedRenamer struct {
	delegate  Renamer
	whitelist map[string]bool
}

func NewWhitelistedRenamer(delegate Renamer, whitelist map[string]bool) *WhitelistedRenamer {
	return &WhitelistedRenamer{delegate: delegate, whitelist: whitelist}
}

func (r *WhitelistedRenamer) AddDeclaredName(name string, hoisted bool) {
	if r.whitelist[name] {
		r.delegate.AddDeclaredName(name, hoisted)
	}
}

func (r *WhitelistedRenamer) GetReplacementName(oldName string) string {
	if r.whitelist[oldName] {
		return r.delegate.GetReplacementName(oldName)
	}
	return ""
}

func (r *WhitelistedRenamer) StripConstIfReplaced() bool {
	return r.delegate.StripConstIfReplaced()
}

func (r *WhitelistedRenamer) CreateForChildScope(scopeRoot *ast.Node, hoistingTargetScope bool) Renamer {
	return NewWhitelistedRenamer(r.delegate.CreateForChildScope(scopeRoot, hoistingTargetScope), r.whitelist)
}

func (r *WhitelistedRenamer) GetHoistRenamer() Renamer {
	return r.delegate.GetHoistRenamer()
}
