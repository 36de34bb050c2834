package rename

import (
	"strconv"
	"strings"

	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/token"
	"github.com/sable-lang/sable/internal/traversal"
)

// OriginalName returns the base spelling of a possibly disambiguated
// name: everything before the last suffix separator, or the name itself
// when it carries no suffix. Only the last suffix comes off, so a name
// that was disambiguated twice peels one layer at a time.
func OriginalName(name string) string {
	if i := strings.LastIndex(name, UniqueIDSeparator); i >= 0 {
		return name[:i]
	}
	return name
}

// ContextualRenameInverter undoes contextual disambiguation where that
// is safe: each suffixed declaration is renamed back to its original
// spelling unless that spelling is referenced anywhere in the scopes it
// would then be visible in. When the original spelling is taken, the
// declaration falls back to the lowest free suffixed variant, so the
// output stays stable across repeated normalize/invert round trips.
//
// Global declarations are never suffixed by the contextual policy, so
// the global scope is not tracked.
type ContextualRenameInverter struct {
	markChanges bool
	sink        ChangeSink

	// referencedNames accumulates every name referenced in the scopes
	// enclosing the current one.
	referencedNames map[string]bool

	// referenceStack holds the per-scope reference sets; a child's set
	// merges into its parent's on exit.
	referenceStack []map[string]bool

	// nameMap collects, per suffixed spelling, the declaration name
	// nodes of the current scope that carry it.
	nameMap map[string][]*ast.Node
}

func NewContextualRenameInverter(markChanges bool, sink ChangeSink) *ContextualRenameInverter {
	return &ContextualRenameInverter{
		markChanges:     markChanges,
		sink:            sink,
		referencedNames: make(map[string]bool),
		nameMap:         make(map[string][]*ast.Node),
	}
}

// Process restores original names across the tree rooted at root.
func (c *ContextualRenameInverter) Process(root *ast.Node) {
	traversal.Traverse(root, c)
}

func (c *ContextualRenameInverter) EnterScope(t *traversal.Traversal) {
	if t.InGlobalScope() {
		return
	}
	c.referenceStack = append(c.referenceStack, c.referencedNames)
	c.referencedNames = make(map[string]bool)
}

// ExitScope renames the scope's own declarations, then folds its
// references into the parent scope's set.
func (c *ContextualRenameInverter) ExitScope(t *traversal.Traversal) {
	if t.InGlobalScope() {
		return
	}
	for _, v := range t.Scope().Vars() {
		c.handleScopeVar(v)
	}

	parent := c.referenceStack[len(c.referenceStack)-1]
	c.referenceStack = c.referenceStack[:len(c.referenceStack)-1]
	for name := range c.referencedNames {
		parent[name] = true
	}
	c.referencedNames = parent
}

// handleScopeVar tries to restore one declaration. The candidate set
// under the declared spelling covers every occurrence of that exact
// spelling in the scope, so one rename rewrites them all consistently.
func (c *ContextualRenameInverter) handleScopeVar(v *traversal.Var) {
	name := v.Name()
	if !containsSeparator(name) || OriginalName(name) == "" {
		return
	}

	newName := c.findReplacementName(OriginalName(name))
	nodes := c.nameMap[name]
	delete(c.nameMap, name)

	for _, n := range nodes {
		if !n.IsName() {
			panic("rename: non-name node recorded as rename candidate: " + n.String())
		}
		n.SetText(newName)
		if c.markChanges && c.sink != nil {
			c.sink.ReportChange(n)
			if parent := n.Parent(); parent != nil && parent.IsFunction() &&
				ast.FunctionName(parent) == n && ast.IsFunctionDeclaration(parent) {
				c.sink.ReportChangeToEnclosingScope(parent)
			}
		}
	}

	// The restored spelling is now referenced here and must stay
	// visible to the enclosing scopes.
	c.referencedNames[newName] = true
	delete(c.referencedNames, name)
}

// findReplacementName returns the original spelling when it is free, or
// the lowest suffixed variant that is.
func (c *ContextualRenameInverter) findReplacementName(original string) string {
	if c.isValidName(original) {
		return original
	}
	for i := 0; ; i++ {
		candidate := original + UniqueIDSeparator + strconv.Itoa(i)
		if c.isValidName(candidate) {
			return candidate
		}
	}
}

// isValidName reports whether a spelling can be assigned without
// capture: it must be a legal identifier, unreferenced in this scope
// and every scope traversed so far, and not the implicit arguments
// binding.
func (c *ContextualRenameInverter) isValidName(name string) bool {
	return token.IsIdentifier(name) && !c.referencedNames[name] && name != Arguments
}

func (c *ContextualRenameInverter) ShouldTraverse(t *traversal.Traversal, n, parent *ast.Node) bool {
	return true
}

// Visit records references, and remembers suffixed ones as rename
// candidates keyed on their exact spelling.
func (c *ContextualRenameInverter) Visit(t *traversal.Traversal, n, parent *ast.Node) {
	if t.ScopeDepth() == 0 || t.InGlobalScope() {
		return
	}

	// A shorthand object key implicitly references a same-named
	// variable; that reference must block restores that would capture
	// it. A suffixed shorthand is expanded so the implicit reference
	// becomes a rewritable name node.
	if n.IsStringKey() && !n.HasChildren() && parent != nil && parent.Kind() == ast.KindObjectLit {
		name := n.Text()
		c.referencedNames[name] = true
		if containsSeparator(name) {
			value := ast.Name(name).CopyPositionFrom(n)
			n.AddChildToBack(value)
			c.nameMap[name] = append(c.nameMap[name], value)
		}
		return
	}

	if !ast.IsReferenceName(n) {
		return
	}
	name := n.Text()
	c.referencedNames[name] = true
	if containsSeparator(name) {
		c.nameMap[name] = append(c.nameMap[name], n)
	}
}

func containsSeparator(name string) bool {
	return strings.Contains(name, UniqueIDSeparator)
}
