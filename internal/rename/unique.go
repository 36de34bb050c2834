package rename

import (
	"github.com/sable-lang/sable/internal/ast"
	"github.com/sable-lang/sable/internal/traversal"
)

// MakeNamesUnique rewrites local declarations so that no two distinct
// declarations in a program share an identifier, which lets later
// passes move and inline code without capture. The policy deciding
// which names change and what they become is a Renamer; the driver only
// maintains the frame stack in lockstep with the traversal and applies
// replacements to name occurrences.
//
// Functions contribute two frames: one for the function node itself,
// holding only the self-name of a named function expression, and one
// for the parameter list, shared by the parameters and every hoisted
// declaration of the body. Function body blocks therefore open no frame
// of their own.
type MakeNamesUnique struct {
	rootRenamer  Renamer
	renamerStack []Renamer
	markChanges  bool
	sink         ChangeSink
}

// NewMakeNamesUnique builds the pass. A nil renamer selects the
// contextual policy. When markChanges is set every rewrite is reported
// to sink.
func NewMakeNamesUnique(renamer Renamer, markChanges bool, sink ChangeSink) *MakeNamesUnique {
	if renamer == nil {
		renamer = NewContextualRenamer()
	}
	return &MakeNamesUnique{rootRenamer: renamer, markChanges: markChanges, sink: sink}
}

// Process runs the pass over the tree rooted at root.
func (m *MakeNamesUnique) Process(root *ast.Node) {
	traversal.Traverse(root, m)
}

func (m *MakeNamesUnique) EnterScope(t *traversal.Traversal) {
	if !t.HasBlockScoping() {
		panic("rename: MakeNamesUnique requires a block-scoped traversal")
	}
	root := t.ScopeRoot()

	// The function body shares the parameter list frame, and the
	// function scope's frames were pushed in ShouldTraverse.
	if ast.IsFunctionBlock(root) {
		return
	}

	var renamer Renamer
	if len(m.renamerStack) == 0 {
		if _, contextual := m.rootRenamer.(*ContextualRenamer); contextual && !t.InGlobalScope() {
			panic("rename: the contextual policy must start at the global scope")
		}
		renamer = m.rootRenamer
	} else {
		if root.IsFunction() {
			return
		}
		hoist := !ast.CreatesBlockScope(root)
		renamer = m.peek().CreateForChildScope(root, hoist)
	}

	if !root.IsFunction() {
		m.findDeclaredNames(t, root, renamer, false)
	}
	m.push(renamer)
}

func (m *MakeNamesUnique) ExitScope(t *traversal.Traversal) {
	root := t.ScopeRoot()
	// Function frames are popped when the function node is visited.
	if root.IsFunction() || ast.IsFunctionBlock(root) {
		return
	}
	// The global frame survives the pass so a caller can reuse it.
	if !t.InGlobalScope() {
		m.pop()
	}
}

func (m *MakeNamesUnique) ShouldTraverse(t *traversal.Traversal, n, parent *ast.Node) bool {
	switch n.Kind() {
	case ast.KindFunction:
		if len(m.renamerStack) == 0 {
			// The traversal is rooted at this function; EnterScope will
			// install the root frame for it.
			break
		}
		// The frame must exist before the name node is visited: a named
		// function expression can reference itself from its own body.
		renamer := m.peek().CreateForChildScope(n, false)
		name := ast.FunctionName(n).Text()
		if name != "" && parent != nil && !ast.IsFunctionDeclaration(n) {
			renamer.AddDeclaredName(name, false)
		}
		m.push(renamer)

	case ast.KindParamList:
		// Parameters and hoisted body declarations share one namespace.
		renamer := m.peek().CreateForChildScope(n, true)
		for _, lhs := range ast.LhsNodesOf(n) {
			renamer.AddDeclaredName(lhs.Text(), true)
		}
		if body := n.Next(); body != nil {
			m.findDeclaredNames(t, body, renamer, false)
		}
		m.push(renamer)
	}
	return true
}

func (m *MakeNamesUnique) Visit(t *traversal.Traversal, n, parent *ast.Node) {
	switch n.Kind() {
	case ast.KindName:
		m.visitName(n, parent)

	case ast.KindStringKey:
		// A shorthand object key implicitly references a same-named
		// variable. If that variable was renamed the shorthand can no
		// longer stand; expand it to an explicit key/value pair.
		if !n.HasChildren() {
			if m.getReplacementName(n.Text()) != "" {
				name := ast.Name(n.Text()).CopyPositionFrom(n)
				n.AddChildToBack(name)
				m.visitName(name, n)
			}
		}

	case ast.KindFunction:
		// Pop the parameter list frame, then the function frame.
		m.pop()
		m.pop()
	}
}

func (m *MakeNamesUnique) visitName(n, parent *ast.Node) {
	newName := m.getReplacementName(n.Text())
	if newName == "" {
		return
	}
	renamer := m.peek()
	if renamer.StripConstIfReplaced() {
		n.SetDeclaredConstant(false)
	}
	n.SetText(newName)
	if m.markChanges && m.sink != nil {
		m.sink.ReportChange(n)
		// Renaming a function declaration changes what the enclosing
		// scope declares.
		if parent != nil && parent.IsFunction() && ast.FunctionName(parent) == n &&
			ast.IsFunctionDeclaration(parent) {
			m.sink.ReportChangeToEnclosingScope(parent)
		}
	}
}

// getReplacementName walks the frame stack innermost first. The first
// frame that declared the name decides: an outer frame can never hold a
// replacement for a name an inner frame declared unrenamed.
func (m *MakeNamesUnique) getReplacementName(name string) string {
	for i := len(m.renamerStack) - 1; i >= 0; i-- {
		if newName := m.renamerStack[i].GetReplacementName(name); newName != "" {
			return newName
		}
	}
	return ""
}

// findDeclaredNames registers the declarations of the subtree under n
// with renamer. Hoisted declarations (var, function declarations) are
// always registered; block-scoped ones only when the current scope
// lexically owns them. recursive guards against walking out of the
// scope through a nested function: only the function's own name is
// taken, and only for declarations.
func (m *MakeNamesUnique) findDeclaredNames(t *traversal.Traversal, n *ast.Node, renamer Renamer, recursive bool) {
	if recursive && n.IsFunction() {
		if ast.IsFunctionDeclaration(n) {
			renamer.AddDeclaredName(ast.FunctionName(n).Text(), true)
		}
		return
	}

	if n.IsName() {
		switch ast.DeclarationKindOf(n) {
		case ast.DeclVar:
			renamer.AddDeclaredName(n.Text(), true)
		case ast.DeclFunction:
			if ast.IsFunctionDeclaration(n.Parent()) {
				renamer.AddDeclaredName(n.Text(), true)
			}
		case ast.DeclLet, ast.DeclConst, ast.DeclClass, ast.DeclCatch:
			if m.ownsBlockScopedDeclaration(t, n) {
				renamer.AddDeclaredName(n.Text(), false)
			}
		}
	}

	for c := n.FirstChild(); c != nil; c = c.Next() {
		m.findDeclaredNames(t, c, renamer, true)
	}
}

// ownsBlockScopedDeclaration reports whether the scope currently being
// entered is the one a block-scoped declaration binds in. When the
// current scope is a function, declarations directly in the body block
// count too, because the body shares the parameter list frame.
func (m *MakeNamesUnique) ownsBlockScopedDeclaration(t *traversal.Traversal, n *ast.Node) bool {
	scopeRoot := t.ScopeRoot()
	enclosing := ast.EnclosingScopeRoot(n)
	if enclosing == scopeRoot {
		return true
	}
	return scopeRoot.IsFunction() && enclosing == ast.FunctionBody(scopeRoot)
}

func (m *MakeNamesUnique) push(r Renamer) {
	m.renamerStack = append(m.renamerStack, r)
}

func (m *MakeNamesUnique) pop() {
	m.renamerStack = m.renamerStack[:len(m.renamerStack)-1]
}

func (m *MakeNamesUnique) peek() Renamer {
	return m.renamerStack[len(m.renamerStack)-1]
}
