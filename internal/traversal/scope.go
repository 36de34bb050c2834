package traversal

import "github.com/sable-lang/sable/internal/ast"

// Var is a variable bound in a scope: its name and defining name node.
type Var struct {
	name  string
	node  *ast.Node
	scope *Scope
}

func (v *Var) Name() string    { return v.name }
func (v *Var) Node() *ast.Node { return v.node }
func (v *Var) Scope() *Scope   { return v.scope }

// Scope is the symbol table of one lexical scope. Vars iterate in
// declaration order, which keeps passes deterministic.
type Scope struct {
	root   *ast.Node
	parent *Scope
	vars   []*Var
	byName map[string]*Var
}

func (s *Scope) Root() *ast.Node { return s.root }
func (s *Scope) Parent() *Scope  { return s.parent }

// Vars returns the variables bound directly in this scope, in
// declaration order.
func (s *Scope) Vars() []*Var { return s.vars }

// VarByName returns the variable bound in this scope under name, or nil.
func (s *Scope) VarByName(name string) *Var { return s.byName[name] }

func (s *Scope) declare(name string, node *ast.Node) {
	if name == "" {
		return
	}
	if _, ok := s.byName[name]; ok {
		return
	}
	v := &Var{name: name, node: node, scope: s}
	s.byName[name] = v
	s.vars = append(s.vars, v)
}

// ScopeCreator builds the symbol table for a scope root. The rename
// passes require a creator with block scoping.
type ScopeCreator interface {
	HasBlockScoping() bool
	CreateScope(root *ast.Node, parent *Scope) *Scope
}

// BlockScopeCreator builds scopes with full block scoping: var and
// function declarations bind at the nearest function or script scope,
// let/const/class/catch bindings at their owning block.
type BlockScopeCreator struct{}

func (BlockScopeCreator) HasBlockScoping() bool { return true }

func (BlockScopeCreator) CreateScope(root *ast.Node, parent *Scope) *Scope {
	s := &Scope{root: root, parent: parent, byName: make(map[string]*Var)}
	switch root.Kind() {
	case ast.KindScript:
		collectDeclarations(root, s, root, true)
	case ast.KindFunction:
		if name := ast.FunctionName(root); name != nil && name.Text() != "" && !ast.IsFunctionDeclaration(root) {
			s.declare(name.Text(), name)
		}
		if params := root.ChildAt(1); params != nil {
			for _, lhs := range ast.LhsNodesOf(params) {
				s.declare(lhs.Text(), lhs)
			}
		}
		if body := ast.FunctionBody(root); body != nil {
			collectDeclarations(body, s, root, true)
		}
	case ast.KindCatch:
		for _, lhs := range ast.LhsNodesOf(root.FirstChild()) {
			s.declare(lhs.Text(), lhs)
		}
	default: // Block, For
		collectDeclarations(root, s, root, false)
	}
	return s
}

// collectDeclarations walks the subtree under n declaring bindings that
// belong to scopeRoot. It never descends into nested functions; a
// nested function declaration contributes only its name, and only to
// hoist scopes.
func collectDeclarations(n *ast.Node, s *Scope, scopeRoot *ast.Node, hoistRoot bool) {
	if n.IsFunction() && n != scopeRoot {
		if hoistRoot && ast.IsFunctionDeclaration(n) {
			if name := ast.FunctionName(n); name != nil {
				s.declare(name.Text(), name)
			}
		}
		return
	}

	if n.IsName() {
		switch ast.DeclarationKindOf(n) {
		case ast.DeclVar:
			if hoistRoot {
				s.declare(n.Text(), n)
			}
		case ast.DeclLet, ast.DeclConst, ast.DeclClass, ast.DeclCatch:
			if ast.EnclosingScopeRoot(n) == scopeRoot {
				s.declare(n.Text(), n)
			}
		}
	}

	for c := n.FirstChild(); c != nil; c = c.Next() {
		collectDeclarations(c, s, scopeRoot, hoistRoot)
	}
}
