// Package traversal drives depth-first walks over the uniform AST with
// scope tracking. Callbacks see scope entry and exit events plus a
// pre-order traversal gate and a post-order visit per node, which is
// what the rename passes are built on.
package traversal

import "github.com/sable-lang/sable/internal/ast"

// Callback receives traversal events. ShouldTraverse fires pre-order
// and may prune a subtree; Visit fires post-order, after any scope
// opened by the node has been exited.
type Callback interface {
	EnterScope(t *Traversal)
	ExitScope(t *Traversal)
	ShouldTraverse(t *Traversal, n, parent *ast.Node) bool
	Visit(t *Traversal, n, parent *ast.Node)
}

// Traversal is a single depth-first walk. The scope stack is live only
// during Traverse and is strictly LIFO.
type Traversal struct {
	callback Callback
	creator  ScopeCreator
	scopes   []*Scope
}

// NewTraversal creates a traversal with an explicit scope creator.
func NewTraversal(cb Callback, creator ScopeCreator) *Traversal {
	return &Traversal{callback: cb, creator: creator}
}

// Traverse walks root with the default block-scoped creator.
func Traverse(root *ast.Node, cb Callback) {
	NewTraversal(cb, BlockScopeCreator{}).Traverse(root)
}

// Traverse walks the tree rooted at root.
func (t *Traversal) Traverse(root *ast.Node) {
	t.traverseBranch(root, root.Parent())
}

func (t *Traversal) traverseBranch(n, parent *ast.Node) {
	if !t.callback.ShouldTraverse(t, n, parent) {
		return
	}

	entered := false
	if ast.CreatesScope(n) {
		t.pushScope(n)
		entered = true
	}

	for c := n.FirstChild(); c != nil; {
		next := c.Next()
		t.traverseBranch(c, n)
		c = next
	}

	if entered {
		t.popScope()
	}
	t.callback.Visit(t, n, parent)
}

func (t *Traversal) pushScope(root *ast.Node) {
	var parent *Scope
	if len(t.scopes) > 0 {
		parent = t.scopes[len(t.scopes)-1]
	}
	t.scopes = append(t.scopes, t.creator.CreateScope(root, parent))
	t.callback.EnterScope(t)
}

func (t *Traversal) popScope() {
	t.callback.ExitScope(t)
	t.scopes = t.scopes[:len(t.scopes)-1]
}

// Scope returns the innermost open scope.
func (t *Traversal) Scope() *Scope {
	if len(t.scopes) == 0 {
		return nil
	}
	return t.scopes[len(t.scopes)-1]
}

// ScopeRoot returns the root node of the innermost open scope.
func (t *Traversal) ScopeRoot() *ast.Node {
	if s := t.Scope(); s != nil {
		return s.Root()
	}
	return nil
}

// ScopeDepth returns the number of open scopes.
func (t *Traversal) ScopeDepth() int { return len(t.scopes) }

// InGlobalScope reports whether the innermost open scope is the global
// (script) scope.
func (t *Traversal) InGlobalScope() bool {
	return len(t.scopes) == 1 && t.scopes[0].Root().IsScript()
}

// HasBlockScoping reports whether the scope creator distinguishes block
// scopes from hoist scopes.
func (t *Traversal) HasBlockScoping() bool {
	return t.creator.HasBlockScoping()
}
