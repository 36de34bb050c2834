package ast

// Scope- and binding-classification queries over the uniform tree.
// These are the queries the renaming passes consume; they encode the
// hoisting rules of the language: var and function declarations bind at
// the nearest function/script scope, let/const/class/catch bindings at
// the block that lexically owns them.

// DeclKind classifies how a name node binds, if at all.
type DeclKind int

const (
	DeclNone DeclKind = iota
	DeclVar
	DeclLet
	DeclConst
	DeclCatch
	DeclClass
	DeclFunction
	DeclParam
)

// CreatesScope reports whether n opens a lexical scope.
func CreatesScope(n *Node) bool {
	switch n.kind {
	case KindScript, KindFunction, KindBlock, KindFor, KindCatch:
		return true
	}
	return false
}

// CreatesBlockScope reports whether n opens a block scope, i.e. a scope
// that is not a hoist target for var and function declarations.
func CreatesBlockScope(n *Node) bool {
	switch n.kind {
	case KindBlock, KindFor, KindCatch:
		return true
	}
	return false
}

// IsFunctionBlock reports whether n is the body block of a function.
func IsFunctionBlock(n *Node) bool {
	return n.IsBlock() && n.parent != nil && n.parent.IsFunction()
}

// IsFunctionDeclaration reports whether n is a function declaration
// (statement position) rather than a function expression.
func IsFunctionDeclaration(n *Node) bool {
	if !n.IsFunction() || n.parent == nil {
		return false
	}
	switch n.parent.kind {
	case KindScript, KindBlock:
		return true
	}
	return false
}

// FunctionName returns the name node of a function. Anonymous functions
// carry a name node with empty text.
func FunctionName(fn *Node) *Node {
	return fn.FirstChild()
}

// FunctionBody returns the body block of a function.
func FunctionBody(fn *Node) *Node {
	return fn.LastChild()
}

// EnclosingScopeRoot returns the nearest ancestor of n that opens a
// scope, or nil for a detached node.
func EnclosingScopeRoot(n *Node) *Node {
	for p := n.parent; p != nil; p = p.parent {
		if CreatesScope(p) {
			return p
		}
	}
	return nil
}

// DeclarationKindOf classifies the binding introduced by a name node.
// Names in value position (initializers, default expressions, object
// literal values) yield DeclNone. The walk climbs through pattern
// wrappers so destructured bindings classify like plain ones.
func DeclarationKindOf(n *Node) DeclKind {
	if !n.IsName() {
		return DeclNone
	}
	cur := n
	for {
		p := cur.parent
		if p == nil {
			return DeclNone
		}
		switch p.kind {
		case KindArrayPattern, KindObjectPattern, KindRest:
			cur = p
		case KindDefaultValue:
			if p.first != cur {
				return DeclNone
			}
			cur = p
		case KindStringKey:
			if p.parent == nil || p.parent.kind != KindObjectPattern {
				return DeclNone
			}
			cur = p
		case KindDestructuringLHS:
			if p.first != cur {
				return DeclNone
			}
			cur = p
		case KindVar:
			return DeclVar
		case KindLet:
			return DeclLet
		case KindConst:
			return DeclConst
		case KindCatch:
			if p.first == cur {
				return DeclCatch
			}
			return DeclNone
		case KindClass:
			if p.first == cur {
				return DeclClass
			}
			return DeclNone
		case KindFunction:
			if p.first == cur {
				return DeclFunction
			}
			return DeclNone
		case KindParamList:
			return DeclParam
		default:
			return DeclNone
		}
	}
}

// IsBlockScopedDeclaration reports whether n declares a binding that
// belongs to the block that lexically owns it rather than the nearest
// hoist target.
func IsBlockScopedDeclaration(n *Node) bool {
	switch DeclarationKindOf(n) {
	case DeclLet, DeclConst, DeclCatch, DeclClass:
		return true
	}
	return false
}

// IsReferenceName reports whether n is a name occurrence that reads or
// binds a variable. Property names and keys are not Name nodes, so they
// never qualify.
func IsReferenceName(n *Node) bool {
	return n.IsName() && n.text != ""
}

// LhsNodesOf collects the binding name nodes of a parameter list,
// declaration statement or pattern, including destructured and
// defaulted bindings. Initializer and default expressions are not
// descended into.
func LhsNodesOf(n *Node) []*Node {
	var out []*Node
	collectBindingNames(n, &out)
	return out
}

func collectBindingNames(n *Node, out *[]*Node) {
	if n == nil {
		return
	}
	switch n.kind {
	case KindName:
		*out = append(*out, n)
	case KindParamList, KindArrayPattern, KindObjectPattern, KindVar, KindLet, KindConst:
		for c := n.first; c != nil; c = c.next {
			collectBindingNames(c, out)
		}
	case KindDefaultValue, KindRest, KindDestructuringLHS, KindStringKey:
		collectBindingNames(n.first, out)
	}
}
