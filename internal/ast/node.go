package ast

import "fmt"

type Kind int

const (
	KindScript Kind = iota
	KindFunction
	KindParamList
	KindBlock
	KindVar
	KindLet
	KindConst
	KindDestructuringLHS
	KindName
	KindStringKey
	KindObjectLit
	KindArrayLit
	KindObjectPattern
	KindArrayPattern
	KindDefaultValue
	KindRest
	KindClass
	KindClassBody
	KindMember
	KindIf
	KindWhile
	KindFor
	KindTry
	KindCatch
	KindReturn
	KindBreak
	KindContinue
	KindExprResult
	KindAssign
	KindBinary
	KindUnary
	KindPostfix
	KindHook
	KindCall
	KindNew
	KindGetProp
	KindGetElem
	KindNumber
	KindString
	KindTrue
	KindFalse
	KindNull
	KindThis
	KindEmpty
)

var kindNames = map[Kind]string{
	KindScript:           "Script",
	KindFunction:         "Function",
	KindParamList:        "ParamList",
	KindBlock:            "Block",
	KindVar:              "Var",
	KindLet:              "Let",
	KindConst:            "Const",
	KindDestructuringLHS: "DestructuringLHS",
	KindName:             "Name",
	KindStringKey:        "StringKey",
	KindObjectLit:        "ObjectLit",
	KindArrayLit:         "ArrayLit",
	KindObjectPattern:    "ObjectPattern",
	KindArrayPattern:     "ArrayPattern",
	KindDefaultValue:     "DefaultValue",
	KindRest:             "Rest",
	KindClass:            "Class",
	KindClassBody:        "ClassBody",
	KindMember:           "Member",
	KindIf:               "If",
	KindWhile:            "While",
	KindFor:              "For",
	KindTry:              "Try",
	KindCatch:            "Catch",
	KindReturn:           "Return",
	KindBreak:            "Break",
	KindContinue:         "Continue",
	KindExprResult:       "ExprResult",
	KindAssign:           "Assign",
	KindBinary:           "Binary",
	KindUnary:            "Unary",
	KindPostfix:          "Postfix",
	KindHook:             "Hook",
	KindCall:             "Call",
	KindNew:              "New",
	KindGetProp:          "GetProp",
	KindGetElem:          "GetElem",
	KindNumber:           "Number",
	KindString:           "String",
	KindTrue:             "True",
	KindFalse:            "False",
	KindNull:             "Null",
	KindThis:             "This",
	KindEmpty:            "Empty",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Node is a uniform AST node. Every construct is a Node with a kind,
// parent/child/sibling links and, where applicable, an identifier or
// literal text payload. Mirrors are cheap: passes rewrite the tree in
// place by mutating the payload.
type Node struct {
	kind     Kind
	text     string
	parent   *Node
	first    *Node
	last     *Node
	next     *Node
	prev     *Node
	declared bool // "declared constant" marker on names

	Line   int
	Column int
}

// NewNode creates a node of the given kind with the given children.
func NewNode(kind Kind, children ...*Node) *Node {
	n := &Node{kind: kind}
	for _, c := range children {
		n.AddChildToBack(c)
	}
	return n
}

func (n *Node) Kind() Kind { return n.kind }

// Text returns the identifier or literal payload.
func (n *Node) Text() string { return n.text }

// SetText replaces the identifier or literal payload in place.
func (n *Node) SetText(s string) { n.text = s }

// DeclaredConstant reports whether this name carries the declared
// constant marker.
func (n *Node) DeclaredConstant() bool { return n.declared }

// SetDeclaredConstant sets or clears the declared constant marker.
func (n *Node) SetDeclaredConstant(v bool) { n.declared = v }

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) FirstChild() *Node { return n.first }
func (n *Node) LastChild() *Node  { return n.last }
func (n *Node) Next() *Node       { return n.next }
func (n *Node) Prev() *Node       { return n.prev }

func (n *Node) HasChildren() bool { return n.first != nil }

// ChildCount counts direct children.
func (n *Node) ChildCount() int {
	count := 0
	for c := n.first; c != nil; c = c.next {
		count++
	}
	return count
}

// ChildAt returns the i-th child or nil.
func (n *Node) ChildAt(i int) *Node {
	c := n.first
	for ; c != nil && i > 0; c = c.next {
		i--
	}
	return c
}

// AddChildToBack appends c as the last child of n.
func (n *Node) AddChildToBack(c *Node) {
	if c == nil {
		return
	}
	if c.parent != nil {
		panic("ast: node already has a parent")
	}
	c.parent = n
	c.prev = n.last
	c.next = nil
	if n.last != nil {
		n.last.next = c
	} else {
		n.first = c
	}
	n.last = c
}

func (n *Node) IsName() bool      { return n.kind == KindName }
func (n *Node) IsFunction() bool  { return n.kind == KindFunction }
func (n *Node) IsParamList() bool { return n.kind == KindParamList }
func (n *Node) IsBlock() bool     { return n.kind == KindBlock }
func (n *Node) IsScript() bool    { return n.kind == KindScript }
func (n *Node) IsStringKey() bool { return n.kind == KindStringKey }
func (n *Node) IsEmpty() bool     { return n.kind == KindEmpty }

// CopyPositionFrom copies the source position of other onto n.
func (n *Node) CopyPositionFrom(other *Node) *Node {
	n.Line = other.Line
	n.Column = other.Column
	return n
}

func (n *Node) String() string {
	if n.text != "" {
		return fmt.Sprintf("%s(%q)", n.kind, n.text)
	}
	return n.kind.String()
}
