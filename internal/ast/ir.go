package ast

// Construction helpers used by the parser and by passes that splice
// nodes into an existing tree.

// Name creates a name node with the given identifier text.
func Name(text string) *Node {
	n := NewNode(KindName)
	n.text = text
	return n
}

// StringKey creates an object-literal or object-pattern key. A key with
// no children is a shorthand property.
func StringKey(text string, children ...*Node) *Node {
	n := NewNode(KindStringKey, children...)
	n.text = text
	return n
}

// Empty creates a placeholder for an absent child (e.g. a missing
// for-clause or an anonymous function name slot is a Name with empty
// text, while structural holes use Empty).
func Empty() *Node {
	return NewNode(KindEmpty)
}

// Script creates a compilation-unit root.
func Script(statements ...*Node) *Node {
	return NewNode(KindScript, statements...)
}

// Function creates a function node: name, parameter list, body.
func Function(name, params, body *Node) *Node {
	return NewNode(KindFunction, name, params, body)
}

// ParamList creates a parameter list.
func ParamList(params ...*Node) *Node {
	return NewNode(KindParamList, params...)
}

// Block creates a statement block.
func Block(statements ...*Node) *Node {
	return NewNode(KindBlock, statements...)
}
