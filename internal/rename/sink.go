package rename

import "github.com/sable-lang/sable/internal/ast"

// ChangeSink receives notifications whenever a pass rewrites a name.
// Downstream consumers use it to count rewrites, log them, or
// invalidate caches keyed on declaration shape.
type ChangeSink interface {
	// ReportChange fires once per rewritten name node.
	ReportChange(n *ast.Node)

	// ReportChangeToEnclosingScope fires when a rewrite alters which
	// declarations an enclosing scope contains, such as renaming a
	// function declaration.
	ReportChangeToEnclosingScope(n *ast.Node)
}

// ChangeCounter is a ChangeSink that counts rewrites.
type ChangeCounter struct {
	Renames      int
	ScopeChanges int
}

func (c *ChangeCounter) ReportChange(*ast.Node) { c.Renames++ }

func (c *ChangeCounter) ReportChangeToEnclosingScope(*ast.Node) { c.ScopeChanges++ }

// MultiSink fans notifications out to several sinks in order.
type MultiSink []ChangeSink

func (m MultiSink) ReportChange(n *ast.Node) {
	for _, s := range m {
		s.ReportChange(n)
	}
}

func (m MultiSink) ReportChangeToEnclosingScope(n *ast.Node) {
	for _, s := range m {
		s.ReportChangeToEnclosingScope(n)
	}
}
