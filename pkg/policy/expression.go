package policy

import (
	"cmp"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/cosmic-gao/sylas-heap/pkg/node"
)

// ExpressionPolicy is a Policy whose ordering is a user-supplied
// expr-lang expression evaluated against each node's observable
// attributes, rather than a hand-written Go comparator. The expression
// must evaluate to a number; nodes are ordered by ascending score, with
// the usual id tie-break.
//
// The environment exposed to the expression:
//
//	priority   int
//	cost       int
//	retries    int
//	inDegree   int
//	outDegree  int
//	metadata   map[string]any
//
// Example: "priority*10 + inDegree" prioritizes low-priority-number nodes
// and, among nodes of equal priority, puts those with fewer incoming
// edges first.
type ExpressionPolicy struct {
	program *vm.Program
	tb      *tieBreak
}

// NewExpressionPolicy compiles expression once at construction time.
func NewExpressionPolicy(expression string) (*ExpressionPolicy, error) {
	program, err := expr.Compile(expression, expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("policy: compiling expression: %w", err)
	}
	return &ExpressionPolicy{program: program, tb: newTieBreak()}, nil
}

func (p *ExpressionPolicy) score(n *node.Node) (float64, error) {
	env := map[string]any{
		"priority":  n.Priority(),
		"cost":      n.Cost(),
		"retries":   n.Retries(),
		"inDegree":  n.GetInDegree(),
		"outDegree": n.GetOutDegree(),
		"metadata":  n.Metadata(),
	}
	out, err := expr.Run(p.program, env)
	if err != nil {
		return 0, err
	}
	v, ok := out.(float64)
	if !ok {
		return 0, fmt.Errorf("policy: expression must evaluate to a number, got %T", out)
	}
	return v, nil
}

// Compare implements Policy. A node whose score cannot be computed (a
// runtime expression error) is defensively ordered by id alone rather
// than panicking mid-dispatch.
func (p *ExpressionPolicy) Compare(a, b *node.Node) int {
	sa, errA := p.score(a)
	sb, errB := p.score(b)
	if errA != nil || errB != nil {
		return p.tb.compare(a.ID(), b.ID())
	}
	if d := cmp.Compare(sa, sb); d != 0 {
		return d
	}
	return p.tb.compare(a.ID(), b.ID())
}
