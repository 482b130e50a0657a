// Package vcgen reduces an annotated program to its verification conditions
// by weakest-precondition computation over the statement structure.
package vcgen

import (
	"github.com/gnoverse/wv/internal/lang"
	"github.com/gnoverse/wv/internal/logic"
	"github.com/gnoverse/wv/internal/types"
)

// Options configures obligation generation.
type Options struct {
	// CheckDivision conjoins a divisor-nonzero side condition into the
	// weakest precondition at every division and modulo site in statement
	// expressions and guards. Off by default: divisors are then encoded
	// as-is and their safety is not part of the proof.
	CheckDivision bool
}

// Generate computes the verification conditions of a program. The returned
// slice is in generation order; each VC carries its sequence number, role
// and source position. A reachable while statement without an invariant
// aborts generation with *types.GenerationError and no VCs.
func Generate(prog *lang.Program, opts Options) ([]types.VC, error) {
	g := &generator{opts: opts}

	pre, err := g.gen(prog.Body, prog.Post)
	if err != nil {
		return nil, err
	}

	// The final obligation ties the declared precondition to the computed
	// weakest precondition. Loop-entry obligations surface here through pre.
	g.emit(logic.Implies(prog.Pre, pre), types.RoleTopLevel, prog.PrePos)
	return g.vcs, nil
}

type generator struct {
	opts Options
	vcs  []types.VC
	seq  int
}

func (g *generator) emit(a logic.Assertion, role types.Role, pos lang.Pos) {
	g.vcs = append(g.vcs, types.VC{ID: g.seq, Assertion: a, Role: role, Pos: pos})
	g.seq++
}

// gen returns the weakest precondition of stmt against post, emitting loop
// obligations as they are encountered.
func (g *generator) gen(stmt lang.Stmt, post logic.Assertion) (logic.Assertion, error) {
	switch s := stmt.(type) {
	case lang.SkipStmt:
		return post, nil

	case lang.AssignStmt:
		pre := logic.Subst(post, s.Name, s.Expr)
		if g.opts.CheckDivision {
			if sc := exprDivisorConds(s.Expr); sc != nil {
				pre = logic.And(sc, pre)
			}
		}
		return pre, nil

	case lang.SeqStmt:
		// Composition runs back to front: the second statement is computed
		// against post, the first against the result.
		mid, err := g.gen(s.Second, post)
		if err != nil {
			return nil, err
		}
		return g.gen(s.First, mid)

	case lang.IfStmt:
		preThen, err := g.gen(s.Then, post)
		if err != nil {
			return nil, err
		}

		// An absent else branch behaves like skip.
		preElse := post
		if s.Else != nil {
			preElse, err = g.gen(s.Else, post)
			if err != nil {
				return nil, err
			}
		}

		pre := logic.And(
			logic.Implies(s.Cond, preThen),
			logic.Implies(logic.Not(s.Cond), preElse),
		)
		if g.opts.CheckDivision {
			if sc := guardDivisorConds(s.Cond); sc != nil {
				pre = logic.And(sc, pre)
			}
		}
		return pre, nil

	case lang.WhileStmt:
		return g.genWhile(s, post)

	default:
		return post, nil
	}
}

func (g *generator) genWhile(s lang.WhileStmt, post logic.Assertion) (logic.Assertion, error) {
	if s.Invariant == nil {
		return nil, &types.GenerationError{Reason: types.MissingInvariant, Pos: s.Pos()}
	}

	// The body must re-establish the invariant; with division checking it
	// must additionally make the next guard evaluation safe.
	target := s.Invariant
	if g.opts.CheckDivision {
		if sc := guardDivisorConds(s.Cond); sc != nil {
			target = logic.And(s.Invariant, sc)
		}
	}

	preBody, err := g.gen(s.Body, target)
	if err != nil {
		return nil, err
	}

	g.emit(
		logic.Implies(logic.And(s.Invariant, s.Cond), preBody),
		types.RoleInvariantPreserved,
		s.Pos(),
	)
	g.emit(
		logic.Implies(logic.And(s.Invariant, logic.Not(s.Cond)), post),
		types.RoleInvariantImpliesPost,
		s.Pos(),
	)

	// The invariant itself, plus first-guard safety when checking division,
	// is what must hold on loop entry.
	return target, nil
}
