package smt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZ3SessionScript(t *testing.T) {
	sess, err := NewZ3("", 0).NewSession()
	require.NoError(t, err)

	require.NoError(t, sess.DeclareIntConst("x"))
	require.NoError(t, sess.DeclareIntConst("y"))
	require.NoError(t, sess.Assert("(> x 0)"))
	require.NoError(t, sess.Assert("(= y x)"))

	s := sess.(*z3Session)
	want := "(declare-const x Int)\n" +
		"(declare-const y Int)\n" +
		"(assert (> x 0))\n" +
		"(assert (= y x))\n"
	assert.Equal(t, want, s.script.String())
	assert.Equal(t, []string{"x", "y"}, s.consts)
}

func TestZ3SessionClosed(t *testing.T) {
	sess, err := NewZ3("", 0).NewSession()
	require.NoError(t, err)
	require.NoError(t, sess.Close())

	assert.ErrorIs(t, sess.DeclareIntConst("x"), ErrSessionClosed)
	assert.ErrorIs(t, sess.Assert("true"), ErrSessionClosed)
	_, err = sess.Check(context.Background())
	assert.ErrorIs(t, err, ErrSessionClosed)

	// Close is idempotent.
	assert.NoError(t, sess.Close())
}

func TestZ3Unavailable(t *testing.T) {
	z := NewZ3("wv-test-no-such-solver-binary", 0)
	assert.ErrorIs(t, z.Available(), ErrSolverUnavailable)
}

func TestOutputLines(t *testing.T) {
	lines := outputLines("sat\n((x 3))\n\n")
	assert.Equal(t, []string{"sat", "((x 3))"}, lines)

	assert.Empty(t, outputLines(""))
	assert.Empty(t, outputLines("\n  \n"))
}

// The remaining tests run the real binary and skip when it is absent.

func requireZ3(t *testing.T) *Z3 {
	t.Helper()
	z := NewZ3(DefaultZ3Path, 5*time.Second)
	if err := z.Available(); err != nil {
		t.Skipf("z3 not installed: %v", err)
	}
	return z
}

func TestZ3CheckSat(t *testing.T) {
	z := requireZ3(t)
	sess, err := z.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.DeclareIntConst("x"))
	require.NoError(t, sess.Assert("(> x 2)"))
	require.NoError(t, sess.Assert("(< x 4)"))

	res, err := sess.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSat, res.Status)
	assert.Equal(t, int64(3), res.Model["x"])
}

func TestZ3CheckUnsat(t *testing.T) {
	z := requireZ3(t)
	sess, err := z.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.DeclareIntConst("x"))
	require.NoError(t, sess.Assert("(> x 0)"))
	require.NoError(t, sess.Assert("(< x 0)"))

	res, err := sess.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusUnsat, res.Status)
	assert.Nil(t, res.Model)
}

func TestZ3SessionsAreIndependent(t *testing.T) {
	z := requireZ3(t)

	first, err := z.NewSession()
	require.NoError(t, err)
	require.NoError(t, first.DeclareIntConst("x"))
	require.NoError(t, first.Assert("(= x 1)"))
	require.NoError(t, first.Close())

	// A second session must not see the first one's constraint.
	second, err := z.NewSession()
	require.NoError(t, err)
	defer second.Close()
	require.NoError(t, second.DeclareIntConst("x"))
	require.NoError(t, second.Assert("(= x 2)"))

	res, err := second.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSat, res.Status)
	assert.Equal(t, int64(2), res.Model["x"])
}

func TestZ3NegativeModelValue(t *testing.T) {
	z := requireZ3(t)
	sess, err := z.NewSession()
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.DeclareIntConst("x"))
	require.NoError(t, sess.Assert("(< x 0)"))
	require.NoError(t, sess.Assert("(> x (- 2))"))

	res, err := sess.Check(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusSat, res.Status)
	assert.Equal(t, int64(-1), res.Model["x"])
}
