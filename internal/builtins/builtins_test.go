package builtins

import (
	"math"
	"testing"

	"github.com/cwbudde/pycse/internal/cse"
	"github.com/cwbudde/pycse/internal/numeric"
)

func newMachine() (*cse.Machine, *cse.Environment) {
	env := cse.NewEnvironment()
	New().Seed(env)
	m := cse.New(env, "", cse.Options{})
	return m, env
}

func builtin(env *cse.Environment, name string) *cse.Builtin {
	v, err := env.Get(name)
	if err != nil {
		panic(err)
	}
	return v.(*cse.Builtin)
}

func bigint(n int64) cse.BigIntVal {
	return cse.BigIntVal{V: numeric.NewBigIntFromInt64(n)}
}

func TestAbsHandlesEveryNumericKind(t *testing.T) {
	m, env := newMachine()
	abs := builtin(env, "abs")

	got, err := abs.Fn(m, []cse.Value{bigint(-5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(cse.BigIntVal).V.Cmp(bigint(5).V) != 0 {
		t.Errorf("abs(-5): got %s, want 5", got)
	}

	got, err = abs.Fn(m, []cse.Value{cse.FloatVal(-3.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(got.(cse.FloatVal)) != 3.5 {
		t.Errorf("abs(-3.5): got %v, want 3.5", got)
	}

	got, err = abs.Fn(m, []cse.Value{cse.ComplexVal{V: numeric.Complex{Real: 3, Imag: 4}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(got.(cse.FloatVal)) != 5 {
		t.Errorf("abs(3+4j): got %v, want 5", got)
	}
}

func TestAbsRejectsWrongArity(t *testing.T) {
	m, env := newMachine()
	abs := builtin(env, "abs")
	if _, err := abs.Fn(m, []cse.Value{bigint(1), bigint(2)}); err == nil {
		t.Fatal("expected an arity error for abs(1, 2)")
	}
}

func TestMaxMinCrossType(t *testing.T) {
	m, env := newMachine()
	max := builtin(env, "max")
	min := builtin(env, "min")

	got, err := max.Fn(m, []cse.Value{bigint(3), cse.FloatVal(3.5), bigint(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(got.(cse.FloatVal)) != 3.5 {
		t.Errorf("max(3, 3.5, 2): got %v, want 3.5", got)
	}

	got, err = min.Fn(m, []cse.Value{bigint(3), cse.FloatVal(3.5), bigint(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(cse.BigIntVal).V.Cmp(bigint(2).V) != 0 {
		t.Errorf("min(3, 3.5, 2): got %s, want 2", got)
	}
}

func TestMaxRequiresAtLeastTwoArgs(t *testing.T) {
	m, env := newMachine()
	max := builtin(env, "max")
	if _, err := max.Fn(m, []cse.Value{bigint(1)}); err == nil {
		t.Fatal("expected an error for max() with a single argument")
	}
}

func TestRoundToNearestEven(t *testing.T) {
	m, env := newMachine()
	round := builtin(env, "round")
	got, err := round.Fn(m, []cse.Value{cse.FloatVal(2.5)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(cse.BigIntVal).V.Cmp(bigint(2).V) != 0 {
		t.Errorf("round(2.5): got %s, want 2 (banker's rounding)", got)
	}
}

func TestRoundWithNdigits(t *testing.T) {
	m, env := newMachine()
	round := builtin(env, "round")
	got, err := round.Fn(m, []cse.Value{cse.FloatVal(3.14159), bigint(2)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(got.(cse.FloatVal)) != 3.14 {
		t.Errorf("round(3.14159, 2): got %v, want 3.14", got)
	}
}

func TestStrFormatsBool(t *testing.T) {
	m, env := newMachine()
	str := builtin(env, "str")
	got, err := str.Fn(m, []cse.Value{cse.Bool(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(got.(cse.StringVal)) != "True" {
		t.Errorf("str(True): got %q, want %q", got, "True")
	}
}

func TestIntOfConversions(t *testing.T) {
	m, env := newMachine()
	intOf := builtin(env, "_int")

	got, err := intOf.Fn(m, []cse.Value{cse.FloatVal(3.9)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(cse.BigIntVal).V.Cmp(bigint(3).V) != 0 {
		t.Errorf("_int(3.9): got %s, want 3", got)
	}

	got, err = intOf.Fn(m, []cse.Value{cse.StringVal(" 42 ")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.(cse.BigIntVal).V.Cmp(bigint(42).V) != 0 {
		t.Errorf("_int(' 42 '): got %s, want 42", got)
	}

	if _, err := intOf.Fn(m, []cse.Value{cse.StringVal("not a number")}); err == nil {
		t.Fatal("expected an error for an unparsable string")
	}
}

func TestMathConstantsAndUnaryFns(t *testing.T) {
	m, env := newMachine()
	pi, _ := env.Get("math_pi")
	if float64(pi.(cse.FloatVal)) != math.Pi {
		t.Errorf("math_pi: got %v, want %v", pi, math.Pi)
	}
	sqrt := builtin(env, "math_sqrt")
	got, err := sqrt.Fn(m, []cse.Value{cse.FloatVal(16)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if float64(got.(cse.FloatVal)) != 4 {
		t.Errorf("math_sqrt(16): got %v, want 4", got)
	}
}

func TestMathIsnan(t *testing.T) {
	m, env := newMachine()
	isnan := builtin(env, "math_isnan")
	got, err := isnan.Fn(m, []cse.Value{cse.FloatVal(math.NaN())})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bool(got.(cse.Bool)) {
		t.Error("math_isnan(nan) should be True")
	}
}

func TestRandomSeedIsDeterministic(t *testing.T) {
	m1, env1 := newMachine()
	m2, env2 := newMachine()
	builtin(env1, "random_seed").Fn(m1, []cse.Value{bigint(42)})
	builtin(env2, "random_seed").Fn(m2, []cse.Value{bigint(42)})

	a, _ := builtin(env1, "random_random").Fn(m1, nil)
	b, _ := builtin(env2, "random_random").Fn(m2, nil)
	if a.(cse.FloatVal) != b.(cse.FloatVal) {
		t.Errorf("same seed should produce the same draw: %v != %v", a, b)
	}
}

func TestRandomRandintRespectsBounds(t *testing.T) {
	m, env := newMachine()
	randint := builtin(env, "random_randint")
	for i := 0; i < 20; i++ {
		got, err := randint.Fn(m, []cse.Value{bigint(1), bigint(3)})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		v := got.(cse.BigIntVal).V.V.Int64()
		if v < 1 || v > 3 {
			t.Fatalf("random_randint(1, 3) out of bounds: %d", v)
		}
	}
}

func TestPrintWritesToOutputSink(t *testing.T) {
	env := cse.NewEnvironment()
	New().Seed(env)
	var got string
	m := cse.New(env, "", cse.Options{})
	m.Output = func(s string) { got += s }
	print := builtin(env, "print")
	if _, err := print.Fn(m, []cse.Value{cse.StringVal("hello"), bigint(1)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "hello 1\n" {
		t.Errorf("print output: got %q, want %q", got, "hello 1\n")
	}
}
