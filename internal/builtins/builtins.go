// Package builtins seeds pycse's curated global built-in set (spec.md
// §4.3, §6.3): print, abs, max, min, round, str, _int, input, plus the
// math_* and random_* families. The dispatch shape — a flat name-to-
// function table bound into the global frame and invoked as fn(args) —
// is grounded in the teacher's interp/builtins_core.go and
// interp/builtins_math.go, adapted to the CSE machine's `fn(m, args)
// (Value, error)` calling convention (internal/cse's Application
// instruction dispatch).
package builtins

import (
	"fmt"
	"math"
	"math/big"
	"math/rand"
	"strings"

	"github.com/cwbudde/pycse/internal/cse"
	"github.com/cwbudde/pycse/internal/numeric"
)

// Registry owns the state shared across builtin calls: the single seeded
// random source (spec.md §6.3's random_* family mirrors the teacher's
// Interpreter.rand, seeded once in interp.New).
type Registry struct {
	rand *rand.Rand
}

// New creates a Registry with a fixed default seed, matching the teacher's
// default-determinism convention (interp.New seeds with rand.NewSource(1))
// so fixture tests are reproducible unless random_seed is called.
func New() *Registry {
	return &Registry{rand: rand.New(rand.NewSource(1))}
}

// Seed binds every built-in name and math_*/random_* constant into env.
func (r *Registry) Seed(env *cse.Environment) {
	env.Bind("print", &cse.Builtin{Name: "print", Fn: r.print})
	env.Bind("abs", &cse.Builtin{Name: "abs", Fn: r.abs})
	env.Bind("max", &cse.Builtin{Name: "max", Fn: r.max})
	env.Bind("min", &cse.Builtin{Name: "min", Fn: r.min})
	env.Bind("round", &cse.Builtin{Name: "round", Fn: r.round})
	env.Bind("str", &cse.Builtin{Name: "str", Fn: r.str})
	env.Bind("_int", &cse.Builtin{Name: "_int", Fn: r.intOf})
	env.Bind("input", &cse.Builtin{Name: "input", Fn: r.input})

	env.Bind("math_pi", cse.FloatVal(math.Pi))
	env.Bind("math_e", cse.FloatVal(math.E))
	env.Bind("math_inf", cse.FloatVal(math.Inf(1)))
	env.Bind("math_nan", cse.FloatVal(math.NaN()))
	env.Bind("math_tau", cse.FloatVal(2*math.Pi))

	env.Bind("math_sqrt", mathUnary("math_sqrt", math.Sqrt))
	env.Bind("math_floor", mathUnary("math_floor", math.Floor))
	env.Bind("math_ceil", mathUnary("math_ceil", math.Ceil))
	env.Bind("math_sin", mathUnary("math_sin", math.Sin))
	env.Bind("math_cos", mathUnary("math_cos", math.Cos))
	env.Bind("math_log", mathUnary("math_log", math.Log))
	env.Bind("math_log2", mathUnary("math_log2", math.Log2))
	env.Bind("math_log10", mathUnary("math_log10", math.Log10))
	env.Bind("math_exp", mathUnary("math_exp", math.Exp))
	env.Bind("math_isnan", mathPredicate("math_isnan", math.IsNaN))
	env.Bind("math_isinf", mathPredicate("math_isinf", func(f float64) bool { return math.IsInf(f, 0) }))
	env.Bind("math_pow", &cse.Builtin{Name: "math_pow", Fn: mathPow})

	env.Bind("random_random", &cse.Builtin{Name: "random_random", Fn: r.randomRandom})
	env.Bind("random_randint", &cse.Builtin{Name: "random_randint", Fn: r.randomRandint})
	env.Bind("random_seed", &cse.Builtin{Name: "random_seed", Fn: r.randomSeed})
}

func arityError(name string, want int, got int) error {
	return fmt.Errorf("%s() expects exactly %d argument(s), got %d", name, want, got)
}

func toFloat(v cse.Value) (float64, bool) {
	switch val := v.(type) {
	case cse.FloatVal:
		return float64(val), true
	case cse.BigIntVal:
		return val.V.Float64(), true
	case cse.Bool:
		if val {
			return 1, true
		}
		return 0, true
	default:
		return 0, false
	}
}

func (r *Registry) print(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = cse.FormatResult(a)
	}
	if m.Output != nil {
		m.Output(strings.Join(parts, " ") + "\n")
	}
	return cse.Undefined{}, nil
}

func (r *Registry) abs(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 1 {
		return nil, arityError("abs", 1, len(args))
	}
	switch v := args[0].(type) {
	case cse.BigIntVal:
		if v.V.Sign() < 0 {
			return cse.BigIntVal{V: v.V.Neg()}, nil
		}
		return v, nil
	case cse.FloatVal:
		return cse.FloatVal(math.Abs(float64(v))), nil
	case cse.Bool:
		if v {
			return cse.BigIntVal{V: numeric.NewBigIntFromInt64(1)}, nil
		}
		return cse.BigIntVal{V: numeric.NewBigIntFromInt64(0)}, nil
	case cse.ComplexVal:
		mag := math.Hypot(v.V.Real, v.V.Imag)
		return cse.FloatVal(mag), nil
	default:
		return nil, fmt.Errorf("abs() expects a number, got %s", args[0].Kind())
	}
}

// extremum implements max()/min() over two or more arguments, using the
// same Bool/BigInt/Float cross-type comparison law as the CSE machine's
// comparison operators, plus lexicographic comparison for strings.
func extremum(name string, args []cse.Value, wantMax bool) (cse.Value, error) {
	if len(args) < 2 {
		return nil, fmt.Errorf("%s() expects at least 2 arguments, got %d", name, len(args))
	}
	best := args[0]
	for _, cand := range args[1:] {
		cmp, err := compareValues(best, cand)
		if err != nil {
			return nil, fmt.Errorf("%s(): %w", name, err)
		}
		if (wantMax && cmp < 0) || (!wantMax && cmp > 0) {
			best = cand
		}
	}
	return best, nil
}

func (r *Registry) max(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	return extremum("max", args, true)
}

func (r *Registry) min(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	return extremum("min", args, false)
}

func compareValues(a, b cse.Value) (int, error) {
	if as, ok := a.(cse.StringVal); ok {
		if bs, ok := b.(cse.StringVal); ok {
			return strings.Compare(string(as), string(bs)), nil
		}
	}
	af, aok := toFloat(a)
	bf, bok := toFloat(b)
	if aib, ok := a.(cse.BigIntVal); ok {
		if bib, ok := b.(cse.BigIntVal); ok {
			return aib.V.Cmp(bib.V), nil
		}
		if bfv, ok := b.(cse.FloatVal); ok {
			return numeric.CompareBigIntFloat(aib.V, float64(bfv)), nil
		}
	}
	if bib, ok := b.(cse.BigIntVal); ok {
		if afv, ok := a.(cse.FloatVal); ok {
			return -numeric.CompareBigIntFloat(bib.V, float64(afv)), nil
		}
	}
	if !aok || !bok {
		return 0, fmt.Errorf("unsupported comparison between %s and %s", a.Kind(), b.Kind())
	}
	switch {
	case af < bf:
		return -1, nil
	case af > bf:
		return 1, nil
	default:
		return 0, nil
	}
}

func (r *Registry) round(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 1 && len(args) != 2 {
		return nil, fmt.Errorf("round() expects 1 or 2 arguments, got %d", len(args))
	}
	f, ok := toFloat(args[0])
	if !ok {
		return nil, fmt.Errorf("round() expects a number, got %s", args[0].Kind())
	}
	if len(args) == 1 {
		return cse.BigIntVal{V: floatToBigInt(math.RoundToEven(f))}, nil
	}
	nd, ok := toFloat(args[1])
	if !ok {
		return nil, fmt.Errorf("round() expects an integer ndigits, got %s", args[1].Kind())
	}
	scale := math.Pow(10, nd)
	return cse.FloatVal(math.RoundToEven(f*scale) / scale), nil
}

func floatToBigInt(f float64) *numeric.BigInt {
	bf := new(big.Float).SetFloat64(f)
	iv, _ := bf.Int(nil)
	return &numeric.BigInt{V: iv}
}

func (r *Registry) str(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 1 {
		return nil, arityError("str", 1, len(args))
	}
	return cse.StringVal(cse.FormatResult(args[0])), nil
}

// intOf implements Python's int()-style conversion: Bool/BigInt pass
// through (as BigInt), Float truncates toward zero, String parses a
// base-10 integer literal.
func (r *Registry) intOf(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 1 {
		return nil, arityError("_int", 1, len(args))
	}
	switch v := args[0].(type) {
	case cse.BigIntVal:
		return v, nil
	case cse.Bool:
		if v {
			return cse.BigIntVal{V: numeric.NewBigIntFromInt64(1)}, nil
		}
		return cse.BigIntVal{V: numeric.NewBigIntFromInt64(0)}, nil
	case cse.FloatVal:
		return cse.BigIntVal{V: floatToBigInt(float64(v))}, nil
	case cse.StringVal:
		b, err := numeric.ParseBigInt(strings.TrimSpace(string(v)))
		if err != nil {
			return nil, fmt.Errorf("invalid literal for _int(): %q", string(v))
		}
		return cse.BigIntVal{V: b}, nil
	default:
		return nil, fmt.Errorf("_int() expects a number or string, got %s", args[0].Kind())
	}
}

// input is a stub: this sublanguage's host conductor (chunk driver, stdin
// wiring) is explicitly out of scope (spec.md's Non-goals on host/module
// networking), so input only echoes an optional prompt and always returns
// an empty string — it exists so the name resolves and is callable, not to
// provide real interactive I/O.
func (r *Registry) input(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("input() expects at most 1 argument, got %d", len(args))
	}
	if len(args) == 1 && m.Output != nil {
		m.Output(cse.FormatResult(args[0]))
	}
	return cse.StringVal(""), nil
}

func mathUnary(name string, fn func(float64) float64) *cse.Builtin {
	return &cse.Builtin{Name: name, Fn: func(m *cse.Machine, args []cse.Value) (cse.Value, error) {
		if len(args) != 1 {
			return nil, arityError(name, 1, len(args))
		}
		f, ok := toFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("%s() expects a number, got %s", name, args[0].Kind())
		}
		return cse.FloatVal(fn(f)), nil
	}}
}

func mathPredicate(name string, fn func(float64) bool) *cse.Builtin {
	return &cse.Builtin{Name: name, Fn: func(m *cse.Machine, args []cse.Value) (cse.Value, error) {
		if len(args) != 1 {
			return nil, arityError(name, 1, len(args))
		}
		f, ok := toFloat(args[0])
		if !ok {
			return nil, fmt.Errorf("%s() expects a number, got %s", name, args[0].Kind())
		}
		return cse.Bool(fn(f)), nil
	}}
}

func mathPow(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 2 {
		return nil, arityError("math_pow", 2, len(args))
	}
	base, ok1 := toFloat(args[0])
	exp, ok2 := toFloat(args[1])
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("math_pow() expects numbers, got %s and %s", args[0].Kind(), args[1].Kind())
	}
	return cse.FloatVal(math.Pow(base, exp)), nil
}

func (r *Registry) randomRandom(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 0 {
		return nil, arityError("random_random", 0, len(args))
	}
	return cse.FloatVal(r.rand.Float64()), nil
}

func (r *Registry) randomRandint(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 2 {
		return nil, arityError("random_randint", 2, len(args))
	}
	a, ok1 := args[0].(cse.BigIntVal)
	b, ok2 := args[1].(cse.BigIntVal)
	if !ok1 || !ok2 {
		return nil, fmt.Errorf("random_randint() expects integer bounds, got %s and %s", args[0].Kind(), args[1].Kind())
	}
	lo, hi := a.V.V.Int64(), b.V.V.Int64()
	if hi < lo {
		return nil, fmt.Errorf("random_randint(): empty range (%d, %d)", lo, hi)
	}
	v := lo + r.rand.Int63n(hi-lo+1)
	return cse.BigIntVal{V: numeric.NewBigIntFromInt64(v)}, nil
}

func (r *Registry) randomSeed(m *cse.Machine, args []cse.Value) (cse.Value, error) {
	if len(args) != 1 {
		return nil, arityError("random_seed", 1, len(args))
	}
	b, ok := args[0].(cse.BigIntVal)
	if !ok {
		return nil, fmt.Errorf("random_seed() expects an integer, got %s", args[0].Kind())
	}
	r.rand.Seed(b.V.V.Int64())
	return cse.Undefined{}, nil
}
