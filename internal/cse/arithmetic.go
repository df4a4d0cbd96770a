package cse

import (
	"math"
	"strings"

	"github.com/cwbudde/pycse/internal/numeric"
	"github.com/cwbudde/pycse/internal/token"
)

// pyFloorFloat and pyPowFloat implement Python's floor division and power
// semantics for float operands (spec.md §4.4's numeric tower).
func pyFloorFloat(l, r float64) float64 { return math.Floor(l / r) }
func pyPowFloat(l, r float64) float64   { return math.Pow(l, r) }

// execBoolOp implements short-circuit `and`/`or`: the left operand has
// already been evaluated and sits on the Stash; if its truthiness already
// decides the result, that value is pushed back without ever evaluating
// Right, otherwise Right is pushed to be evaluated next and its value
// becomes the BoolOp's result with no further instruction required.
func (m *Machine) execBoolOp(it BoolOpInstr) *RuntimeError {
	left := m.popVal()
	switch it.Op {
	case token.OR:
		if Truthy(left) {
			m.pushVal(left)
			return nil
		}
	case token.AND:
		if !Truthy(left) {
			m.pushVal(left)
			return nil
		}
	}
	m.push(it.Right)
	return nil
}

func (m *Machine) execUnaryOp(it UnaryOpInstr) *RuntimeError {
	v := m.popVal()
	switch it.Op {
	case token.NOT:
		m.pushVal(Bool(!Truthy(v)))
		return nil
	case token.MINUS:
		return m.unarySign(v, it.Node, true)
	case token.PLUS:
		return m.unarySign(v, it.Node, false)
	}
	return nil
}

// unarySign implements spec.md §4.5's UnaryOp `+`/`-`: Bool is first
// coerced to integer 0/1, then negated or passed through.
func (m *Machine) unarySign(v Value, node interface{ Start() token.Token }, negate bool) *RuntimeError {
	switch val := v.(type) {
	case Bool:
		iv := int64(0)
		if val {
			iv = 1
		}
		if negate {
			iv = -iv
		}
		m.pushVal(BigIntVal{V: numeric.NewBigIntFromInt64(iv)})
	case BigIntVal:
		if negate {
			m.pushVal(BigIntVal{V: val.V.Neg()})
		} else {
			m.pushVal(val)
		}
	case FloatVal:
		if negate {
			m.pushVal(FloatVal(-val))
		} else {
			m.pushVal(val)
		}
	case ComplexVal:
		if negate {
			m.pushVal(ComplexVal{V: val.V.Neg()})
		} else {
			m.pushVal(val)
		}
	default:
		op := "+"
		if negate {
			op = "-"
		}
		return &RuntimeError{Name: "UnsupportedOperandTypeError",
			Message: "bad operand type for unary " + op + ": '" + v.Kind() + "'",
			Pos:     node.Start().Pos, Width: max1(len(node.Start().Lexeme))}
	}
	return nil
}

// execBinaryOp implements spec.md §4.5's BinaryOp priority order: Complex
// promotion, then None (identity-only ==/!=), then String
// (concatenation/lexicographic comparison), then the numeric tower.
func (m *Machine) execBinaryOp(it BinaryOpInstr) *RuntimeError {
	right := m.popVal()
	left := m.popVal()

	if _, ok := left.(ComplexVal); ok {
		return m.binaryComplex(it, left, right)
	}
	if _, ok := right.(ComplexVal); ok {
		return m.binaryComplex(it, left, right)
	}

	if isNone(left) || isNone(right) {
		return m.binaryNone(it, left, right)
	}

	if ls, lok := left.(StringVal); lok {
		if rs, rok := right.(StringVal); rok {
			return m.binaryString(it, ls, rs)
		}
	}
	if isMembershipOp(it.Op) {
		return m.binaryMembership(it, left, right)
	}

	return m.binaryNumeric(it, left, right)
}

func isNone(v Value) bool { _, ok := v.(Undefined); return ok }

func isMembershipOp(op token.Kind) bool { return op == token.IN || op == token.NOTIN }

func (m *Machine) binaryMembership(it BinaryOpInstr, left, right Value) *RuntimeError {
	rs, ok := right.(StringVal)
	if !ok {
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	ls, ok := left.(StringVal)
	if !ok {
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	contains := strings.Contains(string(rs), string(ls))
	if it.Op == token.NOTIN {
		contains = !contains
	}
	m.pushVal(Bool(contains))
	return nil
}

func (m *Machine) binaryComplex(it BinaryOpInstr, left, right Value) *RuntimeError {
	lc, lok := toComplex(left)
	rc, rok := toComplex(right)
	if !lok || !rok {
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	switch it.Op {
	case token.PLUS:
		m.pushVal(ComplexVal{V: lc.Add(rc)})
	case token.MINUS:
		m.pushVal(ComplexVal{V: lc.Sub(rc)})
	case token.STAR:
		m.pushVal(ComplexVal{V: lc.Mul(rc)})
	case token.SLASH:
		res, err := lc.Div(rc)
		if err != nil {
			return zeroDivision(it.Node)
		}
		m.pushVal(ComplexVal{V: res})
	case token.DOUBLESTAR:
		res, err := lc.Pow(rc)
		if err != nil {
			return zeroDivision(it.Node)
		}
		m.pushVal(ComplexVal{V: res})
	case token.EQ:
		m.pushVal(Bool(lc.Eq(rc)))
	case token.NE, token.ISNOT:
		m.pushVal(Bool(!lc.Eq(rc)))
	case token.IS:
		m.pushVal(Bool(lc.Eq(rc)))
	default:
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	return nil
}

func toComplex(v Value) (numeric.Complex, bool) {
	switch val := v.(type) {
	case ComplexVal:
		return val.V, true
	case FloatVal:
		return numeric.Complex{Real: float64(val)}, true
	case BigIntVal:
		return numeric.Complex{Real: val.V.Float64()}, true
	case Bool:
		if val {
			return numeric.Complex{Real: 1}, true
		}
		return numeric.Complex{}, true
	default:
		return numeric.Complex{}, false
	}
}

func (m *Machine) binaryNone(it BinaryOpInstr, left, right Value) *RuntimeError {
	switch it.Op {
	case token.EQ, token.IS:
		m.pushVal(Bool(isNone(left) && isNone(right)))
	case token.NE, token.ISNOT:
		m.pushVal(Bool(!(isNone(left) && isNone(right))))
	default:
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	return nil
}

func (m *Machine) binaryString(it BinaryOpInstr, left, right StringVal) *RuntimeError {
	l, r := string(left), string(right)
	switch it.Op {
	case token.PLUS:
		m.pushVal(StringVal(l + r))
	case token.LT:
		m.pushVal(Bool(l < r))
	case token.GT:
		m.pushVal(Bool(l > r))
	case token.LE:
		m.pushVal(Bool(l <= r))
	case token.GE:
		m.pushVal(Bool(l >= r))
	case token.EQ, token.IS:
		m.pushVal(Bool(l == r))
	case token.NE, token.ISNOT:
		m.pushVal(Bool(l != r))
	case token.IN:
		m.pushVal(Bool(strings.Contains(r, l)))
	case token.NOTIN:
		m.pushVal(Bool(!strings.Contains(r, l)))
	default:
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	return nil
}

// binaryNumeric implements the numeric tower's arithmetic and comparison
// rules (spec.md §4.4, §4.5): Bool coerces to 0/1 BigInt, BigInt-BigInt
// stays BigInt except true division and negative-exponent power (both
// promote to Float), any Float operand promotes the whole operation to
// Float, floor division/modulo follow Python's sign-of-divisor rule.
func (m *Machine) binaryNumeric(it BinaryOpInstr, left, right Value) *RuntimeError {
	lb, lIsInt, lf, lIsFloat := numericOperand(left)
	rb, rIsInt, rf, rIsFloat := numericOperand(right)
	if !(lIsInt || lIsFloat) || !(rIsInt || rIsFloat) {
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}

	if isComparisonOp(it.Op) {
		return m.compareNumeric(it, left, right, lb, lIsInt, lf, rb, rIsInt, rf)
	}

	useFloat := lIsFloat || rIsFloat
	if !useFloat && it.Op == token.SLASH {
		useFloat = true
	}
	if !useFloat && it.Op == token.DOUBLESTAR && rIsInt && rb.Sign() < 0 {
		useFloat = true
	}

	if useFloat {
		lv := lf
		if lIsInt {
			lv = lb.Float64()
		}
		rv := rf
		if rIsInt {
			rv = rb.Float64()
		}
		return m.binaryFloat(it, lv, rv)
	}

	return m.binaryBigInt(it, lb, rb)
}

func numericOperand(v Value) (b *numeric.BigInt, isInt bool, f float64, isFloat bool) {
	switch val := v.(type) {
	case Bool:
		iv := int64(0)
		if val {
			iv = 1
		}
		return numeric.NewBigIntFromInt64(iv), true, 0, false
	case BigIntVal:
		return val.V, true, 0, false
	case FloatVal:
		return nil, false, float64(val), true
	default:
		return nil, false, 0, false
	}
}

func isComparisonOp(op token.Kind) bool {
	switch op {
	case token.LT, token.GT, token.LE, token.GE, token.EQ, token.NE, token.IS, token.ISNOT:
		return true
	default:
		return false
	}
}

func (m *Machine) compareNumeric(it BinaryOpInstr, left, right Value, lb *numeric.BigInt, lIsInt bool, lf float64, rb *numeric.BigInt, rIsInt bool, rf float64) *RuntimeError {
	var cmp int
	switch {
	case lIsInt && rIsInt:
		cmp = lb.Cmp(rb)
	case lIsInt && !rIsInt:
		cmp = numeric.CompareBigIntFloat(lb, rf)
	case !lIsInt && rIsInt:
		cmp = -numeric.CompareBigIntFloat(rb, lf)
	default:
		switch {
		case lf < rf:
			cmp = -1
		case lf > rf:
			cmp = 1
		default:
			cmp = 0
		}
	}
	var result bool
	switch it.Op {
	case token.LT:
		result = cmp < 0
	case token.GT:
		result = cmp > 0
	case token.LE:
		result = cmp <= 0
	case token.GE:
		result = cmp >= 0
	case token.EQ, token.IS:
		result = cmp == 0
	case token.NE, token.ISNOT:
		result = cmp != 0
	default:
		return unsupportedOperand(opSymbol(it.Op), it.Node, left, right)
	}
	m.pushVal(Bool(result))
	return nil
}

func (m *Machine) binaryFloat(it BinaryOpInstr, l, r float64) *RuntimeError {
	switch it.Op {
	case token.PLUS:
		m.pushVal(FloatVal(l + r))
	case token.MINUS:
		m.pushVal(FloatVal(l - r))
	case token.STAR:
		m.pushVal(FloatVal(l * r))
	case token.SLASH:
		if r == 0 {
			return zeroDivision(it.Node)
		}
		m.pushVal(FloatVal(l / r))
	case token.DOUBLESLASH:
		if r == 0 {
			return zeroDivision(it.Node)
		}
		m.pushVal(FloatVal(pyFloorFloat(l, r)))
	case token.PERCENT:
		if r == 0 {
			return zeroDivision(it.Node)
		}
		m.pushVal(FloatVal(l - pyFloorFloat(l, r)*r))
	case token.DOUBLESTAR:
		m.pushVal(FloatVal(pyPowFloat(l, r)))
	default:
		return &RuntimeError{Name: "UnsupportedOperandTypeError", Message: "unsupported operand type for " + opSymbol(it.Op), Pos: it.Node.Start().Pos}
	}
	return nil
}

func (m *Machine) binaryBigInt(it BinaryOpInstr, l, r *numeric.BigInt) *RuntimeError {
	switch it.Op {
	case token.PLUS:
		m.pushVal(BigIntVal{V: l.Add(r)})
	case token.MINUS:
		m.pushVal(BigIntVal{V: l.Sub(r)})
	case token.STAR:
		m.pushVal(BigIntVal{V: l.Mul(r)})
	case token.DOUBLESLASH:
		if r.IsZero() {
			return zeroDivision(it.Node)
		}
		q, _ := l.FloorDivMod(r)
		m.pushVal(BigIntVal{V: q})
	case token.PERCENT:
		if r.IsZero() {
			return zeroDivision(it.Node)
		}
		_, rem := l.FloorDivMod(r)
		m.pushVal(BigIntVal{V: rem})
	case token.DOUBLESTAR:
		p, err := l.Pow(r)
		if err != nil {
			return &RuntimeError{Name: "UnsupportedOperandTypeError", Message: err.Error(), Pos: it.Node.Start().Pos}
		}
		m.pushVal(BigIntVal{V: p})
	default:
		return &RuntimeError{Name: "UnsupportedOperandTypeError", Message: "unsupported operand type for " + opSymbol(it.Op), Pos: it.Node.Start().Pos}
	}
	return nil
}

func opSymbol(op token.Kind) string {
	switch op {
	case token.PLUS:
		return "+"
	case token.MINUS:
		return "-"
	case token.STAR:
		return "*"
	case token.SLASH:
		return "/"
	case token.DOUBLESLASH:
		return "//"
	case token.PERCENT:
		return "%"
	case token.DOUBLESTAR:
		return "**"
	case token.LT:
		return "<"
	case token.GT:
		return ">"
	case token.LE:
		return "<="
	case token.GE:
		return ">="
	case token.EQ:
		return "=="
	case token.NE:
		return "!="
	case token.IS:
		return "is"
	case token.ISNOT:
		return "is not"
	case token.IN:
		return "in"
	case token.NOTIN:
		return "not in"
	default:
		return op.String()
	}
}
