package cse

import "github.com/cwbudde/pycse/internal/token"

func (m *Machine) stepInstr(instr Instruction) *RuntimeError {
	switch it := instr.(type) {
	case UnaryOpInstr:
		return m.execUnaryOp(it)
	case BinaryOpInstr:
		return m.execBinaryOp(it)
	case BoolOpInstr:
		return m.execBoolOp(it)
	case AssignmentInstr:
		m.currentEnv.Bind(it.Name, m.popVal())
	case ApplicationInstr:
		return m.execApplication(it)
	case ResetInstr:
		m.currentEnv = it.Env
	case EndOfFunctionBodyInstr:
		m.pushVal(Undefined{})
	case BranchInstr:
		return m.execBranch(it)
	case PopInstr:
		m.popVal()
	case AssertInstr:
		if !Truthy(m.popVal()) {
			return &RuntimeError{Name: "AssertionError", Message: "assertion failed",
				Pos: it.Node.Start().Pos, Width: max1(len(it.Node.Start().Lexeme))}
		}
	case forStartInstr:
		return m.execForStart(it)
	case *LoopInstr:
		return m.execLoop(it)
	}
	return nil
}

func (m *Machine) execBranch(it BranchInstr) *RuntimeError {
	cond := m.popVal()
	if Truthy(cond) {
		if it.ConsequentExpr != nil {
			m.push(it.ConsequentExpr)
		} else {
			m.pushStmts(it.ConsequentStmts)
		}
		return nil
	}
	if it.AlternateExpr != nil {
		m.push(it.AlternateExpr)
	} else if it.AlternateStmts != nil {
		m.pushStmts(it.AlternateStmts)
	}
	return nil
}

func (m *Machine) execForStart(it forStartInstr) *RuntimeError {
	iterVal := m.popVal()
	s, ok := iterVal.(StringVal)
	if !ok {
		return &RuntimeError{Name: "UnsupportedOperandTypeError",
			Message: "'" + iterVal.Kind() + "' object is not iterable",
			Pos:     it.node.Start().Pos, Width: max1(len(it.node.Start().Lexeme))}
	}
	m.push(&LoopInstr{IsFor: true, Target: it.target, Body: it.body, Chars: []rune(string(s))})
	return nil
}

func (m *Machine) execLoop(it *LoopInstr) *RuntimeError {
	if it.IsFor {
		if it.Index >= len(it.Chars) {
			return nil
		}
		ch := it.Chars[it.Index]
		it.Index++
		m.currentEnv.Bind(it.Target, StringVal(string(ch)))
		m.push(it)
		m.pushStmts(it.Body)
		return nil
	}

	cond := m.popVal()
	if !Truthy(cond) {
		return nil
	}
	m.push(it)
	m.push(it.Cond)
	m.pushStmts(it.Body)
	return nil
}

func (m *Machine) execApplication(it ApplicationInstr) *RuntimeError {
	args := make([]Value, it.Argc)
	for i := it.Argc - 1; i >= 0; i-- {
		args[i] = m.popVal()
	}
	callee := m.popVal()

	switch fn := callee.(type) {
	case *Closure:
		if fn.IsLambda && fn.Expr != nil {
			frame := NewCallFrame(fn)
			bindParams(frame, fn.Params, args)
			m.push(ResetInstr{Env: m.currentEnv})
			m.currentEnv = frame
			m.push(fn.Expr)
			return nil
		}
		frame := NewCallFrame(fn)
		bindParams(frame, fn.Params, args)
		m.push(ResetInstr{Env: m.currentEnv})
		m.push(EndOfFunctionBodyInstr{})
		m.currentEnv = frame
		m.pushStmts(fn.Body)
		return nil
	case *ForeignClosure:
		result, err := fn.Fn(args)
		if err != nil {
			return &RuntimeError{Name: "RuntimeError", Message: err.Error(),
				Pos: it.Node.Start().Pos, Width: max1(len(it.Node.Start().Lexeme))}
		}
		m.pushVal(result)
		return nil
	case *Builtin:
		result, err := fn.Fn(m, args)
		if err != nil {
			if rerr, ok := err.(*RuntimeError); ok {
				if rerr.Pos == (token.Position{}) {
					rerr.Pos = it.Node.Start().Pos
					rerr.Width = max1(len(it.Node.Start().Lexeme))
				}
				return rerr
			}
			return &RuntimeError{Name: "RuntimeError", Message: err.Error(),
				Pos: it.Node.Start().Pos, Width: max1(len(it.Node.Start().Lexeme))}
		}
		m.pushVal(result)
		return nil
	default:
		return &RuntimeError{Name: "UnsupportedOperandTypeError",
			Message: "'" + callee.Kind() + "' object is not callable",
			Pos:     it.Node.Start().Pos, Width: max1(len(it.Node.Start().Lexeme))}
	}
}

func bindParams(frame *Environment, params []string, args []Value) {
	for i, p := range params {
		if i < len(args) {
			frame.Bind(p, args[i])
		} else {
			frame.Bind(p, Undefined{})
		}
	}
}
