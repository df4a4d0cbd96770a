// Package parser implements pycse's recursive-descent, single-token
// lookahead parser (spec.md §4.2), turning a token stream into a typed AST.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/pycse/internal/ast"
	"github.com/cwbudde/pycse/internal/errors"
	"github.com/cwbudde/pycse/internal/lexer"
	"github.com/cwbudde/pycse/internal/token"
)

// syncKinds are the token kinds the parser resumes at after a recoverable
// fault: NEWLINE, FOR, WHILE, DEF, IF, ELIF, ELSE, RETURN (spec.md §4.2).
var syncKinds = map[token.Kind]bool{
	token.NEWLINE: true, token.FOR: true, token.WHILE: true, token.DEF: true,
	token.IF: true, token.ELIF: true, token.ELSE: true, token.RETURN: true,
}

// Parser is a recursive-descent parser over a fully pre-scanned token
// stream (arbitrary lookahead is cheap and simplifies the NAME-vs-assign
// disambiguation the grammar's `assign_stmt` rule requires).
type Parser struct {
	tokens []token.Token
	pos    int
	source string
	errs   []*errors.Diagnostic
}

// New tokenizes source in full and prepares a Parser over the result.
func New(source string) *Parser {
	l := lexer.New(source)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.ENDMARKER {
			break
		}
	}
	p := &Parser{tokens: toks, source: source}
	for _, le := range l.Errors() {
		p.errs = append(p.errs, errors.New(errors.KindTokenizer, le.Kind, le.Message, le.Pos, source))
	}
	return p
}

// Errors returns every lexer and parser diagnostic collected so far.
func (p *Parser) Errors() []*errors.Diagnostic { return p.errs }

func (p *Parser) cur() token.Token { return p.tokens[p.pos] }

func (p *Parser) peek(n int) token.Token {
	idx := p.pos + n
	if idx >= len(p.tokens) {
		idx = len(p.tokens) - 1
	}
	return p.tokens[idx]
}

func (p *Parser) check(k token.Kind) bool { return p.cur().Kind == k }

func (p *Parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *Parser) match(k token.Kind) bool {
	if p.check(k) {
		p.advance()
		return true
	}
	return false
}

func (p *Parser) errorf(name string, pos token.Position, width int, format string, args ...any) {
	if width < 1 {
		width = 1
	}
	d := errors.New(errors.KindParser, name, fmt.Sprintf(format, args...), pos, p.source)
	d.CaretWidth = width
	p.errs = append(p.errs, d)
}

// expect consumes the current token if it has kind k; otherwise it records
// an ExpectedTokenError and still consumes one token, so the parser always
// makes forward progress and recovers at the next statement boundary
// (spec.md §4.2).
func (p *Parser) expect(k token.Kind, context string) token.Token {
	if p.check(k) {
		return p.advance()
	}
	cur := p.cur()
	p.errorf("ExpectedTokenError", cur.Pos, max(1, len(cur.Lexeme)),
		"expected %s in %s, found %s", k, context, cur.Kind)
	return p.advance()
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// synchronize discards tokens until one of syncKinds or ENDMARKER is next.
// It discards nothing when the faulty statement already ran through its
// closing NEWLINE or DEDENT, so the statement after it is still parsed.
func (p *Parser) synchronize() {
	if p.pos > 0 {
		if prev := p.tokens[p.pos-1].Kind; prev == token.NEWLINE || prev == token.DEDENT {
			return
		}
	}
	for !p.check(token.ENDMARKER) && !syncKinds[p.cur().Kind] {
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a FileInput.
func (p *Parser) ParseProgram() *ast.FileInput {
	start := p.cur()
	var stmts []ast.Stmt
	for !p.check(token.ENDMARKER) {
		if p.check(token.NEWLINE) || p.check(token.DEDENT) {
			p.advance()
			continue
		}
		before := len(p.errs)
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		if len(p.errs) > before {
			p.synchronize()
		}
	}
	end := p.cur()
	return &ast.FileInput{Span: ast.NewSpan(start, end), Stmts: stmts, VarDecls: collectAssignTargets(stmts)}
}

func (p *Parser) parseBlock() []ast.Stmt {
	p.expect(token.NEWLINE, "block")
	p.expect(token.INDENT, "block")
	var stmts []ast.Stmt
	for !p.check(token.DEDENT) && !p.check(token.ENDMARKER) {
		if p.check(token.NEWLINE) {
			p.advance()
			continue
		}
		before := len(p.errs)
		s := p.parseStmt()
		if s != nil {
			stmts = append(stmts, s)
		}
		if len(p.errs) > before {
			p.synchronize()
		}
	}
	p.expect(token.DEDENT, "block")
	return stmts
}

func (p *Parser) parseStmt() ast.Stmt {
	switch p.cur().Kind {
	case token.DEF:
		return p.parseFuncDef()
	case token.IF:
		return p.parseIf()
	case token.WHILE:
		return p.parseWhile()
	case token.FOR:
		return p.parseFor()
	default:
		return p.parseSimpleStmt()
	}
}

func (p *Parser) parseSimpleStmt() ast.Stmt {
	start := p.cur()
	var stmt ast.Stmt

	switch {
	case p.check(token.PASS):
		p.advance()
		stmt = &ast.Pass{Span: ast.NewSpan(start, start)}
	case p.check(token.BREAK):
		p.advance()
		stmt = &ast.Break{Span: ast.NewSpan(start, start)}
	case p.check(token.CONTINUE):
		p.advance()
		stmt = &ast.Continue{Span: ast.NewSpan(start, start)}
	case p.check(token.RETURN):
		p.advance()
		var val ast.Expr
		if !p.check(token.NEWLINE) && !p.check(token.ENDMARKER) {
			val = p.test()
		}
		stmt = &ast.Return{Span: ast.NewSpan(start, p.prevEnd()), Value: val}
	case p.check(token.FROM):
		stmt = p.parseFromImport(start)
	case p.check(token.GLOBAL):
		p.advance()
		name := p.expect(token.NAME, "global statement")
		stmt = &ast.Global{Span: ast.NewSpan(start, name), Name: name}
	case p.check(token.NONLOCAL):
		p.advance()
		name := p.expect(token.NAME, "nonlocal statement")
		stmt = &ast.NonLocal{Span: ast.NewSpan(start, name), Name: name}
	case p.check(token.ASSERT):
		p.advance()
		val := p.test()
		stmt = &ast.Assert{Span: ast.NewSpan(start, val.End()), Value: val}
	case p.check(token.NAME) && p.peek(1).Kind == token.COLON:
		stmt = p.parseAnnAssign(start)
	case p.check(token.NAME) && p.peek(1).Kind == token.ASSIGN:
		stmt = p.parseAssign(start)
	default:
		expr := p.test()
		stmt = &ast.SimpleExpr{Span: ast.NewSpan(start, expr.End()), Expr: expr}
	}

	if !p.check(token.ENDMARKER) {
		p.expect(token.NEWLINE, "end of statement")
	}
	return stmt
}

func (p *Parser) prevEnd() token.Token {
	if p.pos == 0 {
		return p.cur()
	}
	return p.tokens[p.pos-1]
}

func (p *Parser) parseAnnAssign(start token.Token) ast.Stmt {
	name := p.advance()
	p.expect(token.COLON, "annotated assignment")
	ann := p.test()
	p.expect(token.ASSIGN, "annotated assignment")
	val := p.test()
	return &ast.AnnAssign{Span: ast.NewSpan(start, val.End()), Name: name, Annotation: ann, Value: val}
}

func (p *Parser) parseAssign(start token.Token) ast.Stmt {
	name := p.advance()
	p.expect(token.ASSIGN, "assignment")
	val := p.test()
	return &ast.Assign{Span: ast.NewSpan(start, val.End()), Name: name, Value: val}
}

func (p *Parser) parseFromImport(start token.Token) ast.Stmt {
	p.advance() // FROM
	module := p.expect(token.NAME, "from-import statement")
	p.expect(token.IMPORT, "from-import statement")
	names := []token.Token{p.expect(token.NAME, "from-import statement")}
	for p.match(token.COMMA) {
		names = append(names, p.expect(token.NAME, "from-import statement"))
	}
	return &ast.FromImport{Span: ast.NewSpan(start, names[len(names)-1]), Module: module, Names: names}
}

func (p *Parser) parseIf() ast.Stmt {
	start := p.advance() // IF or ELIF
	cond := p.test()
	p.expect(token.COLON, "if condition")
	body := p.parseBlock()

	var elseBody []ast.Stmt
	switch {
	case p.check(token.ELIF):
		elseBody = []ast.Stmt{p.parseIf()}
	case p.check(token.ELSE):
		p.advance()
		p.expect(token.COLON, "else clause")
		elseBody = p.parseBlock()
	default:
		p.errorf("NoElseBlockError", start.Pos, len(start.Lexeme), "if statement requires an else or elif branch")
	}

	return &ast.If{Span: ast.NewSpan(start, p.prevEnd()), Cond: cond, Body: body, Else: elseBody}
}

func (p *Parser) parseWhile() ast.Stmt {
	start := p.expect(token.WHILE, "while statement")
	cond := p.test()
	p.expect(token.COLON, "while statement")
	body := p.parseBlock()
	return &ast.While{Span: ast.NewSpan(start, p.prevEnd()), Cond: cond, Body: body}
}

func (p *Parser) parseFor() ast.Stmt {
	start := p.expect(token.FOR, "for statement")
	target := p.expect(token.NAME, "for statement")
	p.expect(token.IN, "for statement")
	iter := p.test()
	p.expect(token.COLON, "for statement")
	body := p.parseBlock()
	return &ast.For{Span: ast.NewSpan(start, p.prevEnd()), Target: target, Iter: iter, Body: body}
}

func (p *Parser) parseFuncDef() ast.Stmt {
	start := p.expect(token.DEF, "function definition")
	name := p.expect(token.NAME, "function definition")
	p.expect(token.LPAREN, "function definition")
	params := p.parseNameList(token.RPAREN)
	p.expect(token.RPAREN, "function definition")
	p.expect(token.COLON, "function definition")
	body := p.parseBlock()
	return &ast.FunctionDef{
		Span: ast.NewSpan(start, p.prevEnd()), Name: name, Params: params,
		Body: body, VarDecls: collectAssignTargets(body),
	}
}

func (p *Parser) parseNameList(end token.Kind) []token.Token {
	var names []token.Token
	if p.check(end) {
		return names
	}
	names = append(names, p.expect(token.NAME, "parameter list"))
	for p.match(token.COMMA) {
		if p.check(end) {
			break
		}
		names = append(names, p.expect(token.NAME, "parameter list"))
	}
	return names
}

// --- Expressions -----------------------------------------------------------

func (p *Parser) test() ast.Expr {
	if p.check(token.LAMBDA) {
		return p.lambdef()
	}
	left := p.orTest()
	if p.match(token.IF) {
		pred := p.orTest()
		p.expect(token.ELSE, "ternary expression")
		alt := p.test()
		return &ast.Ternary{Span: ast.NewSpan(left.Start(), alt.End()), Predicate: pred, Consequent: left, Alternative: alt}
	}
	return left
}

func (p *Parser) lambdef() ast.Expr {
	start := p.expect(token.LAMBDA, "lambda expression")
	params := p.parseNameList(token.COLON)
	p.expect(token.COLON, "lambda expression")
	if p.check(token.NEWLINE) {
		body := p.parseBlock()
		return &ast.MultiLambda{Span: ast.NewSpan(start, p.prevEnd()), Params: params, Body: body, VarDecls: collectAssignTargets(body)}
	}
	body := p.test()
	return &ast.Lambda{Span: ast.NewSpan(start, body.End()), Params: params, Body: body}
}

func (p *Parser) orTest() ast.Expr {
	left := p.andTest()
	for p.check(token.OR) {
		p.advance()
		right := p.andTest()
		left = &ast.BoolOp{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: token.OR, Right: right}
	}
	return left
}

func (p *Parser) andTest() ast.Expr {
	left := p.notTest()
	for p.check(token.AND) {
		p.advance()
		right := p.notTest()
		left = &ast.BoolOp{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: token.AND, Right: right}
	}
	return left
}

func (p *Parser) notTest() ast.Expr {
	if p.check(token.NOT) {
		start := p.advance()
		operand := p.notTest()
		return &ast.Unary{Span: ast.NewSpan(start, operand.End()), Op: token.NOT, Operand: operand}
	}
	return p.comparison()
}

var compareOps = map[token.Kind]bool{
	token.LT: true, token.GT: true, token.LE: true, token.GE: true,
	token.EQ: true, token.NE: true, token.IS: true, token.ISNOT: true,
	token.IN: true, token.NOTIN: true,
}

func (p *Parser) comparison() ast.Expr {
	left := p.arith()
	for compareOps[p.cur().Kind] {
		op := p.advance().Kind
		right := p.arith()
		left = &ast.Compare{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) arith() ast.Expr {
	left := p.term()
	for p.check(token.PLUS) || p.check(token.MINUS) {
		op := p.advance().Kind
		right := p.term()
		left = &ast.Binary{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

func (p *Parser) term() ast.Expr {
	left := p.factor()
	for p.check(token.STAR) || p.check(token.SLASH) || p.check(token.PERCENT) || p.check(token.DOUBLESLASH) {
		op := p.advance().Kind
		right := p.factor()
		left = &ast.Binary{Span: ast.NewSpan(left.Start(), right.End()), Left: left, Op: op, Right: right}
	}
	return left
}

// factor is right-recursive so "--x" parses as Unary(-, Unary(-, x))
// (spec.md §4.2).
func (p *Parser) factor() ast.Expr {
	if p.check(token.PLUS) || p.check(token.MINUS) {
		start := p.advance()
		operand := p.factor()
		return &ast.Unary{Span: ast.NewSpan(start, operand.End()), Op: start.Kind, Operand: operand}
	}
	return p.power()
}

func (p *Parser) power() ast.Expr {
	base := p.atomExpr()
	if p.check(token.DOUBLESTAR) {
		p.advance()
		exp := p.factor()
		return &ast.Binary{Span: ast.NewSpan(base.Start(), exp.End()), Left: base, Op: token.DOUBLESTAR, Right: exp}
	}
	return base
}

// atomExpr parses chained calls left-associatively: f()() is Call(Call(f)).
func (p *Parser) atomExpr() ast.Expr {
	node := p.atom()
	for p.check(token.LPAREN) {
		p.advance()
		args := p.parseArgList()
		end := p.expect(token.RPAREN, "call arguments")
		node = &ast.Call{Span: ast.NewSpan(node.Start(), end), Callee: node, Args: args}
	}
	return node
}

func (p *Parser) parseArgList() []ast.Expr {
	var args []ast.Expr
	if p.check(token.RPAREN) {
		return args
	}
	args = append(args, p.test())
	for p.match(token.COMMA) {
		if p.check(token.RPAREN) {
			break
		}
		args = append(args, p.test())
	}
	return args
}

func (p *Parser) atom() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.TRUE:
		p.advance()
		return &ast.BoolLiteral{Span: ast.NewSpan(t, t), Value: true}
	case token.FALSE:
		p.advance()
		return &ast.BoolLiteral{Span: ast.NewSpan(t, t), Value: false}
	case token.NONE:
		p.advance()
		return &ast.None{Span: ast.NewSpan(t, t)}
	case token.STRING:
		p.advance()
		return &ast.StringLiteral{Span: ast.NewSpan(t, t), Value: t.Lexeme}
	case token.NUMBER:
		p.advance()
		v, _ := strconv.ParseFloat(strings.ReplaceAll(t.Lexeme, "_", ""), 64)
		return &ast.NumberLiteral{Span: ast.NewSpan(t, t), Value: v}
	case token.BIGINT:
		p.advance()
		return &ast.BigIntLiteral{Span: ast.NewSpan(t, t), Lexeme: t.Lexeme}
	case token.COMPLEX:
		p.advance()
		imag := parseComplexImag(t.Lexeme)
		return &ast.Complex{Span: ast.NewSpan(t, t), Real: 0, Imag: imag}
	case token.NAME:
		p.advance()
		return &ast.Variable{Span: ast.NewSpan(t, t), Name: t}
	case token.LPAREN:
		p.advance()
		inner := p.test()
		end := p.expect(token.RPAREN, "parenthesized expression")
		return &ast.Grouping{Span: ast.NewSpan(t, end), Inner: inner}
	default:
		p.errorf("UnexpectedSyntaxError", t.Pos, max(1, len(t.Lexeme)), "unexpected token %s", t.Kind)
		p.advance()
		return &ast.None{Span: ast.NewSpan(t, t)} // placeholder so the caller can keep building a tree
	}
}

func parseComplexImag(lexeme string) float64 {
	mantissa := strings.TrimSuffix(strings.TrimSuffix(lexeme, "j"), "J")
	mantissa = strings.ReplaceAll(mantissa, "_", "")
	if mantissa == "" {
		return 1
	}
	v, _ := strconv.ParseFloat(mantissa, 64)
	return v
}

// collectAssignTargets scans a statement list's top level (not recursing
// into nested functions/lambdas) for assignment targets, the same
// pre-computation the CSE machine's Closure does for localVariables
// (spec.md §3, §4.5).
func collectAssignTargets(stmts []ast.Stmt) []string {
	seen := map[string]bool{}
	var names []string
	add := func(n string) {
		if !seen[n] {
			seen[n] = true
			names = append(names, n)
		}
	}
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.Assign:
			add(st.Name.Lexeme)
		case *ast.AnnAssign:
			add(st.Name.Lexeme)
		case *ast.FunctionDef:
			add(st.Name.Lexeme)
		case *ast.For:
			add(st.Target.Lexeme)
		case *ast.If:
			for _, n := range collectAssignTargets(st.Body) {
				add(n)
			}
			for _, n := range collectAssignTargets(st.Else) {
				add(n)
			}
		case *ast.While:
			for _, n := range collectAssignTargets(st.Body) {
				add(n)
			}
		}
	}
	return names
}
