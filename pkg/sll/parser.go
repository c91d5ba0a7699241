package sll

import "fmt"

// Parser is a recursive-descent parser for SLL:
//
//	program := (frule | grule)* EOF
//	frule   := f_name '(' vrb (',' vrb)* ')' '=' exp ';'
//	grule   := g_name '(' ptr (',' vrb)* ')' '=' exp ';'
//	exp     := ctr | fcall | gcall | vrb
//	ctr     := c_name '(' exp (',' exp)* ')' | c_name '(' ')'
//	fcall   := f_name '(' exp (',' exp)* ')'
//	gcall   := g_name '(' exp (',' exp)* ')'
//	ptr     := c_name '(' vrb (',' vrb)* ')' | c_name '(' ')'
//
// Constructor names start with an upper-case letter, variables with a
// lower-case one. A lower-case name starting with f or g is a call when it
// is followed by '(' and a variable otherwise.
type Parser struct {
	lexer *Lexer
}

// NewParser creates a parser over text.
func NewParser(text string) *Parser {
	return &Parser{lexer: NewLexer(text)}
}

// ParseProgram parses a whole program and indexes its rules.
func ParseProgram(text string) (prog *Program, err error) {
	defer recoverParseError(&err)
	return NewParser(text).parseProgram(), nil
}

// ParseExpr parses a single expression, e.g. the expression to supercompile.
func ParseExpr(text string) (e Expr, err error) {
	defer recoverParseError(&err)
	p := NewParser(text)
	parsed := p.parseExpr()
	p.lexer.Expect(TokEOF, "")
	return parsed, nil
}

// MustParseProgram is like ParseProgram but panics on error.
func MustParseProgram(text string) *Program {
	prog, err := ParseProgram(text)
	if err != nil {
		panic(err)
	}
	return prog
}

// MustParseExpr is like ParseExpr but panics on error.
func MustParseExpr(text string) Expr {
	e, err := ParseExpr(text)
	if err != nil {
		panic(err)
	}
	return e
}

func recoverParseError(err *error) {
	if r := recover(); r != nil {
		pe, ok := r.(*ParseError)
		if !ok {
			panic(r)
		}
		*err = pe
	}
}

func (p *Parser) fail(tok Token, format string, args ...any) {
	panic(&ParseError{Pos: tok.Pos, Msg: fmt.Sprintf(format, args...)})
}

func (p *Parser) parseProgram() *Program {
	var rules []Rule
	for {
		tok := p.lexer.Peek()
		if tok.Kind == TokEOF {
			break
		}
		if tok.Kind != TokIdent {
			p.fail(tok, "expected rule, found %s", tok)
		}
		switch tok.Val[0] {
		case 'f':
			rules = append(rules, p.parseFRule())
		case 'g':
			rules = append(rules, p.parseGRule())
		default:
			p.fail(tok, "rule name %q must start with f or g", tok.Val)
		}
	}
	return NewProgram(rules)
}

func (p *Parser) parseFRule() *FRule {
	name := p.lexer.Next().Val
	p.lexer.Expect(TokPunct, "(")
	params := p.parseVars()
	p.lexer.Expect(TokPunct, ")")
	p.lexer.Expect(TokPunct, "=")
	body := p.parseExpr()
	p.lexer.Expect(TokPunct, ";")
	return &FRule{Name: name, Params: params, Body: body}
}

func (p *Parser) parseGRule() *GRule {
	name := p.lexer.Next().Val
	p.lexer.Expect(TokPunct, "(")
	pat := p.parsePattern()
	var params []*Var
	for p.isPunct(",") {
		p.lexer.Next()
		params = append(params, p.parseVar())
	}
	p.lexer.Expect(TokPunct, ")")
	p.lexer.Expect(TokPunct, "=")
	body := p.parseExpr()
	p.lexer.Expect(TokPunct, ";")
	return &GRule{Name: name, Pattern: pat, Params: params, Body: body}
}

func (p *Parser) parsePattern() *Pattern {
	tok := p.lexer.Expect(TokIdent, "")
	if !isUpper(tok.Val[0]) {
		p.fail(tok, "pattern must start with a constructor name, found %s", tok)
	}
	p.lexer.Expect(TokPunct, "(")
	args := p.parseVars()
	p.lexer.Expect(TokPunct, ")")
	return &Pattern{Name: tok.Val, Args: args}
}

// parseVars parses a possibly empty comma separated list of variables.
func (p *Parser) parseVars() []*Var {
	var vars []*Var
	if p.isPunct(")") {
		return vars
	}
	vars = append(vars, p.parseVar())
	for p.isPunct(",") {
		p.lexer.Next()
		vars = append(vars, p.parseVar())
	}
	return vars
}

func (p *Parser) parseVar() *Var {
	tok := p.lexer.Expect(TokIdent, "")
	if !isLower(tok.Val[0]) {
		p.fail(tok, "expected variable, found %s", tok)
	}
	return &Var{Name: tok.Val}
}

func (p *Parser) parseExpr() Expr {
	tok := p.lexer.Expect(TokIdent, "")
	name := tok.Val
	if isUpper(name[0]) {
		return &Ctr{Name: name, Args: p.parseArgs()}
	}
	if p.isPunct("(") {
		switch name[0] {
		case 'f':
			return &FCall{Name: name, Args: p.parseArgs()}
		case 'g':
			return &GCall{Name: name, Args: p.parseArgs()}
		}
	}
	return &Var{Name: name}
}

// parseArgs parses a parenthesised, possibly empty, argument list.
func (p *Parser) parseArgs() []Expr {
	p.lexer.Expect(TokPunct, "(")
	var args []Expr
	if !p.isPunct(")") {
		args = append(args, p.parseExpr())
		for p.isPunct(",") {
			p.lexer.Next()
			args = append(args, p.parseExpr())
		}
	}
	p.lexer.Expect(TokPunct, ")")
	return args
}

func (p *Parser) isPunct(val string) bool {
	tok := p.lexer.Peek()
	return tok.Kind == TokPunct && tok.Val == val
}
