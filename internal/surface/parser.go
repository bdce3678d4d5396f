package surface

import (
	"fmt"

	"github.com/janus-lang/janus/internal/semiring"
	"github.com/janus-lang/janus/internal/term"
)

// ParseError is a structured parse failure with source position.
type ParseError struct {
	Message string
	Tok     Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s (near %s)", e.Tok.Position(), e.Message, e.Tok.Literal)
}

// Parser is a recursive-descent parser over a token stream, resolving
// identifiers against a stack of locally-bound names as it descends
// into binders; anything left unresolved becomes a Global, deferred to
// the checker's UnknownVarError.
type Parser struct {
	l         *Lexer
	curToken  Token
	peekToken Token
	scope     []string
}

// New creates a Parser over l and primes the two-token lookahead.
func New(l *Lexer) *Parser {
	p := &Parser{l: l}
	p.next()
	p.next()
	return p
}

func (p *Parser) next() {
	p.curToken = p.peekToken
	p.peekToken = p.l.NextToken()
}

func (p *Parser) expect(t TokenType) (Token, error) {
	if p.curToken.Type != t {
		return Token{}, &ParseError{Message: fmt.Sprintf("expected %s", t), Tok: p.curToken}
	}
	tok := p.curToken
	p.next()
	return tok, nil
}

func (p *Parser) pushScope(name string) { p.scope = append(p.scope, name) }
func (p *Parser) popScope()             { p.scope = p.scope[:len(p.scope)-1] }

func (p *Parser) resolve(name string) term.Name {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if p.scope[i] == name {
			return term.Local{Index: len(p.scope) - 1 - i}
		}
	}
	return term.Global{Name: name}
}

// Bound and Global play different roles depending on whether the name
// resolved to an enclosing binder. resolveExpr builds the matching
// ITerm node directly, since Bound/Global are both referenced the same
// way at this layer (term.Free wraps Global; a resolved binder becomes
// a raw term.Bound).
func (p *Parser) resolveExpr(name string) term.ITerm {
	for i := len(p.scope) - 1; i >= 0; i-- {
		if p.scope[i] == name {
			return term.Bound{Index: len(p.scope) - 1 - i}
		}
	}
	return term.Free{Name: term.Global{Name: name}}
}

// toITerm unwraps a CTerm that is secretly inferable (built via Inf).
// A CTerm that isn't already inferable (a bare Lam, pair literal, or
// type former) needs an explicit `: T` ascription before it can appear
// where only an ITerm is allowed.
func toITerm(c term.CTerm) (term.ITerm, error) {
	if inf, ok := c.(term.Inf); ok {
		return inf.Term, nil
	}
	return nil, fmt.Errorf("expected an inferable term here; add a type ascription `: T`, got %s", c)
}

// ToITerm exposes toITerm to callers outside the package (the REPL's
// `:type` command parses a bare expression and needs the same
// inferable-term check ParseStmt applies to a top-level Eval).
func ToITerm(c term.CTerm) (term.ITerm, error) {
	return toITerm(c)
}

// parseUsage parses an optional usage prefix (0, 1, w, ω), defaulting
// to Many when none is present.
func (p *Parser) parseUsage() (semiring.Q, error) {
	switch {
	case p.curToken.Type == INT && p.curToken.Literal == "0":
		p.next()
		return semiring.Zero, nil
	case p.curToken.Type == INT && p.curToken.Literal == "1":
		p.next()
		return semiring.One, nil
	case p.curToken.Type == OMEGA:
		p.next()
		return semiring.Many, nil
	case p.curToken.Type == IDENT && p.curToken.Literal == "w":
		p.next()
		return semiring.Many, nil
	default:
		return semiring.Many, nil
	}
}

func startsAtom(t TokenType) bool {
	switch t {
	case IDENT, LPAREN, LANGLE, UNIT, ADDUNIT, BACKSLASH, UNIVERSE, IUNIT, TOP, FST, SND, LET:
		return true
	}
	return false
}

// ParseExpr parses a single term at top level.
func (p *Parser) ParseExpr() (term.CTerm, error) {
	return p.parseAscription()
}

// parseAscription parses an application chain (or any atom) and an
// optional trailing `: Type`, which turns it into an Ann.
func (p *Parser) parseAscription() (term.CTerm, error) {
	e, err := p.parseApp()
	if err != nil {
		return nil, err
	}
	if p.curToken.Type == COLON {
		p.next()
		ty, err := p.parseAscription()
		if err != nil {
			return nil, err
		}
		return term.Inf{Term: term.Ann{Expr: e, Type: ty}}, nil
	}
	return e, nil
}

// parseApp parses a left-associative chain of atom applications.
func (p *Parser) parseApp() (term.CTerm, error) {
	head, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for startsAtom(p.curToken.Type) {
		iHead, err := toITerm(head)
		if err != nil {
			return nil, fmt.Errorf("cannot apply %s: %w", head, err)
		}
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		head = term.Inf{Term: term.App{Fun: iHead, Arg: arg}}
	}
	return head, nil
}

// parseAtom parses a single non-application term: a variable, a
// parenthesized form, a literal, a type former, or an eliminator.
func (p *Parser) parseAtom() (term.CTerm, error) {
	switch p.curToken.Type {
	case IDENT:
		name := p.curToken.Literal
		p.next()
		return term.Inf{Term: p.resolveExpr(name)}, nil

	case UNIVERSE:
		p.next()
		return term.Universe{}, nil

	case IUNIT:
		p.next()
		return term.MUnitType{}, nil

	case TOP:
		p.next()
		return term.AUnitType{}, nil

	case UNIT:
		p.next()
		return term.MUnit{}, nil

	case ADDUNIT:
		p.next()
		return term.AUnit{}, nil

	case BACKSLASH:
		return p.parseLam()

	case FORALL:
		return p.parseForall()

	case FST:
		p.next()
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		iArg, err := toITerm(arg)
		if err != nil {
			return nil, fmt.Errorf("fst requires an inferable pair: %w", err)
		}
		return term.Inf{Term: term.Fst{Pair: iArg}}, nil

	case SND:
		p.next()
		arg, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		iArg, err := toITerm(arg)
		if err != nil {
			return nil, fmt.Errorf("snd requires an inferable pair: %w", err)
		}
		return term.Inf{Term: term.Snd{Pair: iArg}}, nil

	case LET:
		return p.parseElim()

	case LANGLE:
		return p.parseMPairLiteral()

	case LPAREN:
		return p.parseParen()

	default:
		return nil, &ParseError{Message: "unexpected token in expression", Tok: p.curToken}
	}
}

// parseLam parses `\x -> body` / `λx -> body`.
func (p *Parser) parseLam() (term.CTerm, error) {
	p.next() // consume \ or λ
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ARROW); err != nil {
		return nil, err
	}
	// The body is parsed at application precedence, not ascription:
	// `\x -> \y -> y : T` must let `: T` bubble up to ascribe the whole
	// lambda chain, not just bind to the innermost `y`.
	p.pushScope(nameTok.Literal)
	body, err := p.parseApp()
	p.popScope()
	if err != nil {
		return nil, err
	}
	return term.Lam{Body: body}, nil
}

// parseForall parses `forall (q1 x1:A1) (q2 x2:A2) ... . B` as sugar
// for nested Pi types.
func (p *Parser) parseForall() (term.CTerm, error) {
	p.next() // consume forall
	var binders []Binding
	for p.curToken.Type == LPAREN {
		b, err := p.parseBinder()
		if err != nil {
			return nil, err
		}
		binders = append(binders, b)
		p.pushScope(b.Name)
	}
	if len(binders) == 0 {
		return nil, &ParseError{Message: "forall requires at least one binder", Tok: p.curToken}
	}
	if _, err := p.expect(DOT); err != nil {
		for range binders {
			p.popScope()
		}
		return nil, err
	}
	body, err := p.parseApp()
	for range binders {
		p.popScope()
	}
	if err != nil {
		return nil, err
	}
	for i := len(binders) - 1; i >= 0; i-- {
		body = term.Pi{Usage: binders[i].Usage, Domain: binders[i].Type, Cod: body}
	}
	return body, nil
}

// parseBinder parses `(q name : Type)`, leaving name in the caller's
// responsibility to push onto scope before parsing whatever follows.
func (p *Parser) parseBinder() (Binding, error) {
	if _, err := p.expect(LPAREN); err != nil {
		return Binding{}, err
	}
	usage, err := p.parseUsage()
	if err != nil {
		return Binding{}, err
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return Binding{}, err
	}
	if _, err := p.expect(COLON); err != nil {
		return Binding{}, err
	}
	ty, err := p.parseAscription()
	if err != nil {
		return Binding{}, err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return Binding{}, err
	}
	return Binding{Name: nameTok.Literal, Usage: usage, Type: ty}, nil
}

// parseMPairLiteral parses `<a, b>` (or `⟨a, b⟩`), the multiplicative
// pair introduction form.
func (p *Parser) parseMPairLiteral() (term.CTerm, error) {
	p.next() // consume < or ⟨
	fst, err := p.parseAscription()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(COMMA); err != nil {
		return nil, err
	}
	snd, err := p.parseAscription()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(RANGLE); err != nil {
		return nil, err
	}
	return term.MPair{Fst: fst, Snd: snd}, nil
}

// parseElim parses the two eliminator forms that open with `let` mid
// expression: `let <x, y> = e in body : T` (tensor) and
// `let () = e in body : T` (multiplicative unit). The trailing `: T`
// names a result type written in the surrounding scope; since the
// scrutinee is not in scope there, it is shifted outward by one to
// become the (unused) motive binder.
func (p *Parser) parseElim() (term.CTerm, error) {
	p.next() // consume let

	switch p.curToken.Type {
	case UNIT:
		p.next()
		if _, err := p.expect(EQUALS); err != nil {
			return nil, err
		}
		scrutC, err := p.parseAscription()
		if err != nil {
			return nil, err
		}
		scrut, err := toITerm(scrutC)
		if err != nil {
			return nil, fmt.Errorf("let () = requires an inferable scrutinee: %w", err)
		}
		if _, err := p.expect(IN); err != nil {
			return nil, err
		}
		// Body is parsed at application precedence so the trailing
		// `: T` is left for parseTrailingMotive rather than being
		// swallowed as an ascription of the body alone.
		body, err := p.parseApp()
		if err != nil {
			return nil, err
		}
		motive, err := p.parseTrailingMotive()
		if err != nil {
			return nil, err
		}
		return term.Inf{Term: term.MUnitElim{Scrutinee: scrut, Body: body, Motive: motive}}, nil

	case LANGLE:
		p.next()
		xTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(COMMA); err != nil {
			return nil, err
		}
		yTok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RANGLE); err != nil {
			return nil, err
		}
		if _, err := p.expect(EQUALS); err != nil {
			return nil, err
		}
		scrutC, err := p.parseAscription()
		if err != nil {
			return nil, err
		}
		scrut, err := toITerm(scrutC)
		if err != nil {
			return nil, fmt.Errorf("let <x,y> = requires an inferable scrutinee: %w", err)
		}
		if _, err := p.expect(IN); err != nil {
			return nil, err
		}
		p.pushScope(xTok.Literal)
		p.pushScope(yTok.Literal)
		body, err := p.parseApp()
		p.popScope()
		p.popScope()
		if err != nil {
			return nil, err
		}
		motive, err := p.parseTrailingMotive()
		if err != nil {
			return nil, err
		}
		return term.Inf{Term: term.MPairElim{Scrutinee: scrut, Body: body, Motive: motive}}, nil

	default:
		return nil, &ParseError{Message: "expected () or <x, y> pattern after let", Tok: p.curToken}
	}
}

// parseTrailingMotive parses the `: T` that must follow an
// eliminator's body and shifts it into motive position.
func (p *Parser) parseTrailingMotive() (term.CTerm, error) {
	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}
	ty, err := p.parseAscription()
	if err != nil {
		return nil, err
	}
	return term.ShiftC(0, 1, ty), nil
}

// parseParen disambiguates the four forms that can start with `(`:
// a Pi/MPairType binder `(q x : A) -> B` / `(q x : A) * B`, a bare
// ascription-or-grouping `(e)` / `(e : T)`, and an additive pair
// `(a, b)`.
func (p *Parser) parseParen() (term.CTerm, error) {
	if looksLikeBinder(p) {
		b, err := p.parseBinder()
		if err != nil {
			return nil, err
		}
		switch p.curToken.Type {
		case ARROW:
			p.next()
			p.pushScope(b.Name)
			cod, err := p.parseAscription()
			p.popScope()
			if err != nil {
				return nil, err
			}
			return term.Pi{Usage: b.Usage, Domain: b.Type, Cod: cod}, nil
		case STAR:
			p.next()
			p.pushScope(b.Name)
			cod, err := p.parseAscription()
			p.popScope()
			if err != nil {
				return nil, err
			}
			return term.MPairType{Usage: b.Usage, Domain: b.Type, Cod: cod}, nil
		default:
			// Not actually a binder continuation: reinterpret as an
			// ascription of a bare variable reference.
			return term.Inf{Term: term.Ann{Expr: term.Inf{Term: p.resolveExpr(b.Name)}, Type: b.Type}}, nil
		}
	}

	p.next() // consume (
	first, err := p.parseAscription()
	if err != nil {
		return nil, err
	}
	switch p.curToken.Type {
	case COMMA:
		p.next()
		second, err := p.parseAscription()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
		return term.APair{Fst: first, Snd: second}, nil
	case RPAREN:
		p.next()
		return first, nil
	default:
		return nil, &ParseError{Message: "expected , or ) in parenthesized term", Tok: p.curToken}
	}
}

// looksLikeBinder peeks past `(` to see whether the content opens
// with a usage prefix, or a bare identifier directly followed by `:`
// — the two shapes a binder's head can take. It does not consume any
// tokens: Parser only exposes a one-token lookahead, so this inspects
// the raw lexer state and is only ever called with curToken == LPAREN.
func looksLikeBinder(p *Parser) bool {
	if p.peekToken.Type == INT && (p.peekToken.Literal == "0" || p.peekToken.Literal == "1") {
		return true
	}
	if p.peekToken.Type == OMEGA {
		return true
	}
	if p.peekToken.Type == IDENT && p.peekToken.Literal == "w" {
		return peekIsBinderAfterUsage(p)
	}
	if p.peekToken.Type == IDENT {
		return peekColonAfterIdent(p)
	}
	return false
}

// peekColonAfterIdent and peekIsBinderAfterUsage need to see one token
// further than Parser's built-in lookahead, so they run a disposable
// lexer clone from the current position — cheap, since Lexer holds no
// state beyond a cursor into the (already-read) input string.
func peekColonAfterIdent(p *Parser) bool {
	clone := *p.l
	tok := clone.NextToken()
	return tok.Type == COLON
}

func peekIsBinderAfterUsage(p *Parser) bool {
	clone := *p.l
	_ = clone.NextToken() // the identifier itself
	tok := clone.NextToken()
	return tok.Type == COLON
}

// --- Statements ---

// ParseStmt parses a single top-level shell statement.
func (p *Parser) ParseStmt() (Stmt, error) {
	switch p.curToken.Type {
	case ASSUME:
		return p.parseAssume()
	case LET:
		return p.parseLetStmt()
	case PUTSTRLN:
		p.next()
		tok, err := p.expect(STRING)
		if err != nil {
			return nil, err
		}
		return PutStrLn{Text: tok.Literal}, nil
	case OUT:
		p.next()
		if p.curToken.Type != STRING {
			return Out{Path: ""}, nil
		}
		tok, err := p.expect(STRING)
		if err != nil {
			return nil, err
		}
		return Out{Path: tok.Literal}, nil
	default:
		usage, err := p.parseUsage()
		if err != nil {
			return nil, err
		}
		c, err := p.ParseExpr()
		if err != nil {
			return nil, err
		}
		e, err := toITerm(c)
		if err != nil {
			return nil, fmt.Errorf("top-level expression must be inferable: %w", err)
		}
		return Eval{Usage: usage, Expr: e}, nil
	}
}

func (p *Parser) parseAssume() (Stmt, error) {
	p.next() // consume assume
	var bindings []Binding
	for p.curToken.Type == LPAREN {
		b, err := p.parseBinder()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, b)
	}
	if len(bindings) == 0 {
		return nil, &ParseError{Message: "assume requires at least one binding", Tok: p.curToken}
	}
	return Assume{Bindings: bindings}, nil
}

// ParseProgram parses a whole source file as a sequence of statements,
// for `:load`. Line breaks are whitespace to the lexer, so a statement
// ends only where its grammar ends: an expression statement continues
// as an application into any term that starts the next line.
func (p *Parser) ParseProgram() ([]Stmt, error) {
	var stmts []Stmt
	for p.curToken.Type != EOF {
		s, err := p.ParseStmt()
		if err != nil {
			return nil, err
		}
		stmts = append(stmts, s)
	}
	return stmts, nil
}

func (p *Parser) parseLetStmt() (Stmt, error) {
	p.next() // consume let
	usage, err := p.parseUsage()
	if err != nil {
		return nil, err
	}
	nameTok, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EQUALS); err != nil {
		return nil, err
	}
	c, err := p.ParseExpr()
	if err != nil {
		return nil, err
	}
	e, err := toITerm(c)
	if err != nil {
		return nil, fmt.Errorf("let-bound expression must be inferable: %w", err)
	}
	return Let{Usage: usage, Name: nameTok.Literal, Expr: e}, nil
}

