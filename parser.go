// Completion: 100% - Recursive-descent parser for MyLang, two-token lookahead
//
// Implements the grammar in SPEC_FULL.md §4.3. Low-level token consumption
// goes through accept/acceptOneOf/optionalAccept/optionalAcceptOneOf. There
// is no error recovery: the first error aborts, propagating up through
// WrapAsPatternMismatch so the caller sees a rule-name trace (§4.3 "Error
// policy", §12 item 2).
package main

// Parser is a recursive-descent parser over a buffered token stream.
type Parser struct {
	tokens *BufferedStream[Token]
}

// NewParser builds a parser pulling tokens lazily from lex.
func NewParser(lex *Lexer) *Parser {
	return &Parser{tokens: NewBufferedStream(lex.NextToken)}
}

func (p *Parser) current() Token {
	return p.tokens.Peek(0)
}

func (p *Parser) peek(offset int) Token {
	return p.tokens.Peek(offset)
}

func describeToken(t Token) string {
	if t.Lexeme != "" {
		return t.Type.String() + " '" + t.Lexeme + "'"
	}
	return t.Type.String()
}

// accept consumes the current token if it matches kind, else raises
// UnexpectedToken.
func (p *Parser) accept(kind TokenType) (Token, *ParseRoutineError) {
	cur := p.current()
	if cur.Type != kind {
		return Token{}, NewUnexpectedTokenError(kind.String(), describeToken(cur), tokPos(cur))
	}
	return p.tokens.Next(), nil
}

// acceptOneOf consumes the current token if it matches any of kinds.
func (p *Parser) acceptOneOf(kinds ...TokenType) (Token, *ParseRoutineError) {
	cur := p.current()
	for _, k := range kinds {
		if cur.Type == k {
			return p.tokens.Next(), nil
		}
	}
	desc := ""
	for i, k := range kinds {
		if i > 0 {
			desc += " or "
		}
		desc += k.String()
	}
	return Token{}, NewUnexpectedTokenError(desc, describeToken(cur), tokPos(cur))
}

// optionalAccept consumes the current token if it matches kind, reporting
// whether it did.
func (p *Parser) optionalAccept(kind TokenType) (Token, bool) {
	if p.current().Type == kind {
		return p.tokens.Next(), true
	}
	return Token{}, false
}

// optionalAcceptOneOf consumes the current token if it matches any of kinds.
func (p *Parser) optionalAcceptOneOf(kinds ...TokenType) (Token, bool) {
	cur := p.current()
	for _, k := range kinds {
		if cur.Type == k {
			return p.tokens.Next(), true
		}
	}
	return Token{}, false
}

func wrap(err *ParseRoutineError, rule string) *ParseRoutineError {
	if err == nil {
		return nil
	}
	return WrapAsPatternMismatch(err, rule)
}

// ParseProgram parses `program ::= module-decl module-import* global-decl*`
// and ensures the token stream is fully consumed (§4.3).
func (p *Parser) ParseProgram(fileName string) (*Module, *ParseRoutineError) {
	nameTok, err := p.parseModuleDecl()
	if err != nil {
		return nil, wrap(err, "program")
	}

	var imports []*ModuleImport
	for p.current().Type == TokenImport {
		imp, err := p.parseModuleImport()
		if err != nil {
			return nil, wrap(err, "program")
		}
		imports = append(imports, imp)
	}

	var decls []GlobalDecl
	for p.current().Type == TokenExport || p.current().Type == TokenIdent {
		decl, err := p.parseGlobalDecl()
		if err != nil {
			return nil, wrap(err, "program")
		}
		decls = append(decls, decl)
	}

	if p.current().Type != TokenEOF {
		return nil, NewLeftoverTokensError(describeToken(p.current()), tokPos(p.current()))
	}

	return &Module{NameTok: nameTok, Imports: imports, Decls: decls, FileName: fileName}, nil
}

func (p *Parser) parseModuleDecl() (Token, *ParseRoutineError) {
	if _, err := p.accept(TokenModule); err != nil {
		return Token{}, wrap(err, "module-decl")
	}
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return Token{}, wrap(err, "module-decl")
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return Token{}, wrap(err, "module-decl")
	}
	return nameTok, nil
}

func (p *Parser) parseModuleImport() (*ModuleImport, *ParseRoutineError) {
	if _, err := p.accept(TokenImport); err != nil {
		return nil, wrap(err, "module-import")
	}
	_, shouldExport := p.optionalAccept(TokenExport)
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return nil, wrap(err, "module-import")
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "module-import")
	}
	return &ModuleImport{ShouldExport: shouldExport, NameTok: nameTok}, nil
}

func (p *Parser) parseGlobalDecl() (GlobalDecl, *ParseRoutineError) {
	_, shouldExport := p.optionalAccept(TokenExport)
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return nil, wrap(err, "global-decl")
	}
	if _, err := p.accept(TokenColon); err != nil {
		return nil, wrap(err, "global-decl")
	}

	switch p.current().Type {
	case TokenFunc:
		decl, err := p.parseFuncDecl(shouldExport, nameTok)
		if err != nil {
			return nil, wrap(err, "global-decl")
		}
		return decl, nil
	case TokenStruct:
		decl, err := p.parseStructDecl(shouldExport, nameTok)
		if err != nil {
			return nil, wrap(err, "global-decl")
		}
		return decl, nil
	default:
		return nil, wrap(NewUnexpectedTokenError("'func' or 'struct'", describeToken(p.current()), tokPos(p.current())), "global-decl")
	}
}

func (p *Parser) parseFuncDecl(shouldExport bool, nameTok Token) (*FuncDecl, *ParseRoutineError) {
	if _, err := p.accept(TokenFunc); err != nil {
		return nil, wrap(err, "func-decl")
	}
	if _, err := p.accept(TokenAssign); err != nil {
		return nil, wrap(err, "func-decl")
	}
	if _, err := p.accept(TokenLParen); err != nil {
		return nil, wrap(err, "func-decl")
	}

	var params []*Parameter
	if p.current().Type != TokenRParen {
		param, err := p.parseParam()
		if err != nil {
			return nil, wrap(err, "func-decl")
		}
		params = append(params, param)
		for {
			if _, ok := p.optionalAccept(TokenComma); !ok {
				break
			}
			param, err := p.parseParam()
			if err != nil {
				return nil, wrap(err, "func-decl")
			}
			params = append(params, param)
		}
	}
	if _, err := p.accept(TokenRParen); err != nil {
		return nil, wrap(err, "func-decl")
	}

	var returnType *Type
	if _, ok := p.optionalAccept(TokenArrow); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, wrap(err, "func-decl")
		}
		returnType = t
	}

	body, err := p.parseCompound()
	if err != nil {
		return nil, wrap(err, "func-decl")
	}

	return &FuncDecl{ShouldExport: shouldExport, NameTok: nameTok, Params: params, ReturnType: returnType, Body: body}, nil
}

func (p *Parser) parseParam() (*Parameter, *ParseRoutineError) {
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return nil, wrap(err, "param")
	}
	if _, err := p.accept(TokenColon); err != nil {
		return nil, wrap(err, "param")
	}
	usage := p.parseParamUsage()
	t, err := p.parseType()
	if err != nil {
		return nil, wrap(err, "param")
	}
	return &Parameter{NameTok: nameTok, Usage: usage, Type: t}, nil
}

func (p *Parser) parseParamUsage() ParamUsage {
	if tok, ok := p.optionalAcceptOneOf(TokenIn, TokenOut, TokenInOut); ok {
		switch tok.Type {
		case TokenOut:
			return UsageOut
		case TokenInOut:
			return UsageInOut
		default:
			return UsageIn
		}
	}
	return UsageIn
}

func (p *Parser) parseStructDecl(shouldExport bool, nameTok Token) (*StructDecl, *ParseRoutineError) {
	if _, err := p.accept(TokenStruct); err != nil {
		return nil, wrap(err, "struct-decl")
	}
	if _, err := p.accept(TokenAssign); err != nil {
		return nil, wrap(err, "struct-decl")
	}
	if _, err := p.accept(TokenLBrace); err != nil {
		return nil, wrap(err, "struct-decl")
	}

	var members []*Member
	for p.current().Type != TokenRBrace {
		m, err := p.parseMemberDecl()
		if err != nil {
			return nil, wrap(err, "struct-decl")
		}
		members = append(members, m)
	}
	if _, err := p.accept(TokenRBrace); err != nil {
		return nil, wrap(err, "struct-decl")
	}

	return &StructDecl{ShouldExport: shouldExport, NameTok: nameTok, Members: members}, nil
}

func (p *Parser) parseMemberDecl() (*Member, *ParseRoutineError) {
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return nil, wrap(err, "member-decl")
	}
	if _, err := p.accept(TokenColon); err != nil {
		return nil, wrap(err, "member-decl")
	}
	t, err := p.parseType()
	if err != nil {
		return nil, wrap(err, "member-decl")
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "member-decl")
	}
	return &Member{NameTok: nameTok, Type: t}, nil
}

func (p *Parser) parseType() (*Type, *ParseRoutineError) {
	base, err := p.parseBaseType()
	if err != nil {
		return nil, wrap(err, "type")
	}

	var dims []int
	for {
		if _, ok := p.optionalAccept(TokenLBracket); !ok {
			break
		}
		sizeTok, err := p.accept(TokenIntLiteral)
		if err != nil {
			return nil, wrap(err, "type")
		}
		if _, err := p.accept(TokenRBracket); err != nil {
			return nil, wrap(err, "type")
		}
		dims = append(dims, parseIntLexeme(sizeTok.Lexeme))
	}

	return base.WithArrayDims(dims), nil
}

func (p *Parser) parseBaseType() (*Type, *ParseRoutineError) {
	switch p.current().Type {
	case TokenI32:
		p.tokens.Next()
		return NewPrimitiveType(PrimitiveI32), nil
	case TokenF32:
		p.tokens.Next()
		return NewPrimitiveType(PrimitiveF32), nil
	case TokenBoolType:
		p.tokens.Next()
		return NewPrimitiveType(PrimitiveBool), nil
	case TokenStr:
		p.tokens.Next()
		return NewPrimitiveType(PrimitiveStr), nil
	case TokenIdent:
		tok := p.tokens.Next()
		return NewStructType(tok.Lexeme), nil
	case TokenLBracket:
		return p.parseFunctionType()
	default:
		return nil, wrap(NewUnexpectedTokenError("a type", describeToken(p.current()), tokPos(p.current())), "base-type")
	}
}

// parseFunctionType parses `"[" "(" (param-type ("," param-type)*)? ")" ("->" type)? "]"`.
func (p *Parser) parseFunctionType() (*Type, *ParseRoutineError) {
	if _, err := p.accept(TokenLBracket); err != nil {
		return nil, wrap(err, "function-type")
	}
	if _, err := p.accept(TokenLParen); err != nil {
		return nil, wrap(err, "function-type")
	}

	var params []Param
	if p.current().Type != TokenRParen {
		param, err := p.parseParamType()
		if err != nil {
			return nil, wrap(err, "function-type")
		}
		params = append(params, *param)
		for {
			if _, ok := p.optionalAccept(TokenComma); !ok {
				break
			}
			param, err := p.parseParamType()
			if err != nil {
				return nil, wrap(err, "function-type")
			}
			params = append(params, *param)
		}
	}
	if _, err := p.accept(TokenRParen); err != nil {
		return nil, wrap(err, "function-type")
	}

	var returns *Type
	if _, ok := p.optionalAccept(TokenArrow); ok {
		t, err := p.parseType()
		if err != nil {
			return nil, wrap(err, "function-type")
		}
		returns = t
	}

	if _, err := p.accept(TokenRBracket); err != nil {
		return nil, wrap(err, "function-type")
	}

	return NewFunctionType(&FunctionType{Params: params, Returns: returns}), nil
}

func (p *Parser) parseParamType() (*Param, *ParseRoutineError) {
	usage := p.parseParamUsage()
	t, err := p.parseType()
	if err != nil {
		return nil, wrap(err, "param-type")
	}
	return &Param{Usage: usage, Type: t}, nil
}

// --- Statements ---

func (p *Parser) parseStmt() (Statement, *ParseRoutineError) {
	switch p.current().Type {
	case TokenLBrace:
		return p.parseCompound()
	case TokenIf:
		return p.parseIf()
	case TokenFor:
		return p.parseFor()
	case TokenWhile:
		return p.parseWhile()
	case TokenReturn, TokenBreak, TokenContinue:
		return p.parseJump()
	default:
		if p.current().Type == TokenIdent && p.peek(1).Type == TokenColon {
			return p.parseVarDeclStmt()
		}
		return p.parseExprStmt()
	}
}

func (p *Parser) parseCompound() (*CompoundStmt, *ParseRoutineError) {
	start, err := p.accept(TokenLBrace)
	if err != nil {
		return nil, wrap(err, "compound")
	}
	var stmts []Statement
	for p.current().Type != TokenRBrace && p.current().Type != TokenEOF {
		s, err := p.parseStmt()
		if err != nil {
			return nil, wrap(err, "compound")
		}
		stmts = append(stmts, s)
	}
	if _, err := p.accept(TokenRBrace); err != nil {
		return nil, wrap(err, "compound")
	}
	return &CompoundStmt{Stmts: stmts, StartPos: tokPos(start)}, nil
}

func (p *Parser) parseIf() (*IfStmt, *ParseRoutineError) {
	kw, err := p.accept(TokenIf)
	if err != nil {
		return nil, wrap(err, "if-stmt")
	}
	if _, err := p.accept(TokenLParen); err != nil {
		return nil, wrap(err, "if-stmt")
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, wrap(err, "if-stmt")
	}
	if _, err := p.accept(TokenRParen); err != nil {
		return nil, wrap(err, "if-stmt")
	}
	then, err := p.parseCompound()
	if err != nil {
		return nil, wrap(err, "if-stmt")
	}

	var elseBranch Statement
	if _, ok := p.optionalAccept(TokenElse); ok {
		if p.current().Type == TokenIf {
			elseIf, err := p.parseIf()
			if err != nil {
				return nil, wrap(err, "if-stmt")
			}
			elseBranch = elseIf
		} else {
			elseCompound, err := p.parseCompound()
			if err != nil {
				return nil, wrap(err, "if-stmt")
			}
			elseBranch = elseCompound
		}
	}

	return &IfStmt{KeywordPos: tokPos(kw), Cond: cond, Then: then, Else: elseBranch}, nil
}

func (p *Parser) parseFor() (*ForStmt, *ParseRoutineError) {
	kw, err := p.accept(TokenFor)
	if err != nil {
		return nil, wrap(err, "for-stmt")
	}
	if _, err := p.accept(TokenLParen); err != nil {
		return nil, wrap(err, "for-stmt")
	}

	var init Statement
	if p.current().Type == TokenSemicolon {
		p.tokens.Next()
	} else if p.current().Type == TokenIdent && p.peek(1).Type == TokenColon {
		init, err = p.parseVarDeclStmt()
		if err != nil {
			return nil, wrap(err, "for-stmt")
		}
	} else {
		init, err = p.parseExprStmt()
		if err != nil {
			return nil, wrap(err, "for-stmt")
		}
	}

	var cond Expr
	if p.current().Type != TokenSemicolon {
		cond, err = p.parseExpr()
		if err != nil {
			return nil, wrap(err, "for-stmt")
		}
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "for-stmt")
	}

	var inc Expr
	if p.current().Type != TokenRParen {
		inc, err = p.parseExpr()
		if err != nil {
			return nil, wrap(err, "for-stmt")
		}
	}
	if _, err := p.accept(TokenRParen); err != nil {
		return nil, wrap(err, "for-stmt")
	}

	body, err := p.parseCompound()
	if err != nil {
		return nil, wrap(err, "for-stmt")
	}

	return &ForStmt{KeywordPos: tokPos(kw), Init: init, Cond: cond, Inc: inc, Body: body}, nil
}

func (p *Parser) parseWhile() (*WhileStmt, *ParseRoutineError) {
	kw, err := p.accept(TokenWhile)
	if err != nil {
		return nil, wrap(err, "while-stmt")
	}
	if _, err := p.accept(TokenLParen); err != nil {
		return nil, wrap(err, "while-stmt")
	}
	cond, err := p.parseExpr()
	if err != nil {
		return nil, wrap(err, "while-stmt")
	}
	if _, err := p.accept(TokenRParen); err != nil {
		return nil, wrap(err, "while-stmt")
	}
	body, err := p.parseCompound()
	if err != nil {
		return nil, wrap(err, "while-stmt")
	}
	return &WhileStmt{KeywordPos: tokPos(kw), Cond: cond, Body: body}, nil
}

// parseJump parses `("return" expr? | "break" | "continue") ";"`. The
// trailing `;` is enforced unconditionally, per the Open Question
// resolution recorded in DESIGN.md (the grammar requires it).
func (p *Parser) parseJump() (*JumpStmt, *ParseRoutineError) {
	kw, err := p.acceptOneOf(TokenReturn, TokenBreak, TokenContinue)
	if err != nil {
		return nil, wrap(err, "jump-stmt")
	}

	var kind JumpKind
	var value Expr
	switch kw.Type {
	case TokenReturn:
		kind = JumpReturn
		if p.current().Type != TokenSemicolon {
			value, err = p.parseExpr()
			if err != nil {
				return nil, wrap(err, "jump-stmt")
			}
		}
	case TokenBreak:
		kind = JumpBreak
	default:
		kind = JumpContinue
	}

	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "jump-stmt")
	}

	return &JumpStmt{Kind: kind, KeywordPos: tokPos(kw), Value: value}, nil
}

func (p *Parser) parseVarDeclStmt() (*VarDeclStmt, *ParseRoutineError) {
	nameTok, err := p.accept(TokenIdent)
	if err != nil {
		return nil, wrap(err, "var-decl")
	}
	if _, err := p.accept(TokenColon); err != nil {
		return nil, wrap(err, "var-decl")
	}
	t, err := p.parseType()
	if err != nil {
		return nil, wrap(err, "var-decl")
	}
	if _, err := p.accept(TokenAssign); err != nil {
		return nil, wrap(err, "var-decl")
	}
	init, err := p.parseVarInit()
	if err != nil {
		return nil, wrap(err, "var-decl")
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "var-decl")
	}
	return &VarDeclStmt{NameTok: nameTok, Type: t, Init: init}, nil
}

func (p *Parser) parseVarInit() (VarInit, *ParseRoutineError) {
	if p.current().Type == TokenLBrace {
		brace := p.current()
		p.tokens.Next()
		var elems []VarInit
		elem, err := p.parseVarInit()
		if err != nil {
			return nil, wrap(err, "var-init")
		}
		elems = append(elems, elem)
		for {
			if _, ok := p.optionalAccept(TokenComma); !ok {
				break
			}
			elem, err := p.parseVarInit()
			if err != nil {
				return nil, wrap(err, "var-init")
			}
			elems = append(elems, elem)
		}
		if _, err := p.accept(TokenRBrace); err != nil {
			return nil, wrap(err, "var-init")
		}
		return &VarInitList{BracePos: tokPos(brace), Elements: elems}, nil
	}

	e, err := p.parseExpr()
	if err != nil {
		return nil, wrap(err, "var-init")
	}
	return &VarInitExpr{Expr: e}, nil
}

func (p *Parser) parseExprStmt() (*ExprStmt, *ParseRoutineError) {
	e, err := p.parseExpr()
	if err != nil {
		return nil, wrap(err, "expr-stmt")
	}
	if _, err := p.accept(TokenSemicolon); err != nil {
		return nil, wrap(err, "expr-stmt")
	}
	return &ExprStmt{Expr: e}, nil
}

// --- Expressions: precedence chain (§4.3) ---

func isAssignOp(t TokenType) bool {
	switch t {
	case TokenAssign, TokenPlusAssign, TokenMinusAssign, TokenStarAssign, TokenSlashAssign:
		return true
	default:
		return false
	}
}

// isDesignator reports whether expr is an assignable designator: an
// identifier, a member access, or an array access (§4.6 "Assignment
// requires the LHS to be an assignable designator").
func isDesignator(expr Expr) bool {
	switch expr.(type) {
	case *IdentifierExpr, *MemberAccessExpr, *ArrayAccessExpr:
		return true
	default:
		return false
	}
}

// parseExpr disambiguates `designator assign-op expr` (right-associative)
// from the `or-expr` chain. The designator is an ordinary postfix chain
// (identifier/member-access/array-access), so it parses unambiguously
// through the normal precedence chain down to parsePostfixExpr; once that
// returns, an assign-op immediately following it is what signals an
// assignment rather than a plain expression (§4.3, §4.6).
func (p *Parser) parseExpr() (Expr, *ParseRoutineError) {
	left, err := p.parseOrExpr()
	if err != nil {
		return nil, wrap(err, "expr")
	}
	if isAssignOp(p.current().Type) {
		if !isDesignator(left) {
			return nil, wrap(NewInvalidAssignTargetError(left.String(), left.Pos()), "expr")
		}
		opTok := p.tokens.Next()
		rhs, err := p.parseExpr()
		if err != nil {
			return nil, wrap(err, "expr")
		}
		return &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: rhs}, nil
	}
	return left, nil
}

func (p *Parser) parseOrExpr() (Expr, *ParseRoutineError) {
	left, err := p.parseAndExpr()
	if err != nil {
		return nil, wrap(err, "or-expr")
	}
	for p.current().Type == TokenOrOr {
		opTok := p.tokens.Next()
		right, err := p.parseAndExpr()
		if err != nil {
			return nil, wrap(err, "or-expr")
		}
		left = &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAndExpr() (Expr, *ParseRoutineError) {
	left, err := p.parseCmpExpr()
	if err != nil {
		return nil, wrap(err, "and-expr")
	}
	for p.current().Type == TokenAndAnd {
		opTok := p.tokens.Next()
		right, err := p.parseCmpExpr()
		if err != nil {
			return nil, wrap(err, "and-expr")
		}
		left = &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: right}
	}
	return left, nil
}

func isCmpOp(t TokenType) bool {
	switch t {
	case TokenEq, TokenNotEq, TokenLt, TokenLtEq, TokenGt, TokenGtEq:
		return true
	default:
		return false
	}
}

func (p *Parser) parseCmpExpr() (Expr, *ParseRoutineError) {
	left, err := p.parseAddExpr()
	if err != nil {
		return nil, wrap(err, "cmp-expr")
	}
	for isCmpOp(p.current().Type) {
		opTok := p.tokens.Next()
		right, err := p.parseAddExpr()
		if err != nil {
			return nil, wrap(err, "cmp-expr")
		}
		left = &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseAddExpr() (Expr, *ParseRoutineError) {
	left, err := p.parseMulExpr()
	if err != nil {
		return nil, wrap(err, "add-expr")
	}
	for p.current().Type == TokenPlus || p.current().Type == TokenMinus {
		opTok := p.tokens.Next()
		right, err := p.parseMulExpr()
		if err != nil {
			return nil, wrap(err, "add-expr")
		}
		left = &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: right}
	}
	return left, nil
}

func (p *Parser) parseMulExpr() (Expr, *ParseRoutineError) {
	left, err := p.parsePrefixExpr()
	if err != nil {
		return nil, wrap(err, "mul-expr")
	}
	for p.current().Type == TokenStar || p.current().Type == TokenSlash {
		opTok := p.tokens.Next()
		right, err := p.parsePrefixExpr()
		if err != nil {
			return nil, wrap(err, "mul-expr")
		}
		left = &BinaryExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Left: left, Right: right}
	}
	return left, nil
}

func isPrefixOp(t TokenType) bool {
	switch t {
	case TokenBang, TokenPlus, TokenMinus, TokenPlusPlus, TokenMinusMinus:
		return true
	default:
		return false
	}
}

func (p *Parser) parsePrefixExpr() (Expr, *ParseRoutineError) {
	if isPrefixOp(p.current().Type) {
		opTok := p.tokens.Next()
		operand, err := p.parsePrefixExpr()
		if err != nil {
			return nil, wrap(err, "prefix-expr")
		}
		return &PrefixExpr{Op: opTok.Lexeme, OpPos: tokPos(opTok), Operand: operand}, nil
	}
	return p.parsePostfixExpr()
}

func (p *Parser) parsePostfixExpr() (Expr, *ParseRoutineError) {
	e, err := p.parsePrimary()
	if err != nil {
		return nil, wrap(err, "postfix-expr")
	}

	for {
		switch p.current().Type {
		case TokenPlusPlus, TokenMinusMinus:
			opTok := p.tokens.Next()
			e = &PostfixExpr{Op: opTok.Lexeme, Operand: e}
		case TokenDot:
			p.tokens.Next()
			memberTok, err := p.accept(TokenIdent)
			if err != nil {
				return nil, wrap(err, "postfix-expr")
			}
			e = &MemberAccessExpr{Lhs: e, MemberTok: memberTok}
		case TokenLBracket:
			p.tokens.Next()
			idx, err := p.parseExpr()
			if err != nil {
				return nil, wrap(err, "postfix-expr")
			}
			if _, err := p.accept(TokenRBracket); err != nil {
				return nil, wrap(err, "postfix-expr")
			}
			e = &ArrayAccessExpr{Lhs: e, Index: idx}
		case TokenLParen:
			p.tokens.Next()
			var args []Expr
			if p.current().Type != TokenRParen {
				arg, err := p.parseExpr()
				if err != nil {
					return nil, wrap(err, "postfix-expr")
				}
				args = append(args, arg)
				for {
					if _, ok := p.optionalAccept(TokenComma); !ok {
						break
					}
					arg, err := p.parseExpr()
					if err != nil {
						return nil, wrap(err, "postfix-expr")
					}
					args = append(args, arg)
				}
			}
			if _, err := p.accept(TokenRParen); err != nil {
				return nil, wrap(err, "postfix-expr")
			}
			e = &FuncCallExpr{Callee: e, Args: args}
		default:
			return e, nil
		}
	}
}

func (p *Parser) parsePrimary() (Expr, *ParseRoutineError) {
	switch p.current().Type {
	case TokenIntLiteral:
		tok := p.tokens.Next()
		return &LiteralExpr{Kind: LiteralInt, Tok: tok}, nil
	case TokenFloatLiteral:
		tok := p.tokens.Next()
		return &LiteralExpr{Kind: LiteralFloat, Tok: tok}, nil
	case TokenStringLiteral:
		tok := p.tokens.Next()
		return &LiteralExpr{Kind: LiteralString, Tok: tok}, nil
	case TokenBoolLiteral:
		tok := p.tokens.Next()
		return &LiteralExpr{Kind: LiteralBool, Tok: tok}, nil
	case TokenIdent:
		tok := p.tokens.Next()
		return &IdentifierExpr{NameTok: tok}, nil
	case TokenLParen:
		p.tokens.Next()
		e, err := p.parseExpr()
		if err != nil {
			return nil, wrap(err, "primary")
		}
		if _, err := p.accept(TokenRParen); err != nil {
			return nil, wrap(err, "primary")
		}
		return e, nil
	default:
		return nil, wrap(NewUnexpectedTokenError("an expression", describeToken(p.current()), tokPos(p.current())), "primary")
	}
}

// parseIntLexeme parses a decimal integer-literal lexeme. The lexer
// guarantees the lexeme is a maximal digit run, so no error path is needed.
func parseIntLexeme(lexeme string) int {
	n := 0
	for _, c := range lexeme {
		n = n*10 + int(c-'0')
	}
	return n
}
