package js_ast

import (
	"testing"

	"github.com/lihuan-bot/swc/internal/test"
)

func TestNumberToMinifiedName(t *testing.T) {
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(0), "a")
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(1), "b")
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(25), "z")
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(53), "$")

	// After the head alphabet is exhausted a tail character is appended
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(54), "aa")
	test.AssertEqual(t, DefaultNameMinifier.NumberToMinifiedName(55), "ba")
}

func TestCharFreqCompile(t *testing.T) {
	var freq CharFreq
	freq.Tally("zz", 3)
	freq.Tally("q q", 2)
	minifier := freq.Compile()

	// The most frequent characters get the shortest names
	test.AssertEqual(t, minifier.NumberToMinifiedName(0), "z")
	test.AssertEqual(t, minifier.NumberToMinifiedName(1), "q")
	test.AssertEqual(t, minifier.NumberToMinifiedName(2), "a")
}

func TestCharFreqTallyWeighsByCount(t *testing.T) {
	var freq CharFreq
	freq.Tally("ab", 1)
	freq.Tally("b", 2)
	minifier := freq.Compile()

	test.AssertEqual(t, minifier.NumberToMinifiedName(0), "b")
	test.AssertEqual(t, minifier.NumberToMinifiedName(1), "a")
}

func TestIsConstructor(t *testing.T) {
	value := Expr{Data: &EFunction{}}
	ctor := Property{
		Key:      Expr{Data: &EString{Value: "constructor"}},
		Value:    &value,
		IsMethod: true,
	}
	test.AssertEqual(t, IsConstructor(ctor), true)

	static := ctor
	static.IsStatic = true
	test.AssertEqual(t, IsConstructor(static), false)

	computed := ctor
	computed.IsComputed = true
	test.AssertEqual(t, IsConstructor(computed), false)

	method := ctor
	method.Key = Expr{Data: &EString{Value: "m"}}
	test.AssertEqual(t, IsConstructor(method), false)
}

func TestIsSuperCall(t *testing.T) {
	superCall := Stmt{Data: &SExpr{Value: Expr{Data: &ECall{
		Target: Expr{Data: &ESuper{}},
	}}}}
	test.AssertEqual(t, IsSuperCall(superCall), true)

	plainCall := Stmt{Data: &SExpr{Value: Expr{Data: &ECall{
		Target: Expr{Data: &EIdentifier{Name: "f"}},
	}}}}
	test.AssertEqual(t, IsSuperCall(plainCall), false)
}

func TestJoinAllWithCommaNestsLeft(t *testing.T) {
	a := Expr{Data: &EIdentifier{Name: "a"}}
	b := Expr{Data: &EIdentifier{Name: "b"}}
	c := Expr{Data: &EIdentifier{Name: "c"}}

	joined := JoinAllWithComma([]Expr{a, b, c})
	outer := joined.Data.(*EBinary)
	test.AssertEqual(t, outer.Op, BinOpComma)
	test.AssertEqual(t, outer.Right.Data.(*EIdentifier).Name, "c")

	inner := outer.Left.Data.(*EBinary)
	test.AssertEqual(t, inner.Left.Data.(*EIdentifier).Name, "a")
	test.AssertEqual(t, inner.Right.Data.(*EIdentifier).Name, "b")
}

func TestCloneExprIsDeep(t *testing.T) {
	arg := Expr{Data: &EIdentifier{Name: "x"}}
	original := Expr{Data: &ECall{
		Target: Expr{Data: &EIdentifier{Name: "f"}},
		Args:   []Expr{arg},
	}}

	clone := CloneExpr(original)
	clone.Data.(*ECall).Args[0].Data.(*EIdentifier).Name = "y"

	test.AssertEqual(t, original.Data.(*ECall).Args[0].Data.(*EIdentifier).Name, "x")
}
