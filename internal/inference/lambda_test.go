package inference

import "testing"

func TestCollectLambdaParams(t *testing.T) {
	vars := Bindings{"nums": "List[Int]"}
	CollectLambdaParams("nums.map(p => p", vars)

	if vars["p"] != "Int" {
		t.Errorf("p = %q, want Int", vars["p"])
	}
}

func TestCollectLambdaParamsMultiple(t *testing.T) {
	vars := Bindings{
		"words": "List[String]",
		"opts":  "Option[Float]",
	}
	CollectLambdaParams("words.filter(w => opts.map(o => o", vars)

	if vars["w"] != "String" {
		t.Errorf("w = %q, want String", vars["w"])
	}
	if vars["o"] != "Float" {
		t.Errorf("o = %q, want Float", vars["o"])
	}
}

func TestCollectLambdaParamsExistingBindingWins(t *testing.T) {
	vars := Bindings{
		"nums": "List[Int]",
		"p":    "String",
	}
	CollectLambdaParams("nums.map(p => p", vars)

	if vars["p"] != "String" {
		t.Errorf("p = %q, existing binding must win", vars["p"])
	}
}

func TestCollectLambdaParamsUnresolvableReceiver(t *testing.T) {
	vars := Bindings{}
	CollectLambdaParams("ghost.map(p => p", vars)

	if _, ok := vars["p"]; ok {
		t.Error("parameter of unresolvable receiver must stay unbound")
	}
}

func TestInferLambdaParamType(t *testing.T) {
	vars := Bindings{"yy": "List[List[Int]]"}

	got, ok := InferLambdaParamType("yy.map(m => m", "m", vars)
	if !ok || got != "List[Int]" {
		t.Errorf("m = %q, %v; want List[Int]", got, ok)
	}
}

func TestInferLambdaParamTypeResult(t *testing.T) {
	vars := Bindings{"res": "Result[Int, String]"}

	got, ok := InferLambdaParamType("res.mapErr(e => e", "e", vars)
	if !ok || got != "String" {
		t.Errorf("e = %q, %v; want String", got, ok)
	}
}

func TestInferLambdaParamTypeMissing(t *testing.T) {
	if _, ok := InferLambdaParamType("f(x)", "x", Bindings{}); ok {
		t.Error("no lambda introduction, must not resolve")
	}
}

func TestInferLambdaParamTypeDepthBound(t *testing.T) {
	// A parameter whose receiver chain never resolves terminates instead
	// of backtracking forever.
	prefix := "a.map(b => b.map(c => c.map(d => d.map(e => e.map(f => f.map(g => g"
	if _, ok := InferLambdaParamType(prefix, "g", Bindings{}); ok {
		t.Error("unresolvable nested lambda must not resolve")
	}
}
