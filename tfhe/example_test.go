package tfhe_test

import (
	"fmt"

	"github.com/SNUCP/sparse-tfhe/tfhe"
)

func Example() {
	params := tfhe.ParamsSparseBoolean.Compile()

	enc := tfhe.NewEncryptor(params)
	eval := tfhe.NewEvaluator(params, enc.GenEvaluationKeyParallel())

	ct0 := enc.EncryptBool(true)
	ct1 := enc.EncryptBool(false)

	fmt.Println(enc.DecryptBool(eval.AND(ct0, ct1)), enc.DecryptBool(eval.XOR(ct0, ct1)))
	// Output:
	// false true
}

func ExampleEvaluator_BootstrapFunc() {
	params := tfhe.ParamsSparseBooleanMux.Compile()

	enc := tfhe.NewEncryptor(params)
	eval := tfhe.NewEvaluator(params, enc.GenEvaluationKeyParallel())

	ct := enc.EncryptLWE(3)
	ctOut := eval.BootstrapFunc(ct, func(x int) int { return 2 * x })

	fmt.Println(enc.DecryptLWE(ctOut))
	// Output:
	// 6
}

func ExampleEvaluator_WithDebug() {
	params := tfhe.ParamsSparseBoolean.Compile()

	enc := tfhe.NewEncryptor(params)
	eval := tfhe.NewEvaluator(params, enc.GenEvaluationKeyParallel())

	ctx := tfhe.NewDebugContext(enc.SecretKey, func(r tfhe.DebugReport) {
		fmt.Println(r.Strategy, r.MaxError < 1.0/16)
	})
	eval.WithDebug(ctx).Bootstrap(enc.EncryptBool(true), 1<<29)
	// Output:
	// GroupedCombine true
}
