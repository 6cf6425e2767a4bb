package tfhe

import (
	"math"

	"github.com/montanaflynn/stats"

	"github.com/SNUCP/sparse-tfhe/math/num"
	"github.com/SNUCP/sparse-tfhe/math/poly"
	"github.com/SNUCP/sparse-tfhe/math/vec"
)

// DebugContext holds the secret keys used to inspect blind rotations.
// It is attached to an Evaluator with [*Evaluator.WithDebug],
// and must never be used with untrusted parties, since it holds the secret key.
type DebugContext[T TorusInt] struct {
	// LWEKey is the key of bootstrapped ciphertexts.
	LWEKey LWESecretKey[T]
	// GLWEKey is the key of the accumulator.
	GLWEKey GLWESecretKey[T]

	// Report is called after every blind rotation.
	Report func(DebugReport)
}

// NewDebugContext returns a DebugContext holding the keys of sk.
func NewDebugContext[T TorusInt](sk SecretKey[T], report func(DebugReport)) *DebugContext[T] {
	return &DebugContext[T]{
		LWEKey:  sk.LWEKey,
		GLWEKey: sk.GLWEKey,
		Report:  report,
	}
}

// DebugReport is the result of decrypting the accumulator after a blind rotation.
type DebugReport struct {
	// Strategy is the blind rotation algorithm used.
	Strategy BlindRotateStrategy
	// Rotation is sum bara_i * s_i mod 2N, the exponent the accumulator should be multiplied by.
	Rotation int
	// MaxError is the largest coefficient error of the accumulator, as a torus fraction.
	MaxError float64
	// StdDev is the standard deviation of the coefficient errors, as a torus fraction.
	StdDev float64
}

// report decrypts ctAcc and compares it with X^Rotation * testPoly.
func (ctx *DebugContext[T]) report(e *Evaluator[T], testPoly poly.Poly[T], bara []int, ctAcc GLWECiphertext[T]) {
	if ctx.Report == nil {
		return
	}

	N2 := 2 * e.Parameters.polyDegree
	rotation := 0
	for i, s := range ctx.LWEKey.Value {
		rotation = (rotation + bara[i]*int(s)) % N2
	}

	expected := e.PolyEvaluator.MonomialMulPoly(testPoly, rotation)

	phase := ctAcc.Value[0].Copy()
	tmp := poly.NewPoly[T](e.Parameters.polyDegree)
	for i := 1; i < e.Parameters.glweRank+1; i++ {
		e.PolyEvaluator.MulPolyAssign(ctAcc.Value[i], ctx.GLWEKey.Value[i-1], tmp)
		e.PolyEvaluator.SubPolyAssign(phase, tmp, phase)
	}
	vec.SubAssign(phase.Coeffs, expected.Coeffs, phase.Coeffs)

	scale := math.Exp2(-float64(num.SizeT[T]()))
	errs := make(stats.Float64Data, len(phase.Coeffs))
	for i, c := range phase.Coeffs {
		errs[i] = float64(num.ToSigned(c)) * scale
	}

	maxErr, _ := stats.Float64Data(absAll(errs)).Max()
	stdDev, _ := errs.StandardDeviation()

	ctx.Report(DebugReport{
		Strategy: e.strategy,
		Rotation: rotation,
		MaxError: maxErr,
		StdDev:   stdDev,
	})
}

// absAll returns the absolute values of xs.
func absAll(xs []float64) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = math.Abs(x)
	}
	return out
}
