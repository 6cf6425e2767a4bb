package tfhe

import (
	"fmt"
	"math"

	"github.com/SNUCP/sparse-tfhe/math/num"
)

// TorusInt represents the integer types used to encode torus elements.
type TorusInt interface {
	~uint32 | ~uint64
}

// BlindRotateStrategy selects the blind rotation algorithm.
type BlindRotateStrategy int

const (
	// StrategyGroupedCombine combines the selectors of each block into one
	// selector rotated by the exponents of the block, and performs one external product per block.
	// It requires a block sparse secret with exactly one nonzero entry per block.
	StrategyGroupedCombine BlindRotateStrategy = iota
	// StrategyHoistedMux decomposes the accumulator once per block and
	// evaluates the CMux of every position of the block on the shared decomposition.
	StrategyHoistedMux
	// StrategyDense evaluates one CMux per LWE coordinate.
	// It works for any binary secret and serves as the reference.
	StrategyDense
)

// String implements fmt.Stringer.
func (s BlindRotateStrategy) String() string {
	switch s {
	case StrategyGroupedCombine:
		return "GroupedCombine"
	case StrategyHoistedMux:
		return "HoistedMux"
	case StrategyDense:
		return "Dense"
	}
	return fmt.Sprintf("BlindRotateStrategy(%d)", int(s))
}

// KeySwitchKeyKind selects which key switching key is generated for the evaluation key.
type KeySwitchKeyKind int

const (
	// KeySwitchDense generates the full digit table key switching key.
	KeySwitchDense KeySwitchKeyKind = iota
	// KeySwitchSparse generates the unit digit key switching key.
	KeySwitchSparse
)

// String implements fmt.Stringer.
func (k KeySwitchKeyKind) String() string {
	switch k {
	case KeySwitchDense:
		return "Dense"
	case KeySwitchSparse:
		return "Sparse"
	}
	return fmt.Sprintf("KeySwitchKeyKind(%d)", int(k))
}

// GadgetParametersLiteral is a structure for Gadget Decomposition,
// which is used in GGSW ciphertexts and key switching keys.
type GadgetParametersLiteral[T TorusInt] struct {
	// Base is a base of gadget. It must be a power of two.
	Base T
	// Level is a length of gadget.
	Level int
}

// Compile transforms GadgetParametersLiteral to read-only GadgetParameters.
// If there is any invalid parameter in the literal, it panics.
func (p GadgetParametersLiteral[T]) Compile() GadgetParameters[T] {
	switch {
	case !num.IsPowerOfTwo(p.Base) || p.Base < 2:
		panic("Base not power of two or smaller than two")
	case p.Level <= 0:
		panic("Level smaller than one")
	case num.Log2(p.Base)*p.Level > num.SizeT[T]():
		panic("Base * Level larger than the torus width")
	}

	sizeT := num.SizeT[T]()
	logBase := num.Log2(p.Base)

	var signedOffset, unsignedOffset T
	for i := 1; i <= p.Level; i++ {
		signedOffset += (p.Base / 2) << (sizeT - i*logBase)
	}
	if logBase*p.Level < sizeT {
		unsignedOffset = T(1) << (sizeT - logBase*p.Level - 1)
		signedOffset += unsignedOffset
	}

	return GadgetParameters[T]{
		base:           p.Base,
		logBase:        logBase,
		level:          p.Level,
		sizeT:          sizeT,
		signedOffset:   signedOffset,
		unsignedOffset: unsignedOffset,
	}
}

// GadgetParameters is a read-only, compiled version of GadgetParametersLiteral.
type GadgetParameters[T TorusInt] struct {
	base    T
	logBase int
	level   int
	sizeT   int

	// signedOffset is added before extracting balanced digits.
	signedOffset T
	// unsignedOffset is added before extracting digits in [0, Base).
	unsignedOffset T
}

// Base is a base of gadget.
func (p GadgetParameters[T]) Base() T {
	return p.base
}

// LogBase equals log2(Base).
func (p GadgetParameters[T]) LogBase() int {
	return p.logBase
}

// Level is a length of gadget.
func (p GadgetParameters[T]) Level() int {
	return p.level
}

// ScaledBase returns Q / Base^(i+1), the i-th gadget element.
func (p GadgetParameters[T]) ScaledBase(i int) T {
	return T(1) << p.ScaledBaseLog(i)
}

// ScaledBaseLog returns log2(Q / Base^(i+1)).
func (p GadgetParameters[T]) ScaledBaseLog(i int) int {
	return p.sizeT - (i+1)*p.logBase
}

// Literal returns a GadgetParametersLiteral from this GadgetParameters.
func (p GadgetParameters[T]) Literal() GadgetParametersLiteral[T] {
	return GadgetParametersLiteral[T]{
		Base:  p.base,
		Level: p.level,
	}
}

// ParametersLiteral is a structure for TFHE parameters.
//
// # Warning
//
// Unless you are a cryptographic expert, DO NOT set these by yourself;
// always use the default parameters provided.
type ParametersLiteral[T TorusInt] struct {
	// LWEDimension is the dimension n of the LWE ciphertexts that are bootstrapped.
	LWEDimension int
	// GLWERank is the rank k of the GLWE accumulator.
	GLWERank int
	// PolyDegree is the degree N of polynomials in GLWE entities. It must be a power of two.
	PolyDegree int

	// HammingWeight is the number of nonzero entries hw of the LWE secret key.
	// The key is split into hw contiguous blocks of LWEDimension / HammingWeight entries
	// with exactly one nonzero entry each.
	// If zero or equal to LWEDimension, the LWE key is a dense uniform binary key.
	HammingWeight int

	// LWEStdDev is the standard deviation of the LWE and key switching noise, as a torus fraction.
	LWEStdDev float64
	// GLWEStdDev is the standard deviation of the GLWE and bootstrapping key noise, as a torus fraction.
	GLWEStdDev float64

	// MessageModulus is the number of points messages are encoded to.
	// Message m is encoded as m / MessageModulus.
	MessageModulus T

	// BlindRotateParameters is the gadget parameters of the bootstrapping key.
	BlindRotateParameters GadgetParametersLiteral[T]
	// KeySwitchParameters is the gadget parameters of the key switching key.
	KeySwitchParameters GadgetParametersLiteral[T]

	// BlindRotateStrategy is the default blind rotation algorithm of evaluators.
	BlindRotateStrategy BlindRotateStrategy
	// KeySwitchKeyKind is the key switching key generated with the evaluation key.
	KeySwitchKeyKind KeySwitchKeyKind
}

// WithHammingWeight sets the HammingWeight and returns the new ParametersLiteral.
func (p ParametersLiteral[T]) WithHammingWeight(hammingWeight int) ParametersLiteral[T] {
	p.HammingWeight = hammingWeight
	return p
}

// WithBlindRotateStrategy sets the BlindRotateStrategy and returns the new ParametersLiteral.
func (p ParametersLiteral[T]) WithBlindRotateStrategy(strategy BlindRotateStrategy) ParametersLiteral[T] {
	p.BlindRotateStrategy = strategy
	return p
}

// WithKeySwitchKeyKind sets the KeySwitchKeyKind and returns the new ParametersLiteral.
func (p ParametersLiteral[T]) WithKeySwitchKeyKind(kind KeySwitchKeyKind) ParametersLiteral[T] {
	p.KeySwitchKeyKind = kind
	return p
}

// Compile transforms ParametersLiteral to read-only Parameters.
// If there is any invalid parameter in the literal, it panics.
// Default parameters are guaranteed to be compiled without panics.
func (p ParametersLiteral[T]) Compile() Parameters[T] {
	hammingWeight := p.HammingWeight
	if hammingWeight == 0 {
		hammingWeight = p.LWEDimension
	}

	switch {
	case p.LWEDimension <= 0:
		panic("LWEDimension smaller than one")
	case p.GLWERank <= 0:
		panic("GLWERank smaller than one")
	case !num.IsPowerOfTwo(p.PolyDegree) || p.PolyDegree < 4:
		panic("PolyDegree not power of two or smaller than four")
	case hammingWeight < 0 || hammingWeight > p.LWEDimension:
		panic("HammingWeight out of range")
	case p.LWEDimension%hammingWeight != 0:
		panic(fmt.Sprintf("HammingWeight %d does not divide LWEDimension %d", hammingWeight, p.LWEDimension))
	case p.LWEStdDev <= 0 || p.GLWEStdDev <= 0:
		panic("StdDev not positive")
	case !num.IsPowerOfTwo(p.MessageModulus) || p.MessageModulus < 2:
		panic("MessageModulus not power of two or smaller than two")
	case p.BlindRotateStrategy < StrategyGroupedCombine || p.BlindRotateStrategy > StrategyDense:
		panic("invalid BlindRotateStrategy")
	case p.KeySwitchKeyKind < KeySwitchDense || p.KeySwitchKeyKind > KeySwitchSparse:
		panic("invalid KeySwitchKeyKind")
	case p.BlindRotateStrategy == StrategyGroupedCombine && hammingWeight == p.LWEDimension:
		panic("GroupedCombine requires a block sparse secret key")
	}

	return Parameters[T]{
		lweDimension:  p.LWEDimension,
		glweRank:      p.GLWERank,
		polyDegree:    p.PolyDegree,
		glweDimension: p.GLWERank * p.PolyDegree,
		logPolyDegree: num.Log2(p.PolyDegree),

		hammingWeight: hammingWeight,
		blockSize:     p.LWEDimension / hammingWeight,

		lweStdDev:  p.LWEStdDev,
		glweStdDev: p.GLWEStdDev,

		messageModulus: p.MessageModulus,
		scale:          T(1) << (num.SizeT[T]() - num.Log2(p.MessageModulus)),

		blindRotateParameters: p.BlindRotateParameters.Compile(),
		keySwitchParameters:   p.KeySwitchParameters.Compile(),

		blindRotateStrategy: p.BlindRotateStrategy,
		keySwitchKeyKind:    p.KeySwitchKeyKind,
	}
}

// Parameters are read-only, compiled parameters based on ParametersLiteral.
type Parameters[T TorusInt] struct {
	lweDimension  int
	glweRank      int
	polyDegree    int
	glweDimension int
	logPolyDegree int

	hammingWeight int
	blockSize     int

	lweStdDev  float64
	glweStdDev float64

	messageModulus T
	scale          T

	blindRotateParameters GadgetParameters[T]
	keySwitchParameters   GadgetParameters[T]

	blindRotateStrategy BlindRotateStrategy
	keySwitchKeyKind    KeySwitchKeyKind
}

// LWEDimension is the dimension n of the bootstrapped LWE ciphertexts.
func (p Parameters[T]) LWEDimension() int {
	return p.lweDimension
}

// GLWERank is the rank k of the GLWE accumulator.
func (p Parameters[T]) GLWERank() int {
	return p.glweRank
}

// PolyDegree is the degree N of polynomials in GLWE entities.
func (p Parameters[T]) PolyDegree() int {
	return p.polyDegree
}

// LogPolyDegree equals log2(PolyDegree).
func (p Parameters[T]) LogPolyDegree() int {
	return p.logPolyDegree
}

// GLWEDimension equals GLWERank * PolyDegree,
// the dimension of LWE ciphertexts extracted from the accumulator.
func (p Parameters[T]) GLWEDimension() int {
	return p.glweDimension
}

// HammingWeight is the number of nonzero entries of the LWE secret key
// and the number of blocks of blind rotation.
func (p Parameters[T]) HammingWeight() int {
	return p.hammingWeight
}

// BlockCount equals HammingWeight.
func (p Parameters[T]) BlockCount() int {
	return p.hammingWeight
}

// BlockSize equals LWEDimension / HammingWeight.
func (p Parameters[T]) BlockSize() int {
	return p.blockSize
}

// IsSparse reports whether the LWE secret key is block sparse.
func (p Parameters[T]) IsSparse() bool {
	return p.hammingWeight < p.lweDimension
}

// LWEStdDev is the standard deviation of the LWE noise.
func (p Parameters[T]) LWEStdDev() float64 {
	return p.lweStdDev
}

// GLWEStdDev is the standard deviation of the GLWE noise.
func (p Parameters[T]) GLWEStdDev() float64 {
	return p.glweStdDev
}

// MessageModulus is the number of points messages are encoded to.
func (p Parameters[T]) MessageModulus() T {
	return p.messageModulus
}

// Scale equals Q / MessageModulus, the torus value of message one.
func (p Parameters[T]) Scale() T {
	return p.scale
}

// BlindRotateParameters is the gadget parameters of the bootstrapping key.
func (p Parameters[T]) BlindRotateParameters() GadgetParameters[T] {
	return p.blindRotateParameters
}

// KeySwitchParameters is the gadget parameters of the key switching key.
func (p Parameters[T]) KeySwitchParameters() GadgetParameters[T] {
	return p.keySwitchParameters
}

// BlindRotateStrategy is the default blind rotation algorithm.
func (p Parameters[T]) BlindRotateStrategy() BlindRotateStrategy {
	return p.blindRotateStrategy
}

// KeySwitchKeyKind is the key switching key generated with the evaluation key.
func (p Parameters[T]) KeySwitchKeyKind() KeySwitchKeyKind {
	return p.keySwitchKeyKind
}

// Literal returns a ParametersLiteral from this Parameters.
func (p Parameters[T]) Literal() ParametersLiteral[T] {
	return ParametersLiteral[T]{
		LWEDimension:  p.lweDimension,
		GLWERank:      p.glweRank,
		PolyDegree:    p.polyDegree,
		HammingWeight: p.hammingWeight,

		LWEStdDev:  p.lweStdDev,
		GLWEStdDev: p.glweStdDev,

		MessageModulus: p.messageModulus,

		BlindRotateParameters: p.blindRotateParameters.Literal(),
		KeySwitchParameters:   p.keySwitchParameters.Literal(),

		BlindRotateStrategy: p.blindRotateStrategy,
		KeySwitchKeyKind:    p.keySwitchKeyKind,
	}
}

// activeCount is the expected number of nonzero LWE key entries.
func (p Parameters[T]) activeCount() float64 {
	if p.IsSparse() {
		return float64(p.hammingWeight)
	}
	return float64(p.lweDimension) / 2
}

// externalProductVariance returns the variance added by one external product
// against a selector assembled from selectorCount bootstrapping key entries,
// split into the key noise term and the decomposition rounding term.
func (p Parameters[T]) externalProductVariance(selectorCount int) (keyTerm, roundTerm float64) {
	base := float64(p.blindRotateParameters.base)
	level := float64(p.blindRotateParameters.level)
	N := float64(p.polyDegree)
	k := float64(p.glweRank)

	digitVar := (base*base + 2) / 12
	keyTerm = float64(selectorCount) * (k + 1) * level * N * digitVar * p.glweStdDev * p.glweStdDev

	eps := math.Exp2(-float64(p.blindRotateParameters.logBase*p.blindRotateParameters.level)) / 2
	roundTerm = (1 + k*N/2) * eps * eps / 3
	return
}

// BlindRotateVariance estimates the variance of the accumulator noise after blind rotation
// with the given strategy, as a squared torus fraction.
func (p Parameters[T]) BlindRotateVariance(strategy BlindRotateStrategy) float64 {
	switch strategy {
	case StrategyGroupedCombine:
		keyTerm, roundTerm := p.externalProductVariance(p.blockSize)
		return float64(p.hammingWeight) * (keyTerm + roundTerm)
	default:
		// CMux terms are multiplied by X^a - 1 after the decomposition, which doubles their variance.
		keyTerm, roundTerm := p.externalProductVariance(1)
		return 2 * (float64(p.lweDimension)*keyTerm + p.activeCount()*roundTerm)
	}
}

// KeySwitchVariance estimates the variance added by key switching with the given kind of key.
func (p Parameters[T]) KeySwitchVariance(kind KeySwitchKeyKind) float64 {
	base := float64(p.keySwitchParameters.base)
	level := float64(p.keySwitchParameters.level)
	inputDim := float64(p.glweDimension)

	var digitVar float64
	switch kind {
	case KeySwitchDense:
		digitVar = (base - 1) / base
	default:
		digitVar = (base*base + 2) / 12
	}

	delta := math.Exp2(-float64(p.keySwitchParameters.logBase*p.keySwitchParameters.level)) / 2
	return inputDim*level*digitVar*p.lweStdDev*p.lweStdDev + (inputDim/2)*delta*delta/3
}

// BootstrapVariance estimates the variance of a bootstrapped ciphertext
// with the default strategy and key switching key kind.
func (p Parameters[T]) BootstrapVariance() float64 {
	return p.BlindRotateVariance(p.blindRotateStrategy) + p.KeySwitchVariance(p.keySwitchKeyKind)
}
