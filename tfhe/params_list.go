package tfhe

var (
	// ParamsSparseBoolean is the gate bootstrapping parameter set
	// with a block sparse LWE key of Hamming weight 100.
	// Blind rotation combines the selectors of each block of 5.
	ParamsSparseBoolean = ParametersLiteral[uint32]{
		LWEDimension:  500,
		GLWERank:      1,
		PolyDegree:    1024,
		HammingWeight: 100,

		LWEStdDev:  0.000030517578125,
		GLWEStdDev: 0.000000007450580596923828125,

		MessageModulus: 1 << 3,

		BlindRotateParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 10,
			Level: 2,
		},
		KeySwitchParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 2,
			Level: 8,
		},

		BlindRotateStrategy: StrategyGroupedCombine,
		KeySwitchKeyKind:    KeySwitchDense,
	}

	// ParamsSparseBooleanMux is ParamsSparseBoolean with the hoisted CMux blind rotation
	// and the sparse key switching key.
	ParamsSparseBooleanMux = ParametersLiteral[uint32]{
		LWEDimension:  500,
		GLWERank:      1,
		PolyDegree:    1024,
		HammingWeight: 100,

		LWEStdDev:  0.000030517578125,
		GLWEStdDev: 0.000000007450580596923828125,

		MessageModulus: 1 << 3,

		BlindRotateParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 10,
			Level: 2,
		},
		KeySwitchParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 2,
			Level: 8,
		},

		BlindRotateStrategy: StrategyHoistedMux,
		KeySwitchKeyKind:    KeySwitchSparse,
	}

	// ParamsDenseBoolean is the gate bootstrapping parameter set
	// with a uniform binary LWE key. It is the reference for sparse parameters.
	ParamsDenseBoolean = ParametersLiteral[uint32]{
		LWEDimension: 500,
		GLWERank:     1,
		PolyDegree:   1024,

		LWEStdDev:  0.000030517578125,
		GLWEStdDev: 0.000000007450580596923828125,

		MessageModulus: 1 << 3,

		BlindRotateParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 10,
			Level: 2,
		},
		KeySwitchParameters: GadgetParametersLiteral[uint32]{
			Base:  1 << 2,
			Level: 8,
		},

		BlindRotateStrategy: StrategyDense,
		KeySwitchKeyKind:    KeySwitchDense,
	}

	// ParamsSparseUint64 is a parameter set over 64-bit torus
	// with a block sparse LWE key of Hamming weight 128,
	// for 3-bit messages with one bit of padding.
	ParamsSparseUint64 = ParametersLiteral[uint64]{
		LWEDimension:  640,
		GLWERank:      1,
		PolyDegree:    2048,
		HammingWeight: 128,

		LWEStdDev:  0.00000762939453125,
		GLWEStdDev: 0.0000000000000284217094304040074,

		MessageModulus: 1 << 4,

		BlindRotateParameters: GadgetParametersLiteral[uint64]{
			Base:  1 << 15,
			Level: 2,
		},
		KeySwitchParameters: GadgetParametersLiteral[uint64]{
			Base:  1 << 4,
			Level: 5,
		},

		BlindRotateStrategy: StrategyGroupedCombine,
		KeySwitchKeyKind:    KeySwitchSparse,
	}
)
