package tfhe

// FourierGLevCiphertext is a leveled GLWE ciphertext in Fourier domain.
// Value[j] encrypts the message multiplied by the j-th gadget element.
type FourierGLevCiphertext[T TorusInt] struct {
	GadgetParameters GadgetParameters[T]

	// Value has length Level.
	Value []FourierGLWECiphertext[T]
}

// NewFourierGLevCiphertext allocates an empty FourierGLevCiphertext.
func NewFourierGLevCiphertext[T TorusInt](params Parameters[T], gadgetParams GadgetParameters[T]) FourierGLevCiphertext[T] {
	ct := make([]FourierGLWECiphertext[T], gadgetParams.level)
	for i := range ct {
		ct[i] = NewFourierGLWECiphertext(params)
	}
	return FourierGLevCiphertext[T]{GadgetParameters: gadgetParams, Value: ct}
}

// Copy returns a copy of the ciphertext.
func (ct FourierGLevCiphertext[T]) Copy() FourierGLevCiphertext[T] {
	ctCopy := make([]FourierGLWECiphertext[T], len(ct.Value))
	for i := range ct.Value {
		ctCopy[i] = ct.Value[i].Copy()
	}
	return FourierGLevCiphertext[T]{GadgetParameters: ct.GadgetParameters, Value: ctCopy}
}

// FourierGGSWCiphertext is a GGSW ciphertext in Fourier domain.
// It is used as a selector in the external product.
type FourierGGSWCiphertext[T TorusInt] struct {
	GadgetParameters GadgetParameters[T]

	// Value has length GLWERank + 1.
	// Value[i] encrypts the message multiplied by the i-th component of (1, -s).
	Value []FourierGLevCiphertext[T]
}

// NewFourierGGSWCiphertext allocates an empty FourierGGSWCiphertext.
func NewFourierGGSWCiphertext[T TorusInt](params Parameters[T], gadgetParams GadgetParameters[T]) FourierGGSWCiphertext[T] {
	ct := make([]FourierGLevCiphertext[T], params.glweRank+1)
	for i := range ct {
		ct[i] = NewFourierGLevCiphertext(params, gadgetParams)
	}
	return FourierGGSWCiphertext[T]{GadgetParameters: gadgetParams, Value: ct}
}

// Copy returns a copy of the ciphertext.
func (ct FourierGGSWCiphertext[T]) Copy() FourierGGSWCiphertext[T] {
	ctCopy := make([]FourierGLevCiphertext[T], len(ct.Value))
	for i := range ct.Value {
		ctCopy[i] = ct.Value[i].Copy()
	}
	return FourierGGSWCiphertext[T]{GadgetParameters: ct.GadgetParameters, Value: ctCopy}
}

// CopyFrom copies values from the ciphertext.
func (ct *FourierGGSWCiphertext[T]) CopyFrom(ctIn FourierGGSWCiphertext[T]) {
	for i := range ct.Value {
		for j := range ct.Value[i].Value {
			ct.Value[i].Value[j].CopyFrom(ctIn.Value[i].Value[j])
		}
	}
}

// Clear clears the ciphertext.
func (ct *FourierGGSWCiphertext[T]) Clear() {
	for i := range ct.Value {
		for j := range ct.Value[i].Value {
			ct.Value[i].Value[j].Clear()
		}
	}
}
