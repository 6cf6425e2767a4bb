// Command sparseboot times the sign bootstrapping with a block sparse secret key,
// comparing the grouped, hoisted and dense blind rotations on the same inputs.
package main

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/pkg/profile"
	"golang.org/x/sys/cpu"

	"github.com/SNUCP/sparse-tfhe/tfhe"
)

var (
	flagSamples  = flag.Int("samples", 50, "number of bootstrapped samples.")
	flagSeed     = flag.String("seed", "", "seed of the keys and encryptions. Empty means random.")
	flagProfile  = flag.String("profile", "", "write a profile: cpu or mem.")
	flagParallel = flag.Bool("parallel", false, "also run the sparse bootstrapping on all cores.")
)

func main() {
	flag.Parse()

	l := log.New(os.Stderr, "", 0)

	switch *flagProfile {
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	case "mem":
		defer profile.Start(profile.MemProfile, profile.ProfilePath(".")).Stop()
	case "":
	default:
		l.Fatalf("unknown profile %q", *flagProfile)
	}

	l.Printf("CPU: AVX2=%v FMA=%v ASIMD=%v", cpu.X86.HasAVX2, cpu.X86.HasFMA, cpu.ARM64.HasASIMD)

	params := tfhe.ParamsSparseBoolean.Compile()
	l.Printf("n=%d N=%d k=%d hw=%d (block size %d)",
		params.LWEDimension(), params.PolyDegree(), params.GLWERank(), params.HammingWeight(), params.BlockSize())

	var enc *tfhe.Encryptor[uint32]
	if *flagSeed == "" {
		enc = tfhe.NewEncryptor(params)
	} else {
		enc = tfhe.NewEncryptorWithSeed(params, []byte(*flagSeed))
	}

	now := time.Now()
	evk := enc.GenEvaluationKeyParallel()
	l.Printf("key generation: %v", time.Since(now))

	eval := tfhe.NewEvaluator(params, evk)

	nbSamples := *flagSamples
	mu := uint32(1) << 29
	cts := make([]tfhe.LWECiphertext[uint32], nbSamples)
	for i := range cts {
		x := uint32((uint64(i) << 32) / uint64(nbSamples))
		cts[i] = enc.EncryptLWETorusCustom(x, 0.01)
	}

	strategies := []tfhe.BlindRotateStrategy{
		tfhe.StrategyDense,
		tfhe.StrategyHoistedMux,
		tfhe.StrategyGroupedCombine,
	}

	results := make(map[tfhe.BlindRotateStrategy][]bool, len(strategies))
	for _, strategy := range strategies {
		e := eval.WithStrategy(strategy)
		out := make([]bool, nbSamples)

		l.Printf("starting %v bootstrapping...", strategy)
		now := time.Now()
		for i, ct := range cts {
			out[i] = enc.DecryptBool(e.Bootstrap(ct, mu))
		}
		elapsed := time.Since(now)
		l.Printf("finished %d bootstrappings, time per bootstrapping: %v", nbSamples, elapsed/time.Duration(max(nbSamples, 1)))

		results[strategy] = out
	}

	if *flagParallel {
		now := time.Now()
		eval.BootstrapParallel(cts, mu)
		l.Printf("parallel %v bootstrapping of %d samples: %v", params.BlindRotateStrategy(), nbSamples, time.Since(now))
	}

	for _, strategy := range strategies[1:] {
		agree := 0
		for i := range cts {
			if results[strategy][i] == results[tfhe.StrategyDense][i] {
				agree++
			}
		}
		l.Printf("%v agrees with %v on %d/%d samples", strategy, tfhe.StrategyDense, agree, nbSamples)
	}
}
