package dghv

import (
	"math/big"

	"github.com/montanaflynn/stats"

	"github.com/tuneinsight/she/utils/bignum"
)

// Noise returns, for each element of ct, the bit-size of its centered
// residue modulo the secret p, i.e. log2 of |(e_i mod p) centered to
// (-p/2, p/2]|. Decryption of an element is reliable as long as its
// noise stays below eta-1 bits.
func Noise(sk *SecretKey, ct *EncryptedArray) []float64 {

	p := sk.value
	half := new(big.Int).Rsh(p, 1)
	prec := uint(sk.params.SecretKeySize() + 64)

	noise := make([]float64, len(ct.elements))
	res := new(big.Int)
	for i, e := range ct.elements {

		res.Mod(e, p)
		if res.Cmp(half) > 0 {
			res.Sub(res, p)
			res.Neg(res)
		}

		if res.Sign() == 0 {
			continue
		}

		bits, _ := bignum.Log2(bignum.NewFloat(res, prec)).Float64()
		noise[i] = bits
	}

	return noise
}

// NoiseStatsReport summarizes the per-element noise of an array, in
// bits.
type NoiseStatsReport struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
	StdDev float64
}

// NoiseStats returns summary statistics over the per-element noise of
// ct. The zero report is returned for an empty array.
func NoiseStats(sk *SecretKey, ct *EncryptedArray) NoiseStatsReport {

	noise := Noise(sk, ct)
	if len(noise) == 0 {
		return NoiseStatsReport{}
	}

	min, _ := stats.Min(noise)
	max, _ := stats.Max(noise)
	mean, _ := stats.Mean(noise)
	median, _ := stats.Median(noise)
	stdDev, _ := stats.StandardDeviation(noise)

	return NoiseStatsReport{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		StdDev: stdDev,
	}
}

// NoiseMarginBits returns the number of noise bits left before
// decryption of ct becomes unreliable: eta-1 minus the largest
// per-element noise. A non-positive margin means the array is expected
// to decrypt incorrectly.
func NoiseMarginBits(sk *SecretKey, ct *EncryptedArray) float64 {

	margin := float64(sk.params.SecretKeySize() - 1)

	for _, bits := range Noise(sk, ct) {
		if m := float64(sk.params.SecretKeySize()-1) - bits; m < margin {
			margin = m
		}
	}

	return margin
}
