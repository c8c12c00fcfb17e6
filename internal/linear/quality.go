// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// quality.go - Per-box bias measurement and Piling-up Lemma scoring

package linear

import (
	"math"

	"github.com/jeranaias/spnlab/internal/spn"
)

// InvalidTrailQuality is the sentinel returned for trails that fail
// the consistency check. It is a domain result distinct from a
// correctly evaluated quality of zero; callers branch on it
// explicitly.
const InvalidTrailQuality = -1.0

// SBoxBias measures |Pr[relation holds] - 1/2| for one S-box
// approximation by exhausting all 16 inputs. A one-sided pair comes
// out exactly 0 because the table is a bijection: a parity of only
// inputs, or only outputs, is perfectly balanced. The all-zero pair
// trivially holds everywhere; quality evaluation skips inactive slots
// instead of calling this.
func SBoxBias(s *spn.SBox, inMask, outMask uint8) float64 {
	return math.Abs(SBoxBiasSigned(s, inMask, outMask))
}

// SBoxBiasSigned is SBoxBias keeping the sign: count/16 - 1/2, where
// count tallies inputs with parity(inMask&x) == parity(outMask&S(x)).
func SBoxBiasSigned(s *spn.SBox, inMask, outMask uint8) float64 {
	count := 0
	for x := uint8(0); x < spn.SBoxSize; x++ {
		if parity4(inMask&x)^parity4(outMask&s.Substitute(x)) == 0 {
			count++
		}
	}
	return float64(count)/float64(spn.SBoxSize) - 0.5
}

// BoxBias describes one active S-box instance inside a trail.
type BoxBias struct {
	Round int // 1-based
	Slot  int
	Pair  MaskPair
	Bias  float64
}

// ActiveBiases measures every active S-box of the trail in trail
// order. It does not check connectivity; pair it with Trail.Validate.
func ActiveBiases(t *Trail, s *spn.SBox) []BoxBias {
	var boxes []BoxBias
	for round := 1; round <= spn.Rounds; round++ {
		for slot := 0; slot < spn.Slots; slot++ {
			p := t.Pair(round, slot)
			if !p.Active() {
				continue
			}
			boxes = append(boxes, BoxBias{
				Round: round,
				Slot:  slot,
				Pair:  p,
				Bias:  SBoxBias(s, p.In, p.Out),
			})
		}
	}
	return boxes
}

// TrailQuality scores a trail with the Piling-up Lemma:
// 2^(n-1) * product of the n active boxes' biases. Inconsistent
// trails score InvalidTrailQuality; a trail with no active box, or
// with any active box of bias zero, scores 0.
func TrailQuality(t *Trail, s *spn.SBox, perm *spn.Permutation) float64 {
	if !t.Validate(perm) {
		return InvalidTrailQuality
	}
	boxes := ActiveBiases(t, s)
	if len(boxes) == 0 {
		return 0
	}
	quality := math.Pow(2, float64(len(boxes)-1))
	for _, b := range boxes {
		if b.Bias == 0 {
			return 0
		}
		quality *= b.Bias
	}
	return quality
}

// RequiredSamples estimates how many known-plaintext pairs the attack
// needs for confidence factor t against an approximation of the given
// bias magnitude: t / bias^2. A commonly used t is 8. The estimate is
// advisory; it guides experiments rather than gating them. A zero
// bias has no finite answer.
func RequiredSamples(t, bias float64) float64 {
	if bias == 0 {
		return math.Inf(1)
	}
	return t / (bias * bias)
}
