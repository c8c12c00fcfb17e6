// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// attack.go - Known-plaintext partial-key recovery by bias ranking

package linear

import (
	"context"
	"math"
	"sort"

	"github.com/jeranaias/spnlab/internal/spn"
	"github.com/jeranaias/spnlab/internal/tasks"
)

// GuessCount is the size of the attacked key space: one nibble.
const GuessCount = 1 << spn.NibbleBits

// Candidate is one ranked key-nibble guess with its measured
// statistics over the sample set.
type Candidate struct {
	Guess       uint8
	Bias        float64 // signed: Probability - 1/2
	Probability float64 // fraction of pairs where the relation held
}

// Result is a completed attack. Candidates are ranked by |bias|
// descending with ties broken by ascending guess, so the ranking is
// fully deterministic for a given input.
type Result struct {
	Relation   Relation
	Pairs      int
	Candidates [GuessCount]Candidate
}

// Top returns the best-ranked candidate, the recovered key nibble.
func (r *Result) Top() Candidate {
	return r.Candidates[0]
}

// Attack measures the relation's empirical bias for every key-nibble
// guess over the known plaintext/ciphertext pairs and ranks the
// guesses. The guesses are independent and fan out over the pool; each
// works from the shared read-only inputs into its own counter, so the
// schedule cannot influence the outcome.
func Attack(ctx context.Context, cipher *spn.Cipher, rel Relation, plaintexts, ciphertexts []uint16, pool *tasks.Pool) (*Result, error) {
	if err := rel.Validate(); err != nil {
		return nil, err
	}
	if cipher.PermutesLastRound() {
		return nil, spn.NewConfigurationError("attack",
			"last-round permutation must be disabled, partial inversion works per nibble")
	}
	if len(plaintexts) == 0 {
		return nil, spn.NewFormatError("pairs", "", "no plaintext/ciphertext pairs")
	}
	if len(plaintexts) != len(ciphertexts) {
		return nil, spn.NewFormatError("pairs", "",
			"plaintext and ciphertext block counts differ: %d vs %d", len(plaintexts), len(ciphertexts))
	}
	if pool == nil {
		pool = tasks.NewPool(1)
	}

	n := len(plaintexts)
	var candidates [GuessCount]Candidate
	err := pool.ForEach(ctx, GuessCount, func(g int) error {
		guess := uint8(g)
		count := 0
		for i := 0; i < n; i++ {
			ctNibble := spn.NibbleAt(ciphertexts[i], rel.TargetSlot)
			v := cipher.PartialInvertLastRound(ctNibble, guess)
			if rel.Bit(plaintexts[i], v) == 0 {
				count++
			}
		}
		prob := float64(count) / float64(n)
		candidates[g] = Candidate{Guess: guess, Bias: prob - 0.5, Probability: prob}
		return nil
	})
	if err != nil {
		return nil, err
	}

	ranked := candidates[:]
	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := math.Abs(ranked[i].Bias), math.Abs(ranked[j].Bias)
		if bi != bj {
			return bi > bj
		}
		return ranked[i].Guess < ranked[j].Guess
	})

	result := &Result{Relation: rel, Pairs: n}
	copy(result.Candidates[:], ranked)
	return result, nil
}
