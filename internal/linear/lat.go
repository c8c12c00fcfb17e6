// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// lat.go - Linear approximation table enumeration

package linear

import (
	"math"
	"sort"

	"github.com/jeranaias/spnlab/internal/spn"
)

// Entry is one cell of the linear approximation table.
type Entry struct {
	InMask      uint8
	OutMask     uint8
	CountZero   int     // inputs where the approximation holds
	Probability float64 // CountZero / 16
	Bias        float64 // signed: Probability - 1/2
}

// BiasTable exhausts all 256 mask combinations of an S-box, indexed
// [inMask][outMask]. At this block size full enumeration is the whole
// search; no heuristics are involved.
func BiasTable(s *spn.SBox) [spn.SBoxSize][spn.SBoxSize]Entry {
	var table [spn.SBoxSize][spn.SBoxSize]Entry
	for in := uint8(0); in < spn.SBoxSize; in++ {
		for out := uint8(0); out < spn.SBoxSize; out++ {
			count := 0
			for x := uint8(0); x < spn.SBoxSize; x++ {
				if parity4(in&x)^parity4(out&s.Substitute(x)) == 0 {
					count++
				}
			}
			prob := float64(count) / float64(spn.SBoxSize)
			table[in][out] = Entry{
				InMask:      in,
				OutMask:     out,
				CountZero:   count,
				Probability: prob,
				Bias:        prob - 0.5,
			}
		}
	}
	return table
}

// NonzeroEntries lists the two-sided approximations with nonzero bias,
// sorted by |bias| descending, then input mask, then output mask. The
// inactive pair and the structurally balanced one-sided pairs are
// excluded.
func NonzeroEntries(s *spn.SBox) []Entry {
	table := BiasTable(s)
	var entries []Entry
	for in := uint8(1); in < spn.SBoxSize; in++ {
		for out := uint8(1); out < spn.SBoxSize; out++ {
			if e := table[in][out]; e.Bias != 0 {
				entries = append(entries, e)
			}
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		bi, bj := math.Abs(entries[i].Bias), math.Abs(entries[j].Bias)
		if bi != bj {
			return bi > bj
		}
		if entries[i].InMask != entries[j].InMask {
			return entries[i].InMask < entries[j].InMask
		}
		return entries[i].OutMask < entries[j].OutMask
	})
	return entries
}

// OneSidedEntries lists every approximation with exactly one nonzero
// mask. For a bijective table all of them are balanced; the listing
// exists to demonstrate that, not to find candidates.
func OneSidedEntries(s *spn.SBox) []Entry {
	table := BiasTable(s)
	entries := make([]Entry, 0, 2*(spn.SBoxSize-1))
	for m := uint8(1); m < spn.SBoxSize; m++ {
		entries = append(entries, table[m][0])
	}
	for m := uint8(1); m < spn.SBoxSize; m++ {
		entries = append(entries, table[0][m])
	}
	return entries
}

// MaxBias returns the largest |bias| over all two-sided approximations.
func MaxBias(s *spn.SBox) float64 {
	best := 0.0
	for _, e := range NonzeroEntries(s) {
		if b := math.Abs(e.Bias); b > best {
			best = b
		}
	}
	return best
}
