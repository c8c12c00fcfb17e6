// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// explain_cmd.go - Rendered theory notes.
//
// Command: explain [topic]
// Aliases: notes
//
// Topics: cipher, lat, piling-up, attack. Notes render as styled
// markdown on a terminal and as raw markdown when piped, so they can
// be read either way.
//
// Examples:
//   spnlab explain
//   spnlab explain cipher
//   spnlab explain attack | less

package cli

import (
	"fmt"

	"github.com/charmbracelet/glamour"
)

// =============================================================================
// MARKDOWN RENDERING
// =============================================================================

// markdownRenderer is the shared glamour renderer for the notes.
var markdownRenderer *glamour.TermRenderer

func init() {
	var err error
	markdownRenderer, err = glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(DefaultTerminalWidth),
	)
	if err != nil {
		// Plain text fallback when the renderer cannot initialize
		markdownRenderer = nil
	}
}

// renderMarkdown renders markdown for terminal display, returning the
// source unchanged when rendering is unavailable.
func renderMarkdown(content string) string {
	if markdownRenderer == nil {
		return content
	}
	rendered, err := markdownRenderer.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// displayNotes renders markdown only on a terminal so piped output
// stays valid markdown.
func displayNotes(content string) {
	if IsStdoutTTY() && ColorsEnabled() {
		fmt.Print(renderMarkdown(content))
	} else {
		fmt.Print(content)
	}
}

// =============================================================================
// HANDLE EXPLAIN
// =============================================================================

// HandleExplain handles the "explain" command.
func HandleExplain(args Args) error {
	parser := NewArgParser(args.Raw)
	topic := parser.Subcommand()

	switch topic {
	case "":
		displayNotes(notesOverview)
	case "cipher", "spn":
		displayNotes(notesCipher)
	case "lat", "bias", "table":
		displayNotes(notesLat)
	case "piling-up", "piling", "lemma", "quality":
		displayNotes(notesPilingUp)
	case "attack":
		displayNotes(notesAttack)
	default:
		return NewUsageError("explain",
			"unknown topic %q, expected cipher, lat, piling-up, or attack", topic)
	}
	return nil
}

// =============================================================================
// NOTES
// =============================================================================

const notesOverview = `# spnlab theory notes

A guided tour of the toy cipher and the attack that breaks it, in
four parts:

- ` + "`spnlab explain cipher`" + ` - the substitution-permutation network
- ` + "`spnlab explain lat`" + ` - linear approximations of the S-box
- ` + "`spnlab explain piling-up`" + ` - chaining approximations into trails
- ` + "`spnlab explain attack`" + ` - recovering key material from pairs

The cipher here is deliberately breakable. Sixteen-bit blocks fall to
statistics a laptop gathers in milliseconds, which makes every effect
the notes describe directly observable with the other commands.
`

const notesCipher = `# The substitution-permutation network

The cipher encrypts a 16-bit block with a 16-bit key over four
rounds. Each round does three things:

1. **Key mixing** - XOR the state with the key (the same key every
   round; a real cipher would derive round keys).
2. **Substitution** - split the state into four nibbles and push each
   through the S-box. Slot 0 is the least significant nibble.
3. **Permutation** - move bit *i* of the state to position
   ` + "`mapping[i]`" + `. The default table transposes the state's 4x4 bit
   grid, so it is its own inverse.

After round four the state is XORed with the key once more. Without
that final whitening the last substitution could be peeled off a
ciphertext with no key knowledge at all.

By default the permutation step is skipped in round four, matching
the classic textbook construction the linear attack is usually taught
against. The ` + "`cipher.permute_last_round`" + ` config flag turns it back
on; round-trip identity holds either way, but the attack requires it
off and says so rather than computing nonsense.

The default tables:

- S-box ` + "`E4D12FB83A6C5907`" + `, read as: input 0 maps to E, input 1 to
  4, and so on. Any 16-digit permutation of the hex digits works;
  anything non-bijective is rejected at construction.
- Permutation ` + "`[0,4,8,12,1,5,9,13,2,6,10,14,3,7,11,15]`" + `.

Decryption runs the rounds in reverse with the inverse S-box and
inverse permutation. ` + "`spnlab encrypt`" + ` and ` + "`spnlab decrypt`" + ` apply the
cipher block by block in ECB fashion, which is exactly the weakness
the attack needs: every block is an independent sample of the same
key.
`

const notesLat = `# Linear approximations of the S-box

A linear approximation of the S-box is a pair of masks (in, out)
claiming that

    parity(in AND x)  ==  parity(out AND S(x))

holds for a random input x more (or less) often than half the time.
For each of the 256 mask pairs, count the inputs where the claim
holds; the **bias** is count/16 - 1/2, between -1/2 and +1/2. The
16x16 grid of counts is the linear approximation table, and
` + "`spnlab lat`" + ` lists its nonzero rows while ` + "`spnlab lat --interactive`" + `
lets you walk the grid cell by cell.

Three structural facts show up immediately:

- The (0,0) entry always holds: parity of nothing equals parity of
  nothing. It carries no information.
- **One-sided** pairs, where exactly one mask is zero, have bias
  exactly 0 for any bijective S-box: the parity of a nonzero mask
  over a permuted set of all sixteen values is perfectly balanced.
  ` + "`spnlab lat --one-sided`" + ` prints all thirty as evidence.
- Everything else is S-box specific. The default table's strongest
  approximations reach |bias| = 3/8, for example input mask 1 with
  output mask 7, which holds for 14 of the 16 inputs.

A large |bias| means the S-box leaks linear structure at that mask
pair. The attack never uses a single approximation directly; it
chains them across rounds, which is where the Piling-up Lemma comes
in.
`

const notesPilingUp = `# Chaining approximations: trails and the Piling-up Lemma

To say something linear about the whole cipher, approximations of
individual S-boxes are chained into a **trail**: one (in, out) mask
pair per S-box instance, 16 pairs for 4 rounds by 4 slots. A box with
both masks zero is inactive and transparent to the analysis.

A trail is **consistent** only if the masks connect: each round's
output masks, pushed through the permutation, must land exactly on
the next round's input masks. ` + "`spnlab trail check`" + ` verifies this and
` + "`spnlab trail derive`" + ` constructs connecting masks for you from one
seed approximation. An inconsistent trail claims nothing about the
cipher, so its quality is reported as the sentinel -1, a value a
real evaluation can never produce.

For a consistent trail with n active boxes of biases b1..bn, the
Piling-up Lemma gives the combined bias of the cipher-wide relation,
assuming the boxes behave independently:

    bias  =  2^(n-1) * b1 * b2 * ... * bn

That product is the trail's **quality**. Two consequences follow
directly from the formula: any active box with zero bias kills the
whole trail, and every extra active box costs roughly a factor of
two, so good trails are sparse. The classic trail against the default
tables activates seven boxes, four using the (3,9) approximation of
bias 3/8 and three using (9,8) of bias 1/4:

    2^6 * (3/8)^4 * (1/4)^3  =  81/4096  =  0.019775390625

which is exactly what ` + "`spnlab quality`" + ` reports for it.

Quality sets the price of the attack: distinguishing a bias of
magnitude q from coin flipping needs on the order of t/q^2 samples
(t around 8 is a common confidence factor). For 81/4096 that is
about twenty thousand pairs, which is why the examples generate
32768.
`

const notesAttack = `# The known-plaintext attack

The attack recovers one nibble of the key from known
plaintext/ciphertext pairs, using a relation between plaintext bits
and bits *one substitution before* the ciphertext:

1. Pick a trail whose cipher-wide relation ends at the input of one
   last-round S-box (the **target slot**). The config default targets
   slot 3 with plaintext mask 0033 and input mask 9.
2. For each of the 16 guesses g of the key nibble at that slot,
   partially decrypt every ciphertext one step: XOR the slot's nibble
   with g and run it backward through the inverse S-box. With the
   last-round permutation disabled this needs only the one nibble,
   which is what makes a per-nibble guess meaningful.
3. Count how often the relation holds. The guess's **empirical bias**
   is count/N - 1/2.

When g is the true key nibble, the partial decryption reconstructs
the genuine intermediate value and the counted bias approaches the
trail's quality. A wrong g filters the data through a wrong S-box
path, scrambling the correlation toward zero. Rank the guesses by
|bias|, descending: the top entry is the recovered nibble.
` + "`spnlab attack`" + ` prints the whole ranking, with ties broken toward
the smaller guess so a given data set always ranks identically.

Two honest caveats. First, the measured bias may differ in sign from
the trail prediction; the key's own bits flip the relation's parity,
which is why the ranking uses magnitude. Second, for some input
masks a wrong guess is structurally correlated with the right one:
with mask B against the default S-box, guesses differing by 8 count
identical parities on every ciphertext and tie exactly. More samples
sharpen everything else; structural ties are a property of the S-box
and mask, not noise. The default mask 9 has no such twin, which is
one reason it is the default.

The other 12 key bits are not recovered here. The classic recipe
repeats the attack with trails targeting the other slots, then brute
forces whatever remains, but each repetition is this same command
with a different relation.
`
