// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// json_output.go - Standardized JSON output for spnlab commands.
//
// Every command honoring --json emits the same envelope, so scripted
// experiments can consume any command's result uniformly.

package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JSONResponse is the envelope every --json command emits.
type JSONResponse struct {
	// Success indicates whether the command completed.
	Success bool `json:"success"`

	// Data contains the command-specific payload.
	Data interface{} `json:"data"`

	// Error carries the failure message when Success is false.
	Error *string `json:"error"`

	// Timestamp is the ISO8601 generation time.
	Timestamp string `json:"timestamp"`

	// Command names the command that produced the response.
	Command string `json:"command,omitempty"`
}

// NewJSONResponse creates a successful JSON response.
func NewJSONResponse(command string, data interface{}) *JSONResponse {
	return &JSONResponse{
		Success:   true,
		Data:      data,
		Error:     nil,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// NewJSONErrorResponse creates a failed JSON response.
func NewJSONErrorResponse(command string, err error) *JSONResponse {
	msg := err.Error()
	return &JSONResponse{
		Success:   false,
		Data:      nil,
		Error:     &msg,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Command:   command,
	}
}

// Print writes the response to stdout with indentation.
func (r *JSONResponse) Print() error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(r)
}

// PrintCompact writes the response to stdout on one line.
func (r *JSONResponse) PrintCompact() error {
	return json.NewEncoder(os.Stdout).Encode(r)
}

// String renders the response as an indented JSON string.
func (r *JSONResponse) String() string {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Sprintf(`{"success":false,"error":"marshal failure: %v"}`, err)
	}
	return string(data)
}

// OutputJSON runs handler and, in jsonMode, wraps its result or error
// in the envelope on stdout. Outside jsonMode the handler's error
// passes through for normal display and the data is ignored; handlers
// print their human output themselves before returning.
func OutputJSON(jsonMode bool, command string, handler func() (interface{}, error)) error {
	data, err := handler()
	if !jsonMode {
		return err
	}
	if err != nil {
		if printErr := NewJSONErrorResponse(command, err).Print(); printErr != nil {
			return printErr
		}
		return err
	}
	return NewJSONResponse(command, data).Print()
}

// =============================================================================
// COMMAND PAYLOADS
// =============================================================================

// CodecData is the encrypt/decrypt command payload.
type CodecData struct {
	Input  string `json:"input"`
	Output string `json:"output"`
	Blocks int    `json:"blocks"`
}

// CandidateData is one ranked key-nibble guess in attack output.
type CandidateData struct {
	Rank        int     `json:"rank"`
	Guess       string  `json:"guess"`
	Bias        float64 `json:"bias"`
	Probability float64 `json:"probability"`
}

// AttackData is the attack command's payload.
type AttackData struct {
	Relation       string          `json:"relation"`
	PlaintextMask  string          `json:"plaintext_mask"`
	TargetSlot     int             `json:"target_slot"`
	VMask          string          `json:"v_mask"`
	Pairs          int             `json:"pairs"`
	Workers        int             `json:"workers"`
	TopGuess       string          `json:"top_guess"`
	TopBias        float64         `json:"top_bias"`
	TopProbability float64         `json:"top_probability"`
	Candidates     []CandidateData `json:"candidates"`
}

// QualityData is the quality command's payload.
type QualityData struct {
	SBox    string  `json:"sbox"`
	Trail   string  `json:"trail"`
	Quality float64 `json:"quality"`
	Valid   bool    `json:"valid"`
}

// LatEntryData is one bias table entry in lat output.
type LatEntryData struct {
	InMask      string  `json:"in_mask"`
	OutMask     string  `json:"out_mask"`
	CountZero   int     `json:"count_zero"`
	Bias        float64 `json:"bias"`
	Probability float64 `json:"probability"`
}

// LatData is the lat command's payload.
type LatData struct {
	SBox    string         `json:"sbox"`
	MaxBias float64        `json:"max_bias"`
	Entries []LatEntryData `json:"entries"`
}

// TrailBoxData is one active S-box in trail check output.
type TrailBoxData struct {
	Round   int     `json:"round"`
	Slot    int     `json:"slot"`
	InMask  string  `json:"in_mask"`
	OutMask string  `json:"out_mask"`
	Bias    float64 `json:"bias"`
}

// TrailCheckData is the trail check payload.
type TrailCheckData struct {
	Trail           string         `json:"trail"`
	Valid           bool           `json:"valid"`
	ActiveBoxes     []TrailBoxData `json:"active_boxes"`
	Quality         float64        `json:"quality"`
	RequiredSamples float64        `json:"required_samples,omitempty"`
}

// TrailDeriveData is the trail derive payload.
type TrailDeriveData struct {
	Trail     string  `json:"trail"`
	Direction string  `json:"direction"`
	Round     int     `json:"round"`
	Slot      int     `json:"slot"`
	InMask    string  `json:"in_mask"`
	OutMask   string  `json:"out_mask"`
	SeedBias  float64 `json:"seed_bias"`
}

// SamplesData is the samples command's payload. The block streams are
// inlined only when no output file captured them.
type SamplesData struct {
	Count          int    `json:"count"`
	Key            string `json:"key"`
	Seed           uint64 `json:"seed"`
	PlaintextFile  string `json:"plaintext_file,omitempty"`
	CiphertextFile string `json:"ciphertext_file,omitempty"`
	Plaintexts     string `json:"plaintexts,omitempty"`
	Ciphertexts    string `json:"ciphertexts,omitempty"`
}

// ConfigData is the config show payload.
type ConfigData struct {
	Path   string      `json:"path"`
	Exists bool        `json:"exists"`
	Config interface{} `json:"config"`
}

// VersionData is the version command's payload.
type VersionData struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
}

// StderrPrintln prints a line to stderr, keeping stdout clean for
// data in jsonMode.
func StderrPrintln(a ...interface{}) {
	fmt.Fprintln(os.Stderr, a...)
}
