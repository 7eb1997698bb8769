// Package testvectors implements the JSON interop schema of spec §6:
// each test case supplies a context (group parameters, keys,
// commitment key, security level), an input (statement and witness,
// or an argument to re-verify), and an expected output (a
// verification result or an expected argument), letting independent
// implementations exchange bit-exact fixtures.
package testvectors

import "encoding/json"

// Context carries the group parameters and shared keys a test case's
// input/output are interpreted against.
type Context struct {
	P             string   `json:"p"`
	Q             string   `json:"q"`
	G             string   `json:"g"`
	PublicKeyHex  []string `json:"pk,omitempty"`
	CommitmentKey *KeyJSON `json:"ck,omitempty"`
	SecurityLevel int      `json:"securityLevel,omitempty"`
}

// KeyJSON is the wire form of a commitment.Key: h plus g_1..g_nu.
type KeyJSON struct {
	H  string   `json:"h"`
	Gs []string `json:"gs"`
}

// CiphertextJSON is the wire form of an elgamal.Ciphertext.
type CiphertextJSON struct {
	Gamma string   `json:"gamma"`
	Phi   []string `json:"phi"`
}

// Input carries a statement/witness pair, or a pre-built argument to
// re-verify, left as raw JSON since its shape varies per component
// under test (ShuffleStatement, ZeroStatement, DecryptionProof, ...).
type Input struct {
	Statement json.RawMessage `json:"statement,omitempty"`
	Witness   json.RawMessage `json:"witness,omitempty"`
	Argument  json.RawMessage `json:"argument,omitempty"`
}

// Output carries the expected result of running a test case: either a
// verification outcome, or an argument an implementation's prover is
// expected to reproduce bit-exactly given a fixed randomness fixture.
type Output struct {
	Verified *bool           `json:"verified,omitempty"`
	Errors   []string        `json:"errors,omitempty"`
	Argument json.RawMessage `json:"argument,omitempty"`
}

// Case is one complete, self-contained test vector.
type Case struct {
	Name    string  `json:"name"`
	Context Context `json:"context"`
	Input   Input   `json:"input"`
	Output  Output  `json:"output"`
}

// File is the top-level container a test-vector JSON document decodes
// into: a named suite of cases.
type File struct {
	Suite string `json:"suite"`
	Cases []Case `json:"cases"`
}
