// Package ccerrors defines the error taxonomy shared by every
// crypto-primitives package: at most one kind per call, each wrapped
// with a call-site stack frame so a failure can be traced back to the
// constructor or prover step that raised it.
package ccerrors

import (
	"fmt"

	"golang.org/x/xerrors"
)

// Kind is a sentinel error identifying one of the orthogonal failure
// categories of spec §7. Compare with errors.Is, never with ==.
type Kind struct {
	name string
}

func (k *Kind) Error() string { return k.name }

var (
	// InvalidInput signals a null/empty/out-of-range/wrong-domain argument.
	InvalidInput = &Kind{"invalid input"}
	// GroupMismatch signals two operands belonging to incompatible groups.
	GroupMismatch = &Kind{"group mismatch"}
	// ShapeError signals inconsistent vector/matrix dimensions across related inputs.
	ShapeError = &Kind{"shape error"}
	// WitnessInconsistent signals a statement/witness pair that does not satisfy the relation.
	WitnessInconsistent = &Kind{"witness inconsistent"}
	// BitLengthTooLarge signals a hash bit length that would bias a Zq challenge.
	BitLengthTooLarge = &Kind{"bit length too large"}
	// PreconditionViolated signals a failed global precondition.
	PreconditionViolated = &Kind{"precondition violated"}
)

// wrapped carries a Kind plus a human-readable message and the frame
// of whoever constructed it.
type wrapped struct {
	kind  *Kind
	msg   string
	frame xerrors.Frame
}

func (w *wrapped) Error() string {
	return fmt.Sprintf("%s: %s", w.kind.name, w.msg)
}

func (w *wrapped) Unwrap() error { return w.kind }

func (w *wrapped) Format(f fmt.State, c rune) { xerrors.FormatError(w, f, c) }

func (w *wrapped) FormatError(p xerrors.Printer) error {
	p.Printf("%s: %s", w.kind.name, w.msg)
	if p.Detail() {
		w.frame.Format(p)
	}
	return nil
}

// New builds an error of the given kind, capturing the caller's frame.
func New(kind *Kind, format string, args ...interface{}) error {
	return &wrapped{
		kind:  kind,
		msg:   fmt.Sprintf(format, args...),
		frame: xerrors.Caller(1),
	}
}

// Is reports whether err (or something it wraps) is of the given kind.
func Is(err error, kind *Kind) bool {
	return xerrors.Is(err, kind)
}
