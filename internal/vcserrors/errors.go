// Package vcserrors defines the error taxonomy shared across the object
// store, reference store, index, and history-operation packages.
package vcserrors

import (
	"errors"
	"fmt"
)

// Sentinel errors with no payload.
var (
	ErrConflictInIndex     = errors.New("conflict-in-index: unresolved conflicts exist")
	ErrDirtyWorkingTree    = errors.New("dirty-working-tree: staged or unstaged changes present")
	ErrOperationInProgress = errors.New("operation-in-progress: another merge/cherry-pick/rebase is live")
	ErrNoCommonHistory     = errors.New("no-common-history: refusing to operate on unrelated histories")
	ErrRefResolutionTooDeep = errors.New("invalid-ref-value: symbolic reference resolution exceeded depth bound")
)

// ErrMissingObject means the requested object id has no corresponding
// file in the object store.
type ErrMissingObject struct {
	OID string
}

func (e *ErrMissingObject) Error() string {
	return fmt.Sprintf("missing-object: %q not found", e.OID)
}

func IsMissingObject(err error) bool {
	var e *ErrMissingObject
	return errors.As(err, &e)
}

// ErrCorruptObject means an object file exists but its bytes could not
// be inflated or its header parsed.
type ErrCorruptObject struct {
	OID    string
	Reason string
}

func (e *ErrCorruptObject) Error() string {
	return fmt.Sprintf("corrupt-object: %q: %s", e.OID, e.Reason)
}

func IsCorruptObject(err error) bool {
	var e *ErrCorruptObject
	return errors.As(err, &e)
}

// ErrWrongType means the object was found but its type tag did not
// match what the caller expected.
type ErrWrongType struct {
	OID      string
	Want     string
	Got      string
}

func (e *ErrWrongType) Error() string {
	return fmt.Sprintf("wrong-type: %q want %q got %q", e.OID, e.Want, e.Got)
}

func IsWrongType(err error) bool {
	var e *ErrWrongType
	return errors.As(err, &e)
}

// ErrMissingRef means a reference name could not be resolved to a value.
type ErrMissingRef struct {
	Name string
}

func (e *ErrMissingRef) Error() string {
	return fmt.Sprintf("missing-ref: %q", e.Name)
}

func IsMissingRef(err error) bool {
	var e *ErrMissingRef
	return errors.As(err, &e)
}

// ErrUnknownName means OID resolution (spec §6) tried every strategy and
// none matched.
type ErrUnknownName struct {
	Name string
}

func (e *ErrUnknownName) Error() string {
	return fmt.Sprintf("unknown-name: %q does not resolve to an object", e.Name)
}

func IsUnknownName(err error) bool {
	var e *ErrUnknownName
	return errors.As(err, &e)
}

// ErrInvalidInput covers the catch-all invalid-input conditions named in
// spec §7: rebase over a merge commit, cherry-pick of a root or merge
// commit, a would-overwrite push.
type ErrInvalidInput struct {
	Reason string
}

func (e *ErrInvalidInput) Error() string {
	return fmt.Sprintf("invalid-input: %s", e.Reason)
}

func NewInvalidInput(reason string) error {
	return &ErrInvalidInput{Reason: reason}
}

func IsInvalidInput(err error) bool {
	var e *ErrInvalidInput
	return errors.As(err, &e)
}
