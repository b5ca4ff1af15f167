package drm

import "errors"

// Error classes for the absorbing-layer pipeline. Callers can test with
// errors.Is to tell bad input apart from recognized-but-unimplemented
// features and from geometric or material inconsistencies found
// mid-operation.
var (
	// ErrValidation marks precondition failures: missing mesh, bad
	// argument ranges, unknown enum values. No work has been performed.
	ErrValidation = errors.New("invalid input")

	// ErrNotImplemented marks recognized options without an
	// implementation: metis partitioning, cylindrical geometry, ASDA
	// layers.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInconsistent marks domain-consistency failures detected
	// mid-operation: incompatible element or material types, shell
	// spacing that does not match the interior mesh, bad DOF pairings.
	// The assembled mesh state is undefined after one of these.
	ErrInconsistent = errors.New("inconsistent model")
)
