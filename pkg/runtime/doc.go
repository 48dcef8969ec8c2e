// Package runtime implements the value engine of the Adder interpreter: the
// tagged object representation, the reference-counted shared-ownership heap,
// operator and comparison dispatch, and the iterator and callable protocols.
//
// The surrounding interpreter builds objects through Context factories,
// stores and retrieves them through Refs, and asks this package to evaluate
// operators, comparisons, iteration steps, and calls. Results come back as
// owned Refs or typed Failure errors; no user-triggered condition terminates
// the process. The package does no I/O and holds no global state.
package runtime
