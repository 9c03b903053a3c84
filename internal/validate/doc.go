// Package validate checks model declarations for consistency between their
// marker and their property shape.
//
// Each rule is an independent entry of Rules; every rule sees every
// declaration, so rules never depend on one another. Validation is a pure
// function of the snapshot and runs whether or not code is emitted.
package validate
