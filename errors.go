// SPDX-FileCopyrightText: 2021 The Go-SSB Authors
//
// SPDX-License-Identifier: MIT

package bendybutt

import "errors"

// The four error kinds of the codec. Everything Encode and Decode
// return unwraps to one of these, so callers can classify a rejected
// message without string matching.
var (
	// ErrSuffixMismatch: a reference, signature or ciphertext string
	// does not carry the suffix its field position demands.
	ErrSuffixMismatch = errors.New("bendybutt: reference suffix does not match field type")

	// ErrUnknownTag: a tagged binary value starts with a type-format
	// pair the codec does not know, or is too short to carry one.
	ErrUnknownTag = errors.New("bendybutt: unknown type-format tag")

	// ErrShapeMismatch: the bencoded container does not have the fixed
	// arity and scalar kinds of the wire contract.
	ErrShapeMismatch = errors.New("bendybutt: malformed container shape")

	// ErrProjectionFailure: a decoded tagged value cannot be expressed
	// in its external string or announcement form again.
	ErrProjectionFailure = errors.New("bendybutt: cannot project decoded value")
)

func isCodecError(err error) bool {
	return errors.Is(err, ErrSuffixMismatch) ||
		errors.Is(err, ErrUnknownTag) ||
		errors.Is(err, ErrShapeMismatch) ||
		errors.Is(err, ErrProjectionFailure)
}
