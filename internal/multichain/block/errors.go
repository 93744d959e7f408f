package block

import "errors"

var (
	// ErrConstruction reports a field of the wrong width at build time.
	ErrConstruction = errors.New("malformed block field")
	// ErrStructuralParse reports an encoding of the wrong total length.
	ErrStructuralParse = errors.New("malformed block encoding")
	// ErrSignerMismatch reports an attempt to sign a block owned by another key.
	ErrSignerMismatch = errors.New("signer does not own block")
)
