// Package model defines domain values shared by the multichain services and repositories.
package model

// Verdict is the categorical outcome of validating a block against known history.
type Verdict string

var (
	// VerdictValid means both neighbours, or the successor of a genesis block, confirm the block.
	VerdictValid Verdict = "valid"
	// VerdictInvalid means at least one violation was found.
	VerdictInvalid Verdict = "invalid"
	// VerdictNoInfo means nothing is known about the chain around the block.
	VerdictNoInfo Verdict = "no-info"
	// VerdictPartial means neither side is adjacent to the block.
	VerdictPartial Verdict = "partial"
	// VerdictPartialPrevious means the preceding block is missing.
	VerdictPartialPrevious Verdict = "partial-prev"
	// VerdictPartialNext means the following block is missing.
	VerdictPartialNext Verdict = "partial-next"
)

// Accepted reports whether a block with this verdict may be stored.
func (v Verdict) Accepted() bool {
	switch v {
	case VerdictValid, VerdictNoInfo, VerdictPartial, VerdictPartialPrevious, VerdictPartialNext:
		return true
	default:
		return false
	}
}
