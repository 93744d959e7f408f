package model

import "time"

// Validation is the audit record of one validator run.
type Validation struct {
	PublicKey      string
	SequenceNumber uint32
	Hash           string
	Verdict        Verdict
	Violations     []string
	ValidatedAt    time.Time
}
