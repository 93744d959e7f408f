package model

// Envelope is one unit of inbound work: concatenated packed blocks.
type Envelope struct {
	ID      string
	Payload []byte
}

// Outcome is how an envelope was settled.
type Outcome string

var (
	OutcomeDone     Outcome = "done"
	OutcomeRejected Outcome = "rejected"
)
