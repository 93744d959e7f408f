package validator

// Violation messages reported in Result.Violations.
const (
	MsgGenesisPreviousHash  = "Sequence number implies previous hash should be Genesis ID"
	MsgNotGenesisPrevHash   = "Sequence number implies previous hash should not be Genesis ID"
	MsgGenesisTotalUp       = "Genesis block invalid total_up and/or up"
	MsgGenesisTotalDown     = "Genesis block invalid total_down and/or down"
	MsgTotalUpBelowPrev     = "Total up is lower than expected compared to the preceding block"
	MsgTotalDownBelowPrev   = "Total down is lower than expected compared to the preceding block"
	MsgTotalUpAboveNext     = "Total up is higher than expected compared to the next block"
	MsgTotalDownAboveNext   = "Total down is higher than expected compared to the next block"
	MsgPreviousHashMismatch = "Previous hash is not equal to the hash id of the previous block"
	MsgDoubleSign           = "Double sign fraud"
	MsgNoInfo               = "No blocks are known for this member before or after the queried sequence number"
)
