package progress

// CompletionPlan is the decision for one completion request against the
// current ledger state: whether the request is a no-op and whether a
// certificate must be issued.
type CompletionPlan struct {
	Skip            bool
	NeedCertificate bool
}

// PlanCompletion applies the at-most-once rules for the completion
// trigger. An already-completed ledger is skipped entirely, so repeating
// the trigger re-issues nothing and re-announces nothing. A ledger that
// was completed, unmarked and is being completed again keeps its stored
// certificate instead of getting a second one.
func PlanCompletion(isCompleted bool, certificateID string) CompletionPlan {
	return CompletionPlan{
		Skip:            isCompleted,
		NeedCertificate: !isCompleted && certificateID == "",
	}
}
