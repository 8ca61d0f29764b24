package progress

import (
	"fmt"
	"testing"
	"time"

	courseModels "scl/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerRecord struct {
	mods          []courseModels.CompletedModule
	isCompleted   bool
	completedAt   *time.Time
	certificateID string
}

// forceComplete mirrors the administrative trigger: plan against the
// current record, skip completed ones, fill the ledger from the live
// tree and issue a certificate only when the plan calls for it.
func forceComplete(rec *ledgerRecord, tree *Tree, issue func() string) {
	plan := PlanCompletion(rec.isCompleted, rec.certificateID)
	if plan.Skip {
		return
	}

	rec.mods = FullLedger(tree)
	if plan.NeedCertificate {
		rec.certificateID = issue()
	}

	now := time.Now()
	rec.isCompleted = true
	rec.completedAt = &now
}

func TestPlanCompletion(t *testing.T) {
	// fresh ledger: complete and issue
	plan := PlanCompletion(false, "")
	assert.False(t, plan.Skip)
	assert.True(t, plan.NeedCertificate)

	// already completed: full no-op
	plan = PlanCompletion(true, "CERT-abc")
	assert.True(t, plan.Skip)
	assert.False(t, plan.NeedCertificate)

	// unmarked after completion: complete again, keep the certificate
	plan = PlanCompletion(false, "CERT-abc")
	assert.False(t, plan.Skip)
	assert.False(t, plan.NeedCertificate)
}

// Completing an already-completed record changes nothing: same
// completedAt, same certificate, zero further issuance calls.
func TestCompletionTriggerIsIdempotent(t *testing.T) {
	tree := fixtureTree(2, 2)

	issued := 0
	issue := func() string {
		issued++
		return fmt.Sprintf("CERT-%d", issued)
	}

	rec := &ledgerRecord{}
	forceComplete(rec, tree, issue)

	require.True(t, rec.isCompleted)
	require.NotNil(t, rec.completedAt)
	assert.Equal(t, 1, issued)

	firstAt := *rec.completedAt
	firstCert := rec.certificateID

	forceComplete(rec, tree, issue)

	assert.Equal(t, 1, issued)
	assert.Equal(t, firstCert, rec.certificateID)
	assert.Equal(t, firstAt, *rec.completedAt)
}

// Force-completing a batch of 2 over a 2-module/4-lesson course issues
// exactly 2 certificates and fills both ledgers; a second run over the
// same batch issues 0 more.
func TestForceCompleteBatchIssuesOncePerMember(t *testing.T) {
	tree := fixtureTree(2, 2)

	issued := 0
	issue := func() string {
		issued++
		return fmt.Sprintf("CERT-%d", issued)
	}

	records := []*ledgerRecord{{}, {}}
	for _, rec := range records {
		forceComplete(rec, tree, issue)
	}

	assert.Equal(t, 2, issued)
	for _, rec := range records {
		summary := Reconcile(rec.mods, rec.isCompleted, tree)
		assert.Equal(t, 4, summary.Lessons.Completed)
		assert.True(t, rec.isCompleted)
		assert.NotEmpty(t, rec.certificateID)
	}

	for _, rec := range records {
		forceComplete(rec, tree, issue)
	}
	assert.Equal(t, 2, issued)
}

// An unmarked record completes again without a second certificate.
func TestRecompleteAfterUnmarkKeepsCertificate(t *testing.T) {
	tree := fixtureTree(2)

	issued := 0
	issue := func() string {
		issued++
		return "CERT-first"
	}

	rec := &ledgerRecord{}
	forceComplete(rec, tree, issue)
	require.Equal(t, 1, issued)

	// administrative unmark: flags reset, certificate stays
	rec.isCompleted = false
	rec.completedAt = nil

	forceComplete(rec, tree, issue)

	assert.Equal(t, 1, issued)
	assert.True(t, rec.isCompleted)
	assert.Equal(t, "CERT-first", rec.certificateID)
}
