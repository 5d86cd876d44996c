package pipeline

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pasha-github/claimsaipocbuilder1/internal/ingest"
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
	"github.com/pasha-github/claimsaipocbuilder1/internal/notify"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, n notify.Notification) []notify.ChannelResult {
	args := m.Called(ctx, n)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]notify.ChannelResult)
}

func silentLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func coverageLimit(v float64) *float64 { return &v }

func seededProcessor(t *testing.T) (*Processor, *store.Store, *MockNotifier) {
	t.Helper()

	st := store.NewFileStore(t.TempDir())
	ctx := context.Background()

	require.NoError(t, st.Persons.Append(ctx, models.Person{
		ID:    "P-1001",
		Email: "john.doe@example.com",
		Name:  &models.Name{First: "John", Last: "Doe"},
	}))
	require.NoError(t, st.Policies.Append(ctx, models.Policy{
		ID: "POL-7788", PersonID: "P-1001", Deductible: 100,
		CoverageLimit: coverageLimit(5000), Active: true,
		StartDate: "2020-01-01", EndDate: "2030-12-31",
	}))

	notifier := new(MockNotifier)
	notifier.On("Send", mock.Anything, mock.Anything).Return(nil)

	return New(st, notifier, silentLogger()), st, notifier
}

func newDraft() models.Claim {
	now := time.Now().UTC()
	return models.Claim{
		ID:         "CLM-1",
		ClaimantID: "P-1001",
		PolicyID:   "POL-7788",
		Incident: models.Incident{
			Date: "2024-03-10",
			Type: "AutoCollision",
		},
		Amount:      500,
		Attachments: []string{},
		Channel:     models.ChannelPortal,
		Status:      models.StatusSubmitted,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func TestProcessor_Process(t *testing.T) {
	ctx := context.Background()

	t.Run("should settle the low-risk low-amount example with payout 400", func(t *testing.T) {
		p, st, notifier := seededProcessor(t)
		require.NoError(t, st.Claims.Append(ctx, newDraft()))

		claim, err := p.Process(ctx, "CLM-1")

		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, models.StatusSettled, claim.Status)
		assert.Empty(t, claim.Validation)
		require.NotNil(t, claim.Fraud)
		assert.Equal(t, 5, claim.Fraud.Score)
		assert.Equal(t, models.RiskLow, claim.Fraud.Risk)
		require.NotNil(t, claim.Decision)
		assert.Equal(t, 400.0, claim.Decision.Payout)
		assert.Equal(t, "Auto-approved: low risk, low amount", claim.Decision.Reason)

		// the persisted record carries the full snapshot
		stored, err := st.Claims.Get(ctx, "CLM-1")
		require.NoError(t, err)
		assert.Equal(t, models.StatusSettled, stored.Status)
		require.NotNil(t, stored.Decision)
		assert.Equal(t, 400.0, stored.Decision.Payout)

		notifier.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("should queue the high-amount paper example with payout capped at 5000", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		draft := newDraft()
		draft.Amount = 4800
		draft.Channel = models.ChannelPaper
		require.NoError(t, st.Claims.Append(ctx, draft))

		claim, err := p.Process(ctx, "CLM-1")

		require.NoError(t, err)
		require.NotNil(t, claim)
		// paper + no attachments = 15, still low risk, but amount > 1000
		assert.Equal(t, models.StatusProcessing, claim.Status)
		assert.Equal(t, "Queued for adjuster review", claim.Decision.Reason)
		assert.Equal(t, 4700.0, claim.Decision.Payout)
	})

	t.Run("should reject a claim referencing an unknown policy", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		draft := newDraft()
		draft.PolicyID = "POL-404"
		require.NoError(t, st.Claims.Append(ctx, draft))

		claim, err := p.Process(ctx, "CLM-1")

		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, models.StatusRejected, claim.Status)
		assert.Equal(t, "Validation errors", claim.Decision.Reason)
		assert.Zero(t, claim.Decision.Payout)
		assert.True(t, models.HasErrors(claim.Validation))
	})

	t.Run("should be a no-op for an unknown claim id", func(t *testing.T) {
		p, _, notifier := seededProcessor(t)

		claim, err := p.Process(ctx, "CLM-404")

		require.NoError(t, err)
		assert.Nil(t, claim)
		notifier.AssertNotCalled(t, "Send")
	})

	t.Run("should be idempotent over unchanged inputs", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		require.NoError(t, st.Claims.Append(ctx, newDraft()))

		first, err := p.Process(ctx, "CLM-1")
		require.NoError(t, err)
		second, err := p.Process(ctx, "CLM-1")
		require.NoError(t, err)

		assert.Equal(t, first.Status, second.Status)
		assert.Equal(t, first.Decision, second.Decision)
		assert.Equal(t, first.Fraud, second.Fraud)
		assert.Equal(t, first.Validation, second.Validation)
	})

	t.Run("should send the masked claimant in the notification body", func(t *testing.T) {
		p, st, notifier := seededProcessor(t)
		require.NoError(t, st.Claims.Append(ctx, newDraft()))

		_, err := p.Process(ctx, "CLM-1")
		require.NoError(t, err)

		sent := notifier.Calls[0].Arguments.Get(1).(notify.Notification)
		assert.Equal(t, "Claim CLM-1: settled", sent.Subject)
		assert.Equal(t, "john.doe@example.com", sent.Recipient)
		assert.Contains(t, sent.Body, "J*** D**")
		assert.Contains(t, sent.Body, "j******e@example.com")
		assert.NotContains(t, sent.Body, "John")
	})
}

func TestProcessor_Submit(t *testing.T) {
	ctx := context.Background()

	t.Run("should append and process in one call", func(t *testing.T) {
		p, st, _ := seededProcessor(t)

		claim, err := p.Submit(ctx, newDraft())

		require.NoError(t, err)
		require.NotNil(t, claim)
		assert.Equal(t, models.StatusSettled, claim.Status)

		stored, err := st.Claims.Get(ctx, claim.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusSettled, stored.Status)
	})

	t.Run("should disambiguate a colliding id instead of overwriting", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		first, err := p.Submit(ctx, newDraft())
		require.NoError(t, err)

		second, err := p.Submit(ctx, newDraft())
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assert.True(t, strings.HasPrefix(second.ID, "CLM-1-"))

		all, err := st.Claims.ReadAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("should mint an id for a draft without one", func(t *testing.T) {
		p, _, _ := seededProcessor(t)
		draft := newDraft()
		draft.ID = ""

		claim, err := p.Submit(ctx, draft)

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(claim.ID, "CLM-"))
	})
}

func TestProcessor_ImportBatch(t *testing.T) {
	ctx := context.Background()

	t.Run("should import dataset policies and process every claim", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		raw := []byte("policy_number,policy_deductable,incident_city,incident_state,incident_date,incident_type,collision_type,incident_severity,authorities_contacted,total_claim_amount\n" +
			"521585,1000,Columbus,SC,25-1-2015,Multi-vehicle Collision,Side Collision,Major Damage,Police,71610\n" +
			"521585,1000,Riverwood,VA,21-1-2015,Single Vehicle Collision,?,Minor Damage,?,5070\n")

		processed, err := p.ImportBatch(ctx, raw, ingest.FormatDataset)

		require.NoError(t, err)
		require.Len(t, processed, 2)
		for _, claim := range processed {
			assert.NotEqual(t, models.StatusSubmitted, claim.Status)
			assert.NotNil(t, claim.Decision)
		}

		policy, err := st.Policies.Get(ctx, "POL-521585")
		require.NoError(t, err)
		assert.Equal(t, "521585", policy.PolicyNumber)
	})

	t.Run("should tolerate re-importing the same policies", func(t *testing.T) {
		p, _, _ := seededProcessor(t)
		raw := []byte("policy_number,incident_date,total_claim_amount\n900,1-1-2015,100\n")

		_, err := p.ImportBatch(ctx, raw, ingest.FormatDataset)
		require.NoError(t, err)
		_, err = p.ImportBatch(ctx, raw, ingest.FormatDataset)
		require.NoError(t, err)
	})

	t.Run("should surface a malformed format hint", func(t *testing.T) {
		p, _, _ := seededProcessor(t)

		_, err := p.ImportBatch(ctx, []byte("x"), ingest.Format("pdf"))

		assert.ErrorIs(t, err, ingest.ErrMalformedInput)
	})
}

func TestProcessor_RunPending(t *testing.T) {
	ctx := context.Background()

	t.Run("should process every submitted claim and leave settled ones alone", func(t *testing.T) {
		p, st, _ := seededProcessor(t)
		for _, id := range []string{"CLM-A", "CLM-B", "CLM-C"} {
			draft := newDraft()
			draft.ID = id
			require.NoError(t, st.Claims.Append(ctx, draft))
		}

		processed, err := p.RunPending(ctx, 4)

		require.NoError(t, err)
		assert.Equal(t, 3, processed)

		all, err := st.Claims.ReadAll(ctx)
		require.NoError(t, err)
		for _, claim := range all {
			assert.False(t, claim.Pending())
		}

		// nothing left to do on a second run
		processed, err = p.RunPending(ctx, 4)
		require.NoError(t, err)
		assert.Zero(t, processed)
	})
}
