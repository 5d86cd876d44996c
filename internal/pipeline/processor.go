// Package pipeline sequences claim decisioning: load related records, run
// validation, fraud scoring and the status decision, persist the result
// atomically, then notify stakeholders best-effort.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/pasha-github/claimsaipocbuilder1/internal/ingest"
	"github.com/pasha-github/claimsaipocbuilder1/internal/mask"
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
	"github.com/pasha-github/claimsaipocbuilder1/internal/notify"
	"github.com/pasha-github/claimsaipocbuilder1/internal/rules"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

type Processor struct {
	store    *store.Store
	notifier notify.Notifier
	log      *logrus.Logger
}

func New(st *store.Store, notifier notify.Notifier, log *logrus.Logger) *Processor {
	return &Processor{store: st, notifier: notifier, log: log}
}

// Process runs one full decisioning pass over the claim with the given id.
// An unknown id is an idempotent no-op: (nil, nil). Everything the rules see
// is re-read fresh from the store; nothing is cached across invocations.
func (p *Processor) Process(ctx context.Context, claimID string) (*models.Claim, error) {
	claim, err := p.store.Claims.Get(ctx, claimID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	person, err := p.loadPerson(ctx, claim.ClaimantID)
	if err != nil {
		return nil, err
	}
	policy, err := p.loadPolicy(ctx, claim.PolicyID)
	if err != nil {
		return nil, err
	}
	history, err := p.loadHistory(ctx, claim.ClaimantID)
	if err != nil {
		return nil, err
	}

	validation := rules.Validate(claim, person, policy, history)
	fraud := rules.Score(claim, history)
	decision := rules.Decide(validation, fraud, claim, policy)

	// One atomic merge so a reader never sees a decision with stale
	// validation or vice versa.
	updated, err := p.store.Claims.UpdateByKey(ctx, claim.ID, func(c models.Claim) models.Claim {
		c.Status = decision.Status
		c.Decision = &decision
		c.Fraud = &fraud
		c.Validation = validation
		c.UpdatedAt = time.Now().UTC()
		return c
	})
	if err != nil {
		return nil, err
	}

	p.log.WithFields(logrus.Fields{
		"claim":  updated.ID,
		"status": updated.Status,
		"risk":   fraud.Risk,
		"payout": decision.Payout,
	}).Info("claim processed")

	p.notifyDecision(ctx, updated, person, decision)

	return &updated, nil
}

// Submit appends a drafted claim and immediately processes it. A colliding
// id is disambiguated with a timestamp suffix rather than overwritten.
func (p *Processor) Submit(ctx context.Context, draft models.Claim) (*models.Claim, error) {
	if draft.ID == "" {
		draft.ID = ingest.NewClaimID()
	}

	for {
		err := p.store.Claims.Append(ctx, draft)
		if err == nil {
			break
		}
		if !errors.Is(err, store.ErrDuplicateKey) {
			return nil, err
		}
		draft.ID = fmt.Sprintf("%s-%d", draft.ID, time.Now().UnixNano())
	}

	return p.Process(ctx, draft.ID)
}

// ImportBatch parses raw bytes with the adapter for the format hint,
// persists any synthesized policies, then submits and processes every
// drafted claim.
func (p *Processor) ImportBatch(ctx context.Context, raw []byte, format ingest.Format) ([]models.Claim, error) {
	batch, err := ingest.Parse(raw, format)
	if err != nil {
		return nil, err
	}

	for _, policy := range batch.Policies {
		err := p.store.Policies.Append(ctx, policy)
		if errors.Is(err, store.ErrDuplicateKey) {
			continue // already imported earlier
		}
		if err != nil {
			return nil, err
		}
	}

	processed := make([]models.Claim, 0, len(batch.Claims))
	for _, draft := range batch.Claims {
		claim, err := p.Submit(ctx, draft)
		if err != nil {
			return processed, err
		}
		if claim != nil {
			processed = append(processed, *claim)
		}
	}
	return processed, nil
}

func (p *Processor) loadPerson(ctx context.Context, id string) (*models.Person, error) {
	if id == "" {
		return nil, nil
	}
	person, err := p.store.Persons.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &person, nil
}

func (p *Processor) loadPolicy(ctx context.Context, id string) (*models.Policy, error) {
	if id == "" {
		return nil, nil
	}
	policy, err := p.store.Policies.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &policy, nil
}

// loadHistory returns every claim sharing the claimant id, including the
// claim under processing.
func (p *Processor) loadHistory(ctx context.Context, claimantID string) ([]models.Claim, error) {
	if claimantID == "" {
		return nil, nil
	}
	all, err := p.store.Claims.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	var history []models.Claim
	for _, c := range all {
		if c.ClaimantID == claimantID {
			history = append(history, c)
		}
	}
	return history, nil
}

// notifyDecision builds the masked payload and hands it to the notifier.
// Fire-and-forget: results are logged by the notifier, never returned.
func (p *Processor) notifyDecision(ctx context.Context, claim models.Claim, person *models.Person, decision models.Decision) {
	subject := fmt.Sprintf("Claim %s: %s", claim.ID, claim.Status)
	body := fmt.Sprintf("Status: %s\nReason: %s\nPayout: %g", claim.Status, decision.Reason, decision.Payout)

	recipient := ""
	if person != nil {
		recipient = person.Email
		masked := mask.Person(*person)
		if masked.Name != nil {
			body += fmt.Sprintf("\nClaimant: %s %s", masked.Name.First, masked.Name.Last)
		}
		if masked.Email != "" {
			body += fmt.Sprintf("\nContact: %s", masked.Email)
		}
	}

	p.notifier.Send(ctx, notify.Notification{
		Subject:   subject,
		Summary:   fmt.Sprintf("%s — %s", subject, decision.Reason),
		Body:      body,
		Recipient: recipient,
	})
}
