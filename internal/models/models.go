package models

import (
	"math"
	"time"
)

// Status is the lifecycle state of a claim. Transitions happen only through
// the decision rules: submitted -> rejected | settled | processing.
type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusPending    Status = "pending" // legacy alias for submitted, still present in old data
	StatusProcessing Status = "processing"
	StatusSettled    Status = "settled"
	StatusRejected   Status = "rejected"
)

// Channel is the intake path a claim arrived through.
type Channel string

const (
	ChannelPortal Channel = "portal"
	ChannelPaper  Channel = "paper"
	ChannelImport Channel = "import"
)

type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

type RiskTier string

const (
	RiskLow    RiskTier = "low"
	RiskMedium RiskTier = "medium"
	RiskHigh   RiskTier = "high"
)

type Location struct {
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
}

type Incident struct {
	Date        string   `json:"date,omitempty"`
	Type        string   `json:"type,omitempty"`
	Description string   `json:"description,omitempty"`
	Location    Location `json:"location"`
}

type ValidationIssue struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

type FraudAssessment struct {
	Score   int      `json:"score"`
	Risk    RiskTier `json:"risk"`
	Reasons []string `json:"reasons"`
}

type Decision struct {
	Status Status  `json:"status"`
	Reason string  `json:"reason"`
	Payout float64 `json:"payout"`
}

// Claim is the canonical record every ingestion adapter produces and every
// pipeline stage consumes. Validation, Fraud and Decision hold the snapshot
// of the last pipeline run.
type Claim struct {
	ID          string            `json:"id"`
	ClaimantID  string            `json:"claimantId,omitempty"`
	PolicyID    string            `json:"policyId,omitempty"`
	Incident    Incident          `json:"incident"`
	Amount      float64           `json:"amount"`
	Attachments []string          `json:"attachments"`
	Channel     Channel           `json:"channel,omitempty"`
	Status      Status            `json:"status"`
	Validation  []ValidationIssue `json:"validation,omitempty"`
	Fraud       *FraudAssessment  `json:"fraud,omitempty"`
	Decision    *Decision         `json:"decision,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

func (c Claim) Key() string { return c.ID }

// Pending reports whether the claim is still waiting for a pipeline run.
func (c Claim) Pending() bool {
	return c.Status == StatusSubmitted || c.Status == StatusPending
}

// HasValidAmount reports whether the claimed amount is a finite positive number.
func (c Claim) HasValidAmount() bool {
	return c.Amount > 0 && !math.IsInf(c.Amount, 0) && !math.IsNaN(c.Amount)
}

type Name struct {
	First string `json:"first,omitempty"`
	Last  string `json:"last,omitempty"`
}

type Address struct {
	Line1   string `json:"line1,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Zip     string `json:"zip,omitempty"`
	Country string `json:"country,omitempty"`
}

// Person is read-only input to the pipeline; it is never mutated here.
type Person struct {
	ID      string   `json:"id"`
	Email   string   `json:"email,omitempty"`
	Phone   string   `json:"phone,omitempty"`
	SSN     string   `json:"ssn,omitempty"`
	Name    *Name    `json:"name,omitempty"`
	Address *Address `json:"address,omitempty"`
}

func (p Person) Key() string { return p.ID }

// Policy is read-only input to the pipeline. CoverageLimit is a pointer so an
// uncapped policy (no limit recorded) is distinguishable from a zero limit.
type Policy struct {
	ID            string   `json:"id"`
	PersonID      string   `json:"personId,omitempty"`
	PolicyNumber  string   `json:"policyNumber,omitempty"`
	Product       string   `json:"product,omitempty"`
	Deductible    float64  `json:"deductible"`
	CoverageLimit *float64 `json:"coverageLimit,omitempty"`
	Active        bool     `json:"active"`
	StartDate     string   `json:"startDate,omitempty"`
	EndDate       string   `json:"endDate,omitempty"`
}

func (p Policy) Key() string { return p.ID }

// HasErrors reports whether any issue in the list is error severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, issue := range issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}
