package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/pasha-github/claimsaipocbuilder1/internal/ingest"
	"github.com/pasha-github/claimsaipocbuilder1/internal/models"
	"github.com/pasha-github/claimsaipocbuilder1/internal/pipeline"
	"github.com/pasha-github/claimsaipocbuilder1/internal/store"
)

type ClaimService struct {
	store    *store.Store
	pipeline *pipeline.Processor
	log      *logrus.Logger
}

func NewClaimService(st *store.Store, p *pipeline.Processor, log *logrus.Logger) *ClaimService {
	return &ClaimService{store: st, pipeline: p, log: log}
}

// Stats aggregates over the claims collection.
type Stats struct {
	Count    int            `json:"count"`
	Amount   float64        `json:"amount"`
	Payout   float64        `json:"payout"`
	ByStatus map[string]int `json:"byStatus"`
}

func (s *ClaimService) ListClaims(w http.ResponseWriter, r *http.Request) {
	claims, err := s.store.Claims.ReadAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read claims")
		return
	}
	if claims == nil {
		claims = []models.Claim{}
	}
	s.writeJSON(w, http.StatusOK, claims)
}

func (s *ClaimService) GetClaim(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	claim, err := s.store.Claims.Get(r.Context(), id)
	if errors.Is(err, store.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "Not found")
		return
	}
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read claim")
		return
	}
	s.writeJSON(w, http.StatusOK, claim)
}

// SubmitClaim takes a structured claim payload, runs it through the
// structured-payload adapter and the full decisioning pipeline, and returns
// the processed record.
func (s *ClaimService) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	draft, err := ingest.ParseJSONClaim(raw)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	draft.Channel = models.ChannelPortal

	processed, err := s.pipeline.Submit(r.Context(), draft)
	if err != nil {
		s.log.WithError(err).Error("claim submission failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to process claim")
		return
	}
	s.writeJSON(w, http.StatusCreated, processed)
}

// ImportClaims runs a bulk import: raw bytes plus a ?format= hint.
func (s *ClaimService) ImportClaims(w http.ResponseWriter, r *http.Request) {
	format := ingest.Format(r.URL.Query().Get("format"))
	if format == "" {
		format = ingest.FormatDataset
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "Failed to read body")
		return
	}

	processed, err := s.pipeline.ImportBatch(r.Context(), raw, format)
	if errors.Is(err, ingest.ErrMalformedInput) {
		s.writeError(w, http.StatusBadRequest, "Malformed import payload")
		return
	}
	if err != nil {
		s.log.WithError(err).Error("claim import failed")
		s.writeError(w, http.StatusInternalServerError, "Failed to import claims")
		return
	}
	s.writeJSON(w, http.StatusOK, processed)
}

func (s *ClaimService) GetStats(w http.ResponseWriter, r *http.Request) {
	claims, err := s.store.Claims.ReadAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read claims")
		return
	}

	stats := Stats{ByStatus: make(map[string]int)}
	for _, c := range claims {
		stats.Count++
		stats.Amount += c.Amount
		stats.ByStatus[string(c.Status)]++
		if c.Decision != nil {
			stats.Payout += c.Decision.Payout
		}
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// GetPolicy looks a policy up by id or policy number and returns it together
// with its owning person.
func (s *ClaimService) GetPolicy(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	policies, err := s.store.Policies.ReadAll(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "Failed to read policies")
		return
	}

	var policy *models.Policy
	for i := range policies {
		if policies[i].ID == id || policies[i].PolicyNumber == id {
			policy = &policies[i]
			break
		}
	}
	if policy == nil {
		s.writeError(w, http.StatusNotFound, "Policy not found")
		return
	}

	var person *models.Person
	if policy.PersonID != "" {
		if found, err := s.store.Persons.Get(r.Context(), policy.PersonID); err == nil {
			person = &found
		}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{"policy": policy, "person": person})
}

func (s *ClaimService) writeJSON(w http.ResponseWriter, code int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.log.WithError(err).Error("failed to encode response")
	}
}

func (s *ClaimService) writeError(w http.ResponseWriter, code int, message string) {
	s.writeJSON(w, code, map[string]string{"error": message})
}
