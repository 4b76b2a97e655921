// Package prospect persists saved business leads and their pipeline state,
// and re-qualifies them when criteria or attributes change.
package prospect

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/lendstack/prospect-pipeline/internal/model"
	"github.com/lendstack/prospect-pipeline/internal/qualify"
)

// ErrNotFound is returned when a prospect ID does not exist.
var ErrNotFound = eris.New("prospect: not found")

// Status tracks a prospect through the loan-submission pipeline.
type Status string

const (
	StatusNew           Status = "new"
	StatusContacted     Status = "contacted"
	StatusDocsRequested Status = "documents_requested"
	StatusSubmitted     Status = "submitted"
	StatusApproved      Status = "approved"
	StatusDeclined      Status = "declined"
)

// ValidStatus reports whether s is a known pipeline status.
func ValidStatus(s Status) bool {
	switch s {
	case StatusNew, StatusContacted, StatusDocsRequested, StatusSubmitted, StatusApproved, StatusDeclined:
		return true
	}
	return false
}

// Prospect is a persisted business lead. Its qualification is recomputed on
// demand (criteria change, attribute edit), never continuously.
type Prospect struct {
	ID          string               `json:"id"`
	Record      model.BusinessRecord `json:"record"`
	Status      Status               `json:"status"`
	CreditScore *int                 `json:"credit_score,omitempty"`
	Notes       string               `json:"notes,omitempty"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ListFilter constrains a prospect listing.
type ListFilter struct {
	Status Status `json:"status,omitempty"`
	Limit  int    `json:"limit,omitempty"`
	Offset int    `json:"offset,omitempty"`
}

// Store is the persistence interface for prospects and the qualification
// criteria configuration row.
type Store interface {
	SaveProspect(ctx context.Context, p *Prospect) error
	GetProspect(ctx context.Context, id string) (*Prospect, error)
	ListProspects(ctx context.Context, filter ListFilter) ([]Prospect, error)
	UpdateProspect(ctx context.Context, p *Prospect) error
	DeleteProspect(ctx context.Context, id string) error

	// Criteria returns the saved qualification criteria, or the stock
	// defaults when none have been saved. Last write wins.
	Criteria(ctx context.Context) (qualify.Criteria, error)
	SetCriteria(ctx context.Context, c qualify.Criteria) error

	Migrate(ctx context.Context) error
	Close() error
}
