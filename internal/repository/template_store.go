package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/models"
)

// TemplateStore is an in-memory, read-mostly store of business templates.
// Persistence proper lives in an external collaborator; this store backs
// the server wiring and tests with the same contract.
type TemplateStore struct {
	mu     sync.RWMutex
	byTeam map[string][]*models.BusinessTemplate
	logger *zap.Logger
}

// NewTemplateStore creates an empty template store.
func NewTemplateStore(logger *zap.Logger) *TemplateStore {
	return &TemplateStore{
		byTeam: make(map[string][]*models.BusinessTemplate),
		logger: logger,
	}
}

// Save validates and stores a template, assigning an ID when absent. A
// template marked default clears the default flag on the team's others,
// preserving the one-default-per-tenant invariant.
func (s *TemplateStore) Save(tmpl *models.BusinessTemplate) error {
	if err := tmpl.Validate(); err != nil {
		return fmt.Errorf("invalid template: %w", err)
	}
	if tmpl.ID == "" {
		tmpl.ID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.byTeam[tmpl.TeamID]
	if tmpl.IsDefault {
		for _, existing := range list {
			existing.IsDefault = false
		}
	}

	for i, existing := range list {
		if existing.ID == tmpl.ID {
			list[i] = tmpl
			return nil
		}
	}
	s.byTeam[tmpl.TeamID] = append(list, tmpl)

	s.logger.Debug("Template saved",
		zap.String("team_id", tmpl.TeamID),
		zap.String("template_id", tmpl.ID),
		zap.Bool("is_default", tmpl.IsDefault))
	return nil
}

// DefaultTemplate returns the team's default template, or nil when the
// team has none.
func (s *TemplateStore) DefaultTemplate(_ context.Context, teamID string) (*models.BusinessTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tmpl := range s.byTeam[teamID] {
		if tmpl.IsDefault {
			return tmpl, nil
		}
	}
	return nil, nil
}

// ByID returns a template by its identifier.
func (s *TemplateStore) ByID(teamID, id string) (*models.BusinessTemplate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, tmpl := range s.byTeam[teamID] {
		if tmpl.ID == id {
			return tmpl, nil
		}
	}
	return nil, fmt.Errorf("template not found: %s", id)
}
