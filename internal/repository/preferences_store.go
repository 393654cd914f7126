package repository

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/ledgerline/receipt-engine/pkg/utils"
)

// PreferencesStore is the in-memory branding preferences collaborator.
type PreferencesStore struct {
	mu     sync.RWMutex
	byTeam map[string]*models.BrandingPreferences
	logger *zap.Logger
}

// NewPreferencesStore creates an empty preferences store.
func NewPreferencesStore(logger *zap.Logger) *PreferencesStore {
	return &PreferencesStore{
		byTeam: make(map[string]*models.BrandingPreferences),
		logger: logger,
	}
}

// Save stores a team's branding preferences. A malformed table color is
// rejected here so the renderer never sees one.
func (s *PreferencesStore) Save(prefs *models.BrandingPreferences) error {
	if prefs.TableColor != "" {
		if err := utils.ValidateHexColor(prefs.TableColor); err != nil {
			return fmt.Errorf("invalid preferences: %w", err)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.byTeam[prefs.TeamID] = prefs

	s.logger.Debug("Preferences saved", zap.String("team_id", prefs.TeamID))
	return nil
}

// Preferences returns a team's branding preferences, or nil when the team
// never saved any. Absent preferences must not prevent rendering.
func (s *PreferencesStore) Preferences(_ context.Context, teamID string) (*models.BrandingPreferences, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.byTeam[teamID], nil
}
