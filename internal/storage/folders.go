package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"go.uber.org/zap"
)

// TeamFolders manages the per-team directories under the archive root.
type TeamFolders struct {
	baseDir string
	logger  *zap.Logger
}

// NewTeamFolders creates a TeamFolders rooted at baseDir.
func NewTeamFolders(baseDir string, logger *zap.Logger) *TeamFolders {
	return &TeamFolders{
		baseDir: baseDir,
		logger:  logger,
	}
}

// EnsureTeamFolder creates the team's folder if needed and returns its path.
func (m *TeamFolders) EnsureTeamFolder(teamID string) (string, error) {
	if teamID == "" {
		return "", fmt.Errorf("cannot create folder: empty team ID")
	}

	safeName := m.SanitizeFolderName(teamID)
	if safeName == "" {
		return "", fmt.Errorf("cannot create folder: team ID %q has no safe characters", teamID)
	}
	folderPath := filepath.Join(m.baseDir, safeName)

	if err := os.MkdirAll(folderPath, 0755); err != nil {
		m.logger.Error("Failed to create team folder",
			zap.String("team_id", teamID),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to create folder: %w", err)
	}

	return folderPath, nil
}

// TeamFolderPath returns the path for a team's folder without creating it.
func (m *TeamFolders) TeamFolderPath(teamID string) string {
	return filepath.Join(m.baseDir, m.SanitizeFolderName(teamID))
}

// FolderExists reports whether the team's folder already exists.
func (m *TeamFolders) FolderExists(teamID string) bool {
	info, err := os.Stat(m.TeamFolderPath(teamID))
	if err != nil {
		return false
	}
	return info.IsDir()
}

// RemoveTeamFolder deletes a team's folder and everything in it.
// Removing a folder that does not exist is a no-op.
func (m *TeamFolders) RemoveTeamFolder(teamID string) error {
	folderPath := m.TeamFolderPath(teamID)

	if _, err := os.Stat(folderPath); os.IsNotExist(err) {
		return nil
	}

	if err := os.RemoveAll(folderPath); err != nil {
		m.logger.Error("Failed to delete team folder",
			zap.String("team_id", teamID),
			zap.String("folder_path", folderPath),
			zap.Error(err))
		return fmt.Errorf("failed to delete folder: %w", err)
	}

	return nil
}

var unsafeFolderChars = regexp.MustCompile(`[^a-zA-Z0-9\-_]`)

// SanitizeFolderName strips path separators and special characters so a
// team ID can never escape the archive root.
func (m *TeamFolders) SanitizeFolderName(name string) string {
	name = strings.ReplaceAll(name, "..", "")
	name = strings.ReplaceAll(name, "/", "")
	name = strings.ReplaceAll(name, "\\", "")
	return unsafeFolderChars.ReplaceAllString(name, "")
}
