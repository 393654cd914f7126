package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// ReceiptArchive keeps a copy of every rendered receipt PDF on the local
// filesystem, one folder per team. Archiving is best effort: the render
// response never waits on or fails because of it.
type ReceiptArchive struct {
	baseDir string
	folders *TeamFolders
	logger  *zap.Logger
}

// NewReceiptArchive creates an archive rooted at baseDir.
func NewReceiptArchive(baseDir string, logger *zap.Logger) *ReceiptArchive {
	return &ReceiptArchive{
		baseDir: baseDir,
		folders: NewTeamFolders(baseDir, logger),
		logger:  logger,
	}
}

// Store writes a rendered PDF into the team's folder and returns the full
// path. An existing file with the same name is overwritten: re-rendering a
// receipt replaces its archived copy.
func (a *ReceiptArchive) Store(teamID, filename string, data []byte) (string, error) {
	folder, err := a.folders.EnsureTeamFolder(teamID)
	if err != nil {
		return "", err
	}

	fullPath := filepath.Join(folder, filepath.Base(filename))
	if err := a.validatePath(fullPath); err != nil {
		return "", err
	}

	if err := os.WriteFile(fullPath, data, 0644); err != nil {
		a.logger.Error("Failed to write archived receipt",
			zap.String("path", fullPath),
			zap.Error(err))
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	a.logger.Debug("Receipt archived",
		zap.String("team_id", teamID),
		zap.String("path", fullPath),
		zap.Int("size", len(data)))

	return fullPath, nil
}

// validatePath checks that the path resolves inside the archive root.
func (a *ReceiptArchive) validatePath(fullPath string) error {
	absPath, err := filepath.Abs(fullPath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	absBase, err := filepath.Abs(a.baseDir)
	if err != nil {
		return fmt.Errorf("failed to resolve base path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) && absPath != absBase {
		return fmt.Errorf("path escapes archive root: %s", fullPath)
	}

	return nil
}
