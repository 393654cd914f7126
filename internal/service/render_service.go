package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ledgerline/receipt-engine/internal/document"
	"github.com/ledgerline/receipt-engine/internal/models"
	"github.com/ledgerline/receipt-engine/pkg/utils"
)

// RenderService orchestrates one receipt render: it resolves the tenant's
// template, branding preferences, and logo through collaborator
// interfaces, then runs the pure assemble/render transform. Each fetch is
// awaited once before the transform; any fetch failure degrades to "no
// preferences" / "no template" / "no logo" with a warning instead of
// aborting the render. The context only gates the fetch step: the
// transform itself completes in microseconds.
type RenderService struct {
	templates   TemplateProviderInterface
	preferences PreferencesProviderInterface
	logos       LogoFetcherInterface
	renderer    PDFRendererInterface
	archiver    ArchiverInterface
	logger      *zap.Logger
}

// RenderInput bundles a receipt with optional inline overrides. A non-nil
// Template or Preferences suppresses the corresponding provider fetch.
type RenderInput struct {
	Receipt     *models.Receipt
	Template    *models.BusinessTemplate
	Preferences *models.BrandingPreferences
}

// NewRenderService creates a RenderService. A nil archiver disables
// archiving.
func NewRenderService(
	templates TemplateProviderInterface,
	preferences PreferencesProviderInterface,
	logos LogoFetcherInterface,
	renderer PDFRendererInterface,
	archiver ArchiverInterface,
	logger *zap.Logger,
) *RenderService {
	return &RenderService{
		templates:   templates,
		preferences: preferences,
		logos:       logos,
		renderer:    renderer,
		archiver:    archiver,
		logger:      logger,
	}
}

// RenderTree assembles the renderer-agnostic document tree for a receipt.
func (s *RenderService) RenderTree(ctx context.Context, in RenderInput) (*document.Document, error) {
	if in.Receipt == nil {
		return nil, ErrNilReceipt
	}

	tmpl, prefs := s.resolveInputs(ctx, in)

	doc, err := document.Assemble(in.Receipt, tmpl, prefs)
	if err != nil {
		s.logger.Error("Failed to assemble document",
			zap.String("receipt_number", in.Receipt.ReceiptNumber),
			zap.Error(err))
		return nil, fmt.Errorf("assemble document: %w", err)
	}
	return doc, nil
}

// Render produces the final PDF bytes and the download filename for a
// receipt.
func (s *RenderService) Render(ctx context.Context, in RenderInput) ([]byte, string, error) {
	doc, err := s.RenderTree(ctx, in)
	if err != nil {
		return nil, "", err
	}

	logo := s.fetchLogo(ctx, doc.Header.LogoURL)

	data, err := s.renderer.Render(doc, logo)
	if err != nil {
		s.logger.Error("Failed to render PDF",
			zap.String("receipt_number", in.Receipt.ReceiptNumber),
			zap.Error(err))
		return nil, "", fmt.Errorf("render pdf: %w", err)
	}

	filename := fmt.Sprintf("receipt-%s.pdf", utils.SanitizeFilename(in.Receipt.ReceiptNumber))
	s.archive(in.Receipt.TeamID, filename, data)

	s.logger.Info("Receipt rendered",
		zap.String("receipt_number", in.Receipt.ReceiptNumber),
		zap.Int("bytes", len(data)),
		zap.Int("items", len(in.Receipt.Items)))

	return data, filename, nil
}

// resolveInputs fills in the template and preferences the caller did not
// supply inline. Provider failures degrade to nil rather than aborting.
func (s *RenderService) resolveInputs(ctx context.Context, in RenderInput) (*models.BusinessTemplate, *models.BrandingPreferences) {
	tmpl := in.Template
	if tmpl == nil && s.templates != nil {
		fetched, err := s.templates.DefaultTemplate(ctx, in.Receipt.TeamID)
		if err != nil {
			s.logger.Warn("Template fetch failed, rendering without template",
				zap.String("team_id", in.Receipt.TeamID),
				zap.Error(err))
		} else {
			tmpl = fetched
		}
	}

	prefs := in.Preferences
	if prefs == nil && s.preferences != nil {
		fetched, err := s.preferences.Preferences(ctx, in.Receipt.TeamID)
		if err != nil {
			s.logger.Warn("Preferences fetch failed, rendering without preferences",
				zap.String("team_id", in.Receipt.TeamID),
				zap.Error(err))
		} else {
			prefs = fetched
		}
	}

	return tmpl, prefs
}

// archive keeps a best-effort copy of the rendered PDF. Failures are
// logged and never surface to the caller.
func (s *RenderService) archive(teamID, filename string, data []byte) {
	if s.archiver == nil {
		return
	}
	path, err := s.archiver.Store(teamID, filename, data)
	if err != nil {
		s.logger.Warn("Failed to archive rendered receipt",
			zap.String("team_id", teamID),
			zap.String("filename", filename),
			zap.Error(err))
		return
	}
	s.logger.Debug("Rendered receipt archived", zap.String("path", path))
}

// fetchLogo resolves the header logo to bytes. Any failure means the logo
// block is simply omitted.
func (s *RenderService) fetchLogo(ctx context.Context, url string) []byte {
	if url == "" || s.logos == nil {
		return nil
	}
	data, err := s.logos.Fetch(ctx, url)
	if err != nil {
		s.logger.Warn("Logo fetch failed, rendering without logo",
			zap.String("url", url),
			zap.Error(err))
		return nil
	}
	return data
}
