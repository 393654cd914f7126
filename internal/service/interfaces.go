package service

import (
	"context"

	"github.com/ledgerline/receipt-engine/internal/document"
	"github.com/ledgerline/receipt-engine/internal/models"
)

// TemplateProviderInterface supplies the tenant's default business
// template. Returning (nil, nil) means the tenant has none.
type TemplateProviderInterface interface {
	DefaultTemplate(ctx context.Context, teamID string) (*models.BusinessTemplate, error)
}

// PreferencesProviderInterface supplies tenant branding preferences.
// Returning (nil, nil) means the tenant never saved any.
type PreferencesProviderInterface interface {
	Preferences(ctx context.Context, teamID string) (*models.BrandingPreferences, error)
}

// LogoFetcherInterface resolves a logo URL or data URI to raw image bytes.
type LogoFetcherInterface interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// PDFRendererInterface turns an assembled document tree into PDF bytes.
type PDFRendererInterface interface {
	Render(doc *document.Document, logo []byte) ([]byte, error)
}

// ArchiverInterface keeps copies of rendered PDFs. Store returns the
// location of the archived copy.
type ArchiverInterface interface {
	Store(teamID, filename string, data []byte) (string, error)
}
