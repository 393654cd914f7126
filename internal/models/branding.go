package models

// DefaultTableColor is the items-table accent color used when the tenant
// has no branding preferences.
const DefaultTableColor = "#3b82f6"

// BrandingPreferences holds tenant-level rendering defaults. Receipt-level
// business fields take precedence over these per field, not all-or-nothing.
type BrandingPreferences struct {
	TeamID             string `json:"teamId,omitempty"`
	BusinessName       string `json:"businessName,omitempty"`
	BusinessAddress    string `json:"businessAddress,omitempty"`
	BusinessPhone      string `json:"businessPhone,omitempty"`
	BusinessEmail      string `json:"businessEmail,omitempty"`
	LogoURL            string `json:"logoUrl,omitempty"`
	TableColor         string `json:"tableColor,omitempty"`
	FooterThankYouText string `json:"footerThankYouText,omitempty"`
	FooterContactInfo  string `json:"footerContactInfo,omitempty"`
}
