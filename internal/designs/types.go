package designs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrDesignNotFound = errors.New("design not found")
)

// OnboardingSubmission is the wizard's output. It is consumed immediately by
// the generator and never persisted as a unit.
type OnboardingSubmission struct {
	CompanyInfo       CompanyInfo       `json:"company_info"`
	ServiceInfo       ServiceInfo       `json:"service_info"`
	DesignPreferences DesignPreferences `json:"design_preferences"`
}

type CompanyInfo struct {
	CompanyName string `json:"company_name"`
	Industry    string `json:"industry"`
	Description string `json:"description"`
}

type ServiceInfo struct {
	TargetAudience      string   `json:"target_audience"`
	MainServices        []string `json:"main_services"`
	UniqueSellingPoints string   `json:"unique_selling_points"`
}

type DesignPreferences struct {
	ColorScheme      string   `json:"color_scheme"`
	Complexity       int      `json:"complexity"`
	MustHaveFeatures []string `json:"must_have_features"`
	ImageStyle       string   `json:"image_style"`
}

// Validate rejects a submission before any external call is made.
func (s *OnboardingSubmission) Validate() error {
	if len(strings.TrimSpace(s.CompanyInfo.CompanyName)) < 2 {
		return fmt.Errorf("company name must be at least 2 characters")
	}
	if len(strings.TrimSpace(s.CompanyInfo.Description)) < 10 {
		return fmt.Errorf("company description must be at least 10 characters")
	}
	if len(strings.TrimSpace(s.ServiceInfo.TargetAudience)) < 5 {
		return fmt.Errorf("target audience must be at least 5 characters")
	}
	if len(strings.TrimSpace(s.ServiceInfo.UniqueSellingPoints)) < 10 {
		return fmt.Errorf("unique selling points must be at least 10 characters")
	}
	if len(s.ServiceInfo.MainServices) == 0 {
		return fmt.Errorf("at least one main service is required")
	}
	if s.DesignPreferences.Complexity < 1 || s.DesignPreferences.Complexity > 5 {
		return fmt.Errorf("complexity must be between 1 and 5")
	}
	return nil
}

type ColorPalette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
	Text       string `json:"text"`
}

type Typography struct {
	HeadingFont string `json:"heading_font"`
	BodyFont    string `json:"body_font"`
}

type Layout struct {
	Type     string   `json:"type"`
	Sections []string `json:"sections"`
}

type PreviewImages struct {
	Desktop string `json:"desktop"`
	Mobile  string `json:"mobile"`
	Tablet  string `json:"tablet"`
}

// Design is a website style/content concept generated for a company.
// Immutable once saved.
type Design struct {
	ID            string        `json:"id"`
	CompanyName   string        `json:"company_name"`
	DesignName    string        `json:"design_name"`
	Description   string        `json:"description"`
	ColorPalette  ColorPalette  `json:"color_palette"`
	Typography    Typography    `json:"typography"`
	Layout        Layout        `json:"layout"`
	Features      []string      `json:"features"`
	ImageStyle    string        `json:"image_style"`
	PreviewImages PreviewImages `json:"preview_images"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Normalize coerces missing optional arrays to empty so no nils reach
// persistence or the wire.
func (d *Design) Normalize() {
	if d.Features == nil {
		d.Features = []string{}
	}
	if d.Layout.Sections == nil {
		d.Layout.Sections = []string{}
	}
}
