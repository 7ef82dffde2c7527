package designs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOnboardingSubmission_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*OnboardingSubmission)
		wantErr string
	}{
		{"valid", func(s *OnboardingSubmission) {}, ""},
		{"short company name", func(s *OnboardingSubmission) {
			s.CompanyInfo.CompanyName = "A"
		}, "company name"},
		{"short description", func(s *OnboardingSubmission) {
			s.CompanyInfo.Description = "too short"
		}, "description"},
		{"short target audience", func(s *OnboardingSubmission) {
			s.ServiceInfo.TargetAudience = "abc"
		}, "target audience"},
		{"short selling points", func(s *OnboardingSubmission) {
			s.ServiceInfo.UniqueSellingPoints = "short"
		}, "selling points"},
		{"no services", func(s *OnboardingSubmission) {
			s.ServiceInfo.MainServices = nil
		}, "main service"},
		{"complexity too low", func(s *OnboardingSubmission) {
			s.DesignPreferences.Complexity = 0
		}, "complexity"},
		{"complexity too high", func(s *OnboardingSubmission) {
			s.DesignPreferences.Complexity = 6
		}, "complexity"},
		{"whitespace-only name rejected", func(s *OnboardingSubmission) {
			s.CompanyInfo.CompanyName = "   "
		}, "company name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := sampleSubmission()
			tt.mutate(&sub)

			err := sub.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestDesign_Normalize(t *testing.T) {
	d := Design{}
	d.Normalize()

	assert.NotNil(t, d.Features)
	assert.NotNil(t, d.Layout.Sections)
	assert.Empty(t, d.Features)
}
