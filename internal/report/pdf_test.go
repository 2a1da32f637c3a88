package report

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"health-intake/internal/intake"
)

func TestIsHeading(t *testing.T) {
	tests := []struct {
		para string
		want bool
	}{
		{"PATIENT SUMMARY", true},
		{"1. Patient Summary", true},
		{"Next steps: schedule labs", true},
		{"The patient reports chronic fatigue over several months.", false},
		{"fatigue and brain fog dominate", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isHeading(tt.para), "paragraph %q", tt.para)
	}
}

func TestLifestyleEntries(t *testing.T) {
	entries := lifestyleEntries(intake.Lifestyle{
		StressLevel:  "high",
		SleepQuality: "poor",
	})
	assert.Equal(t, []string{"Stress Level: high", "Sleep Quality: poor"}, entries)

	assert.Empty(t, lifestyleEntries(intake.Lifestyle{}))
}

func TestTitleLabel(t *testing.T) {
	assert.Equal(t, "Stress Level", titleLabel("stress_level"))
	assert.Equal(t, "Diet Type", titleLabel("diet_type"))
}

func TestBuildProducesPDF(t *testing.T) {
	if !fontAvailable() {
		t.Skip("no DejaVu TTF installed")
	}

	r := NewRenderer(WithClock(func() time.Time {
		return time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	}))

	profile, err := intake.ProfileByName("screening")
	require.NoError(t, err)

	rec := intake.NewPatientRecord()
	rec.Demographics.Age = 29
	rec.Demographics.Gender = "female"
	rec.Symptoms = []string{"fatigue", "brain fog"}
	rec.MedicalHistory = []string{"thyroid"}
	rec.Lifestyle.StressLevel = "high"

	analysis := "PATIENT SUMMARY\n\nA 29 year old female reporting fatigue and brain fog.\n\n2. NEXT STEPS\n\nComprehensive panel recommended."

	pdf, err := r.Build(profile, rec, analysis)
	require.NoError(t, err)
	require.NotEmpty(t, pdf)
	assert.Equal(t, "%PDF", string(pdf[:4]))
}

func TestBuildFailsWithoutFont(t *testing.T) {
	r := NewRenderer(WithFontPaths("/nonexistent/font.ttf"))
	profile, err := intake.ProfileByName("screening")
	require.NoError(t, err)

	_, err = r.Build(profile, intake.NewPatientRecord(), "analysis")
	assert.Error(t, err)
}

func fontAvailable() bool {
	for _, path := range defaultFontPaths {
		if _, err := os.Stat(path); err == nil {
			return true
		}
	}
	return false
}
