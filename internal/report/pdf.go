// Package report renders the screening report PDF from the patient record
// and the model-generated narrative analysis.
package report

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/signintech/gopdf"

	"health-intake/internal/intake"
)

const (
	fontName     = "DejaVu"
	fontBoldName = "DejaVu-Bold"

	pageTextWidth = 500
	bottomLimit   = 780 // A4 is 842pt high; leave a bottom margin
)

// Default font locations tried in order when none are configured. DejaVuSans
// ships with most Linux distributions.
var defaultFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
}

var boldFontPaths = []string{
	"/usr/share/fonts/ttf-dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/dejavu/DejaVuSans-Bold.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans-Bold.ttf",
}

// headingPattern flags analysis paragraphs rendered as section headers:
// all-caps lines or numbered items. Colon-containing paragraphs are also
// treated as headers (see isHeading).
var (
	allCapsPattern  = regexp.MustCompile(`^[A-Z\s]+$`)
	numberedPattern = regexp.MustCompile(`^\d+\.`)
)

// Renderer lays out intake reports with gopdf. Font paths are configurable
// so deployments without DejaVu in a standard location can point elsewhere.
type Renderer struct {
	fontPaths     []string
	boldFontPaths []string
	now           func() time.Time
}

type Option func(*Renderer)

// WithFontPaths overrides the candidate TTF paths for the regular face.
func WithFontPaths(paths ...string) Option {
	return func(r *Renderer) {
		if len(paths) > 0 {
			r.fontPaths = paths
		}
	}
}

// WithClock overrides the report timestamp source.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) { r.now = now }
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		fontPaths:     defaultFontPaths,
		boldFontPaths: boldFontPaths,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build renders the full report: header, patient info, symptom and history
// bullets, lifestyle lines, then the narrative analysis and the disclaimer
// on their own pages.
func (r *Renderer) Build(profile intake.Profile, rec intake.PatientRecord, analysis string) ([]byte, error) {
	pdf := &gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})
	pdf.AddPage()

	bold, err := r.loadFonts(pdf)
	if err != nil {
		return nil, err
	}

	d := &doc{pdf: pdf, headerFont: fontName}
	if bold {
		d.headerFont = fontBoldName
	}

	// Header
	if err := d.heading(profile.PDFTitle, 20); err != nil {
		return nil, err
	}
	d.line(fmt.Sprintf("Generated: %s", r.now().Format("January 2, 2006")), 12)
	d.space(10)

	// Patient info
	if err := d.heading("Patient Information", 16); err != nil {
		return nil, err
	}
	if rec.Demographics.Age != 0 {
		d.line(fmt.Sprintf("Age: %d", rec.Demographics.Age), 11)
	}
	if rec.Demographics.Gender != "" {
		d.line(fmt.Sprintf("Gender: %s", rec.Demographics.Gender), 11)
	}
	if rec.Demographics.Location != "" {
		d.line(fmt.Sprintf("Location: %s", rec.Demographics.Location), 11)
	}
	d.space(10)

	if len(rec.Symptoms) > 0 {
		if err := d.heading("Reported Symptoms", 16); err != nil {
			return nil, err
		}
		for _, s := range rec.Symptoms {
			d.line("- "+s, 11)
		}
		d.space(10)
	}

	if len(rec.MedicalHistory) > 0 {
		if err := d.heading("Medical History", 16); err != nil {
			return nil, err
		}
		for _, item := range rec.MedicalHistory {
			d.line("- "+item, 11)
		}
		d.space(10)
	}

	if entries := lifestyleEntries(rec.Lifestyle); len(entries) > 0 {
		if err := d.heading("Lifestyle Factors", 16); err != nil {
			return nil, err
		}
		for _, e := range entries {
			d.line(e, 11)
		}
	}

	// Narrative analysis on a fresh page
	pdf.AddPage()
	if err := d.heading("Functional Medicine Analysis", 16); err != nil {
		return nil, err
	}
	d.space(5)
	if err := d.paragraphs(analysis); err != nil {
		return nil, err
	}

	// Disclaimer on its own page
	pdf.AddPage()
	if err := d.heading("Important Disclaimer", 14); err != nil {
		return nil, err
	}
	d.space(5)
	if err := d.wrapped(profile.Disclaimer, 11); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := pdf.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("writing pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// loadFonts registers the regular face (required) and the bold face (best
// effort); it reports whether a bold face is available.
func (r *Renderer) loadFonts(pdf *gopdf.GoPdf) (bool, error) {
	var lastErr error
	loaded := false
	for _, path := range r.fontPaths {
		if err := pdf.AddTTFFont(fontName, path); err == nil {
			loaded = true
			break
		} else {
			lastErr = err
		}
	}
	if !loaded {
		return false, fmt.Errorf("no usable TTF font found, install ttf-dejavu or configure PDF_FONT_PATH: %w", lastErr)
	}

	for _, path := range r.boldFontPaths {
		if err := pdf.AddTTFFont(fontBoldName, path); err == nil {
			return true, nil
		}
	}
	return false, nil
}

// doc wraps cursor-style layout over gopdf.
type doc struct {
	pdf        *gopdf.GoPdf
	headerFont string
}

func (d *doc) heading(text string, size float64) error {
	if err := d.pdf.SetFont(d.headerFont, "", size); err != nil {
		return err
	}
	d.pageBreakIfNeeded(size + 10)
	d.pdf.Cell(nil, text)
	d.pdf.Br(size + 10)
	return nil
}

func (d *doc) line(text string, size float64) {
	if err := d.pdf.SetFont(fontName, "", size); err != nil {
		return
	}
	d.pageBreakIfNeeded(size + 4)
	d.pdf.Cell(nil, text)
	d.pdf.Br(size + 4)
}

func (d *doc) space(pt float64) { d.pdf.Br(pt) }

// paragraphs renders the analysis body. Paragraphs that look like section
// headers (all caps, numbered, or colon-containing) are set in the bold face
// at a slightly larger size.
func (d *doc) paragraphs(text string) error {
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		font, size := fontName, 11.0
		if isHeading(para) {
			font, size = d.headerFont, 12.0
		}
		if err := d.pdf.SetFont(font, "", size); err != nil {
			return err
		}
		lines, err := d.pdf.SplitText(para, pageTextWidth)
		if err != nil {
			lines = []string{para}
		}
		d.pageBreakIfNeeded(float64(len(lines)) * (size + 2))
		for _, l := range lines {
			d.pageBreakIfNeeded(size + 2)
			d.pdf.Cell(nil, l)
			d.pdf.Br(size + 2)
		}
		d.pdf.Br(8)
	}
	return nil
}

func (d *doc) wrapped(text string, size float64) error {
	if err := d.pdf.SetFont(fontName, "", size); err != nil {
		return err
	}
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		lines, err := d.pdf.SplitText(para, pageTextWidth)
		if err != nil {
			lines = []string{para}
		}
		for _, l := range lines {
			d.pageBreakIfNeeded(size + 2)
			d.pdf.Cell(nil, l)
			d.pdf.Br(size + 2)
		}
		d.pdf.Br(8)
	}
	return nil
}

func (d *doc) pageBreakIfNeeded(height float64) {
	if d.pdf.GetY()+height > bottomLimit {
		d.pdf.AddPage()
	}
}

func isHeading(para string) bool {
	return allCapsPattern.MatchString(para) ||
		numberedPattern.MatchString(para) ||
		strings.Contains(para, ":")
}

// lifestyleEntries formats set lifestyle factors as "Stress Level: high"
// lines, in a fixed order.
func lifestyleEntries(l intake.Lifestyle) []string {
	pairs := []struct{ key, value string }{
		{"stress_level", l.StressLevel},
		{"sleep_quality", l.SleepQuality},
		{"exercise_frequency", l.ExerciseFrequency},
		{"diet_type", l.DietType},
	}
	var out []string
	for _, p := range pairs {
		if p.value == "" {
			continue
		}
		out = append(out, fmt.Sprintf("%s: %s", titleLabel(p.key), p.value))
	}
	return out
}

func titleLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
