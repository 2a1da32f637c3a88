package intake

import (
	"regexp"
	"strconv"
	"strings"
)

// Keyword vocabularies for the symptom and history stages. Matching is
// case-insensitive substring containment against the whole utterance.
var symptomKeywords = []string{
	"pain", "fatigue", "headache", "nausea", "dizzy", "tired", "ache",
	"sore", "hurt", "sick", "weak", "anxiety", "stress", "depressed",
	"bloating", "constipation", "diarrhea", "insomnia", "sleep",
	"brain fog", "memory",
}

var historyKeywords = []string{
	"diabetes", "hypertension", "thyroid", "cancer", "surgery",
	"depression", "anxiety", "autoimmune", "allergies", "asthma",
	"heart disease", "stroke",
}

// agePattern matches a 1-3 digit number with an optional age marker.
// The marker is optional, so any leading number in the utterance is taken
// as the age; first match wins.
var agePattern = regexp.MustCompile(`(?i)(\d{1,3})\s*(?:years?\s*old|yo|yrs?)?`)

// ExtractFields scans the latest user utterance for stage-relevant
// information and merges it into the record. It is a pure function: the
// input record is not mutated. The second return value reports whether any
// field changed, so callers can tell "no update" apart from "update
// applied". Unparseable input is skipped silently.
func ExtractFields(utterance string, rec PatientRecord, stage Stage) (PatientRecord, bool) {
	updated := rec.clone()
	lower := strings.ToLower(utterance)
	changed := false

	switch stage {
	case StageDemographics:
		if m := agePattern.FindStringSubmatch(utterance); m != nil {
			if age, err := strconv.Atoi(m[1]); err == nil && updated.Demographics.Age != age {
				updated.Demographics.Age = age
				changed = true
			}
		}
		if g := extractGender(lower); g != "" && updated.Demographics.Gender != g {
			updated.Demographics.Gender = g
			changed = true
		}

	case StageSymptoms:
		for _, kw := range symptomKeywords {
			if strings.Contains(lower, kw) && !contains(updated.Symptoms, kw) {
				updated.Symptoms = append(updated.Symptoms, kw)
				changed = true
			}
		}

	case StageHistory:
		for _, kw := range historyKeywords {
			if strings.Contains(lower, kw) && !contains(updated.MedicalHistory, kw) {
				updated.MedicalHistory = append(updated.MedicalHistory, kw)
				changed = true
			}
		}

	case StageLifestyle:
		if strings.Contains(lower, "stress") {
			level := classifyStress(lower)
			if updated.Lifestyle.StressLevel != level {
				updated.Lifestyle.StressLevel = level
				changed = true
			}
		}
		if strings.Contains(lower, "sleep") {
			quality := classifySleep(lower)
			if updated.Lifestyle.SleepQuality != quality {
				updated.Lifestyle.SleepQuality = quality
				changed = true
			}
		}
	}

	// analysis and complete perform no extraction
	return updated, changed
}

// extractGender applies a fixed precedence: the male check requires the
// absence of "female", so an utterance containing both resolves to female.
// The woman/lady check runs before man/guy because "woman" contains "man"
// as a substring.
func extractGender(lower string) string {
	switch {
	case strings.Contains(lower, "male") && !strings.Contains(lower, "female"):
		return "male"
	case strings.Contains(lower, "female"):
		return "female"
	case strings.Contains(lower, "woman") || strings.Contains(lower, "lady"):
		return "female"
	case strings.Contains(lower, "man") || strings.Contains(lower, "guy"):
		return "male"
	}
	return ""
}

func classifyStress(lower string) string {
	switch {
	case strings.Contains(lower, "high") || strings.Contains(lower, "very") || strings.Contains(lower, "lot"):
		return "high"
	case strings.Contains(lower, "low") || strings.Contains(lower, "little"):
		return "low"
	default:
		return "moderate"
	}
}

func classifySleep(lower string) string {
	switch {
	case strings.Contains(lower, "good") || strings.Contains(lower, "well"):
		return "good"
	case strings.Contains(lower, "poor") || strings.Contains(lower, "bad") || strings.Contains(lower, "terrible"):
		return "poor"
	default:
		return "fair"
	}
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// clone returns a copy whose slices do not alias the original. Empty non-nil
// slices stay non-nil so the JSON round-trip keeps encoding them as [].
func (r PatientRecord) clone() PatientRecord {
	out := r
	out.Symptoms = cloneStrings(r.Symptoms)
	out.MedicalHistory = cloneStrings(r.MedicalHistory)
	out.CurrentMedications = cloneStrings(r.CurrentMedications)
	out.Concerns = cloneStrings(r.Concerns)
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
