// Package advisory holds the static rules tables used by the report path:
// symptom-to-condition matching, specialist suggestions, drug interaction
// warnings, and lifestyle tips. The tables are fixed data and the lookups
// are pure functions; identical inputs always produce identical outputs.
package advisory

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

type Urgency string

const (
	UrgencyRoutine Urgency = "routine"
	UrgencySoon    Urgency = "soon"
	UrgencyUrgent  Urgency = "urgent"
)

type Condition struct {
	Name        string
	Description string
	Symptoms    []string
	Category    string
	Severity    Severity
}

type Insight struct {
	Condition       string   `json:"condition"`
	Likelihood      int      `json:"likelihood"`
	Reasoning       string   `json:"reasoning"`
	Recommendations []string `json:"recommendations"`
}

type Specialist struct {
	Specialty   string  `json:"specialty"`
	Reason      string  `json:"reason"`
	Urgency     Urgency `json:"urgency"`
	Description string  `json:"description"`
}

var conditions = []Condition{
	{
		Name:        "Thyroid Dysfunction",
		Description: "Imbalance in thyroid hormone production affecting metabolism",
		Symptoms:    []string{"fatigue", "weight changes", "brain fog", "temperature sensitivity"},
		Category:    "Endocrine",
		Severity:    SeverityMedium,
	},
	{
		Name:        "Adrenal Fatigue",
		Description: "Chronic stress leading to adrenal gland dysfunction",
		Symptoms:    []string{"fatigue", "stress", "anxiety", "sleep issues", "brain fog"},
		Category:    "Endocrine",
		Severity:    SeverityMedium,
	},
	{
		Name:        "Gut Dysbiosis",
		Description: "Imbalance in gut microbiome affecting digestion and immunity",
		Symptoms:    []string{"bloating", "constipation", "diarrhea", "fatigue", "brain fog"},
		Category:    "Digestive",
		Severity:    SeverityMedium,
	},
	{
		Name:        "Chronic Inflammation",
		Description: "Systemic inflammation affecting multiple body systems",
		Symptoms:    []string{"pain", "fatigue", "brain fog", "mood changes"},
		Category:    "Immune",
		Severity:    SeverityHigh,
	},
	{
		Name:        "Nutrient Deficiencies",
		Description: "Deficiencies in essential vitamins and minerals",
		Symptoms:    []string{"fatigue", "weakness", "brain fog", "mood changes"},
		Category:    "Nutritional",
		Severity:    SeverityLow,
	},
}

var specialists = map[string]struct {
	Specialty   string
	Description string
}{
	"Endocrine": {
		Specialty:   "Functional Medicine Endocrinologist",
		Description: "Specialists in hormone optimization and metabolic health",
	},
	"Digestive": {
		Specialty:   "Gastroenterologist / Functional Medicine Practitioner",
		Description: "Experts in gut health and digestive system disorders",
	},
	"Immune": {
		Specialty:   "Functional Medicine Practitioner / Rheumatologist",
		Description: "Specialists in immune system dysfunction and autoimmune conditions",
	},
	"Nutritional": {
		Specialty:   "Functional Nutritionist / Registered Dietitian",
		Description: "Experts in nutritional therapy and supplement protocols",
	},
	"Mental Health": {
		Specialty:   "Integrative Psychiatrist / Functional Medicine Practitioner",
		Description: "Specialists in mental health with functional medicine approach",
	},
}

// AnalyzeSymptoms matches the reported symptoms against the condition table
// and returns insights sorted by descending likelihood. A condition's
// symptom counts as matched when it and any reported symptom contain each
// other as a case-insensitive substring, in either direction. Likelihood is
// the matched fraction of the condition's symptom list as a rounded
// percentage.
func AnalyzeSymptoms(symptoms []string) []Insight {
	var insights []Insight

	for _, cond := range conditions {
		var matched []string
		for _, cs := range cond.Symptoms {
			for _, us := range symptoms {
				lu, lc := strings.ToLower(us), strings.ToLower(cs)
				if strings.Contains(lu, lc) || strings.Contains(lc, lu) {
					matched = append(matched, cs)
					break
				}
			}
		}
		if len(matched) == 0 {
			continue
		}
		likelihood := int(math.Round(float64(len(matched)) / float64(len(cond.Symptoms)) * 100))
		insights = append(insights, Insight{
			Condition:       cond.Name,
			Likelihood:      likelihood,
			Reasoning:       fmt.Sprintf("Based on %d matching symptoms: %s", len(matched), strings.Join(matched, ", ")),
			Recommendations: categoryRecommendations(cond.Category),
		})
	}

	sort.SliceStable(insights, func(i, j int) bool {
		return insights[i].Likelihood > insights[j].Likelihood
	})
	return insights
}

// SpecialistRecommendations always leads with a generic functional medicine
// entry, then adds one specialist per distinct category among the top three
// insights.
func SpecialistRecommendations(insights []Insight) []Specialist {
	recs := []Specialist{{
		Specialty:   "Functional Medicine Practitioner",
		Reason:      "Comprehensive root-cause analysis and personalized treatment plan",
		Urgency:     UrgencyRoutine,
		Description: "A functional medicine practitioner can provide a holistic assessment and create an integrated treatment approach addressing all your health concerns.",
	}}

	seen := map[string]bool{}
	top := insights
	if len(top) > 3 {
		top = top[:3]
	}
	for _, insight := range top {
		cond, ok := findCondition(insight.Condition)
		if !ok || seen[cond.Category] {
			continue
		}
		seen[cond.Category] = true
		sp, ok := specialists[cond.Category]
		if !ok {
			continue
		}
		recs = append(recs, Specialist{
			Specialty:   sp.Specialty,
			Reason:      fmt.Sprintf("Specialized care for %s conditions", strings.ToLower(cond.Category)),
			Urgency:     UrgencySoon,
			Description: sp.Description,
		})
	}
	return recs
}

// DrugInteractionWarnings emits a single review warning when more than two
// medications are listed. A real interaction check is out of scope; the
// warning just routes the patient to a pharmacist.
func DrugInteractionWarnings(medications []string) []string {
	if len(medications) > 2 {
		return []string{"Multiple medications detected - recommend reviewing with pharmacist for potential interactions"}
	}
	return nil
}

// LifestyleRecommendations emits advice strings gated on stress level, sleep
// quality, and specific symptoms, followed by three general recommendations
// that always apply.
func LifestyleRecommendations(stressLevel, sleepQuality string, symptoms []string) []string {
	var out []string

	if stressLevel == "high" || hasSymptom(symptoms, "anxiety") || hasSymptom(symptoms, "stress") {
		out = append(out,
			"Implement stress reduction techniques: meditation, deep breathing, or yoga",
			"Consider adaptogenic herbs like ashwagandha or rhodiola (consult practitioner)",
		)
	}

	if sleepQuality == "poor" || hasSymptom(symptoms, "insomnia") || hasSymptom(symptoms, "fatigue") {
		out = append(out,
			"Optimize sleep hygiene: consistent bedtime, dark room, no screens 2 hours before bed",
			"Consider magnesium supplementation for sleep support (consult practitioner)",
		)
	}

	if hasSymptom(symptoms, "bloating") || hasSymptom(symptoms, "constipation") || hasSymptom(symptoms, "diarrhea") {
		out = append(out,
			"Support digestive health with fermented foods and fiber-rich vegetables",
			"Consider elimination diet to identify food sensitivities",
			"Stay hydrated and consider digestive enzymes with meals",
		)
	}

	if hasSymptom(symptoms, "fatigue") || hasSymptom(symptoms, "brain fog") {
		out = append(out,
			"Support mitochondrial health with CoQ10 and B-complex vitamins",
			"Maintain stable blood sugar with balanced meals every 3-4 hours",
			"Get morning sunlight exposure to support circadian rhythm",
		)
	}

	out = append(out,
		"Focus on nutrient-dense, whole foods diet",
		"Incorporate gentle movement like walking or swimming",
		"Stay hydrated with filtered water",
	)
	return out
}

func categoryRecommendations(category string) []string {
	switch category {
	case "Endocrine":
		return []string{
			"Comprehensive hormone panel testing",
			"Evaluate stress management and sleep quality",
			"Consider adaptogenic herb protocols",
		}
	case "Digestive":
		return []string{
			"Comprehensive stool analysis",
			"Food sensitivity testing",
			"Probiotic and prebiotic supplementation",
		}
	case "Immune":
		return []string{
			"Inflammatory marker testing (CRP, ESR)",
			"Autoimmune panel if indicated",
			"Anti-inflammatory diet protocol",
		}
	case "Nutritional":
		return []string{
			"Comprehensive nutrient panel",
			"Targeted supplementation protocol",
			"Dietary optimization consultation",
		}
	}
	return nil
}

func findCondition(name string) (Condition, bool) {
	for _, c := range conditions {
		if c.Name == name {
			return c, true
		}
	}
	return Condition{}, false
}

func hasSymptom(symptoms []string, symptom string) bool {
	for _, s := range symptoms {
		if s == symptom {
			return true
		}
	}
	return false
}
