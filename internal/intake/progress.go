package intake

// Completion weights per intake criterion. They sum to 100; progress is the
// sum of satisfied weights, capped at 100.
const (
	weightDemographics = 20
	weightSymptoms     = 25
	weightHistory      = 20
	weightLifestyle    = 25
	weightAnalysis     = 10
)

// CalculateProgress computes the completion percentage for the record and
// the stage the session should be in after this turn. Transitions only move
// forward and at most one stage per turn; StageComplete has no outgoing
// transition.
//
// The history and lifestyle criteria also count as satisfied while the
// session is sitting in that stage, so those stages advance on the next turn
// even when extraction found nothing. Demographics and symptoms advance only
// on extracted data. This asymmetry is kept deliberately for compatibility
// with the behavior existing conversations were built against.
func CalculateProgress(rec PatientRecord, stage Stage) (int, Stage) {
	progress := 0
	next := stage

	if rec.Demographics.Age != 0 && rec.Demographics.Gender != "" {
		progress += weightDemographics
		if stage == StageDemographics {
			next = StageSymptoms
		}
	}

	if len(rec.Symptoms) > 0 {
		progress += weightSymptoms
		if stage == StageSymptoms {
			next = StageHistory
		}
	}

	if len(rec.MedicalHistory) > 0 || stage == StageHistory {
		progress += weightHistory
		if stage == StageHistory {
			next = StageLifestyle
		}
	}

	if !rec.Lifestyle.Empty() || stage == StageLifestyle {
		progress += weightLifestyle
		if stage == StageLifestyle {
			next = StageAnalysis
		}
	}

	if stage == StageAnalysis {
		progress += weightAnalysis
		next = StageComplete
	}

	if progress > 100 {
		progress = 100
	}
	return progress, next
}
