package models

// GoalCategory is the closed set of financial goal classifications.
type GoalCategory string

const (
	GoalRetirement GoalCategory = "retirement"
	GoalEmergency  GoalCategory = "emergency"
	GoalHome       GoalCategory = "home"
	GoalEducation  GoalCategory = "education"
	GoalFamily     GoalCategory = "family"
	GoalBusiness   GoalCategory = "business"
	GoalVehicle    GoalCategory = "vehicle"
	GoalTravel     GoalCategory = "travel"
	GoalOther      GoalCategory = "other"
)

// GoalRecord is a classified goal derived from the profile's free-text
// descriptions. Lower priority values outrank higher ones, so
// financial-security goals win when timelines conflict.
type GoalRecord struct {
	Category GoalCategory `json:"category"`
	Priority int          `json:"priority"`
	RawText  string       `json:"raw_text"`
}
