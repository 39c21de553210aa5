package advisor

import (
	"sort"
	"strings"

	"github.com/finadvise/finadvise/internal/models"
)

// goalKeywords maps each category to its match keywords, ordered by
// priority so financial-security goals outrank discretionary ones.
type goalKeywords struct {
	category models.GoalCategory
	priority int
	keywords []string
}

var goalTable = []goalKeywords{
	{models.GoalRetirement, 1, []string{"retirement", "retire", "pension"}},
	{models.GoalEmergency, 2, []string{"emergency", "safety net", "rainy day"}},
	{models.GoalHome, 3, []string{"home", "house", "property", "apartment", "flat"}},
	{models.GoalEducation, 4, []string{"education", "study", "college", "university", "school", "tuition"}},
	{models.GoalFamily, 5, []string{"marriage", "wedding", "family", "children", "kids", "child"}},
	{models.GoalBusiness, 6, []string{"business", "startup", "entrepreneur", "venture"}},
	{models.GoalVehicle, 7, []string{"car", "vehicle", "automobile", "bike", "motorcycle"}},
	{models.GoalTravel, 8, []string{"travel", "trip", "vacation", "holiday"}},
}

const goalOtherPriority = 9

// ClassifyGoals maps free-text goal descriptions to ordered GoalRecords.
// Matching is case-insensitive substring matching; a single text may
// produce multiple records, one per matching category. Text that matches
// nothing becomes an "other" record with the lowest priority. Identical
// (category, raw text) pairs collapse to one record. The output is
// deterministic for identical input: sorted by priority, then input order.
func ClassifyGoals(goals []string) []models.GoalRecord {
	var records []models.GoalRecord
	seen := make(map[string]bool)

	add := func(category models.GoalCategory, priority int, raw string) {
		key := string(category) + "\x00" + raw
		if seen[key] {
			return
		}
		seen[key] = true
		records = append(records, models.GoalRecord{
			Category: category,
			Priority: priority,
			RawText:  raw,
		})
	}

	for _, raw := range goals {
		text := strings.ToLower(strings.TrimSpace(raw))
		if text == "" {
			continue
		}

		matched := false
		for _, entry := range goalTable {
			for _, kw := range entry.keywords {
				if strings.Contains(text, kw) {
					add(entry.category, entry.priority, raw)
					matched = true
					break
				}
			}
		}

		if !matched {
			add(models.GoalOther, goalOtherPriority, raw)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Priority < records[j].Priority
	})

	return records
}
