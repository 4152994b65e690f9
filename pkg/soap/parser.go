package soap

import (
	"strings"
)

// Sections is the fixed-shape parse result for a completion reply. A label
// the model never emitted leaves its section empty; the note assembly
// backfills empties so the final note never ships a blank section.
type Sections struct {
	Subjective string
	Objective  string
	Assessment string
	Plan       string
	Confidence float64
}

// ParseSections scans the reply line by line. A line starting with one of
// the exact section labels (case-sensitive, colon included) opens that
// section and seeds it with the rest of the line; subsequent non-empty
// lines are space-joined onto the open section until the next label.
func ParseSections(reply string) Sections {
	sections := Sections{Confidence: 0.8}

	var current *string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(line, LabelSubjective):
			current = &sections.Subjective
			*current = strings.TrimSpace(strings.TrimPrefix(line, LabelSubjective))
		case strings.HasPrefix(line, LabelObjective):
			current = &sections.Objective
			*current = strings.TrimSpace(strings.TrimPrefix(line, LabelObjective))
		case strings.HasPrefix(line, LabelAssessment):
			current = &sections.Assessment
			*current = strings.TrimSpace(strings.TrimPrefix(line, LabelAssessment))
		case strings.HasPrefix(line, LabelPlan):
			current = &sections.Plan
			*current = strings.TrimSpace(strings.TrimPrefix(line, LabelPlan))
		case current != nil && line != "":
			if *current == "" {
				*current = line
			} else {
				*current += " " + line
			}
		}
	}

	return sections
}
