package soap

import "strings"

// PatientInfo carries the crude header enrichment. Both fields are binary
// keyword flags with fixed placeholder strings, not parsed values; the
// placeholders are a stable contract with downstream display code. This is
// deliberately not entity extraction.
type PatientInfo struct {
	AgeGender      string
	ReasonForVisit string
}

const (
	placeholderAgeGender = "Age/Gender mentioned in conversation"
	placeholderReason    = "Medical concern discussed"
)

// ExtractPatientInfo lower-cases the transcript and runs substring tests.
// Absent keywords leave the corresponding field empty.
func ExtractPatientInfo(transcript string) PatientInfo {
	lower := strings.ToLower(transcript)

	var info PatientInfo
	if strings.Contains(lower, "year") || strings.Contains(lower, "age") {
		info.AgeGender = placeholderAgeGender
	}
	if strings.Contains(lower, "pain") || strings.Contains(lower, "problem") || strings.Contains(lower, "issue") {
		info.ReasonForVisit = placeholderReason
	}
	return info
}
