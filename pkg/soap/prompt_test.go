package soap

import (
	"strings"
	"testing"

	"clinivoice-be/internal/entity"
)

func sampleMessages() []entity.ConversationMessage {
	return []entity.ConversationMessage{
		{Speaker: entity.SpeakerDoctor, Text: "What brings you in today?", Timestamp: "10:05:01", Confidence: 0.7},
		{Speaker: entity.SpeakerPatient, Text: "I have had chest pain for a week.", Timestamp: "10:05:09", Confidence: 0.6},
	}
}

func TestFormatTranscript(t *testing.T) {
	got := FormatTranscript(sampleMessages())

	want := "[10:05:01] Doctor: What brings you in today?\n[10:05:09] Patient: I have had chest pain for a week."
	if got != want {
		t.Errorf("FormatTranscript() = %q, want %q", got, want)
	}
}

func TestUserPromptContainsContract(t *testing.T) {
	b := NewPromptBuilder(sampleMessages())
	prompt := b.UserPrompt()

	for _, label := range []string{LabelSubjective, LabelObjective, LabelAssessment, LabelPlan} {
		if !strings.Contains(prompt, label) {
			t.Errorf("user prompt missing label %q", label)
		}
	}
	if !strings.Contains(prompt, "[10:05:09] Patient: I have had chest pain for a week.") {
		t.Error("user prompt missing transcript line")
	}
	if !strings.Contains(b.SystemPrompt(), "SOAP") {
		t.Error("system prompt should describe the SOAP format")
	}
}

// A reply that echoes the requested format must round-trip through the
// parser with the section bodies intact.
func TestPromptFormatRoundTripsThroughParser(t *testing.T) {
	reply := LabelSubjective + " chest pain for a week\n" +
		LabelObjective + " BP 130/85, lungs clear\n" +
		LabelAssessment + " atypical chest pain\n" +
		LabelPlan + " ECG and follow-up in one week"

	sections := ParseSections(reply)

	if sections.Subjective != "chest pain for a week" {
		t.Errorf("subjective = %q", sections.Subjective)
	}
	if sections.Objective != "BP 130/85, lungs clear" {
		t.Errorf("objective = %q", sections.Objective)
	}
	if sections.Assessment != "atypical chest pain" {
		t.Errorf("assessment = %q", sections.Assessment)
	}
	if sections.Plan != "ECG and follow-up in one week" {
		t.Errorf("plan = %q", sections.Plan)
	}
}
