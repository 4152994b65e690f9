package soap

import (
	"fmt"
	"strings"

	"clinivoice-be/internal/entity"
)

// Section labels are a hard contract with the response parser: any model
// substituted behind the llm.LLMProvider interface must be instructed to
// reply with exactly these prefixes, one per line, in this order.
const (
	LabelSubjective = "SUBJECTIVE:"
	LabelObjective  = "OBJECTIVE:"
	LabelAssessment = "ASSESSMENT:"
	LabelPlan       = "PLAN:"
)

const systemPrompt = `You are an expert medical assistant that generates SOAP notes from doctor-patient conversations.

SOAP Note Format:
- S (Subjective): What the patient reports - symptoms, concerns, history
- O (Objective): What the doctor observes - physical findings, vitals, test results
- A (Assessment): Medical diagnosis or clinical impression
- P (Plan): Treatment plan, medications, follow-up, patient education

Analyze the conversation and extract information for each SOAP section. Be concise but thorough.
Focus on medical information and maintain professional medical language.
If information is missing for a section, note "Not documented in conversation".`

// PromptBuilder renders a transcript into the fixed two-part instruction
// for the completion collaborator.
type PromptBuilder struct {
	messages []entity.ConversationMessage
}

func NewPromptBuilder(messages []entity.ConversationMessage) *PromptBuilder {
	return &PromptBuilder{messages: messages}
}

func (b *PromptBuilder) SystemPrompt() string {
	return systemPrompt
}

func (b *PromptBuilder) UserPrompt() string {
	var prompt strings.Builder

	prompt.WriteString("Please generate a SOAP note from this doctor-patient conversation:\n\n")
	prompt.WriteString(FormatTranscript(b.messages))
	prompt.WriteString("\n\nReturn the response in this exact format:\n")
	prompt.WriteString(LabelSubjective + " [patient's reported symptoms and concerns]\n")
	prompt.WriteString(LabelObjective + " [doctor's observations and findings]\n")
	prompt.WriteString(LabelAssessment + " [medical diagnosis/impression]\n")
	prompt.WriteString(LabelPlan + " [treatment plan and recommendations]")

	return prompt.String()
}

// FormatTranscript renders messages as "[timestamp] speaker: text" lines.
func FormatTranscript(messages []entity.ConversationMessage) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("[%s] %s: %s", msg.Timestamp, msg.Speaker, msg.Text)
	}
	return strings.Join(lines, "\n")
}
