package llm

import (
	"strings"

	"go.trai.ch/stitch/internal/core/domain"
)

// defaultInstruction is appended when the caller supplies no custom prompt.
const defaultInstruction = "Please tell me what I need to focus on today. " +
	"Prioritise by urgency and importance, and keep it concise."

// BuildPrompt renders the open task list and the focus instruction into a
// single triage prompt. Done tasks are excluded; the model only ever sees a
// read-only view of the list.
func BuildPrompt(tasks []domain.Task, instruction string) string {
	if instruction == "" {
		instruction = defaultInstruction
	}

	var b strings.Builder
	b.WriteString("Here is my current open task list:\n")
	for _, t := range tasks {
		if t.Done {
			continue
		}
		b.WriteString("- ")
		b.WriteString(t.Title)
		if t.Due != "" {
			b.WriteString(" (due ")
			b.WriteString(t.Due)
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(instruction)
	return b.String()
}
