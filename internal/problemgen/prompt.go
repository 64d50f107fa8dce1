package problemgen

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a math teacher writing practice problems for 7th grade students.

Rules:
- Generate a single problem for the given standard.
- The problem must have one short answer the student can type: a number, a fraction, a simple expression, or yes/no.
- The correct answer must be in simplest form. List other acceptable forms (units, decimals, unreduced fractions) separately.
- The hint nudges toward the method without giving the answer away.
- The explanation shows the solution briefly.
- Do not repeat any problem from the "already asked" list.`

// buildUserMessage constructs the user message from GenerateInput and Config limits.
func buildUserMessage(input GenerateInput, cfg Config) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Standard: %s %s\n", input.Standard.Code, input.Standard.Title)
	fmt.Fprintf(&b, "Description: %s\n", input.Standard.Description)
	fmt.Fprintf(&b, "Domain: %s\n", input.Standard.Domain)
	fmt.Fprintf(&b, "Keywords: %s\n", strings.Join(input.Standard.Keywords, ", "))

	b.WriteString("\nAlready asked:\n")
	b.WriteString(buildDedup(input.PriorQuestions, cfg.MaxPriorQuestions))

	return b.String()
}
