// Package prompt builds grounded completion prompts from a question and
// retrieved context. Assembly is a pure function of its inputs: same
// inputs always produce the same prompt string.
package prompt

import (
	"fmt"
	"strings"

	"github.com/sableworks/grimoire/pkg/domain/types"
)

// securityExpertContextLimit caps how many retrieved documents are embedded
// into a security-expert prompt.
const securityExpertContextLimit = 3

// Assemble builds a completion prompt from the question and retrieved
// context documents according to the variant.
func Assemble(question string, contextDocs []string, variant types.PromptVariant) string {
	switch variant {
	case types.VariantSecurityExpert:
		return assembleSecurityExpert(question, contextDocs)
	default:
		return assembleGeneral(question, contextDocs)
	}
}

// assembleGeneral embeds the single best context document, or an empty
// context section when retrieval produced nothing.
func assembleGeneral(question string, contextDocs []string) string {
	context := ""
	if len(contextDocs) > 0 {
		context = contextDocs[0]
	}
	return fmt.Sprintf("Context:\n%s\n\nQuestion: %s\n\nAnswer clearly and concisely:", context, question)
}

func assembleSecurityExpert(question string, contextDocs []string) string {
	if len(contextDocs) > securityExpertContextLimit {
		contextDocs = contextDocs[:securityExpertContextLimit]
	}

	var sb strings.Builder
	sb.WriteString("You are a security expert assistant. Answer using the MITRE ATT&CK context below.\n")
	sb.WriteString("When relevant, cite technique identifiers (e.g. T1059) and name detection tooling that can observe the behavior.\n\n")
	sb.WriteString("Context:\n")
	sb.WriteString(strings.Join(contextDocs, "\n\n"))
	sb.WriteString("\n\n")
	fmt.Fprintf(&sb, "Question: %s\n\n", question)
	sb.WriteString("Answer as a security expert:")

	return sb.String()
}
