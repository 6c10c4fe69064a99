package prompt_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/sableworks/grimoire/pkg/domain/types"
	"github.com/sableworks/grimoire/pkg/service/prompt"
)

func TestAssembleIsPure(t *testing.T) {
	question := "How does credential dumping work?"
	ctxDocs := []string{"OS Credential Dumping (T1003)\nAdversaries may attempt to dump credentials."}

	first := prompt.Assemble(question, ctxDocs, types.VariantSecurityExpert)
	second := prompt.Assemble(question, ctxDocs, types.VariantSecurityExpert)
	gt.Value(t, first).Equal(second)

	first = prompt.Assemble(question, ctxDocs, types.VariantGeneral)
	second = prompt.Assemble(question, ctxDocs, types.VariantGeneral)
	gt.Value(t, first).Equal(second)
}

func TestAssembleGeneral(t *testing.T) {
	p := prompt.Assemble(
		"What is a firewall?",
		[]string{"A firewall filters network traffic."},
		types.VariantGeneral,
	)

	gt.Value(t, p).Equal("Context:\nA firewall filters network traffic.\n\nQuestion: What is a firewall?\n\nAnswer clearly and concisely:")
	gt.String(t, p).Contains("A firewall filters network traffic.")
	gt.String(t, p).Contains("Question: What is a firewall?")
}

func TestAssembleGeneralUsesBestDocumentOnly(t *testing.T) {
	p := prompt.Assemble(
		"What is a firewall?",
		[]string{"best match", "second match"},
		types.VariantGeneral,
	)

	gt.String(t, p).Contains("best match")
	gt.Value(t, p).Equal(prompt.Assemble("What is a firewall?", []string{"best match"}, types.VariantGeneral))
}

func TestAssembleGeneralWithoutContext(t *testing.T) {
	p := prompt.Assemble("What is a firewall?", nil, types.VariantGeneral)

	gt.String(t, p).Contains("Context:\n\n")
	gt.String(t, p).Contains("Question: What is a firewall?")
}

func TestAssembleSecurityExpert(t *testing.T) {
	docs := []string{
		"Command and Scripting Interpreter (T1059)\nAdversaries may abuse command interpreters.",
		"OS Credential Dumping (T1003)\nAdversaries may attempt to dump credentials.",
	}

	p := prompt.Assemble("How do attackers execute scripts?", docs, types.VariantSecurityExpert)

	gt.String(t, p).Contains("Command and Scripting Interpreter (T1059)")
	gt.String(t, p).Contains("OS Credential Dumping (T1003)")
	gt.String(t, p).Contains("Question: How do attackers execute scripts?")
	gt.String(t, p).Contains("cite technique identifiers")
	gt.String(t, p).Contains("detection tooling")
}

func TestAssembleSecurityExpertLimitsContext(t *testing.T) {
	docs := []string{"doc-one", "doc-two", "doc-three", "doc-four"}

	p := prompt.Assemble("q", docs, types.VariantSecurityExpert)

	gt.String(t, p).Contains("doc-one")
	gt.String(t, p).Contains("doc-two")
	gt.String(t, p).Contains("doc-three")
	gt.Value(t, p).Equal(prompt.Assemble("q", docs[:3], types.VariantSecurityExpert))
}
