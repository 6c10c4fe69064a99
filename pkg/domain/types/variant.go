package types

import "github.com/m-mizutani/goerr/v2"

// PromptVariant selects the framing of assembled prompts.
type PromptVariant string

const (
	// VariantGeneral grounds the question with the single best context
	// document and asks for a plain, concise answer.
	VariantGeneral PromptVariant = "general"

	// VariantSecurityExpert grounds the question with up to three context
	// documents and instructs the model to cite ATT&CK technique IDs and
	// detection tooling.
	VariantSecurityExpert PromptVariant = "security-expert"
)

// IsValid checks if the prompt variant is valid
func (v PromptVariant) IsValid() bool {
	switch v {
	case VariantGeneral, VariantSecurityExpert:
		return true
	default:
		return false
	}
}

// String returns the string representation of the prompt variant
func (v PromptVariant) String() string {
	return string(v)
}

// ParsePromptVariant parses a string into a PromptVariant
func ParsePromptVariant(s string) (PromptVariant, error) {
	v := PromptVariant(s)
	if !v.IsValid() {
		return "", goerr.New("invalid prompt variant", goerr.V("variant", s), goerr.T(ErrTagValidation))
	}
	return v, nil
}
