package domain

import dErrors "veridoc/pkg/domain-errors"

// Meaning is the semantic category of an electronic signature attestation.
// It is independent of whether applying it changes lifecycle status: every
// signature is recorded, only a narrow mapping of meanings moves the state.
type Meaning string

const (
	MeaningReview   Meaning = "review"
	MeaningApproval Meaning = "approval"
	MeaningIssuance Meaning = "issuance"
	MeaningChange   Meaning = "change"
	MeaningRetire   Meaning = "retire"
)

var validMeanings = map[Meaning]bool{
	MeaningReview:   true,
	MeaningApproval: true,
	MeaningIssuance: true,
	MeaningChange:   true,
	MeaningRetire:   true,
}

// ParseMeaning constructs a Meaning from external input.
func ParseMeaning(s string) (Meaning, error) {
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "signature meaning cannot be empty")
	}
	m := Meaning(s)
	if !m.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid signature meaning: "+s)
	}
	return m, nil
}

func (m Meaning) IsValid() bool { return validMeanings[m] }

func (m Meaning) String() string { return string(m) }
