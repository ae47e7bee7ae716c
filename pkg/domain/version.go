package domain

import (
	"fmt"
	"strconv"
	"strings"

	dErrors "veridoc/pkg/domain-errors"
)

// InitialVersion is the label every document starts its history with.
const InitialVersion = "1.0"

// ParseVersion splits a "major.minor" label into its integer parts.
//
// Errors: returns CodeMalformed when the label is not two integers separated
// by a dot. The label comes from stored data, so a parse failure indicates a
// corrupted record rather than bad caller input.
func ParseVersion(label string) (major, minor int, err error) {
	parts := strings.Split(label, ".")
	if len(parts) != 2 {
		return 0, 0, dErrors.New(dErrors.CodeMalformed, "version label must be major.minor: "+label)
	}
	major, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, dErrors.New(dErrors.CodeMalformed, "version label must be major.minor: "+label)
	}
	minor, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, dErrors.New(dErrors.CodeMalformed, "version label must be major.minor: "+label)
	}
	return major, minor, nil
}

// NextMinorVersion returns the label with the minor component incremented.
func NextMinorVersion(label string) (string, error) {
	major, minor, err := ParseVersion(label)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", major, minor+1), nil
}
