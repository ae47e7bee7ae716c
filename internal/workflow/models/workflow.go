// Package models defines workflow reference data: named sequences of
// review/approval steps that document authors follow. Steps are display
// guidance for signers, not enforced gates; lifecycle transitions remain
// signature-driven.
package models

import (
	"veridoc/pkg/domain"
	dErrors "veridoc/pkg/domain-errors"
)

// Step is one stage of a workflow: who signs and with what meaning.
type Step struct {
	Name    string         `json:"name"`
	Role    domain.Role    `json:"role"`
	Meaning domain.Meaning `json:"meaning"`
}

// Workflow is a named, categorized sequence of signing steps.
type Workflow struct {
	ID       domain.WorkflowID `json:"id"`
	Name     string            `json:"name"`
	Category string            `json:"category"`
	Steps    []Step            `json:"steps"`
}

// NewWorkflow validates and constructs a workflow. Steps may be empty;
// admin-created workflows start without steps.
func NewWorkflow(id domain.WorkflowID, name, category string, steps []Step) (*Workflow, error) {
	if len(name) < 3 {
		return nil, dErrors.New(dErrors.CodeValidation, "workflow name must be at least 3 characters")
	}
	if len(category) < 2 {
		return nil, dErrors.New(dErrors.CodeValidation, "category must be at least 2 characters")
	}
	for _, step := range steps {
		if step.Name == "" {
			return nil, dErrors.New(dErrors.CodeValidation, "step name is required")
		}
		if !step.Role.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid step role: "+step.Role.String())
		}
		if !step.Meaning.IsValid() {
			return nil, dErrors.New(dErrors.CodeValidation, "invalid step meaning: "+step.Meaning.String())
		}
	}
	return &Workflow{ID: id, Name: name, Category: category, Steps: steps}, nil
}

// Clone returns a deep copy.
func (w *Workflow) Clone() *Workflow {
	cp := *w
	cp.Steps = append([]Step{}, w.Steps...)
	return &cp
}
