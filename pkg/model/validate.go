package model

import (
	"errors"
	"fmt"
)

// Severity distinguishes blocking problems from advisories.
type Severity int

const (
	// SeverityError marks a parameter set that must not be generated.
	SeverityError Severity = iota
	// SeverityWarning marks a questionable but usable parameter.
	SeverityWarning
)

// Issue is one validation finding.
type Issue struct {
	Field    string
	Message  string
	Severity Severity
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Field, i.Message)
}

// FirstError returns an error describing the first blocking issue, or
// nil if all issues are warnings.
func FirstError(issues []Issue) error {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return errors.New(i.String())
		}
	}
	return nil
}

// Warnings filters the advisory issues.
func Warnings(issues []Issue) []Issue {
	var out []Issue
	for _, i := range issues {
		if i.Severity == SeverityWarning {
			out = append(out, i)
		}
	}
	return out
}

func positive(field string, v float64) *Issue {
	if v > 0 {
		return nil
	}
	return &Issue{Field: field, Message: fmt.Sprintf("is %.4f, must be positive", v), Severity: SeverityError}
}

// ValidateLeaf checks leaf relief parameters.
func ValidateLeaf(p LeafParams) []Issue {
	var issues []Issue
	for _, chk := range []*Issue{
		positive("scaleXY", p.ScaleXY),
		positive("scaleZ", p.ScaleZ),
	} {
		if chk != nil {
			issues = append(issues, *chk)
		}
	}
	if p.BaseThickness < 0 {
		issues = append(issues, Issue{Field: "baseThickness", Message: "cannot be negative", Severity: SeverityError})
	}
	if p.Stride < 1 {
		issues = append(issues, Issue{Field: "stride", Message: fmt.Sprintf("is %d, must be at least 1", p.Stride), Severity: SeverityError})
	}
	if p.AlphaThreshold < 0 || p.AlphaThreshold >= 1 {
		issues = append(issues, Issue{Field: "alphaThreshold", Message: fmt.Sprintf("is %.3f, must be in [0, 1)", p.AlphaThreshold), Severity: SeverityError})
	}
	if p.BaseThickness < 0.4 {
		issues = append(issues, Issue{Field: "baseThickness", Message: "below 0.4mm prints fragile", Severity: SeverityWarning})
	}
	return issues
}

// ValidateDisc checks disc floret parameters.
func ValidateDisc(p DiscParams) []Issue {
	var issues []Issue
	for _, chk := range []*Issue{
		positive("diameter", p.Diameter),
		positive("baseHeight", p.BaseHeight),
		positive("density", p.Density),
	} {
		if chk != nil {
			issues = append(issues, *chk)
		}
	}
	if p.Convexity < 0 || p.Convexity > 1 {
		issues = append(issues, Issue{Field: "convexity", Message: fmt.Sprintf("is %.3f, must be in [0, 1]", p.Convexity), Severity: SeverityError})
	}
	if p.Resolution < 8 {
		issues = append(issues, Issue{Field: "resolution", Message: fmt.Sprintf("is %d, must be at least 8", p.Resolution), Severity: SeverityError})
	} else if p.Resolution < 32 {
		issues = append(issues, Issue{Field: "resolution", Message: "below 32 cells leaves a visibly faceted rim", Severity: SeverityWarning})
	}
	if p.Density > 5 {
		issues = append(issues, Issue{Field: "density", Message: fmt.Sprintf("%.1f places %d bumps; expect slow slicing", p.Density, discCount(p)), Severity: SeverityWarning})
	}
	return issues
}

// ValidateMedallion checks medallion parameters.
func ValidateMedallion(p MedallionParams) []Issue {
	var issues []Issue
	if chk := positive("diameter", p.Diameter); chk != nil {
		issues = append(issues, *chk)
	}
	if p.Convexity < 0 || p.Convexity > 1 {
		issues = append(issues, Issue{Field: "convexity", Message: fmt.Sprintf("is %.3f, must be in [0, 1]", p.Convexity), Severity: SeverityError})
	}
	if p.Resolution < 8 {
		issues = append(issues, Issue{Field: "resolution", Message: fmt.Sprintf("is %d, must be at least 8", p.Resolution), Severity: SeverityError})
	}
	for _, fr := range p.RidgeRadii {
		if fr <= 0 || fr >= 1 {
			issues = append(issues, Issue{Field: "ridgeRadii", Message: fmt.Sprintf("fraction %.3f must be in (0, 1)", fr), Severity: SeverityError})
		}
	}
	if p.OrnamentCount < 0 {
		issues = append(issues, Issue{Field: "ornaments", Message: "cannot be negative", Severity: SeverityError})
	}
	return issues
}
