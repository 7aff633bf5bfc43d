package domain

import (
	"fmt"
	"strings"
)

// requiredFields is the per-type required-field table.
var requiredFields = map[RuleType][]string{
	RuleAlways: {"description", "alwaysApply"},
	RuleAuto:   {"description", "globs"},
	RuleAgent:  {"description"},
	RuleManual: {"description"},
}

// RequiredFields returns the required metadata fields for a rule type.
func RequiredFields(t RuleType) []string {
	return requiredFields[t]
}

// ValidateStructure applies the type-specific required-field and
// well-formedness rules.
func ValidateStructure(ruleType RuleType, meta Metadata) (errs, warnings []string) {
	for _, field := range requiredFields[ruleType] {
		if !meta.Has(field) {
			errs = append(errs, fmt.Sprintf("missing required field %q for type %s", field, ruleType))
		}
	}

	if v, ok := meta.Get("description"); ok {
		if _, err := v.AsString(); err != nil {
			errs = append(errs, "description must be a string")
		}
	}

	switch ruleType {
	case RuleAlways:
		if v, ok := meta.Get("alwaysApply"); ok {
			b, err := v.AsBool()
			if err != nil || !b {
				errs = append(errs, "alwaysApply must be true for type always")
			}
		}
	case RuleAgent:
		if !meta.Has("agents") && !meta.Has("agent") {
			warnings = append(warnings, "agent rule has no target agents field")
		}
	}

	return errs, warnings
}

const minContentLines = 5

// ValidateContent runs the generic content-quality heuristics on the
// document body. These are stylistic smells: warnings only, never errors.
func ValidateContent(body string) []string {
	var warnings []string

	lines := strings.Split(body, "\n")
	if len(lines) < minContentLines {
		warnings = append(warnings, "content seems very short")
	}

	hasHeading := false
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "#") {
			hasHeading = true
			break
		}
	}
	if !hasHeading {
		warnings = append(warnings, "content has no heading structure")
	}

	if !strings.Contains(strings.ToLower(body), "example") {
		warnings = append(warnings, "consider adding usage examples")
	}

	for i, line := range lines {
		if line != strings.TrimRight(line, " \t") {
			warnings = append(warnings, fmt.Sprintf("line %d has trailing whitespace", i+1))
		}
	}

	return warnings
}

// ValidateGlobs checks glob-pattern hygiene. Only runs when a globs
// field exists. Absolute and parent-relative patterns are smells, not
// invalidating.
func ValidateGlobs(meta Metadata) (errs, warnings []string) {
	v, ok := meta.Get("globs")
	if !ok {
		return nil, nil
	}

	patterns, err := v.AsStringList()
	if err != nil {
		return []string{"globs must be a string or a list of strings"}, nil
	}

	for _, p := range patterns {
		if strings.HasPrefix(p, "/") {
			warnings = append(warnings, fmt.Sprintf("glob %q uses an absolute path", p))
		}
		if strings.Contains(p, "..") {
			warnings = append(warnings, fmt.Sprintf("glob %q references a parent directory", p))
		}
	}

	return nil, warnings
}
