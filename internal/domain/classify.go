package domain

import "regexp"

// Classification runs a fixed priority cascade:
//
//  1. An explicit `type` field in the metadata wins verbatim.
//  2. Declarative surface patterns, checked in order always, auto, agent,
//     manual. Each type pairs an in-body declaration phrase with its
//     signature metadata shape. Body markers are checked before
//     metadata-field inference.
//  3. Inference from metadata fields: alwaysApply=true, then a globs
//     field, then an agents field.
//  4. RuleManual as the total fallback.
//
// The cascade is deterministic and total: every document gets exactly
// one type.

var typeDeclRe = map[RuleType]*regexp.Regexp{
	RuleAlways: regexp.MustCompile(`(?i)rule\s*type\s*:\s*always`),
	RuleAuto:   regexp.MustCompile(`(?i)rule\s*type\s*:\s*auto`),
	RuleAgent:  regexp.MustCompile(`(?i)rule\s*type\s*:\s*agent`),
	RuleManual: regexp.MustCompile(`(?i)rule\s*type\s*:\s*manual`),
}

// classifyRule pairs a predicate with the type it yields.
type classifyRule struct {
	matches func(content string, meta Metadata) bool
	result  RuleType
}

var classifyRules = []classifyRule{
	{matchAlways, RuleAlways},
	{matchAuto, RuleAuto},
	{matchAgent, RuleAgent},
	{matchManual, RuleManual},
}

// Classify infers the rule type of a document from its content and
// decoded metadata.
func Classify(content string, meta Metadata) RuleType {
	if v, ok := meta.Get("type"); ok {
		if s, err := v.AsString(); err == nil {
			if t, known := ParseRuleType(s); known {
				return t
			}
		}
	}

	for _, r := range classifyRules {
		if r.matches(content, meta) {
			return r.result
		}
	}

	switch {
	case meta.BoolIs("alwaysApply", true):
		return RuleAlways
	case meta.Has("globs"):
		return RuleAuto
	case meta.Has("agents") || meta.Has("agent"):
		return RuleAgent
	}
	return RuleManual
}

func matchAlways(content string, meta Metadata) bool {
	return typeDeclRe[RuleAlways].MatchString(content) || meta.BoolIs("alwaysApply", true)
}

func matchAuto(content string, meta Metadata) bool {
	return typeDeclRe[RuleAuto].MatchString(content) || hasListField(meta, "globs")
}

func matchAgent(content string, meta Metadata) bool {
	return typeDeclRe[RuleAgent].MatchString(content) ||
		hasListField(meta, "agents") || hasListField(meta, "agent")
}

func matchManual(content string, _ Metadata) bool {
	return typeDeclRe[RuleManual].MatchString(content)
}

func hasListField(meta Metadata, key string) bool {
	v, ok := meta.Get(key)
	return ok && v.Kind() == KindStringList
}
