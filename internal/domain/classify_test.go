package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rulekit/rulekit/internal/domain"
)

func metaWith(pairs map[string]domain.Value) domain.Metadata {
	meta := domain.NewMetadata()
	for k, v := range pairs {
		meta.Set(k, v)
	}
	return meta
}

func TestClassify_ExplicitTypeWins(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"type":        domain.StringValue("manual"),
		"alwaysApply": domain.BoolValue(true),
	})

	// alwaysApply would match the always pattern, but the explicit type wins.
	assert.Equal(t, domain.RuleManual, domain.Classify("body", meta))
}

func TestClassify_UnknownExplicitTypeFallsThrough(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"type":        domain.StringValue("banana"),
		"alwaysApply": domain.BoolValue(true),
	})

	assert.Equal(t, domain.RuleAlways, domain.Classify("body", meta))
}

func TestClassify_AlwaysApplyTrue(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"alwaysApply": domain.BoolValue(true),
	})

	assert.Equal(t, domain.RuleAlways, domain.Classify("body", meta))
}

func TestClassify_GlobsListYieldsAuto(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"globs": domain.ListValue([]string{"*.md"}),
	})

	assert.Equal(t, domain.RuleAuto, domain.Classify("body", meta))
}

func TestClassify_GlobsStringInferredAsAuto(t *testing.T) {
	// A single-string globs is not a list-valued surface pattern, but the
	// inference fallback still picks auto from the field's presence.
	meta := metaWith(map[string]domain.Value{
		"globs": domain.StringValue("*.md"),
	})

	assert.Equal(t, domain.RuleAuto, domain.Classify("body", meta))
}

func TestClassify_AgentsListYieldsAgent(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"agents": domain.ListValue([]string{"claude", "cursor"}),
	})

	assert.Equal(t, domain.RuleAgent, domain.Classify("body", meta))
}

func TestClassify_BodyMarkerBeatsMetadataInference(t *testing.T) {
	// Declarative marker for auto is checked before the agents inference.
	meta := metaWith(map[string]domain.Value{
		"agent": domain.StringValue("claude"),
	})

	assert.Equal(t, domain.RuleAuto, domain.Classify("Rule Type: Auto\n\nbody", meta))
}

func TestClassify_ManualMarker(t *testing.T) {
	assert.Equal(t, domain.RuleManual, domain.Classify("rule type: manual", domain.NewMetadata()))
}

func TestClassify_FallbackIsManual(t *testing.T) {
	assert.Equal(t, domain.RuleManual, domain.Classify("just some text", domain.NewMetadata()))
}

func TestClassify_AlwaysBeatsAutoOnBothSignals(t *testing.T) {
	meta := metaWith(map[string]domain.Value{
		"alwaysApply": domain.BoolValue(true),
		"globs":       domain.ListValue([]string{"*.go"}),
	})

	assert.Equal(t, domain.RuleAlways, domain.Classify("body", meta))
}

func TestNewRuleDocument(t *testing.T) {
	parsed := domain.ParsedMetadata{
		HasBlock: true,
		Metadata: metaWith(map[string]domain.Value{
			"alwaysApply": domain.BoolValue(true),
		}),
		Body: "# Title\nbody",
	}

	doc := domain.NewRuleDocument("rules/a.mdc", "raw", parsed)
	assert.Equal(t, "rules/a.mdc", doc.Path)
	assert.True(t, doc.HasMetadata)
	assert.Equal(t, "# Title\nbody", doc.Body)
	assert.Equal(t, domain.RuleAlways, doc.Type)
}

func TestParseRuleType(t *testing.T) {
	for _, name := range []string{"always", "auto", "agent", "manual"} {
		rt, ok := domain.ParseRuleType(name)
		assert.True(t, ok)
		assert.Equal(t, domain.RuleType(name), rt)
	}

	_, ok := domain.ParseRuleType("unknown")
	assert.False(t, ok)
}
