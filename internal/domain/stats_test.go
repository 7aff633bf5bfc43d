package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/domain"
)

func result(path string, ruleType domain.RuleType, errs ...string) domain.ValidationResult {
	return domain.ValidationResult{
		FilePath: path,
		IsValid:  len(errs) == 0,
		RuleType: ruleType,
		Errors:   errs,
	}
}

func TestAggregate_Counts(t *testing.T) {
	results := []domain.ValidationResult{
		result("a.mdc", domain.RuleAlways),
		result("b.mdc", domain.RuleAuto),
		result("c.mdc", domain.RuleAuto, "missing required field \"globs\" for type auto"),
	}

	stats := domain.Aggregate(results, 10*time.Millisecond, 5)

	assert.Equal(t, 3, stats.TotalFiles)
	assert.Equal(t, 2, stats.ValidFiles)
	assert.Equal(t, 1, stats.InvalidFiles)
	assert.Equal(t, stats.TotalFiles, stats.ValidFiles+stats.InvalidFiles)
	assert.Equal(t, 1, stats.ByType[domain.RuleAlways])
	assert.Equal(t, 2, stats.ByType[domain.RuleAuto])
	assert.InDelta(t, 66.6, stats.HealthScore, 0.1)
	assert.Equal(t, 10*time.Millisecond, stats.Elapsed)
}

func TestAggregate_EmptyDirectoryIsHealthy(t *testing.T) {
	stats := domain.Aggregate(nil, 0, 5)

	assert.Equal(t, 0, stats.TotalFiles)
	assert.Equal(t, 100.0, stats.HealthScore)
}

func TestAggregate_TopErrorsSortedByCount(t *testing.T) {
	results := []domain.ValidationResult{
		result("a.mdc", domain.RuleManual, "rare error", "common error"),
		result("b.mdc", domain.RuleManual, "common error"),
		result("c.mdc", domain.RuleManual, "common error"),
	}

	stats := domain.Aggregate(results, 0, 5)

	require.Len(t, stats.TopErrors, 2)
	assert.Equal(t, domain.ErrorCount{Message: "common error", Count: 3}, stats.TopErrors[0])
	assert.Equal(t, domain.ErrorCount{Message: "rare error", Count: 1}, stats.TopErrors[1])
}

func TestAggregate_TopErrorsTiesKeepFirstSeenOrder(t *testing.T) {
	results := []domain.ValidationResult{
		result("a.mdc", domain.RuleManual, "first", "second"),
		result("b.mdc", domain.RuleManual, "second", "first"),
	}

	stats := domain.Aggregate(results, 0, 5)

	require.Len(t, stats.TopErrors, 2)
	assert.Equal(t, "first", stats.TopErrors[0].Message)
	assert.Equal(t, "second", stats.TopErrors[1].Message)
}

func TestAggregate_TopErrorsTruncated(t *testing.T) {
	results := []domain.ValidationResult{
		result("a.mdc", domain.RuleManual, "e1", "e2", "e3"),
	}

	stats := domain.Aggregate(results, 0, 2)
	assert.Len(t, stats.TopErrors, 2)
}

func TestHealthScore(t *testing.T) {
	assert.Equal(t, 100.0, domain.HealthScore(0, 0))
	assert.Equal(t, 70.0, domain.HealthScore(7, 10))
	assert.Equal(t, 0.0, domain.HealthScore(0, 3))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, domain.DefaultConfig().Validate())

	bad := domain.DefaultConfig()
	bad.Concurrency = 0
	assert.Error(t, bad.Validate())

	bad = domain.DefaultConfig()
	bad.Pattern = ""
	assert.Error(t, bad.Validate())

	bad = domain.DefaultConfig()
	bad.CacheSize = 0
	assert.Error(t, bad.Validate())
}
