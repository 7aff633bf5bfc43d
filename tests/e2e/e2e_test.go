package e2e_test

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rulekit/rulekit/internal/domain"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "rulekit-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "rulekit")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/rulekit")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/rules", name))
	return abs
}

// copyFixture clones a fixture directory so migrate tests can write.
func copyFixture(t *testing.T, name string) string {
	t.Helper()
	dest := t.TempDir()
	src := fixturePath(name)

	entries, err := os.ReadDir(src)
	require.NoError(t, err)
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(src, e.Name()))
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dest, e.Name()), data, 0644))
	}
	return dest
}

func run(t *testing.T, args ...string) (string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	out, err := cmd.CombinedOutput()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return string(out), exitCode
}

// --- Validate Tests ---

func TestE2E_ValidateHealthyDirectory(t *testing.T) {
	out, code := run(t, "validate", fixturePath("valid"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rulekit")
	assert.Contains(t, out, "100.0%")
	assert.Contains(t, out, "All rule documents are valid.")
}

func TestE2E_ValidateJSON(t *testing.T) {
	out, code := run(t, "validate", fixturePath("valid"), "--json")
	assert.Equal(t, 0, code)

	var report struct {
		Stats   domain.DirectoryStats     `json:"stats"`
		Results []domain.ValidationResult `json:"results"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 4, report.Stats.TotalFiles)
	assert.Equal(t, 4, report.Stats.ValidFiles)
	assert.InDelta(t, 100.0, report.Stats.HealthScore, 0.01)
	for _, typ := range domain.RuleTypes {
		assert.Equal(t, 1, report.Stats.ByType[typ], "one fixture per type %s", typ)
	}
}

func TestE2E_ValidateMixedDirectory(t *testing.T) {
	out, code := run(t, "validate", fixturePath("mixed"), "--json")
	assert.Equal(t, 0, code)

	var report struct {
		Stats domain.DirectoryStats `json:"stats"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, 3, report.Stats.TotalFiles)
	assert.Equal(t, 1, report.Stats.ValidFiles)
	assert.InDelta(t, 33.33, report.Stats.HealthScore, 0.01)
}

func TestE2E_ValidateCI(t *testing.T) {
	_, code := run(t, "validate", fixturePath("mixed"), "--ci", "--min", "100")
	assert.Equal(t, 1, code, "should exit 1 when below minimum")
}

func TestE2E_ValidateSingleFile(t *testing.T) {
	out, code := run(t, "validate", filepath.Join(fixturePath("valid"), "components.mdc"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "always")
	assert.Contains(t, out, "No issues found.")
}

// --- Classify Tests ---

func TestE2E_Classify(t *testing.T) {
	out, code := run(t, "classify", filepath.Join(fixturePath("valid"), "go-style.mdc"))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "auto")
}

// --- Migrate Tests ---

func TestE2E_MigratePreview(t *testing.T) {
	dir := copyFixture(t, "mixed")

	out, code := run(t, "migrate", dir, "--preview")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "migration preview")
	assert.Contains(t, out, "2 migrated / 0 failed / 3 total")
}

func TestE2E_MigrateThenValidate(t *testing.T) {
	dir := copyFixture(t, "mixed")

	_, code := run(t, "migrate", dir)
	require.Equal(t, 0, code)

	_, code = run(t, "validate", dir, "--ci", "--min", "100")
	assert.Equal(t, 0, code, "a migrated directory should be fully healthy")
}

// --- Version Test ---

func TestE2E_Version(t *testing.T) {
	out, code := run(t, "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rulekit")
}
