package domain

import "time"

// RuleType classifies how a rule document is meant to be applied.
type RuleType string

const (
	RuleAlways RuleType = "always"
	RuleAuto   RuleType = "auto"
	RuleAgent  RuleType = "agent"
	RuleManual RuleType = "manual"
)

// RuleTypes lists all rule types in classification order.
var RuleTypes = []RuleType{RuleAlways, RuleAuto, RuleAgent, RuleManual}

// ParseRuleType maps a declared type name to a RuleType.
func ParseRuleType(s string) (RuleType, bool) {
	switch RuleType(s) {
	case RuleAlways, RuleAuto, RuleAgent, RuleManual:
		return RuleType(s), true
	}
	return "", false
}

// RuleDocument is the in-memory representation of one rule file.
// It is built fresh per scan pass and never mutated after classification.
type RuleDocument struct {
	Path        string   `json:"path"`
	RawContent  string   `json:"-"`
	HasMetadata bool     `json:"has_metadata"`
	Metadata    Metadata `json:"-"`
	Body        string   `json:"-"`
	Type        RuleType `json:"type"`
}

// NewRuleDocument assembles the classified document view of parsed content.
func NewRuleDocument(path, content string, parsed ParsedMetadata) RuleDocument {
	return RuleDocument{
		Path:        path,
		RawContent:  content,
		HasMetadata: parsed.HasBlock,
		Metadata:    parsed.Metadata,
		Body:        parsed.Body,
		Type:        Classify(content, parsed.Metadata),
	}
}

// FileStat carries the file-level numbers recorded alongside a validation.
type FileStat struct {
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}

// ValidationResult is the outcome of validating a single rule document.
// IsValid is true iff Errors is empty; warnings never affect validity.
type ValidationResult struct {
	FilePath string         `json:"file_path"`
	IsValid  bool           `json:"is_valid"`
	RuleType RuleType       `json:"rule_type"`
	Errors   []string       `json:"errors"`
	Warnings []string       `json:"warnings"`
	Metadata ResultMetadata `json:"metadata"`
}

// ResultMetadata describes the validated file itself.
type ResultMetadata struct {
	FileSize    int64     `json:"file_size"`
	LineCount   int       `json:"line_count"`
	HasMetadata bool      `json:"has_metadata_block"`
	Fields      []string  `json:"fields,omitempty"`
	RuleType    RuleType  `json:"rule_type"`
	ModTime     time.Time `json:"last_modified"`
}

// ErrorCount is one row of the recurring-error frequency table.
type ErrorCount struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}

// DirectoryStats aggregates per-file results for one directory scan.
type DirectoryStats struct {
	TotalFiles   int              `json:"total_files"`
	ValidFiles   int              `json:"valid_files"`
	InvalidFiles int              `json:"invalid_files"`
	ByType       map[RuleType]int `json:"by_type"`
	TopErrors    []ErrorCount     `json:"top_errors,omitempty"`
	Elapsed      time.Duration    `json:"elapsed_ns"`
	HealthScore  float64          `json:"health_score"`
}

// Migration statuses for a single file.
const (
	MigrationMigrated  = "migrated"
	MigrationUnchanged = "unchanged"
	MigrationFailed    = "failed"
)

// FileMigration records the before/after classification of one file.
type FileMigration struct {
	Path       string   `json:"path"`
	TypeBefore RuleType `json:"type_before"`
	TypeAfter  RuleType `json:"type_after,omitempty"`
	Status     string   `json:"status"`
	Reason     string   `json:"reason,omitempty"`
}

// MigrationOutcome summarizes a migration pass over a directory.
// Files that already conform count toward neither migrated nor failed,
// so MigratedFiles + FailedFiles <= TotalFiles.
type MigrationOutcome struct {
	TotalFiles       int              `json:"total_files"`
	MigratedFiles    int              `json:"migrated_files"`
	FailedFiles      int              `json:"failed_files"`
	TypeDistribution map[RuleType]int `json:"rule_type_distribution"`
	Files            []FileMigration  `json:"files"`
	Preview          bool             `json:"preview"`
}

// HealthEntry is one appended record in the directory health history.
type HealthEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	CommitHash  string    `json:"commit_hash,omitempty"`
	TotalFiles  int       `json:"total_files"`
	ValidFiles  int       `json:"valid_files"`
	HealthScore float64   `json:"health_score"`
}
