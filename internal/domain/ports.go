package domain

// ParsedMetadata is the outcome of extracting the frontmatter block
// from a document. Parse problems are collected, never raised: a
// malformed block must not abort the pipeline.
type ParsedMetadata struct {
	HasBlock bool
	Metadata Metadata
	Body     string
	Errors   []string
	Warnings []string
}

// MetadataParser extracts and decodes the frontmatter block.
type MetadataParser interface {
	Parse(content string) ParsedMetadata
}

// RuleScanner enumerates rule files under a root directory.
type RuleScanner interface {
	Scan(root, pattern string, excludePaths []string) ([]string, error)
}

// ContentStore reads file contents, possibly through a cache.
type ContentStore interface {
	Read(path string) (string, FileStat, error)
	Invalidate(path string)
}

// ConfigLoader reads the scan configuration for a root directory.
type ConfigLoader interface {
	Load(root string) (Config, error)
}

// GitInfo resolves version-control metadata for a directory.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// HistoryStore persists directory health entries across scans.
type HistoryStore interface {
	Append(root string, entry HealthEntry) error
	Load(root string) ([]HealthEntry, error)
}
