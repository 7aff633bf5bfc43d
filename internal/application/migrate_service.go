package application

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/camelcase"
	"gopkg.in/yaml.v3"

	"github.com/rulekit/rulekit/internal/domain"
)

// MigrateService rewrites non-conforming rule documents into the
// canonical frontmatter+body layout. In preview mode it reports what it
// would do without touching the filesystem.
type MigrateService struct {
	parser       domain.MetadataParser
	scanner      domain.RuleScanner
	store        domain.ContentStore
	configLoader domain.ConfigLoader
}

// NewMigrateService creates a MigrateService with all required dependencies.
func NewMigrateService(
	parser domain.MetadataParser,
	scanner domain.RuleScanner,
	store domain.ContentStore,
	configLoader domain.ConfigLoader,
) *MigrateService {
	return &MigrateService{
		parser: parser, scanner: scanner, store: store, configLoader: configLoader,
	}
}

// Migrate processes every matching file under source. Conforming files
// are left untouched; the rest get a synthesized metadata block and are
// rewritten under target (which may equal source) unless preview is set.
// A failure on one file never aborts the batch.
func (s *MigrateService) Migrate(ctx context.Context, source, target string, preview bool) (*domain.MigrationOutcome, error) {
	absSource, err := filepath.Abs(source)
	if err != nil {
		return nil, fmt.Errorf("resolving source path: %w", err)
	}
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return nil, fmt.Errorf("resolving target path: %w", err)
	}

	cfg, err := s.configLoader.Load(absSource)
	if err != nil {
		cfg = domain.DefaultConfig()
	}

	files, err := s.scanner.Scan(absSource, cfg.Pattern, cfg.ExcludePaths)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", source, err)
	}

	outcome := &domain.MigrationOutcome{
		TypeDistribution: make(map[domain.RuleType]int),
		Preview:          preview,
	}

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			break
		}

		fm := s.migrateFile(absSource, absTarget, path, preview)
		outcome.TotalFiles++
		outcome.Files = append(outcome.Files, fm)

		switch fm.Status {
		case domain.MigrationMigrated:
			outcome.MigratedFiles++
			outcome.TypeDistribution[fm.TypeAfter]++
		case domain.MigrationUnchanged:
			outcome.TypeDistribution[fm.TypeBefore]++
		case domain.MigrationFailed:
			outcome.FailedFiles++
		}
	}

	return outcome, nil
}

func (s *MigrateService) migrateFile(sourceRoot, targetRoot, path string, preview bool) domain.FileMigration {
	content, _, err := s.store.Read(path)
	if err != nil {
		return domain.FileMigration{
			Path:   path,
			Status: domain.MigrationFailed,
			Reason: fmt.Sprintf("cannot read file: %v", err),
		}
	}

	parsed := s.parser.Parse(content)
	before := domain.NewRuleDocument(path, content, parsed).Type

	if conforms(before, parsed) {
		return domain.FileMigration{
			Path:       path,
			TypeBefore: before,
			TypeAfter:  before,
			Status:     domain.MigrationUnchanged,
		}
	}

	rewritten, after, err := synthesize(path, parsed, before)
	if err != nil {
		return domain.FileMigration{
			Path:       path,
			TypeBefore: before,
			Status:     domain.MigrationFailed,
			Reason:     err.Error(),
		}
	}

	if !preview {
		targetPath := path
		if targetRoot != sourceRoot {
			rel, relErr := filepath.Rel(sourceRoot, path)
			if relErr != nil {
				return domain.FileMigration{
					Path:       path,
					TypeBefore: before,
					Status:     domain.MigrationFailed,
					Reason:     fmt.Sprintf("resolving target path: %v", relErr),
				}
			}
			targetPath = filepath.Join(targetRoot, rel)
		}
		if err := writeAtomic(targetPath, rewritten); err != nil {
			return domain.FileMigration{
				Path:       path,
				TypeBefore: before,
				Status:     domain.MigrationFailed,
				Reason:     fmt.Sprintf("writing %s: %v", targetPath, err),
			}
		}
		s.store.Invalidate(targetPath)
	}

	return domain.FileMigration{
		Path:       path,
		TypeBefore: before,
		TypeAfter:  after,
		Status:     domain.MigrationMigrated,
	}
}

// conforms reports whether a document already satisfies its type's
// required-field set with a well-formed metadata block.
func conforms(ruleType domain.RuleType, parsed domain.ParsedMetadata) bool {
	if !parsed.HasBlock || len(parsed.Errors) > 0 {
		return false
	}
	errs, _ := domain.ValidateStructure(ruleType, parsed.Metadata)
	return len(errs) == 0
}

// synthesize builds the canonical document: the existing fields in their
// original order, missing required fields filled with inferred or
// placeholder values, and an explicit type field. Recognized fields whose
// shape the validator rejects are dropped first, so a rewrite cannot
// reproduce the defect it is fixing; the result is re-checked so a file
// that would still fail validation is reported as failed, not migrated.
func synthesize(path string, parsed domain.ParsedMetadata, ruleType domain.RuleType) (string, domain.RuleType, error) {
	meta := domain.NewMetadata()
	for _, field := range parsed.Metadata.Fields() {
		v, _ := parsed.Metadata.Get(field)
		if malformedField(field, v) {
			continue
		}
		meta.Set(field, v)
	}

	if !meta.Has("description") {
		meta.Set("description", domain.StringValue(placeholderDescription(path)))
	}
	if !meta.Has("type") {
		meta.Set("type", domain.StringValue(string(ruleType)))
	}

	switch ruleType {
	case domain.RuleAlways:
		meta.Set("alwaysApply", domain.BoolValue(true))
	case domain.RuleAuto:
		if !meta.Has("globs") {
			meta.Set("globs", domain.ListValue([]string{"**/*"}))
		}
	}

	if errs, _ := domain.ValidateStructure(ruleType, meta); len(errs) > 0 {
		return "", "", fmt.Errorf("synthesized block is still invalid: %s", errs[0])
	}

	block, err := renderBlock(meta)
	if err != nil {
		return "", "", err
	}

	body := strings.TrimLeft(parsed.Body, "\n")
	return block + "\n" + body, ruleType, nil
}

// malformedField reports whether a recognized metadata field carries a
// shape the validator rejects. Free-form prose (description) is left
// alone: destroying user content is worse than failing the file.
func malformedField(field string, v domain.Value) bool {
	switch field {
	case "alwaysApply":
		_, err := v.AsBool()
		return err != nil
	case "globs":
		_, err := v.AsStringList()
		return err != nil
	case "type":
		s, err := v.AsString()
		if err != nil {
			return true
		}
		_, known := domain.ParseRuleType(s)
		return !known
	}
	return false
}

// placeholderDescription derives a readable description from the file
// stem, splitting camelCase and kebab/snake separators into words.
func placeholderDescription(path string) string {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	var words []string
	for _, part := range strings.FieldsFunc(stem, func(r rune) bool { return r == '-' || r == '_' || r == '.' }) {
		for _, w := range camelcase.Split(part) {
			words = append(words, strings.ToLower(w))
		}
	}
	if len(words) == 0 {
		return "rule"
	}
	return strings.Join(words, " ") + " rule"
}

// renderBlock marshals the metadata through a yaml.Node mapping so the
// output keeps field order.
func renderBlock(meta domain.Metadata) (string, error) {
	mapping := &yaml.Node{Kind: yaml.MappingNode}

	for _, field := range meta.Fields() {
		v, _ := meta.Get(field)
		valueNode, err := valueNode(v)
		if err != nil {
			return "", fmt.Errorf("cannot rewrite field %q: %w", field, err)
		}
		mapping.Content = append(mapping.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: field},
			valueNode,
		)
	}

	data, err := yaml.Marshal(mapping)
	if err != nil {
		return "", fmt.Errorf("encoding metadata block: %w", err)
	}

	return "---\n" + string(data) + "---\n", nil
}

func valueNode(v domain.Value) (*yaml.Node, error) {
	switch v.Kind() {
	case domain.KindString:
		s, _ := v.AsString()
		return &yaml.Node{Kind: yaml.ScalarNode, Value: s}, nil
	case domain.KindBool:
		b, _ := v.AsBool()
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: fmt.Sprintf("%t", b)}, nil
	case domain.KindStringList:
		items, _ := v.AsStringList()
		node := &yaml.Node{Kind: yaml.SequenceNode}
		for _, item := range items {
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: item})
		}
		return node, nil
	default:
		return nil, fmt.Errorf("unsupported value shape")
	}
}

// writeAtomic writes content to a temporary file in the target directory
// and renames it into place, so readers never see a partial rewrite.
func writeAtomic(path, content string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".rulekit-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
