package application

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rulekit/rulekit/internal/domain"
)

// ValidateService runs the per-document pipeline (parse, classify,
// validate) and fans out over directories with a bounded worker pool.
type ValidateService struct {
	parser       domain.MetadataParser
	scanner      domain.RuleScanner
	store        domain.ContentStore
	configLoader domain.ConfigLoader
}

// NewValidateService creates a ValidateService with all required dependencies.
func NewValidateService(
	parser domain.MetadataParser,
	scanner domain.RuleScanner,
	store domain.ContentStore,
	configLoader domain.ConfigLoader,
) *ValidateService {
	return &ValidateService{
		parser: parser, scanner: scanner, store: store, configLoader: configLoader,
	}
}

// ValidateFile validates a single rule document. It never returns an
// error: I/O faults become a synthetic error result for the path.
func (s *ValidateService) ValidateFile(path string) domain.ValidationResult {
	content, stat, err := s.store.Read(path)
	if err != nil {
		return syntheticResult(path, fmt.Sprintf("cannot read file: %v", err))
	}
	return s.validateContent(path, content, stat)
}

// validateContent runs the pipeline on already-read content. A panic in
// any stage is converted into a synthetic error result so one document
// can never abort a batch.
func (s *ValidateService) validateContent(path, content string, stat domain.FileStat) (result domain.ValidationResult) {
	defer func() {
		if r := recover(); r != nil {
			result = syntheticResult(path, fmt.Sprintf("validator failure: %v", r))
		}
	}()

	if strings.TrimSpace(content) == "" {
		result = syntheticResult(path, "file is empty")
		result.Metadata.FileSize = stat.Size
		result.Metadata.ModTime = stat.ModTime
		return result
	}

	parsed := s.parser.Parse(content)
	doc := domain.NewRuleDocument(path, content, parsed)

	errs := append([]string(nil), parsed.Errors...)
	warnings := append([]string(nil), parsed.Warnings...)

	structErrs, structWarns := domain.ValidateStructure(doc.Type, doc.Metadata)
	errs = append(errs, structErrs...)
	warnings = append(warnings, structWarns...)

	warnings = append(warnings, domain.ValidateContent(doc.Body)...)

	globErrs, globWarns := domain.ValidateGlobs(doc.Metadata)
	errs = append(errs, globErrs...)
	warnings = append(warnings, globWarns...)

	errs = dedupe(errs)

	return domain.ValidationResult{
		FilePath: path,
		IsValid:  len(errs) == 0,
		RuleType: doc.Type,
		Errors:   errs,
		Warnings: warnings,
		Metadata: domain.ResultMetadata{
			FileSize:    stat.Size,
			LineCount:   strings.Count(content, "\n") + 1,
			HasMetadata: doc.HasMetadata,
			Fields:      doc.Metadata.Fields(),
			RuleType:    doc.Type,
			ModTime:     stat.ModTime,
		},
	}
}

// ValidateDirectory validates every matching file under root. Results
// are collected in completion order; aggregation is order-independent.
// A missing root yields a single synthetic failing result.
func (s *ValidateService) ValidateDirectory(ctx context.Context, root, pattern string) ([]domain.ValidationResult, domain.DirectoryStats) {
	start := time.Now()

	cfg, err := s.configLoader.Load(root)
	if err != nil {
		cfg = domain.DefaultConfig()
	}
	if pattern == "" {
		pattern = cfg.Pattern
	}

	files, err := s.scanner.Scan(root, pattern, cfg.ExcludePaths)
	if err != nil {
		results := []domain.ValidationResult{
			syntheticResult(root, fmt.Sprintf("cannot scan directory: %v", err)),
		}
		return results, domain.Aggregate(results, time.Since(start), cfg.TopErrors)
	}

	results := s.validateAll(ctx, files, cfg.Concurrency)
	return results, domain.Aggregate(results, time.Since(start), cfg.TopErrors)
}

// validateAll fans file validation out over a bounded worker pool.
// Cancellation stops enqueuing between files; in-flight files finish.
func (s *ValidateService) validateAll(ctx context.Context, files []string, workers int) []domain.ValidationResult {
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan string)
	out := make(chan domain.ValidationResult)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				out <- s.ValidateFile(path)
			}
		}()
	}

	go func() {
		defer close(jobs)
		for _, f := range files {
			select {
			case <-ctx.Done():
				return
			case jobs <- f:
			}
		}
	}()

	go func() {
		wg.Wait()
		close(out)
	}()

	var results []domain.ValidationResult
	for r := range out {
		results = append(results, r)
	}
	return results
}

func syntheticResult(path, message string) domain.ValidationResult {
	return domain.ValidationResult{
		FilePath: path,
		IsValid:  false,
		RuleType: domain.RuleManual,
		Errors:   []string{message},
		Metadata: domain.ResultMetadata{RuleType: domain.RuleManual},
	}
}

// dedupe removes repeated messages, keeping first occurrence order.
func dedupe(msgs []string) []string {
	seen := make(map[string]bool, len(msgs))
	var unique []string
	for _, m := range msgs {
		if !seen[m] {
			seen[m] = true
			unique = append(unique, m)
		}
	}
	return unique
}
