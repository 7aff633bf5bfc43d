package frontmatter

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rulekit/rulekit/internal/domain"
)

// Delimiter is the line that opens and closes a metadata block.
const Delimiter = "---"

// Parser implements domain.MetadataParser by decoding a YAML frontmatter
// block with gopkg.in/yaml.v3. Field order is preserved via the node API.
type Parser struct{}

func New() *Parser { return &Parser{} }

// Parse splits content into metadata block and body. Absence of a block
// is a warning, a malformed block is an error; neither stops the caller.
func (p *Parser) Parse(content string) domain.ParsedMetadata {
	result := domain.ParsedMetadata{Metadata: domain.NewMetadata(), Body: content}

	if !startsWithDelimiter(content) {
		result.Warnings = append(result.Warnings, "no metadata block found")
		return result
	}

	block, body, ok := splitBlock(content)
	if !ok {
		result.Errors = append(result.Errors, "invalid metadata block structure: missing closing delimiter")
		return result
	}
	result.HasBlock = true
	result.Body = body

	var root yaml.Node
	if err := yaml.Unmarshal([]byte(block), &root); err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("invalid YAML in metadata block: %v", err))
		return result
	}

	mapping := documentMapping(&root)
	if mapping == nil {
		result.Errors = append(result.Errors, "metadata block is not a key/value mapping")
		return result
	}

	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key := mapping.Content[i].Value
		result.Metadata.Set(key, decodeValue(mapping.Content[i+1]))
	}

	result.Errors = append(result.Errors, fieldErrors(result.Metadata)...)
	result.Warnings = append(result.Warnings, fieldWarnings(result.Metadata)...)
	return result
}

func startsWithDelimiter(content string) bool {
	first, _, _ := strings.Cut(content, "\n")
	return strings.TrimRight(first, " \t\r") == Delimiter
}

// splitBlock separates the metadata block from the body. The block is
// closed only by a line holding the delimiter on its own, so a value
// containing "---" cannot truncate it mid-field.
func splitBlock(content string) (block, body string, ok bool) {
	lines := strings.Split(content, "\n")
	for i := 1; i < len(lines); i++ {
		if strings.TrimRight(lines[i], " \t\r") == Delimiter {
			return strings.Join(lines[1:i], "\n"), strings.Join(lines[i+1:], "\n"), true
		}
	}
	return "", "", false
}

// documentMapping unwraps the document node and returns the top-level
// mapping, or nil when the block decodes to a scalar or sequence.
func documentMapping(root *yaml.Node) *yaml.Node {
	node := root
	if node.Kind == yaml.DocumentNode {
		if len(node.Content) == 0 {
			return nil
		}
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	return node
}

func decodeValue(node *yaml.Node) domain.Value {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			b, err := strconv.ParseBool(node.Value)
			if err == nil {
				return domain.BoolValue(b)
			}
		}
		return domain.StringValue(node.Value)
	case yaml.SequenceNode:
		items := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return domain.InvalidValue("list with non-scalar entries")
			}
			items = append(items, item.Value)
		}
		return domain.ListValue(items)
	default:
		return domain.InvalidValue("nested structure")
	}
}

func fieldErrors(meta domain.Metadata) []string {
	var errs []string
	if v, ok := meta.Get("globs"); ok {
		if _, err := v.AsStringList(); err != nil {
			errs = append(errs, "globs must be a string or a list of strings")
		}
	}
	if v, ok := meta.Get("alwaysApply"); ok {
		if _, err := v.AsBool(); err != nil {
			errs = append(errs, "alwaysApply must be a boolean")
		}
	}
	return errs
}

func fieldWarnings(meta domain.Metadata) []string {
	var warnings []string
	if !meta.Has("description") {
		warnings = append(warnings, "missing description field")
	}
	return warnings
}
