package domain

import "fmt"

// ValueKind discriminates the variants a metadata value can take.
type ValueKind int

const (
	KindString ValueKind = iota
	KindBool
	KindStringList
	KindInvalid
)

func (k ValueKind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindStringList:
		return "string list"
	default:
		return "invalid"
	}
}

// Value is a tagged union over the scalar shapes a frontmatter field can
// carry. Accessors return a TypeError on kind mismatch instead of relying
// on runtime type inspection.
type Value struct {
	kind ValueKind
	str  string
	b    bool
	list []string
}

func StringValue(s string) Value     { return Value{kind: KindString, str: s} }
func BoolValue(b bool) Value         { return Value{kind: KindBool, b: b} }
func ListValue(items []string) Value { return Value{kind: KindStringList, list: items} }

// InvalidValue marks a field whose YAML shape has no supported mapping
// (e.g. a nested mapping or a list of non-scalars). raw is kept for
// error messages only.
func InvalidValue(raw string) Value { return Value{kind: KindInvalid, str: raw} }

func (v Value) Kind() ValueKind { return v.kind }

// TypeError reports an accessor called on a Value of the wrong kind.
type TypeError struct {
	Want ValueKind
	Got  ValueKind
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("value is %s, not %s", e.Got, e.Want)
}

// AsString returns the string form of the value.
func (v Value) AsString() (string, error) {
	if v.kind != KindString {
		return "", &TypeError{Want: KindString, Got: v.kind}
	}
	return v.str, nil
}

// AsBool returns the boolean form of the value.
func (v Value) AsBool() (bool, error) {
	if v.kind != KindBool {
		return false, &TypeError{Want: KindBool, Got: v.kind}
	}
	return v.b, nil
}

// AsStringList returns the list form of the value. A single string is
// promoted to a one-element list.
func (v Value) AsStringList() ([]string, error) {
	switch v.kind {
	case KindStringList:
		return v.list, nil
	case KindString:
		return []string{v.str}, nil
	default:
		return nil, &TypeError{Want: KindStringList, Got: v.kind}
	}
}

// Metadata is the decoded frontmatter block. Field order is preserved
// as it appeared in the document.
type Metadata struct {
	fields []string
	values map[string]Value
}

func NewMetadata() Metadata {
	return Metadata{values: make(map[string]Value)}
}

// Set adds or replaces a field. First insertion fixes the field's position.
func (m *Metadata) Set(key string, v Value) {
	if m.values == nil {
		m.values = make(map[string]Value)
	}
	if _, ok := m.values[key]; !ok {
		m.fields = append(m.fields, key)
	}
	m.values[key] = v
}

func (m Metadata) Get(key string) (Value, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Fields returns the field names in document order.
func (m Metadata) Fields() []string { return m.fields }

func (m Metadata) Len() int { return len(m.fields) }

// BoolIs reports whether key holds a boolean equal to want.
func (m Metadata) BoolIs(key string, want bool) bool {
	v, ok := m.values[key]
	if !ok {
		return false
	}
	b, err := v.AsBool()
	return err == nil && b == want
}
