package page

import "sort"

// FieldKind tags the editor widget a content value needs. Derived from
// the runtime shape of the value, not from a per-block table, so a key
// the editor has never seen still gets a usable input.
type FieldKind int

const (
	// FieldText is a single-line string value.
	FieldText FieldKind = iota
	// FieldMultiline is a string value the block renders as body text.
	FieldMultiline
	// FieldList is a string-list value, one input per element.
	FieldList
)

// FieldDescriptor describes one editable content field to the builder.
type FieldDescriptor struct {
	Key   string
	Kind  FieldKind
	Value string
	Items []string
}

// multilineKeys are content keys whose string values get a textarea
// instead of a single-line input. Purely a widget hint; the data model
// does not distinguish them.
var multilineKeys = map[string]bool{
	"body":        true,
	"bio":         true,
	"subheadline": true,
	"message":     true,
}

// DescribeContent derives field descriptors from a content map by
// introspecting each value's shape. Keys are sorted so the editor
// renders a stable field order. Values that are neither strings nor
// string lists are skipped rather than guessed at.
func DescribeContent(c Content) []FieldDescriptor {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]FieldDescriptor, 0, len(keys))
	for _, k := range keys {
		switch v := c[k].(type) {
		case string:
			kind := FieldText
			if multilineKeys[k] {
				kind = FieldMultiline
			}
			out = append(out, FieldDescriptor{Key: k, Kind: kind, Value: v})
		case []string, []any:
			out = append(out, FieldDescriptor{Key: k, Kind: FieldList, Items: c.List(k)})
		}
	}
	return out
}
