package ledger

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

const (
	fieldPathSeparatorConstant = "."
	versionFieldConstant       = "version"
)

// Document is a loaded ledger: the decoded document root, the ledger object inside
// it, and the location the ledger object was found at.
type Document struct {
	sourcePath string
	root       map[string]any
	body       map[string]any
	location   Location
}

// NewDocument wraps an already decoded document root.
func NewDocument(root map[string]any) (*Document, error) {
	if root == nil {
		root = map[string]any{}
	}
	body, location, resolveError := Resolve(root)
	if resolveError != nil {
		return nil, resolveError
	}
	return &Document{root: root, body: body, location: location}, nil
}

// SourcePath returns the path the document was loaded from.
func (document *Document) SourcePath() string {
	return document.sourcePath
}

// Location reports the detected ledger shape.
func (document *Document) Location() Location {
	return document.location
}

// Body exposes the ledger object.
func (document *Document) Body() map[string]any {
	return document.body
}

// Lookup returns the value at the dotted field path inside the ledger object.
func (document *Document) Lookup(fieldPath ...string) (any, bool) {
	var current any = document.body
	for _, segment := range fieldPath {
		object, isObject := current.(map[string]any)
		if !isObject {
			return nil, false
		}
		value, present := object[segment]
		if !present {
			return nil, false
		}
		current = value
	}
	return current, true
}

// LookupString returns the value at fieldPath rendered as text; absent and null values are empty.
func (document *Document) LookupString(fieldPath ...string) string {
	value, present := document.Lookup(fieldPath...)
	if !present || value == nil {
		return ""
	}
	if text, isText := value.(string); isText {
		return text
	}
	return fmt.Sprint(value)
}

// EnsureObject returns the object at fieldPath, creating missing objects along the way.
func (document *Document) EnsureObject(fieldPath ...string) (map[string]any, error) {
	current := document.body
	for index, segment := range fieldPath {
		value, present := current[segment]
		if !present || value == nil {
			created := map[string]any{}
			current[segment] = created
			current = created
			continue
		}
		object, isObject := value.(map[string]any)
		if !isObject {
			return nil, document.fieldError(reasonFieldNotObjectTemplate, fieldPath[:index+1])
		}
		current = object
	}
	return current, nil
}

// List returns the array at fieldPath. Absent or null fields yield an empty list.
func (document *Document) List(fieldPath ...string) ([]any, error) {
	value, present := document.Lookup(fieldPath...)
	if !present || value == nil {
		return nil, nil
	}
	list, isList := value.([]any)
	if !isList {
		return nil, document.fieldError(reasonFieldNotListTemplate, fieldPath)
	}
	return list, nil
}

// Append adds values to the end of the array at fieldPath, creating the array and its parents when missing.
func (document *Document) Append(fieldPath []string, values ...any) error {
	if len(fieldPath) == 0 {
		return nil
	}
	parent, parentError := document.EnsureObject(fieldPath[:len(fieldPath)-1]...)
	if parentError != nil {
		return parentError
	}
	listKey := fieldPath[len(fieldPath)-1]

	existing := []any{}
	if value, present := parent[listKey]; present && value != nil {
		list, isList := value.([]any)
		if !isList {
			return document.fieldError(reasonFieldNotListTemplate, fieldPath)
		}
		existing = list
	}
	parent[listKey] = append(existing, values...)
	return nil
}

// Decode copies the value at fieldPath into target using mapstructure tags.
// Scalars are converted weakly so numeric free-text fields still decode into strings.
func (document *Document) Decode(target any, fieldPath ...string) error {
	value, present := document.Lookup(fieldPath...)
	if !present || value == nil {
		return nil
	}
	decoder, decoderError := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if decoderError != nil {
		return decoderError
	}
	if decodeError := decoder.Decode(value); decodeError != nil {
		return newConfigError(document.sourcePath, fmt.Sprintf(reasonFieldDecodeTemplate, strings.Join(fieldPath, fieldPathSeparatorConstant)), decodeError)
	}
	return nil
}

// Version returns the current version text and whether the field is set.
func (document *Document) Version() (string, bool, error) {
	value, present := document.body[versionFieldConstant]
	if !present || value == nil {
		return "", false, nil
	}
	switch typed := value.(type) {
	case string:
		return typed, true, nil
	case fmt.Stringer:
		return typed.String(), true, nil
	default:
		return "", true, newConfigError(document.sourcePath, fmt.Sprintf(reasonVersionTypeTemplate, value), nil)
	}
}

func (document *Document) setVersion(version string) {
	document.body[versionFieldConstant] = version
}

// payload returns the value that is serialized when the document is saved.
func (document *Document) payload() map[string]any {
	if document.location.IsWrapped() {
		document.root[document.location.Key()] = document.body
		return document.root
	}
	return document.body
}

func (document *Document) fieldError(reasonTemplate string, fieldPath []string) error {
	return newConfigError(document.sourcePath, fmt.Sprintf(reasonTemplate, strings.Join(fieldPath, fieldPathSeparatorConstant)), nil)
}
