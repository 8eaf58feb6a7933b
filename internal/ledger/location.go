package ledger

import "fmt"

const (
	// WrapperKey names the object that holds the ledger inside a wrapped document.
	WrapperKey = "vault_bridge"

	locationRootDescriptionConstant    = "root"
	locationWrappedDescriptionTemplate = "wrapped(%s)"
)

// LocationKind distinguishes the two accepted ledger shapes.
type LocationKind int

// Supported ledger shapes.
const (
	LocationKindRoot LocationKind = iota
	LocationKindWrapped
)

// Location records where the ledger object lives inside the document: either the
// document root itself or a named object under the root.
type Location struct {
	kind LocationKind
	key  string
}

// RootLocation describes a ledger stored bare at the document root.
func RootLocation() Location {
	return Location{kind: LocationKindRoot}
}

// WrappedLocation describes a ledger stored under key.
func WrappedLocation(key string) Location {
	return Location{kind: LocationKindWrapped, key: key}
}

// Kind reports the shape.
func (location Location) Kind() LocationKind {
	return location.kind
}

// IsWrapped reports whether the ledger is nested under a key.
func (location Location) IsWrapped() bool {
	return location.kind == LocationKindWrapped
}

// Key returns the wrapping key, or an empty string for root ledgers.
func (location Location) Key() string {
	return location.key
}

// String renders the location for logs.
func (location Location) String() string {
	if location.IsWrapped() {
		return fmt.Sprintf(locationWrappedDescriptionTemplate, location.key)
	}
	return locationRootDescriptionConstant
}

// Resolve finds the ledger object inside a decoded document root.
func Resolve(root map[string]any) (map[string]any, Location, error) {
	wrapped, wrapperPresent := root[WrapperKey]
	if !wrapperPresent {
		return root, RootLocation(), nil
	}
	body, isObject := wrapped.(map[string]any)
	if !isObject {
		return nil, Location{}, newConfigError("", fmt.Sprintf(reasonWrapperNotObjectTemplate, WrapperKey), nil)
	}
	return body, WrappedLocation(WrapperKey), nil
}
