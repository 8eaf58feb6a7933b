package ledger

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	versionSeparatorConstant      = "."
	versionTemplateConstant       = "%d.%d"
	defaultVersionConstant        = "0.0"
	defaultMinorComponentConstant = "0"
)

// BumpKind selects which version component BumpVersion increments.
type BumpKind int

// Supported bump kinds.
const (
	BumpMinor BumpKind = iota
	BumpMajor
)

// Version is a parsed major.minor ledger version.
type Version struct {
	Major int
	Minor int
}

// String renders the version as major.minor.
func (version Version) String() string {
	return fmt.Sprintf(versionTemplateConstant, version.Major, version.Minor)
}

// Next returns the version after a bump of the given kind.
func (version Version) Next(kind BumpKind) Version {
	if kind == BumpMajor {
		return Version{Major: version.Major + 1, Minor: 0}
	}
	return Version{Major: version.Major, Minor: version.Minor + 1}
}

// ParseVersion reads major.minor text. A missing minor component counts as zero and
// components after the minor one are ignored.
func ParseVersion(raw string) (Version, error) {
	components := strings.Split(raw, versionSeparatorConstant)
	if len(components) == 1 {
		components = append(components, defaultMinorComponentConstant)
	}
	major, majorError := strconv.Atoi(strings.TrimSpace(components[0]))
	if majorError != nil {
		return Version{}, fmt.Errorf(reasonVersionMalformedTemplate, raw)
	}
	minor, minorError := strconv.Atoi(strings.TrimSpace(components[1]))
	if minorError != nil {
		return Version{}, fmt.Errorf(reasonVersionMalformedTemplate, raw)
	}
	return Version{Major: major, Minor: minor}, nil
}

// BumpVersion increments the ledger version, stores it back into the document, and returns it.
// Only the version field is read.
func BumpVersion(document *Document, kind BumpKind) (string, error) {
	current, present, versionError := document.Version()
	if versionError != nil {
		return "", versionError
	}
	if !present {
		current = defaultVersionConstant
	}

	parsed, parseError := ParseVersion(current)
	if parseError != nil {
		return "", newConfigError(document.sourcePath, parseError.Error(), nil)
	}

	next := parsed.Next(kind).String()
	document.setVersion(next)
	return next, nil
}
