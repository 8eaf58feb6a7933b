package ledger_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/aeon/internal/ledger"
)

func TestBumpVersion(testInstance *testing.T) {
	testCases := []struct {
		name            string
		version         any
		kind            ledger.BumpKind
		expectedVersion string
	}{
		{name: "minor_increment", version: "1.3", kind: ledger.BumpMinor, expectedVersion: "1.4"},
		{name: "minor_past_nine", version: "1.9", kind: ledger.BumpMinor, expectedVersion: "1.10"},
		{name: "major_resets_minor", version: "1.3", kind: ledger.BumpMajor, expectedVersion: "2.0"},
		{name: "missing_minor_defaults_to_zero", version: "4", kind: ledger.BumpMinor, expectedVersion: "4.1"},
		{name: "extra_components_dropped", version: "1.2.7", kind: ledger.BumpMinor, expectedVersion: "1.3"},
		{name: "numeric_version", version: json.Number("0.9"), kind: ledger.BumpMinor, expectedVersion: "0.10"},
		{name: "absent_version", version: nil, kind: ledger.BumpMinor, expectedVersion: "0.1"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			body := map[string]any{"identity": map[string]any{"custodian": "Elandros"}}
			if testCase.version != nil {
				body["version"] = testCase.version
			}
			document, documentError := ledger.NewDocument(body)
			require.NoError(testInstance, documentError)

			nextVersion, bumpError := ledger.BumpVersion(document, testCase.kind)
			require.NoError(testInstance, bumpError)
			require.Equal(testInstance, testCase.expectedVersion, nextVersion)
			require.Equal(testInstance, testCase.expectedVersion, document.Body()["version"])
			require.Equal(testInstance, map[string]any{"custodian": "Elandros"}, document.Body()["identity"])
		})
	}
}

func TestBumpVersionRejectsMalformedVersion(testInstance *testing.T) {
	testCases := []struct {
		name    string
		version any
	}{
		{name: "non_numeric", version: "one.two"},
		{name: "empty", version: ""},
		{name: "boolean", version: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			document, documentError := ledger.NewDocument(map[string]any{"version": testCase.version})
			require.NoError(testInstance, documentError)

			_, bumpError := ledger.BumpVersion(document, ledger.BumpMinor)
			var configError *ledger.ConfigError
			require.True(testInstance, errors.As(bumpError, &configError))
			require.Equal(testInstance, testCase.version, document.Body()["version"])
		})
	}
}

func TestVersionNextIsMonotonic(testInstance *testing.T) {
	current := ledger.Version{Major: 3, Minor: 7}
	for iteration := 0; iteration < 5; iteration++ {
		next := current.Next(ledger.BumpMinor)
		require.Equal(testInstance, current.Major, next.Major)
		require.Equal(testInstance, current.Minor+1, next.Minor)
		current = next
	}
	require.Equal(testInstance, "3.12", current.String())
}
