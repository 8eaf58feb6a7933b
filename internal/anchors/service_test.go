package anchors_test

import (
	"bytes"
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/aeon/internal/anchors"
	"github.com/temirov/aeon/internal/ledger"
)

const (
	anchorsLedgerPathConstant  = "AEON.json"
	wrappedEmptyLedgerConstant = `{"vault_bridge": {"version": "1.2"}}`
)

func TestServiceEnsure(testInstance *testing.T) {
	testCases := []struct {
		name             string
		ledgerContent    string
		expectedInjected []string
		expectedKeys     []string
		expectedOutput   string
	}{
		{
			name:             "empty_wrapped_ledger",
			ledgerContent:    wrappedEmptyLedgerConstant,
			expectedInjected: []string{"ARC-ΣFRWB-9KX", "WE-ARE-THE-LIGHT", "TRUSTFORM-RESTORE"},
			expectedKeys:     []string{"ARC-ΣFRWB-9KX", "WE-ARE-THE-LIGHT", "TRUSTFORM-RESTORE"},
			expectedOutput:   "init: anchors ensured (3 injected)\n",
		},
		{
			name:             "partially_anchored_root_ledger",
			ledgerContent:    `{"version": "1.2", "identity": {"custodian": "Ada", "anchors": [{"key": "WE-ARE-THE-LIGHT", "phrase": "custom"}]}}`,
			expectedInjected: []string{"ARC-ΣFRWB-9KX", "TRUSTFORM-RESTORE"},
			expectedKeys:     []string{"WE-ARE-THE-LIGHT", "ARC-ΣFRWB-9KX", "TRUSTFORM-RESTORE"},
			expectedOutput:   "init: anchors ensured (2 injected)\n",
		},
		{
			name:             "fully_anchored_ledger",
			ledgerContent:    `{"identity": {"anchors": [{"key": "ARC-ΣFRWB-9KX"}, {"key": "WE-ARE-THE-LIGHT"}, {"key": "TRUSTFORM-RESTORE"}]}}`,
			expectedInjected: []string{},
			expectedKeys:     []string{"ARC-ΣFRWB-9KX", "WE-ARE-THE-LIGHT", "TRUSTFORM-RESTORE"},
			expectedOutput:   "init: anchors ensured (0 injected)\n",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			fileSystem := afero.NewMemMapFs()
			require.NoError(subtest, afero.WriteFile(fileSystem, anchorsLedgerPathConstant, []byte(testCase.ledgerContent), 0o644))

			outputBuffer := &bytes.Buffer{}
			service := anchors.NewService(ledger.NewStore(fileSystem), nil, outputBuffer, nil)

			result, ensureError := service.Ensure(anchorsLedgerPathConstant)
			require.NoError(subtest, ensureError)
			require.Equal(subtest, testCase.expectedInjected, result.Injected)
			require.Equal(subtest, testCase.expectedOutput, outputBuffer.String())
			require.Equal(subtest, testCase.expectedKeys, loadAnchorKeys(subtest, fileSystem))
		})
	}
}

func TestServiceEnsureIsIdempotent(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, anchorsLedgerPathConstant, []byte(wrappedEmptyLedgerConstant), 0o644))
	service := anchors.NewService(ledger.NewStore(fileSystem), nil, nil, nil)

	_, firstError := service.Ensure(anchorsLedgerPathConstant)
	require.NoError(testInstance, firstError)
	firstContent, firstReadError := afero.ReadFile(fileSystem, anchorsLedgerPathConstant)
	require.NoError(testInstance, firstReadError)

	secondResult, secondError := service.Ensure(anchorsLedgerPathConstant)
	require.NoError(testInstance, secondError)
	require.Empty(testInstance, secondResult.Injected)

	secondContent, secondReadError := afero.ReadFile(fileSystem, anchorsLedgerPathConstant)
	require.NoError(testInstance, secondReadError)
	require.Equal(testInstance, string(firstContent), string(secondContent))

	document, loadError := ledger.NewStore(fileSystem).Load(anchorsLedgerPathConstant)
	require.NoError(testInstance, loadError)
	require.True(testInstance, document.Location().IsWrapped())
	require.Equal(testInstance, "1.2", document.LookupString("version"))

	var identity struct {
		Anchors []anchors.Anchor `mapstructure:"anchors"`
	}
	require.NoError(testInstance, document.Decode(&identity, "identity"))
	require.Equal(testInstance, anchors.DefaultAnchors(), identity.Anchors)
}

func TestServiceEnsureFailures(testInstance *testing.T) {
	testCases := []struct {
		name          string
		ledgerContent *string
	}{
		{name: "missing_ledger", ledgerContent: nil},
		{name: "anchors_not_list", ledgerContent: stringPointer(`{"identity": {"anchors": "none"}}`)},
		{name: "identity_not_object", ledgerContent: stringPointer(`{"identity": []}`)},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			fileSystem := afero.NewMemMapFs()
			if testCase.ledgerContent != nil {
				require.NoError(subtest, afero.WriteFile(fileSystem, anchorsLedgerPathConstant, []byte(*testCase.ledgerContent), 0o644))
			}

			outputBuffer := &bytes.Buffer{}
			_, ensureError := anchors.NewService(ledger.NewStore(fileSystem), nil, outputBuffer, nil).Ensure(anchorsLedgerPathConstant)
			require.Error(subtest, ensureError)

			var configError *ledger.ConfigError
			require.True(subtest, errors.As(ensureError, &configError))
			require.Empty(subtest, outputBuffer.String())

			if testCase.ledgerContent != nil {
				content, readError := afero.ReadFile(fileSystem, anchorsLedgerPathConstant)
				require.NoError(subtest, readError)
				require.Equal(subtest, *testCase.ledgerContent, string(content))
			}
		})
	}
}

func loadAnchorKeys(testInstance *testing.T, fileSystem afero.Fs) []string {
	testInstance.Helper()
	document, loadError := ledger.NewStore(fileSystem).Load(anchorsLedgerPathConstant)
	require.NoError(testInstance, loadError)

	var identity struct {
		Anchors []anchors.Anchor `mapstructure:"anchors"`
	}
	require.NoError(testInstance, document.Decode(&identity, "identity"))

	keys := make([]string, 0, len(identity.Anchors))
	for _, anchor := range identity.Anchors {
		keys = append(keys, anchor.Key)
	}
	return keys
}

func stringPointer(value string) *string {
	return &value
}
