package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/aeon/internal/ledger"
)

func TestDocumentExports(testInstance *testing.T) {
	testCases := []struct {
		name              string
		body              map[string]any
		fallback          string
		expectedDirectory string
		expectedNames     []string
	}{
		{
			name:              "absent_section",
			body:              map[string]any{},
			expectedDirectory: ledger.DefaultExportDirectory,
			expectedNames:     ledger.DefaultDocumentNames(),
		},
		{
			name:              "configured_fallback",
			body:              map[string]any{},
			fallback:          "reports",
			expectedDirectory: "reports",
			expectedNames:     ledger.DefaultDocumentNames(),
		},
		{
			name: "ledger_directory_wins",
			body: map[string]any{"exports": map[string]any{
				"dir": "out",
				"pdf": []any{"master.pdf"},
			}},
			fallback:          "reports",
			expectedDirectory: "out",
			expectedNames:     []string{"master.pdf", "Vault_Project_Master_Codex_FieldNotes.pdf", "Vault_Project_Timeline.pdf"},
		},
		{
			name: "extra_names_ignored",
			body: map[string]any{"exports": map[string]any{
				"pdf": []any{"a.pdf", "", "c.pdf", "d.pdf"},
			}},
			expectedDirectory: ledger.DefaultExportDirectory,
			expectedNames:     []string{"a.pdf", "Vault_Project_Master_Codex_FieldNotes.pdf", "c.pdf"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtest *testing.T) {
			document, documentError := ledger.NewDocument(map[string]any{"vault_bridge": testCase.body})
			require.NoError(subtest, documentError)

			exports, exportsError := document.Exports()
			require.NoError(subtest, exportsError)
			require.Equal(subtest, testCase.expectedDirectory, exports.ExportDirectory(testCase.fallback))
			require.Equal(subtest, testCase.expectedNames, exports.DocumentNames())
		})
	}
}

func TestDocumentExportsRejectsWrongShape(testInstance *testing.T) {
	document, documentError := ledger.NewDocument(map[string]any{"exports": "out"})
	require.NoError(testInstance, documentError)

	_, exportsError := document.Exports()
	require.Error(testInstance, exportsError)
}
