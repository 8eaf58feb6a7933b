package audit_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/aeon/internal/audit"
	"github.com/temirov/aeon/internal/integrity"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
)

const (
	auditLedgerPathConstant = "AEON.json"
	auditLedgerConstant     = `{"vault_bridge": {"version": "2.5", "governance": {"enforced": false}}}`
	xDigestConstant         = "2d711642b726b04401627ca9fbac32f5c8530fb1903cc4db02258717921a4881"
	yDigestConstant         = "a1fce4363854ff888cff4b8e7875d600c2682390412a8cf79b37d0b11148b0fa"
)

var auditInstant = time.Date(2025, time.March, 9, 14, 30, 5, 0, time.UTC)

func TestServiceRunWritesManifest(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, auditLedgerPathConstant, []byte(auditLedgerConstant), 0o644))
	require.NoError(testInstance, afero.WriteFile(fileSystem, "dist/a", []byte("x"), 0o644))
	require.NoError(testInstance, afero.WriteFile(fileSystem, "dist/b", []byte("y"), 0o644))

	outputBuffer := &bytes.Buffer{}
	service := audit.NewService(
		ledger.NewStore(fileSystem),
		integrity.NewManifestBuilder(fileSystem, utils.FixedClock{Instant: auditInstant}),
		outputBuffer,
		nil,
	)

	result, runError := service.Run(audit.Options{LedgerPath: auditLedgerPathConstant, ExportDirectory: "dist"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, "dist/AEON_AUDIT.json", result.ManifestPath)
	require.Equal(testInstance, "audit: wrote dist/AEON_AUDIT.json with 2 artifacts\n", outputBuffer.String())

	manifestContent, readError := afero.ReadFile(fileSystem, result.ManifestPath)
	require.NoError(testInstance, readError)

	var manifest integrity.Manifest
	require.NoError(testInstance, json.Unmarshal(manifestContent, &manifest))
	require.Equal(testInstance, integrity.Manifest{
		Time:    "2025-03-09T14:30:05Z",
		Version: "2.5",
		Files: []integrity.ManifestEntry{
			{Path: "dist/a", SHA256: xDigestConstant},
			{Path: "dist/b", SHA256: yDigestConstant},
		},
	}, manifest)

	ledgerContent, ledgerReadError := afero.ReadFile(fileSystem, auditLedgerPathConstant)
	require.NoError(testInstance, ledgerReadError)
	require.Equal(testInstance, auditLedgerConstant, string(ledgerContent))
}

func TestServiceRunHonorsLedgerExportDirectory(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, auditLedgerPathConstant, []byte(`{"exports": {"dir": "out"}}`), 0o644))
	require.NoError(testInstance, fileSystem.MkdirAll("out", 0o755))

	result, runError := audit.NewService(ledger.NewStore(fileSystem), integrity.NewManifestBuilder(fileSystem, nil), nil, nil).
		Run(audit.Options{LedgerPath: auditLedgerPathConstant, ExportDirectory: "dist"})
	require.NoError(testInstance, runError)
	require.Equal(testInstance, "out/AEON_AUDIT.json", result.ManifestPath)
	require.Empty(testInstance, result.Manifest.Files)
	require.Empty(testInstance, result.Manifest.Version)
}

func TestServiceRunMissingExportDirectory(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	require.NoError(testInstance, afero.WriteFile(fileSystem, auditLedgerPathConstant, []byte(auditLedgerConstant), 0o644))

	outputBuffer := &bytes.Buffer{}
	_, runError := audit.NewService(ledger.NewStore(fileSystem), integrity.NewManifestBuilder(fileSystem, nil), outputBuffer, nil).
		Run(audit.Options{LedgerPath: auditLedgerPathConstant, ExportDirectory: "dist"})
	require.Error(testInstance, runError)
	require.True(testInstance, errors.Is(runError, integrity.ErrMissingOutput))
	require.EqualError(testInstance, runError, "audit: dist missing")
	require.Empty(testInstance, outputBuffer.String())
}

func TestServiceRunMissingLedger(testInstance *testing.T) {
	fileSystem := afero.NewMemMapFs()
	_, runError := audit.NewService(ledger.NewStore(fileSystem), integrity.NewManifestBuilder(fileSystem, nil), nil, nil).
		Run(audit.Options{LedgerPath: auditLedgerPathConstant})

	var configError *ledger.ConfigError
	require.ErrorAs(testInstance, runError, &configError)
	require.ErrorIs(testInstance, runError, ledger.ErrLedgerNotFound)
}
