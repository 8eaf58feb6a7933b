package audit

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/integrity"
	"github.com/temirov/aeon/internal/ledger"
	pathutils "github.com/temirov/aeon/internal/utils/path"
)

const (
	wroteTemplateConstant         = "audit: wrote %s with %d artifacts\n"
	auditCompletedMessageConstant = "audit manifest written"
	logFieldLedgerConstant        = "ledger"
	logFieldManifestConstant      = "manifest"
	logFieldArtifactsConstant     = "artifacts"
)

// ManifestWriter builds and persists integrity manifests.
type ManifestWriter interface {
	Build(exportDirectory string, ledgerVersion string) (integrity.Manifest, error)
	Write(exportDirectory string, manifest integrity.Manifest) (string, error)
}

// Options configures a single audit.
type Options struct {
	LedgerPath string
	// ExportDirectory applies when the ledger does not name exports.dir.
	ExportDirectory string
}

// Result describes the written manifest.
type Result struct {
	ManifestPath string
	Manifest     integrity.Manifest
}

// Service coordinates ledger lookup and manifest generation.
type Service struct {
	store          *ledger.Store
	manifestWriter ManifestWriter
	homeExpander   *pathutils.HomeExpander
	outputWriter   io.Writer
	logger         *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(store *ledger.Store, manifestWriter ManifestWriter, outputWriter io.Writer, logger *zap.Logger) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:          store,
		manifestWriter: manifestWriter,
		homeExpander:   pathutils.NewHomeExpander(),
		outputWriter:   outputWriter,
		logger:         logger,
	}
}

// Run hashes the export directory and writes the manifest. The ledger is only read.
func (service *Service) Run(options Options) (Result, error) {
	document, loadError := service.store.Load(options.LedgerPath)
	if loadError != nil {
		return Result{}, loadError
	}
	exports, exportsError := document.Exports()
	if exportsError != nil {
		return Result{}, exportsError
	}
	ledgerVersion, _, versionError := document.Version()
	if versionError != nil {
		return Result{}, versionError
	}

	exportDirectory := service.homeExpander.Expand(exports.ExportDirectory(options.ExportDirectory))
	manifest, buildError := service.manifestWriter.Build(exportDirectory, ledgerVersion)
	if buildError != nil {
		return Result{}, buildError
	}
	manifestPath, writeError := service.manifestWriter.Write(exportDirectory, manifest)
	if writeError != nil {
		return Result{}, writeError
	}

	service.logger.Info(
		auditCompletedMessageConstant,
		zap.String(logFieldLedgerConstant, options.LedgerPath),
		zap.String(logFieldManifestConstant, manifestPath),
		zap.Int(logFieldArtifactsConstant, len(manifest.Files)),
	)
	if _, printError := fmt.Fprintf(service.outputWriter, wroteTemplateConstant, manifestPath, len(manifest.Files)); printError != nil {
		return Result{}, printError
	}
	return Result{ManifestPath: manifestPath, Manifest: manifest}, nil
}
