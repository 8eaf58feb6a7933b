package reports

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/filesystem"
	"github.com/temirov/aeon/internal/governance"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
	pathutils "github.com/temirov/aeon/internal/utils/path"
)

const (
	buildOperationConstant = "build"

	artifactLineTemplateConstant = "%s\n"
	versionLineTemplateConstant  = "build: version → %s\n"
	renderErrorTemplateConstant  = "render %s: %w"

	reportRenderedMessageConstant = "rendered report"
	buildCompletedMessageConstant = "build completed"
	logFieldLedgerConstant        = "ledger"
	logFieldPathConstant          = "path"
	logFieldDirectoryConstant     = "export_dir"
	logFieldVersionConstant       = "version"
)

// DocumentRenderer writes one report and returns the path it actually produced.
type DocumentRenderer interface {
	Render(outputPath string, title string, body string) (string, error)
}

// Options configures a single build.
type Options struct {
	LedgerPath string
	// ExportDirectory applies when the ledger does not name exports.dir.
	ExportDirectory string
}

// Result lists the produced artifacts and the version after the bump.
type Result struct {
	ExportDirectory string
	Paths           []string
	Version         string
}

// Service runs builds.
type Service struct {
	store        *ledger.Store
	gate         governance.Gate
	renderer     DocumentRenderer
	fileSystem   afero.Fs
	homeExpander *pathutils.HomeExpander
	clock        utils.Clock
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service from its collaborators. Nil values select defaults,
// except renderer, which is required.
func NewService(store *ledger.Store, renderer DocumentRenderer, fileSystem afero.Fs, clock utils.Clock, outputWriter io.Writer, logger *zap.Logger) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		gate:         governance.NewGate(),
		renderer:     renderer,
		fileSystem:   filesystem.Resolve(fileSystem),
		homeExpander: pathutils.NewHomeExpander(),
		clock:        utils.ResolveClock(clock),
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Build renders the three reports and bumps the minor version. Governance is checked before
// anything is written, and the ledger is saved only after every report was produced.
func (service *Service) Build(options Options) (Result, error) {
	result := Result{}

	_, updateError := service.store.Update(options.LedgerPath, func(document *ledger.Document) error {
		if _, gateError := service.gate.Check(document, buildOperationConstant); gateError != nil {
			return gateError
		}

		var view LedgerView
		if decodeError := document.Decode(&view); decodeError != nil {
			return decodeError
		}
		exports, exportsError := document.Exports()
		if exportsError != nil {
			return exportsError
		}

		exportDirectory := service.homeExpander.Expand(exports.ExportDirectory(options.ExportDirectory))
		if directoryError := filesystem.EnsureDirectory(service.fileSystem, exportDirectory); directoryError != nil {
			return directoryError
		}

		builtAt := utils.FormatUTCTimestamp(service.clock.Now())
		documentNames := exports.DocumentNames()
		producedPaths := make([]string, 0, len(documentNames))
		for index, report := range ComposeReports(view, builtAt) {
			requestedPath := filepath.Join(exportDirectory, documentNames[index])
			producedPath, renderError := service.renderer.Render(requestedPath, report.Title, report.Body)
			if renderError != nil {
				return fmt.Errorf(renderErrorTemplateConstant, requestedPath, renderError)
			}
			service.logger.Debug(reportRenderedMessageConstant, zap.String(logFieldPathConstant, producedPath))
			producedPaths = append(producedPaths, producedPath)
		}

		version, bumpError := ledger.BumpVersion(document, ledger.BumpMinor)
		if bumpError != nil {
			return bumpError
		}

		result = Result{ExportDirectory: exportDirectory, Paths: producedPaths, Version: version}
		return nil
	})
	if updateError != nil {
		return Result{}, updateError
	}

	service.logger.Info(
		buildCompletedMessageConstant,
		zap.String(logFieldLedgerConstant, options.LedgerPath),
		zap.String(logFieldDirectoryConstant, result.ExportDirectory),
		zap.String(logFieldVersionConstant, result.Version),
	)
	if printError := service.printResult(result); printError != nil {
		return Result{}, printError
	}
	return result, nil
}

func (service *Service) printResult(result Result) error {
	for _, producedPath := range result.Paths {
		if _, printError := fmt.Fprintf(service.outputWriter, artifactLineTemplateConstant, producedPath); printError != nil {
			return printError
		}
	}
	_, printError := fmt.Fprintf(service.outputWriter, versionLineTemplateConstant, result.Version)
	return printError
}
