package seals

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/governance"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/utils"
)

const (
	sealOperationConstant = "seal"

	sealsLogFieldConstant   = "seals_log"
	codexFieldConstant      = "codex"
	codexSealsFieldConstant = "seals"
	recordNameConstant      = "name"
	recordTimestampConstant = "timestamp"
	recordWhoConstant       = "who"

	sealNameRequiredMessageConstant = "seal name must not be blank"
	recordedTemplateConstant        = "seal: '%s' recorded; version → %s\n"
	sealRecordedMessageConstant     = "seal recorded"
	logFieldLedgerConstant          = "ledger"
	logFieldNameConstant            = "name"
	logFieldVersionConstant         = "version"
)

// ErrSealNameRequired reports a blank seal name.
var ErrSealNameRequired = errors.New(sealNameRequiredMessageConstant)

// Options configures a single seal.
type Options struct {
	LedgerPath  string
	Name        string
	Attribution string
}

// Record is the entry appended to seals_log.
type Record struct {
	Name      string `mapstructure:"name"`
	Timestamp string `mapstructure:"timestamp"`
	Who       string `mapstructure:"who"`
}

// Result describes the recorded seal and the version after the bump.
type Result struct {
	Record  Record
	Version string
}

// Service records seals.
type Service struct {
	store        *ledger.Store
	gate         governance.Gate
	clock        utils.Clock
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service. Nil collaborators select defaults.
func NewService(store *ledger.Store, clock utils.Clock, outputWriter io.Writer, logger *zap.Logger) *Service {
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:        store,
		gate:         governance.NewGate(),
		clock:        utils.ResolveClock(clock),
		outputWriter: outputWriter,
		logger:       logger,
	}
}

// Seal appends the seal to seals_log and codex.seals and bumps the minor version.
// Nothing is written unless governance is enforced.
func (service *Service) Seal(options Options) (Result, error) {
	if len(strings.TrimSpace(options.Name)) == 0 {
		return Result{}, ErrSealNameRequired
	}
	attribution := strings.TrimSpace(options.Attribution)
	if len(attribution) == 0 {
		attribution = DefaultAttribution
	}

	result := Result{}
	_, updateError := service.store.Update(options.LedgerPath, func(document *ledger.Document) error {
		if _, gateError := service.gate.Check(document, sealOperationConstant); gateError != nil {
			return gateError
		}

		record := Record{
			Name:      options.Name,
			Timestamp: utils.FormatUTCTimestamp(service.clock.Now()),
			Who:       attribution,
		}
		if appendError := document.Append([]string{sealsLogFieldConstant}, record.entry()); appendError != nil {
			return appendError
		}
		if appendError := document.Append([]string{codexFieldConstant, codexSealsFieldConstant}, options.Name); appendError != nil {
			return appendError
		}

		version, bumpError := ledger.BumpVersion(document, ledger.BumpMinor)
		if bumpError != nil {
			return bumpError
		}
		result = Result{Record: record, Version: version}
		return nil
	})
	if updateError != nil {
		return Result{}, updateError
	}

	service.logger.Info(
		sealRecordedMessageConstant,
		zap.String(logFieldLedgerConstant, options.LedgerPath),
		zap.String(logFieldNameConstant, options.Name),
		zap.String(logFieldVersionConstant, result.Version),
	)
	if _, printError := fmt.Fprintf(service.outputWriter, recordedTemplateConstant, options.Name, result.Version); printError != nil {
		return Result{}, printError
	}
	return result, nil
}

func (record Record) entry() map[string]any {
	return map[string]any{
		recordNameConstant:      record.Name,
		recordTimestampConstant: record.Timestamp,
		recordWhoConstant:       record.Who,
	}
}
