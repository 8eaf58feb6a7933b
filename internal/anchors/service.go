package anchors

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/ledger"
)

const (
	identityFieldConstant     = "identity"
	anchorsFieldConstant      = "anchors"
	anchorKeyFieldConstant    = "key"
	anchorPhraseFieldConstant = "phrase"

	ensuredTemplateConstant       = "init: anchors ensured (%d injected)\n"
	anchorInjectedMessageConstant = "injected anchor"
	anchorsEnsuredMessageConstant = "anchors ensured"
	logFieldLedgerConstant        = "ledger"
	logFieldKeyConstant           = "key"
	logFieldInjectedConstant      = "injected"
)

// Result reports which anchors were added.
type Result struct {
	LedgerPath string
	Injected   []string
}

// Service injects missing anchors into a ledger.
type Service struct {
	store        *ledger.Store
	anchors      []Anchor
	outputWriter io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service. A nil anchor list selects DefaultAnchors.
func NewService(store *ledger.Store, anchors []Anchor, outputWriter io.Writer, logger *zap.Logger) *Service {
	if anchors == nil {
		anchors = DefaultAnchors()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, anchors: anchors, outputWriter: outputWriter, logger: logger}
}

// Ensure loads the ledger, appends every anchor whose key is absent, and saves the ledger.
// The version is left untouched.
func (service *Service) Ensure(ledgerPath string) (Result, error) {
	result := Result{LedgerPath: ledgerPath, Injected: []string{}}

	_, updateError := service.store.Update(ledgerPath, func(document *ledger.Document) error {
		if _, identityError := document.EnsureObject(identityFieldConstant); identityError != nil {
			return identityError
		}
		existing, listError := document.List(identityFieldConstant, anchorsFieldConstant)
		if listError != nil {
			return listError
		}

		presentKeys := existingKeys(existing)
		additions := make([]any, 0, len(service.anchors))
		for _, anchor := range service.anchors {
			if _, present := presentKeys[anchor.Key]; present {
				continue
			}
			presentKeys[anchor.Key] = struct{}{}
			additions = append(additions, anchor.record())
			result.Injected = append(result.Injected, anchor.Key)
			service.logger.Debug(anchorInjectedMessageConstant, zap.String(logFieldLedgerConstant, ledgerPath), zap.String(logFieldKeyConstant, anchor.Key))
		}

		return document.Append([]string{identityFieldConstant, anchorsFieldConstant}, additions...)
	})
	if updateError != nil {
		return Result{}, updateError
	}

	service.logger.Info(anchorsEnsuredMessageConstant, zap.String(logFieldLedgerConstant, ledgerPath), zap.Int(logFieldInjectedConstant, len(result.Injected)))
	if _, printError := fmt.Fprintf(service.outputWriter, ensuredTemplateConstant, len(result.Injected)); printError != nil {
		return Result{}, printError
	}
	return result, nil
}

// existingKeys collects the keys of well-formed anchor entries.
func existingKeys(entries []any) map[string]struct{} {
	keys := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		object, isObject := entry.(map[string]any)
		if !isObject {
			continue
		}
		key, isText := object[anchorKeyFieldConstant].(string)
		if !isText {
			continue
		}
		keys[key] = struct{}{}
	}
	return keys
}
