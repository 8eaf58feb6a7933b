package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/aeon/internal/anchors"
	"github.com/temirov/aeon/internal/audit"
	"github.com/temirov/aeon/internal/ledger"
	"github.com/temirov/aeon/internal/reports"
	"github.com/temirov/aeon/internal/seals"
	"github.com/temirov/aeon/internal/utils"
	pathutils "github.com/temirov/aeon/internal/utils/path"
)

const (
	applicationNameConstant                 = "aeon"
	applicationShortDescriptionConstant     = "Maintain the AEON ledger and its generated reports"
	applicationLongDescriptionConstant      = "aeon keeps a versioned JSON ledger, renders the master book, field notes, and timeline from it, records seals, and audits generated artifacts with SHA-256 manifests."
	ledgerFlagNameConstant                  = "aeon"
	ledgerFlagUsageConstant                 = "Path to the ledger document (defaults to tools.ledger.path)."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to a configuration file (YAML or JSON)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level."
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format (structured or console)."
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	commonLogFormatConfigKeyConstant        = commonConfigurationKeyConstant + ".log_format"
	toolsConfigurationKeyConstant           = "tools"
	ledgerPathConfigKeyConstant             = toolsConfigurationKeyConstant + ".ledger.path"
	buildPDFConfigKeyConstant               = toolsConfigurationKeyConstant + ".build.pdf"
	buildExportDirectoryConfigKeyConstant   = toolsConfigurationKeyConstant + ".build.export_dir"
	sealAttributionConfigKeyConstant        = toolsConfigurationKeyConstant + ".seal.attribution"
	environmentPrefixConstant               = "AEON"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	configurationLedgerFieldConstant        = "ledger"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	loggerNotInitializedMessageConstant     = "logger not initialized"
	rootCommandDebugMessageConstant         = "aeon CLI diagnostics"
	logFieldArgumentsConstant               = "arguments"
	workingDirectorySearchPathConstant      = "."
	homeDirectorySearchPathConstant         = "$HOME/.aeon"
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Tools  ApplicationToolsConfiguration  `mapstructure:"tools"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationToolsConfiguration holds configuration for the subcommands.
type ApplicationToolsConfiguration struct {
	Ledger LedgerConfiguration          `mapstructure:"ledger"`
	Build  reports.CommandConfiguration `mapstructure:"build"`
	Seal   seals.CommandConfiguration   `mapstructure:"seal"`
}

// LedgerConfiguration locates the ledger document.
type LedgerConfiguration struct {
	Path string `mapstructure:"path"`
}

// ApplicationDependencies replaces the production collaborators. Zero values select defaults.
type ApplicationDependencies struct {
	FileSystem        afero.Fs
	Clock             utils.Clock
	LogDestination    io.Writer
	ConfigSearchPaths []string
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	ledgerFlagValue        string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
	homeExpander           *pathutils.HomeExpander
}

// NewApplication assembles a fully wired CLI application instance.
func NewApplication() *Application {
	return NewApplicationWithDependencies(ApplicationDependencies{})
}

// NewApplicationWithDependencies assembles the CLI around the provided collaborators.
func NewApplicationWithDependencies(dependencies ApplicationDependencies) *Application {
	searchPaths := dependencies.ConfigSearchPaths
	if searchPaths == nil {
		searchPaths = []string{workingDirectorySearchPathConstant, homeDirectorySearchPathConstant}
	}
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		searchPaths,
	)
	configurationLoader.SetEmbeddedConfiguration(EmbeddedDefaultConfiguration())

	loggerFactory := utils.NewLoggerFactory()
	if dependencies.LogDestination != nil {
		loggerFactory = utils.NewLoggerFactoryWithDestination(dependencies.LogDestination)
	}

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          loggerFactory,
		logger:                 zap.NewNop(),
		configuration:          DefaultApplicationConfiguration(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		homeExpander:           pathutils.NewHomeExpander(),
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return application.runRootCommand(command, arguments)
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.PersistentFlags().StringVar(&application.ledgerFlagValue, ledgerFlagNameConstant, "", ledgerFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logLevelFlagValue, logLevelFlagNameConstant, "", logLevelFlagUsageConstant)
	cobraCommand.PersistentFlags().StringVar(&application.logFormatFlagValue, logFormatFlagNameConstant, "", logFormatFlagUsageConstant)

	loggerProvider := func() *zap.Logger {
		return application.logger
	}

	anchorsBuilder := anchors.CommandBuilder{
		LoggerProvider: loggerProvider,
		FileSystem:     dependencies.FileSystem,
	}
	if anchorsCommand, anchorsBuildError := anchorsBuilder.Build(); anchorsBuildError == nil {
		cobraCommand.AddCommand(anchorsCommand)
	}

	reportsBuilder := reports.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() reports.CommandConfiguration {
			return application.configuration.Tools.Build
		},
		FileSystem: dependencies.FileSystem,
		Clock:      dependencies.Clock,
	}
	if reportsCommand, reportsBuildError := reportsBuilder.Build(); reportsBuildError == nil {
		cobraCommand.AddCommand(reportsCommand)
	}

	sealsBuilder := seals.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() seals.CommandConfiguration {
			return application.configuration.Tools.Seal
		},
		FileSystem: dependencies.FileSystem,
		Clock:      dependencies.Clock,
	}
	if sealsCommand, sealsBuildError := sealsBuilder.Build(); sealsBuildError == nil {
		cobraCommand.AddCommand(sealsCommand)
	}

	auditBuilder := audit.CommandBuilder{
		LoggerProvider: loggerProvider,
		ConfigurationProvider: func() audit.CommandConfiguration {
			return application.configuration.auditConfiguration()
		},
		FileSystem: dependencies.FileSystem,
		Clock:      dependencies.Clock,
	}
	if auditCommand, auditBuildError := auditBuilder.Build(); auditBuildError == nil {
		cobraCommand.AddCommand(auditCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// RootCommand exposes the configured Cobra root command.
func (application *Application) RootCommand() *cobra.Command {
	return application.rootCommand
}

// Configuration returns the configuration resolved by the most recent execution.
func (application *Application) Configuration() ApplicationConfiguration {
	return application.configuration
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Execute builds a fresh application instance and executes the root command hierarchy.
func Execute() error {
	return NewApplication().Execute()
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultConfigurationValues(), &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if application.persistentFlagChanged(command, ledgerFlagNameConstant) {
		application.configuration.Tools.Ledger.Path = application.ledgerFlagValue
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(strings.TrimSpace(application.configuration.Common.LogLevel)),
		utils.LogFormat(strings.TrimSpace(application.configuration.Common.LogFormat)),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	ledgerPath := application.resolveLedgerPath()

	application.logger.Debug(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(configurationLedgerFieldConstant, ledgerPath),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithLedgerPath(updatedContext, ledgerPath)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func (application *Application) resolveLedgerPath() string {
	ledgerPath := application.homeExpander.Expand(application.configuration.Tools.Ledger.Path)
	if len(ledgerPath) == 0 {
		return ledger.DefaultPath
	}
	return ledgerPath
}

func (application *Application) runRootCommand(command *cobra.Command, arguments []string) error {
	if application.logger == nil {
		return errors.New(loggerNotInitializedMessageConstant)
	}

	application.logger.Debug(
		rootCommandDebugMessageConstant,
		zap.Strings(logFieldArgumentsConstant, arguments),
	)

	return command.Help()
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
