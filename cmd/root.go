package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/runstore"
	"github.com/huangsam/encuesta/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// All linker flags will be set by goreleaser infra at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCtx is the root context for all operations.
var rootCtx = context.Background()

// cfg will hold the validated, final configuration.
var cfg = &contract.Config{}

// input holds the raw, unvalidated configuration from all sources (file, env, flags).
// Viper will unmarshal into this struct.
var input = &contract.ConfigRawInput{}

// rootCmd is the command-line entrypoint for all other commands.
var rootCmd = &cobra.Command{
	Use:                "encuesta",
	Short:              "Turn survey spreadsheet exports into statistical workbooks.",
	Long:               `Encuesta reads workplace-climate survey exports and writes per-department statistics, demographics and comparative reports.`,
	Version:            version,
	SilenceErrors:      true,
	SilenceUsage:       true,
	DisableSuggestions: true,
	PersistentPreRunE:  loggerSetup,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// defaultWorkbooks maps each property to the analysis workbook written by analyze.
var defaultWorkbooks = map[string]string{
	"palacio": contract.DefaultOutputDir + "/analisis_palacio.xlsx",
	"pierre":  contract.DefaultOutputDir + "/analisis_pierre.xlsx",
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	setConfigPaths()

	// Set environment variable prefix
	viper.SetEnvPrefix("ENCUESTA")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // Read in environment variables that match

	// Set defaults in Viper
	viper.SetDefault("output-dir", contract.DefaultOutputDir)
	viper.SetDefault("data-sheet", schema.DefaultDataSheet)
	viper.SetDefault("header-row", schema.DefaultHeaderRow)
	viper.SetDefault("data-start-row", schema.DefaultDataStartRow)
	viper.SetDefault("question-type-row", schema.DefaultQuestionTypeRow)
	viper.SetDefault("precision", contract.DefaultPrecision)
	viper.SetDefault("output", schema.TextOut)
	viper.SetDefault("color", "yes")
	viper.SetDefault("history-backend", "")
	viper.SetDefault("history-db-connect", "")
	viper.SetDefault("jobs", contract.DefaultJobs)
	viper.SetDefault("baseline", "P.json")
	viper.SetDefault("mappings", "Comparativo.json")
	viper.SetDefault("score-label", schema.DefaultScoreLabel)
	viper.SetDefault("workbooks", defaultWorkbooks)
	viper.SetDefault("columns", contract.DefaultColumnLimit)
}

// setConfigPaths points viper at --config or at .encuesta.yaml in the usual places.
func setConfigPaths() {
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		return
	}
	viper.SetConfigName(".encuesta") // Name of config file (without extension)
	viper.SetConfigType("yaml")      // We'll use YAML format
	viper.AddConfigPath(".")         // Look in the current directory
	viper.AddConfigPath("$HOME")     // Look in the home directory
}

// loggerSetup loads the config file and installs the zap logger before any command runs.
func loggerSetup(_ *cobra.Command, _ []string) error {
	if err := loadConfigFile(); err != nil {
		return err
	}
	logger, err := contract.NewLogger(viper.GetBool("verbose"))
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	contract.SetLogger(logger)
	return nil
}

// sharedSetup unmarshals config and runs validation.
func sharedSetup(_ context.Context, _ *cobra.Command, args []string) error {
	// 1. Unmarshal all resolved values from Viper into our raw input struct.
	if err := viper.Unmarshal(input); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}

	// 2. Handle positional arguments (which Viper doesn't do).
	input.Inputs = args

	// 3. Run all validation and complex parsing.
	if err := contract.ProcessAndValidate(cfg, input); err != nil {
		return err
	}
	color.NoColor = !cfg.UseColors

	// 4. Initialize the run history with validated config
	if err := runstore.InitHistory(cfg.HistoryBackend, cfg.HistoryDBConnect); err != nil {
		return fmt.Errorf("failed to initialize run history: %w", err)
	}

	return nil
}

// sharedSetupWrapper wraps sharedSetup to provide context for Cobra's PreRunE.
func sharedSetupWrapper(cmd *cobra.Command, args []string) error {
	return sharedSetup(rootCtx, cmd, args)
}

// loadConfigFile handles config file loading logic common to all setup functions.
func loadConfigFile() error {
	setConfigPaths()

	// Load config file if present
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
