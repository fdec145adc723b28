// Package cmd defines the command-line interface for encuesta.
package cmd

import (
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(frequencyCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyStatusCmd)
	historyCmd.AddCommand(historyExportCmd)
	historyCmd.AddCommand(historyClearCmd)
	historyCmd.AddCommand(historyMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().String("input-dir", "", "Directory that relative input paths are resolved against")
	rootCmd.PersistentFlags().String("output-dir", contract.DefaultOutputDir, "Directory where workbooks are written")
	rootCmd.PersistentFlags().String("data-sheet", schema.DefaultDataSheet, "Sheet holding the survey responses")
	rootCmd.PersistentFlags().Int("header-row", schema.DefaultHeaderRow, "0-based row holding the question headers")
	rootCmd.PersistentFlags().Int("data-start-row", schema.DefaultDataStartRow, "0-based row of the first respondent")
	rootCmd.PersistentFlags().Int("question-type-row", schema.DefaultQuestionTypeRow, "0-based row of the +/- question types (negative disables)")
	rootCmd.PersistentFlags().String("output", string(schema.TextOut), "Output format: text or csv or json or parquet")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().Int("precision", contract.DefaultPrecision, "Decimal precision for numeric columns")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("history-backend", "", "Run history backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("history-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("baseline", "P.json", "Baseline JSON export used by report and compare")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of analyzeCmd to Viper
	analyzeCmd.Flags().String("kind", string(schema.DepartmentJob), "Job kind for positional inputs: generic or property")
	analyzeCmd.Flags().String("sheet-name", "", "Output sheet name for a single positional input")
	if err := viper.BindPFlags(analyzeCmd.Flags()); err != nil {
		contract.LogFatal("Error binding analyze flags", err)
	}

	// Bind all flags of reportCmd to Viper
	reportCmd.Flags().String("score-label", schema.DefaultScoreLabel, "Header of the score column")
	reportCmd.Flags().String("json-out", "", "Optional path for the grouped JSON report")
	if err := viper.BindPFlags(reportCmd.Flags()); err != nil {
		contract.LogFatal("Error binding report flags", err)
	}

	// Bind all flags of compareCmd to Viper
	compareCmd.Flags().String("mappings", "Comparativo.json", "Question mapping JSON between the baseline and the analysis workbooks")
	compareCmd.Flags().String("compare-sheet", "", "Force the sheet read from analysis workbooks")
	compareCmd.Flags().Int("fuzzy-distance", 0, "Maximum fuzzy distance for department matching (0 disables)")
	if err := viper.BindPFlags(compareCmd.Flags()); err != nil {
		contract.LogFatal("Error binding compare flags", err)
	}

	// Bind all flags of inspectCmd to Viper
	inspectCmd.Flags().Int("columns", contract.DefaultColumnLimit, "Number of columns to show per file")
	if err := viper.BindPFlags(inspectCmd.Flags()); err != nil {
		contract.LogFatal("Error binding inspect flags", err)
	}

	// Bind all flags of historyMigrateCmd to Viper
	historyMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(historyMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding history migrate flags", err)
	}
}
