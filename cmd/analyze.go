package cmd

import (
	"github.com/huangsam/encuesta/core"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/runstore"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/spf13/cobra"
)

// analyzeCmd writes one statistics workbook per survey job.
var analyzeCmd = &cobra.Command{
	Use:   "analyze [survey.xlsx...]",
	Short: "Write per-department statistics workbooks from survey exports.",
	Long: `Read survey exports and write one analysis workbook per survey or property.

Each workbook carries:
- One sheet per department with Likert statistics per question
- The general sheet across all respondents (Resultados Generales)
- Gender and age demographics, overall and per department

Generic jobs group respondents by department. Property jobs first split the
export by property and write one workbook per property.

Jobs come from the config file (jobs[]) unless survey files are passed as
arguments, in which case --kind and --sheet-name apply to them.

Examples:
  # Process the configured jobs
  encuesta analyze

  # Analyze one export into a sheet named Palacio
  encuesta analyze estadisticas_encuesta_2_Palacio.xlsx --sheet-name Palacio

  # Split a multi-property export
  encuesta analyze estadisticas_encuesta_3_Princess.xlsx --kind property

  # Record the run and export the department ranking as CSV
  encuesta analyze --history-backend sqlite --output csv --output-file ranking.csv`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteAnalyze(rootCtx, cfg, sheetio.NewExcelReader(), runstore.Manager); err != nil {
			contract.LogFatal("Cannot run survey analysis", err)
		}
	},
}
