package cmd

import (
	"github.com/huangsam/encuesta/core"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/spf13/cobra"
)

// reportCmd turns the baseline export into the styled numeric report.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Write the numeric report from a baseline JSON export.",
	Long: `Build the styled numeric report from the baseline JSON export.

The baseline may be a phpMyAdmin export, a plain array of rows, or an object
with a data array. The report has one sheet per property with:
- Every department's questions and its average score
- A property summary with each department average and the final score

Use --json-out to also write the results grouped by property and department.

Examples:
  # Build Reporte_Encuestas_Numerico.xlsx from P.json
  encuesta report

  # Rename the score column and write the grouped JSON
  encuesta report --baseline P.json --score-label "Resultado 2024" --json-out reporte_final.json`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteReport(rootCtx, cfg); err != nil {
			contract.LogFatal("Cannot build numeric report", err)
		}
	},
}
