package cmd

import (
	"github.com/huangsam/encuesta/core"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/spf13/cobra"
)

// inspectCmd shows the column layout of survey exports.
var inspectCmd = &cobra.Command{
	Use:   "inspect <survey.xlsx>...",
	Short: "Show the header and first answer of each column.",
	Long: `Print the leading columns of each export with their header and first answer,
plus the indices of the Departamento, Propiedad and Género columns.

Use it to confirm the row layout before running analyze on a new export.

Examples:
  # Inspect two exports
  encuesta inspect estadisticas_encuesta_2_Palacio.xlsx Estadisticas_encuesta_1_Pierre.xlsx

  # Show more columns as JSON
  encuesta inspect export.xlsx --columns 60 --output json`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteInspect(rootCtx, cfg, sheetio.NewExcelReader()); err != nil {
			contract.LogFatal("Cannot inspect exports", err)
		}
	},
}
