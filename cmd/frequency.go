package cmd

import (
	"github.com/huangsam/encuesta/core"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/spf13/cobra"
)

// frequencyCmd counts the answers of every column of one export.
var frequencyCmd = &cobra.Command{
	Use:   "frequency <survey.xlsx>",
	Short: "Count answer frequencies for every question of an export.",
	Long: `Count how often each answer appears for every question of a survey export.

Writes Reporte_Frecuencias.xlsx with:
- Resumen General: total answers, distinct values and the most common answer
- Detalle Frecuencias: every answer with its count and percentage

Examples:
  # Frequencies of an export with the default layout
  encuesta frequency estadisticas_encuesta_3_Princess.xlsx

  # Headers on the first row of a sheet named Respuestas
  encuesta frequency respuestas.xlsx --data-sheet Respuestas --header-row 0 --data-start-row 1`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteFrequency(rootCtx, cfg, sheetio.NewExcelReader()); err != nil {
			contract.LogFatal("Cannot build frequency report", err)
		}
	},
}
