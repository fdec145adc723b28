package cmd

import (
	"github.com/huangsam/encuesta/core"
	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/sheetio"
	"github.com/spf13/cobra"
)

// compareCmd reconciles the baseline against the generated analysis workbooks.
var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Compare baseline scores against the analysis workbooks.",
	Long: `Reconcile the baseline JSON export with the analysis workbooks written by analyze.

Questions are paired through the mapping file (comparativo_completo) after
normalizing numbering, case, accents and trailing punctuation. Departments
match case-insensitively, then without accents, then optionally by fuzzy
ranking when --fuzzy-distance is above 0.

Writes Reporte_Comparativo.xlsx with one sheet per property and prints the
matched rows and mean difference per property.

Examples:
  # Compare using the default files
  encuesta compare

  # Read analysis workbooks from another directory and allow fuzzy matches
  encuesta compare --input-dir analisis --fuzzy-distance 3

  # Export the per-property summary to Parquet
  encuesta compare --output parquet --output-file comparativo.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompare(rootCtx, cfg, sheetio.NewExcelReader()); err != nil {
			contract.LogFatal("Cannot build comparative report", err)
		}
	},
}
