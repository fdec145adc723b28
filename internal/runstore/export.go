package runstore

import (
	"errors"
	"fmt"

	"github.com/huangsam/encuesta/internal/contract"
	"github.com/huangsam/encuesta/internal/parquet"
)

// ExecuteHistoryExport writes the run history of the store to Parquet files next to outputFile.
func ExecuteHistoryExport(mgr contract.StoreManager, outputFile string) error {
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetRunStore()
	if store == nil {
		return errors.New("run history is not initialized")
	}

	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get history status: %w", err)
	}
	if status.TotalRuns == 0 {
		return errors.New("no run history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total runs: %d\n", status.TotalRuns)
	fmt.Printf("Total group score records: %d\n", status.TableSizes[groupScoresTable])

	runs, err := store.GetAllRuns()
	if err != nil {
		return fmt.Errorf("failed to retrieve runs: %w", err)
	}
	scores, err := store.GetAllGroupScores()
	if err != nil {
		return fmt.Errorf("failed to retrieve group scores: %w", err)
	}

	parquetRuns := parquet.ConvertRunRecords(runs)
	runsFile := outputFile + ".runs.parquet"
	if err := parquet.WriteRunsParquet(parquetRuns, runsFile); err != nil {
		return fmt.Errorf("failed to write runs: %w", err)
	}
	fmt.Printf("Exported %d runs to: %s\n", len(parquetRuns), runsFile)

	parquetScores := parquet.ConvertGroupScoreRecords(scores)
	scoresFile := outputFile + ".group_scores.parquet"
	if err := parquet.WriteGroupScoresParquet(parquetScores, scoresFile); err != nil {
		return fmt.Errorf("failed to write group scores: %w", err)
	}
	fmt.Printf("Exported %d group score records to: %s\n", len(parquetScores), scoresFile)

	fmt.Println("\nExport complete! The Parquet files can be used with DuckDB, Pandas (via pyarrow) or Apache Spark.")
	return nil
}
