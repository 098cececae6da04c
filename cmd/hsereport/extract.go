package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/hsereport/batch"
	"github.com/tsawler/hsereport/export"
)

var (
	extractJSON string
	extractXLSX string
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Extract records from DOCX files locally",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		log, err := newLogger()
		if err != nil {
			return err
		}
		defer log.Sync()

		var inputs []batch.Input
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			inputs = append(inputs, batch.Input{Name: path, Data: data})
		}

		proc := batch.NewProcessor(cfg.FieldSet(), cfg.Concurrency, log)
		results, err := proc.Process(context.Background(), inputs)
		if err != nil {
			return err
		}

		failed := 0
		for _, res := range results {
			if res.OK() {
				fmt.Printf("%s\n", res.Name)
				for _, field := range cfg.Fields {
					fmt.Printf("  %-16s %s\n", field+":", res.Record.Value(field))
				}
				continue
			}
			failed++
			fmt.Fprintf(os.Stderr, "%s: %v\n", res.Name, res.Err)
		}

		recs := batch.Succeeded(results)

		if extractJSON != "" {
			data, err := json.MarshalIndent(recs, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(extractJSON, data, 0644); err != nil {
				return err
			}
		}

		if extractXLSX != "" {
			data, err := export.XLSX(recs, cfg.Fields)
			if err != nil {
				return err
			}
			if err := os.WriteFile(extractXLSX, data, 0644); err != nil {
				return err
			}
		}

		if failed > 0 {
			return fmt.Errorf("%d of %d documents failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractJSON, "json", "", "write extracted records as JSON to this path")
	extractCmd.Flags().StringVar(&extractXLSX, "xlsx", "", "write the summary workbook to this path")
	rootCmd.AddCommand(extractCmd)
}
