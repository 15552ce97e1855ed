package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tinystore"
)

var recordsCmd = &cobra.Command{
	Use:   "records <file> [model]",
	Short: "List records in a snapshot",
	Long:  "List the records of a Record-typed snapshot, optionally filtered by model tag.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runRecords,
}

func init() {
	rootCmd.AddCommand(recordsCmd)
}

func runRecords(cmd *cobra.Command, args []string) error {
	store, err := tinystore.Load[tinystore.Record](args[0])
	if err != nil {
		return err
	}

	records := store.Items()
	if len(args) > 1 {
		records, err = tinystore.Query(store, func(r tinystore.Record) string { return r.Model }, args[1])
		if err != nil {
			return fmt.Errorf("model %q: %w", args[1], err)
		}
	}

	for _, rec := range records {
		fmt.Printf("%s\t%s\t%s\n", rec.UUID, rec.Model, rec.Attributes)
	}

	if len(records) == 0 {
		fmt.Println("(no records)")
	}

	return nil
}
