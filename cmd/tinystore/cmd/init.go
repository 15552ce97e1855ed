package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tinystore"
)

var initCmd = &cobra.Command{
	Use:   "init <file>",
	Short: "Create an empty snapshot file",
	Long:  "Create a new snapshot file holding an empty Record store. Fails if the file already exists.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().String("label", "", "store label (default: derived from file name)")
	initCmd.Flags().Bool("strict", false, "fail duplicate inserts instead of ignoring them")

	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	path := args[0]

	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	c, ok := getCodec()
	if !ok {
		return fmt.Errorf("unknown codec")
	}
	comp, err := getCompression()
	if err != nil {
		return err
	}

	strict, _ := cmd.Flags().GetBool("strict")

	opts := []tinystore.Option{
		tinystore.WithCodec(c),
		tinystore.WithCompression(comp),
	}

	var store *tinystore.Store[tinystore.Record]
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		opts = append(opts,
			tinystore.WithSavePath(path),
			tinystore.WithStrictDuplicates(strict),
		)
		store = tinystore.New[tinystore.Record](label, opts...)
	} else {
		store, err = tinystore.Open[tinystore.Record](path, strict, opts...)
		if err != nil {
			return err
		}
	}

	if err := store.Save(); err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Created %s (label %q)\n", path, store.Label())
	return nil
}
