package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/hupe1980/tinystore/codec"
	"github.com/hupe1980/tinystore/persistence"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Show snapshot metadata",
	Long:  "Show the header and store metadata of a snapshot file without assuming its element type.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

// inspectState decodes only the store envelope; items stay opaque so any
// element type can be inspected.
type inspectState struct {
	Label            string `json:"label"`
	SavePath         string `json:"save_path"`
	StrictDuplicates bool   `json:"strict_duplicates"`
	Items            []any  `json:"items"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	filename := args[0]

	var (
		info    persistence.SnapshotInfo
		payload []byte
	)
	if err := persistence.LoadFromFile(filename, func(r io.Reader) error {
		var err error
		info, payload, err = persistence.ReadSnapshot(r)
		return err
	}); err != nil {
		return err
	}

	c, ok := codec.ByName(info.CodecName)
	if !ok {
		return fmt.Errorf("unknown codec %q", info.CodecName)
	}

	var state inspectState
	if err := c.Unmarshal(payload, &state); err != nil {
		return fmt.Errorf("decode snapshot: %w", err)
	}

	fmt.Printf("label:             %s\n", state.Label)
	fmt.Printf("save_path:         %s\n", orDash(state.SavePath))
	fmt.Printf("strict_duplicates: %t\n", state.StrictDuplicates)
	fmt.Printf("items:             %d\n", len(state.Items))
	fmt.Printf("format_version:    %d\n", info.Version)
	fmt.Printf("codec:             %s\n", info.CodecName)
	fmt.Printf("compression:       %s\n", info.Compression)

	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
