// Package cmd implements the tinystore snapshot inspection CLI.
//
// The CLI works on snapshot files produced by the tinystore library. Commands
// that decode records assume the tinystore.Record element type; stores of
// other element types can still be inspected (header and item count) but not
// listed.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hupe1980/tinystore/codec"
	"github.com/hupe1980/tinystore/persistence"
)

var rootCmd = &cobra.Command{
	Use:   "tinystore",
	Short: "Tinystore snapshot tool",
	Long:  "Inspect, list and create tinystore snapshot files.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("codec", "", "codec for new snapshots (json, go-json)")
	rootCmd.PersistentFlags().String("compression", "", "compression for new snapshots (none, lz4, zstd)")

	viper.BindPFlag("codec", rootCmd.PersistentFlags().Lookup("codec"))
	viper.BindPFlag("compression", rootCmd.PersistentFlags().Lookup("compression"))

	viper.SetEnvPrefix("TINYSTORE")
	viper.AutomaticEnv()
	viper.SetDefault("codec", codec.Default.Name())
	viper.SetDefault("compression", persistence.CompressionNone.String())
}

func getCodec() (codec.Codec, bool) {
	return codec.ByName(viper.GetString("codec"))
}

func getCompression() (persistence.Compression, error) {
	return persistence.ParseCompression(viper.GetString("compression"))
}
