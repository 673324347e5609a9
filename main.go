package main

import (
	"fmt"
	"os"
	"time"

	"StarkCompressionPipeline/modules/config"

	"github.com/consensys/gnark/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	starkStructFile string
	logLevel        string

	starkStruct *config.StarkStruct
)

func init() {
	rootCmd.PersistentFlags().StringVar(&starkStructFile, "stark-struct", "", "The starkStruct JSON describing the trace proof, the built-in one if empty.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "One of trace/debug/info/warn/error/disabled.")
}

var rootCmd = &cobra.Command{
	Use:   "starkrec",
	Short: "Prepare the witness data of a STARK to SNARK recursion",
	Args:  cobra.NoArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := zerolog.ParseLevel(logLevel)
		if err != nil {
			return err
		}
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly}
		logger.Set(zerolog.New(output).Level(level).With().Timestamp().Logger())

		if starkStructFile == "" {
			starkStruct = config.DefaultStarkStruct()
			return nil
		}
		starkStruct, err = config.Load(starkStructFile)
		return err
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.HelpFunc()(cmd, args)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}
