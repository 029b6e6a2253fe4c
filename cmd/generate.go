package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/generator"
	"github.com/tunepipe/tunepipe/pipeline"
	"github.com/tunepipe/tunepipe/registry"
	"github.com/tunepipe/tunepipe/render"
	"github.com/tunepipe/tunepipe/util"
)

func init() {
	rootCmd.AddCommand(generateCmd)
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generates audio for one tune",
	Long:  `Generates audio for one tune`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) != 1 {
			panic("Need 1 arg...")
		}
		id, err := strconv.Atoi(args[0])
		if err != nil {
			panic(err)
		}
		generate(id)
	},
}

func generate(tuneID int) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	util.EnsureDir(constants.GetGeneratedDir())

	gen := generator.NewClient(constants.GetGeneratorURL())
	chain := render.DefaultChain(logger)
	pipe := pipeline.New(registry.Default(), gen, chain,
		constants.GetTunesDir(), constants.GetOriginalDir(), constants.GetGeneratedDir(), logger)

	res, err := pipe.Run(context.Background(), tuneID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("%v %v\n", res.Outcome, res.WavPath)
}
