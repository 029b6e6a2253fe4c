package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tunepipe",
	Short: "Music generation backend",
	Long:  `Generates variations of stored tunes via a remote model and renders them to audio.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
