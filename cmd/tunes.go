package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/registry"
)

func init() {
	rootCmd.AddCommand(tunesCmd)
}

var tunesCmd = &cobra.Command{
	Use:   "tunes",
	Short: "Lists the tune registry",
	Long:  `Lists the tune registry`,
	Run: func(cmd *cobra.Command, args []string) {
		listTunes()
	},
}

func listTunes() {
	for _, t := range registry.Default().All() {
		seed := "missing"
		if _, err := os.Stat(filepath.Join(constants.GetTunesDir(), t.AbcFile)); err == nil {
			seed = "ok"
		}
		orig := "missing"
		if _, err := os.Stat(filepath.Join(constants.GetOriginalDir(), t.OrigAudio)); err == nil {
			orig = "ok"
		}
		fmt.Printf("%v\t%v\tseed=%v\toriginal=%v\n", t.ID, t.Title, seed, orig)
	}
}
