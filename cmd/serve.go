package cmd

import (
	"log"
	"log/slog"
	"net/http"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tunepipe/tunepipe/constants"
	"github.com/tunepipe/tunepipe/generator"
	"github.com/tunepipe/tunepipe/pipeline"
	"github.com/tunepipe/tunepipe/registry"
	"github.com/tunepipe/tunepipe/render"
	"github.com/tunepipe/tunepipe/server"
	"github.com/tunepipe/tunepipe/util"
)

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 8000, "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the backend server",
	Long:  `Runs the backend server`,
	Run: func(cmd *cobra.Command, args []string) {
		serve()
	},
}

func serve() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	util.EnsureDir(constants.GetTunesDir())
	util.EnsureDir(constants.GetOriginalDir())
	util.EnsureDir(constants.GetGeneratedDir())

	reg := registry.Default()
	gen := generator.NewClient(constants.GetGeneratorURL())
	chain := render.DefaultChain(logger)
	pipe := pipeline.New(reg, gen, chain,
		constants.GetTunesDir(), constants.GetOriginalDir(), constants.GetGeneratedDir(), logger)
	srv := server.New(reg, pipe,
		constants.GetTunesDir(), constants.GetStaticDir(), constants.GetOriginalDir(), logger)

	// generated artifacts are never swept by the server itself
	logger.Info("serving",
		"port", servePort,
		"tunes", constants.GetTunesDir(),
		"generated", constants.GetGeneratedDir(),
		"soundfont", constants.GetSoundFontPath())
	log.Fatal(http.ListenAndServe(":"+strconv.Itoa(servePort), srv.Router()))
}
