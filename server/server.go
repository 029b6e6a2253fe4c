package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/cors"

	"github.com/tunepipe/tunepipe/model"
	"github.com/tunepipe/tunepipe/pipeline"
	"github.com/tunepipe/tunepipe/registry"
)

// Server exposes the tune registry and the generation pipeline over
// HTTP. All state is read-only; handlers are safe to run
// concurrently.
type Server struct {
	reg         registry.Registry
	pipe        *pipeline.Pipeline
	tunesDir    string
	staticDir   string
	originalDir string
	log         *slog.Logger
}

func New(reg registry.Registry, pipe *pipeline.Pipeline,
	tunesDir, staticDir, originalDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		reg:         reg,
		pipe:        pipe,
		tunesDir:    tunesDir,
		staticDir:   staticDir,
		originalDir: originalDir,
		log:         log,
	}
}

// Router wires all routes behind permissive CORS, matching the
// browser frontend this backend was built for.
func (s *Server) Router() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/list", s.handleList).Methods("GET")
	router.HandleFunc("/abc/{tuneId}", s.handleAbc).Methods("GET")
	router.HandleFunc("/original/{tuneId}", s.handleOriginal).Methods("GET")
	router.HandleFunc("/generate/{tuneId}", s.handleGenerate).Methods("GET")
	router.PathPrefix("/static/").Handler(
		http.StripPrefix("/static/", http.FileServer(http.Dir(s.staticDir))))
	return cors.AllowAll().Handler(router)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	out := make([]model.TuneListing, 0)
	for _, t := range s.reg.All() {
		listing := model.TuneListing{ID: t.ID, Title: t.Title}
		if _, err := os.Stat(filepath.Join(s.originalDir, t.OrigAudio)); err == nil {
			url := "/static/original/" + t.OrigAudio
			listing.OrigAudioURL = &url
		}
		out = append(out, listing)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (s *Server) handleAbc(w http.ResponseWriter, r *http.Request) {
	tune, ok := s.findTune(w, r)
	if !ok {
		return
	}
	path := filepath.Join(s.tunesDir, tune.AbcFile)
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, http.StatusNotFound, "ABC file missing")
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	http.ServeFile(w, r, path)
}

func (s *Server) handleOriginal(w http.ResponseWriter, r *http.Request) {
	tune, ok := s.findTune(w, r)
	if !ok {
		return
	}
	path := filepath.Join(s.originalDir, tune.OrigAudio)
	if _, err := os.Stat(path); err != nil {
		s.writeError(w, http.StatusNotFound, "Original audio missing")
		return
	}
	serveWav(w, r, path)
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	id, ok := s.parseTuneID(w, r)
	if !ok {
		return
	}

	res, err := s.pipe.Run(r.Context(), id)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.log.Error("generate failed", "tune", id, "error", err)
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("X-Tune-Outcome", string(res.Outcome))
	serveWav(w, r, res.WavPath)
}

func (s *Server) parseTuneID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["tuneId"])
	if err != nil {
		s.writeError(w, http.StatusNotFound, "Tune not found")
		return 0, false
	}
	return id, true
}

func (s *Server) findTune(w http.ResponseWriter, r *http.Request) (model.Tune, bool) {
	id, ok := s.parseTuneID(w, r)
	if !ok {
		return model.Tune{}, false
	}
	tune, ok := s.reg.Find(id)
	if !ok {
		s.writeError(w, http.StatusNotFound, "Tune not found")
		return model.Tune{}, false
	}
	return tune, true
}

func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: detail})
}

func serveWav(w http.ResponseWriter, r *http.Request, path string) {
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("inline; filename=%q", filepath.Base(path)))
	http.ServeFile(w, r, path)
}
