package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/park285/glinski-chess/internal/adapter/hexpresenter"
	"github.com/park285/glinski-chess/internal/hexchess"
	"github.com/park285/glinski-chess/internal/obslog"
	"go.uber.org/zap"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	_ = json.NewEncoder(w).Encode(hexpresenter.ToDTOHealth(s.store.Stats()))
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	viewer := hexchess.White
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get("as"))) {
	case "", "white":
	case "black":
		viewer = hexchess.Black
	default:
		http.Error(w, "as must be white or black", http.StatusBadRequest)
		return
	}
	if s.renderer == nil {
		http.Error(w, "renderer disabled", http.StatusNotFound)
		return
	}
	img, err := s.renderer.RenderPNG(r.Context(), s.store.ViewAs(viewer))
	if err != nil {
		obslog.L().Warn("board_render_error", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(img)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", int(s.cfg.IndexMaxAge.Seconds())))
	http.ServeFile(w, r, filepath.Join(s.cfg.AssetsDir, "index.html"))
}
