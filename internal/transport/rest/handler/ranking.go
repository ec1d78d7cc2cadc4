package handler

import (
	"desafiabrasil/internal/cache"
	"desafiabrasil/internal/service"
	"desafiabrasil/internal/transport/rest/middleware"
	"net/http"
)

// RankingHandler handles leaderboard endpoints
type RankingHandler struct {
	rankingSvc *service.RankingService
}

// NewRankingHandler creates a new ranking handler
func NewRankingHandler(rankingSvc *service.RankingService) *RankingHandler {
	return &RankingHandler{rankingSvc: rankingSvc}
}

// Get handles GET /api/ranking?template={id}&limit={n}
func (h *RankingHandler) Get(w http.ResponseWriter, r *http.Request) {
	board := cache.GlobalBoard
	if tmpl := r.URL.Query().Get("template"); tmpl != "" {
		board = cache.TemplateBoard(tmpl)
	}

	ctx := r.Context()
	entries, err := h.rankingSvc.Top(ctx, board, queryInt(r, "limit", 0))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := map[string]interface{}{
		"board":   board,
		"ranking": entries,
	}
	if userID := middleware.GetUserID(ctx); userID != "" {
		if rank, err := h.rankingSvc.Rank(ctx, board, userID); err == nil && rank > 0 {
			resp["myRank"] = rank
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

// Rebuild handles POST /api/admin/ranking/rebuild
func (h *RankingHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	n, err := h.rankingSvc.Rebuild(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int{"users": n})
}
