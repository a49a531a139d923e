package web

import (
	"encoding/json"
	"net/http"
	"sort"
	"strconv"
	"strings"

	"github.com/howardmhl/TabletopAndBottoms/internal/report"
	"github.com/howardmhl/TabletopAndBottoms/internal/stats"
)

const defaultHistoryLimit = 20

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.WithError(err).Error("failed to write response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSnapshot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.coordinator.GetSnapshot())
}

// leaderboardEntry joins ranking with display metadata. Metadata lookup is
// case-insensitive; missing metadata leaves the icon empty.
type leaderboardEntry struct {
	Rank     int     `json:"rank"`
	Name     string  `json:"name"`
	Wins     int     `json:"wins"`
	Games    int     `json:"games"`
	WinRate  float64 `json:"winRate"`
	Initials string  `json:"initials"`
	Icon     string  `json:"icon,omitempty"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snap := s.coordinator.GetSnapshot()
	ranked := stats.RankPlayers(snap.PlayerStats)

	rows := make([]leaderboardEntry, 0, len(ranked))
	for _, p := range ranked {
		e := leaderboardEntry{
			Rank:     p.Rank,
			Name:     p.Name,
			Wins:     p.Wins,
			Games:    p.Games,
			WinRate:  stats.PlayerStats{Games: p.Games, Wins: p.Wins}.WinRate(),
			Initials: report.Initials(p.Name),
		}
		if meta, ok := snap.PlayerMeta[strings.ToLower(p.Name)]; ok {
			e.Icon = meta.IconURL
		}
		rows = append(rows, e)
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":     snap.Version,
		"gamesLogged": len(snap.Matches),
		"leaderboard": rows,
	})
}

type gameEntry struct {
	Position    int    `json:"position"`
	Name        string `json:"name"`
	TimesPlayed int    `json:"timesPlayed"`
	Page        string `json:"page,omitempty"`
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	snap := s.coordinator.GetSnapshot()
	ranked := stats.RankGames(snap.GameSummaries)

	rows := make([]gameEntry, 0, len(ranked))
	for _, g := range ranked {
		rows = append(rows, gameEntry{
			Position:    g.Position,
			Name:        g.Name,
			TimesPlayed: g.TimesPlayed,
			Page:        snap.GameMeta[g.Name].PageURL,
		})
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":  snap.Version,
		"selected": snap.SelectedGame,
		"games":    rows,
	})
}

func (s *Server) handleStandings(w http.ResponseWriter, r *http.Request) {
	snap := s.coordinator.GetSnapshot()

	game := r.URL.Query().Get("game")
	if game == "" {
		game = snap.SelectedGame
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":   snap.Version,
		"game":      game,
		"standings": stats.GameStandings(game, snap.GamePlayers),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := defaultHistoryLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	snap := s.coordinator.GetSnapshot()
	s.writeJSON(w, http.StatusOK, map[string]any{
		"version": snap.Version,
		"matches": snap.Recent(limit),
	})
}

type playerEntry struct {
	Name     string `json:"name"`
	Initials string `json:"initials"`
	Icon     string `json:"icon,omitempty"`
}

func (s *Server) handlePlayers(w http.ResponseWriter, r *http.Request) {
	snap := s.coordinator.GetSnapshot()

	rows := make([]playerEntry, 0, len(snap.PlayerMeta))
	for _, meta := range snap.PlayerMeta {
		rows = append(rows, playerEntry{
			Name:     meta.Name,
			Initials: report.Initials(meta.Name),
			Icon:     meta.IconURL,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		return strings.ToLower(rows[i].Name) < strings.ToLower(rows[j].Name)
	})

	s.writeJSON(w, http.StatusOK, map[string]any{
		"version": snap.Version,
		"players": rows,
	})
}

func (s *Server) handleCampaign(w http.ResponseWriter, r *http.Request) {
	snap := s.coordinator.GetSnapshot()
	if snap.Campaign == nil {
		s.writeError(w, http.StatusNotFound, "campaign not available")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"version":  snap.Version,
		"campaign": snap.Campaign,
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	s.coordinator.RequestRefresh()
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "refreshing"})
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	game := r.URL.Query().Get("game")
	if game == "" {
		s.writeError(w, http.StatusBadRequest, "game parameter is required")
		return
	}

	if err := s.coordinator.SelectGameFilter(game); err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"selected": game})
}
