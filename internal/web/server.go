package web

import (
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/coder/websocket"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/game"
	tmnet "github.com/peterkuimelis/tetramaster/internal/net"
)

//go:embed static
var staticFiles embed.FS

// CardInfo is the JSON representation of a card.
type CardInfo struct {
	Code   string `json:"code"`
	Arrows string `json:"arrows"`
}

// HandInfo is the JSON representation of a hand for the /api/hands endpoint.
type HandInfo struct {
	Number int        `json:"number"`
	Name   string     `json:"name"`
	Cards  []CardInfo `json:"cards"`
}

// BattleInfo is the JSON response of the /api/battle endpoint.
type BattleInfo struct {
	Attacker  string `json:"attacker"`
	Defender  string `json:"defender"`
	Result    string `json:"result"`
	Narration string `json:"narration,omitempty"`
}

// Server is the Tetra Master web UI server.
type Server struct {
	handsFile string
	seed      int64
	src       *lockedSource
	mux       *http.ServeMux
}

// NewServer creates a new web server. A non-zero seed makes every random
// choice reproducible.
func NewServer(handsFile string, seed int64) *Server {
	s := &Server{
		handsFile: handsFile,
		seed:      seed,
		src:       &lockedSource{r: config.MustSource(seed)},
		mux:       http.NewServeMux(),
	}
	s.setupRoutes()
	return s
}

// Handler returns the server's HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.mux
}

func (s *Server) setupRoutes() {
	// Embedded static files
	staticFS, _ := fs.Sub(staticFiles, "static")

	// Serve index.html at root
	s.mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		f, err := staticFS.Open("index.html")
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		defer f.Close()
		io.Copy(w, f.(io.Reader))
	})

	s.mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	// API endpoints
	s.mux.HandleFunc("GET /api/battle", s.handleBattle)
	s.mux.HandleFunc("GET /api/hand", s.handleHand)
	s.mux.HandleFunc("GET /api/hands", s.handleHands)

	// Matches against the random AI
	s.mux.HandleFunc("GET /ws", s.handleWebSocket)
}

// source returns a generator for one request: seeded from the "seed" query
// parameter when present, otherwise the server's shared source.
func (s *Server) source(r *http.Request) (game.Source, error) {
	v := r.URL.Query().Get("seed")
	if v == "" {
		return s.src, nil
	}
	seed, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid seed %q", v)
	}
	return rand.New(rand.NewSource(seed)), nil
}

func (s *Server) handleBattle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	attacker, err := game.ParseCard(q.Get("attacker"))
	if err != nil {
		http.Error(w, "First card (attacker) was invalid.", http.StatusBadRequest)
		return
	}
	defender, err := game.ParseCard(q.Get("defender"))
	if err != nil {
		http.Error(w, "Second card (defender) was invalid.", http.StatusBadRequest)
		return
	}
	src, err := s.source(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	info := BattleInfo{Attacker: attacker.String(), Defender: defender.String()}
	if explain, _ := strconv.ParseBool(q.Get("explain")); explain {
		var sb strings.Builder
		info.Result = game.ExplainBattle(src, attacker, defender, &sb).String()
		info.Narration = sb.String()
	} else {
		info.Result = game.Battle(src, attacker, defender).String()
	}
	writeJSON(w, info)
}

func (s *Server) handleHand(w http.ResponseWriter, r *http.Request) {
	src, err := s.source(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	writeJSON(w, cardInfos(game.RandomHand(src, game.HandSize)))
}

func (s *Server) handleHands(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(s.handsFile)
	if err != nil {
		http.Error(w, "could not read hands file", http.StatusInternalServerError)
		return
	}

	hf, err := game.ParseHandFileData(data)
	if err != nil {
		http.Error(w, "could not parse hands file", http.StatusInternalServerError)
		return
	}

	hands := []HandInfo{}
	for i, h := range hf.Hands {
		cards, err := h.Decode()
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		hands = append(hands, HandInfo{Number: i + 1, Name: h.Name, Cards: cardInfos(cards)})
	}
	writeJSON(w, hands)
}

// handleWebSocket plays one match: the browser is Blue, the random AI is
// Red. The optional "hand" query parameter picks Blue's hand from the hands
// file.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	var cfg game.MatchConfig
	if v := r.URL.Query().Get("hand"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid hand number", http.StatusBadRequest)
			return
		}
		_, cards, err := game.HandByNumber(s.handsFile, n)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		cfg.Hands[game.Blue] = cards
	}
	cfg.Seed = s.seed
	if v := r.URL.Query().Get("seed"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			http.Error(w, "invalid seed", http.StatusBadRequest)
			return
		}
		cfg.Seed = seed
	}

	wsConn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		InsecureSkipVerify: true, // Allow connections from any origin
	})
	if err != nil {
		log.Printf("WebSocket accept error: %v", err)
		return
	}
	defer wsConn.CloseNow()

	ctx := r.Context()
	conn := websocket.NetConn(ctx, wsConn, websocket.MessageText)

	m, err := tmnet.Host(ctx, conn, tmnet.HostConfig{Match: cfg, Player: game.Blue})
	if err != nil {
		log.Printf("WebSocket match: %v", err)
		wsConn.Close(websocket.StatusInternalError, "match failed")
		return
	}
	log.Printf("WebSocket match finished: %s", m.State.Result)
	wsConn.Close(websocket.StatusNormalClosure, "game ended")
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.mux)
}

func cardInfos(cards []game.Card) []CardInfo {
	infos := make([]CardInfo, 0, len(cards))
	for _, c := range cards {
		infos = append(infos, CardInfo{Code: c.String(), Arrows: c.Arrows.String()})
	}
	return infos
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

// lockedSource shares one generator between concurrent requests.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedSource) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}
