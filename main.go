package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"

	"go.uber.org/zap"

	"tabroom-plus/notes"
	"tabroom-plus/rankings"
)

type server struct {
	cfg      Config
	logger   *zap.Logger
	rankings *rankings.Store
	book     *notes.Book
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "tabroom-plus: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}

	addr := flag.String("addr", cfg.Addr, "Listen address")
	dbPath := flag.String("db", cfg.DBPath, "Path to the SQLite database")
	flag.Parse()
	cfg.Addr, cfg.DBPath = *addr, *dbPath

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx := context.Background()
	store, err := openStorage(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	srv := &server{
		cfg:    cfg,
		logger: logger,
		rankings: rankings.NewStore(
			rankings.NewHTTPSource(cfg.RankingsURL, cfg.HTTPTimeout),
			store,
			rankings.NewNormalizer(cfg.Aliases),
			logger,
		),
		book: notes.NewBook(store),
	}

	logger.Info("Tabroom+ is running", zap.String("addr", cfg.Addr), zap.String("db", cfg.DBPath))
	return http.ListenAndServe(cfg.Addr, srv.routes())
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	// Route for the Home Page
	mux.HandleFunc("/", s.homeHandler)

	// Rankings and matchups
	mux.HandleFunc("/api/analyze-round", s.analyzeRoundHandler)
	mux.HandleFunc("/api/classify", s.classifyHandler)
	mux.HandleFunc("/api/resolve", s.resolveHandler)
	mux.HandleFunc("/api/rankings/refresh", s.refreshHandler)

	// Entry record
	mux.HandleFunc("/api/power-score", s.powerScoreHandler)

	// User annotations
	mux.HandleFunc("/api/judge-notes", s.judgeNotesHandler)
	mux.HandleFunc("/api/starred", s.starredHandler)
	mux.HandleFunc("/api/upcoming", s.upcomingHandler)

	return mux
}
