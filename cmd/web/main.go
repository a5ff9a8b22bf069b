package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/peterkuimelis/tetramaster/internal/config"
	"github.com/peterkuimelis/tetramaster/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	port := flag.Int("port", cfg.Port, "HTTP port to listen on")
	handsFile := flag.String("hands", cfg.HandsFile, "path to hands YAML file")
	seed := flag.Int64("seed", cfg.Seed, "random seed (0 for random)")
	flag.Parse()

	srv := web.NewServer(*handsFile, *seed)

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("tetramaster web UI listening on http://localhost:%d", *port)
	if err := srv.ListenAndServe(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
