package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/peterkuimelis/tetramaster/internal/config"
	tmmcp "github.com/peterkuimelis/tetramaster/internal/mcp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	hands := flag.String("hands", cfg.HandsFile, "path to hands YAML file")
	seed := flag.Int64("seed", cfg.Seed, "seed for unseeded games and battles (0 for random)")
	flag.Parse()

	tmmcp.SetHandsFile(*hands)
	tmmcp.SetSeed(*seed)

	s := server.NewMCPServer("tetramaster", "1.0.0")
	tmmcp.RegisterTools(s)

	if err := server.ServeStdio(s); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
