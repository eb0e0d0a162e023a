package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/mtmt/internal/client/cli"
	"github.com/dmitrijs2005/mtmt/internal/client/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	cli.NewApp(cfg).Run(context.Background())
}
