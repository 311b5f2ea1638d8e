package main

import (
	"context"
	"fmt"
	"log"

	"github.com/paperdispatch/paperdispatch/internal/server"
	"github.com/paperdispatch/paperdispatch/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := server.NewApp(cfg)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	if cfg.MintTokenFor != "" {
		token, err := app.MintToken(cfg.MintTokenFor)
		if err != nil {
			log.Printf("%v", err)
			return
		}
		fmt.Println(token)
		return
	}

	app.Run(ctx)

}
