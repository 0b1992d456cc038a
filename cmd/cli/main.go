package main

import (
	"context"
	"fmt"
	"os"

	"github.com/dmitrijs2005/mindwell/internal/cli"
	"github.com/dmitrijs2005/mindwell/internal/server/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewApp(ctx, cfg)

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	err = app.Run(ctx, os.Args[1:])
	_ = app.Close()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

}
