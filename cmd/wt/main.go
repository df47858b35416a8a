package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"worktime/internal/cli"
	"worktime/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	factory := NewAppFactory(getEnvironment())
	root := cli.NewRootCommand(config.NewLoader(), factory.Build, os.Stdout)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
