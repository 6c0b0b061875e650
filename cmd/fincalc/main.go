package main

import (
	"context"
	"fmt"
	"os"
	"path"

	"github.com/iwvelando/fincalc/internal/cli"
	"github.com/iwvelando/fincalc/internal/config"
)

func main() {
	// Environment overrides from .env apply before the policy is read.
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load .env\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}

	status := cli.Run(context.Background(), path.Base(os.Args[0]), os.Args[1:], os.Stdout, os.Stderr)
	os.Exit(int(status))
}
