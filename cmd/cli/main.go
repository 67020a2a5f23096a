package main

import (
	"fmt"
	"os"

	"github.com/me/jsonsettings/internal/cli"
	"github.com/me/jsonsettings/internal/config"
)

func main() {
	config.LoadDotEnv()
	if err := cli.NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
