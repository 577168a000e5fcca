package main

import (
	"os"

	"github.com/bloglab/notion-sync/internal/adapters/driving/cli"
	"github.com/bloglab/notion-sync/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
