package main

import (
	"os"

	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/cli"
	"github.com/hrishav2004/Gamified-CS-Fundamentals/internal/logger"
)

func main() {
	if err := cli.Execute(); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}
