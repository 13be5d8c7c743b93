package main

import (
	"os"

	"github.com/stemsi/quizxmentor-backend/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
