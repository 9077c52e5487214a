package main

import (
	"os"

	"github.com/serenestudio/serenechat/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
