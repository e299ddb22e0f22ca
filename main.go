package main

import (
	"os"

	"github.com/Fepozopo/chromakey/pkg/cli"
)

func main() {
	os.Exit(cli.Execute())
}
