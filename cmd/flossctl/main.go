package main

import (
	"os"

	"github.com/kailas-cloud/flossdex/internal/cli"
	"github.com/kailas-cloud/flossdex/internal/version"
)

func main() {
	os.Exit(cli.Execute(version.Version))
}
