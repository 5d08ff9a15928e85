package main

import "github.com/rhajizada/loggy/internal/cli"

//nolint:gochecknoglobals // version is set at build time
var Version = "dev"

func main() {
	cli.Execute(Version)
}
