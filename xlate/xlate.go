package main

import (
	"os"
	_ "time/tzdata"

	_ "github.com/viant/afsc/gs"
	_ "github.com/viant/afsc/s3"
	cli "github.com/viant/xlate/cmd/xlate"
)

// Version is set via -ldflags "-X main.Version=...".
var Version string

func main() {
	cli.SetVersion(Version)
	cli.Run(os.Args[1:])
}
