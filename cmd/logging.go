package cmd

import (
	"github.com/df07/go-progressive-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("pathtracer")

func setupLogging(ctx *cli.Context) {
	verbosity := 0
	if ctx.GlobalBool("v") {
		verbosity = 1
	}
	if ctx.GlobalBool("vv") {
		verbosity = 2
	}
	log.SetLevel(log.FromVerbosity(verbosity))
}
