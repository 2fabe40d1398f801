package cmd

import (
	"github.com/backusd/cubeworld/log"
	"github.com/urfave/cli"
)

var logger = log.New("cubeworld")

// Apply the configured level, then let the -v/-vv flags raise verbosity.
func setupLogging(ctx *cli.Context, configured string) {
	level, err := log.ParseLevel(configured)
	if err != nil {
		logger.Warningf("%v; using notice", err)
	}
	log.SetLevel(level)

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
