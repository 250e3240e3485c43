package main

import (
	"github.com/solarlune/tetracull/log"
	"github.com/urfave/cli"
)

var logger = log.New("tetracull")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
