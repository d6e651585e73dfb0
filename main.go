// Package main is the entry point for the vidload application.
package main

import (
	"github.com/samber/lo"
	"github.com/vidload/vidload/cmd"
	"github.com/vidload/vidload/config"
	"github.com/vidload/vidload/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
