package main

import (
	"fmt"

	// Packages
	version "github.com/mutablelogic/go-heritage/pkg/version"
)

type VersionCommands struct {
	Version VersionCommand `cmd:"" name:"version" help:"Print version information."`
}

type VersionCommand struct{}

func (cmd *VersionCommand) Run(ctx *Globals) error {
	fmt.Println(string(version.JSON(ctx.execName)))
	return nil
}
