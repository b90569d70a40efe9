package main

import (
	"encoding/json"
	"fmt"
	"os"

	// Packages
	wordwrap "github.com/muesli/reflow/wordwrap"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	httpclient "github.com/mutablelogic/go-heritage/pkg/httpclient"
	opt "github.com/mutablelogic/go-heritage/pkg/opt"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	uitable "github.com/mutablelogic/go-heritage/pkg/ui/table"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type ToolCommands struct {
	ListTools ListToolsCommand `cmd:"" name:"tools" help:"List tools." group:"TOOL"`
	GetTool   GetToolCommand   `cmd:"" name:"tool" help:"Get tool." group:"TOOL"`
}

type ListToolsCommand struct {
	Limit  *uint `name:"limit" help:"Maximum number of tools to return" optional:""`
	Offset uint  `name:"offset" help:"Offset for pagination" default:"0"`
}

type GetToolCommand struct {
	Name string `arg:"" name:"name" help:"Tool name"`
	JSON bool   `name:"json" help:"Output as JSON"`
}

const (
	defaultWidth = 80
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *ListToolsCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "ListToolsCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Build options
	opts := []opt.Opt{}
	if cmd.Limit != nil {
		opts = append(opts, httpclient.WithLimit(cmd.Limit))
	}
	if cmd.Offset > 0 {
		opts = append(opts, httpclient.WithOffset(cmd.Offset))
	}

	// List tools
	response, err := client.ListTools(parent, opts...)
	if err != nil {
		return err
	}

	// Print
	if ctx.Debug {
		fmt.Println(response)
	} else {
		if len(response.Body) > 0 {
			fmt.Println(uitable.Render(schema.ToolTable(response.Body)))
		}
		fmt.Println(TableSummary(len(response.Body), int(response.Offset), int(response.Count)))
	}
	return nil
}

func (cmd *GetToolCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "GetToolCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Get tool
	tool, err := client.GetTool(parent, cmd.Name)
	if err != nil {
		return err
	}

	// Print
	if cmd.JSON || ctx.Debug {
		fmt.Println(tool)
		return nil
	}
	width := defaultWidth
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		width = w
	}
	fmt.Println(uitable.FormatCell(uitable.Bold{Value: tool.Name}))
	fmt.Println(wordwrap.String(tool.Description, width))
	if tool.InputSchema != nil {
		data, err := json.MarshalIndent(tool.InputSchema, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	}
	return nil
}
