package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	// Packages
	glamour "github.com/charmbracelet/glamour"
	termenv "github.com/muesli/termenv"
	otel "github.com/mutablelogic/go-client/pkg/otel"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	schema "github.com/mutablelogic/go-heritage/pkg/schema"
	uispinner "github.com/mutablelogic/go-heritage/pkg/ui/spinner"
	uitable "github.com/mutablelogic/go-heritage/pkg/ui/table"
	types "github.com/mutablelogic/go-server/pkg/types"
	attribute "go.opentelemetry.io/otel/attribute"
	term "golang.org/x/term"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

type HeritageCommands struct {
	Restore RestoreCommand `cmd:"" name:"restore" help:"Analyse and restore a heritage structure." group:"HERITAGE"`
	Record  RecordCommand  `cmd:"" name:"record" help:"Look up the historical record of a structure." group:"HERITAGE"`
	Records RecordsCommand `cmd:"" name:"records" help:"List the records in the catalog." group:"HERITAGE"`
}

type RestoreCommand struct {
	schema.RestoreRequest `embed:""`
	AgentFlags            `embed:""`
	Local                 bool `name:"local" help:"Run the agent in-process instead of on the server"`
	JSON                  bool `name:"json" help:"Output as JSON"`
}

type RecordCommand struct {
	StructureName string `arg:"" name:"structure" help:"Name or features of the structure"`
	Location      string `name:"location" help:"Region where the structure is located"`
}

type RecordsCommand struct {
	CatalogFlag `embed:""`
}

const (
	defaultWrap = 100
)

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RestoreCommand) Run(ctx *Globals) (err error) {
	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RestoreCommand",
		attribute.String("request", types.Stringify(cmd.RestoreRequest)),
		attribute.Bool("local", cmd.Local),
	)
	defer func() { endSpan(err) }()

	// Show a spinner while waiting, with progress printed above it
	var spinner *uispinner.Spinner
	progress := func(message string) {
		fmt.Fprintln(os.Stderr, message)
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		spinner = uispinner.Start(parent, os.Stdout, schema.RestorePending)
		progress = spinner.Println
	}

	// Run the agent in-process or on the server
	response, err := cmd.restore(ctx, parent, progress)
	if spinner != nil {
		spinner.Stop()
	}
	if err != nil {
		return err
	}

	// Print
	if cmd.JSON {
		data, err := json.MarshalIndent(response, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}
	return printMarkdown(restoreMarkdown(response))
}

// restore runs the agent in-process with --local, or sends the request to
// the server otherwise
func (cmd *RestoreCommand) restore(ctx *Globals, parent context.Context, progress func(string)) (*schema.RestoreResponse, error) {
	if !cmd.Local {
		client, err := ctx.Client()
		if err != nil {
			return nil, err
		}
		return client.Restore(parent, cmd.request())
	}

	catalog, err := cmd.Catalog()
	if err != nil {
		return nil, err
	}
	agent, err := cmd.Agent(ctx, catalog)
	if err != nil {
		return nil, err
	}
	return agent.Restore(parent, cmd.request(), progress)
}

// request returns the restoration request, naming a model only when one
// was given with --model so the server otherwise uses its own
func (cmd *RestoreCommand) request() schema.RestoreRequest {
	req := cmd.RestoreRequest
	req.Model = strings.TrimSpace(cmd.AgentFlags.Model)
	return req
}

func (cmd *RecordCommand) Run(ctx *Globals) (err error) {
	client, err := ctx.Client()
	if err != nil {
		return err
	}

	// OTEL
	parent, endSpan := otel.StartSpan(ctx.tracer, ctx.ctx, "RecordCommand",
		attribute.String("request", types.Stringify(cmd)),
	)
	defer func() { endSpan(err) }()

	// Look up the record
	record, err := client.Record(parent, schema.RecordRequest{
		Location:      cmd.Location,
		StructureName: cmd.StructureName,
	})
	if err != nil {
		return err
	}

	// Print
	fmt.Println(record)
	return nil
}

func (cmd *RecordsCommand) Run(ctx *Globals) error {
	catalog, err := cmd.Catalog()
	if err != nil {
		return err
	}

	// Print
	entries := catalog.Entries()
	if len(entries) > 0 {
		fmt.Println(uitable.Render(heritageapi.EntryTable(entries)))
	}
	fmt.Println(TableSummary(len(entries), 0, len(entries)))
	return nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

// restoreMarkdown lays out the analysis, the retrieved record, the images
// and the tool calls of a run as a markdown document
func restoreMarkdown(response *schema.RestoreResponse) string {
	var buf strings.Builder
	buf.WriteString("## 💡 에이전트 분석 결과 및 스토리텔링\n\n")
	buf.WriteString(response.Analysis)
	if response.ShowRecord() {
		buf.WriteString("\n\n## 📜 검색된 역사 기록\n\n```text\n")
		buf.WriteString(response.Record.TextRecord)
		buf.WriteString("\n```")
	}
	if response.ShowImages() {
		buf.WriteString("\n\n## ✨ 디지털 복원 시뮬레이션 결과\n\n")
		fmt.Fprintf(&buf, "- 훼손되거나 소실된 유산: %s\n", response.Record.OriginalImageURL)
		fmt.Fprintf(&buf, "- 기록 기반 복원: %s", response.Restoration.RestoredURL)
	}
	if len(response.Calls) > 0 {
		buf.WriteString("\n\n")
		buf.WriteString(uitable.RenderMarkdown(schema.CallTable(response.Calls)))
	}
	fmt.Fprintf(&buf, "\n\n_%s · %s · %d tokens_\n", response.Model, response.Result, response.Usage.Total())
	return buf.String()
}

// printMarkdown renders markdown with glamour when stdout is a terminal,
// otherwise prints it as-is
func printMarkdown(source string) error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		fmt.Print(source)
		return nil
	}
	wrap := defaultWrap
	if width, _, err := term.GetSize(fd); err == nil && width > 0 && width < wrap {
		wrap = width
	}
	style := "dark"
	if !termenv.HasDarkBackground() {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(wrap),
	)
	if err != nil {
		return err
	}
	out, err := r.Render(source)
	if err != nil {
		return err
	}
	fmt.Print(out)
	return nil
}
