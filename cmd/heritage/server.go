package main

import (
	"crypto/tls"
	"fmt"
	"os"

	// Packages
	agent "github.com/mutablelogic/go-heritage/pkg/agent"
	heritageapi "github.com/mutablelogic/go-heritage/pkg/heritageapi"
	httphandler "github.com/mutablelogic/go-heritage/pkg/httphandler"
	openai "github.com/mutablelogic/go-heritage/pkg/provider/openai"
	tool "github.com/mutablelogic/go-heritage/pkg/tool"
	version "github.com/mutablelogic/go-heritage/pkg/version"
	httprouter "github.com/mutablelogic/go-server/pkg/httprouter"
	httpserver "github.com/mutablelogic/go-server/pkg/httpserver"
	openapihandler "github.com/mutablelogic/go-server/pkg/openapi/httphandler"
	serverotel "github.com/mutablelogic/go-server/pkg/otel"
	errgroup "golang.org/x/sync/errgroup"
)

type ServerCommands struct {
	// Commands
	RunServer RunServer `cmd:"" name:"run" help:"Run server." group:"SERVER"`
}

// AgentFlags configure the model provider, the tools and the agent
type AgentFlags struct {
	// Provider
	OpenAIKey string `name:"openai-api-key" env:"OPENAI_API_KEY" help:"OpenAI API key"`

	// Agent options
	Model         string `name:"model" env:"HERITAGE_MODEL" help:"Chat completion model (default: gpt-4o-mini, or the server's model)"`
	MaxIterations uint   `name:"max-iterations" default:"3" help:"Maximum number of tool-calling rounds"`
	SystemPrompt  string `name:"system-prompt" help:"System prompt sent with every request"`

	// Tool options
	CatalogFlag `embed:""`
	RestoredURL string `name:"restored-url" help:"Image URL returned by the restoration service"`
}

type RunServer struct {
	AgentFlags `embed:""`

	// TLS server options
	TLS struct {
		ServerName string `name:"name" help:"TLS server name"`
		CertFile   string `name:"cert" help:"TLS certificate file"`
		KeyFile    string `name:"key" help:"TLS key file"`
	} `embed:"" prefix:"tls."`
}

///////////////////////////////////////////////////////////////////////////////
// COMMANDS

func (cmd *RunServer) Run(ctx *Globals) error {
	// Load the catalog
	catalog, err := cmd.Catalog()
	if err != nil {
		return err
	}

	// Create the agent
	agent, err := cmd.Agent(ctx, catalog)
	if err != nil {
		return err
	}

	// Start the HTTP server and wait for shutdown
	return cmd.Serve(ctx, agent, catalog, version.Version())
}

// Agent creates the OpenAI provider, registers the heritage tools and
// returns the agent which drives them
func (cmd *AgentFlags) Agent(ctx *Globals, catalog *heritageapi.Catalog) (*agent.Agent, error) {
	// OpenAI client
	provider, err := openai.New(cmd.OpenAIKey, ctx.clientOpts()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	// Toolkit with the record lookup and restoration tools
	tools, err := heritageapi.NewTools(catalog, heritageapi.NewRestorer(cmd.RestoredURL, ctx.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create heritage tools: %w", err)
	}
	toolkit, err := tool.NewToolkit(tools...)
	if err != nil {
		return nil, fmt.Errorf("failed to create toolkit: %w", err)
	}

	// Agent options
	opts := []agent.Opt{
		agent.WithMaxIterations(cmd.MaxIterations),
		agent.WithTracer(ctx.tracer),
		agent.WithLogger(ctx.logger),
	}
	if cmd.Model != "" {
		opts = append(opts, agent.WithModel(cmd.Model))
	}
	if cmd.SystemPrompt != "" {
		opts = append(opts, agent.WithSystemPrompt(cmd.SystemPrompt))
	}

	return agent.New(provider, toolkit, opts...)
}

// Serve creates the httpserver instance, logs the startup banner, and
// blocks until context cancellation (e.g. SIGINT)
func (cmd *RunServer) Serve(ctx *Globals, agent *agent.Agent, catalog *heritageapi.Catalog, versionTag string) error {
	// Server options
	var opts []httpserver.Opt
	if ctx.HTTP.Timeout > 0 {
		opts = append(opts, httpserver.WithReadTimeout(ctx.HTTP.Timeout), httpserver.WithWriteTimeout(ctx.HTTP.Timeout))
	}

	// Create the TLS config if TLS options are provided
	tlsConfig, err := cmd.tlsConfig()
	if err != nil {
		return err
	}

	// Create the server
	srv, err := httpserver.New(ctx.HTTP.Addr, tlsConfig, opts...)
	if err != nil {
		return fmt.Errorf("httpserver: %w", err)
	}

	// Create the HTTP router, with requests traced and logged
	router, err := httprouter.NewRouter(ctx.ctx, srv.Router(), ctx.HTTP.Prefix, ctx.HTTP.Origin, "Heritage Server", versionTag,
		serverotel.HTTPHandlerFunc(srv.URL().Host, ctx.logger),
	)
	if err != nil {
		return fmt.Errorf("router: %w", err)
	}
	if err := Register(router, agent, catalog); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	// Bind to the address
	if err := srv.Listen(); err != nil {
		return err
	}

	// Run the server until the context is cancelled
	ctx.logger.InfoContext(ctx.ctx, "server started", "name", ctx.execName, "version", versionTag, "server", srv.URL().String(), "prefix", router.Prefix(), "model", agent.Model())
	eg, egCtx := errgroup.WithContext(ctx.ctx)
	eg.Go(func() error {
		return srv.Run(egCtx)
	})
	if err := eg.Wait(); err != nil {
		return err
	}

	// Return success
	ctx.logger.InfoContext(ctx.ctx, "server stopped", "name", ctx.execName, "version", versionTag)
	return nil
}

// Register adds the page, the API, the OpenAPI documents and the 404
// handlers to the router
func Register(router *httprouter.Router, agent *agent.Agent, catalog *heritageapi.Catalog) error {
	if err := httphandler.RegisterHandlers(router, agent, catalog); err != nil {
		return err
	}
	if err := openapihandler.RegisterHandler(router); err != nil {
		return err
	}
	if err := router.RegisterCatchAll("/", false); err != nil {
		return err
	}
	return router.RegisterCatchAll(router.Prefix(), false)
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (cmd *RunServer) tlsConfig() (*tls.Config, error) {
	var pemData [][]byte
	for _, path := range []string{cmd.TLS.CertFile, cmd.TLS.KeyFile} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		pemData = append(pemData, data)
	}
	switch {
	case len(pemData) > 0:
		config, err := httpserver.TLSConfig(cmd.TLS.ServerName, false, pemData...)
		if err != nil {
			return nil, fmt.Errorf("tls: %w", err)
		}
		return config, nil
	case cmd.TLS.ServerName != "":
		return &tls.Config{ServerName: cmd.TLS.ServerName}, nil
	default:
		return nil, nil
	}
}
