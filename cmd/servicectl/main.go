// Command servicectl inspects and exercises service definitions from the
// terminal: list the services a definition document declares, print their
// localized descriptions, or build a call interactively and validate it.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	flag "github.com/spf13/pflag"

	servicekit "github.com/hearthkit/servicekit"
	"github.com/hearthkit/servicekit/capability"
	"github.com/hearthkit/servicekit/locale"
	"github.com/hearthkit/servicekit/registry"
	"github.com/hearthkit/servicekit/schema"
	"github.com/hearthkit/servicekit/validation"
)

const usage = `Usage: servicectl [flags] <command> [args]

Commands:
  list                 list service identifiers
  describe <service>   print the localized description of a service
  call <service>       build a call interactively, validate and print it

Flags:
`

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "servicectl:", err)
		os.Exit(1)
	}
}

func run(out io.Writer, args []string) error {
	flags := flag.NewFlagSet("servicectl", flag.ContinueOnError)
	flags.SetOutput(out)
	flags.Usage = func() {
		fmt.Fprint(out, usage)
		flags.PrintDefaults()
	}

	schemaPath := flags.String("schema", "services.yaml", "service definition document")
	translationsDir := flags.String("translations", ".", "directory holding translations/*.json")
	loc := flags.String("locale", "en", "locale for display strings")
	features := flags.StringSlice("features", nil, "capability flags the simulated target advertises")
	entityID := flags.String("entity", "media_player.demo", "simulated target entity id")
	verbose := flags.BoolP("verbose", "v", false, "enable debug logging")

	if err := flags.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if flags.NArg() == 0 {
		flags.Usage()
		return fmt.Errorf("missing command")
	}

	defs, err := schema.LoadFile(*schemaPath)
	if err != nil {
		return err
	}
	logger.Debug("loaded definitions", "path", *schemaPath, "services", len(defs))

	tables, err := locale.Discover(*translationsDir)
	if err != nil {
		return err
	}
	logger.Debug("loaded string tables", "count", len(tables))
	catalog := locale.NewCatalog(tables)

	reg := registry.New(registry.WithLoadCheck(locale.ConformanceCheck(tables...)))
	if err := reg.Load(defs...); err != nil {
		return err
	}

	app := &cli{
		out:     out,
		logger:  logger,
		reg:     reg,
		catalog: catalog,
		locale:  *loc,
	}

	command, rest := flags.Arg(0), flags.Args()[1:]
	switch command {
	case "list":
		return app.list()
	case "describe":
		if len(rest) != 1 {
			return fmt.Errorf("describe needs exactly one service identifier")
		}
		return app.describe(rest[0])
	case "call":
		if len(rest) != 1 {
			return fmt.Errorf("call needs exactly one service identifier")
		}
		entity, err := buildEntity(*entityID, *features)
		if err != nil {
			return err
		}
		return app.call(context.Background(), rest[0], entity)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

type cli struct {
	out     io.Writer
	logger  *slog.Logger
	reg     *registry.Registry
	catalog *locale.Catalog
	locale  string
}

func buildEntity(id string, features []string) (capability.Entity, error) {
	set, err := capability.NewSet(features...)
	if err != nil {
		return capability.Entity{}, err
	}
	return capability.Entity{ID: id, Domain: "media_player", Integration: "mass", Features: set}, nil
}

func (c *cli) list() error {
	for _, id := range c.reg.List() {
		def, _ := c.reg.Get(id)
		desc := servicekit.Describe(def, c.catalog, c.locale)
		fmt.Fprintf(c.out, "%-20s %s\n", id, desc.Name)
	}
	return nil
}

func (c *cli) describe(service string) error {
	def, ok := c.reg.Get(service)
	if !ok {
		return fmt.Errorf("%w: %q", servicekit.ErrUnknownService, service)
	}

	desc := servicekit.Describe(def, c.catalog, c.locale)
	fmt.Fprintf(c.out, "%s — %s\n", desc.Name, desc.Description)
	for _, field := range desc.Fields {
		marker := " "
		if field.Required {
			marker = "*"
		}
		fmt.Fprintf(c.out, "  %s %-14s %-9s %s\n", marker, field.Name, field.Selector.Kind, field.Description)
		for _, option := range field.Options {
			fmt.Fprintf(c.out, "      - %s (%s)\n", option.Label, option.Value)
		}
	}
	return nil
}

func (c *cli) call(ctx context.Context, service string, entity capability.Entity) error {
	def, ok := c.reg.Get(service)
	if !ok {
		return fmt.Errorf("%w: %q", servicekit.ErrUnknownService, service)
	}

	desc := servicekit.Describe(def, c.catalog, c.locale)
	args, err := promptForArgs(desc)
	if err != nil {
		return err
	}

	normalized, err := validation.New().Validate(def, entity, args)
	if err != nil {
		return err
	}
	c.logger.Debug("call validated", "service", service, "fields", len(normalized))

	encoded, err := json.MarshalIndent(normalized, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(c.out, string(encoded))
	return nil
}
