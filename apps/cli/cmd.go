package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"golang.org/x/term"

	"github.com/pedagogyradar/radar/core"
	"github.com/pedagogyradar/radar/core/scaffold"
	"github.com/pedagogyradar/radar/core/strategy"
	"github.com/pedagogyradar/radar/services/radarclient"
)

var (
	isTerminalFunc = term.IsTerminal // mockable

	errHelp = errors.New("help provided")
)

// generator is the part of the generation service the scaffold form uses.
// *radarclient.Client talks to the API, localService runs offline.
type generator interface {
	Strategies(ctx context.Context) ([]strategy.Strategy, error)
	SuggestObjectives(ctx context.Context, req scaffold.Request) ([]string, error)
	SuggestActivity(ctx context.Context, req scaffold.Request) (string, error)
	SuggestRubric(ctx context.Context, req scaffold.Request) (string, error)
	SuggestPreworkResources(ctx context.Context, req scaffold.Request) ([]scaffold.PreworkResource, error)
	Scaffold(ctx context.Context, req scaffold.Request) (string, error)
}

var _ generator = (*radarclient.Client)(nil)

type commandLine struct {
	conf    *core.Config
	logger  core.Logger
	catalog *strategy.Catalog
	in      *bufio.Reader
	out     io.Writer
	fd      int // of out, -1 when it is not a file

	remote func(baseURL string) generator
}

func newCommandLine(conf *core.Config, logger core.Logger, catalog *strategy.Catalog, in *bufio.Reader, out io.Writer, fd int) *commandLine {
	return &commandLine{
		conf:    conf,
		logger:  logger,
		catalog: catalog,
		in:      in,
		out:     out,
		fd:      fd,
		remote: func(baseURL string) generator {
			return radarclient.New(baseURL, nil)
		},
	}
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  demo [-plain]                                    - render a pre-filled activity, offline")
	fmt.Fprintln(cli.out, "  scaffold -strategy ID [-api URL|-local] [-o FILE] - design an activity step by step")
	fmt.Fprintln(cli.out, "  align -objectives \"a; b\" [-evidence E ...]       - check objectives against evidences")
	fmt.Fprintln(cli.out, "  strategies [-api URL]                            - list the teaching strategies")
}

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ", ") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

func (cli *commandLine) newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(cli.out)
	return fs
}

func (cli *commandLine) parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return errHelp
		}
		return err
	}
	return nil
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	demoCmd := cli.newFlagSet("demo")
	demoPlain := demoCmd.Bool("plain", false, "Print the raw markdown.")

	scaffoldCmd := cli.newFlagSet("scaffold")
	scaffoldStrategy := scaffoldCmd.String("strategy", "", "The strategy id, e.g. flipped.")
	scaffoldAPI := scaffoldCmd.String("api", cli.conf.APIURL, "The generation service URL.")
	scaffoldLocal := scaffoldCmd.Bool("local", false, "Do not call the generation service; suggestions use the built-in examples.")
	scaffoldOut := scaffoldCmd.String("o", "", "Also write the markdown to this file.")
	scaffoldPlain := scaffoldCmd.Bool("plain", false, "Print the raw markdown.")

	alignCmd := cli.newFlagSet("align")
	alignObjectives := alignCmd.String("objectives", "", "The learning objectives, separated by ';'.")
	var alignEvidences listFlag
	alignCmd.Var(&alignEvidences, "evidence", "An evidence of the activity. Repeatable.")

	strategiesCmd := cli.newFlagSet("strategies")
	strategiesAPI := strategiesCmd.String("api", "", "List the strategies of the generation service instead of the local ones.")

	switch args[1] {
	case "demo":
		if err := cli.parse(demoCmd, args[2:]); err != nil {
			return err
		}
		return cli.demo(ctx, *demoPlain)
	case "scaffold":
		if err := cli.parse(scaffoldCmd, args[2:]); err != nil {
			return err
		}
		if core.CleanString(*scaffoldStrategy) == "" {
			scaffoldCmd.Usage()
			return errHelp
		}
		var gen generator
		if *scaffoldLocal {
			gen = newLocalService(cli.catalog, cli.logger)
		} else {
			gen = cli.remote(*scaffoldAPI)
		}
		return cli.scaffold(ctx, gen, scaffoldOptions{
			strategyID: core.CleanString(*scaffoldStrategy, true /* lower */),
			outPath:    *scaffoldOut,
			plain:      *scaffoldPlain,
		})
	case "align":
		if err := cli.parse(alignCmd, args[2:]); err != nil {
			return err
		}
		objectives := core.SplitClean(*alignObjectives, ";")
		if len(objectives) == 0 {
			alignCmd.Usage()
			return errHelp
		}
		cli.align(objectives, core.CleanStrings(alignEvidences))
		return nil
	case "strategies":
		if err := cli.parse(strategiesCmd, args[2:]); err != nil {
			return err
		}
		return cli.strategies(ctx, *strategiesAPI)
	default:
		cli.printUsage()
		return errHelp
	}
}
