package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"
)

// MainCommand builds the formarray command.
func MainCommand() *cli.Command {
	cfg := &Config{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Command, "formarray").
		WithSynopsis("formarray -schema <file> -pointer <json-pointer> [-data <file>] [-format tui|html]").
		WithDescription("formarray edits one array of a JSON document against its JSON Schema.\n" +
			"The tui format runs an interactive session and prints the resulting document;\n" +
			"the html format prints the array editor fragment.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			if _, err := cfg.Parse(cc, args); err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()
			return execute(ctx, cfg, cc.Out)
		})
}
