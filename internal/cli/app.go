// Package cli implements the command line interface of the campaign
// simulator.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/NgigiN/smscampaign/internal/campaign"
	"github.com/NgigiN/smscampaign/internal/config"
	"github.com/NgigiN/smscampaign/internal/export"
	"github.com/NgigiN/smscampaign/internal/ledger"
)

const renderWidth = 100

// Env is passed to every command. One Env serves a whole shell session so
// the undo history and selection survive between commands.
type Env struct {
	Session *campaign.Session
	Config  *config.Config
	Log     *logrus.Logger
	In      io.Reader
	Out     io.Writer
	Err     io.Writer
	// Plain disables terminal styling of Markdown output.
	Plain bool
}

func envFrom(args []interface{}) *Env {
	return args[0].(*Env)
}

// Register the subcommands. The shell and the bot are long running and
// only registered at the top level.
func Register(c *subcommands.Commander, topLevel bool) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.CommandsCommand(), "")
	c.Register(c.FlagsCommand(), "")

	c.Register(&addCmd{}, "transactions")
	c.Register(&editCmd{}, "transactions")
	c.Register(&rmCmd{}, "transactions")
	c.Register(&clearCmd{}, "transactions")
	c.Register(&undoCmd{}, "transactions")
	c.Register(&pinCmd{}, "transactions")
	c.Register(&selectCmd{}, "transactions")
	c.Register(&bulkDeleteCmd{}, "transactions")

	c.Register(&listCmd{}, "reports")
	c.Register(&summaryCmd{}, "reports")
	c.Register(&showCmd{}, "reports")
	c.Register(&previewCmd{}, "reports")
	c.Register(&exportCmd{}, "reports")

	c.Register(&themeCmd{}, "settings")
	c.Register(&templatesCmd{}, "settings")

	if topLevel {
		c.Register(&shellCmd{}, "")
		c.Register(&botCmd{}, "")
	}
}

// Run parses args and executes the selected command against env.
func Run(ctx context.Context, env *Env, args []string) subcommands.ExitStatus {
	return run(ctx, env, args, true)
}

func run(ctx context.Context, env *Env, args []string, topLevel bool) subcommands.ExitStatus {
	fs := flag.NewFlagSet("sms", flag.ContinueOnError)
	fs.SetOutput(env.Err)
	fs.BoolVar(&env.Plain, "plain", env.Plain, "print Markdown without terminal styling")

	cdr := subcommands.NewCommander(fs, "sms")
	cdr.Output = env.Out
	cdr.Error = env.Err
	Register(cdr, topLevel)

	if err := fs.Parse(args); err != nil {
		return subcommands.ExitUsageError
	}
	return cdr.Execute(ctx, env)
}

// report turns a command error into an exit status. A failed save keeps
// the in-memory change, so it is only a warning.
func report(env *Env, err error) subcommands.ExitStatus {
	switch {
	case err == nil:
		return subcommands.ExitSuccess
	case errors.Is(err, campaign.ErrPersist):
		fmt.Fprintf(env.Err, "Warning: %v\n", err)
		return subcommands.ExitSuccess
	case ledger.IsValidation(err):
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	default:
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}

func parseIDs(args []string) ([]int64, error) {
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// printMarkdown styles md with the session theme unless env.Plain is set.
func printMarkdown(env *Env, md string) {
	if env.Plain {
		fmt.Fprint(env.Out, md)
		return
	}
	out, err := export.Render(md, string(env.Session.Theme()), renderWidth)
	if err != nil {
		env.Log.WithError(err).Debug("Cli.printMarkdown.Render")
		fmt.Fprint(env.Out, md)
		return
	}
	fmt.Fprint(env.Out, out)
}

func currency(env *Env) string {
	if env.Config == nil || env.Config.Currency == "" {
		return "INR"
	}
	return env.Config.Currency
}
