package cli

import (
	"context"
	"flag"
	"fmt"

	"github.com/google/subcommands"

	"github.com/NgigiN/smscampaign/internal/campaign"
)

type themeCmd struct{}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "show or change the display theme" }
func (*themeCmd) Usage() string {
	return `sms theme [light|dark|toggle]
`
}
func (*themeCmd) SetFlags(*flag.FlagSet) {}

func (*themeCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	var err error
	switch f.Arg(0) {
	case "":
	case "toggle":
		_, err = env.Session.ToggleTheme()
	default:
		theme, perr := campaign.ParseTheme(f.Arg(0))
		if perr != nil {
			return report(env, perr)
		}
		err = env.Session.SetTheme(theme)
	}
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	theme := env.Session.Theme()
	fmt.Fprintf(env.Out, "%s %s\n", theme.Icon(), theme)
	return subcommands.ExitSuccess
}

type templatesCmd struct {
	add   string
	reset bool
}

func (*templatesCmd) Name() string     { return "templates" }
func (*templatesCmd) Synopsis() string { return "list or change the message templates" }
func (*templatesCmd) Usage() string {
	return `sms templates [-add <template>] [-reset]

  Templates use the placeholders {name}, {bank}, {amount} and {type}.
`
}

func (c *templatesCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.add, "add", "", "Append a template.")
	f.BoolVar(&c.reset, "reset", false, "Restore the default templates.")
}

func (c *templatesCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	var err error
	switch {
	case c.reset:
		err = env.Session.SetTemplates(nil)
	case c.add != "":
		err = env.Session.AddTemplate(c.add)
	}
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	for i, t := range env.Session.Templates() {
		fmt.Fprintf(env.Out, "%d. %s\n", i, t)
	}
	return subcommands.ExitSuccess
}
