package cli

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/subcommands"
	"github.com/kballard/go-shellquote"
	"github.com/sirupsen/logrus"

	"github.com/NgigiN/smscampaign/internal/discord"
)

const prompt = "sms> "

// shellCmd keeps one session open so undo and selection work across
// commands.
type shellCmd struct{}

func (*shellCmd) Name() string     { return "shell" }
func (*shellCmd) Synopsis() string { return "run commands interactively" }
func (*shellCmd) Usage() string {
	return `sms shell

  Reads commands line by line, e.g. add -name "Asha K" -bank HDFC -amount 500 -type credited.
  Type exit or quit to leave.
`
}
func (*shellCmd) SetFlags(*flag.FlagSet) {}

func (*shellCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	scanner := bufio.NewScanner(env.In)

	fmt.Fprint(env.Out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "exit" || line == "quit" {
			break
		}
		if line != "" {
			words, err := shellquote.Split(line)
			if err != nil {
				fmt.Fprintf(env.Err, "Error: %v\n", err)
			} else if len(words) > 0 {
				status := run(ctx, env, words, false)
				env.Log.WithFields(logrus.Fields{"command": words[0], "status": status}).Debug("Cli.Shell")
			}
		}
		fmt.Fprint(env.Out, prompt)
	}
	fmt.Fprintln(env.Out)

	if err := scanner.Err(); err != nil {
		fmt.Fprintf(env.Err, "Error reading input: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

type botCmd struct{}

func (*botCmd) Name() string     { return "bot" }
func (*botCmd) Synopsis() string { return "log alerts posted to a Discord channel" }
func (*botCmd) Usage() string {
	return `sms bot

  Needs DISCORD_BOT_TOKEN and DISCORD_CHANNEL_ID. Serves /health on HEALTH_ADDR.
`
}
func (*botCmd) SetFlags(*flag.FlagSet) {}

func (*botCmd) Execute(ctx context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	bot, err := discord.NewBot(env.Config, env.Session, env.Log)
	if err != nil {
		fmt.Fprintf(env.Err, "Failed to initialize the discord bot: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := bot.Start(); err != nil {
		fmt.Fprintf(env.Err, "Failed to start bot: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Fprintln(env.Out, "Bot is running...")
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	bot.Stop()
	fmt.Fprintln(env.Out, "Bot stopped.")
	return subcommands.ExitSuccess
}
