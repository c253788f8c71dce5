package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/subcommands"

	"github.com/NgigiN/smscampaign/internal/export"
	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

// addCmd sends a simulated alert.
type addCmd struct {
	name     string
	bank     string
	amount   string
	typ      string
	userType string
	saveDir  string
}

func (*addCmd) Name() string     { return "add" }
func (*addCmd) Synopsis() string { return "send a simulated bank alert" }
func (*addCmd) Usage() string {
	return `sms add -name <name> -bank <bank> -amount <amount> -type debited|credited [-user <type>] [-save <dir>]

  Records a new alert with a random delivery status and prints it.
`
}

func (c *addCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "Recipient name.")
	f.StringVar(&c.bank, "bank", "", "Bank name.")
	f.StringVar(&c.amount, "amount", "", "Amount, must not be negative.")
	f.StringVar(&c.typ, "type", "", "debited or credited.")
	f.StringVar(&c.userType, "user", "", "Optional user type, e.g. new or returning.")
	f.StringVar(&c.saveDir, "save", "", "Also save the alert as a text record in this folder.")
}

func (c *addCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)

	amount, err := ledger.ParseAmount(c.amount)
	if err != nil {
		return report(env, err)
	}
	typ, err := ledger.ParseType(c.typ)
	if err != nil {
		return report(env, err)
	}

	tx, err := env.Session.Add(ledger.Draft{
		Name:     c.name,
		Bank:     c.bank,
		Amount:   amount,
		Type:     typ,
		UserType: c.userType,
	})
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}

	fmt.Fprintf(env.Out, "Sent #%d\n%s\n", tx.ID, sms.Preview(tx))

	if c.saveDir != "" {
		path := filepath.Join(c.saveDir, export.TextFileName(tx))
		if err := os.WriteFile(path, []byte(export.Text(tx)), 0644); err != nil {
			fmt.Fprintf(env.Err, "Error saving %q: %v\n", path, err)
			return subcommands.ExitFailure
		}
		fmt.Fprintf(env.Out, "Saved %s\n", path)
	}
	return subcommands.ExitSuccess
}

// editCmd overwrites the name, bank or amount of a transaction.
type editCmd struct {
	name   string
	bank   string
	amount string
}

func (*editCmd) Name() string     { return "edit" }
func (*editCmd) Synopsis() string { return "edit the name, bank or amount of a transaction" }
func (*editCmd) Usage() string {
	return `sms edit [-name <name>] [-bank <bank>] [-amount <amount>] <id>

  Only the flags given are changed. The edit can be undone.
`
}

func (c *editCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "New recipient name.")
	f.StringVar(&c.bank, "bank", "", "New bank name.")
	f.StringVar(&c.amount, "amount", "", "New amount.")
}

func (c *editCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		fmt.Fprintln(env.Err, "Error: edit takes exactly one id.")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return report(env, err)
	}

	var changes ledger.Changes
	f.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			changes.Name = &c.name
		case "bank":
			changes.Bank = &c.bank
		case "amount":
			changes.Amount = &c.amount
		}
	})
	if changes.Name == nil && changes.Bank == nil && changes.Amount == nil {
		fmt.Fprintln(env.Err, "Error: nothing to edit, use -name, -bank or -amount.")
		return subcommands.ExitUsageError
	}

	tx, err := env.Session.Edit(id, changes)
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Updated #%d\n", tx.ID)
	return subcommands.ExitSuccess
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "delete transactions" }
func (*rmCmd) Usage() string {
	return `sms rm <id>...

  Deletes the given transactions in one step that can be undone.
`
}
func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (*rmCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() == 0 {
		fmt.Fprintln(env.Err, "Error: rm needs at least one id.")
		return subcommands.ExitUsageError
	}
	ids, err := parseIDs(f.Args())
	if err != nil {
		return report(env, err)
	}

	if len(ids) == 1 {
		if status := report(env, env.Session.Delete(ids[0])); status != subcommands.ExitSuccess {
			return status
		}
		fmt.Fprintf(env.Out, "Deleted #%d\n", ids[0])
		return subcommands.ExitSuccess
	}

	removed, err := env.Session.DeleteMany(ids...)
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Deleted %d transactions\n", removed)
	return subcommands.ExitSuccess
}

type clearCmd struct {
	yes bool
}

func (*clearCmd) Name() string     { return "clear" }
func (*clearCmd) Synopsis() string { return "delete every transaction" }
func (*clearCmd) Usage() string {
	return `sms clear -y

  Deletes the whole history. It can still be undone within the same shell.
`
}

func (c *clearCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.yes, "y", false, "Confirm clearing all history.")
}

func (c *clearCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if !c.yes {
		fmt.Fprintf(env.Err, "Refusing to clear %d transactions without -y.\n", len(env.Session.Records()))
		return subcommands.ExitUsageError
	}
	if status := report(env, env.Session.Clear()); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintln(env.Out, "Cleared all transactions")
	return subcommands.ExitSuccess
}

type undoCmd struct{}

func (*undoCmd) Name() string     { return "undo" }
func (*undoCmd) Synopsis() string { return "undo the last change" }
func (*undoCmd) Usage() string {
	return `sms undo

  Restores the transactions as they were before the last add, edit or delete.
`
}
func (*undoCmd) SetFlags(*flag.FlagSet) {}

func (*undoCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	err := env.Session.Undo()
	if errors.Is(err, ledger.ErrEmptyUndo) {
		fmt.Fprintln(env.Out, "Nothing to undo")
		return subcommands.ExitFailure
	}
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Undone, %d transactions\n", len(env.Session.Records()))
	return subcommands.ExitSuccess
}

type pinCmd struct{}

func (*pinCmd) Name() string     { return "pin" }
func (*pinCmd) Synopsis() string { return "pin or unpin a transaction" }
func (*pinCmd) Usage() string {
	return `sms pin <id>

  Pinned transactions are listed first.
`
}
func (*pinCmd) SetFlags(*flag.FlagSet) {}

func (*pinCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		fmt.Fprintln(env.Err, "Error: pin takes exactly one id.")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return report(env, err)
	}
	pinned, err := env.Session.TogglePin(id)
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	if pinned {
		fmt.Fprintf(env.Out, "Pinned #%d\n", id)
	} else {
		fmt.Fprintf(env.Out, "Unpinned #%d\n", id)
	}
	return subcommands.ExitSuccess
}

type selectCmd struct {
	off bool
}

func (*selectCmd) Name() string     { return "select" }
func (*selectCmd) Synopsis() string { return "select transactions for bulk-delete" }
func (*selectCmd) Usage() string {
	return `sms select [-off] [<id>...]

  Adds the ids to the selection, or removes them with -off, then prints
  the selection. The selection only lives as long as the shell.
`
}

func (c *selectCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.off, "off", false, "Deselect the ids instead.")
}

func (c *selectCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	ids, err := parseIDs(f.Args())
	if err != nil {
		return report(env, err)
	}
	for _, id := range ids {
		if c.off {
			env.Session.Deselect(id)
			continue
		}
		if err := env.Session.Select(id); err != nil {
			fmt.Fprintf(env.Err, "Error: #%d: %v\n", id, err)
			return subcommands.ExitFailure
		}
	}
	fmt.Fprintf(env.Out, "Selected: %v\n", env.Session.Selected())
	return subcommands.ExitSuccess
}

type bulkDeleteCmd struct{}

func (*bulkDeleteCmd) Name() string     { return "bulk-delete" }
func (*bulkDeleteCmd) Synopsis() string { return "delete the selected transactions" }
func (*bulkDeleteCmd) Usage() string {
	return `sms bulk-delete

  Deletes every selected transaction in one step and clears the selection.
`
}
func (*bulkDeleteCmd) SetFlags(*flag.FlagSet) {}

func (*bulkDeleteCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	removed, err := env.Session.DeleteSelected()
	if errors.Is(err, ledger.ErrNothingSelected) {
		fmt.Fprintln(env.Out, "No transactions selected")
		return subcommands.ExitFailure
	}
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintf(env.Out, "Deleted %d transactions\n", removed)
	return subcommands.ExitSuccess
}
