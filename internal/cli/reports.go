package cli

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/NgigiN/smscampaign/internal/export"
	"github.com/NgigiN/smscampaign/internal/ledger"
	"github.com/NgigiN/smscampaign/internal/sms"
)

// listCmd holds the flags for the 'list' subcommand.
type listCmd struct {
	query string
	typ   string
	from  string
	to    string
	hide  string
}

func (*listCmd) Name() string     { return "list" }
func (*listCmd) Synopsis() string { return "list transactions, pinned first" }
func (*listCmd) Usage() string {
	return `sms list [-q <name>] [-type all|debited|credited] [-from <YYYY-MM-DD> -to <YYYY-MM-DD>] [-hide <columns>]

  Lists the matching transactions as a table. The date range only applies
  when both -from and -to are given.
`
}

func (c *listCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.query, "q", "", "Case-insensitive part of the name.")
	f.StringVar(&c.typ, "type", "all", "Transaction type to show.")
	f.StringVar(&c.from, "from", "", "First day of the range, inclusive.")
	f.StringVar(&c.to, "to", "", "Last day of the range, inclusive.")
	f.StringVar(&c.hide, "hide", "", "Comma-separated columns to hide, e.g. bank,time.")
}

func (c *listCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	cols, err := export.HideColumns(c.hide)
	if err != nil {
		fmt.Fprintf(env.Err, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	records := env.Session.View(ledger.Filter{Query: c.query, Type: c.typ, From: c.from, To: c.to})
	printMarkdown(env, export.Markdown(records, env.Session.Pinned(), cols, currency(env)))
	return subcommands.ExitSuccess
}

type summaryCmd struct{}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display totals and the debit/credit split" }
func (*summaryCmd) Usage() string {
	return `sms summary

  Displays the debited and credited totals of every transaction.
`
}
func (*summaryCmd) SetFlags(*flag.FlagSet) {}

func (*summaryCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	printMarkdown(env, export.SummaryMarkdown(env.Session.Summary(), currency(env)))
	return subcommands.ExitSuccess
}

type showCmd struct{}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "show every field of a transaction" }
func (*showCmd) Usage() string {
	return `sms show <id>
`
}
func (*showCmd) SetFlags(*flag.FlagSet) {}

func (*showCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		fmt.Fprintln(env.Err, "Error: show takes exactly one id.")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return report(env, err)
	}
	tx, ok := env.Session.Get(id)
	if !ok {
		return report(env, ledger.ErrNotFound)
	}
	fmt.Fprint(env.Out, export.Details(tx, env.Session.IsPinned(id), currency(env)))
	return subcommands.ExitSuccess
}

type previewCmd struct {
	template int
}

func (*previewCmd) Name() string     { return "preview" }
func (*previewCmd) Synopsis() string { return "print the alert text of a transaction" }
func (*previewCmd) Usage() string {
	return `sms preview [-t <template index>] <id>

  Without -t, prints the alert as shown when it was sent.
`
}

func (c *previewCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.template, "t", -1, "Index of the template to render, see 'sms templates'.")
}

func (c *previewCmd) Execute(_ context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	if f.NArg() != 1 {
		fmt.Fprintln(env.Err, "Error: preview takes exactly one id.")
		return subcommands.ExitUsageError
	}
	id, err := parseID(f.Arg(0))
	if err != nil {
		return report(env, err)
	}

	if c.template < 0 {
		tx, ok := env.Session.Get(id)
		if !ok {
			return report(env, ledger.ErrNotFound)
		}
		fmt.Fprintln(env.Out, sms.Preview(tx))
		return subcommands.ExitSuccess
	}

	msg, err := env.Session.Message(id, c.template)
	if status := report(env, err); status != subcommands.ExitSuccess {
		return status
	}
	fmt.Fprintln(env.Out, msg)
	return subcommands.ExitSuccess
}

// exportCmd holds the flags for the 'export' subcommand.
type exportCmd struct {
	format string
	output string
	id     int64
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "export transactions as txt, csv, pdf, md or html" }
func (*exportCmd) Usage() string {
	return `sms export [-format txt|csv|pdf|md|html] [-o <file>] [-id <id>]

  Writes every transaction, or only -id with the txt format, to -o or the
  standard output.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.format, "format", "csv", "Export format: txt, csv, pdf, md or html.")
	f.StringVar(&c.output, "o", "", "Output file. Defaults to the standard output.")
	f.Int64Var(&c.id, "id", 0, "Export a single transaction (txt only).")
}

// markdownReport is the transaction table, pinned first, followed by the
// summary.
func markdownReport(env *Env) string {
	return export.Markdown(env.Session.View(ledger.Filter{}), env.Session.Pinned(), export.Columns{}, currency(env)) +
		"\n" + export.SummaryMarkdown(env.Session.Summary(), currency(env))
}

func (c *exportCmd) Execute(_ context.Context, _ *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	env := envFrom(args)
	format := strings.ToLower(c.format)
	if c.id != 0 && format != "txt" {
		fmt.Fprintln(env.Err, "Error: -id is only supported with -format txt.")
		return subcommands.ExitUsageError
	}

	var write func(w io.Writer) error
	switch format {
	case "txt":
		records := env.Session.Records()
		if c.id != 0 {
			tx, ok := env.Session.Get(c.id)
			if !ok {
				return report(env, ledger.ErrNotFound)
			}
			records = []ledger.Transaction{tx}
		}
		write = func(w io.Writer) error {
			for i, tx := range records {
				if i > 0 {
					if _, err := io.WriteString(w, "\n"); err != nil {
						return err
					}
				}
				if _, err := io.WriteString(w, export.Text(tx)); err != nil {
					return err
				}
			}
			return nil
		}
	case "csv":
		records := env.Session.Records()
		write = func(w io.Writer) error { return export.CSV(w, records) }
	case "pdf":
		records := env.Session.Records()
		write = func(w io.Writer) error { return export.PDF(w, records) }
	case "md":
		md := markdownReport(env)
		write = func(w io.Writer) error {
			_, err := io.WriteString(w, md)
			return err
		}
	case "html":
		md := markdownReport(env)
		write = func(w io.Writer) error { return export.HTML(w, md) }
	default:
		fmt.Fprintf(env.Err, "Error: unknown format %q\n", c.format)
		return subcommands.ExitUsageError
	}

	if c.output == "" {
		if err := write(env.Out); err != nil {
			fmt.Fprintf(env.Err, "Error writing export: %v\n", err)
			return subcommands.ExitFailure
		}
		return subcommands.ExitSuccess
	}

	file, err := os.Create(c.output)
	if err != nil {
		fmt.Fprintf(env.Err, "Error creating %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	defer file.Close()
	if err := write(file); err != nil {
		fmt.Fprintf(env.Err, "Error writing %q: %v\n", c.output, err)
		return subcommands.ExitFailure
	}
	fmt.Fprintf(env.Out, "Exported %s\n", c.output)
	return subcommands.ExitSuccess
}
