// Command receiptctl talks to a running receiptbook server from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	"github.com/juju/gnuflag"

	"github.com/mmynk/receiptbook/pkg/api/apiconnect"
)

const defaultAddr = "http://127.0.0.1:8080"

type command struct {
	summary string
	run     func(ctx context.Context, c *client, args []string) error
}

var commands = map[string]command{
	"sellers":    {"list sellers and their receipt ranges", runSellers},
	"add-seller": {"register a seller with a receipt range", runAddSeller},
	"next":       {"show the next free receipt number for a seller", runNext},
	"receipts":   {"list or search receipts", runReceipts},
	"report":     {"print a seller's sales and commission for a period", runReport},
}

// client bundles the service clients and the output stream.
type client struct {
	sellers  apiconnect.SellerServiceClient
	receipts apiconnect.ReceiptServiceClient
	reports  apiconnect.ReportServiceClient
	out      io.Writer
}

func newClient(httpClient *http.Client, addr string, out io.Writer) *client {
	return &client{
		sellers:  apiconnect.NewSellerServiceClient(httpClient, addr),
		receipts: apiconnect.NewReceiptServiceClient(httpClient, addr),
		reports:  apiconnect.NewReportServiceClient(httpClient, addr),
		out:      out,
	}
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, gnuflag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "receiptctl: %v\n", err)
		}
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	addr := os.Getenv("RECEIPTBOOK_ADDR")
	if addr == "" {
		addr = defaultAddr
	}

	fs := gnuflag.NewFlagSet("receiptctl", gnuflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&addr, "addr", addr, "receiptbook server URL")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(false, args); err != nil {
		return err
	}

	if fs.NArg() == 0 {
		usage(stderr, fs)
		return errors.New("no command given")
	}
	name := fs.Arg(0)
	cmd, ok := commands[name]
	if !ok {
		return fmt.Errorf("unknown command %q", name)
	}

	return cmd.run(ctx, newClient(http.DefaultClient, addr, stdout), fs.Args()[1:])
}

func usage(w io.Writer, fs *gnuflag.FlagSet) {
	fmt.Fprintln(w, "usage: receiptctl [--addr URL] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-11s %s\n", name, commands[name].summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "flags:")
	fs.PrintDefaults()
}

func newFlagSet(name string) *gnuflag.FlagSet {
	fs := gnuflag.NewFlagSet(name, gnuflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func requireFlag(name, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("--%s is required", name)
	}
	return nil
}
