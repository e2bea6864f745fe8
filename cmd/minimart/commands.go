package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"go-minimart/internal/handler"
)

func runCmd(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(stderr)
	verbose := fs.Bool("verbose", false, "Also write log lines to stderr")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	app, err := newApplication(*verbose)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	fmt.Fprintln(stdout, "Welcome to MiniMart - Small Supermarket Inventory and Sales Management System!")
	fmt.Fprintln(stdout, strings.Repeat("=", 81))
	printLoadStatus(stdout, app)

	alerts, err := handler.WatchLowStock(app.hub)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer alerts.Close()

	term := handler.NewTerminal(stdin, stdout)
	if err := handler.NewConsole(term, app.inventory, app.reports, alerts).Run(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func reportCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("report", flag.ContinueOnError)
	fs.SetOutput(stderr)
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	app, err := newApplication(false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()
	printLoadStatus(stderr, app)

	reports := handler.NewReportHandler(handler.NewTerminal(strings.NewReader(""), stdout), app.reports, app.inventory)
	reports.ProfitReport()
	fmt.Fprintln(stdout)
	reports.ShowTransactions("")
	fmt.Fprintln(stdout)
	reports.LowStock()
	return 0
}

func exportCmd(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(stderr)
	what := fs.String("what", "products", "What to export: products or transactions")
	out := fs.String("out", "-", "Output file, - for stdout")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 1
	}

	app, err := newApplication(false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	defer app.Close()

	var w io.Writer = stdout
	if *out != "-" {
		f, err := os.Create(*out)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return 1
		}
		defer f.Close()
		w = f
	}

	if err := handler.NewExportHandler(app.inventory).Export(*what, w); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if *out != "-" {
		fmt.Fprintf(stderr, "Exported %s to %s\n", *what, *out)
	}
	return 0
}

// printLoadStatus tells the user which files were restored and which were
// replaced by empty collections.
func printLoadStatus(w io.Writer, app *application) {
	for _, err := range app.repos.LoadErrors {
		fmt.Fprintf(w, "Warning: %v. Starting with empty data for that file.\n", err)
	}
	products := len(app.repos.Products.FindAll())
	transactions := len(app.repos.Transactions.FindAll())
	if products == 0 && transactions == 0 {
		fmt.Fprintln(w, "No existing data found. Starting with an empty product catalog.")
		return
	}
	fmt.Fprintf(w, "Loaded %d products and %d transactions.\n", products, transactions)
}
