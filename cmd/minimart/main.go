package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the CLI and returns an exit code. Without a command it starts
// the interactive menu.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) < 2 {
		return runCmd(nil, stdin, stdout, stderr)
	}

	switch args[1] {
	case "run":
		return runCmd(args[2:], stdin, stdout, stderr)
	case "report":
		return reportCmd(args[2:], stdout, stderr)
	case "export":
		return exportCmd(args[2:], stdout, stderr)
	case "help", "-h", "--help":
		printUsage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "Unknown command: %s\n", args[1])
		fmt.Fprintln(stderr, "Run 'minimart help' for usage.")
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "MiniMart - inventory and sales tracker for a small supermarket")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  minimart [command] [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  run       Start the interactive menu (default)")
	fmt.Fprintln(w, "  report    Print the profit report, transactions and low stock")
	fmt.Fprintln(w, "  export    Write products or transactions as CSV")
	fmt.Fprintln(w, "  help      Show this help message")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Environment Variables:")
	fmt.Fprintln(w, "  DATA_DIR           Directory holding the data files (default: ./data)")
	fmt.Fprintln(w, "  PRODUCTS_FILE      Product catalog file name (default: products.bin)")
	fmt.Fprintln(w, "  TRANSACTIONS_FILE  Transaction ledger file name (default: transactions.bin)")
	fmt.Fprintln(w, "  LOG_MODE           development or production (default: development)")
	fmt.Fprintln(w, "  LOG_LEVEL          debug, info, warn or error (default: info)")
	fmt.Fprintln(w, "  LOG_FILE           Log file (default: DATA_DIR/minimart.log)")
}
