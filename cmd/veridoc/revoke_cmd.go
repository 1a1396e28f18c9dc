package main

import (
	"context"
	"flag"
	"fmt"
	"os"
)

func runRevoke(args []string) int {
	fs := flag.NewFlagSet("revoke", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var docHash string
	var reason string
	var actor string
	var offline bool
	fs.StringVar(&docHash, "hash", "", "0x-prefixed document hash")
	fs.StringVar(&reason, "reason", "", "revocation reason")
	fs.StringVar(&actor, "actor", "", "acting service or operator id")
	fs.BoolVar(&offline, "offline", false, "use in-memory stores and ledger")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if docHash == "" {
		fmt.Fprintln(os.Stderr, "revoke requires --hash")
		return 1
	}

	ctx := context.Background()
	a, err := newApp(ctx, offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		return 1
	}

	if err := a.revokeUsecase().Execute(ctx, docHash, reason, actor); err != nil {
		fmt.Fprintf(os.Stderr, "revoke document: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "revoked %s\n", docHash)
	return 0
}
