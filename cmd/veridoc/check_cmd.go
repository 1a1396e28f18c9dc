package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"veridoc/internal/domain"
)

type checkOutput struct {
	ProofHash string             `json:"proof_hash"`
	Status    string             `json:"status"`
	Record    domain.ProofRecord `json:"record"`
}

func runCheck(args []string) int {
	fs := flag.NewFlagSet("check", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var proofHash string
	var outPath string
	var offline bool
	fs.StringVar(&proofHash, "hash", "", "proof hash (64 lowercase hex chars)")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	fs.BoolVar(&offline, "offline", false, "use in-memory stores and ledger")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if proofHash == "" {
		fmt.Fprintln(os.Stderr, "check requires --hash")
		return 1
	}

	ctx := context.Background()
	a, err := newApp(ctx, offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		return 1
	}

	receipt, err := a.checkUsecase().Execute(ctx, proofHash)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			fmt.Fprintf(os.Stderr, "proof not found: %s\n", proofHash)
			return 2
		case errors.Is(err, domain.ErrIntegrityViolation):
			fmt.Fprintf(os.Stderr, "integrity violation: %v\n", err)
			return 3
		default:
			fmt.Fprintf(os.Stderr, "check proof: %v\n", err)
			return 1
		}
	}

	return emitCanonical(outPath, checkOutput{
		ProofHash: receipt.ProofHash,
		Status:    receipt.Status,
		Record:    receipt.Record,
	})
}
