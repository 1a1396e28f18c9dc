package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"veridoc/internal/domain"
	"veridoc/pkg/certify"
)

func runCertificate(args []string) int {
	fs := flag.NewFlagSet("certificate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var proofHash string
	var inPath string
	var outPath string
	var offline bool
	fs.StringVar(&proofHash, "hash", "", "proof hash to emit a certificate for")
	fs.StringVar(&inPath, "in", "", "certificate JSON path to verify instead")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	fs.BoolVar(&offline, "offline", false, "use in-memory stores and ledger")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if (proofHash == "") == (inPath == "") {
		fmt.Fprintln(os.Stderr, "certificate requires exactly one of --hash or --in")
		return 1
	}

	// --in verifies a certificate someone handed us, with no services at
	// all: recompute the hash from proof_object and compare.
	if inPath != "" {
		return verifyCertificateFile(inPath)
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

	cert, err := certify.NewCertificate(receipt.Record, receipt.ProofHash, a.cfg.VerifyBaseURL, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "build certificate: %v\n", err)
		return 1
	}
	return emitCanonical(outPath, cert)
}

func verifyCertificateFile(path string) int {
	payload, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read certificate: %v\n", err)
		return 1
	}
	var cert certify.Certificate
	if err := json.Unmarshal(payload, &cert); err != nil {
		fmt.Fprintf(os.Stderr, "decode certificate: %v\n", err)
		return 1
	}
	if err := certify.Verify(cert.ProofObject, cert.ProofHash); err != nil {
		if errors.Is(err, domain.ErrIntegrityViolation) {
			fmt.Fprintf(os.Stderr, "certificate tampered: %v\n", err)
			return 3
		}
		fmt.Fprintf(os.Stderr, "verify certificate: %v\n", err)
		return 1
	}
	fmt.Fprintf(os.Stderr, "certificate ok: %s\n", cert.ProofHash)
	return 0
}
