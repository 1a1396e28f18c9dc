package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"veridoc/internal/infra/canonical"
	"veridoc/internal/usecase"
)

type anchorOutput struct {
	DocumentHash string  `json:"document_hash"`
	TxHash       string  `json:"tx_hash"`
	BlockNumber  int64   `json:"block_number"`
	Outcome      string  `json:"outcome"`
	ExpiryDate   *string `json:"expiry_date"`
}

func runAnchor(args []string) int {
	fs := flag.NewFlagSet("anchor", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var institution string
	var expiry string
	var uploader string
	var outPath string
	var offline bool
	fs.StringVar(&inPath, "in", "", "document path")
	fs.StringVar(&institution, "institution", "", "issuing institution name")
	fs.StringVar(&expiry, "expiry", "", "expiry date (YYYY-MM-DD, optional)")
	fs.StringVar(&uploader, "uploader", "", "uploader id (optional)")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	fs.BoolVar(&offline, "offline", false, "use in-memory stores and ledger")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if inPath == "" || institution == "" {
		fmt.Fprintln(os.Stderr, "anchor requires --in and --institution")
		return 1
	}

	content, err := os.ReadFile(inPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "read document: %v\n", err)
		return 1
	}

	var expiryDate *time.Time
	if expiry != "" {
		parsed, err := time.Parse(canonical.ISODateLayout, expiry)
		if err != nil {
			fmt.Fprintf(os.Stderr, "parse expiry: %v\n", err)
			return 1
		}
		expiryDate = &parsed
	}

	ctx := context.Background()
	a, err := newApp(ctx, offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		return 1
	}

	receipt, err := a.anchorUsecase().Execute(ctx, usecase.AnchorDocumentRequest{
		Content:         content,
		Filename:        filepath.Base(inPath),
		InstitutionName: institution,
		UploaderID:      uploader,
		ExpiryDate:      expiryDate,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "anchor document: %v\n", err)
		return 1
	}

	output := anchorOutput{
		DocumentHash: receipt.DocumentHash,
		TxHash:       receipt.TxHash,
		BlockNumber:  receipt.BlockNumber,
		Outcome:      receipt.Outcome,
	}
	if receipt.ExpiryDate != nil {
		d := canonical.ISODate(*receipt.ExpiryDate)
		output.ExpiryDate = &d
	}
	return emitCanonical(outPath, output)
}
