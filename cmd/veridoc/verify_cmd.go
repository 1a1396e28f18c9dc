package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"veridoc/internal/infra/canonical"
	"veridoc/internal/usecase"
)

type verifyOutput struct {
	Result       string       `json:"result"`
	DocumentHash string       `json:"document_hash"`
	Institution  string       `json:"institution_name,omitempty"`
	TxHash       string       `json:"tx_hash,omitempty"`
	BlockNumber  int64        `json:"block_number,omitempty"`
	ExpiryDate   *string      `json:"expiry_date,omitempty"`
	Expired      bool         `json:"expired"`
	DenyReasons  []denyDoc    `json:"deny_reasons,omitempty"`
	Certificate  *certPointer `json:"certificate,omitempty"`
}

type denyDoc struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type certPointer struct {
	ProofHash string `json:"proof_hash"`
	VerifyURL string `json:"verify_url"`
	JSONURL   string `json:"json_url"`
}

func runVerify(args []string) int {
	fs := flag.NewFlagSet("verify", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)

	var inPath string
	var docHash string
	var verifier string
	var outPath string
	var offline bool
	fs.StringVar(&inPath, "in", "", "document path")
	fs.StringVar(&docHash, "hash", "", "0x-prefixed document hash (instead of --in)")
	fs.StringVar(&verifier, "verifier", "", "verifier id (empty for public)")
	fs.StringVar(&outPath, "out", "", "output JSON path (default stdout)")
	fs.BoolVar(&offline, "offline", false, "use in-memory stores and ledger")

	if err := fs.Parse(args); err != nil {
		return 1
	}
	if (inPath == "") == (docHash == "") {
		fmt.Fprintln(os.Stderr, "verify requires exactly one of --in or --hash")
		return 1
	}

	var content []byte
	if inPath != "" {
		var err error
		content, err = os.ReadFile(inPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "read document: %v\n", err)
			return 1
		}
	}

	ctx := context.Background()
	a, err := newApp(ctx, offline)
	if err != nil {
		fmt.Fprintf(os.Stderr, "setup: %v\n", err)
		return 1
	}

	receipt, err := a.verifyUsecase().Execute(ctx, usecase.VerifyDocumentRequest{
		Content:      content,
		DocumentHash: docHash,
		VerifierID:   verifier,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "verify document: %v\n", err)
		return 1
	}

	output := verifyOutput{
		Result:       receipt.Result,
		DocumentHash: receipt.DocumentHash,
		Institution:  receipt.Institution,
		TxHash:       receipt.TxHash,
		BlockNumber:  receipt.BlockNumber,
		Expired:      receipt.Expired,
	}
	if receipt.ExpiryDate != nil {
		d := canonical.ISODate(*receipt.ExpiryDate)
		output.ExpiryDate = &d
	}
	for _, deny := range receipt.Verdict.Result.Deny {
		output.DenyReasons = append(output.DenyReasons, denyDoc{Code: deny.Code, Message: deny.Message})
	}
	if receipt.Certificate != nil {
		output.Certificate = &certPointer{
			ProofHash: receipt.Certificate.ProofHash,
			VerifyURL: receipt.Certificate.VerifyURL,
			JSONURL:   receipt.Certificate.JSONURL,
		}
	}
	return emitCanonical(outPath, output)
}
