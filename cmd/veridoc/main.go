package main

import (
	"fmt"
	"os"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		usage()
		return 1
	}
	switch args[0] {
	case "anchor":
		return runAnchor(args[1:])
	case "verify":
		return runVerify(args[1:])
	case "check":
		return runCheck(args[1:])
	case "revoke":
		return runRevoke(args[1:])
	case "certificate":
		return runCertificate(args[1:])
	case "-h", "--help", "help":
		usage()
		return 0
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		usage()
		return 1
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: veridoc <command> [flags]

commands:
  anchor       hash a document and anchor it on the registry
  verify       verify a document and issue a proof certificate
  check        integrity-check a stored proof by hash
  revoke       revoke an anchored document
  certificate  emit or verify a certificate JSON document`)
}
