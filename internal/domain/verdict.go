package domain

// VerdictInput is the fact set handed to the certificate-issuance policy.
// It is flat on purpose: the policy sees conclusions (expired, revoked),
// not raw timestamps, so the expiry convention lives in exactly one place.
type VerdictInput struct {
	LedgerExists   bool   `json:"ledger_exists"`
	LedgerStatus   string `json:"ledger_status"`
	DocumentKnown  bool   `json:"document_known"`
	DocumentStatus string `json:"document_status"`
	Expired        bool   `json:"expired"`
	VerifierType   string `json:"verifier_type"`
}

type VerdictDeny struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type VerdictResult struct {
	Eligible bool          `json:"eligible"`
	Deny     []VerdictDeny `json:"deny"`
}

// VerdictEvaluation pairs a policy result with the bundle that produced it.
type VerdictEvaluation struct {
	BundleID   string
	BundleHash string
	Result     VerdictResult
}
