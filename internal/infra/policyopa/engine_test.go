package policyopa

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"veridoc/internal/domain"
)

func TestEngineDeterministic(t *testing.T) {
	engine := newEngine(t)
	input := baseVerdictInput()

	first, err := engine.Evaluate(context.Background(), input)
	if err != nil {
		t.Fatalf("evaluate first: %v", err)
	}
	second, err := engine.Evaluate(context.Background(), input)
	if err != nil {
		t.Fatalf("evaluate second: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected deterministic verdict evaluation")
	}
	if !first.Result.Eligible {
		t.Fatalf("expected eligible for baseline input, deny = %v", first.Result.Deny)
	}
	if len(first.Result.Deny) != 0 {
		t.Fatalf("expected empty deny list")
	}
	if first.BundleHash == "" {
		t.Fatalf("expected bundle hash to be set")
	}
}

func TestEngineVerdictDenies(t *testing.T) {
	engine := newEngine(t)

	tests := []struct {
		name   string
		mutate func(input *domain.VerdictInput)
		want   []string
	}{
		{
			name: "ledger miss",
			mutate: func(input *domain.VerdictInput) {
				input.LedgerExists = false
			},
			want: []string{"LEDGER_MISS"},
		},
		{
			name: "ledger revoked",
			mutate: func(input *domain.VerdictInput) {
				input.LedgerStatus = "revoked"
			},
			want: []string{"LEDGER_REVOKED"},
		},
		{
			name: "document unknown",
			mutate: func(input *domain.VerdictInput) {
				input.DocumentKnown = false
			},
			want: []string{"DOCUMENT_UNKNOWN"},
		},
		{
			name: "document revoked",
			mutate: func(input *domain.VerdictInput) {
				input.DocumentStatus = "revoked"
			},
			want: []string{"DOCUMENT_REVOKED"},
		},
		{
			name: "document expired",
			mutate: func(input *domain.VerdictInput) {
				input.Expired = true
			},
			want: []string{"DOCUMENT_EXPIRED"},
		},
		{
			name: "revoked and expired accumulate",
			mutate: func(input *domain.VerdictInput) {
				input.DocumentStatus = "revoked"
				input.Expired = true
			},
			want: []string{"DOCUMENT_EXPIRED", "DOCUMENT_REVOKED"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			input := baseVerdictInput()
			tt.mutate(&input)
			out, err := engine.Evaluate(context.Background(), input)
			if err != nil {
				t.Fatalf("evaluate: %v", err)
			}
			if out.Result.Eligible {
				t.Fatalf("expected deny")
			}
			got := denyCodes(out.Result.Deny)
			for _, code := range tt.want {
				if !got[code] {
					t.Fatalf("expected deny code %s, got %v", code, out.Result.Deny)
				}
			}
			if tt.name == "revoked and expired accumulate" {
				if !reflect.DeepEqual(tt.want, denyOrder(out.Result.Deny)) {
					t.Fatalf("expected deterministic deny ordering, got %v", denyOrder(out.Result.Deny))
				}
			}
		})
	}
}

func TestEngineRejectsTimeBuiltin(t *testing.T) {
	rejectBuiltin(t, "time.now_ns()")
}

func TestEngineRejectsHttpSend(t *testing.T) {
	rejectBuiltin(t, "http.send({\"method\": \"get\", \"url\": \"https://example.com\"})")
}

func TestEngineRejectsRand(t *testing.T) {
	rejectBuiltin(t, "rand.intn(10)")
}

func rejectBuiltin(t *testing.T, expr string) {
	t.Helper()
	dir := t.TempDir()
	regoContent := `package veridoc.verdict
result := {"eligible": true, "deny": []} {
  ` + expr + `
}`
	if err := os.WriteFile(filepath.Join(dir, "policy.rego"), []byte(regoContent), 0o644); err != nil {
		t.Fatalf("write rego: %v", err)
	}

	_, err := NewEngineFromBundlePath(context.Background(), dir, "test")
	if err == nil {
		t.Fatalf("expected builtin to be rejected")
	}
}

func newEngine(t *testing.T) *Engine {
	t.Helper()
	path := filepath.Join("..", "..", "..", "policy", "bundle")
	engine, err := NewEngineFromBundlePath(context.Background(), path, "verdict_v1")
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func baseVerdictInput() domain.VerdictInput {
	return domain.VerdictInput{
		LedgerExists:   true,
		LedgerStatus:   domain.LedgerStatusActive,
		DocumentKnown:  true,
		DocumentStatus: domain.DocumentStatusActive,
		Expired:        false,
		VerifierType:   domain.VerifierTypePublic,
	}
}

func denyCodes(deny []domain.VerdictDeny) map[string]bool {
	out := make(map[string]bool, len(deny))
	for _, item := range deny {
		out[item.Code] = true
	}
	return out
}

func denyOrder(deny []domain.VerdictDeny) []string {
	out := make([]string, 0, len(deny))
	for _, item := range deny {
		out = append(out, item.Code)
	}
	return out
}
