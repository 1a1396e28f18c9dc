package main

import (
	"context"
	"fmt"

	"veridoc/internal/config"
	"veridoc/internal/domain"
	"veridoc/internal/infra/auditmem"
	"veridoc/internal/infra/cachemem"
	"veridoc/internal/infra/cacheredis"
	"veridoc/internal/infra/crypto"
	"veridoc/internal/infra/db"
	"veridoc/internal/infra/ledger/memledger"
	"veridoc/internal/infra/ledger/registry"
	"veridoc/internal/infra/policyopa"
	"veridoc/internal/infra/proofmem"
	"veridoc/internal/usecase"
)

// app holds the wired collaborators for one command invocation. Online
// mode talks to postgres, redis and the registry service; offline mode
// swaps in the in-memory implementations and needs no services at all.
type app struct {
	cfg           config.Config
	ledger        domain.LedgerService
	documents     domain.DocumentRepository
	verifications domain.VerificationRepository
	proofs        domain.ProofRepository
	cache         usecase.ProofCache
	policy        usecase.VerdictEngine
	audit         *usecase.AuditEmitter
	crypto        *crypto.Service
}

func newApp(ctx context.Context, offline bool) (*app, error) {
	cfg := config.FromEnv()
	a := &app{
		cfg:    cfg,
		crypto: crypto.NewService(),
	}

	if offline {
		a.ledger = memledger.New()
		a.proofs = proofmem.New()
		a.cache = cachemem.New()
		a.audit = usecase.NewAuditEmitter(auditmem.New(), nil)
		mem := newMemStore()
		a.documents = mem
		a.verifications = mem
		return a, nil
	}

	gdb, err := db.Open(cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	a.documents = db.NewDocumentRepository(gdb)
	a.verifications = db.NewVerificationRepository(gdb)
	a.proofs = db.NewProofRepository(gdb)
	a.audit = usecase.NewAuditEmitter(db.NewAuditEventRepository(gdb), nil)

	a.ledger = registry.New(cfg.RegistryBaseURL, cfg.RegistryAPIKey)

	if cfg.RedisAddr != "" {
		cache, err := cacheredis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		a.cache = cache
	} else {
		a.cache = cachemem.New()
	}

	if cfg.PolicyBundlePath != "" {
		engine, err := policyopa.NewEngineFromBundlePath(ctx, cfg.PolicyBundlePath, cfg.PolicyBundleID)
		if err != nil {
			return nil, fmt.Errorf("load policy bundle: %w", err)
		}
		a.policy = engine
	}
	return a, nil
}

func (a *app) anchorUsecase() *usecase.AnchorDocument {
	return &usecase.AnchorDocument{
		Ledger:    a.ledger,
		Documents: a.documents,
		Audit:     a.audit,
	}
}

func (a *app) verifyUsecase() *usecase.VerifyDocument {
	return &usecase.VerifyDocument{
		Ledger:        a.ledger,
		Documents:     a.documents,
		Verifications: a.verifications,
		Proofs:        a.proofs,
		Crypto:        a.crypto,
		Policy:        a.policy,
		Audit:         a.audit,
		VerifyBaseURL: a.cfg.VerifyBaseURL,
	}
}

func (a *app) checkUsecase() *usecase.CheckProof {
	return &usecase.CheckProof{
		Proofs:   a.proofs,
		Crypto:   a.crypto,
		Cache:    a.cache,
		Audit:    a.audit,
		CacheTTL: a.cfg.CacheTTL,
	}
}

func (a *app) revokeUsecase() *usecase.RevokeDocument {
	return &usecase.RevokeDocument{
		Documents: a.documents,
		Audit:     a.audit,
	}
}
