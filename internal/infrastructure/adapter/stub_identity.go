package adapter

import (
	"context"

	"github.com/Fouxth/BaanTK-sub000/internal/domain/port"
)

// StubIdentityVerifier accepts every checksum-valid ID. Used when no registry
// endpoint is configured, typically in local development.
type StubIdentityVerifier struct{}

// NewStubIdentityVerifier creates the stub.
func NewStubIdentityVerifier() *StubIdentityVerifier {
	return &StubIdentityVerifier{}
}

// Verify reports every ID as valid.
func (s *StubIdentityVerifier) Verify(context.Context, string) (port.VerificationResult, error) {
	return port.VerificationResult{Valid: true, Status: "stubbed"}, nil
}
