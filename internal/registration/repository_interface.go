package registration

import "context"

// RepositoryInterface defines the contract for the transactional writer
type RepositoryInterface interface {
	Register(ctx context.Context, user UserContext, req *RegistrationRequest) (*Result, error)
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
