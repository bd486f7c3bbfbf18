package registration

import "context"

// ServiceInterface defines the contract for the registration workflow
type ServiceInterface interface {
	Register(ctx context.Context, user UserContext, req *RegistrationRequest) (string, error)
}

var _ ServiceInterface = (*Service)(nil)
