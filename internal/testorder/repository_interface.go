package testorder

import "context"

// RepositoryInterface defines the contract for test workflow data access
type RepositoryInterface interface {
	ListCenterEntries(ctx context.Context, hospitalID int64) ([]CenterEntry, error)
	SendToNode(ctx context.Context, patientIDs []int64) (int64, error)
	UpdateStatus(ctx context.Context, testIDs []int64, status, reason string) (int64, error)
	EnterResult(ctx context.Context, testID int64, result EnterResultRequest) error
}

// Ensure Repository implements RepositoryInterface
var _ RepositoryInterface = (*Repository)(nil)
