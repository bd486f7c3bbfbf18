package testorder

import "context"

// ServiceInterface defines the contract for test workflow operations
type ServiceInterface interface {
	ListCenterEntries(ctx context.Context, hospitalID int64) ([]CenterEntry, error)
	SendToNode(ctx context.Context, req SendToNodeRequest) (int64, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (int64, error)
	EnterResult(ctx context.Context, testID int64, req EnterResultRequest) error
}

var _ ServiceInterface = (*Service)(nil)
