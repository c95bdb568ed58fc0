package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Operation statuses reported by the gateway.
const (
	OperationStatusPending    = "PENDING"
	OperationStatusInProgress = "IN_PROGRESS"
	OperationStatusRetrying   = "RETRYING"
	OperationStatusCompleted  = "COMPLETED"
	OperationStatusFailed     = "FAILED"
)

// Operation tracks an asynchronous ledger submission through the gateway.
// Attempts counts the gateway's own submission tries, not this client's
// polling.
type Operation struct {
	ID            string         `json:"id"`
	Type          string         `json:"type,omitempty"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transactionId,omitempty"`
	EntityID      string         `json:"entityId,omitempty"`
	Attempts      int            `json:"attempts,omitempty"`
	MaxAttempts   int            `json:"maxAttempts,omitempty"`
	Error         string         `json:"error,omitempty"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	UpdatedAt     string         `json:"updatedAt,omitempty"`
	Result        map[string]any `json:"result,omitempty"`
}

// Terminal reports whether the operation reached a final state.
func (o Operation) Terminal() bool {
	return strings.EqualFold(o.Status, OperationStatusCompleted) ||
		strings.EqualFold(o.Status, OperationStatusFailed)
}

// ListOperationsOptions filters ListOperations results.
type ListOperationsOptions struct {
	Status string
	Limit  int
}

// WaitOptions bounds WaitForOperation polling.
type WaitOptions struct {
	MaxAttempts int
	Interval    time.Duration
}

// GetOperation fetches the current state of an operation.
func (c *Client) GetOperation(ctx context.Context, operationID string) (Operation, error) {
	var operation Operation
	normalized := strings.TrimSpace(operationID)
	if normalized == "" {
		return operation, fmt.Errorf("operation ID is required")
	}

	path := fmt.Sprintf("/operations/%s", url.PathEscape(normalized))
	if err := c.Get(ctx, path, &operation); err != nil {
		return operation, err
	}

	return operation, nil
}

// ListOperations returns recent operations, optionally filtered by status.
func (c *Client) ListOperations(ctx context.Context, options ListOperationsOptions) ([]Operation, error) {
	values := url.Values{}
	if options.Status != "" {
		values.Set("status", options.Status)
	}
	if options.Limit > 0 {
		values.Set("limit", fmt.Sprintf("%d", options.Limit))
	}

	var response struct {
		Operations []Operation `json:"operations"`
	}
	if err := c.GetWithQuery(ctx, "/operations", values, &response); err != nil {
		return nil, err
	}

	return response.Operations, nil
}

// WaitForOperation polls until the operation completes, fails, or the
// attempt budget runs out. Transient fetch errors do not consume the
// result: polling continues until the budget is spent.
func (c *Client) WaitForOperation(
	ctx context.Context,
	operationID string,
	options WaitOptions,
) (Operation, error) {
	maxAttempts := options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 60
	}
	interval := options.Interval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	var latest Operation
	for attempt := 0; attempt < maxAttempts; attempt++ {
		operation, err := c.GetOperation(ctx, operationID)
		if err != nil {
			if isRetryableWaitError(err) && attempt < maxAttempts-1 {
				select {
				case <-ctx.Done():
					return Operation{}, ctx.Err()
				case <-time.After(interval):
				}
				continue
			}
			return Operation{}, err
		}
		latest = operation

		if strings.EqualFold(operation.Status, OperationStatusFailed) {
			if operation.Error == "" {
				operation.Error = "operation failed"
			}
			return operation, errors.New(operation.Error)
		}
		if strings.EqualFold(operation.Status, OperationStatusCompleted) {
			return operation, nil
		}

		select {
		case <-ctx.Done():
			return Operation{}, ctx.Err()
		case <-time.After(interval):
		}
	}

	return latest, fmt.Errorf("operation did not complete within %d attempts", maxAttempts)
}

// isRetryableWaitError allows polling to ride out transient gateway and
// transport failures between attempts.
func isRetryableWaitError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var exhausted *RetryExhaustedError
	if errors.As(err, &exhausted) {
		return true
	}

	return IsRetryable(err)
}
