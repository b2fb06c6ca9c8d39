package listview

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"backoffice/internal/domain"
)

// BulkAction is applied to every selected row with one request per row
type BulkAction[T any] struct {
	Name          string
	Label         string
	RequiresParam bool
	ParamName     string
	Choices       []string
	Do            func(ctx context.Context, row T, param string) error
}

// BulkResult counts the outcome of a bulk action
type BulkResult struct {
	Succeeded int
	Failed    int
}

// Validate checks the selection size and the action parameter without
// touching the network
func (a BulkAction[T]) Validate(selected int, param string) error {
	if selected == 0 {
		return &domain.ValidationError{Field: "selection", Message: "no rows selected"}
	}
	if a.RequiresParam && param == "" {
		return &domain.ValidationError{Field: a.paramField(), Message: "required"}
	}
	if param != "" && len(a.Choices) > 0 && !slices.Contains(a.Choices, param) {
		return &domain.ValidationError{Field: a.paramField(), Message: fmt.Sprintf("unknown value %q", param)}
	}
	return nil
}

func (a BulkAction[T]) paramField() string {
	if a.ParamName != "" {
		return a.ParamName
	}
	return "param"
}

// RunBulkAction runs action once per selected row, in parallel up to the
// configured concurrency, and waits for every request. A refresh follows on
// any outcome. The selection is cleared only when every item and the refresh
// succeeded. When some items fail the error is a *domain.PartialFailureError.
func (c *Controller[T]) RunBulkAction(ctx context.Context, action BulkAction[T], param string) (BulkResult, error) {
	rows := c.SelectedRows()
	if err := action.Validate(len(rows), param); err != nil {
		return BulkResult{}, err
	}
	if action.Do == nil {
		return BulkResult{}, fmt.Errorf("bulk action %s has no handler", action.Name)
	}

	log := c.log.WithValues("action", action.Name)
	log.Info("running bulk action", "rows", len(rows), "param", param)

	var (
		mu     sync.Mutex
		failed []error
	)

	var g errgroup.Group
	g.SetLimit(c.limit)
	for _, row := range rows {
		g.Go(func() error {
			if err := action.Do(ctx, row, param); err != nil {
				mu.Lock()
				failed = append(failed, fmt.Errorf("%s %d: %w", action.Name, c.id(row), err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	result := BulkResult{Succeeded: len(rows) - len(failed), Failed: len(failed)}

	var bulkErr error
	if len(failed) > 0 {
		pf := &domain.PartialFailureError{
			Action:    action.Name,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
			Errors:    failed,
		}
		log.Error(pf, "bulk action partially failed", "detail", pf.Detail())
		bulkErr = pf
	}

	refreshErr := c.Refresh(ctx)
	if refreshErr != nil {
		refreshErr = fmt.Errorf("refresh after %s: %w", action.Name, refreshErr)
	}

	if bulkErr == nil && refreshErr == nil {
		c.ClearSelection()
	}

	if c.publisher != nil {
		c.publisher.Publish(domain.BulkActionCompletedEvent{
			Entity:    c.name,
			Action:    action.Name,
			Succeeded: result.Succeeded,
			Failed:    result.Failed,
		})
	}

	return result, errors.Join(bulkErr, refreshErr)
}
