package listview

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"backoffice/internal/domain"
)

func changeGrade(fail map[int64]bool, calls *atomic.Int32) BulkAction[member] {
	return BulkAction[member]{
		Name:          "membership",
		Label:         "등급 변경",
		RequiresParam: true,
		ParamName:     "grade",
		Choices:       []string{"BASIC", "PREMIUM", "VIP"},
		Do: func(_ context.Context, m member, grade string) error {
			calls.Add(1)
			if fail[m.No] {
				return errors.New("500 internal server error")
			}
			return nil
		},
	}
}

func TestBulkActionPartialFailure(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := &fakeServer{rows: makeMembers(5)}
	c := newRemote(t, srv, func(cfg *Config[member]) { cfg.BulkConcurrency = 3 })
	for _, id := range []int64{1, 2, 3} {
		c.ToggleRowSelection(id)
	}
	fetchesBefore := srv.fetches.Load()

	var calls atomic.Int32
	res, err := c.RunBulkAction(context.Background(), changeGrade(map[int64]bool{2: true}, &calls), "VIP")

	require.Error(t, err)
	var pf *domain.PartialFailureError
	require.ErrorAs(t, err, &pf)
	assert.Equal(t, 2, pf.Succeeded)
	assert.Equal(t, 1, pf.Failed)
	assert.Contains(t, err.Error(), "2 succeeded, 1 failed")
	assert.Len(t, pf.Errors, 1)

	assert.Equal(t, BulkResult{Succeeded: 2, Failed: 1}, res)
	assert.Equal(t, int32(3), calls.Load(), "one request per selected row")
	assert.Equal(t, []int64{1, 2, 3}, c.SelectedIDs(), "selection is kept after a partial failure")
	assert.Greater(t, srv.fetches.Load(), fetchesBefore, "refresh runs regardless of outcome")
}

func TestBulkActionSuccessClearsSelection(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := &fakeServer{rows: makeMembers(5)}
	pub := &recordingPublisher{}
	c := newRemote(t, srv, func(cfg *Config[member]) { cfg.Publisher = pub })
	c.ToggleSelectAllVisible()
	fetchesBefore := srv.fetches.Load()

	var calls atomic.Int32
	res, err := c.RunBulkAction(context.Background(), changeGrade(nil, &calls), "BASIC")
	require.NoError(t, err)

	assert.Equal(t, BulkResult{Succeeded: 5}, res)
	assert.Equal(t, int32(5), calls.Load())
	assert.Empty(t, c.SelectedIDs())
	assert.Equal(t, fetchesBefore+1, srv.fetches.Load())

	var completed []domain.BulkActionCompletedEvent
	for _, e := range pub.events {
		if ev, ok := e.(domain.BulkActionCompletedEvent); ok {
			completed = append(completed, ev)
		}
	}
	require.Len(t, completed, 1)
	assert.Equal(t, domain.BulkActionCompletedEvent{Entity: "members", Action: "membership", Succeeded: 5}, completed[0])
}

func TestBulkActionKeepsSelectionWhenRefreshFails(t *testing.T) {
	defer goleak.VerifyNone(t)

	srv := &fakeServer{rows: makeMembers(3)}
	c := newRemote(t, srv)
	c.ToggleRowSelection(1)

	srv.mu.Lock()
	srv.fail = errors.New("connection reset")
	srv.mu.Unlock()

	var calls atomic.Int32
	_, err := c.RunBulkAction(context.Background(), changeGrade(nil, &calls), "VIP")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refresh after membership")
	assert.False(t, errors.As(err, new(*domain.PartialFailureError)))
	assert.Equal(t, []int64{1}, c.SelectedIDs())
}

func TestBulkActionValidation(t *testing.T) {
	srv := &fakeServer{rows: makeMembers(3)}

	tests := []struct {
		name  string
		ids   []int64
		param string
		field string
	}{
		{name: "empty selection", param: "VIP", field: "selection"},
		{name: "missing grade", ids: []int64{1}, field: "grade"},
		{name: "unknown grade", ids: []int64{1}, param: "GOLD", field: "grade"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newRemote(t, srv)
			for _, id := range tt.ids {
				c.ToggleRowSelection(id)
			}
			fetchesBefore := srv.fetches.Load()

			var calls atomic.Int32
			_, err := c.RunBulkAction(context.Background(), changeGrade(nil, &calls), tt.param)

			var verr *domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Zero(t, calls.Load(), "no request before validation passes")
			assert.Equal(t, fetchesBefore, srv.fetches.Load())
		})
	}
}

func TestBulkActionReachesRowsOnOtherPages(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := newLocal(t, makeMembers(15))
	c.ToggleRowSelection(1)
	c.SetPage(2)
	c.ToggleRowSelection(12)

	var seen []int64
	action := BulkAction[member]{
		Name: "delete",
		Do: func(_ context.Context, m member, _ string) error {
			seen = append(seen, m.No)
			return nil
		},
	}
	// one worker keeps the append above race free
	c.limit = 1

	_, err := c.RunBulkAction(context.Background(), action, "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{1, 12}, seen)
}
