package mock

import (
	"context"

	"github.com/rashidq/nezamdoc"
)

var _ nezamdoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of nezamdoc.RunService.
type RunService struct {
	CreateRunFn        func(ctx context.Context, run *nezamdoc.Run) error
	UpdateRunFn        func(ctx context.Context, id string, upd nezamdoc.RunUpdate) (*nezamdoc.Run, error)
	FindRunsFn         func(ctx context.Context, filter nezamdoc.RunFilter) ([]*nezamdoc.Run, error)
	CreateItemRecordFn func(ctx context.Context, rec *nezamdoc.ItemRecord) error
	FindItemRecordsFn  func(ctx context.Context, filter nezamdoc.ItemRecordFilter) ([]*nezamdoc.ItemRecord, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *nezamdoc.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) UpdateRun(ctx context.Context, id string, upd nezamdoc.RunUpdate) (*nezamdoc.Run, error) {
	return s.UpdateRunFn(ctx, id, upd)
}

func (s *RunService) FindRuns(ctx context.Context, filter nezamdoc.RunFilter) ([]*nezamdoc.Run, error) {
	return s.FindRunsFn(ctx, filter)
}

func (s *RunService) CreateItemRecord(ctx context.Context, rec *nezamdoc.ItemRecord) error {
	return s.CreateItemRecordFn(ctx, rec)
}

func (s *RunService) FindItemRecords(ctx context.Context, filter nezamdoc.ItemRecordFilter) ([]*nezamdoc.ItemRecord, error) {
	return s.FindItemRecordsFn(ctx, filter)
}
