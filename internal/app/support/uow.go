package support

import (
	"context"

	"stayhub/internal/app/uow"
)

// BeginUnit reuses a unit of work from context or opens a fresh one. The
// returned commit func is nil when the unit is caller-managed; the cleanup
// func rolls back an unfinished locally-managed unit.
func BeginUnit(ctx context.Context, factory uow.UoWFactory, opts uow.TxOptions) (uow.UnitOfWork, context.Context, func(context.Context) error, func(), error) {
	if unit, ok := uow.FromContext(ctx); ok {
		return unit, ctx, nil, nil, nil
	}
	if factory == nil {
		return nil, ctx, nil, nil, uow.ErrUnitOfWorkMissing
	}
	unit, err := factory.Begin(ctx, opts)
	if err != nil {
		return nil, ctx, nil, nil, err
	}
	execCtx := ctx
	if injector, ok := unit.(interface {
		InjectContext(context.Context) context.Context
	}); ok {
		execCtx = injector.InjectContext(ctx)
	}
	execCtx = uow.ContextWithUnitOfWork(execCtx, unit)
	committed := false
	commit := func(c context.Context) error {
		if err := unit.Commit(c); err != nil {
			return err
		}
		committed = true
		return nil
	}
	cleanup := func() {
		if !committed {
			_ = unit.Rollback(execCtx)
		}
	}
	return unit, execCtx, commit, cleanup, nil
}

// BeginReadOnlyUnit is BeginUnit for read paths; rollback is the only exit.
func BeginReadOnlyUnit(ctx context.Context, factory uow.UoWFactory) (uow.UnitOfWork, context.Context, func(), error) {
	unit, execCtx, _, cleanup, err := BeginUnit(ctx, factory, uow.TxOptions{ReadOnly: true})
	return unit, execCtx, cleanup, err
}
