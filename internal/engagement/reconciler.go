// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package engagement

import (
	"context"
	"log/slog"
	"time"
)

// reconcileLockName is the lock shared by all replicas running the job.
const reconcileLockName = "reconcile-likes"

// Locker grants exclusive, expiring locks. *cache.Locker satisfies it.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (release func(context.Context) error, ok bool, err error)
}

// Reconciler periodically repairs drifted like counters. Only the replica
// holding the lock runs a pass.
type Reconciler struct {
	ledger   *Ledger
	locker   Locker
	interval time.Duration
}

// NewReconciler creates a reconciler that runs every interval. A nil
// locker runs every pass unconditionally.
func NewReconciler(ledger *Ledger, locker Locker, interval time.Duration) *Reconciler {
	return &Reconciler{ledger: ledger, locker: locker, interval: interval}
}

// Run blocks, reconciling on every tick until ctx is cancelled.
func (r *Reconciler) Run(ctx context.Context) {
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	slog.Info("like reconciler started", "interval", r.interval)
	for {
		select {
		case <-ticker.C:
			if _, _, err := r.RunOnce(ctx); err != nil {
				slog.Error("like reconciliation failed", "error", err)
			}
		case <-ctx.Done():
			slog.Info("like reconciler stopped")
			return
		}
	}
}

// RunOnce performs a single pass. ran is false when another replica holds
// the lock.
func (r *Reconciler) RunOnce(ctx context.Context) (corrected int, ran bool, err error) {
	if r.locker != nil {
		release, ok, err := r.locker.TryLock(ctx, reconcileLockName, r.interval)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			slog.Debug("like reconciliation skipped, lock held elsewhere")
			return 0, false, nil
		}
		defer func() {
			if err := release(context.WithoutCancel(ctx)); err != nil {
				slog.Warn("release reconcile lock", "error", err)
			}
		}()
	}

	corrected, err = r.ledger.ReconcileAll(ctx)
	if err != nil {
		return 0, true, err
	}
	return corrected, true, nil
}
