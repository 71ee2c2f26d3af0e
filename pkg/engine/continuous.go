// Copyright (c) 2025 Roshni Games. All Rights Reserved.

package engine

import (
	"context"
	"time"

	"github.com/roshni-games/rule-engine/pkg/common"
	"github.com/roshni-games/rule-engine/pkg/metrics"
	"github.com/roshni-games/rule-engine/pkg/rule"
)

// ContextProvider builds the evaluation context for each continuous tick.
type ContextProvider func() *rule.Context

// Batch is the published outcome of one continuous evaluation tick.
type Batch struct {
	ID        string
	Timestamp time.Time
	Outcomes  []Outcome
}

// StartContinuousEvaluation starts the periodic evaluation loop. On each
// tick the provider builds a fresh context, every enabled rule is evaluated,
// and the outcome batch is published to subscribers. Only one loop may be
// active per engine; a second start returns ErrAlreadyRunning.
func (e *Engine) StartContinuousEvaluation(provider ContextProvider, interval time.Duration) error {
	if e.closed.Load() {
		return ErrEngineClosed
	}

	e.loopMu.Lock()
	defer e.loopMu.Unlock()

	if e.running.Load() {
		return ErrAlreadyRunning
	}

	stopCh := make(chan struct{})
	e.stopCh = stopCh
	e.running.Store(true)
	e.loopWG.Add(1)

	go e.loop(provider, interval, stopCh)

	e.log.WithField("interval", interval.String()).Info("continuous evaluation started")
	return nil
}

// StopContinuousEvaluation stops the loop. IsContinuousEvaluationRunning
// flips to false immediately; the call then waits for any in-flight tick,
// so no batch is published after it returns.
func (e *Engine) StopContinuousEvaluation() {
	e.loopMu.Lock()
	if !e.running.Load() {
		e.loopMu.Unlock()
		return
	}
	e.running.Store(false)
	close(e.stopCh)
	e.loopMu.Unlock()

	e.loopWG.Wait()
	e.log.Info("continuous evaluation stopped")
}

// IsContinuousEvaluationRunning reports whether the loop is active.
func (e *Engine) IsContinuousEvaluationRunning() bool {
	return e.running.Load()
}

func (e *Engine) loop(provider ContextProvider, interval time.Duration, stopCh <-chan struct{}) {
	defer e.loopWG.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			e.tick(provider)
		}
	}
}

// tick runs one evaluation round. Errors are logged and never terminate the
// loop.
func (e *Engine) tick(provider ContextProvider) {
	defer func() {
		if rec := recover(); rec != nil {
			e.log.Errorf("continuous evaluation tick panicked: %v", rec)
		}
	}()

	metrics.ContinuousTicksTotal.Inc()

	rctx := provider()
	if rctx == nil {
		e.log.Warn("context provider returned nil, skipping tick")
		return
	}

	batch := Batch{
		ID:        common.NewBatchID(),
		Timestamp: time.Now(),
		Outcomes:  e.evaluateBatch(context.Background(), e.registry.Enabled(), rctx),
	}
	e.publish(batch)
}

// Subscribe registers a batch listener. The returned cancel function
// unsubscribes and closes the channel. Publishes never block: a subscriber
// that has not drained its previous batch misses the new one. After Shutdown
// the returned channel is already closed.
func (e *Engine) Subscribe() (<-chan Batch, func()) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	if e.closed.Load() {
		ch := make(chan Batch)
		close(ch)
		return ch, func() {}
	}

	id := e.nextSub
	e.nextSub++
	ch := make(chan Batch, 1)
	e.subs[id] = ch

	cancel := func() {
		e.subMu.Lock()
		defer e.subMu.Unlock()
		if existing, ok := e.subs[id]; ok {
			delete(e.subs, id)
			close(existing)
		}
	}
	return ch, cancel
}

func (e *Engine) publish(batch Batch) {
	e.subMu.Lock()
	defer e.subMu.Unlock()

	for _, ch := range e.subs {
		select {
		case ch <- batch:
		default:
		}
	}
}
