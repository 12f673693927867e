package poller

import (
	"context"
	"sync"
	"time"

	"github.com/hubln/hubln/internal/config"
	"github.com/hubln/hubln/internal/notify"
	"github.com/hubln/hubln/internal/payment/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Poller owns the payment-status fallback tasks. Webhooks remain the source
// of truth; a task only shortens how long a user stares at a pending screen,
// and losing one (process restart, exhausted attempts) never leaves state
// inconsistent.
type Poller struct {
	log         *zap.Logger
	status      domain.StatusService
	notifier    *notify.Notifier
	schedule    []time.Duration
	maxAttempts int

	mu    sync.Mutex
	tasks map[string]*Task
}

type Params struct {
	fx.In

	Log      *zap.Logger
	Cfg      config.Config
	Status   domain.StatusService
	Notifier *notify.Notifier
}

func New(p Params) *Poller {
	schedule := p.Cfg.Poll.Backoff
	if len(schedule) == 0 {
		schedule = []time.Duration{30 * time.Second, 60 * time.Second, 120 * time.Second, 300 * time.Second}
	}
	maxAttempts := p.Cfg.Poll.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 10
	}
	return &Poller{
		log:         p.Log.Named("poller"),
		status:      p.Status,
		notifier:    p.Notifier,
		schedule:    schedule,
		maxAttempts: maxAttempts,
		tasks:       make(map[string]*Task),
	}
}

// Start begins polling a payment id. Starting an id that is already being
// polled returns the existing task.
func (p *Poller) Start(ctx context.Context, paymentID string) *Task {
	p.mu.Lock()
	defer p.mu.Unlock()

	if existing, ok := p.tasks[paymentID]; ok && !existing.Finished() {
		return existing
	}

	taskCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	t := &Task{
		paymentID: paymentID,
		poller:    p,
		cancel:    cancel,
		finished:  make(chan struct{}),
	}
	p.tasks[paymentID] = t
	go t.run(taskCtx)
	return t
}

func (p *Poller) Stop(paymentID string) {
	p.mu.Lock()
	t, ok := p.tasks[paymentID]
	p.mu.Unlock()
	if ok {
		t.Stop()
	}
}

type Task struct {
	paymentID string
	poller    *Poller
	cancel    context.CancelFunc

	mu       sync.Mutex
	attempts int
	paid     bool
	done     bool

	finished chan struct{}
}

func (t *Task) run(ctx context.Context) {
	defer t.finish()

	for i := 0; i < t.poller.maxAttempts; i++ {
		interval := t.poller.schedule[len(t.poller.schedule)-1]
		if i < len(t.poller.schedule) {
			interval = t.poller.schedule[i]
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}

		paid, err := t.check(ctx)
		if err != nil {
			// Logged and retried on the next tick.
			t.poller.log.Warn("status poll failed",
				zap.String("payment_id", t.paymentID),
				zap.Error(err))
			continue
		}
		if paid {
			return
		}
	}

	t.poller.log.Info("status polling exhausted",
		zap.String("payment_id", t.paymentID),
		zap.Int("attempts", t.Attempts()))
}

// CheckNow is the manual "check now" action. It works even after the
// scheduled attempts are exhausted.
func (t *Task) CheckNow(ctx context.Context) (bool, error) {
	return t.check(ctx)
}

func (t *Task) check(ctx context.Context) (bool, error) {
	t.mu.Lock()
	t.attempts++
	t.mu.Unlock()

	result, err := t.poller.status.Check(ctx, t.paymentID)
	if err != nil {
		return false, err
	}
	if !result.IsPaid {
		return false, nil
	}

	t.mu.Lock()
	alreadyPaid := t.paid
	t.paid = true
	t.mu.Unlock()

	if !alreadyPaid && t.poller.notifier != nil {
		err := t.poller.notifier.PublishPaymentConfirmed(ctx, notify.PaymentConfirmed{
			PaymentID: t.paymentID,
			Status:    result.Status,
		})
		if err != nil {
			t.poller.log.Warn("confirmation broadcast failed",
				zap.String("payment_id", t.paymentID),
				zap.Error(err))
		}
	}
	return true, nil
}

func (t *Task) Stop() {
	t.cancel()
	<-t.finished
}

func (t *Task) Attempts() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.attempts
}

func (t *Task) Paid() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.paid
}

func (t *Task) Finished() bool {
	select {
	case <-t.finished:
		return true
	default:
		return false
	}
}

func (t *Task) finish() {
	t.mu.Lock()
	if !t.done {
		t.done = true
		close(t.finished)
	}
	t.mu.Unlock()
}
