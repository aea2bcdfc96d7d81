package notification

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"healthapp-backend/internal/domain/entity"
	"healthapp-backend/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const sendTimeout = 10 * time.Second

// Dispatcher delivers notifications on a bounded worker pool so email
// sending never blocks a request thread.
//
// Enqueue is non-blocking: when the queue is full the message is dropped,
// logged and counted (reject-new policy). There is no cancellation once a
// message is queued, and delivery may complete after the triggering HTTP
// response has been sent.
type Dispatcher struct {
	sender  EmailSender
	db      *gorm.DB
	logRepo repository.NotificationLogRepository
	log     *logrus.Logger

	queue   chan Message
	wg      sync.WaitGroup
	stopped atomic.Bool
	dropped atomic.Int64
}

// NewDispatcher starts the worker pool. Call Stop() during graceful shutdown.
func NewDispatcher(
	sender EmailSender,
	db *gorm.DB,
	logRepo repository.NotificationLogRepository,
	log *logrus.Logger,
	workers, queueSize int,
) *Dispatcher {
	if workers <= 0 {
		workers = 5
	}
	if queueSize <= 0 {
		queueSize = 100
	}

	d := &Dispatcher{
		sender:  sender,
		db:      db,
		logRepo: logRepo,
		log:     log,
		queue:   make(chan Message, queueSize),
	}

	for i := 0; i < workers; i++ {
		d.wg.Add(1)
		go d.worker()
	}

	return d
}

// Enqueue submits a message for delivery. Returns false when the dispatcher
// is stopped or the queue is full; the caller must treat either outcome as a
// logged no-op, never as a failure of the triggering operation.
func (d *Dispatcher) Enqueue(msg Message) bool {
	if d.stopped.Load() {
		d.log.Warnf("Notification dispatcher stopped, dropping message to %s", msg.To)
		return false
	}

	select {
	case d.queue <- msg:
		return true
	default:
		d.dropped.Add(1)
		d.log.Warnf("Notification queue full, dropping message to %s (%s)", msg.To, msg.TemplateType)
		return false
	}
}

// Dropped returns the number of messages rejected because the queue was full.
func (d *Dispatcher) Dropped() int64 {
	return d.dropped.Load()
}

// Stop drains the queue and waits for in-flight deliveries.
// Safe to call multiple times.
func (d *Dispatcher) Stop() {
	if d.stopped.CompareAndSwap(false, true) {
		close(d.queue)
		d.wg.Wait()
		d.log.Info("Notification dispatcher stopped")
	}
}

func (d *Dispatcher) worker() {
	defer d.wg.Done()

	for msg := range d.queue {
		d.deliver(msg)
	}
}

func (d *Dispatcher) deliver(msg Message) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	status := entity.NotificationStatusSent
	errText := ""
	if err := d.sender.Send(ctx, msg); err != nil {
		status = entity.NotificationStatusFailed
		errText = err.Error()
		d.log.Warnf("Failed to send notification to %s: %+v", msg.To, err)
	}

	if d.db == nil || d.logRepo == nil {
		return
	}

	logEntry := &entity.NotificationLog{
		Recipient:    msg.To,
		Subject:      msg.Subject,
		TemplateType: msg.TemplateType,
		Status:       status,
		Error:        errText,
		CreatedAt:    time.Now().UTC(),
	}
	if err := d.logRepo.Create(d.db, logEntry); err != nil {
		d.log.Warnf("Failed to record notification log: %+v", err)
	}
}
