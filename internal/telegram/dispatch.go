package telegram

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// queueSize bounds each chat's pending updates. The update loop must never
// block on a slow chat, so an overflowing queue drops the update instead.
const queueSize = 16

// UpdateHandler processes one update; *Router satisfies it.
type UpdateHandler interface {
	HandleUpdate(ctx context.Context, upd tgbotapi.Update)
}

// Dispatcher fans updates out to one worker per chat. A provider call issued
// for one user then only suspends that user's worker: other chats keep being
// processed, while each chat's own updates stay in delivery order.
type Dispatcher struct {
	handler UpdateHandler
	log     *zap.Logger

	mu     sync.Mutex
	queues map[int64]chan tgbotapi.Update
}

// NewDispatcher creates a dispatcher around an update handler.
func NewDispatcher(h UpdateHandler, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		handler: h,
		log:     log,
		queues:  make(map[int64]chan tgbotapi.Update),
	}
}

// Dispatch routes an update onto its chat's worker, starting one on first
// contact. Workers exit when ctx is cancelled.
func (d *Dispatcher) Dispatch(ctx context.Context, upd tgbotapi.Update) {
	chatID, ok := updateChatID(upd)
	if !ok {
		return
	}

	d.mu.Lock()
	q, ok := d.queues[chatID]
	if !ok {
		q = make(chan tgbotapi.Update, queueSize)
		d.queues[chatID] = q
		go d.worker(ctx, q)
	}
	d.mu.Unlock()

	select {
	case q <- upd:
	default:
		d.log.Warn("chat queue full, dropping update", zap.Int64("chat", chatID))
	}
}

func (d *Dispatcher) worker(ctx context.Context, q <-chan tgbotapi.Update) {
	for {
		select {
		case <-ctx.Done():
			return
		case upd := <-q:
			d.handler.HandleUpdate(ctx, upd)
		}
	}
}

// updateChatID extracts the chat an update belongs to.
func updateChatID(upd tgbotapi.Update) (int64, bool) {
	if upd.Message != nil && upd.Message.Chat != nil {
		return upd.Message.Chat.ID, true
	}
	if upd.CallbackQuery != nil && upd.CallbackQuery.Message != nil && upd.CallbackQuery.Message.Chat != nil {
		return upd.CallbackQuery.Message.Chat.ID, true
	}
	return 0, false
}
