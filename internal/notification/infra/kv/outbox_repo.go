package kv

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/dwikikusuma/storefront/internal/notification/domain"
	"github.com/dwikikusuma/storefront/pkg/kvstore"
)

const SentEmailsKey = "sentEmails"

type OutboxRepo struct {
	store kvstore.Store
	log   *slog.Logger
}

func NewOutboxRepo(store kvstore.Store, log *slog.Logger) *OutboxRepo {
	if log == nil {
		log = slog.Default()
	}
	return &OutboxRepo{store: store, log: log}
}

func (r *OutboxRepo) Append(ctx context.Context, rec domain.ConfirmationRecord) error {
	entries, err := r.entries(ctx)
	if err != nil {
		return err
	}

	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	return kvstore.SetJSON(ctx, r.store, SentEmailsKey, append(entries, b))
}

func (r *OutboxRepo) List(ctx context.Context) ([]domain.ConfirmationRecord, error) {
	entries, err := r.entries(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ConfirmationRecord, 0, len(entries))
	for i, e := range entries {
		var rec domain.ConfirmationRecord
		if err := json.Unmarshal(e, &rec); err != nil {
			r.log.Warn("skipping unreadable confirmation",
				slog.String("key", SentEmailsKey), slog.Int("index", i), slog.Any("err", err))
			continue
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *OutboxRepo) entries(ctx context.Context) ([]json.RawMessage, error) {
	raw, ok, err := r.store.Get(ctx, SentEmailsKey)
	if err != nil || !ok {
		return nil, err
	}

	var entries []json.RawMessage
	if err := kvstore.DecodeJSON(SentEmailsKey, raw, &entries); err != nil {
		r.log.Warn("corrupt outbox in store, starting empty",
			slog.String("key", SentEmailsKey), slog.Any("err", err))
		return nil, nil
	}
	return entries, nil
}
