package service

import (
	"context"

	"github.com/redis/go-redis/v9"
)

type stubStream struct {
	messages []redis.XMessage
	readErr  error
	claimed  []redis.XMessage
	retries  map[string]int64

	acked   []string
	deleted []string
}

func (s *stubStream) XReadGroup(ctx context.Context, a *redis.XReadGroupArgs) *redis.XStreamSliceCmd {
	cmd := redis.NewXStreamSliceCmd(ctx)
	if s.readErr != nil {
		cmd.SetErr(s.readErr)
		return cmd
	}
	cmd.SetVal([]redis.XStream{{Stream: a.Streams[0], Messages: s.messages}})
	return cmd
}

func (s *stubStream) XAutoClaim(ctx context.Context, a *redis.XAutoClaimArgs) *redis.XAutoClaimCmd {
	cmd := redis.NewXAutoClaimCmd(ctx)
	cmd.SetVal(s.claimed, "0-0")
	return cmd
}

func (s *stubStream) XPendingExt(ctx context.Context, a *redis.XPendingExtArgs) *redis.XPendingExtCmd {
	cmd := redis.NewXPendingExtCmd(ctx)
	cmd.SetVal([]redis.XPendingExt{{ID: a.Start, RetryCount: s.retries[a.Start]}})
	return cmd
}

func (s *stubStream) XAck(ctx context.Context, stream, group string, ids ...string) *redis.IntCmd {
	s.acked = append(s.acked, ids...)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(ids)))
	return cmd
}

func (s *stubStream) XDel(ctx context.Context, stream string, ids ...string) *redis.IntCmd {
	s.deleted = append(s.deleted, ids...)
	cmd := redis.NewIntCmd(ctx)
	cmd.SetVal(int64(len(ids)))
	return cmd
}
