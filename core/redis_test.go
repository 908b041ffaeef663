package core

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedisQueue(t *testing.T) *RedisQueue {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisQueue(client)
}

func TestRedisQueueEnqueueReserveAck(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	if err := q.Enqueue(ctx, "pending", "job-1"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}

	job, err := q.Reserve(ctx, "pending", "processing", time.Minute)
	if err != nil {
		t.Fatalf("reserve: %v", err)
	}
	if job != "job-1" {
		t.Fatalf("reserve = %q, want job-1", job)
	}

	if _, err := q.Reserve(ctx, "pending", "processing", time.Minute); err != redis.Nil {
		t.Fatalf("expected redis.Nil on empty pending list, got %v", err)
	}

	if err := q.Ack(ctx, "processing", job); err != nil {
		t.Fatalf("ack: %v", err)
	}
}

func TestRedisQueueRequeueExpired(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	if err := q.Enqueue(ctx, "pending", "job-1"); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	if _, err := q.Reserve(ctx, "pending", "processing", -time.Second); err != nil {
		t.Fatalf("reserve: %v", err)
	}

	requeued, err := q.RequeueExpired(ctx, "processing", "pending", time.Now())
	if err != nil {
		t.Fatalf("requeue: %v", err)
	}
	if len(requeued) != 1 || requeued[0] != "job-1" {
		t.Fatalf("requeued = %v, want [job-1]", requeued)
	}

	job, err := q.Reserve(ctx, "pending", "processing", time.Minute)
	if err != nil {
		t.Fatalf("reserve after requeue: %v", err)
	}
	if job != "job-1" {
		t.Fatalf("reserve after requeue = %q, want job-1", job)
	}
}

func TestRedisQueueRequeueExpiredNoop(t *testing.T) {
	q := newTestRedisQueue(t)
	ctx := context.Background()

	requeued, err := q.RequeueExpired(ctx, "processing", "pending", time.Now())
	if err != nil {
		t.Fatalf("requeue: %v", err)
	}
	if len(requeued) != 0 {
		t.Fatalf("expected no requeued jobs, got %v", requeued)
	}
}
