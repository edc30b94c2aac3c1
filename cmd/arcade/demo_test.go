package main

import (
	"context"
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/arcade-portal/internal/core"
)

func TestRunBotSendsGameActionsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := make(chan core.Action)
	done := make(chan struct{})
	go func() {
		runBot(ctx, rand.New(rand.NewSource(1)), time.Millisecond, out)
		close(done)
	}()

	for range 20 {
		a := <-out
		if !slices.Contains(botActions, a) {
			t.Fatalf("bot sent %v", a)
		}
	}
	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bot did not stop after cancel")
	}
}
