package signaling

import (
	"context"
	"testing"
	"time"
)

func TestMemoryTransport_DeliversToAllSubscribersIncludingSender(t *testing.T) {
	tr := NewMemoryTransport()
	ctx := context.Background()

	var got []string
	sub1, err := tr.Subscribe(ctx, RoomTopic("r1"), func(env Envelope) {
		got = append(got, "a:"+string(env.Kind))
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub1.Close()
	sub2, err := tr.Subscribe(ctx, RoomTopic("r1"), func(env Envelope) {
		got = append(got, "b:"+string(env.Kind))
	})
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	defer sub2.Close()

	env := Envelope{Kind: KindIncomingCall, RoomID: "r1", FromUserID: "u1", SentAt: time.Unix(1700000000, 0).UTC()}
	if err := tr.Publish(ctx, RoomTopic("r1"), env); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 deliveries, got %d (%v)", len(got), got)
	}
}

func TestMemoryTransport_TopicIsolation(t *testing.T) {
	tr := NewMemoryTransport()
	ctx := context.Background()

	delivered := 0
	sub, _ := tr.Subscribe(ctx, RoomTopic("r1"), func(Envelope) { delivered++ })
	defer sub.Close()

	_ = tr.Publish(ctx, RoomTopic("r2"), Envelope{Kind: KindCallEnded, RoomID: "r2", FromUserID: "u"})
	if delivered != 0 {
		t.Fatalf("expected no cross-topic delivery, got %d", delivered)
	}
}

func TestMemoryTransport_ClosedSubscriptionStopsDelivery(t *testing.T) {
	tr := NewMemoryTransport()
	ctx := context.Background()

	delivered := 0
	sub, _ := tr.Subscribe(ctx, UserTopic("u9"), func(Envelope) { delivered++ })
	if err := sub.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	_ = tr.Publish(ctx, UserTopic("u9"), Envelope{Kind: KindIncomingCall, RoomID: "r", FromUserID: "x"})
	if delivered != 0 {
		t.Fatalf("expected no delivery after close, got %d", delivered)
	}
}

func TestSignalKindValidation(t *testing.T) {
	for _, k := range []SignalKind{KindIncomingCall, KindCallAnswered, KindCallDeclined, KindCallEnded} {
		if !k.Valid() {
			t.Fatalf("expected %q valid", k)
		}
	}
	if SignalKind("ring-ring").Valid() {
		t.Fatalf("unexpected valid kind")
	}
}

func TestTopics(t *testing.T) {
	if RoomTopic("gf-call-42") != "call:room:gf-call-42" {
		t.Fatalf("room topic: %q", RoomTopic("gf-call-42"))
	}
	if UserTopic("u1") != "call:user:u1" {
		t.Fatalf("user topic: %q", UserTopic("u1"))
	}
}
