package enums

import "testing"

func TestOrderStatusStageIndexOrdering(t *testing.T) {
	prev := -1
	for _, status := range []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusDispatched, OrderStatusDelivered} {
		idx, ok := status.StageIndex()
		if !ok {
			t.Fatalf("chain status %s must have a stage index", status)
		}
		if idx <= prev {
			t.Fatalf("chain order broken at %s: %d <= %d", status, idx, prev)
		}
		prev = idx
	}

	if _, ok := OrderStatusComplete.StageIndex(); ok {
		t.Fatalf("complete must not be part of the stage chain")
	}
	if _, ok := OrderStatus("bogus").StageIndex(); ok {
		t.Fatalf("unknown status must not have a stage index")
	}
}

func TestParseOrderStatus(t *testing.T) {
	if _, err := ParseOrderStatus("dispatched"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ParseOrderStatus("shipped"); err == nil {
		t.Fatalf("expected error for unknown status")
	}
}

func TestParseStageAction(t *testing.T) {
	for _, raw := range []string{"processing", "dispatched", "delivered"} {
		if _, err := ParseStageAction(raw); err != nil {
			t.Fatalf("unexpected error for %q: %v", raw, err)
		}
	}
	if _, err := ParseStageAction("pending"); err == nil {
		t.Fatalf("pending is not a stampable stage")
	}
}
