package stage

import "testing"

func TestDestinationThresholdsStoredInOrder(t *testing.T) {
	d := &DestinationState{}
	d.SetActivationScore(1, 2, 3, 4)

	if d.Thresholds != [4]int{1, 2, 3, 4} {
		t.Fatalf("thresholds = %v, want [1 2 3 4]", d.Thresholds)
	}

	// A rewrite replaces all four, order preserved.
	d.SetActivationScore(40, 30, 20, 10)
	if d.Thresholds != [4]int{40, 30, 20, 10} {
		t.Fatalf("thresholds = %v after rewrite, want [40 30 20 10]", d.Thresholds)
	}
}

func TestDestinationHeroCount(t *testing.T) {
	d := &DestinationState{}
	d.SetHeroCount(2)

	if d.Capacity != 2 {
		t.Fatalf("capacity = %d, want 2", d.Capacity)
	}
	if !d.TryAccept() || !d.TryAccept() {
		t.Fatalf("destination rejected heroes below capacity")
	}
	if d.TryAccept() {
		t.Fatalf("destination accepted a hero past capacity")
	}
	if d.Held != 2 {
		t.Fatalf("held = %d, want 2", d.Held)
	}
}
