package parking

import "testing"

func TestSpotOccupyAndRelease(t *testing.T) {
	spot := newSpot(1)

	if !spot.TryOccupy() {
		t.Fatalf("occupying a free spot failed")
	}
	if spot.TryOccupy() {
		t.Fatalf("occupying an occupied spot succeeded")
	}
	if !spot.Release() {
		t.Fatalf("releasing an occupied spot failed")
	}
	if spot.Release() {
		t.Fatalf("releasing a free spot succeeded")
	}
	if !spot.TryOccupy() {
		t.Fatalf("spot not reusable after release")
	}
}
