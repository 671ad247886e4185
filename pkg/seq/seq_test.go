package seq

import (
	"errors"
	"testing"
)

func TestNewDefaultsToBaseline(t *testing.T) {
	s := New[float32](0)
	if s.Cap() != BaselineCapacity {
		t.Errorf("expected capacity %d, got %d", BaselineCapacity, s.Cap())
	}
	if s.Len() != 0 {
		t.Errorf("expected empty sequence, got %d", s.Len())
	}
}

func TestPushDoublesCapacity(t *testing.T) {
	s := New[int](4)

	for i := 0; i < 4; i++ {
		if err := s.Push(i); err != nil {
			t.Fatalf("Push failed: %v", err)
		}
	}
	if s.Cap() != 4 {
		t.Errorf("expected capacity 4 before overflow, got %d", s.Cap())
	}

	if err := s.Push(4); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if s.Cap() != 8 {
		t.Errorf("expected capacity 8 after first overflow, got %d", s.Cap())
	}

	// A batch larger than one doubling keeps doubling
	if err := s.Push(make([]int, 20)...); err != nil {
		t.Fatalf("Push failed: %v", err)
	}
	if s.Cap() != 32 {
		t.Errorf("expected capacity 32, got %d", s.Cap())
	}
	if s.Len() != 25 {
		t.Errorf("expected length 25, got %d", s.Len())
	}
}

func TestPushPreservesOrder(t *testing.T) {
	s := New[int](1)
	for i := 0; i < 100; i++ {
		s.Push(i)
	}
	for i, v := range s.Slice() {
		if v != i {
			t.Fatalf("element %d: got %d", i, v)
		}
	}
}

func TestLimit(t *testing.T) {
	s := New[int](2).WithLimit(3)

	if err := s.Push(1, 2, 3); err != nil {
		t.Fatalf("Push within limit failed: %v", err)
	}
	err := s.Push(4)
	if !errors.Is(err, ErrLimit) {
		t.Fatalf("expected ErrLimit, got %v", err)
	}
	if s.Len() != 3 {
		t.Errorf("failed push must not append, length %d", s.Len())
	}
}

func TestRelease(t *testing.T) {
	s := New[int](8)
	s.Push(1, 2, 3)
	s.Release()
	if s.Len() != 0 || s.Cap() != 0 {
		t.Errorf("expected empty storage after Release, got len %d cap %d", s.Len(), s.Cap())
	}
	// Still usable after release
	if err := s.Push(7); err != nil {
		t.Fatalf("Push after Release failed: %v", err)
	}
	if s.Cap() != BaselineCapacity {
		t.Errorf("expected baseline capacity after regrow, got %d", s.Cap())
	}
}
