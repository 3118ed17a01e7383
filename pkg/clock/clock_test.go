package clock

import (
	"testing"
	"time"
)

var epoch = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func TestFakeClockNow(t *testing.T) {
	clock := Fake(epoch)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
	clock.Advance(5 * time.Second)
	want := epoch.Add(5 * time.Second)
	if got := clock.Now(); !got.Equal(want) {
		t.Fatalf("Now() after Advance = %v, want %v", got, want)
	}
}

func TestFakeClockAfterFiresImmediately(t *testing.T) {
	clock := Fake(epoch)

	select {
	case got := <-clock.After(time.Minute):
		if want := epoch.Add(time.Minute); !got.Equal(want) {
			t.Fatalf("After fired with %v, want %v", got, want)
		}
	default:
		t.Fatal("After did not fire")
	}
}

func TestFakeClockAdvanceIgnoresNegative(t *testing.T) {
	clock := Fake(epoch)
	clock.Advance(-time.Hour)
	if got := clock.Now(); !got.Equal(epoch) {
		t.Fatalf("Now() = %v, want %v", got, epoch)
	}
}

func TestFakeClockSet(t *testing.T) {
	clock := Fake(epoch)
	later := epoch.Add(48 * time.Hour)
	clock.Set(later)
	if got := clock.Now(); !got.Equal(later) {
		t.Fatalf("Now() = %v, want %v", got, later)
	}
}
