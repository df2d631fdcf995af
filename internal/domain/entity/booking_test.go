package entity

import (
	"testing"
	"time"
)

func TestApplyStatus_AppendsHistoryOnChange(t *testing.T) {
	now := time.Now().UTC()
	b := &Booking{Status: BookingStatusPending}
	b.AppendHistory(BookingStatusPending, ActorPatient, now)

	changed := b.ApplyStatus(BookingStatusConfirmed, ActorAdmin, now.Add(time.Hour))
	if !changed {
		t.Fatal("expected status change to be reported")
	}
	if b.Status != BookingStatusConfirmed {
		t.Fatalf("status = %q, want confirmed", b.Status)
	}
	if len(b.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(b.StatusHistory))
	}
	last := b.StatusHistory[len(b.StatusHistory)-1]
	if last.Status != BookingStatusConfirmed {
		t.Fatalf("last entry status = %q, want confirmed", last.Status)
	}
	if last.UpdatedBy != ActorAdmin {
		t.Fatalf("last entry actor = %q, want admin", last.UpdatedBy)
	}
}

func TestApplyStatus_NoAppendWhenUnchanged(t *testing.T) {
	now := time.Now().UTC()
	b := &Booking{Status: BookingStatusConfirmed}
	b.AppendHistory(BookingStatusPending, ActorPatient, now)
	b.AppendHistory(BookingStatusConfirmed, ActorAdmin, now)

	changed := b.ApplyStatus(BookingStatusConfirmed, ActorAdmin, now.Add(time.Hour))
	if changed {
		t.Fatal("expected no status change")
	}
	if len(b.StatusHistory) != 2 {
		t.Fatalf("history length = %d, want 2", len(b.StatusHistory))
	}
}

func TestApplyStatus_AllTransitionsAllowed(t *testing.T) {
	// The state machine is deliberately unguarded: rejected bookings can be
	// confirmed later and confirmed bookings can move back to pending.
	statuses := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusRejected}
	now := time.Now().UTC()

	for _, from := range statuses {
		for _, to := range statuses {
			if from == to {
				continue
			}
			b := &Booking{Status: from}
			if !b.ApplyStatus(to, ActorAdmin, now) {
				t.Fatalf("transition %s -> %s was rejected", from, to)
			}
		}
	}
}

func TestAssignTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		changed bool
	}{
		{"empty leaves stored value", "", "10:00 AM - 12:00 PM", false},
		{"blank leaves stored value", "   ", "10:00 AM - 12:00 PM", false},
		{"non-blank replaces", "2:00 PM - 4:00 PM", "2:00 PM - 4:00 PM", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := &Booking{AppointmentTime: "10:00 AM - 12:00 PM"}
			changed := b.AssignTime(tt.input)
			if changed != tt.changed {
				t.Fatalf("changed = %v, want %v", changed, tt.changed)
			}
			if b.AppointmentTime != tt.want {
				t.Fatalf("appointment time = %q, want %q", b.AppointmentTime, tt.want)
			}
		})
	}
}

func TestStatusHistory_ScanValueRoundTrip(t *testing.T) {
	now := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	original := StatusHistory{
		{Status: BookingStatusPending, Timestamp: now, UpdatedBy: ActorPatient},
		{Status: BookingStatusConfirmed, Timestamp: now.Add(time.Hour), UpdatedBy: ActorAdmin},
	}

	value, err := original.Value()
	if err != nil {
		t.Fatalf("value: %v", err)
	}

	var restored StatusHistory
	if err := restored.Scan(value); err != nil {
		t.Fatalf("scan: %v", err)
	}
	if len(restored) != 2 {
		t.Fatalf("restored length = %d, want 2", len(restored))
	}
	if restored[1].Status != BookingStatusConfirmed || restored[1].UpdatedBy != ActorAdmin {
		t.Fatalf("unexpected restored entry: %+v", restored[1])
	}
}
