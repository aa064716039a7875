package billing

import "testing"

func TestNormalizeStatus(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "active", want: "active"},
		{in: "trialing", want: "active"},
		{in: "past_due", want: "active"},
		{in: "canceled", want: "cancelled"},
		{in: "CANCELLED", want: "cancelled"},
		{in: "incomplete", want: "expired"},
		{in: "", want: "expired"},
	}

	for _, tt := range tests {
		if got := normalizeStatus(tt.in); got != tt.want {
			t.Fatalf("normalizeStatus(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsEntitlingStatus(t *testing.T) {
	for _, status := range []string{"active", "trialing", "past_due"} {
		if !isEntitlingStatus(status) {
			t.Fatalf("expected status %q to be entitling", status)
		}
	}
	for _, status := range []string{"canceled", "expired", "paused", ""} {
		if isEntitlingStatus(status) {
			t.Fatalf("expected status %q to be non-entitling", status)
		}
	}
}
