package plugin

import "testing"

func TestFooterPriority(t *testing.T) {
	tests := []struct {
		priority int
		want     int
	}{
		{0, 99},
		{1, 1},
		{5, 5},
	}
	for _, tt := range tests {
		c := Command{ID: "x", Priority: tt.priority}
		if got := c.FooterPriority(); got != tt.want {
			t.Errorf("FooterPriority(%d) = %d, want %d", tt.priority, got, tt.want)
		}
	}
}
