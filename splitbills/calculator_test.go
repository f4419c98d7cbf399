package splitbills

import (
	"testing"

	"guildhall/models"
)

func items(prices ...int64) []models.BillItem {
	out := make([]models.BillItem, 0, len(prices))
	for _, p := range prices {
		out = append(out, models.BillItem{Name: "item", Price: p})
	}
	return out
}

func TestSplitAmount(t *testing.T) {
	tests := []struct {
		name   string
		prices []int64
		fee    int64
		count  int
		want   int64
	}{
		{"even split", []int64{100, 200, 300}, 0, 3, 200},
		{"fee deducted", []int64{100, 200, 300}, 60, 3, 180},
		{"remainder dropped", []int64{100}, 0, 3, 33},
		{"fee exceeds total", []int64{50}, 100, 2, 0},
		{"fee equals total", []int64{50, 50}, 100, 4, 0},
		{"no items", nil, 0, 3, 0},
		{"no items with fee", nil, 25, 3, 0},
		{"zero participants", []int64{100}, 0, 0, 0},
		{"negative participants", []int64{100}, 0, -1, 0},
		{"single participant", []int64{100, 50}, 30, 1, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitAmount(items(tt.prices...), tt.fee, tt.count)
			if got != tt.want {
				t.Errorf("SplitAmount(%v, %d, %d) = %d, want %d",
					tt.prices, tt.fee, tt.count, got, tt.want)
			}
		})
	}
}

// The share times the head count must never exceed what was actually owed.
func TestSplitAmountNeverOvercharges(t *testing.T) {
	cases := []struct {
		prices []int64
		fee    int64
		count  int
	}{
		{[]int64{999}, 0, 7},
		{[]int64{1000, 1, 1}, 13, 4},
		{[]int64{5, 5, 5}, 2, 6},
		{[]int64{1}, 0, 100},
	}

	for _, c := range cases {
		var total int64
		for _, p := range c.prices {
			total += p
		}
		net := total - c.fee
		if net < 0 {
			net = 0
		}
		share := SplitAmount(items(c.prices...), c.fee, c.count)
		if share*int64(c.count) > net {
			t.Errorf("prices=%v fee=%d count=%d: share %d overcharges net %d",
				c.prices, c.fee, c.count, share, net)
		}
	}
}
