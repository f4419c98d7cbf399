package splitbills

import "guildhall/models"

// SplitAmount computes the per-head share of a bill: the item total minus
// the service fee, floor-divided across the participants.
//
// A fee larger than the total clamps to zero before dividing, and the
// remainder of the floor division is dropped rather than distributed, so
// splitAmount*count never exceeds the net total.
func SplitAmount(items []models.BillItem, serviceFee int64, participantCount int) int64 {
	if participantCount <= 0 {
		return 0
	}

	var total int64
	for _, item := range items {
		total += item.Price
	}

	net := total - serviceFee
	if net < 0 {
		net = 0
	}
	return net / int64(participantCount)
}
