package trade

import "guildhall/models"

// tradeTransitions is the only path a gold trade may take. The original
// client enforced nothing; here the server refuses anything off the table.
var tradeTransitions = map[models.TradeStatus][]models.TradeStatus{
	models.TradeOpen:      {models.TradeReserved, models.TradeCancelled},
	models.TradeReserved:  {models.TradePaid, models.TradeCancelled},
	models.TradePaid:      {models.TradeDelivered},
	models.TradeDelivered: {models.TradeCompleted},
	models.TradeCompleted: {},
	models.TradeCancelled: {},
}

func CanTransition(from, to models.TradeStatus) bool {
	for _, s := range tradeTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}
