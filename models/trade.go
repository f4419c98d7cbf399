package models

import "time"

// Merchant is a member registered to sell gold or items on the marketplace.
type Merchant struct {
	UserID        string    `json:"userid" bson:"userid"`
	CharacterName string    `json:"characterName" bson:"characterName"`
	Contact       string    `json:"contact" bson:"contact"`
	Rate          float64   `json:"rate" bson:"rate"` // gold per cash unit
	Status        string    `json:"status" bson:"status"`
	CreatedAt     time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" bson:"updated_at"`
}

const (
	MerchantActive    = "active"
	MerchantSuspended = "suspended"
)

type TradeStatus string

const (
	TradeOpen      TradeStatus = "open"
	TradeReserved  TradeStatus = "reserved"
	TradePaid      TradeStatus = "paid"
	TradeDelivered TradeStatus = "delivered"
	TradeCompleted TradeStatus = "completed"
	TradeCancelled TradeStatus = "cancelled"
)

// Trade is a gold sale between a merchant and a buyer. Mutated in place;
// every status change goes through the server-side transition table.
type Trade struct {
	TradeID      string      `json:"tradeid" bson:"tradeid"`
	MerchantUID  string      `json:"merchantUid" bson:"merchantUid"`
	BuyerUID     string      `json:"buyerUid" bson:"buyerUid"`
	AmountGold   int64       `json:"amountGold" bson:"amountGold"`
	PricePerUnit float64     `json:"pricePerUnit" bson:"pricePerUnit"`
	Status       TradeStatus `json:"status" bson:"status"`
	CreatedAt    time.Time   `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time   `json:"updatedAt" bson:"updated_at"`
}

type ItemStatus string

const (
	ItemOpen      ItemStatus = "open"
	ItemSold      ItemStatus = "sold"
	ItemWithdrawn ItemStatus = "withdrawn"
)

// TradeItem is an in-game item listing with an optional screenshot.
type TradeItem struct {
	ItemID        string     `json:"itemid" bson:"itemid"`
	SellerUID     string     `json:"sellerUid" bson:"sellerUid"`
	CharacterName string     `json:"characterName" bson:"characterName"`
	ItemName      string     `json:"itemName" bson:"itemName"`
	Price         int64      `json:"price" bson:"price"`
	Quantity      int        `json:"quantity" bson:"quantity"`
	ItemPhoto     string     `json:"itemPhoto,omitempty" bson:"itemPhoto,omitempty"`
	Status        ItemStatus `json:"status" bson:"status"`
	CreatedAt     time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" bson:"updated_at"`
}
