package trade

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/utils"
)

// CreateTrade opens a gold sale against a registered merchant.
func CreateTrade(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	buyerUID := utils.GetUserIDFromRequest(r)

	var input struct {
		MerchantUID string `json:"merchantUid"`
		AmountGold  int64  `json:"amountGold"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.AmountGold <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	var merchant models.Merchant
	err := db.MerchantsCollection.FindOne(r.Context(),
		bson.M{"userid": input.MerchantUID, "status": models.MerchantActive}).Decode(&merchant)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Merchant not found or suspended")
		return
	}

	trade := models.Trade{
		TradeID:      utils.GenerateID(14),
		MerchantUID:  input.MerchantUID,
		BuyerUID:     buyerUID,
		AmountGold:   input.AmountGold,
		PricePerUnit: merchant.Rate,
		Status:       models.TradeOpen,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.TradesCollection.InsertOne(r.Context(), trade); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create trade")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "trade", Action: "created", ActorUID: buyerUID, RefID: trade.TradeID,
		Message: "opened a gold trade",
	})

	utils.RespondWithJSON(w, http.StatusCreated, trade)
}

func GetTrades(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{"$or": []bson.M{
		{"merchantUid": userID},
		{"buyerUid": userID},
	}}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.TradesCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch trades")
		return
	}
	defer cursor.Close(context.TODO())

	trades := []models.Trade{}
	if err = cursor.All(context.TODO(), &trades); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode trades")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trades)
}

func GetTrade(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var trade models.Trade
	err := db.TradesCollection.FindOne(r.Context(), bson.M{"tradeid": ps.ByName("tradeid")}).Decode(&trade)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trade not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, trade)
}

// UpdateTradeStatus moves a trade along its lifecycle. Only the two parties
// may touch it, and only along the transition table.
func UpdateTradeStatus(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	tradeID := ps.ByName("tradeid")

	var input struct {
		Status models.TradeStatus `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	var trade models.Trade
	if err := db.TradesCollection.FindOne(r.Context(), bson.M{"tradeid": tradeID}).Decode(&trade); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Trade not found")
		return
	}
	if userID != trade.MerchantUID && userID != trade.BuyerUID {
		utils.RespondWithError(w, http.StatusForbidden, "Not a party to this trade")
		return
	}
	if !CanTransition(trade.Status, input.Status) {
		utils.RespondWithError(w, http.StatusConflict,
			"Cannot move trade from "+string(trade.Status)+" to "+string(input.Status))
		return
	}

	// Guard the filter with the old status so a concurrent transition loses
	// instead of double-applying.
	res, err := db.TradesCollection.UpdateOne(r.Context(),
		bson.M{"tradeid": tradeID, "status": trade.Status},
		bson.M{"$set": bson.M{"status": input.Status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update trade")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Trade was updated concurrently")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "trade", Action: string(input.Status), ActorUID: userID, RefID: tradeID,
		Message: "trade moved to " + string(input.Status),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": input.Status})
}
