package splitbills

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

const defaultBillTTL = 7 * 24 * time.Hour

// CreateBill opens a shared bill. Expiry is enforced by a TTL index, so a
// forgotten bill cleans itself up.
func CreateBill(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Title            string                   `json:"title"`
		Items            []models.BillItem        `json:"items"`
		ServiceFee       int64                    `json:"serviceFee"`
		OwnerCharacterID string                   `json:"ownerCharacterId"`
		Participants     []models.BillParticipant `json:"participants"`
		ExpiresAt        *time.Time               `json:"expiresAt"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || len(input.Items) == 0 || len(input.Participants) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title, items and participants are required")
		return
	}
	for _, item := range input.Items {
		if item.Price < 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Item prices cannot be negative")
			return
		}
	}

	expiresAt := time.Now().Add(defaultBillTTL)
	if input.ExpiresAt != nil && input.ExpiresAt.After(time.Now()) {
		expiresAt = *input.ExpiresAt
	}

	for i := range input.Participants {
		input.Participants[i].Paid = false
	}

	bill := models.Bill{
		BillID:           utils.GenerateID(14),
		Title:            input.Title,
		Items:            input.Items,
		ServiceFee:       input.ServiceFee,
		OwnerUID:         userID,
		OwnerCharacterID: input.OwnerCharacterID,
		Participants:     input.Participants,
		CreatedAt:        time.Now(),
		ExpiresAt:        expiresAt,
	}

	if _, err := db.SplitBillsCollection.InsertOne(r.Context(), bill); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create bill")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "bill", Action: "created", ActorUID: userID, RefID: bill.BillID,
		Message: "split a bill: " + bill.Title,
	})

	utils.RespondWithJSON(w, http.StatusCreated, billView(bill))
}

// billView augments the stored bill with the derived per-head share.
func billView(bill models.Bill) utils.M {
	return utils.M{
		"bill":        bill,
		"splitAmount": SplitAmount(bill.Items, bill.ServiceFee, len(bill.Participants)),
	}
}

// isParty reports whether the user owns the bill or owes a share of it.
func isParty(bill models.Bill, userID string) bool {
	if bill.OwnerUID == userID {
		return true
	}
	for _, p := range bill.Participants {
		if p.UserID == userID {
			return true
		}
	}
	return false
}

func GetBill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var bill models.Bill
	err := db.SplitBillsCollection.FindOne(r.Context(), bson.M{"billId": ps.ByName("billid")}).Decode(&bill)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Bill not found")
		return
	}
	if !isParty(bill, utils.GetUserIDFromRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not a party to this bill")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, billView(bill))
}

// GetMyBills lists bills the caller owns or participates in.
func GetMyBills(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.SplitBillsCollection.Find(context.TODO(),
		bson.M{"$or": []bson.M{
			{"ownerUid": userID},
			{"participants.userid": userID},
		}},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch bills")
		return
	}
	defer cursor.Close(context.TODO())

	var bills []models.Bill
	if err = cursor.All(context.TODO(), &bills); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode bills")
		return
	}

	views := make([]utils.M, 0, len(bills))
	for _, b := range bills {
		views = append(views, billView(b))
	}
	utils.RespondWithJSON(w, http.StatusOK, views)
}

// MarkPaid flags the caller's own share as settled.
func MarkPaid(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.SplitBillsCollection.UpdateOne(r.Context(),
		bson.M{"billId": ps.ByName("billid"), "participants.userid": userID},
		bson.M{"$set": bson.M{"participants.$.paid": true}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to mark paid")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Bill not found or not a participant")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// DeleteBill settles (removes) a bill. Owner only.
func DeleteBill(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.SplitBillsCollection.DeleteOne(r.Context(),
		bson.M{"billId": ps.ByName("billid"), "ownerUid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete bill")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Bill not found or not yours")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
