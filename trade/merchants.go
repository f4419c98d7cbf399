package trade

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// RegisterMerchant enrolls the authenticated member as a gold merchant.
func RegisterMerchant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		CharacterName string  `json:"characterName"`
		Contact       string  `json:"contact"`
		Rate          float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.CharacterName == "" || input.Rate <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Character name and a positive rate are required")
		return
	}

	count, err := db.MerchantsCollection.CountDocuments(r.Context(), bson.M{"userid": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check registration")
		return
	}
	if count > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Already registered as a merchant")
		return
	}

	merchant := models.Merchant{
		UserID:        userID,
		CharacterName: input.CharacterName,
		Contact:       input.Contact,
		Rate:          input.Rate,
		Status:        models.MerchantActive,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := db.MerchantsCollection.InsertOne(r.Context(), merchant); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register merchant")
		return
	}

	_, _ = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$addToSet": bson.M{"roles": models.RoleMerchant}},
	)

	utils.RespondWithJSON(w, http.StatusCreated, merchant)
}

func GetMerchants(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.MerchantsCollection.Find(context.TODO(), bson.M{"status": models.MerchantActive})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch merchants")
		return
	}
	defer cursor.Close(context.TODO())

	merchants := []models.Merchant{}
	if err = cursor.All(context.TODO(), &merchants); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode merchants")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, merchants)
}

// UpdateMerchant changes the caller's own rate or contact.
func UpdateMerchant(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Contact *string  `json:"contact"`
		Rate    *float64 `json:"rate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Contact != nil {
		update["contact"] = *input.Contact
	}
	if input.Rate != nil {
		if *input.Rate <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "Rate must be positive")
			return
		}
		update["rate"] = *input.Rate
	}

	res, err := db.MerchantsCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update merchant")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Not a registered merchant")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
