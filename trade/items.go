package trade

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/utils"
)

var itemUploadPath = "./static/tradepic"

// CreateItemListing posts an in-game item for sale. Multipart form so the
// seller can attach a screenshot of the item.
func CreateItemListing(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	sellerUID := utils.GetUserIDFromRequest(r)

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Unable to parse form: "+err.Error())
		return
	}

	itemName := r.FormValue("itemName")
	if len(itemName) == 0 || len(itemName) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Item name must be between 1 and 100 characters")
		return
	}

	price, err := strconv.ParseInt(r.FormValue("price"), 10, 64)
	if err != nil || price <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid price. Must be a positive number.")
		return
	}

	quantity, err := strconv.Atoi(r.FormValue("quantity"))
	if err != nil || quantity < 1 {
		quantity = 1
	}

	item := models.TradeItem{
		ItemID:        utils.GenerateID(14),
		SellerUID:     sellerUID,
		CharacterName: r.FormValue("characterName"),
		ItemName:      itemName,
		Price:         price,
		Quantity:      quantity,
		Status:        models.ItemOpen,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	file, header, err := r.FormFile("image")
	if err != nil && err != http.ErrMissingFile {
		utils.RespondWithError(w, http.StatusBadRequest, "Error retrieving image: "+err.Error())
		return
	}
	if file != nil {
		defer file.Close()

		ext, ok := utils.ExtensionForMime(header.Header.Get("Content-Type"))
		if !ok {
			utils.RespondWithError(w, http.StatusUnsupportedMediaType, "Only JPG and PNG images are allowed")
			return
		}

		name, err := utils.SaveImageWithThumb(file, itemUploadPath, item.ItemID, ext)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Error saving image: "+err.Error())
			return
		}
		item.ItemPhoto = name
	}

	if _, err := db.TradeItemsCollection.InsertOne(r.Context(), item); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create listing")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "trade", Action: "listed", ActorUID: sellerUID, RefID: item.ItemID,
		Message: "listed " + item.ItemName,
	})

	utils.RespondWithJSON(w, http.StatusCreated, item)
}

func GetItemListings(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{"status": models.ItemOpen}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.TradeItemsCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch listings")
		return
	}
	defer cursor.Close(context.TODO())

	items := []models.TradeItem{}
	if err = cursor.All(context.TODO(), &items); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode listings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, items)
}

// CloseItemListing marks a listing sold or withdrawn. Seller only.
func CloseItemListing(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	itemID := ps.ByName("itemid")

	status := models.ItemStatus(r.URL.Query().Get("as"))
	if status != models.ItemSold && status != models.ItemWithdrawn {
		utils.RespondWithError(w, http.StatusBadRequest, "Query param 'as' must be sold or withdrawn")
		return
	}

	res, err := db.TradeItemsCollection.UpdateOne(r.Context(),
		bson.M{"itemid": itemID, "sellerUid": userID, "status": models.ItemOpen},
		bson.M{"$set": bson.M{"status": status, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to close listing")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Listing not found, not yours, or already closed")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "trade", Action: string(status), ActorUID: userID, RefID: itemID,
		Message: "listing " + string(status),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
