package feed

import (
	"context"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// GetFeed returns the newest activity entries, paginated.
func GetFeed(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	listFeed(w, r, bson.M{})
}

// GetUserFeed returns one member's activity.
func GetUserFeed(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	listFeed(w, r, bson.M{"actorUid": ps.ByName("userid")})
}

func listFeed(w http.ResponseWriter, r *http.Request, filter bson.M) {
	page := 1
	limit := 20
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter["kind"] = kind
	}

	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	cursor, err := db.FeedCollection.Find(context.TODO(), filter, &options.FindOptions{
		Skip:  &skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "created_at", Value: -1}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}
	defer cursor.Close(context.TODO())

	entries := []models.FeedEvent{}
	if err = cursor.All(context.TODO(), &entries); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode feed")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, entries)
}
