package events

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/rdx"
	"guildhall/utils"
)

func CreateEvent(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Title        string    `json:"title"`
		Category     string    `json:"category"`
		Date         time.Time `json:"date"`
		Description  string    `json:"description"`
		MaxAttendees int       `json:"maxAttendees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" || len(input.Title) > 100 {
		utils.RespondWithError(w, http.StatusBadRequest, "Title must be between 1 and 100 characters")
		return
	}
	if input.Date.Before(time.Now()) {
		utils.RespondWithError(w, http.StatusBadRequest, "Event date must be in the future")
		return
	}

	event := models.Event{
		EventID:      utils.GenerateID(14),
		Title:        input.Title,
		Category:     input.Category,
		Date:         input.Date,
		Description:  input.Description,
		MaxAttendees: input.MaxAttendees,
		Attendees:    []models.Attendee{},
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.EventsCollection.InsertOne(r.Context(), event); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create event")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "event", Action: "created", ActorUID: userID, RefID: event.EventID,
		Message: "scheduled " + event.Title,
	})

	utils.RespondWithJSON(w, http.StatusCreated, event)
}

func GetEvents(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	page := 1
	limit := 10
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 && l <= 100 {
		limit = l
	}

	skip := int64((page - 1) * limit)
	int64Limit := int64(limit)

	cursor, err := db.EventsCollection.Find(context.TODO(), bson.M{}, &options.FindOptions{
		Skip:  &skip,
		Limit: &int64Limit,
		Sort:  bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch events")
		return
	}
	defer cursor.Close(context.TODO())

	events := []models.Event{}
	if err = cursor.All(context.TODO(), &events); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode events")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, events)
}

func GetEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	eventID := ps.ByName("eventid")

	if cached, err := rdx.RdxGet("event:" + eventID); err == nil && cached != "" {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(cached))
		return
	}

	var event models.Event
	err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	if data, err := json.Marshal(event); err == nil {
		_ = rdx.RdxSetTTL("event:"+eventID, string(data), time.Minute)
	}
	utils.RespondWithJSON(w, http.StatusOK, event)
}

func UpdateEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	var input struct {
		Title        *string    `json:"title"`
		Category     *string    `json:"category"`
		Date         *time.Time `json:"date"`
		Description  *string    `json:"description"`
		MaxAttendees *int       `json:"maxAttendees"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{"updated_at": time.Now()}
	if input.Title != nil {
		update["title"] = *input.Title
	}
	if input.Category != nil {
		update["category"] = *input.Category
	}
	if input.Date != nil {
		update["date"] = *input.Date
	}
	if input.Description != nil {
		update["description"] = *input.Description
	}
	if input.MaxAttendees != nil {
		update["maxAttendees"] = *input.MaxAttendees
	}

	res, err := db.EventsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID, "createdBy": userID},
		bson.M{"$set": update},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update event")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found or not yours")
		return
	}

	_ = rdx.RdxDel("event:" + eventID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func DeleteEvent(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	res, err := db.EventsCollection.DeleteOne(r.Context(),
		bson.M{"eventid": eventID, "createdBy": userID})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to delete event")
		return
	}
	if res.DeletedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found or not yours")
		return
	}

	_ = rdx.RdxDel("event:" + eventID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}
