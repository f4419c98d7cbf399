package events

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"

	"guildhall/db"
	"guildhall/globals"
	"guildhall/models"
	"guildhall/profile"
	"guildhall/rdx"
	"guildhall/utils"
)

// checkinPayload returns "eventID|userID|code|timestamp|signature".
func checkinPayload(eventID, userID, code string) string {
	timestamp := time.Now().Unix()
	data := fmt.Sprintf("%s|%s|%s|%d", eventID, userID, code, timestamp)

	h := hmac.New(sha256.New, globals.CheckinSecret)
	h.Write([]byte(data))
	sig := base64.StdEncoding.EncodeToString(h.Sum(nil))

	return fmt.Sprintf("%s|%s", data, sig)
}

func verifyCheckinPayload(payload string) (eventID, userID, code string, ok bool) {
	parts := strings.Split(payload, "|")
	if len(parts) != 5 {
		return "", "", "", false
	}
	data := strings.Join(parts[:4], "|")

	h := hmac.New(sha256.New, globals.CheckinSecret)
	h.Write([]byte(data))
	want := base64.StdEncoding.EncodeToString(h.Sum(nil))
	if !hmac.Equal([]byte(want), []byte(parts[4])) {
		return "", "", "", false
	}
	return parts[0], parts[1], parts[2], true
}

// RSVP signs the member up with one of their characters and assigns the
// check-in code the QR endpoint encodes.
func RSVP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	var input struct {
		CharacterID string `json:"characterId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	character, err := profile.FindCharacter(r.Context(), userID, input.CharacterID)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Character not found on your account")
		return
	}

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}
	for _, a := range event.Attendees {
		if a.UserID == userID {
			utils.RespondWithError(w, http.StatusConflict, "Already signed up")
			return
		}
	}
	if event.MaxAttendees > 0 && len(event.Attendees) >= event.MaxAttendees {
		utils.RespondWithError(w, http.StatusConflict, "Event is full")
		return
	}

	attendee := models.Attendee{
		UserID:        userID,
		CharacterID:   character.CharacterID,
		CharacterName: character.CharacterName,
		CheckinCode:   utils.GenerateDigitCode(8),
		RSVPAt:        time.Now(),
	}

	_, err = db.EventsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID},
		bson.M{"$push": bson.M{"attendees": attendee}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to sign up")
		return
	}

	_ = rdx.RdxDel("event:" + eventID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "checkinCode": attendee.CheckinCode})
}

func CancelRSVP(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	res, err := db.EventsCollection.UpdateOne(r.Context(),
		bson.M{"eventid": eventID},
		bson.M{"$pull": bson.M{"attendees": bson.M{"userid": userID}}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to cancel")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Not signed up")
		return
	}

	_ = rdx.RdxDel("event:" + eventID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// CheckinQR serves the attendee's signed check-in code as a QR PNG.
func CheckinQR(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	var event models.Event
	if err := db.EventsCollection.FindOne(r.Context(), bson.M{"eventid": eventID}).Decode(&event); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Event not found")
		return
	}

	var code string
	for _, a := range event.Attendees {
		if a.UserID == userID {
			code = a.CheckinCode
			break
		}
	}
	if code == "" {
		utils.RespondWithError(w, http.StatusNotFound, "Not signed up for this event")
		return
	}

	png, err := qrcode.Encode(checkinPayload(eventID, userID, code), qrcode.Medium, 256)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to generate QR code")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// ScanCheckin verifies a scanned payload and marks the attendee present.
// Only the event creator may scan.
func ScanCheckin(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	scannerUID := utils.GetUserIDFromRequest(r)
	eventID := ps.ByName("eventid")

	var input struct {
		Payload string `json:"payload"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	payloadEventID, attendeeUID, code, ok := verifyCheckinPayload(input.Payload)
	if !ok || payloadEventID != eventID {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid check-in payload")
		return
	}

	res, err := db.EventsCollection.UpdateOne(r.Context(),
		bson.M{
			"eventid":   eventID,
			"createdBy": scannerUID,
			"attendees": bson.M{"$elemMatch": bson.M{"userid": attendeeUID, "checkinCode": code}},
		},
		bson.M{"$set": bson.M{"attendees.$.checkedIn": true, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to check in")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Attendee not found or not authorized")
		return
	}

	_ = rdx.RdxDel("event:" + eventID)
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "userid": attendeeUID})
}
