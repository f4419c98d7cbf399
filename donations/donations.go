package donations

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/guild"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/rdx"
	"guildhall/utils"
)

// CreateDonation records a pending gold or cash donation.
func CreateDonation(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Kind          models.DonationKind `json:"kind"`
		CharacterName string              `json:"characterName"`
		Amount        int64               `json:"amount"`
		Note          string              `json:"note"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Kind != models.DonationGold && input.Kind != models.DonationCash {
		utils.RespondWithError(w, http.StatusBadRequest, "Kind must be gold or cash")
		return
	}
	if input.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	donation := models.Donation{
		DonationID:    utils.GenerateID(14),
		Kind:          input.Kind,
		DonorUID:      userID,
		CharacterName: input.CharacterName,
		Amount:        input.Amount,
		Note:          input.Note,
		Status:        models.DonationPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	if _, err := db.DonationsCollection.InsertOne(r.Context(), donation); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to record donation")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "donation", Action: "pledged", ActorUID: userID, RefID: donation.DonationID,
		Message: fmt.Sprintf("pledged %d %s", donation.Amount, donation.Kind),
	})

	utils.RespondWithJSON(w, http.StatusCreated, donation)
}

func GetDonations(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	filter := bson.M{}
	if kind := r.URL.Query().Get("kind"); kind != "" {
		filter["kind"] = kind
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.DonationsCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch donations")
		return
	}
	defer cursor.Close(context.TODO())

	donations := []models.Donation{}
	if err = cursor.All(context.TODO(), &donations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode donations")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, donations)
}

// ConfirmDonation marks a pending donation received and bumps the Redis
// tallies the leaderboard and guild totals are built from. Leaders only.
func ConfirmDonation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideDonation(w, r, ps.ByName("donationid"), models.DonationConfirmed)
}

// RejectDonation marks a pending donation as never received. Leaders only.
func RejectDonation(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decideDonation(w, r, ps.ByName("donationid"), models.DonationRejected)
}

func decideDonation(w http.ResponseWriter, r *http.Request, donationID string, target models.DonationStatus) {
	userID := utils.GetUserIDFromRequest(r)
	if !guild.IsLeader(r.Context(), userID) {
		utils.RespondWithError(w, http.StatusForbidden, "Leaders only")
		return
	}

	var donation models.Donation
	if err := db.DonationsCollection.FindOne(r.Context(), bson.M{"donationId": donationID}).Decode(&donation); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Donation not found")
		return
	}
	if donation.Status != models.DonationPending {
		utils.RespondWithError(w, http.StatusConflict, "Donation already decided")
		return
	}

	res, err := db.DonationsCollection.UpdateOne(r.Context(),
		bson.M{"donationId": donationID, "status": models.DonationPending},
		bson.M{"$set": bson.M{
			"status":     target,
			"decidedBy":  userID,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update donation")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Donation was decided concurrently")
		return
	}

	if target == models.DonationConfirmed {
		bumpTallies(r.Context(), donation)
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "donation", Action: string(target), ActorUID: donation.DonorUID, RefID: donationID,
		Message: fmt.Sprintf("donation of %d %s %s", donation.Amount, donation.Kind, target),
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": target})
}

func bumpTallies(ctx context.Context, donation models.Donation) {
	kind := string(donation.Kind)
	rdx.Conn.IncrBy(ctx, "donate:total:"+kind, donation.Amount)
	rdx.Conn.ZIncrBy(ctx, "donations:leaderboard:"+kind, float64(donation.Amount), donation.DonorUID)
}
