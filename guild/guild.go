package guild

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// GetGuild returns the guild document, creating a bare one on first access.
func GetGuild(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	g, err := load(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load guild")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, g)
}

func UpdateAnnouncement(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if !IsLeader(r.Context(), userID) {
		utils.RespondWithError(w, http.StatusForbidden, "Leaders only")
		return
	}

	var input struct {
		Announcement string `json:"announcement"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	_, err := db.GuildCollection.UpdateOne(r.Context(), bson.M{},
		bson.M{"$set": bson.M{"announcement": input.Announcement, "updated_at": time.Now()}})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update announcement")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

func ListMembers(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	g, err := load(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load guild")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, g.Members)
}

// JoinGuild adds the authenticated member to the roster.
func JoinGuild(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		CharacterName string `json:"characterName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	// Make sure the guild document exists before pushing into it; the filter
	// below matches nothing on a fresh database otherwise.
	if _, err := load(r.Context()); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to load guild")
		return
	}

	member := models.GuildMember{
		UserID:        userID,
		CharacterName: input.CharacterName,
		Role:          models.RoleMember,
		JoinedAt:      time.Now(),
	}

	res, err := db.GuildCollection.UpdateOne(r.Context(),
		bson.M{"members.userid": bson.M{"$ne": userID}},
		bson.M{"$push": bson.M{"members": member}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to join guild")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Already on the roster")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, member)
}

// SetMemberRole promotes or demotes a member. Leaders only.
func SetMemberRole(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	if !IsLeader(r.Context(), userID) {
		utils.RespondWithError(w, http.StatusForbidden, "Leaders only")
		return
	}

	var input struct {
		Role string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	switch input.Role {
	case models.RoleMember, models.RoleMerchant, models.RoleLeader:
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Unknown role")
		return
	}

	target := ps.ByName("userid")
	res, err := db.GuildCollection.UpdateOne(r.Context(),
		bson.M{"members.userid": target},
		bson.M{"$set": bson.M{"members.$.role": input.Role, "updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update role")
		return
	}
	if res.MatchedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Member not found")
		return
	}

	// Mirror the role on the user account so tokens pick it up on refresh.
	_, _ = db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": target},
		bson.M{"$addToSet": bson.M{"roles": input.Role}},
	)

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// IsLeader reports whether the user holds the leader role on the roster.
func IsLeader(ctx context.Context, userID string) bool {
	if userID == "" {
		return false
	}
	err := db.GuildCollection.FindOne(ctx, bson.M{
		"members": bson.M{"$elemMatch": bson.M{"userid": userID, "role": models.RoleLeader}},
	}).Err()
	return err == nil
}

func load(ctx context.Context) (*models.Guild, error) {
	var g models.Guild
	err := db.GuildCollection.FindOne(ctx, bson.M{}).Decode(&g)
	if err == mongo.ErrNoDocuments {
		g = models.Guild{
			GuildID:   utils.GenerateID(14),
			Name:      "Guild",
			Members:   []models.GuildMember{},
			UpdatedAt: time.Now(),
		}
		opts := options.Update().SetUpsert(true)
		if _, err := db.GuildCollection.UpdateOne(ctx, bson.M{},
			bson.M{"$setOnInsert": g}, opts); err != nil {
			return nil, err
		}
		return &g, nil
	}
	if err != nil {
		return nil, err
	}
	return &g, nil
}
