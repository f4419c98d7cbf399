package profile

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// GetMyProfile returns the authenticated member's full account.
func GetMyProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": userID}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, user)
}

// GetProfile returns the public view of any member.
func GetProfile(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var user models.User
	err := db.UserCollection.FindOne(r.Context(), bson.M{"userid": ps.ByName("userid")}).Decode(&user)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "User not found")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, utils.M{
		"userid":      user.UserID,
		"username":    user.Username,
		"discordName": user.DiscordName,
		"roles":       user.Roles,
		"characters":  user.Characters,
	})
}

func UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		DiscordName *string `json:"discordName"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	update := bson.M{}
	if input.DiscordName != nil {
		update["discordName"] = *input.DiscordName
	}
	if len(update) == 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Nothing to update")
		return
	}

	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID}, bson.M{"$set": update})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// AddCharacter registers a new in-game character on the account.
func AddCharacter(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		CharacterName string `json:"characterName"`
		Class         string `json:"class"`
		ItemLevel     int    `json:"itemLevel"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.CharacterName == "" || input.Class == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Character name and class are required")
		return
	}

	character := models.Character{
		CharacterID:   utils.GenerateID(14),
		CharacterName: input.CharacterName,
		Class:         input.Class,
		ItemLevel:     input.ItemLevel,
	}

	_, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$push": bson.M{"characters": character}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to add character")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, character)
}

func RemoveCharacter(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.UserCollection.UpdateOne(r.Context(),
		bson.M{"userid": userID},
		bson.M{"$pull": bson.M{"characters": bson.M{"characterId": ps.ByName("characterid")}}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to remove character")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Character not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// FindCharacter resolves a character id on a user account. Used by the
// verticals that take a characterId in their input.
func FindCharacter(ctx context.Context, userID, characterID string) (*models.Character, error) {
	var user models.User
	if err := db.UserCollection.FindOne(ctx, bson.M{"userid": userID}).Decode(&user); err != nil {
		return nil, err
	}
	for i := range user.Characters {
		if user.Characters[i].CharacterID == characterID {
			return &user.Characters[i], nil
		}
	}
	return nil, ErrNoCharacter
}

var ErrNoCharacter = errors.New("character not found")
