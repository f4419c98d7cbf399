package tournaments

import (
	"context"
	"encoding/json"
	rndm "math/rand"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/brackets"
	"guildhall/db"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/profile"
	"guildhall/realtime"
	"guildhall/utils"
)

func CreateTournament(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Title    string                  `json:"title"`
		GameMode string                  `json:"gameMode"`
		Format   models.TournamentFormat `json:"format"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Title == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if input.Format != models.FormatSingle && input.Format != models.FormatDouble {
		utils.RespondWithError(w, http.StatusBadRequest, "Format must be single or double")
		return
	}

	tournament := models.Tournament{
		TournamentID: utils.GenerateID(14),
		Title:        input.Title,
		GameMode:     input.GameMode,
		Format:       input.Format,
		Status:       brackets.StatusRegistration,
		Participants: []brackets.Participant{},
		Matches:      []brackets.Match{},
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if _, err := db.TournamentsCollection.InsertOne(r.Context(), tournament); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create tournament")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "tournament", Action: "created", ActorUID: userID, RefID: tournament.TournamentID,
		Message: "opened tournament " + tournament.Title,
	})

	utils.RespondWithJSON(w, http.StatusCreated, tournament)
}

func GetTournaments(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	cursor, err := db.TournamentsCollection.Find(context.TODO(), bson.M{},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(50))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch tournaments")
		return
	}
	defer cursor.Close(context.TODO())

	tournaments := []models.Tournament{}
	if err = cursor.All(context.TODO(), &tournaments); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode tournaments")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournaments)
}

func GetTournament(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var tournament models.Tournament
	err := db.TournamentsCollection.FindOne(r.Context(),
		bson.M{"tournamentId": ps.ByName("tournamentid")}).Decode(&tournament)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tournament not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tournament)
}

// Register adds one of the caller's characters to the field. Closed once the
// bracket exists.
func Register(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	tournamentID := ps.ByName("tournamentid")

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

	var tournament models.Tournament
	if err := db.TournamentsCollection.FindOne(r.Context(),
		bson.M{"tournamentId": tournamentID}).Decode(&tournament); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tournament not found")
		return
	}
	if len(tournament.Matches) > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Bracket already generated; registration is closed")
		return
	}
	for _, p := range tournament.Participants {
		if p.UID == userID {
			utils.RespondWithError(w, http.StatusConflict, "Already registered")
			return
		}
	}

	participant := brackets.Participant{
		UID:           userID,
		CharacterID:   character.CharacterID,
		CharacterName: character.CharacterName,
		Class:         character.Class,
	}

	_, err = db.TournamentsCollection.UpdateOne(r.Context(),
		bson.M{"tournamentId": tournamentID},
		bson.M{"$push": bson.M{"participants": participant}, "$set": bson.M{"updated_at": time.Now()}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to register")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, participant)
}

func Unregister(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	res, err := db.TournamentsCollection.UpdateOne(r.Context(),
		bson.M{"tournamentId": ps.ByName("tournamentid"), "matches": bson.M{"$size": 0}},
		bson.M{"$pull": bson.M{"participants": bson.M{"uid": userID}}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to unregister")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusNotFound, "Not registered, or bracket already generated")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true})
}

// GenerateBracket materializes the match list from the registration list.
// Creator only; one shot. ?shuffle=true randomizes seeding first.
func GenerateBracket(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	tournamentID := ps.ByName("tournamentid")

	var tournament models.Tournament
	if err := db.TournamentsCollection.FindOne(r.Context(),
		bson.M{"tournamentId": tournamentID}).Decode(&tournament); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Tournament not found")
		return
	}
	if tournament.CreatedBy != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the organizer can generate the bracket")
		return
	}
	if len(tournament.Matches) > 0 {
		utils.RespondWithError(w, http.StatusConflict, "Bracket already generated")
		return
	}

	participants := make([]brackets.Participant, len(tournament.Participants))
	copy(participants, tournament.Participants)
	if r.URL.Query().Get("shuffle") == "true" {
		rndm.Shuffle(len(participants), func(i, j int) {
			participants[i], participants[j] = participants[j], participants[i]
		})
	}

	var matches []brackets.Match
	var err error
	switch tournament.Format {
	case models.FormatDouble:
		matches, err = brackets.BuildDoubleElimination(participants)
	default:
		matches, err = brackets.BuildSingleElimination(participants)
	}
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	_, err = db.TournamentsCollection.UpdateOne(r.Context(),
		bson.M{"tournamentId": tournamentID, "matches": bson.M{"$size": 0}},
		bson.M{"$set": bson.M{
			"matches":      matches,
			"participants": participants,
			"status":       brackets.ComputeStatus(matches),
			"updated_at":   time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store bracket")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "tournament", Action: "started", ActorUID: userID, RefID: tournamentID,
		Message: tournament.Title + " bracket is up",
	})

	utils.RespondWithJSON(w, http.StatusOK, matches)
}

// ReportWinner applies a match result, persists the advanced bracket, and
// pushes the new state to live viewers.
func ReportWinner(hub *realtime.Hub) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		userID := utils.GetUserIDFromRequest(r)
		tournamentID := ps.ByName("tournamentid")
		matchID := ps.ByName("matchid")

		var input struct {
			WinnerUID string `json:"winnerUid"`
		}
		if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
			return
		}

		var tournament models.Tournament
		if err := db.TournamentsCollection.FindOne(r.Context(),
			bson.M{"tournamentId": tournamentID}).Decode(&tournament); err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Tournament not found")
			return
		}
		if tournament.CreatedBy != userID {
			utils.RespondWithError(w, http.StatusForbidden, "Only the organizer can report results")
			return
		}

		var winner *brackets.Participant
		for i := range tournament.Participants {
			if tournament.Participants[i].UID == input.WinnerUID {
				winner = &tournament.Participants[i]
				break
			}
		}
		if winner == nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Winner is not a tournament participant")
			return
		}

		if err := brackets.Advance(tournament.Matches, matchID, *winner); err != nil {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}

		status := brackets.ComputeStatus(tournament.Matches)
		_, err := db.TournamentsCollection.UpdateOne(r.Context(),
			bson.M{"tournamentId": tournamentID},
			bson.M{"$set": bson.M{
				"matches":    tournament.Matches,
				"status":     status,
				"updated_at": time.Now(),
			}},
		)
		if err != nil {
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to store result")
			return
		}

		if data, err := json.Marshal(utils.M{
			"tournamentId": tournamentID,
			"status":       status,
			"matches":      tournament.Matches,
		}); err == nil {
			hub.Broadcast("tournament:"+tournamentID, data)
		}

		if status == brackets.StatusCompleted {
			champion := brackets.Champion(tournament.Matches)
			msg := tournament.Title + " finished"
			if champion != nil {
				msg = champion.CharacterName + " won " + tournament.Title
			}
			mq.Emit(r.Context(), models.FeedEvent{
				Kind: "tournament", Action: "completed", ActorUID: userID, RefID: tournamentID,
				Message: msg,
			})
		}

		utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": status})
	}
}
