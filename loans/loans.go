package loans

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/guild"
	"guildhall/models"
	"guildhall/mq"
	"guildhall/utils"
)

// RequestLoan opens a loan in waitingApproval. Guild loans are approved by a
// leader; merchant loans by the named merchant.
func RequestLoan(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	var input struct {
		Source        models.LoanSource `json:"source"`
		LenderUID     string            `json:"lenderUid"`
		CharacterName string            `json:"characterName"`
		Amount        int64             `json:"amount"`
		DueDate       *time.Time        `json:"dueDate"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if input.Amount <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	switch input.Source {
	case models.LoanSourceGuild:
		// Guild treasury; no named lender.
		input.LenderUID = ""
	case models.LoanSourceMerchant:
		if input.LenderUID == "" {
			utils.RespondWithError(w, http.StatusBadRequest, "Merchant loans need a lenderUid")
			return
		}
		err := db.MerchantsCollection.FindOne(r.Context(),
			bson.M{"userid": input.LenderUID, "status": models.MerchantActive}).Err()
		if err != nil {
			utils.RespondWithError(w, http.StatusNotFound, "Merchant not found or suspended")
			return
		}
	default:
		utils.RespondWithError(w, http.StatusBadRequest, "Source must be merchant or guild")
		return
	}

	loan := models.Loan{
		LoanID:    utils.GenerateID(14),
		Source:    input.Source,
		Borrower:  models.Borrower{UserID: userID, CharacterName: input.CharacterName},
		LenderUID: input.LenderUID,
		Amount:    input.Amount,
		DueDate:   input.DueDate,
		Status:    StatusWaitingApproval,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if _, err := db.LoansCollection.InsertOne(r.Context(), loan); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to create loan")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "loan", Action: "requested", ActorUID: userID, RefID: loan.LoanID,
		Message: "requested a loan",
	})

	utils.RespondWithJSON(w, http.StatusCreated, loan)
}

func GetLoans(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	filter := bson.M{}
	switch {
	case guild.IsLeader(r.Context(), userID):
		// Leaders see the whole book.
	default:
		filter["$or"] = []bson.M{
			{"borrower.userid": userID},
			{"lenderUid": userID},
		}
	}
	if source := r.URL.Query().Get("source"); source != "" {
		filter["source"] = source
	}
	if status := r.URL.Query().Get("status"); status != "" {
		filter["status"] = status
	}

	cursor, err := db.LoansCollection.Find(context.TODO(), filter,
		options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}}).SetLimit(100))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch loans")
		return
	}
	defer cursor.Close(context.TODO())

	loans := []models.Loan{}
	if err = cursor.All(context.TODO(), &loans); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode loans")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loans)
}

func GetLoan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var loan models.Loan
	err := db.LoansCollection.FindOne(r.Context(), bson.M{"loanId": ps.ByName("loanid")}).Decode(&loan)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Loan not found")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, loan)
}

// ApproveLoan: waitingApproval → active.
func ApproveLoan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decide(w, r, ps.ByName("loanid"), StatusActive)
}

// RejectLoan: waitingApproval → rejected. Absorbing.
func RejectLoan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decide(w, r, ps.ByName("loanid"), StatusRejected)
}

// MarkReturned: active → returned. Borrower declares the gold was sent back.
func MarkReturned(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)
	loanID := ps.ByName("loanid")

	var loan models.Loan
	if err := db.LoansCollection.FindOne(r.Context(), bson.M{"loanId": loanID}).Decode(&loan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Loan not found")
		return
	}
	if loan.Borrower.UserID != userID {
		utils.RespondWithError(w, http.StatusForbidden, "Only the borrower can mark a loan returned")
		return
	}

	applyTransition(w, r, loan, StatusReturned, userID)
}

// CompleteLoan: returned → completed. Lender side confirms receipt.
func CompleteLoan(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	decide(w, r, ps.ByName("loanid"), StatusCompleted)
}

// decide handles the lender-side transitions: approval, rejection, and
// completion. Guild loans require a leader; merchant loans the lender.
func decide(w http.ResponseWriter, r *http.Request, loanID, target string) {
	userID := utils.GetUserIDFromRequest(r)

	var loan models.Loan
	if err := db.LoansCollection.FindOne(r.Context(), bson.M{"loanId": loanID}).Decode(&loan); err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Loan not found")
		return
	}

	authorized := false
	switch loan.Source {
	case models.LoanSourceGuild:
		authorized = guild.IsLeader(r.Context(), userID)
	case models.LoanSourceMerchant:
		authorized = loan.LenderUID == userID
	}
	if !authorized {
		utils.RespondWithError(w, http.StatusForbidden, "Not authorized to decide this loan")
		return
	}

	applyTransition(w, r, loan, target, userID)
}

func applyTransition(w http.ResponseWriter, r *http.Request, loan models.Loan, target, actorUID string) {
	if !CanTransition(loan.Status, target) {
		utils.RespondWithError(w, http.StatusConflict,
			"Cannot move loan from "+loan.Status+" to "+target)
		return
	}

	// Old status in the filter: concurrent deciders race, one wins.
	res, err := db.LoansCollection.UpdateOne(r.Context(),
		bson.M{"loanId": loan.LoanID, "status": loan.Status},
		bson.M{"$set": bson.M{
			"status":     target,
			"decidedBy":  actorUID,
			"updated_at": time.Now(),
		}},
	)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to update loan")
		return
	}
	if res.ModifiedCount == 0 {
		utils.RespondWithError(w, http.StatusConflict, "Loan was updated concurrently")
		return
	}

	mq.Emit(r.Context(), models.FeedEvent{
		Kind: "loan", Action: target, ActorUID: actorUID, RefID: loan.LoanID,
		Message: "loan moved to " + target,
	})

	utils.RespondWithJSON(w, http.StatusOK, utils.M{"ok": true, "status": target})
}
