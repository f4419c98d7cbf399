package donations

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// DonationStatement renders the caller's confirmed donations as a PDF.
func DonationStatement(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	userID := utils.GetUserIDFromRequest(r)

	cursor, err := db.DonationsCollection.Find(context.TODO(),
		bson.M{"donorUid": userID, "status": models.DonationConfirmed},
		options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}}))
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch donations")
		return
	}
	defer cursor.Close(context.TODO())

	var donations []models.Donation
	if err = cursor.All(context.TODO(), &donations); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to decode donations")
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, "Guild Donation Statement", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "", 11)
	pdf.MultiCell(0, 7, fmt.Sprintf("Member: %s\nIssued: %s",
		userID, time.Now().Format("02 Jan 2006 15:04")), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(50, 8, "Date", "1", 0, "L", false, 0, "")
	pdf.CellFormat(30, 8, "Kind", "1", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "Amount", "1", 0, "R", false, 0, "")
	pdf.CellFormat(50, 8, "Note", "1", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	var goldTotal, cashTotal int64
	for _, d := range donations {
		pdf.CellFormat(50, 8, d.CreatedAt.Format("02 Jan 2006"), "1", 0, "L", false, 0, "")
		pdf.CellFormat(30, 8, string(d.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, fmt.Sprintf("%d", d.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 8, d.Note, "1", 1, "L", false, 0, "")
		if d.Kind == models.DonationGold {
			goldTotal += d.Amount
		} else {
			cashTotal += d.Amount
		}
	}

	pdf.Ln(4)
	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, fmt.Sprintf("Total gold: %d    Total cash: %d", goldTotal, cashTotal), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render statement")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=donation-statement.pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
