package splitbills

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"go.mongodb.org/mongo-driver/bson"

	"guildhall/db"
	"guildhall/models"
	"guildhall/utils"
)

// BillReceipt renders a bill as a PDF: items, fee, per-head share, and who
// has paid.
func BillReceipt(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	var bill models.Bill
	err := db.SplitBillsCollection.FindOne(r.Context(), bson.M{"billId": ps.ByName("billid")}).Decode(&bill)
	if err != nil {
		utils.RespondWithError(w, http.StatusNotFound, "Bill not found")
		return
	}
	if !isParty(bill, utils.GetUserIDFromRequest(r)) {
		utils.RespondWithError(w, http.StatusForbidden, "Not a party to this bill")
		return
	}

	share := SplitAmount(bill.Items, bill.ServiceFee, len(bill.Participants))

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(20, 20, 20)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 18)
	pdf.CellFormat(0, 12, bill.Title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(120, 8, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(50, 8, "Price", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	var total int64
	for _, item := range bill.Items {
		pdf.CellFormat(120, 8, item.Name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 8, fmt.Sprintf("%d", item.Price), "1", 1, "R", false, 0, "")
		total += item.Price
	}

	pdf.Ln(4)
	pdf.MultiCell(0, 7, fmt.Sprintf(
		"Total: %d\nService fee: %d\nParticipants: %d\nShare per head: %d",
		total, bill.ServiceFee, len(bill.Participants), share), "", "L", false)
	pdf.Ln(4)

	pdf.SetFont("Arial", "B", 11)
	pdf.CellFormat(0, 8, "Participants", "", 1, "L", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, p := range bill.Participants {
		mark := "unpaid"
		if p.Paid {
			mark = "paid"
		}
		pdf.CellFormat(0, 7, fmt.Sprintf("%s - %s", p.CharacterName, mark), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Failed to render receipt")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=bill-"+bill.BillID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
