package qr

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"

	"campuskitchen/db"
	"campuskitchen/models"
	"campuskitchen/utils"

	"github.com/julienschmidt/httprouter"
	"github.com/phpdave11/gofpdf"
	"github.com/skip2/go-qrcode"
	"go.mongodb.org/mongo-driver/bson"
)

func loadOwnOrder(ctx context.Context, r *http.Request, orderID string) (models.Order, bool) {
	userID := utils.GetUserIDFromRequest(r)
	var order models.Order
	err := db.OrdersCollection.FindOne(ctx, bson.M{"orderid": orderID, "userid": userID}).Decode(&order)
	return order, err == nil
}

// OrderQRCode renders the order's QR payload as a PNG for on-screen display.
func OrderQRCode(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadOwnOrder(ctx, r, ps.ByName("orderid"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	png, err := qrcode.Encode(Encode(order), qrcode.High, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

// PrintOrderSlip produces a PDF order slip with the QR code embedded, for
// customers who want a paper copy to hand to the delivery partner.
func PrintOrderSlip(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	order, ok := loadOwnOrder(ctx, r, ps.ByName("orderid"))
	if !ok {
		http.Error(w, "Order not found", http.StatusNotFound)
		return
	}

	qrPNG, err := qrcode.Encode(Encode(order), qrcode.High, 256)
	if err != nil {
		http.Error(w, "Failed to generate QR code", http.StatusInternalServerError)
		return
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Campus Kitchen Order")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 10, fmt.Sprintf("Order ID: %s", order.OrderID))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Customer: %s", order.UserDetails.Name))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Verification Code: %s", VerificationCode(order.OrderID)))
	pdf.Ln(8)
	pdf.Cell(0, 10, fmt.Sprintf("Total Items: %d", order.TotalQuantity))
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	for _, item := range order.Items {
		pdf.Cell(0, 8, fmt.Sprintf("%d x %s", item.Quantity, item.Name))
		pdf.Ln(6)
	}

	imageOpts := gofpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("qr", imageOpts, bytes.NewReader(qrPNG))
	pdf.ImageOptions("qr", 150, 40, 40, 40, false, imageOpts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		http.Error(w, "Failed to generate PDF", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=order-"+order.OrderID+".pdf")
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}
