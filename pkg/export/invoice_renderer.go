package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"
)

// InvoiceLine is one billed position on an invoice.
type InvoiceLine struct {
	Description string
	Quantity    int
	UnitCents   int64
}

// Invoice carries everything needed to render an order invoice.
type Invoice struct {
	Number        string
	Seller        string
	ShopName      string
	CustomerName  string
	CustomerEmail string
	IssuedAt      time.Time
	Lines         []InvoiceLine
	TotalCents    int64
	Currency      string
}

// InvoiceRenderer produces PDF invoices for orders.
type InvoiceRenderer struct{}

// NewInvoiceRenderer constructs an invoice renderer.
func NewInvoiceRenderer() *InvoiceRenderer {
	return &InvoiceRenderer{}
}

// Render creates a single-page A4 invoice document.
func (r *InvoiceRenderer) Render(inv Invoice) ([]byte, error) {
	if len(inv.Lines) == 0 {
		return nil, fmt.Errorf("invoice requires at least one line")
	}
	currency := inv.Currency
	if currency == "" {
		currency = "USD"
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, fmt.Sprintf("INVOICE %s", inv.Number), "", 1, "L", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	if inv.Seller != "" {
		pdf.CellFormat(0, 6, inv.Seller, "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 6, fmt.Sprintf("Shop: %s", inv.ShopName), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Billed to: %s <%s>", inv.CustomerName, inv.CustomerEmail), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 6, fmt.Sprintf("Date: %s", inv.IssuedAt.Format("2006-01-02")), "", 1, "L", false, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(100, 8, "Description", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 8, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(30, 8, "Unit", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, "Amount", "1", 1, "R", false, 0, "")

	pdf.SetFont("Arial", "", 9)
	for _, line := range inv.Lines {
		amount := int64(line.Quantity) * line.UnitCents
		pdf.CellFormat(100, 7, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 7, fmt.Sprintf("%d", line.Quantity), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 7, formatCents(line.UnitCents, currency), "1", 0, "R", false, 0, "")
		pdf.CellFormat(30, 7, formatCents(amount, currency), "1", 1, "R", false, 0, "")
	}

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(150, 8, "Total", "1", 0, "R", false, 0, "")
	pdf.CellFormat(30, 8, formatCents(inv.TotalCents, currency), "1", 1, "R", false, 0, "")

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render invoice: %w", err)
	}
	return buf.Bytes(), nil
}

func formatCents(cents int64, currency string) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, cents/100, cents%100, currency)
}
