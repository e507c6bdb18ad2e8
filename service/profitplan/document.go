package profitplan

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
)

// PlanDetail is one labelled row of the plan details table.
type PlanDetail struct {
	Label string
	Value string
}

var planDetails = []PlanDetail{
	{Label: "Plan type", Value: "Profit Plan"},
	{Label: "Duration", Value: "3 Months"},
	{Label: "Price", Value: "$500"},
	{Label: "Max risk per trade", Value: "5%"},
}

var planFeatures = []string{
	"Weekly profit targets sized to your account balance",
	"Entry, stop loss and take profit levels for every setup",
	"Risk management rules with a fixed maximum drawdown",
	"Private Telegram group with daily market commentary",
	"Monthly progress review with a Kodefx mentor",
}

const riskDisclaimer = "Trading foreign exchange, gold and other leveraged products carries a high level of " +
	"risk and may not be suitable for all investors. Past performance is not indicative of future " +
	"results. You could lose some or all of your initial investment; do not trade with money you " +
	"cannot afford to lose. This plan is educational material and does not constitute financial advice."

const randomSuffixLen = 6

// Document is a generated profit plan. It is never stored.
type Document struct {
	ID          string
	GeneratedAt time.Time
}

// NewDocument stamps a document generated at now with a fresh ID.
func NewDocument(now time.Time) (Document, error) {
	id, err := NewDocumentID(now, rand.Reader)
	if err != nil {
		return Document{}, err
	}
	return Document{ID: id, GeneratedAt: now}, nil
}

// NewDocumentID returns PP-{unix millis in base36}-{6 random base36 chars},
// upper-cased.
func NewDocumentID(now time.Time, random io.Reader) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(36), big.NewInt(randomSuffixLen), nil)
	n, err := rand.Int(random, limit)
	if err != nil {
		return "", fmt.Errorf("generate document id: %w", err)
	}

	suffix := n.Text(36)
	if pad := randomSuffixLen - len(suffix); pad > 0 {
		suffix = strings.Repeat("0", pad) + suffix
	}
	stamp := strconv.FormatInt(now.UnixMilli(), 36)
	return strings.ToUpper("PP-" + stamp + "-" + suffix), nil
}

// FileName is the download name of the document.
func (d Document) FileName() string {
	return "profit-plan-" + d.ID + ".pdf"
}

// Render writes the document as PDF to w.
func (d Document) Render(w io.Writer) error {
	return d.build(true).Output(w)
}

func (d Document) build(compress bool) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(compress)
	pdf.SetTitle("Kodefx Profit Plan", false)
	pdf.SetAuthor("Kodefx", false)
	pdf.SetCreationDate(d.GeneratedAt)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 25)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-18)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(120, 120, 120)
		pdf.CellFormat(0, 5, "Generated "+d.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"), "", 1, "C", false, 0, "")
		pdf.CellFormat(0, 5, "Document ID: "+d.ID, "", 0, "C", false, 0, "")
	})

	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(184, 134, 11)
	pdf.CellFormat(0, 12, "Kodefx Profit Plan", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.CellFormat(0, 7, "Structured trading program for disciplined growth", "", 1, "C", false, 0, "")
	pdf.Ln(8)

	section(pdf, "Plan details")
	pdf.SetFillColor(245, 245, 245)
	for i, detail := range planDetails {
		fill := i%2 == 0
		pdf.SetFont("Helvetica", "B", 11)
		pdf.CellFormat(60, 9, detail.Label, "1", 0, "L", fill, 0, "")
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 9, detail.Value, "1", 1, "L", fill, 0, "")
	}
	pdf.Ln(6)

	section(pdf, "What is included")
	pdf.SetFont("Helvetica", "", 11)
	for _, feature := range planFeatures {
		pdf.CellFormat(6, 7, "-", "", 0, "L", false, 0, "")
		pdf.MultiCell(0, 7, feature, "", "L", false)
	}
	pdf.Ln(6)

	section(pdf, "Risk disclaimer")
	pdf.SetFont("Helvetica", "I", 9)
	pdf.SetTextColor(90, 90, 90)
	pdf.MultiCell(0, 5, riskDisclaimer, "", "J", false)

	return pdf
}

func section(pdf *fpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(0, 9, title, "B", 1, "L", false, 0, "")
	pdf.Ln(3)
	pdf.SetTextColor(30, 30, 30)
}
