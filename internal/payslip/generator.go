package payslip

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go-ems/internal/events"

	"github.com/jung-kurt/gofpdf"
)

// Generator merender payslip PDF untuk payroll yang sudah approved.
type Generator struct {
	outDir string
}

func NewGenerator(outDir string) *Generator {
	return &Generator{outDir: outDir}
}

// Generate menulis satu file PDF dan mengembalikan path-nya.
func (g *Generator) Generate(event events.PayrollStatusEvent) (string, error) {
	if err := os.MkdirAll(g.outDir, 0o755); err != nil {
		return "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(0, 12, "Payslip")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 11)
	rows := [][2]string{
		{"Employee", event.EmployeeName},
		{"Email", event.EmployeeEmail},
		{"Period", fmt.Sprintf("%s %d", event.Month, event.Year)},
		{"Amount", formatAmount(event.Amount)},
		{"Transaction ID", event.TransactionID},
		{"Paid At", event.OccurredAt.Format(time.RFC3339)},
	}
	for _, row := range rows {
		pdf.CellFormat(50, 8, row[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 8, row[1], "", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "I", 9)
	pdf.Cell(0, 6, "Generated automatically. This payslip is valid without a signature.")

	filename := fmt.Sprintf("payslip-%s-%s-%d.pdf", event.PayrollID, event.Month, event.Year)
	path := filepath.Join(g.outDir, filename)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return "", err
	}

	return path, nil
}

func formatAmount(cents int64) string {
	return fmt.Sprintf("%d.%02d", cents/100, cents%100)
}
