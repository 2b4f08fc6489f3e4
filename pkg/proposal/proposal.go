package proposal

import (
	"bytes"
	"fmt"
	"strings"

	"cotacao/pkg/plate"
	"cotacao/validation"

	"github.com/go-pdf/fpdf"
)

const title = "Proposta de Proteção Veicular"

type Proposal struct {
	CustomerName    string
	Vehicle         plate.VehicleInfo
	FipeValue       float64
	PlanName        string
	PlanDescription string
	MonthlyFee      float64
	EnrollmentFee   float64
}

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// FileName follows Proposta_{firstName}_{plate}.pdf, where the first name is
// everything before the first space of the customer's name.
func FileName(customerName, placa string) string {
	firstName := strings.Split(customerName, " ")[0]
	return fmt.Sprintf("Proposta_%s_%s.pdf", firstName, placa)
}

func (*Generator) Render(p Proposal) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.SetFont("Helvetica", "", 16)
	pdf.Text(14, 20, tr(title))
	pdf.Text(14, 30, tr("Cliente: "+p.CustomerName))
	pdf.Text(14, 37, tr(fmt.Sprintf("Veículo: %s %s - %s", p.Vehicle.Marca, p.Vehicle.Modelo, p.Vehicle.Placa)))
	pdf.Text(14, 44, tr("Valor FIPE: "+validation.FormatBRL(p.FipeValue)))

	widths := []float64{40, 70, 36, 36}
	pdf.SetXY(14, 55)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	for i, head := range []string{"Plano", "Descrição", "Mensalidade", "Adesão"} {
		pdf.CellFormat(widths[i], 8, tr(head), "", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetX(14)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetFillColor(245, 245, 245)
	pdf.SetTextColor(80, 80, 80)
	row := []string{
		p.PlanName,
		p.PlanDescription,
		validation.FormatBRL(p.MonthlyFee),
		validation.FormatBRL(p.EnrollmentFee),
	}
	for i, cell := range row {
		pdf.CellFormat(widths[i], 8, tr(cell), "", 0, "L", true, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("erro ao gerar PDF da proposta: %w", err)
	}
	return buf.Bytes(), nil
}
