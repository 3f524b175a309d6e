package pdf

import (
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"github.com/jung-kurt/gofpdf"

	"financetracker/internal/models"
)

// Generator — интерфейс (удобно мокать в тестах)
type Generator interface {
	WriteStatisticsReport(w io.Writer, data ReportData) error
}

type ReportGenerator struct {
	FontPath string // путь до TTF с кириллицей; если файла нет — Helvetica
	fontName string
}

type ReportData struct {
	UserName   string
	UserEmail  string
	Period     string
	From       time.Time
	To         time.Time
	Statistics models.Statistics
}

func NewReportGenerator(fontPath string) *ReportGenerator {
	return &ReportGenerator{
		FontPath: fontPath,
		fontName: "DejaVu",
	}
}

func (g *ReportGenerator) WriteStatisticsReport(w io.Writer, data ReportData) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Statistics report", false)
	pdf.SetAuthor("Finance Tracker", false)
	pdf.SetMargins(20, 20, 20)
	pdf.SetAutoPageBreak(true, 20)

	g.addFont(pdf)
	pdf.AddPage()

	// ===== Заголовок
	pdf.SetFont(g.fontName, "B", 18)
	pdf.CellFormat(0, 10, "STATISTICS REPORT", "", 1, "C", false, 0, "")

	pdf.SetFont(g.fontName, "", 12)
	sub := fmt.Sprintf("%s — %s  (%s)",
		data.From.Format("02.01.2006"),
		data.To.Format("02.01.2006"),
		data.Period,
	)
	pdf.CellFormat(0, 7, sub, "", 1, "C", false, 0, "")
	g.hr(pdf)
	pdf.Ln(3)

	// ===== Владелец
	g.kvLine(pdf, "User", data.UserName)
	g.kvLine(pdf, "Email", data.UserEmail)
	pdf.Ln(2)
	g.hr(pdf)

	// ===== Итоги
	g.sectionTitle(pdf, "Totals")
	g.kvLine(pdf, "Total income", fmt.Sprintf("%.2f", data.Statistics.TotalIncome))
	g.kvLine(pdf, "Total expense", fmt.Sprintf("%.2f", data.Statistics.TotalExpense))
	g.kvLine(pdf, "Balance", fmt.Sprintf("%.2f", data.Statistics.Balance))
	pdf.Ln(2)

	g.categoryTable(pdf, "Income by category", data.Statistics.IncomeByCategory)
	g.categoryTable(pdf, "Expense by category", data.Statistics.ExpenseByCategory)

	return pdf.Output(w)
}

func (g *ReportGenerator) categoryTable(pdf *gofpdf.Fpdf, title string, byCategory map[string]float64) {
	g.sectionTitle(pdf, title)
	if len(byCategory) == 0 {
		pdf.SetFont(g.fontName, "", 11)
		pdf.CellFormat(0, 6, "—", "", 1, "L", false, 0, "")
		pdf.Ln(2)
		return
	}
	// map не упорядочен, для отчёта сортируем по имени категории
	cats := make([]string, 0, len(byCategory))
	for c := range byCategory {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		g.kvLine(pdf, c, fmt.Sprintf("%.2f", byCategory[c]))
	}
	pdf.Ln(2)
}

func (g *ReportGenerator) addFont(pdf *gofpdf.Fpdf) {
	if g.FontPath != "" {
		if _, err := os.Stat(g.FontPath); err == nil {
			pdf.AddUTF8Font(g.fontName, "", g.FontPath)
			pdf.AddUTF8Font(g.fontName, "B", g.FontPath)
			return
		}
	}
	g.fontName = "Helvetica"
}

func (g *ReportGenerator) sectionTitle(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(g.fontName, "B", 13)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) kvLine(pdf *gofpdf.Fpdf, key, value string) {
	pdf.SetFont(g.fontName, "B", 11)
	pdf.CellFormat(55, 6, key, "", 0, "L", false, 0, "")
	pdf.SetFont(g.fontName, "", 11)
	pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (g *ReportGenerator) hr(pdf *gofpdf.Fpdf) {
	x, y := pdf.GetXY()
	pdf.SetDrawColor(180, 180, 180)
	pdf.Line(20, y, 190, y)
	pdf.SetXY(x, y+2)
}
