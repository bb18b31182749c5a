package report

import (
	"fmt"
	"os"
	"sort"

	"github.com/go-pdf/fpdf"

	"rfm-segment/pkg/models"
)

const (
	reportIntro = "This report summarizes the results of the customer segmentation analysis " +
		"based on RFM (Recency, Frequency, Monetary) features. Customers have been grouped " +
		"into distinct clusters, each representing a different behavior pattern."

	reportInsights = "Insights:\n" +
		"- Low Recency + High Frequency + High Monetary = Champions (loyal, valuable customers).\n" +
		"- High Recency + Low Frequency = At risk or dormant customers.\n" +
		"- Medium scores = Regular customers with growth potential."

	reportConclusion = "This segmentation enables targeted marketing strategies such as " +
		"retention campaigns for at-risk customers, VIP rewards for champions, " +
		"and upsell campaigns for regular customers."
)

type clusterSummary struct {
	cluster     int
	recencyMean float64
	freqMean    float64
	moneyMean   float64
	count       int
}

// WritePDF renders the segmentation summary: intro, per-cluster mean
// table, insights, the cluster scatter when present, and a conclusion.
func WritePDF(path string, customers []models.Customer, scatterPNG string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 10, "Customer Segmentation Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 11)
	pdf.MultiCell(0, 5, reportIntro, "", "L", false)
	pdf.Ln(4)

	writeSummaryTable(pdf, summarize(customers))
	pdf.Ln(6)

	pdf.MultiCell(0, 5, reportInsights, "", "L", false)
	pdf.Ln(4)

	if scatterPNG != "" {
		if _, err := os.Stat(scatterPNG); err == nil {
			pdf.SetFont("Helvetica", "B", 13)
			pdf.CellFormat(0, 8, "Cluster Scatter Plot:", "", 1, "L", false, 0, "")
			pdf.ImageOptions(scatterPNG, 15, pdf.GetY()+2, 130, 0, true,
				fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
			pdf.Ln(4)
			pdf.SetFont("Helvetica", "", 11)
		}
	}

	pdf.MultiCell(0, 5, reportConclusion, "", "L", false)
	return pdf.OutputFileAndClose(path)
}

func summarize(customers []models.Customer) []clusterSummary {
	byCluster := map[int]*clusterSummary{}
	for _, c := range customers {
		s, ok := byCluster[c.Cluster]
		if !ok {
			s = &clusterSummary{cluster: c.Cluster}
			byCluster[c.Cluster] = s
		}
		s.recencyMean += float64(c.RecencyDays)
		s.freqMean += float64(c.Frequency)
		s.moneyMean += c.Monetary
		s.count++
	}
	out := make([]clusterSummary, 0, len(byCluster))
	for _, s := range byCluster {
		n := float64(s.count)
		s.recencyMean /= n
		s.freqMean /= n
		s.moneyMean /= n
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].cluster < out[j].cluster })
	return out
}

func writeSummaryTable(pdf *fpdf.Fpdf, summaries []clusterSummary) {
	headers := []string{"Cluster", "RecencyDays", "Frequency", "Monetary", "Count"}
	widths := []float64{25, 35, 30, 35, 25}

	pdf.SetFont("Helvetica", "B", 10)
	pdf.SetFillColor(128, 128, 128)
	pdf.SetTextColor(255, 255, 255)
	for i, h := range headers {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(0, 0, 0)
	for _, s := range summaries {
		cells := []string{
			fmt.Sprintf("%d", s.cluster),
			fmt.Sprintf("%.2f", s.recencyMean),
			fmt.Sprintf("%.2f", s.freqMean),
			fmt.Sprintf("%.2f", s.moneyMean),
			fmt.Sprintf("%d", s.count),
		}
		for i, cell := range cells {
			pdf.CellFormat(widths[i], 7, cell, "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
	}
}
