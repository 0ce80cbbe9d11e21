package fund

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/amantech05/Gradlink/internal/model"
)

var csvHeader = []string{"Name", "Amount", "Date", "Message"}

// WriteCSV 导出 CSV，首行为表头，每笔捐赠一行
func WriteCSV(w io.Writer, donations []model.Donation) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for _, d := range donations {
		row := []string{
			d.DonorName,
			d.Amount.StringFixed(2),
			d.CreatedAt.Format("2006-01-02"),
			d.Message,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write csv row %s: %w", d.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
