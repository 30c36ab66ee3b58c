package inventory

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []string{
	"product_id", "variant_id", "product_name", "variant_name",
	"category", "stock_qty", "price", "import_price", "supplier", "updated_at",
}

func exportRow(e EnrichedItem) []string {
	return []string{
		e.ProductID.String(),
		e.VariantID.String(),
		e.ProductName,
		e.VariantName,
		e.ProductCategory,
		strconv.Itoa(e.StockQty),
		strconv.FormatFloat(e.Price, 'f', 2, 64),
		strconv.FormatFloat(e.ImportPrice, 'f', 2, 64),
		e.Supplier,
		e.UpdatedAt.Format(time.RFC3339),
	}
}

// export serves the current enriched inventory as a downloadable file.
// GET /api/v1/inventory/export?format=xlsx|csv (default xlsx)
func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	items, err := h.service.ListEnriched(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		h.exportCSV(w, items)
	case "", "xlsx":
		h.exportXLSX(w, items)
	default:
		http.Error(w, "format must be csv or xlsx", http.StatusBadRequest)
	}
}

func (h *Handler) exportCSV(w http.ResponseWriter, items []EnrichedItem) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename=inventory.csv")

	writer := csv.NewWriter(w)
	defer writer.Flush()
	writer.Write(exportColumns)
	for _, e := range items {
		writer.Write(exportRow(e))
	}
}

func (h *Handler) exportXLSX(w http.ResponseWriter, items []EnrichedItem) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Inventory"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, col)
		f.SetCellStyle(sheet, cell, cell, headerStyle)
		name, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, name, name, 18)
	}

	for rowIdx, e := range items {
		for colIdx, val := range exportRow(e) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheet, cell, val)
		}
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=inventory_%s.xlsx", time.Now().Format("20060102")))
	f.Write(w)
}
