package report

import (
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"

	"call-radar-go/internal/types"
)

// Write saves the analyst summary workbook: one "Sentiment" sheet with every
// annotated utterance and one "Radar" sheet with the final timeline point's
// feature scores. The workbook sits next to the radar JSON so the data is
// usable without the web UI.
func Write(path, agentName, customerName string, items []types.SentimentItem, data types.RadarData) error {
	f := excelize.NewFile()
	defer f.Close()

	const sentimentSheet = "Sentiment"
	if err := f.SetSheetName("Sheet1", sentimentSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headers := []string{"Utterance", "Speaker", "Label", "Score", "Timestamp (s)"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sentimentSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	sorted := make([]types.SentimentItem, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].UtteranceNumber < sorted[j].UtteranceNumber
	})
	for row, item := range sorted {
		speaker := agentName
		if item.Channel != 0 {
			speaker = customerName
		}
		values := []interface{}{item.UtteranceNumber, speaker, item.Label, item.Score, item.Timestamp}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			if err := f.SetCellValue(sentimentSheet, cell, v); err != nil {
				return fmt.Errorf("write sentiment row: %w", err)
			}
		}
	}

	const radarSheet = "Radar"
	if _, err := f.NewSheet(radarSheet); err != nil {
		return fmt.Errorf("new sheet: %w", err)
	}
	for i, h := range []string{"Speaker", "Feature", "Score"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(radarSheet, cell, h); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if n := len(data.Data); n > 0 {
		final := data.Data[n-1]
		for row, e := range final.Entries {
			values := []interface{}{e.User, e.Feature, e.Score}
			for col, v := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
				if err := f.SetCellValue(radarSheet, cell, v); err != nil {
					return fmt.Errorf("write radar row: %w", err)
				}
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}
