package report

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/wigilabs/timeledger/internal/ledger"
)

var weekdayHeaders = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekly writes the landscape timesheet grid for one user and week:
// one row per project, one column per weekday, with row totals and a
// grand total.
func Weekly(path, username string, matrix *ledger.WeekMatrix, opts Options) error {
	m := newDocument(consts.Landscape)

	weekEnd := matrix.WeekStart.AddDate(0, 0, 6)
	subtitle := fmt.Sprintf("%s, week %s to %s",
		username,
		matrix.WeekStart.Format("2006-01-02"),
		weekEnd.Format("2006-01-02"))
	addTitle(m, opts, "Weekly Timesheet", subtitle)

	headers := append([]string{"Project"}, weekdayHeaders...)
	headers = append(headers, "Total")

	rows := make([][]string, 0, len(matrix.Projects))
	for _, p := range matrix.Projects {
		row := make([]string, 0, 9)
		row = append(row, p.Code)
		for _, h := range matrix.Hours[p.Code] {
			row = append(row, formatHours(h))
		}
		row = append(row, formatHours(matrix.RowTotal(p.Code)))
		rows = append(rows, row)
	}

	gridSizes := []uint{2, 1, 1, 1, 1, 1, 1, 1, 3}
	m.TableList(headers, rows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: gridSizes,
		},
		ContentProp: props.TableListContent{
			Size:      10,
			GridSizes: gridSizes,
		},
		Align:                consts.Center,
		AlternatedBackground: &tableAltBackground,
		HeaderContentSpace:   1,
		Line:                 false,
	})

	addFooterLine(m, fmt.Sprintf("Total hours: %s", formatHours(matrix.GrandTotal())))

	return m.OutputFileAndClose(path)
}
