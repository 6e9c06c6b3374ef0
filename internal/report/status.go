package report

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/wigilabs/timeledger/internal/models"
)

// Status writes the global project overview across all owners:
// allocation, remaining balance, consumed share and finished flag.
func Status(path string, projects []models.Project, asOf time.Time, opts Options) error {
	m := newDocument(consts.Landscape)

	addTitle(m, opts, "Project Status Overview", fmt.Sprintf("as of %s", asOf.Format("2006-01-02")))

	headers := []string{"Project", "Name", "Owner", "Allocated", "Remaining", "Consumed", "State"}
	rows := make([][]string, 0, len(projects))
	for _, p := range projects {
		state := "open"
		if p.Finished {
			state = "finished"
		}
		consumed := "-"
		if p.AllocatedHours > 0 {
			consumed = fmt.Sprintf("%.0f%%", p.ConsumedHours()/p.AllocatedHours*100)
		}
		rows = append(rows, []string{
			p.Code,
			p.Name,
			p.Owner,
			formatHours(p.AllocatedHours),
			formatHours(p.RemainingHours),
			consumed,
			state,
		})
	}

	gridSizes := []uint{1, 3, 2, 2, 2, 1, 1}
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

	addFooterLine(m, fmt.Sprintf("%d projects", len(projects)))

	return m.OutputFileAndClose(path)
}
