package report

import (
	"fmt"

	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/wigilabs/timeledger/internal/ledger"
	"github.com/wigilabs/timeledger/internal/models"
)

// Detail writes the per-project listing: every journal row for the
// (project, user) pair newest first, then the current balance.
func Detail(path, username string, detail *ledger.ProjectDetail, opts Options) error {
	m := newDocument(consts.Portrait)

	p := detail.Project
	subtitle := fmt.Sprintf("%s (%s), booked by %s", p.Name, p.Code, username)
	addTitle(m, opts, "Project Time Report", subtitle)

	headers := []string{"Date", "Start", "End", "Hours"}
	rows := make([][]string, 0, len(detail.Entries))
	for _, e := range detail.Entries {
		rows = append(rows, []string{
			e.Day.Format("2006-01-02"),
			entryClock(e.StartClock),
			entryClock(e.EndClock),
			formatHours(e.DurationHours),
		})
	}

	gridSizes := []uint{3, 3, 3, 3}
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

	addFooterLine(m, fmt.Sprintf("Allocated: %s    Remaining: %s",
		formatHours(p.AllocatedHours), formatHours(p.RemainingHours)))

	return m.OutputFileAndClose(path)
}

// entryClock renders a clock cell; manual adjustment sentinels are
// spelled out instead of pretending to be timestamps.
func entryClock(clock string) string {
	if clock == models.ManualMarker {
		return "manual"
	}
	return clock
}
