// Package report renders the three PDF exports: the weekly timesheet
// grid, the per-project detail listing and the global status overview.
package report

import (
	"fmt"
	"os"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"
)

// Options carries settings shared by all report kinds.
type Options struct {
	// LogoPath is an optional image embedded at the top of every
	// report. Skipped when empty or unreadable.
	LogoPath string
}

var tableAltBackground = color.Color{Red: 240, Green: 240, Blue: 240}

func newDocument(orientation consts.Orientation) pdf.Maroto {
	m := pdf.NewMaroto(orientation, consts.A4)
	m.SetPageMargins(20, 10, 20)
	return m
}

// addTitle renders the logo (when configured) and the two title lines
// used by every report.
func addTitle(m pdf.Maroto, opts Options, title, subtitle string) {
	if opts.LogoPath != "" {
		if _, err := os.Stat(opts.LogoPath); err == nil {
			m.Row(18, func() {
				m.Col(3, func() {
					// Percent keeps the image inside the cell without
					// distorting its aspect ratio.
					_ = m.FileImage(opts.LogoPath, props.Rect{
						Percent: 90,
						Center:  false,
					})
				})
			})
		}
	}

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(title, props.Text{
				Top:   3,
				Style: consts.Bold,
				Align: consts.Center,
				Size:  16,
			})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(subtitle, props.Text{
				Top:   2,
				Style: consts.Normal,
				Align: consts.Center,
				Size:  11,
			})
		})
	})
}

// addFooterLine renders a bold right-aligned summary line.
func addFooterLine(m pdf.Maroto, text string) {
	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(text, props.Text{
				Top:   5,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  11,
			})
		})
	})
}

func formatHours(h float64) string {
	return fmt.Sprintf("%.2f", h)
}
