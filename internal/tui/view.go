package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kiru/beadtrack/internal/pattern"
)

func (a *App) View() string {
	var body string
	switch a.state {
	case viewPicker:
		body = a.viewPicker()
	case viewPattern:
		body = a.viewPattern()
	case viewSettings:
		body = a.viewSettings()
	}
	if a.status != "" {
		body += "\n" + a.sty.status.Render(a.status)
	}
	return body + "\n"
}

func (a *App) viewPicker() string {
	var b strings.Builder
	b.WriteString(a.sty.title.Render("beadtrack — projects"))
	b.WriteString("\n\n")

	if a.searching || a.query != "" {
		b.WriteString(a.sty.status.Render("search: ") + a.query)
		if a.searching {
			b.WriteString("▌")
		}
		b.WriteString("\n\n")
	}

	if len(a.filtered) == 0 {
		b.WriteString(a.sty.status.Render("no projects"))
		b.WriteString("\n")
	}
	for i, p := range a.filtered {
		line := p.Name
		if p.RowCombine {
			line += "  (combined)"
		}
		if i == a.picker {
			b.WriteString(a.sty.listCursor.Render("> " + line))
		} else {
			b.WriteString(a.sty.listItem.Render("  " + line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(a.sty.footer.Render("enter open · / search · j/k move · q quit"))
	return b.String()
}

func (a *App) viewPattern() string {
	o := a.open
	if o == nil {
		return a.sty.status.Render("no pattern open")
	}
	pos, hasPos := o.tracker.Position()
	rows := o.tracker.Rows()

	var b strings.Builder
	b.WriteString(a.sty.title.Render(o.loaded.Project.Name))
	if hasPos {
		b.WriteString(a.sty.status.Render(fmt.Sprintf("  row %d of %d", pos.Row+1, len(rows))))
	}
	b.WriteString("\n\n")

	for ri, row := range rows {
		b.WriteString(a.renderRow(ri, row, pos, hasPos))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	mode := o.overlay.Mode()
	if mode > 0 {
		swatch := markStyle(mode).Render(fmt.Sprintf("● mark %d", mode))
		b.WriteString(swatch)
		b.WriteString("\n")
	}
	b.WriteString(a.sty.footer.Render("space next · h prev · [ ] rows · L/H batch · m mark mode · enter act · s settings · esc back"))
	return b.String()
}

func (a *App) renderRow(ri int, row pattern.Row, pos pattern.Position, hasPos bool) string {
	o := a.open
	label := fmt.Sprintf("r%d", ri+1)
	if m := o.overlay.RowMark(ri); m > 0 {
		label = markStyle(m).Render(label + "●")
	} else {
		label = a.sty.rowLabel.Render(label)
	}

	cells := make([]string, 0, len(row.Steps))
	for si, s := range row.Steps {
		cell := s.Label
		if a.cfg.UI.ShowCounts && s.Count > 1 {
			cell = fmt.Sprintf("%d%s", s.Count, s.Label)
		}
		p := pattern.Position{Row: ri, Step: si}
		switch {
		case hasPos && p == pos:
			cell = a.sty.cursor.Render(" " + cell + " ")
		case o.overlay.StepMark(p) > 0:
			cell = markStyle(o.overlay.StepMark(p)).Render(cell)
		case hasPos && (ri < pos.Row || (ri == pos.Row && si < pos.Step)):
			cell = a.sty.stepDone.Render(cell)
		default:
			cell = a.sty.step.Render(cell)
		}
		cells = append(cells, cell)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, label, " ", strings.Join(cells, " "))
}

func (a *App) viewSettings() string {
	o := a.open
	var b strings.Builder
	b.WriteString(a.sty.title.Render("settings — " + o.loaded.Project.Name))
	b.WriteString("\n\n")

	combine := "off"
	if o.loaded.Project.RowCombine {
		combine = "on"
	}
	b.WriteString(fmt.Sprintf("  c  row combine: %s\n", combine))
	b.WriteString("  x  reset progress (position and marks)\n")
	b.WriteString("\n")

	if a.confirmReset {
		b.WriteString(a.sty.modal.Render("clear saved position and all marks? y to confirm, any other key to cancel"))
		b.WriteString("\n")
	}
	b.WriteString(a.sty.footer.Render("esc back · q quit"))
	return b.String()
}
