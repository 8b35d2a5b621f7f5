package workspace

import (
	"time"

	"vytara-server/internal/calendar"
	"vytara-server/internal/models"
)

// DialogState describes the open appointment dialog.
type DialogState struct {
	Mode               calendar.EditorMode `json:"mode"`
	Date               string              `json:"date"`
	Draft              calendar.Draft      `json:"draft"`
	TypeLabel          string              `json:"typeLabel"`
	ShowProviderFields bool                `json:"showProviderFields"`
	Appointment        *models.Appointment `json:"appointment,omitempty"`
}

// CalendarState is the rendered widget plus its selection and dialog.
type CalendarState struct {
	Today    string             `json:"today"`
	Mode     calendar.Mode      `json:"mode"`
	Selected string             `json:"selected,omitempty"`
	Month    calendar.MonthView `json:"month"`
	Dialog   *DialogState       `json:"dialog,omitempty"`
}

// CalendarAction mutates the view. appts is the current collection.
type CalendarAction func(v *calendar.View, appts []models.Appointment, now time.Time) error

// Calendar runs action against the view and returns the re-rendered state.
// A nil action only renders. The state is rendered even when action fails.
func (ws *Workspace) Calendar(action CalendarAction) (CalendarState, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	now := ws.opts.Now()
	var actionErr error
	if action != nil {
		appts, err := ws.appts.All()
		if err != nil {
			return CalendarState{}, err
		}
		actionErr = action(ws.view, appts, now)
	}

	appts, err := ws.appts.All()
	if err != nil {
		return CalendarState{}, err
	}
	state := CalendarState{
		Today:    calendar.Today(now, ws.opts.Location),
		Mode:     ws.view.Mode(),
		Selected: ws.view.Selected(),
		Month:    ws.view.Render(appts, now),
	}
	if ed := ws.view.Editor(); ed != nil {
		d := &DialogState{
			Mode:               ed.Mode(),
			Date:               ed.Date(),
			Draft:              ed.Draft(),
			TypeLabel:          ed.Draft().Type.Label(),
			ShowProviderFields: ed.ShowProviderFields(),
		}
		if a, ok := ed.Appointment(); ok {
			d.Appointment = &a
		}
		state.Dialog = d
	}
	return state, actionErr
}
