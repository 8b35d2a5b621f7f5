package calendar

import (
	"errors"
	"time"

	"vytara-server/internal/models"
	"vytara-server/internal/store"
)

var (
	// ErrPastDate is returned when an empty past day is clicked. Past days
	// never open the add dialog; their chips stay clickable.
	ErrPastDate = errors.New("calendar: cannot add appointments on a past date")
	// ErrInvalidDate is returned for a malformed date key.
	ErrInvalidDate = errors.New("calendar: invalid date key")
	// ErrNotFound is returned when a clicked chip has no matching appointment.
	ErrNotFound = errors.New("calendar: appointment not found")
	// ErrNoDialog is returned for editor actions while no dialog is open.
	ErrNoDialog = errors.New("calendar: no dialog open")
)

const (
	defaultChipLimit    = 3
	defaultChipTitleLen = 10
)

// Weekdays are the column headers, Sunday first.
var Weekdays = []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}

// Mode is the selection state of the view.
type Mode string

const (
	ModeIdle    Mode = "idle"
	ModeAdding  Mode = "adding"
	ModeViewing Mode = "viewing"
)

// Options tune rendering. Zero values select the defaults.
type Options struct {
	// Location decides which day is "today". Defaults to time.Local.
	Location *time.Location
	// ChipLimit is the number of chips shown per cell before "+K more".
	ChipLimit int
	// ChipTitleLen is the number of runes kept in a chip label.
	ChipTitleLen int
	// NewID generates ids for created appointments.
	NewID func() string
}

// View is the calendar widget: the displayed month, the selected day and
// the open dialog. It renders whatever collection the host supplies.
type View struct {
	host     Host
	opts     Options
	month    YearMonth
	mode     Mode
	selected string
	editor   *Editor
}

// NewView shows the month containing now.
func NewView(host Host, now time.Time, opts Options) *View {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.ChipLimit <= 0 {
		opts.ChipLimit = defaultChipLimit
	}
	if opts.ChipTitleLen <= 0 {
		opts.ChipTitleLen = defaultChipTitleLen
	}
	if opts.NewID == nil {
		opts.NewID = models.NewID
	}
	return &View{
		host:  host,
		opts:  opts,
		month: MonthOf(now.In(opts.Location)),
		mode:  ModeIdle,
	}
}

// Month returns the displayed month.
func (v *View) Month() YearMonth { return v.month }

// Mode returns the selection state.
func (v *View) Mode() Mode { return v.mode }

// Selected returns the selected date key, or "".
func (v *View) Selected() string { return v.selected }

// Editor returns the open dialog, or nil.
func (v *View) Editor() *Editor { return v.editor }

// PrevMonth shows the previous month. Dialog state is untouched.
func (v *View) PrevMonth() { v.month = v.month.Prev() }

// NextMonth shows the next month. Dialog state is untouched.
func (v *View) NextMonth() { v.month = v.month.Next() }

// GoToToday shows the month containing now.
func (v *View) GoToToday(now time.Time) { v.month = MonthOf(now.In(v.opts.Location)) }

// Click handles a click inside the cell for date. A non-empty appointmentID
// means the click landed on that appointment's chip, which takes priority
// over the cell's own add handler.
func (v *View) Click(now time.Time, appointments []models.Appointment, date, appointmentID string) error {
	if !ValidDateKey(date) {
		return ErrInvalidDate
	}

	if appointmentID != "" {
		for _, a := range appointments {
			if a.ID == appointmentID && a.Date == date {
				v.selected = date
				v.mode = ModeViewing
				v.editor = NewDetailEditor(v.host, a)
				return nil
			}
		}
		return ErrNotFound
	}

	if date < Today(now, v.opts.Location) {
		return ErrPastDate
	}
	v.selected = date
	v.mode = ModeAdding
	v.editor = NewCreateEditor(v.host, date, v.opts.NewID)
	return nil
}

// Close dismisses any dialog and clears the selection.
func (v *View) Close() {
	v.mode = ModeIdle
	v.selected = ""
	v.editor = nil
}

// Forget closes the dialog when it shows the appointment with id. Callers
// use it after removing an appointment outside the dialog.
func (v *View) Forget(id string) bool {
	if v.editor == nil {
		return false
	}
	if a, ok := v.editor.Appointment(); !ok || a.ID != id {
		return false
	}
	v.Close()
	return true
}

// BeginEdit switches the detail dialog into edit mode.
func (v *View) BeginEdit() error {
	if v.editor == nil {
		return ErrNoDialog
	}
	return v.editor.BeginEdit()
}

// CancelEdit returns the dialog from edit to view.
func (v *View) CancelEdit() error {
	if v.editor == nil {
		return ErrNoDialog
	}
	return v.editor.Cancel()
}

// Save submits d through the open dialog and closes it on success.
func (v *View) Save(d Draft) error {
	if v.editor == nil {
		return ErrNoDialog
	}
	if err := v.editor.SetDraft(d); err != nil {
		return err
	}
	if err := v.editor.Save(); err != nil {
		return err
	}
	v.Close()
	return nil
}

// Delete removes the appointment shown in the dialog and closes it.
func (v *View) Delete() error {
	if v.editor == nil {
		return ErrNoDialog
	}
	if err := v.editor.Delete(); err != nil {
		return err
	}
	v.Close()
	return nil
}

// Chip is one appointment label inside a day cell.
type Chip struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Title string `json:"title"`
	Time  string `json:"time"`
}

// CellView is a rendered day cell. CanAdd reports whether clicking the
// cell background opens the create dialog; chips stay clickable on
// every non-blank cell regardless.
type CellView struct {
	Date     string `json:"date,omitempty"`
	Day      int    `json:"day,omitempty"`
	Blank    bool   `json:"blank"`
	Today    bool   `json:"today,omitempty"`
	Selected bool   `json:"selected,omitempty"`
	Past     bool   `json:"past,omitempty"`
	CanAdd   bool   `json:"canAdd"`
	Count    int    `json:"count,omitempty"`
	Chips    []Chip `json:"chips,omitempty"`
	More     int    `json:"more,omitempty"`
}

// MonthView is the rendered grid for one month.
type MonthView struct {
	Month    YearMonth           `json:"month"`
	Title    string              `json:"title"`
	Prev     YearMonth           `json:"prev"`
	Next     YearMonth           `json:"next"`
	Weekdays []string            `json:"weekdays"`
	Cells    [GridCells]CellView `json:"cells"`
}

// Render projects appointments onto the displayed month.
func (v *View) Render(appointments []models.Appointment, now time.Time) MonthView {
	today := Today(now, v.opts.Location)

	buckets := make(map[string][]models.Appointment)
	for _, a := range appointments {
		buckets[a.Date] = append(buckets[a.Date], a)
	}

	out := MonthView{
		Month:    v.month,
		Title:    v.month.Title(),
		Prev:     v.month.Prev(),
		Next:     v.month.Next(),
		Weekdays: Weekdays,
	}

	for i, c := range BuildMonth(v.month) {
		if c.Blank() {
			out.Cells[i] = CellView{Blank: true}
			continue
		}
		key := c.Key()
		day := buckets[key]
		store.SortByTime(day)

		cv := CellView{
			Date:     key,
			Day:      c.Day,
			Today:    key == today,
			Selected: key == v.selected,
			Past:     key < today,
			CanAdd:   key >= today,
			Count:    len(day),
		}
		for j, a := range day {
			if j == v.opts.ChipLimit {
				cv.More = len(day) - v.opts.ChipLimit
				break
			}
			cv.Chips = append(cv.Chips, Chip{
				ID:    a.ID,
				Label: Truncate(a.Title, v.opts.ChipTitleLen),
				Title: a.Title,
				Time:  a.Time,
			})
		}
		out.Cells[i] = cv
	}
	return out
}

// Truncate shortens s to n runes, appending an ellipsis when cut.
func Truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
