// Package workspace holds the per-user application state: profile,
// appointments, documents, insurance policies and the calendar widget.
package workspace

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"vytara-server/internal/calendar"
	"vytara-server/internal/models"
	"vytara-server/internal/store"
	"vytara-server/internal/validate"
)

var (
	ErrAppointmentNotFound = errors.New("workspace: appointment not found")
	ErrDocumentNotFound    = errors.New("workspace: document not found")
	ErrIndexOutOfRange     = errors.New("workspace: emergency contact index out of range")
	ErrUnknownSection      = errors.New("workspace: unknown profile section")
)

// SummaryLimit is the number of recent documents a summary covers.
const SummaryLimit = 5

var contactOwnerPattern = regexp.MustCompile(`^contact-([0-9]+)$`)

// Options configure new workspaces.
type Options struct {
	Location *time.Location
	Now      func() time.Time
	Logger   *zap.Logger
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// Workspace is one user's application state. The appointment store guards
// itself; mu guards everything else.
type Workspace struct {
	user   string
	opts   Options
	logger *zap.Logger
	appts  store.AppointmentStore

	mu        sync.Mutex
	profile   models.UserProfile
	documents []models.Document
	policies  []models.InsurancePolicy
	view      *calendar.View
}

// New builds a workspace seeded with the demo documents and policy.
func New(user string, profile models.UserProfile, appts store.AppointmentStore, opts Options) *Workspace {
	opts = opts.withDefaults()
	ws := &Workspace{
		user:      user,
		opts:      opts,
		logger:    opts.Logger.With(zap.String("user", user)),
		appts:     appts,
		profile:   profile,
		documents: models.SeedDocuments(),
		policies:  models.SeedPolicies(),
	}
	ws.view = calendar.NewView(ws, opts.Now(), calendar.Options{Location: opts.Location})
	return ws
}

// User returns the owning username.
func (ws *Workspace) User() string { return ws.user }

// Today returns today's date key in the workspace location.
func (ws *Workspace) Today() string {
	return calendar.Today(ws.opts.Now(), ws.opts.Location)
}

// AddAppointment upserts a into the store.
func (ws *Workspace) AddAppointment(a models.Appointment) error {
	if err := ws.appts.Upsert(a); err != nil {
		ws.logger.Error("upsert appointment", zap.String("appointment_id", a.ID), zap.Error(err))
		return err
	}
	ws.logger.Debug("appointment saved", zap.String("appointment_id", a.ID), zap.String("date", a.Date))
	return nil
}

// DeleteAppointment removes the appointment with id from the store. It is
// the calendar's host hook and runs under mu; other callers use
// RemoveAppointment.
func (ws *Workspace) DeleteAppointment(id string) error {
	if err := ws.appts.Remove(id); err != nil {
		ws.logger.Error("remove appointment", zap.String("appointment_id", id), zap.Error(err))
		return err
	}
	ws.logger.Debug("appointment removed", zap.String("appointment_id", id))
	return nil
}

// RemoveAppointment deletes id and closes a calendar dialog still showing
// it, so the dialog cannot save the appointment back.
func (ws *Workspace) RemoveAppointment(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	if err := ws.DeleteAppointment(id); err != nil {
		return err
	}
	if ws.view.Forget(id) {
		ws.logger.Debug("closed dialog for removed appointment", zap.String("appointment_id", id))
	}
	return nil
}

// Appointments returns every appointment ordered by date, then time.
func (ws *Workspace) Appointments() ([]models.Appointment, error) {
	all, err := ws.appts.All()
	if err != nil {
		return nil, err
	}
	store.SortByDateTime(all)
	return all, nil
}

// AppointmentsOn returns the appointments on date ordered by time.
func (ws *Workspace) AppointmentsOn(date string) ([]models.Appointment, error) {
	day, err := ws.appts.ByDateKey(date)
	if err != nil {
		return nil, err
	}
	store.SortByTime(day)
	return day, nil
}

// Visit is an appointment with the vault documents filed against it.
type Visit struct {
	Appointment models.Appointment `json:"appointment"`
	TypeLabel   string             `json:"typeLabel"`
	Documents   []models.Document  `json:"documents"`
}

// Visit returns appointment id and every document whose recent visit names
// its title, newest first.
func (ws *Workspace) Visit(id string) (Visit, error) {
	all, err := ws.appts.All()
	if err != nil {
		return Visit{}, err
	}
	var (
		a     models.Appointment
		found bool
	)
	for _, x := range all {
		if x.ID == id {
			a, found = x, true
			break
		}
	}
	if !found {
		return Visit{}, ErrAppointmentNotFound
	}

	ws.mu.Lock()
	docs := make([]models.Document, 0)
	for _, d := range ws.documents {
		if d.RecentVisit != "" && d.RecentVisit == a.Title {
			docs = append(docs, d)
		}
	}
	ws.mu.Unlock()
	sort.SliceStable(docs, func(i, j int) bool {
		return docs[i].UploadDate > docs[j].UploadDate
	})
	return Visit{Appointment: a, TypeLabel: a.Type.Label(), Documents: docs}, nil
}

// Profile returns a copy of the intake profile.
func (ws *Workspace) Profile() models.UserProfile {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return ws.profile
}

// PrepareProfile drops incomplete emergency contacts and validates p.
func PrepareProfile(p models.UserProfile) (models.UserProfile, error) {
	p.PersonalInfo.EmergencyContacts = completeContacts(p.PersonalInfo.EmergencyContacts)
	if err := validate.Struct(p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// SetProfile validates and replaces the whole profile.
func (ws *Workspace) SetProfile(p models.UserProfile) (models.UserProfile, error) {
	p, err := PrepareProfile(p)
	if err != nil {
		return models.UserProfile{}, err
	}
	ws.mu.Lock()
	ws.profile = p
	ws.mu.Unlock()
	return p, nil
}

// ValidateSection checks one step of the intake form. Sections are numbered
// 1 to 4 or named personal, current, past and family.
func ValidateSection(section string, p models.UserProfile) error {
	switch section {
	case "1", "personal":
		return validate.Struct(p.PersonalInfo)
	case "2", "current":
		return validate.Struct(p.CurrentMedical)
	case "3", "past":
		return validate.Struct(p.PastMedical)
	case "4", "family":
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
}

// SetEmergencyContacts replaces the contact list. Entries missing a name or
// phone are dropped and at most MaxEmergencyContacts are kept.
func (ws *Workspace) SetEmergencyContacts(contacts []models.EmergencyContact) ([]models.EmergencyContact, error) {
	kept := completeContacts(contacts)
	fe := &validate.FieldErrors{}
	for i, c := range kept {
		if !validate.IsPhone(c.Phone) {
			fe.Add(fmt.Sprintf("emergencyContacts[%d].phone", i), "phone must be a valid 10-digit phone number")
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.profile.PersonalInfo.EmergencyContacts = kept
	return append([]models.EmergencyContact(nil), kept...), nil
}

// RemoveEmergencyContact deletes the contact at index.
func (ws *Workspace) RemoveEmergencyContact(index int) ([]models.EmergencyContact, error) {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	contacts := ws.profile.PersonalInfo.EmergencyContacts
	if index < 0 || index >= len(contacts) {
		return nil, ErrIndexOutOfRange
	}
	next := make([]models.EmergencyContact, 0, len(contacts)-1)
	next = append(next, contacts[:index]...)
	next = append(next, contacts[index+1:]...)
	ws.profile.PersonalInfo.EmergencyContacts = next
	return append([]models.EmergencyContact(nil), next...), nil
}

// Doctors returns the user's medical team.
func (ws *Workspace) Doctors() []models.Doctor {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]models.Doctor{}, ws.profile.CurrentMedical.Doctors...)
}

func completeContacts(in []models.EmergencyContact) []models.EmergencyContact {
	out := make([]models.EmergencyContact, 0, len(in))
	for _, c := range in {
		if !c.Complete() {
			continue
		}
		c.Name = strings.TrimSpace(c.Name)
		c.Phone = strings.TrimSpace(c.Phone)
		out = append(out, c)
		if len(out) == models.MaxEmergencyContacts {
			break
		}
	}
	return out
}

// Documents lists documents for owner, optionally narrowed to category,
// newest upload first. An empty owner means self.
func (ws *Workspace) Documents(owner string, category models.DocumentCategory) []models.Document {
	if owner == "" {
		owner = models.OwnerSelf
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()

	out := make([]models.Document, 0)
	for _, d := range ws.documents {
		if d.Owner != owner {
			continue
		}
		if category != "" && d.Category != category {
			continue
		}
		out = append(out, d)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UploadDate > out[j].UploadDate
	})
	return out
}

// AddDocument files document metadata dated today.
func (ws *Workspace) AddDocument(d models.Document) (models.Document, error) {
	if d.Owner == "" {
		d.Owner = models.OwnerSelf
	}
	d.ID = models.NewID()
	d.Name = strings.TrimSpace(d.Name)
	d.UploadDate = ws.Today()
	if err := validate.Struct(d); err != nil {
		return models.Document{}, err
	}

	ws.mu.Lock()
	defer ws.mu.Unlock()
	if !ws.knownOwner(d.Owner) {
		fe := &validate.FieldErrors{}
		fe.Add("owner", "owner must be self or an existing emergency contact")
		return models.Document{}, fe
	}
	ws.documents = append(ws.documents, d)
	return d, nil
}

func (ws *Workspace) knownOwner(owner string) bool {
	if owner == models.OwnerSelf {
		return true
	}
	m := contactOwnerPattern.FindStringSubmatch(owner)
	if m == nil {
		return false
	}
	i, err := strconv.Atoi(m[1])
	return err == nil && i < len(ws.profile.PersonalInfo.EmergencyContacts)
}

// DeleteDocument removes a document by id.
func (ws *Workspace) DeleteDocument(id string) error {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	for i, d := range ws.documents {
		if d.ID == id {
			ws.documents = append(ws.documents[:i], ws.documents[i+1:]...)
			return nil
		}
	}
	return ErrDocumentNotFound
}

// SummarizeDocuments produces the canned summary over the most recent
// documents of owner. No model is consulted.
func (ws *Workspace) SummarizeDocuments(owner string) string {
	docs := ws.Documents(owner, "")
	if len(docs) > SummaryLimit {
		docs = docs[:SummaryLimit]
	}
	if len(docs) == 0 {
		return "No documents available to summarize."
	}
	var b strings.Builder
	fmt.Fprintf(&b, "AI Summary for %d document(s):\n\n", len(docs))
	for _, d := range docs {
		fmt.Fprintf(&b, "- %s: Analyzed successfully\n", d.Name)
	}
	b.WriteString("\nKey findings: All documents processed. No critical issues detected.")
	return b.String()
}

// Policies lists insurance policies in insertion order.
func (ws *Workspace) Policies() []models.InsurancePolicy {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return append([]models.InsurancePolicy{}, ws.policies...)
}

// AddPolicy validates and stores a policy.
func (ws *Workspace) AddPolicy(p models.InsurancePolicy) (models.InsurancePolicy, error) {
	p.ID = models.NewID()
	if err := validate.Struct(p); err != nil {
		return models.InsurancePolicy{}, err
	}
	if p.EndDate < p.StartDate {
		fe := &validate.FieldErrors{}
		fe.Add("endDate", "endDate must not be before startDate")
		return models.InsurancePolicy{}, fe
	}
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.policies = append(ws.policies, p)
	return p, nil
}
