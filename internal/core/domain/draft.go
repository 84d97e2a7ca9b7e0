package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// ReviewState - состояние экрана проверки черновика
type ReviewState string

const (
	ReviewViewing  ReviewState = "viewing"
	ReviewEditing  ReviewState = "editing"
	ReviewRejected ReviewState = "rejected"
)

// Тексты уведомлений, которые показываются пользователю
const (
	AlertDraftUpdated      = "Draft updated successfully!"
	AlertDraftUpdateFailed = "Failed to update draft."
	AlertDraftRejected     = "Draft rejected successfully!"
	AlertDraftRejectFailed = "Failed to reject draft."

	untitledDraftHeading = "Untitled Draft"
	editingDraftHeading  = "Edit Draft"
)

// EditableDraftFields - единственные поля, которые можно менять при проверке
var EditableDraftFields = []string{"title", "price", "discount"}

// DraftEditable - изменяемая часть черновика
type DraftEditable struct {
	Title    string
	Price    float64
	Discount float64
}

// DraftReadOnly - поля, которые показываются, но не редактируются
type DraftReadOnly struct {
	Type      string
	City      string
	Rooms     string
	Amenities []string
	Heating   []string
	Status    ListingStatus
}

// DraftHidden - поля, которые никогда не показываются, но уходят на бэкенд при сохранении
type DraftHidden struct {
	ID         string
	Images     []string
	Video      string
	Flags      map[string]any
	OwnerPhone string
	UpdatedAt  time.Time
	Address    string
	AddressURL string
}

// DraftEdit - патч от пользователя. nil означает "поле не меняется".
type DraftEdit struct {
	Title    *string
	Price    *float64
	Discount *float64
}

// Validate отсекает значения, которые не пройдут валидацию при сохранении
func (e DraftEdit) Validate() error {
	if e.Price != nil && *e.Price < 0 {
		return fmt.Errorf("%w: price must not be negative", ErrValidation)
	}
	if e.Discount != nil && *e.Discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrValidation)
	}
	return nil
}

// DraftView - то, что видит проверяющий. Скрытые поля в тип не входят.
type DraftView struct {
	DraftID        string
	State          ReviewState
	Heading        string
	Editable       DraftEditable
	ReadOnly       DraftReadOnly
	Images         []string
	EditableFields []string
	Alert          string
}

// DraftReview - конечный автомат проверки одного черновика.
// viewing -> editing -> viewing (сохранение или отмена); rejected - терминальное состояние.
type DraftReview struct {
	State  ReviewState
	Record Listing
	Edited *Listing
	Alert  string
}

// NewDraftReview открывает проверку записи, переданной при навигации
func NewDraftReview(record Listing) *DraftReview {
	return &DraftReview{State: ReviewViewing, Record: record.Clone()}
}

func (r *DraftReview) transitionError(action string) error {
	return fmt.Errorf("%w: cannot %s while %s", ErrInvalidTransition, action, r.State)
}

// BeginEdit снимает копию записи для редактирования
func (r *DraftReview) BeginEdit() error {
	if r.State != ReviewViewing {
		return r.transitionError("edit")
	}
	edited := r.Record.Clone()
	r.Edited = &edited
	r.State = ReviewEditing
	r.Alert = ""
	return nil
}

// Apply меняет только редактируемые поля копии
func (r *DraftReview) Apply(edit DraftEdit) error {
	if r.State != ReviewEditing || r.Edited == nil {
		return r.transitionError("modify fields")
	}
	if err := edit.Validate(); err != nil {
		return err
	}
	if edit.Title != nil {
		r.Edited.Title = *edit.Title
	}
	if edit.Price != nil {
		r.Edited.Price = *edit.Price
	}
	if edit.Discount != nil {
		r.Edited.Discount = *edit.Discount
	}
	return nil
}

// Cancel отбрасывает копию, отображаемые значения совпадают с записью до редактирования
func (r *DraftReview) Cancel() error {
	if r.State != ReviewEditing {
		return r.transitionError("cancel")
	}
	r.Edited = nil
	r.State = ReviewViewing
	return nil
}

// Pending - запись целиком, которая уйдет на бэкенд при сохранении
func (r *DraftReview) Pending() (Listing, error) {
	if r.State != ReviewEditing || r.Edited == nil {
		return Listing{}, r.transitionError("save")
	}
	return r.Edited.Clone(), nil
}

// CommitSave - бэкенд принял запись
func (r *DraftReview) CommitSave() {
	if r.Edited != nil {
		r.Record = *r.Edited
	}
	r.Edited = nil
	r.State = ReviewViewing
	r.Alert = AlertDraftUpdated
}

// FailSave - сохранение не удалось, остаемся в редактировании
func (r *DraftReview) FailSave() {
	r.Alert = AlertDraftUpdateFailed
}

// CanReject - отклонить можно только из режима просмотра
func (r *DraftReview) CanReject() error {
	if r.State != ReviewViewing {
		return r.transitionError("reject")
	}
	return nil
}

// CommitReject - черновик удален на бэкенде
func (r *DraftReview) CommitReject() {
	r.Edited = nil
	r.State = ReviewRejected
	r.Alert = AlertDraftRejected
}

// FailReject - удаление не удалось, остаемся в просмотре
func (r *DraftReview) FailReject() {
	r.Alert = AlertDraftRejectFailed
}

// Displayed - значения, которые сейчас на экране
func (r *DraftReview) Displayed() Listing {
	if r.State == ReviewEditing && r.Edited != nil {
		return *r.Edited
	}
	return r.Record
}

// View строит представление без скрытых полей
func (r *DraftReview) View() DraftView {
	shown := r.Displayed()
	editable, readOnly, _ := SplitDraft(shown)

	heading := shown.Title
	if heading == "" {
		heading = untitledDraftHeading
	}
	if r.State == ReviewEditing {
		heading = editingDraftHeading
	}

	view := DraftView{
		DraftID:  r.Record.ID,
		State:    r.State,
		Heading:  heading,
		Editable: editable,
		ReadOnly: readOnly,
		Images:   slices.Clone(shown.Images),
		Alert:    r.Alert,
	}
	if r.State == ReviewEditing {
		view.EditableFields = slices.Clone(EditableDraftFields)
	} else {
		view.EditableFields = []string{}
	}
	return view
}

// SplitDraft раскладывает запись на три части по правам доступа
func SplitDraft(l Listing) (DraftEditable, DraftReadOnly, DraftHidden) {
	return DraftEditable{Title: l.Title, Price: l.Price, Discount: l.Discount},
		DraftReadOnly{
			Type:      l.Type,
			City:      l.City,
			Rooms:     l.Rooms,
			Amenities: slices.Clone(l.Amenities),
			Heating:   slices.Clone(l.Heating),
			Status:    l.Status,
		},
		DraftHidden{
			ID:         l.ID,
			Images:     slices.Clone(l.Images),
			Video:      l.Video,
			Flags:      maps.Clone(l.Flags),
			OwnerPhone: l.OwnerPhone,
			UpdatedAt:  l.UpdatedAt,
			Address:    l.Address,
			AddressURL: l.AddressURL,
		}
}

// Clone - глубокая копия, чтобы правки черновика не задевали исходную запись
func (l Listing) Clone() Listing {
	c := l
	c.Amenities = slices.Clone(l.Amenities)
	c.Heating = slices.Clone(l.Heating)
	c.Images = slices.Clone(l.Images)
	c.Flags = maps.Clone(l.Flags)
	return c
}

// NavigateBack - единственная инструкция навигации после отклонения
const NavigateBack = "back"

// DraftRejection - ответ на успешное отклонение черновика
type DraftRejection struct {
	DraftID  string
	Navigate string
	Alert    string
}
