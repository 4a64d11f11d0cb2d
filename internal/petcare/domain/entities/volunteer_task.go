package entities

import (
	"maps"
	"strings"
	"time"

	"github.com/google/uuid"

	"petcare/internal/petcare/domain/domainerr"
	"petcare/internal/petcare/domain/events"
	vo "petcare/internal/petcare/domain/valueobjects"
)

// VolunteerTaskStatus - статус волонтерской задачи.
type VolunteerTaskStatus string

const (
	VolunteerTaskOpen       VolunteerTaskStatus = "Open"
	VolunteerTaskInProgress VolunteerTaskStatus = "InProgress"
	VolunteerTaskCompleted  VolunteerTaskStatus = "Completed"
	VolunteerTaskCancelled  VolunteerTaskStatus = "Cancelled"
)

func (s VolunteerTaskStatus) valid() bool {
	switch s {
	case VolunteerTaskOpen, VolunteerTaskInProgress, VolunteerTaskCompleted, VolunteerTaskCancelled:
		return true
	}
	return false
}

func (s VolunteerTaskStatus) final() bool {
	return s == VolunteerTaskCompleted || s == VolunteerTaskCancelled
}

var (
	ErrInvalidTaskStatus    = domainerr.InvalidArgument("unknown volunteer task status")
	ErrEmptyTaskDate        = domainerr.InvalidArgument("task date cannot be empty")
	ErrInvalidRequiredCount = domainerr.InvalidArgument("required volunteers must be greater than zero")
	ErrInvalidTaskDuration  = domainerr.InvalidArgument("duration must be greater than zero when set")
	ErrNegativePointsReward = domainerr.InvalidArgument("points reward cannot be negative")
	ErrEmptySkillName       = domainerr.InvalidArgument("skill name cannot be empty")
	ErrVolunteerTaskClosed  = domainerr.InvalidState("volunteer task is already completed or cancelled")
)

// VolunteerTaskDetails - изменяемые сведения о задаче.
// Duration задается в минутах; nil означает, что длительность не указана.
type VolunteerTaskDetails struct {
	Title              string
	Description        string
	Date               time.Time
	Duration           *int
	RequiredVolunteers int
	PointsReward       int
	Location           *vo.Coordinates
	Skills             map[string]string
}

// NewVolunteerTaskParams - входные данные для CreateVolunteerTask.
// Пустой Status означает Open.
type NewVolunteerTaskParams struct {
	VolunteerTaskDetails
	ID        uuid.UUID
	ShelterID uuid.UUID
	Status    VolunteerTaskStatus
}

// VolunteerTask - задача приюта для волонтеров.
type VolunteerTask struct {
	AggregateRoot
	shelterID          uuid.UUID
	title              vo.Title
	description        string
	date               time.Time
	duration           *int
	requiredVolunteers int
	status             VolunteerTaskStatus
	pointsReward       int
	location           *vo.Coordinates
	skills             map[string]string
}

type checkedTaskDetails struct {
	title  vo.Title
	date   time.Time
	skills map[string]string
}

func checkTaskDetails(d VolunteerTaskDetails) (checkedTaskDetails, error) {
	title, err := vo.NewTitle(d.Title)
	if err != nil {
		return checkedTaskDetails{}, err
	}
	if d.Date.IsZero() {
		return checkedTaskDetails{}, ErrEmptyTaskDate
	}
	if d.RequiredVolunteers <= 0 {
		return checkedTaskDetails{}, ErrInvalidRequiredCount
	}
	if d.Duration != nil && *d.Duration <= 0 {
		return checkedTaskDetails{}, ErrInvalidTaskDuration
	}
	if d.PointsReward < 0 {
		return checkedTaskDetails{}, ErrNegativePointsReward
	}

	skills := make(map[string]string, len(d.Skills))
	for name, description := range d.Skills {
		n := strings.TrimSpace(name)
		if n == "" {
			return checkedTaskDetails{}, ErrEmptySkillName
		}
		skills[n] = strings.TrimSpace(description)
	}

	y, m, day := d.Date.UTC().Date()
	return checkedTaskDetails{
		title:  title,
		date:   time.Date(y, m, day, 0, 0, 0, 0, time.UTC),
		skills: skills,
	}, nil
}

// CreateVolunteerTask проверяет параметры и создает задачу с событием VolunteerTaskCreated.
func CreateVolunteerTask(p NewVolunteerTaskParams) (*VolunteerTask, error) {
	if p.ShelterID == uuid.Nil {
		return nil, ErrEmptyShelterID
	}
	status := p.Status
	if status == "" {
		status = VolunteerTaskOpen
	}
	if !status.valid() {
		return nil, ErrInvalidTaskStatus
	}
	d, err := checkTaskDetails(p.VolunteerTaskDetails)
	if err != nil {
		return nil, err
	}

	t := &VolunteerTask{
		AggregateRoot: newAggregateRoot(p.ID),
		shelterID:     p.ShelterID,
		status:        status,
	}
	t.apply(p.VolunteerTaskDetails, d)
	t.record(events.VolunteerTaskCreated{
		Envelope:           t.nextEnvelope(),
		ShelterID:          p.ShelterID,
		Title:              d.title.String(),
		Date:               d.date,
		RequiredVolunteers: p.RequiredVolunteers,
		PointsReward:       p.PointsReward,
		Status:             string(status),
	})
	t.bumpVersion()
	return t, nil
}

func (t *VolunteerTask) apply(src VolunteerTaskDetails, d checkedTaskDetails) {
	t.title = d.title
	t.description = strings.TrimSpace(src.Description)
	t.date = d.date
	t.duration = clonePtr(src.Duration)
	t.requiredVolunteers = src.RequiredVolunteers
	t.pointsReward = src.PointsReward
	t.location = clonePtr(src.Location)
	t.skills = d.skills
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (t *VolunteerTask) ShelterID() uuid.UUID { return t.shelterID }

func (t *VolunteerTask) Title() vo.Title { return t.title }

func (t *VolunteerTask) Description() string { return t.description }

func (t *VolunteerTask) Date() time.Time { return t.date }

// Duration возвращает длительность в минутах, если она указана.
func (t *VolunteerTask) Duration() (int, bool) {
	if t.duration == nil {
		return 0, false
	}
	return *t.duration, true
}

func (t *VolunteerTask) RequiredVolunteers() int { return t.requiredVolunteers }

func (t *VolunteerTask) Status() VolunteerTaskStatus { return t.status }

func (t *VolunteerTask) PointsReward() int { return t.pointsReward }

func (t *VolunteerTask) Location() (vo.Coordinates, bool) {
	if t.location == nil {
		return vo.Coordinates{}, false
	}
	return *t.location, true
}

func (t *VolunteerTask) Skills() map[string]string { return maps.Clone(t.skills) }

// UpdateStatus меняет статус задачи. Completed и Cancelled - конечные статусы.
func (t *VolunteerTask) UpdateStatus(status VolunteerTaskStatus) error {
	if !status.valid() {
		return ErrInvalidTaskStatus
	}
	if status == t.status {
		return nil
	}
	if t.status.final() {
		return ErrVolunteerTaskClosed
	}

	old := t.status
	t.status = status
	t.record(events.VolunteerTaskStatusUpdated{
		Envelope:  t.nextEnvelope(),
		ShelterID: t.shelterID,
		OldStatus: string(old),
		NewStatus: string(status),
	})
	t.bumpVersion()
	return nil
}

// UpdateInfo заменяет сведения о задаче целиком, включая список навыков.
func (t *VolunteerTask) UpdateInfo(details VolunteerTaskDetails) error {
	if t.status.final() {
		return ErrVolunteerTaskClosed
	}
	d, err := checkTaskDetails(details)
	if err != nil {
		return err
	}

	t.apply(details, d)
	t.record(events.VolunteerTaskInfoUpdated{
		Envelope:           t.nextEnvelope(),
		Title:              d.title.String(),
		Date:               d.date,
		RequiredVolunteers: details.RequiredVolunteers,
		PointsReward:       details.PointsReward,
	})
	t.bumpVersion()
	return nil
}

// SetSkill добавляет навык или меняет его описание.
func (t *VolunteerTask) SetSkill(name, description string) error {
	if t.status.final() {
		return ErrVolunteerTaskClosed
	}
	n := strings.TrimSpace(name)
	if n == "" {
		return ErrEmptySkillName
	}
	desc := strings.TrimSpace(description)
	if current, ok := t.skills[n]; ok && current == desc {
		return nil
	}

	t.skills[n] = desc
	t.record(events.VolunteerTaskSkillSet{Envelope: t.nextEnvelope(), Skill: n, Description: desc})
	t.bumpVersion()
	return nil
}

// RemoveSkill удаляет навык и сообщает, был ли он в списке.
func (t *VolunteerTask) RemoveSkill(name string) (bool, error) {
	if t.status.final() {
		return false, ErrVolunteerTaskClosed
	}
	n := strings.TrimSpace(name)
	if n == "" {
		return false, ErrEmptySkillName
	}
	if _, ok := t.skills[n]; !ok {
		return false, nil
	}

	delete(t.skills, n)
	t.record(events.VolunteerTaskSkillRemoved{Envelope: t.nextEnvelope(), Skill: n})
	t.bumpVersion()
	return true, nil
}

// VolunteerTaskState - полное состояние задачи для слоя хранения.
type VolunteerTaskState struct {
	AggregateState
	ShelterID          uuid.UUID
	Title              vo.Title
	Description        string
	Date               time.Time
	Duration           *int
	RequiredVolunteers int
	Status             VolunteerTaskStatus
	PointsReward       int
	Location           *vo.Coordinates
	Skills             map[string]string
}

func (t *VolunteerTask) Snapshot() VolunteerTaskState {
	return VolunteerTaskState{
		AggregateState:     t.rootState(),
		ShelterID:          t.shelterID,
		Title:              t.title,
		Description:        t.description,
		Date:               t.date,
		Duration:           t.duration,
		RequiredVolunteers: t.requiredVolunteers,
		Status:             t.status,
		PointsReward:       t.pointsReward,
		Location:           t.location,
		Skills:             maps.Clone(t.skills),
	}
}

// RestoreVolunteerTask восстанавливает задачу из хранилища без проверок и без событий.
func RestoreVolunteerTask(s VolunteerTaskState) *VolunteerTask {
	skills := maps.Clone(s.Skills)
	if skills == nil {
		skills = make(map[string]string)
	}
	return &VolunteerTask{
		AggregateRoot:      restoreRoot(s.AggregateState),
		shelterID:          s.ShelterID,
		title:              s.Title,
		description:        s.Description,
		date:               s.Date,
		duration:           s.Duration,
		requiredVolunteers: s.RequiredVolunteers,
		status:             s.Status,
		pointsReward:       s.PointsReward,
		location:           s.Location,
		skills:             skills,
	}
}
