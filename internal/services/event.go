package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abdulrahmanisme/leadup-backend/internal/logger"
	"github.com/abdulrahmanisme/leadup-backend/internal/repos"
	"github.com/abdulrahmanisme/leadup-backend/internal/types"
)

// ErrAlreadyCheckedIn is returned when a user checks in to the same event twice.
var ErrAlreadyCheckedIn = errors.New("already checked in")

type EventService interface {
	Create(ctx context.Context, creatorID uuid.UUID, title, description, location string, startsAt time.Time) (*types.Event, error)
	List(ctx context.Context) ([]*types.Event, error)
	ListUpcoming(ctx context.Context) ([]*types.Event, error)
	CheckIn(ctx context.Context, eventID, userID uuid.UUID) (*types.EventAttendance, error)
	Attendance(ctx context.Context, eventID uuid.UUID) ([]*types.EventAttendance, error)
}

type eventService struct {
	db             *gorm.DB
	log            *logger.Logger
	eventRepo      repos.EventRepo
	attendanceRepo repos.AttendanceRepo
}

func NewEventService(db *gorm.DB, log *logger.Logger, eventRepo repos.EventRepo, attendanceRepo repos.AttendanceRepo) EventService {
	serviceLog := log.With("service", "EventService")
	return &eventService{
		db:             db,
		log:            serviceLog,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (es *eventService) Create(ctx context.Context, creatorID uuid.UUID, title, description, location string, startsAt time.Time) (*types.Event, error) {
	if strings.TrimSpace(title) == "" {
		return nil, &InvalidRequestError{Field: "title"}
	}
	if startsAt.IsZero() {
		return nil, &InvalidRequestError{Field: "starts_at"}
	}

	created, err := es.eventRepo.Create(ctx, nil, []*types.Event{{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		CreatedBy:   creatorID,
	}})
	if err != nil {
		return nil, err
	}
	return created[0], nil
}

func (es *eventService) List(ctx context.Context) ([]*types.Event, error) {
	return es.eventRepo.List(ctx, nil)
}

func (es *eventService) ListUpcoming(ctx context.Context) ([]*types.Event, error) {
	return es.eventRepo.ListUpcoming(ctx, nil, time.Now().UTC())
}

func (es *eventService) CheckIn(ctx context.Context, eventID, userID uuid.UUID) (*types.EventAttendance, error) {
	if _, err := es.eventRepo.GetByID(ctx, nil, eventID); err != nil {
		return nil, err
	}
	already, err := es.attendanceRepo.Exists(ctx, nil, eventID, userID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyCheckedIn
	}

	return es.attendanceRepo.CheckIn(ctx, nil, &types.EventAttendance{
		ID:          uuid.New(),
		EventID:     eventID,
		UserID:      userID,
		CheckedInAt: time.Now().UTC(),
	})
}

func (es *eventService) Attendance(ctx context.Context, eventID uuid.UUID) ([]*types.EventAttendance, error) {
	return es.attendanceRepo.ListByEvent(ctx, nil, eventID)
}
