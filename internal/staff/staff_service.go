package staff

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/Yaseenhassan/college-leave-app/internal/events"
	"github.com/Yaseenhassan/college-leave-app/internal/messaging/kafka"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/contextutil"
	stafferrors "github.com/Yaseenhassan/college-leave-app/internal/staff/errors"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/singleflight"
)

const OptionsCacheKey = "staff:options"

//go:generate mockgen -source=staff_service.go -destination=mock/staff_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error)
	GetAll(ctx context.Context) ([]StaffResponse, error)
	GetOptions(ctx context.Context) ([]StaffOption, error)
	GetByID(ctx context.Context, id string) (StaffResponse, error)
	Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db     *sql.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	return NewServiceWithOutbox(db, repo, nil, rdb, logger...)
}

func NewServiceWithOutbox(
	db *sql.DB,
	repo Repository,
	outboxRepo kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("staff.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("staff.service")
	}
	return &service{
		db:     db,
		repo:   repo,
		outbox: outboxRepo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) Create(ctx context.Context, req CreateStaffRequest) (StaffResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create staff requested",
		zap.String("request_id", rid),
		zap.String("username", req.Username),
		zap.String("role", req.Role),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create staff begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("create staff hash password failed", zap.Error(err))
		return StaffResponse{}, err
	}

	member := &Staff{
		ID:          uuid.New(),
		Username:    req.Username,
		Password:    string(hash),
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		Email:       req.Email,
		PENNumber:   normalizePEN(req.PENNumber),
		Designation: req.Designation,
		UserType:    req.UserType,
		Role:        req.Role,
		PhoneNumber: req.PhoneNumber,
		DateJoined:  time.Now().UTC(),
	}
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return StaffResponse{}, stafferrors.ErrDepartmentNotFound
		}
		member.DepartmentID = &deptID
	}

	if err := qtx.Create(ctx, member); err != nil {
		s.logger.Warn("create staff persist failed", zap.Error(err))
		return StaffResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event := events.StaffCreatedEvent{
			EventType: "staff_created",
			RequestID: rid,
			StaffID:   member.ID.String(),
			UserType:  member.UserType,
			JoinedAt:  member.DateJoined,
		}
		payload, err := json.Marshal(event)
		if err != nil {
			s.logger.Error("marshal staff_created event failed", zap.Error(err))
			return StaffResponse{}, err
		}

		outboxRepo := s.outbox.WithTx(tx)
		if err := outboxRepo.Create(ctx, kafka.OutboxEvent{
			ID:            uuid.NewString(),
			RequestID:     rid,
			AggregateType: "staff",
			AggregateID:   member.ID.String(),
			EventType:     event.EventType,
			Topic:         events.StaffCreatedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}); err != nil {
			s.logger.Error("create staff outbox persist failed",
				zap.String("staff_id", member.ID.String()),
				zap.Error(err),
			)
			return StaffResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create staff commit failed", zap.String("request_id", rid), zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)

	s.logger.Info("create staff success",
		zap.String("request_id", rid),
		zap.String("staff_id", member.ID.String()),
	)

	return mapToResponse(*member), nil
}

func (s *service) GetAll(ctx context.Context) ([]StaffResponse, error) {
	members, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("get all staff failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}
	return mapToListResponse(members), nil
}

// GetOptions serves the approver picker: cached in redis, deduplicated with
// singleflight while the cache is cold.
func (s *service) GetOptions(ctx context.Context) ([]StaffOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, OptionsCacheKey).Result(); err == nil {
			var resp []StaffOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(OptionsCacheKey, func() (interface{}, error) {
		members, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]StaffOption, len(members))
		for i, m := range members {
			resp[i] = StaffOption{ID: m.ID.String(), FullName: m.FullName()}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, OptionsCacheKey, jsonData, time.Hour)
			}
		}

		return resp, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]StaffOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (StaffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}

	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*member), nil
}

// Update rewrites the mutable profile fields. Username, password and
// date_joined are never touched here.
func (s *service) Update(ctx context.Context, id string, req UpdateStaffRequest) (StaffResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return StaffResponse{}, stafferrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("update staff begin tx failed", zap.Error(err))
		return StaffResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	member, err := qtx.FindByID(ctx, id)
	if err != nil {
		return StaffResponse{}, mapRepositoryError(err)
	}

	member.FirstName = req.FirstName
	member.LastName = req.LastName
	member.Email = req.Email
	member.PENNumber = normalizePEN(req.PENNumber)
	member.Designation = req.Designation
	member.UserType = req.UserType
	member.Role = req.Role
	member.PhoneNumber = req.PhoneNumber

	member.DepartmentID = nil
	if req.DepartmentID != nil && *req.DepartmentID != "" {
		deptID, err := uuid.Parse(*req.DepartmentID)
		if err != nil {
			return StaffResponse{}, stafferrors.ErrDepartmentNotFound
		}
		member.DepartmentID = &deptID
	}

	if err := qtx.Update(ctx, member); err != nil {
		s.logger.Warn("update staff persist failed",
			zap.String("staff_id", id),
			zap.Error(err),
		)
		return StaffResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("update staff commit failed", zap.Error(err))
		return StaffResponse{}, err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("update staff success", zap.String("staff_id", id))

	return mapToResponse(*member), nil
}

// Delete removes the staff member together with their applications and
// balances. Applications they only approved keep existing with the approver
// reference nulled.
func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return stafferrors.ErrInvalidStaffID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete staff begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if _, err := qtx.FindByID(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := qtx.ClearApproverReferences(ctx, id); err != nil {
		s.logger.Error("delete staff clear approver refs failed", zap.String("staff_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := qtx.DeleteLeaveApplications(ctx, id); err != nil {
		s.logger.Error("delete staff cascade applications failed", zap.String("staff_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := qtx.DeleteLeaveBalances(ctx, id); err != nil {
		s.logger.Error("delete staff cascade balances failed", zap.String("staff_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}
	if err := qtx.Delete(ctx, id); err != nil {
		s.logger.Error("delete staff persist failed", zap.String("staff_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("delete staff commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptionsCache(ctx)
	s.logger.Info("delete staff success", zap.String("staff_id", id))

	return nil
}

func (s *service) invalidateOptionsCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, OptionsCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate staff options cache",
			zap.Error(err),
			zap.String("key", OptionsCacheKey),
		)
	}
}

func normalizePEN(pen *string) *string {
	if pen == nil || *pen == "" {
		return nil
	}
	return pen
}

func mapToResponse(m Staff) StaffResponse {
	resp := StaffResponse{
		ID:          m.ID.String(),
		Username:    m.Username,
		FullName:    m.FullName(),
		Email:       m.Email,
		PENNumber:   m.PENNumber,
		Designation: m.Designation,
		UserType:    m.UserType,
		Role:        m.Role,
		PhoneNumber: m.PhoneNumber,
		DateJoined:  m.DateJoined.Format("2006-01-02"),
	}
	if m.DepartmentID != nil {
		v := m.DepartmentID.String()
		resp.DepartmentID = &v
	}
	if m.Department != nil {
		resp.DepartmentName = m.Department.Name
	}
	return resp
}

func mapToListResponse(members []Staff) []StaffResponse {
	resp := make([]StaffResponse, len(members))
	for i, m := range members {
		resp[i] = mapToResponse(m)
	}
	return resp
}
