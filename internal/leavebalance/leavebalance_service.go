package leavebalance

import (
	"context"
	"database/sql"

	"github.com/Yaseenhassan/college-leave-app/internal/domain"
	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/academicyear"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultEntitlements seeds a fresh academic year for a new staff member.
// Duty leave carries no entitlement because it is never deducted.
var DefaultEntitlements = map[string]float64{
	domain.LeaveTypeSick:     12,
	domain.LeaveTypeCasual:   15,
	domain.LeaveTypeVacation: 30,
	domain.LeaveTypePersonal: 5,
}

//go:generate mockgen -source=leavebalance_service.go -destination=mock/leavebalance_service_mock.go -package=mock
type Service interface {
	Initialize(ctx context.Context, req InitializeBalanceRequest) (BalanceResponse, error)
	SeedDefaults(ctx context.Context, staffID, academicYear string) error
	Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error)
	Get(ctx context.Context, staffID, leaveType, academicYear string) (BalanceResponse, error)
	ListByStaff(ctx context.Context, staffID string) ([]BalanceResponse, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavebalance.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Initialize(ctx context.Context, req InitializeBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("initialize balance requested",
		zap.String("staff_id", req.StaffID),
		zap.String("leave_type", req.LeaveType),
		zap.String("academic_year", req.AcademicYear),
	)

	staffID, err := validateKey(req.StaffID, req.LeaveType, req.AcademicYear)
	if err != nil {
		return BalanceResponse{}, err
	}
	if req.InitialDays < 0 {
		return BalanceResponse{}, leavebalanceerrors.ErrNegativeInitialDays
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("initialize balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b := &LeaveBalance{
		ID:           uuid.New(),
		StaffID:      staffID,
		LeaveType:    req.LeaveType,
		BalanceDays:  req.InitialDays,
		AcademicYear: req.AcademicYear,
	}

	if err := qtx.Create(ctx, b); err != nil {
		s.logger.Warn("initialize balance persist failed", zap.Error(err))
		return BalanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("initialize balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("initialize balance success",
		zap.String("balance_id", b.ID.String()),
		zap.String("staff_id", req.StaffID),
		zap.String("leave_type", req.LeaveType),
	)

	return mapToResponse(*b), nil
}

// SeedDefaults creates the default entitlement rows for one staff member and
// academic year. Existing triples are skipped so replayed events stay
// harmless.
func (s *service) SeedDefaults(ctx context.Context, staffID, academicYear string) error {
	for _, leaveType := range domain.LeaveTypes {
		days, ok := DefaultEntitlements[leaveType]
		if !ok {
			continue
		}
		_, err := s.Initialize(ctx, InitializeBalanceRequest{
			StaffID:      staffID,
			LeaveType:    leaveType,
			AcademicYear: academicYear,
			InitialDays:  days,
		})
		if err != nil {
			if err == leavebalanceerrors.ErrBalanceExists {
				continue
			}
			return err
		}
	}
	return nil
}

func (s *service) Adjust(ctx context.Context, req AdjustBalanceRequest) (BalanceResponse, error) {
	s.logger.Debug("adjust balance requested",
		zap.String("staff_id", req.StaffID),
		zap.String("leave_type", req.LeaveType),
		zap.String("academic_year", req.AcademicYear),
		zap.Float64("delta_days", req.DeltaDays),
	)

	if _, err := validateKey(req.StaffID, req.LeaveType, req.AcademicYear); err != nil {
		return BalanceResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("adjust balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	b, err := qtx.FindForUpdate(ctx, req.StaffID, req.LeaveType, req.AcademicYear)
	if err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}

	if err := b.ApplyDelta(req.DeltaDays); err != nil {
		s.logger.Warn("adjust balance rejected",
			zap.String("staff_id", req.StaffID),
			zap.String("leave_type", req.LeaveType),
			zap.Float64("balance_days", b.BalanceDays),
			zap.Float64("delta_days", req.DeltaDays),
		)
		return BalanceResponse{}, err
	}

	if err := qtx.Update(ctx, b); err != nil {
		s.logger.Error("adjust balance persist failed", zap.Error(err))
		return BalanceResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adjust balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	s.logger.Info("adjust balance success",
		zap.String("balance_id", b.ID.String()),
		zap.Float64("balance_days", b.BalanceDays),
	)

	return mapToResponse(*b), nil
}

func (s *service) Get(ctx context.Context, staffID, leaveType, academicYear string) (BalanceResponse, error) {
	if _, err := validateKey(staffID, leaveType, academicYear); err != nil {
		return BalanceResponse{}, err
	}

	b, err := s.repo.Find(ctx, staffID, leaveType, academicYear)
	if err != nil {
		return BalanceResponse{}, mapRepositoryError(err)
	}
	return mapToResponse(*b), nil
}

func (s *service) ListByStaff(ctx context.Context, staffID string) ([]BalanceResponse, error) {
	if _, err := uuid.Parse(staffID); err != nil {
		return nil, leavebalanceerrors.ErrInvalidStaffID
	}

	balances, err := s.repo.FindByStaff(ctx, staffID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	resp := make([]BalanceResponse, len(balances))
	for i, b := range balances {
		resp[i] = mapToResponse(b)
	}
	return resp, nil
}

func validateKey(staffID, leaveType, year string) (uuid.UUID, error) {
	id, err := uuid.Parse(staffID)
	if err != nil {
		return uuid.Nil, leavebalanceerrors.ErrInvalidStaffID
	}
	if !domain.ValidLeaveType(leaveType) {
		return uuid.Nil, leavebalanceerrors.ErrInvalidLeaveType
	}
	if !academicyear.Valid(year) {
		return uuid.Nil, leavebalanceerrors.ErrInvalidAcademicYear
	}
	return id, nil
}

func mapToResponse(b LeaveBalance) BalanceResponse {
	return BalanceResponse{
		ID:           b.ID.String(),
		StaffID:      b.StaffID.String(),
		LeaveType:    b.LeaveType,
		BalanceDays:  b.BalanceDays,
		AcademicYear: b.AcademicYear,
	}
}
