package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/Yaseenhassan/college-leave-app/internal/domain"
	leaveerrors "github.com/Yaseenhassan/college-leave-app/internal/leave/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/leavebalance"
	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/staff"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/academicyear"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/counter"
	"github.com/Yaseenhassan/college-leave-app/internal/shared/storage"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CounterTypeApplication names the shared counter row that allocates
// application reference numbers.
const CounterTypeApplication = "leave_application"

// DocumentUpload carries a supporting document out of the multipart request.
type DocumentUpload struct {
	File     io.Reader
	Filename string
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest, doc *DocumentUpload) (LeaveResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, int64, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	GetByApplicant(ctx context.Context, applicantID string) ([]LeaveResponse, error)
	DecideHOD(ctx context.Context, actorID, actorRole, id string, req DecisionRequest) (LeaveResponse, error)
	DecidePrincipal(ctx context.Context, actorID, actorRole, id string, req DecisionRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error)
}

type service struct {
	db          *sql.DB
	repo        Repository
	balanceRepo leavebalance.Repository
	counterRepo counter.Repository
	store       storage.Store
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	balanceRepo leavebalance.Repository,
	counterRepo counter.Repository,
	store storage.Store,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		balanceRepo: balanceRepo,
		counterRepo: counterRepo,
		store:       store,
		logger:      l,
	}
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest, doc *DocumentUpload) (LeaveResponse, error) {
	s.logger.Debug("create leave application requested",
		zap.String("applicant_id", actorID),
		zap.String("leave_type", req.LeaveType),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	applicantID, startDate, endDate, session, err := validateCreateRequest(actorID, req)
	if err != nil {
		s.logger.Warn("create leave application validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	var documentRef *string
	if doc != nil {
		ref, err := s.store.Save(doc.File, doc.Filename, time.Now().UTC())
		if err != nil {
			s.logger.Error("create leave application document save failed", zap.Error(err))
			return LeaveResponse{}, err
		}
		documentRef = &ref
	}

	seq, err := s.counterRepo.GetNextValue(ctx, CounterTypeApplication)
	if err != nil {
		s.logger.Error("create leave application reference allocation failed", zap.Error(err))
		s.discardDocument(documentRef)
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave application begin tx failed", zap.Error(err))
		s.discardDocument(documentRef)
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &LeaveApplication{
		ID:                 uuid.New(),
		Reference:          fmt.Sprintf("LA-%06d", seq),
		ApplicantID:        applicantID,
		LeaveType:          req.LeaveType,
		StartDate:          startDate,
		EndDate:            endDate,
		Session:            session,
		Reason:             req.Reason,
		SupportingDocument: documentRef,
		Status:             StatusPending,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave application persist failed", zap.Error(err))
		s.discardDocument(documentRef)
		return LeaveResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave application commit failed", zap.Error(err))
		s.discardDocument(documentRef)
		return LeaveResponse{}, err
	}
	s.logger.Info("create leave application success",
		zap.String("leave_id", l.ID.String()),
		zap.String("reference", l.Reference),
		zap.String("applicant_id", actorID),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]LeaveResponse, int64, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 {
		filter.PageSize = 25
	}
	if filter.Status != "" && !validStatus(filter.Status) {
		return nil, 0, leaveerrors.ErrInvalidState
	}
	if filter.LeaveType != "" && !domain.ValidLeaveType(filter.LeaveType) {
		return nil, 0, leaveerrors.ErrInvalidLeaveType
	}
	if filter.ApplicantID != "" {
		if _, err := uuid.Parse(filter.ApplicantID); err != nil {
			return nil, 0, leaveerrors.ErrInvalidApplicantID
		}
	}

	apps, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	return mapToListResponse(apps), total, nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	l, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}
	return mapToResponse(*l), nil
}

func (s *service) GetByApplicant(ctx context.Context, applicantID string) ([]LeaveResponse, error) {
	if _, err := uuid.Parse(applicantID); err != nil {
		return nil, leaveerrors.ErrInvalidApplicantID
	}

	apps, err := s.repo.FindByApplicant(ctx, applicantID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(apps), nil
}

// DecideHOD records the first approval stage. A rejection here is final; an
// approval leaves the application pending for the principal.
func (s *service) DecideHOD(ctx context.Context, actorID, actorRole, id string, req DecisionRequest) (LeaveResponse, error) {
	s.logger.Debug("hod decision requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
	)

	if actorRole != staff.RoleHOD {
		return LeaveResponse{}, leaveerrors.ErrRoleNotAllowed
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("hod decision begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		s.logger.Warn("hod decision on non-pending application",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}
	if l.ApprovedByHODID != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	now := time.Now().UTC()
	l.ApprovedByHODID = &actorUUID
	l.HODApprovalDate = &now
	l.HODComments = req.Comments
	if req.Decision == "reject" {
		l.Status = StatusRejected
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("hod decision persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("hod decision commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("hod decision success",
		zap.String("leave_id", id),
		zap.String("decision", req.Decision),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

// DecidePrincipal records the final stage. Approval debits the applicant's
// balance for the academic year the leave starts in, inside the same
// transaction as the status change.
func (s *service) DecidePrincipal(ctx context.Context, actorID, actorRole, id string, req DecisionRequest) (LeaveResponse, error) {
	s.logger.Debug("principal decision requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("decision", req.Decision),
	)

	if actorRole != staff.RolePrincipal {
		return LeaveResponse{}, leaveerrors.ErrRoleNotAllowed
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("principal decision begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.Status != StatusPending {
		s.logger.Warn("principal decision on non-pending application",
			zap.String("leave_id", id),
			zap.String("status", l.Status),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}
	if l.ApprovedByHODID == nil {
		return LeaveResponse{}, leaveerrors.ErrHODApprovalRequired
	}
	if l.ApprovedByPrincipalID != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	now := time.Now().UTC()
	l.ApprovedByPrincipalID = &actorUUID
	l.PrincipalApprovalDate = &now
	l.PrincipalComments = req.Comments

	if req.Decision == "approve" {
		l.Status = StatusApproved
		if err := s.debitBalance(ctx, tx, l); err != nil {
			return LeaveResponse{}, err
		}
	} else {
		l.Status = StatusRejected
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("principal decision persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("principal decision commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("principal decision success",
		zap.String("leave_id", id),
		zap.String("decision", req.Decision),
		zap.String("status", l.Status),
	)
	return mapToResponse(*l), nil
}

// debitBalance takes the approved days off the applicant's balance. Duty
// leave is never deducted. The balance row is locked so concurrent approvals
// cannot overdraw it.
func (s *service) debitBalance(ctx context.Context, tx *sql.Tx, l *LeaveApplication) error {
	if !domain.Deductible(l.LeaveType) {
		return nil
	}

	year := academicyear.ForDate(l.StartDate)
	qbal := s.balanceRepo.WithTx(tx)

	b, err := qbal.FindForUpdate(ctx, l.ApplicantID.String(), l.LeaveType, year)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavebalanceerrors.ErrBalanceNotFound
		}
		return err
	}

	if err := b.ApplyDelta(-float64(l.Duration())); err != nil {
		s.logger.Warn("principal approval rejected: insufficient balance",
			zap.String("leave_id", l.ID.String()),
			zap.String("leave_type", l.LeaveType),
			zap.Float64("balance_days", b.BalanceDays),
			zap.Int("duration_days", l.Duration()),
		)
		return err
	}

	return qbal.Update(ctx, b)
}

func (s *service) Cancel(ctx context.Context, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("cancel leave application requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("cancel leave application begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrLeaveNotFound
		}
		return LeaveResponse{}, err
	}

	if l.ApplicantID.String() != actorID {
		return LeaveResponse{}, leaveerrors.ErrNotApplicant
	}
	if l.Status != StatusPending {
		return LeaveResponse{}, leaveerrors.ErrInvalidState
	}

	l.Status = StatusCancelled

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("cancel leave application persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("cancel leave application commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	s.logger.Info("cancel leave application success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func (s *service) discardDocument(ref *string) {
	if ref == nil {
		return
	}
	if err := s.store.Delete(*ref); err != nil {
		s.logger.Warn("orphaned document cleanup failed", zap.String("ref", *ref), zap.Error(err))
	}
}

func validStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func validateCreateRequest(actorID string, req CreateLeaveRequest) (uuid.UUID, time.Time, time.Time, string, error) {
	applicantID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidApplicantID
	}
	if !domain.ValidLeaveType(req.LeaveType) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidLeaveType
	}
	session := req.Session
	if session == "" {
		session = SessionFullDay
	}
	if !ValidSession(session) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidSession
	}
	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", err
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, "", err
	}
	if startDate.After(endDate) {
		return uuid.Nil, time.Time{}, time.Time{}, "", leaveerrors.ErrInvalidDateRange
	}
	return applicantID, startDate, endDate, session, nil
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l LeaveApplication) LeaveResponse {
	resp := LeaveResponse{
		ID:                 l.ID.String(),
		Reference:          l.Reference,
		ApplicantID:        l.ApplicantID.String(),
		LeaveType:          l.LeaveType,
		StartDate:          l.StartDate.Format("2006-01-02"),
		EndDate:            l.EndDate.Format("2006-01-02"),
		Session:            l.Session,
		DurationDays:       l.Duration(),
		Reason:             l.Reason,
		AppliedDate:        l.AppliedDate.Format(time.RFC3339),
		SupportingDocument: l.SupportingDocument,
		Status:             l.Status,
		HODComments:        l.HODComments,
		PrincipalComments:  l.PrincipalComments,
	}
	if l.Applicant != nil {
		resp.ApplicantName = strings.TrimSpace(l.Applicant.FirstName + " " + l.Applicant.LastName)
	}
	if l.ApprovedByHODID != nil {
		v := l.ApprovedByHODID.String()
		resp.ApprovedByHOD = &v
	}
	if l.HODApprovalDate != nil {
		v := l.HODApprovalDate.Format(time.RFC3339)
		resp.HODApprovalDate = &v
	}
	if l.ApprovedByPrincipalID != nil {
		v := l.ApprovedByPrincipalID.String()
		resp.ApprovedByPrincipal = &v
	}
	if l.PrincipalApprovalDate != nil {
		v := l.PrincipalApprovalDate.Format(time.RFC3339)
		resp.PrincipalApprovalDate = &v
	}
	return resp
}

func mapToListResponse(apps []LeaveApplication) []LeaveResponse {
	resp := make([]LeaveResponse, len(apps))
	for i, l := range apps {
		resp[i] = mapToResponse(l)
	}
	return resp
}
