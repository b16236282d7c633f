package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/Yaseenhassan/college-leave-app/internal/leave"
	leaveerrors "github.com/Yaseenhassan/college-leave-app/internal/leave/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/leavebalance"
	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"
	"github.com/Yaseenhassan/college-leave-app/internal/staff"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeLeaveRepository struct {
	withTxFn          func(tx *sql.Tx) leave.Repository
	createFn          func(ctx context.Context, l *leave.LeaveApplication) error
	findAllFn         func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveApplication, int64, error)
	findByIDFn        func(ctx context.Context, id string) (*leave.LeaveApplication, error)
	findByApplicantFn func(ctx context.Context, applicantID string) ([]leave.LeaveApplication, error)
	updateFn          func(ctx context.Context, l *leave.LeaveApplication) error
}

func (f *fakeLeaveRepository) WithTx(tx *sql.Tx) leave.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeLeaveRepository) Create(ctx context.Context, l *leave.LeaveApplication) error {
	if f.createFn != nil {
		return f.createFn(ctx, l)
	}
	return nil
}

func (f *fakeLeaveRepository) FindAll(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveApplication, int64, error) {
	if f.findAllFn != nil {
		return f.findAllFn(ctx, filter)
	}
	return nil, 0, nil
}

func (f *fakeLeaveRepository) FindByID(ctx context.Context, id string) (*leave.LeaveApplication, error) {
	if f.findByIDFn != nil {
		return f.findByIDFn(ctx, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLeaveRepository) FindByApplicant(ctx context.Context, applicantID string) ([]leave.LeaveApplication, error) {
	if f.findByApplicantFn != nil {
		return f.findByApplicantFn(ctx, applicantID)
	}
	return nil, nil
}

func (f *fakeLeaveRepository) Update(ctx context.Context, l *leave.LeaveApplication) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, l)
	}
	return nil
}

type fakeBalanceRepository struct {
	withTxFn        func(tx *sql.Tx) leavebalance.Repository
	createFn        func(ctx context.Context, b *leavebalance.LeaveBalance) error
	findFn          func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error)
	findForUpdateFn func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error)
	findByStaffFn   func(ctx context.Context, staffID string) ([]leavebalance.LeaveBalance, error)
	updateFn        func(ctx context.Context, b *leavebalance.LeaveBalance) error
}

func (f *fakeBalanceRepository) WithTx(tx *sql.Tx) leavebalance.Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}

func (f *fakeBalanceRepository) Create(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.createFn != nil {
		return f.createFn(ctx, b)
	}
	return nil
}

func (f *fakeBalanceRepository) Find(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
	if f.findFn != nil {
		return f.findFn(ctx, staffID, leaveType, academicYear)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindForUpdate(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
	if f.findForUpdateFn != nil {
		return f.findForUpdateFn(ctx, staffID, leaveType, academicYear)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeBalanceRepository) FindByStaff(ctx context.Context, staffID string) ([]leavebalance.LeaveBalance, error) {
	if f.findByStaffFn != nil {
		return f.findByStaffFn(ctx, staffID)
	}
	return nil, nil
}

func (f *fakeBalanceRepository) Update(ctx context.Context, b *leavebalance.LeaveBalance) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, b)
	}
	return nil
}

type fakeCounterRepository struct {
	getNextValueFn func(ctx context.Context, counterType string) (int64, error)
}

func (f *fakeCounterRepository) GetNextValue(ctx context.Context, counterType string) (int64, error) {
	if f.getNextValueFn != nil {
		return f.getNextValueFn(ctx, counterType)
	}
	return 1, nil
}

type fakeStore struct {
	saveFn   func(r io.Reader, originalName string, now time.Time) (string, error)
	deleteFn func(ref string) error
}

func (f *fakeStore) Save(r io.Reader, originalName string, now time.Time) (string, error) {
	if f.saveFn != nil {
		return f.saveFn(r, originalName, now)
	}
	return "leave_documents/2026/03/01/doc.pdf", nil
}

func (f *fakeStore) Open(ref string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) Delete(ref string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ref)
	}
	return nil
}

type leaveServiceDeps struct {
	db          *sql.DB
	sqlMock     sqlmock.Sqlmock
	service     leave.Service
	repo        *fakeLeaveRepository
	balanceRepo *fakeBalanceRepository
	counterRepo *fakeCounterRepository
	store       *fakeStore
}

func setupLeaveServiceTest(t *testing.T) *leaveServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeLeaveRepository{}
	balanceRepo := &fakeBalanceRepository{}
	counterRepo := &fakeCounterRepository{}
	store := &fakeStore{}
	svc := leave.NewService(db, repo, balanceRepo, counterRepo, store)

	return &leaveServiceDeps{
		db:          db,
		sqlMock:     sqlMock,
		service:     svc,
		repo:        repo,
		balanceRepo: balanceRepo,
		counterRepo: counterRepo,
		store:       store,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func pendingApplication(applicantID uuid.UUID, leaveType string, start, end time.Time) *leave.LeaveApplication {
	return &leave.LeaveApplication{
		ID:          uuid.New(),
		Reference:   "LA-000042",
		ApplicantID: applicantID,
		LeaveType:   leaveType,
		StartDate:   start,
		EndDate:     end,
		Session:     leave.SessionFullDay,
		Status:      leave.StatusPending,
	}
}

func TestLeaveService_Create(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.counterRepo.getNextValueFn = func(ctx context.Context, counterType string) (int64, error) {
			assert.Equal(t, leave.CounterTypeApplication, counterType)
			return 7, nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			assert.Equal(t, uuid.MustParse(applicantID), l.ApplicantID)
			assert.Equal(t, "LA-000007", l.Reference)
			assert.Equal(t, "casual", l.LeaveType)
			assert.Equal(t, leave.SessionFullDay, l.Session)
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.Equal(t, 3, l.Duration())
			return nil
		}

		resp, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "casual",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-03",
			Reason:    "Family event",
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, "LA-000007", resp.Reference)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, 3, resp.DurationDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success single day duration is one", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "sick",
			StartDate: "2026-04-10",
			EndDate:   "2026-04-10",
		}, nil)

		assert.NoError(t, err)
		assert.Equal(t, 1, resp.DurationDays)
	})

	t.Run("success with supporting document", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.store.saveFn = func(r io.Reader, originalName string, now time.Time) (string, error) {
			assert.Equal(t, "certificate.pdf", originalName)
			return "leave_documents/2026/03/01/abc_certificate.pdf", nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			assert.NotNil(t, l.SupportingDocument)
			assert.Equal(t, "leave_documents/2026/03/01/abc_certificate.pdf", *l.SupportingDocument)
			return nil
		}

		doc := &leave.DocumentUpload{File: strings.NewReader("doc-bytes"), Filename: "certificate.pdf"}
		resp, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "sick",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}, doc)

		assert.NoError(t, err)
		assert.NotNil(t, resp.SupportingDocument)
	})

	t.Run("negative end before start", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "casual",
			StartDate: "2026-03-05",
			EndDate:   "2026-03-01",
		}, nil)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidDateRange)
	})

	t.Run("negative unknown leave type", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "sabbatical",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}, nil)

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveType)
	})

	t.Run("negative document discarded when persist fails", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deleted := ""
		deps.store.deleteFn = func(ref string) error {
			deleted = ref
			return nil
		}
		deps.repo.createFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			return errors.New("db error")
		}

		doc := &leave.DocumentUpload{File: strings.NewReader("doc-bytes"), Filename: "note.pdf"}
		_, err := deps.service.Create(ctx, applicantID, leave.CreateLeaveRequest{
			LeaveType: "sick",
			StartDate: "2026-03-01",
			EndDate:   "2026-03-02",
		}, doc)

		assert.Error(t, err)
		assert.Equal(t, "leave_documents/2026/03/01/doc.pdf", deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestLeaveService_DecideHOD(t *testing.T) {
	ctx := context.Background()
	hodID := uuid.New().String()
	applicantID := uuid.New()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)

	t.Run("success approve keeps application pending", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication(applicantID, "casual", start, end)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			assert.Equal(t, leave.StatusPending, l.Status)
			assert.NotNil(t, l.ApprovedByHODID)
			assert.Equal(t, hodID, l.ApprovedByHODID.String())
			assert.NotNil(t, l.HODApprovalDate)
			assert.Equal(t, "Looks fine", l.HODComments)
			return nil
		}

		resp, err := deps.service.DecideHOD(ctx, hodID, staff.RoleHOD, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
			Comments: "Looks fine",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.NotNil(t, resp.ApprovedByHOD)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success reject is final", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication(applicantID, "casual", start, end)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		resp, err := deps.service.DecideHOD(ctx, hodID, staff.RoleHOD, app.ID.String(), leave.DecisionRequest{
			Decision: "reject",
			Comments: "Short staffed that week",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
	})

	t.Run("negative actor is not hod", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.DecideHOD(ctx, hodID, staff.RoleTeacher, uuid.New().String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrRoleNotAllowed)
	})

	t.Run("negative second hod decision", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication(applicantID, "casual", start, end)
		priorHOD := uuid.New()
		now := time.Now().UTC()
		app.ApprovedByHODID = &priorHOD
		app.HODApprovalDate = &now
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.DecideHOD(ctx, hodID, staff.RoleHOD, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative application already rejected", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication(applicantID, "casual", start, end)
		app.Status = leave.StatusRejected
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.DecideHOD(ctx, hodID, staff.RoleHOD, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
	})
}

func TestLeaveService_DecidePrincipal(t *testing.T) {
	ctx := context.Background()
	principalID := uuid.New().String()
	applicantID := uuid.New()
	start := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 7, 3, 0, 0, 0, 0, time.UTC)

	hodApproved := func(leaveType string) *leave.LeaveApplication {
		app := pendingApplication(applicantID, leaveType, start, end)
		hod := uuid.New()
		now := time.Now().UTC()
		app.ApprovedByHODID = &hod
		app.HODApprovalDate = &now
		return app
	}

	t.Run("success approve debits balance", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := hodApproved("casual")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		var updatedBalance *leavebalance.LeaveBalance
		deps.balanceRepo.findForUpdateFn = func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
			assert.Equal(t, applicantID.String(), staffID)
			assert.Equal(t, "casual", leaveType)
			// July 2026 falls in the 2026-2027 academic year.
			assert.Equal(t, "2026-2027", academicYear)
			return &leavebalance.LeaveBalance{
				ID:           uuid.New(),
				StaffID:      applicantID,
				LeaveType:    "casual",
				BalanceDays:  10,
				AcademicYear: academicYear,
			}, nil
		}
		deps.balanceRepo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updatedBalance = b
			return nil
		}

		resp, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
		assert.NotNil(t, resp.ApprovedByPrincipal)
		assert.NotNil(t, updatedBalance)
		assert.Equal(t, 7.0, updatedBalance.BalanceDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success duty leave never debits", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := hodApproved("duty")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.balanceRepo.findForUpdateFn = func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
			t.Fatal("duty leave must not touch the balance")
			return nil, nil
		}

		resp, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusApproved, resp.Status)
	})

	t.Run("success reject does not debit", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := hodApproved("casual")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.balanceRepo.findForUpdateFn = func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
			t.Fatal("rejection must not touch the balance")
			return nil, nil
		}

		resp, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "reject",
			Comments: "Exam duty clash",
		})

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusRejected, resp.Status)
	})

	t.Run("negative without prior hod approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication(applicantID, "casual", start, end)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrHODApprovalRequired)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative insufficient balance aborts approval", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := hodApproved("casual")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.balanceRepo.findForUpdateFn = func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
			return &leavebalance.LeaveBalance{
				ID:           uuid.New(),
				StaffID:      applicantID,
				LeaveType:    "casual",
				BalanceDays:  2,
				AcademicYear: academicYear,
			}, nil
		}
		updated := false
		deps.balanceRepo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updated = true
			return nil
		}

		_, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing balance row", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := hodApproved("casual")
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.balanceRepo.findForUpdateFn = func(ctx context.Context, staffID, leaveType, academicYear string) (*leavebalance.LeaveBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.DecidePrincipal(ctx, principalID, staff.RolePrincipal, app.ID.String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceNotFound)
	})

	t.Run("negative actor is not principal", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.DecidePrincipal(ctx, principalID, staff.RoleHOD, uuid.New().String(), leave.DecisionRequest{
			Decision: "approve",
		})

		assert.ErrorIs(t, err, leaveerrors.ErrRoleNotAllowed)
	})
}

func TestLeaveService_Cancel(t *testing.T) {
	ctx := context.Background()
	applicantID := uuid.New()
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		app := pendingApplication(applicantID, "personal", start, end)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}
		deps.repo.updateFn = func(ctx context.Context, l *leave.LeaveApplication) error {
			assert.Equal(t, leave.StatusCancelled, l.Status)
			return nil
		}

		resp, err := deps.service.Cancel(ctx, applicantID.String(), app.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative someone else cancels", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication(applicantID, "personal", start, end)
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.Cancel(ctx, uuid.New().String(), app.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrNotApplicant)
	})

	t.Run("negative already approved", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		app := pendingApplication(applicantID, "personal", start, end)
		app.Status = leave.StatusApproved
		deps.repo.findByIDFn = func(ctx context.Context, id string) (*leave.LeaveApplication, error) {
			return app, nil
		}

		_, err := deps.service.Cancel(ctx, applicantID.String(), app.ID.String())

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidState)
	})
}

func TestLeaveService_GetAll(t *testing.T) {
	ctx := context.Background()

	t.Run("success with filters", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		deps.repo.findAllFn = func(ctx context.Context, filter leave.ListFilter) ([]leave.LeaveApplication, int64, error) {
			assert.Equal(t, leave.StatusPending, filter.Status)
			assert.Equal(t, "sick", filter.LeaveType)
			assert.Equal(t, 1, filter.Page)
			assert.Equal(t, 25, filter.PageSize)
			return []leave.LeaveApplication{
				*pendingApplication(uuid.New(), "sick",
					time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
					time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)),
			}, 1, nil
		}

		resp, total, err := deps.service.GetAll(ctx, leave.ListFilter{
			Status:    leave.StatusPending,
			LeaveType: "sick",
		})

		assert.NoError(t, err)
		assert.Equal(t, int64(1), total)
		assert.Len(t, resp, 1)
		assert.Equal(t, 2, resp[0].DurationDays)
	})

	t.Run("negative bad applicant filter", func(t *testing.T) {
		deps := setupLeaveServiceTest(t)
		defer deps.db.Close()

		_, _, err := deps.service.GetAll(ctx, leave.ListFilter{ApplicantID: "not-a-uuid"})

		assert.ErrorIs(t, err, leaveerrors.ErrInvalidApplicantID)
	})
}

// Uses the real gorm repositories over a single mocked connection to verify
// that every statement of a principal approval, including the balance debit,
// runs on the one transaction the service opened. Ordered expectations fail
// if any repository falls back to the pool (which would BEGIN on its own) or
// if the decision update writes to the staff table.
func TestLeaveService_DecidePrincipal_SingleTransaction(t *testing.T) {
	ctx := context.Background()

	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{})
	assert.NoError(t, err)

	leaveRepo := leave.NewRepository(gormDB)
	balanceRepo := leavebalance.NewRepository(gormDB)
	svc := leave.NewService(db, leaveRepo, balanceRepo, &fakeCounterRepository{}, &fakeStore{})

	leaveID := uuid.New()
	applicantID := uuid.New()
	hodID := uuid.New()
	principalID := uuid.New()
	start := time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.July, 3, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "leave_applications" WHERE id =`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "applicant_id", "leave_type", "start_date", "end_date",
			"session", "status", "approved_by_hod_id",
		}).AddRow(
			leaveID.String(), applicantID.String(), "casual", start, end,
			leave.SessionFullDay, leave.StatusPending, hodID.String(),
		))
	mock.ExpectQuery(`SELECT \* FROM "staff"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "first_name", "last_name"}).
			AddRow(applicantID.String(), "Priya", "Nair"))
	mock.ExpectQuery(`SELECT \* FROM "leave_balances" .*FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "staff_id", "leave_type", "balance_days", "academic_year",
		}).AddRow(uuid.New().String(), applicantID.String(), "casual", 10.0, "2026-2027"))
	mock.ExpectExec(`UPDATE "leave_balances" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "leave_applications" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	resp, err := svc.DecidePrincipal(ctx, principalID.String(), staff.RolePrincipal, leaveID.String(), leave.DecisionRequest{
		Decision: "approve",
	})

	assert.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
