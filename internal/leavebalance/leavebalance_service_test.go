package leavebalance_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/Yaseenhassan/college-leave-app/internal/leavebalance"
	leavebalanceerrors "github.com/Yaseenhassan/college-leave-app/internal/leavebalance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

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

type balanceServiceDeps struct {
	db      *sql.DB
	sqlMock sqlmock.Sqlmock
	service leavebalance.Service
	repo    *fakeBalanceRepository
}

func setupBalanceServiceTest(t *testing.T) *balanceServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	repo := &fakeBalanceRepository{}
	svc := leavebalance.NewService(db, repo)

	return &balanceServiceDeps{
		db:      db,
		sqlMock: sqlMock,
		service: svc,
		repo:    repo,
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

func TestBalanceService_Initialize(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, uuid.MustParse(staffID), b.StaffID)
			assert.Equal(t, "casual", b.LeaveType)
			assert.Equal(t, 15.0, b.BalanceDays)
			assert.Equal(t, "2026-2027", b.AcademicYear)
			return nil
		}

		resp, err := deps.service.Initialize(ctx, leavebalance.InitializeBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			InitialDays:  15,
		})

		assert.NoError(t, err)
		assert.Equal(t, 15.0, resp.BalanceDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative duplicate triple", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			return leavebalanceerrors.ErrBalanceExists
		}

		_, err := deps.service.Initialize(ctx, leavebalance.InitializeBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			InitialDays:  15,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceExists)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative initial days below zero", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Initialize(ctx, leavebalance.InitializeBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			InitialDays:  -1,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrNegativeInitialDays)
	})

	t.Run("negative malformed academic year", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Initialize(ctx, leavebalance.InitializeBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2028",
			InitialDays:  15,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidAcademicYear)
	})
}

func TestBalanceService_SeedDefaults(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New().String()

	t.Run("success seeds every deductible type", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		for range leavebalance.DefaultEntitlements {
			expectTx(t, deps.sqlMock, true)
		}

		seeded := map[string]float64{}
		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			seeded[b.LeaveType] = b.BalanceDays
			return nil
		}

		err := deps.service.SeedDefaults(ctx, staffID, "2026-2027")

		assert.NoError(t, err)
		assert.Equal(t, leavebalance.DefaultEntitlements, seeded)
		_, dutySeeded := seeded["duty"]
		assert.False(t, dutySeeded)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("success existing rows are skipped", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		for range leavebalance.DefaultEntitlements {
			expectTx(t, deps.sqlMock, false)
		}
		deps.repo.createFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			return leavebalanceerrors.ErrBalanceExists
		}

		err := deps.service.SeedDefaults(ctx, staffID, "2026-2027")

		assert.NoError(t, err)
	})
}

func TestBalanceService_Adjust(t *testing.T) {
	ctx := context.Background()
	staffID := uuid.New().String()

	balanceOf := func(days float64) *leavebalance.LeaveBalance {
		return &leavebalance.LeaveBalance{
			ID:           uuid.New(),
			StaffID:      uuid.MustParse(staffID),
			LeaveType:    "casual",
			BalanceDays:  days,
			AcademicYear: "2026-2027",
		}
	}

	t.Run("success debit", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, true)
		deps.repo.findForUpdateFn = func(ctx context.Context, sid, lt, year string) (*leavebalance.LeaveBalance, error) {
			return balanceOf(10), nil
		}
		deps.repo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			assert.Equal(t, 7.0, b.BalanceDays)
			return nil
		}

		resp, err := deps.service.Adjust(ctx, leavebalance.AdjustBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			DeltaDays:    -3,
		})

		assert.NoError(t, err)
		assert.Equal(t, 7.0, resp.BalanceDays)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative overdraw leaves balance unchanged", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		b := balanceOf(0)
		deps.repo.findForUpdateFn = func(ctx context.Context, sid, lt, year string) (*leavebalance.LeaveBalance, error) {
			return b, nil
		}
		updated := false
		deps.repo.updateFn = func(ctx context.Context, b *leavebalance.LeaveBalance) error {
			updated = true
			return nil
		}

		_, err := deps.service.Adjust(ctx, leavebalance.AdjustBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			DeltaDays:    -1,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInsufficientBalance)
		assert.Equal(t, 0.0, b.BalanceDays)
		assert.False(t, updated)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("negative missing balance", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		expectTx(t, deps.sqlMock, false)
		deps.repo.findForUpdateFn = func(ctx context.Context, sid, lt, year string) (*leavebalance.LeaveBalance, error) {
			return nil, gorm.ErrRecordNotFound
		}

		_, err := deps.service.Adjust(ctx, leavebalance.AdjustBalanceRequest{
			StaffID:      staffID,
			LeaveType:    "casual",
			AcademicYear: "2026-2027",
			DeltaDays:    -1,
		})

		assert.ErrorIs(t, err, leavebalanceerrors.ErrBalanceNotFound)
	})
}

func TestBalanceService_ListByStaff(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		staffID := uuid.New()
		deps.repo.findByStaffFn = func(ctx context.Context, sid string) ([]leavebalance.LeaveBalance, error) {
			return []leavebalance.LeaveBalance{
				{ID: uuid.New(), StaffID: staffID, LeaveType: "sick", BalanceDays: 12, AcademicYear: "2026-2027"},
				{ID: uuid.New(), StaffID: staffID, LeaveType: "casual", BalanceDays: 15, AcademicYear: "2026-2027"},
			}, nil
		}

		resp, err := deps.service.ListByStaff(ctx, staffID.String())

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, 12.0, resp[0].BalanceDays)
	})

	t.Run("negative invalid staff id", func(t *testing.T) {
		deps := setupBalanceServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.ListByStaff(ctx, "not-a-uuid")

		assert.ErrorIs(t, err, leavebalanceerrors.ErrInvalidStaffID)
	})
}
