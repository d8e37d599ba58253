package make_reservation

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadralivre/QL-BookingClient/internal/domain"
	authService "github.com/quadralivre/QL-BookingClient/internal/service/auth"
	reservationsService "github.com/quadralivre/QL-BookingClient/internal/service/reservations"
	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(format string, v ...interface{})  {}
func (nopLogger) Warn(format string, v ...interface{})  {}
func (nopLogger) Error(format string, v ...interface{}) {}

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type authStub struct {
	user *domain.User
}

func (a *authStub) CurrentUser() (*domain.User, error) {
	if a.user == nil {
		return nil, authService.ErrNotAuthenticated
	}
	return a.user, nil
}

func (a *authStub) Token(now time.Time) (string, error) {
	if a.user == nil {
		return "", authService.ErrNotAuthenticated
	}
	return "token-123", nil
}

type reservationsStub struct {
	mu        sync.Mutex
	created   []*domain.Reservation
	err       error
	blockOn   chan struct{} // если задан, Create ждет закрытия канала
	callCount int
}

func (r *reservationsStub) Create(ctx context.Context, token string, candidate *domain.Reservation) (*domain.Reservation, error) {
	r.mu.Lock()
	r.callCount++
	block := r.blockOn
	r.mu.Unlock()

	if block != nil {
		<-block
	}

	if r.err != nil {
		return nil, r.err
	}

	created := *candidate
	created.ID = "r1"
	created.CreatedAt = "2026-09-01T12:00:00Z"

	r.mu.Lock()
	r.created = append(r.created, &created)
	r.mu.Unlock()

	return &created, nil
}

// 2026-09-07 понедельник, 2026-09-06 воскресенье
var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func testField() *domain.Field {
	return &domain.Field{
		ID:   "f1",
		Name: "Quadra Central",
		Schedule: []domain.TimeSlot{
			{
				DayOfWeek: domain.Monday,
				StartTime: "08:00",
				EndTime:   "12:00",
				Price:     "150.00",
				IsOpen:    true,
			},
			{DayOfWeek: domain.Sunday, IsOpen: false},
		},
	}
}

func newTestWizard(auth *authStub, res *reservationsStub) *Wizard {
	return NewWizard(testField(), auth, res, nopLogger{}).
		WithTimeProvider(fixedTime{now: testNow})
}

func signedIn() *authStub {
	return &authStub{user: &domain.User{ID: "u1", Name: "Ana", Email: "ana@example.com"}}
}

func TestWizard_HappyPath(t *testing.T) {
	res := &reservationsStub{}
	w := newTestWizard(signedIn(), res)

	assert.Equal(t, StepSelectingDate, w.Step())

	require.NoError(t, w.SelectDate("2026-09-07"))
	assert.Equal(t, StepSelectingTime, w.Step())

	hours, err := w.AvailableHours()
	require.NoError(t, err)
	assert.Equal(t, []types.TimeString{"08:00", "09:00", "10:00", "11:00"}, hours)

	require.NoError(t, w.SelectTime("10:00", 2))
	assert.Equal(t, StepSummary, w.Step())

	summary, err := w.Summary()
	require.NoError(t, err)
	assert.Equal(t, types.TimeString("12:00"), summary.EndTime)
	assert.Equal(t, "300.00", summary.Price)
	assert.Equal(t, domain.Monday, summary.DayOfWeek)

	created, err := w.Confirm(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StepConfirmed, w.Step())
	assert.Equal(t, "r1", created.ID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, domain.StatusConfirmed, created.Status)
	assert.Equal(t, created, w.Reservation())
}

func TestWizard_SelectDateValidation(t *testing.T) {
	w := newTestWizard(signedIn(), &reservationsStub{})

	tests := []struct {
		name    string
		date    string
		wantErr error
	}{
		{name: "empty date", date: "", wantErr: ErrNoDateSelected},
		{name: "bad format", date: "07.09.2026", wantErr: ErrInvalidDate},
		{name: "past date", date: "2026-08-30", wantErr: ErrPastDate},
		{name: "closed sunday", date: "2026-09-06", wantErr: ErrNoAvailabilityForDay},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := w.SelectDate(tt.date)
			assert.ErrorIs(t, err, tt.wantErr)
			// мастер остаётся на выборе даты
			assert.Equal(t, StepSelectingDate, w.Step())
		})
	}
}

func TestWizard_SelectTimeValidation(t *testing.T) {
	w := newTestWizard(signedIn(), &reservationsStub{})
	require.NoError(t, w.SelectDate("2026-09-07"))

	t.Run("start outside open hours", func(t *testing.T) {
		assert.ErrorIs(t, w.SelectTime("07:00", 1), ErrInvalidStartTime)
	})

	t.Run("duration above max", func(t *testing.T) {
		// с 10:00 до закрытия в 12:00 остаётся 2 часа
		assert.ErrorIs(t, w.SelectTime("10:00", 3), ErrInvalidDuration)
	})

	t.Run("zero duration", func(t *testing.T) {
		assert.ErrorIs(t, w.SelectTime("10:00", 0), ErrInvalidDuration)
	})

	// старт принимается только из сгенерированной последовательности целых
	// часов: 11:30+1ч закончилась бы в 12:30, позже закрытия в 12:00
	t.Run("sub-hour start", func(t *testing.T) {
		assert.ErrorIs(t, w.SelectTime("11:30", 1), ErrInvalidStartTime)
		assert.Equal(t, StepSelectingTime, w.Step())
	})

	t.Run("sub-hour start has zero max duration", func(t *testing.T) {
		max, err := w.MaxDuration("10:30")
		require.NoError(t, err)
		assert.Zero(t, max)
	})
}

func TestWizard_AuthRequired(t *testing.T) {
	w := newTestWizard(&authStub{}, &reservationsStub{})
	require.NoError(t, w.SelectDate("2026-09-07"))

	err := w.SelectTime("10:00", 1)
	assert.ErrorIs(t, err, ErrAuthRequired)
	assert.Equal(t, StepSelectingTime, w.Step(), "no transition without auth")
}

func TestWizard_DuplicateBookingStaysOnSummary(t *testing.T) {
	res := &reservationsStub{err: reservationsService.ErrDuplicate}
	w := newTestWizard(signedIn(), res)

	require.NoError(t, w.SelectDate("2026-09-07"))
	require.NoError(t, w.SelectTime("10:00", 1))

	_, err := w.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrDuplicateBooking)
	assert.Equal(t, StepSummary, w.Step(), "wizard returns to summary on duplicate")
}

func TestWizard_BackwardTransitions(t *testing.T) {
	w := newTestWizard(signedIn(), &reservationsStub{})

	require.NoError(t, w.SelectDate("2026-09-07"))
	require.NoError(t, w.SelectTime("09:00", 1))
	assert.Equal(t, StepSummary, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectingTime, w.Step())

	require.NoError(t, w.Back())
	assert.Equal(t, StepSelectingDate, w.Step())

	assert.ErrorIs(t, w.Back(), ErrInvalidStep)

	// выбранные значения не очищаются: после повторного выбора даты
	// сводка пересчитывается заново
	require.NoError(t, w.SelectDate("2026-09-14"))
	require.NoError(t, w.SelectTime("09:00", 2))

	summary, err := w.Summary()
	require.NoError(t, err)
	assert.Equal(t, "2026-09-14", summary.Date)
	assert.Equal(t, types.TimeString("11:00"), summary.EndTime)
	assert.Equal(t, "300.00", summary.Price)
}

func TestWizard_InFlightGuard(t *testing.T) {
	release := make(chan struct{})
	res := &reservationsStub{blockOn: release}
	w := newTestWizard(signedIn(), res)

	require.NoError(t, w.SelectDate("2026-09-07"))
	require.NoError(t, w.SelectTime("10:00", 1))

	firstDone := make(chan error, 1)
	go func() {
		_, err := w.Confirm(context.Background())
		firstDone <- err
	}()

	// дожидаемся, пока первый Confirm дойдет до Create
	require.Eventually(t, func() bool {
		res.mu.Lock()
		defer res.mu.Unlock()
		return res.callCount == 1
	}, time.Second, 5*time.Millisecond)

	_, err := w.Confirm(context.Background())
	assert.ErrorIs(t, err, ErrReservationInFlight)

	close(release)
	require.NoError(t, <-firstDone)

	res.mu.Lock()
	defer res.mu.Unlock()
	assert.Equal(t, 1, res.callCount, "second click must not create a reservation")
}

func TestWizard_Reset(t *testing.T) {
	w := newTestWizard(signedIn(), &reservationsStub{})

	require.NoError(t, w.SelectDate("2026-09-07"))
	require.NoError(t, w.SelectTime("10:00", 2))
	_, err := w.Confirm(context.Background())
	require.NoError(t, err)

	// завершённый мастер не принимает новую дату
	assert.ErrorIs(t, w.SelectDate("2026-09-14"), ErrInvalidStep)

	w.Reset()
	assert.Equal(t, StepSelectingDate, w.Step())
	assert.Nil(t, w.Reservation())
	require.NoError(t, w.SelectDate("2026-09-14"))
}
