package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quadralivre/QL-BookingClient/pkg/types"
)

func TestTimeSlot_HourlyPrice(t *testing.T) {
	tests := []struct {
		name    string
		price   string
		want    float64
		wantErr bool
	}{
		{name: "dot separator", price: "150.00", want: 150},
		{name: "comma separator", price: "99,50", want: 99.5},
		{name: "integer", price: "80", want: 80},
		{name: "padded", price: " 120.00 ", want: 120},
		{name: "negative", price: "-10.00", wantErr: true},
		{name: "garbage", price: "abc", wantErr: true},
		{name: "empty", price: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			slot := TimeSlot{Price: tt.price}
			got, err := slot.HourlyPrice()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.001)
		})
	}
}

func TestField_SlotForDay(t *testing.T) {
	field := &Field{
		Schedule: []TimeSlot{
			{DayOfWeek: Monday, IsOpen: true, StartTime: types.TimeString("08:00"), EndTime: types.TimeString("22:00")},
			{DayOfWeek: Tuesday, IsOpen: false},
			{DayOfWeek: Wednesday, IsOpen: true, StartTime: types.TimeString("10:00"), EndTime: types.TimeString("18:00")},
		},
	}

	t.Run("open day", func(t *testing.T) {
		slot := field.SlotForDay(Monday)
		require.NotNil(t, slot)
		assert.Equal(t, types.TimeString("08:00"), slot.StartTime)
	})

	t.Run("closed day", func(t *testing.T) {
		assert.Nil(t, field.SlotForDay(Tuesday))
	})

	t.Run("day not in schedule", func(t *testing.T) {
		assert.Nil(t, field.SlotForDay(Sunday))
	})
}

func TestReservation_SameSlot(t *testing.T) {
	base := &Reservation{FieldID: "f1", Date: "2026-09-10", StartTime: types.TimeString("10:00")}

	assert.True(t, base.SameSlot(&Reservation{FieldID: "f1", Date: "2026-09-10", StartTime: "10:00"}))
	assert.False(t, base.SameSlot(&Reservation{FieldID: "f2", Date: "2026-09-10", StartTime: "10:00"}))
	assert.False(t, base.SameSlot(&Reservation{FieldID: "f1", Date: "2026-09-11", StartTime: "10:00"}))
	assert.False(t, base.SameSlot(&Reservation{FieldID: "f1", Date: "2026-09-10", StartTime: "11:00"}))
}

func TestReservation_StatusTransitions(t *testing.T) {
	r := &Reservation{Status: StatusConfirmed}
	assert.True(t, r.IsActive())
	assert.True(t, r.CanBeCancelled())

	r.Status = StatusCancelled
	assert.False(t, r.IsActive())
	assert.True(t, r.IsCancelled())
	assert.False(t, r.CanBeCancelled())
}

func TestTotalPriceFormatting(t *testing.T) {
	assert.Equal(t, "300.00", FormatPrice(TotalPrice(150, 2)))
	assert.Equal(t, "99.50", FormatPrice(TotalPrice(99.5, 1)))
	assert.Equal(t, "241.50", FormatPrice(TotalPrice(80.5, 3)))
}
