package domain

import "strconv"

// TotalPrice считает итоговую цену брони: цена за час * число часов.
// durationHours должен быть положительным целым, источник валидных
// значений — генератор слотов.
func TotalPrice(hourlyPrice float64, durationHours int) float64 {
	return hourlyPrice * float64(durationHours)
}

// FormatPrice форматирует цену с двумя знаками после точки ("150.00")
func FormatPrice(price float64) string {
	return strconv.FormatFloat(price, 'f', 2, 64)
}
