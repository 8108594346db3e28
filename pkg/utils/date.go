package utils

import "time"

// ParseDate interpreta uma data YYYY-MM-DD; string vazia retorna a data zero
func ParseDate(dateStr string) (*time.Time, error) {
	var date time.Time

	if dateStr != "" {
		incomingDate, err := time.Parse(time.DateOnly, dateStr)
		if err != nil {
			return nil, err
		}

		date = incomingDate
	}

	return &date, nil
}

// TodayIn retorna o dia do calendário de now no fuso informado, como meia-noite UTC
func TodayIn(now time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := now.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// AddDays soma dias a uma data
func AddDays(date time.Time, days int) time.Time {
	return date.AddDate(0, 0, days)
}

// MaxDate retorna a maior das duas datas
func MaxDate(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
