package database

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/models"
)

func mustDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestDueToday(t *testing.T) {
	today := mustDate("2024-03-10") // воскресенье

	tests := []struct {
		name      string
		frequency string
		start     string
		want      bool
	}{
		{"ежедневно всегда", models.FrequencyDaily, "2024-01-01", true},
		{"еженедельно тот же день недели", models.FrequencyWeekly, "2024-03-03", true},
		{"еженедельно другой день недели", models.FrequencyWeekly, "2024-03-04", false},
		{"ежемесячно то же число", models.FrequencyMonthly, "2024-01-10", true},
		{"ежемесячно другое число", models.FrequencyMonthly, "2024-01-11", false},
		{"ежеквартально кратные три месяца", models.FrequencyQuarterly, "2023-12-10", true},
		{"ежеквартально некратный месяц", models.FrequencyQuarterly, "2024-01-10", false},
		{"ежегодно та же дата", models.FrequencyYearly, "2023-03-10", true},
		{"ежегодно другая дата", models.FrequencyYearly, "2023-04-10", false},
		{"разово в тот же день", models.FrequencyOneTime, "2024-03-10", true},
		{"разово в другой день", models.FrequencyOneTime, "2024-03-09", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := models.RecurringExpense{
				Name:      "тест",
				Amount:    decimal.NewFromInt(100),
				Frequency: tc.frequency,
				StartDate: mustDate(tc.start),
			}
			if got := dueToday(rec, today); got != tc.want {
				t.Errorf("dueToday(%s, старт %s) = %v, ожидалось %v", tc.frequency, tc.start, got, tc.want)
			}
		})
	}
}
