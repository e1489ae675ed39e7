package report

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
	"time"

	"eventflow/internal/models"
)

// Row — строка итогового отчёта по одному участнику.
type Row struct {
	StudentID string
	FullName  string
	Email     string
	Status    models.Status
	TimeIn    string // первая запись журнала с "in" в метке, "-" если нет
	TimeOut   string // последняя запись с "out"/"checkout" в метке, "-" если нет
	TotalLogs int
}

// header повторяет формат выгрузки, к которому привыкли организаторы.
var header = []string{"Student ID", "Name", "Email", "Status", "Time In", "Time Out", "Total Logs"}

// BuildRows собирает отчёт из итоговых журналов участников. Время входа и
// выхода ищется по подстроке в метке без учёта регистра: первая запись с
// "in" и последняя с "out" или "checkout" в хронологическом порядке.
func BuildRows(participants []models.Participant) []Row {
	rows := make([]Row, 0, len(participants))
	for _, p := range participants {
		row := Row{
			StudentID: p.StudentID,
			FullName:  p.FullName,
			Email:     p.Email,
			Status:    p.Status,
			TimeIn:    "-",
			TimeOut:   "-",
			TotalLogs: len(p.Logs),
		}

		for _, l := range p.Logs {
			if strings.Contains(strings.ToLower(l.Type), "in") {
				row.TimeIn = formatTime(l.Time)
				break
			}
		}
		for i := len(p.Logs) - 1; i >= 0; i-- {
			t := strings.ToLower(p.Logs[i].Type)
			if strings.Contains(t, "out") || strings.Contains(t, "checkout") {
				row.TimeOut = formatTime(p.Logs[i].Time)
				break
			}
		}

		rows = append(rows, row)
	}
	return rows
}

// WriteCSV отдаёт отчёт в CSV с фиксированной строкой заголовков.
func WriteCSV(rows []Row) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, r := range rows {
		rec := []string{
			r.StudentID,
			r.FullName,
			r.Email,
			string(r.Status),
			r.TimeIn,
			r.TimeOut,
			strconv.Itoa(r.TotalLogs),
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339)
}
