package backend

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// DateRange is the optional filter of the evaluation export. Both bounds
// are calendar dates as entered in the dashboard (YYYY-MM-DD); empty
// means unbounded.
type DateRange struct {
	Start string
	End   string
}

// Query builds the /export/evaluations query for the given format.
//
// The backend treats end as exclusive, so the selected end date is sent
// as the following day to keep its records in the result. Start is sent
// as entered.
func (r DateRange) Query(format ExportFormat) (url.Values, error) {
	params := url.Values{}
	params.Set("fmt", string(format))

	if start := strings.TrimSpace(r.Start); start != "" {
		if _, err := time.Parse(dateLayout, start); err != nil {
			return nil, fmt.Errorf("invalid start date %q: %w", start, err)
		}
		params.Set("start", start)
	}

	if end := strings.TrimSpace(r.End); end != "" {
		next, err := NextDay(end)
		if err != nil {
			return nil, fmt.Errorf("invalid end date %q: %w", end, err)
		}
		params.Set("end", next)
	}

	return params, nil
}

// NextDay returns the calendar day after date, both as YYYY-MM-DD.
func NextDay(date string) (string, error) {
	d, err := time.Parse(dateLayout, date)
	if err != nil {
		return "", err
	}
	return d.AddDate(0, 0, 1).Format(dateLayout), nil
}
