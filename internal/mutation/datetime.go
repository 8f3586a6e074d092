package mutation

import "time"

// Date generates a random date between "start" and "end" (year ints,
// defaulting to last-year..this-year), formatted with the Go reference
// layout named by "date_format" (defaulting to "2006-01-02").
func Date(c *Context) (string, error) {
	now := time.Now().UTC()
	startYear := int(c.Int64("start", int64(now.Year()-1)))
	endYear := int(c.Int64("end", int64(now.Year())))
	layout, ok := c.String("date_format")
	if !ok || layout == "" {
		layout = "2006-01-02"
	}

	return withUnique(c, func() (string, error) {
		year := startYear
		if endYear > startYear {
			year += c.Rng.Intn(endYear - startYear + 1)
		}
		month := time.Month(1 + c.Rng.Intn(12))
		maxDay := daysInMonth(year, month)
		day := 1 + c.Rng.Intn(maxDay)
		d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		return d.Format(layout), nil
	})
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
