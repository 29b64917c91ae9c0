package numbering

import (
	"fmt"
	"time"

	ptime "github.com/yaa110/go-persian-calendar"
)

// DateCoder derives the six-digit date code used in invoice numbers.
type DateCoder interface {
	DateCode(t time.Time) string
}

// PersianCoder derives the date code from the Persian (Jalali) calendar,
// truncating the year to two digits. If the conversion fails for any reason
// it falls back to the Gregorian calendar instead of propagating an error;
// invoice numbering must never fail.
type PersianCoder struct{}

func (PersianCoder) DateCode(t time.Time) (code string) {
	defer func() {
		if r := recover(); r != nil {
			code = GregorianCoder{}.DateCode(t)
		}
	}()
	pt := ptime.New(t)
	return fmt.Sprintf("%02d%02d%02d", pt.Year()%100, int(pt.Month()), pt.Day())
}

// GregorianCoder is the fallback date code derivation.
type GregorianCoder struct{}

func (GregorianCoder) DateCode(t time.Time) string {
	return fmt.Sprintf("%02d%02d%02d", t.Year()%100, int(t.Month()), t.Day())
}

// DisplayDate renders the Persian calendar date for invoice headers and
// record snapshots ("1404/06/10"). Falls back to Gregorian on failure.
func DisplayDate(t time.Time) (s string) {
	defer func() {
		if r := recover(); r != nil {
			s = t.Format("2006/01/02")
		}
	}()
	return ptime.New(t).Format("yyyy/MM/dd")
}
