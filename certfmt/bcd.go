package certfmt

import "time"

// Date is a calendar date carried in a certificate validity period.
// The zero value means "not set" and encodes as the all-zero sentinel,
// which certificates use for open-ended validity.
//
// No calendar arithmetic is performed anywhere in this package: a date is
// only required to fit the BCD digit widths of the wire format. Stricter
// range checks are opt-in via NewDateStrict.
type Date struct {
	Year  int
	Month int
	Day   int
}

// NewDate validates the permissive digit-width ranges of the wire format:
// year 0-9999, month 1-99, day 1-99. Values such as month=13 are accepted
// and encoded as-is.
func NewDate(year, month, day int) (Date, error) {
	if year < 0 || year > 9999 {
		return Date{}, NewError(KindArgument, "CERT-ARG-002", "year out of range 0-9999")
	}
	if month < 1 || month > 99 {
		return Date{}, NewError(KindArgument, "CERT-ARG-002", "month out of range 1-99")
	}
	if day < 1 || day > 99 {
		return Date{}, NewError(KindArgument, "CERT-ARG-002", "day out of range 1-99")
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// NewDateStrict validates the settings-level ranges: year 1900-2100,
// month 1-12, day 1-31. It still performs no calendar consistency check
// (February 31 passes).
func NewDateStrict(year, month, day int) (Date, error) {
	if year < 1900 || year > 2100 {
		return Date{}, NewError(KindArgument, "CERT-ARG-003", "year out of range 1900-2100")
	}
	if month < 1 || month > 12 {
		return Date{}, NewError(KindArgument, "CERT-ARG-003", "month out of range 1-12")
	}
	if day < 1 || day > 31 {
		return Date{}, NewError(KindArgument, "CERT-ARG-003", "day out of range 1-31")
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// ordinal returns the date as a comparable YYYYMMDD integer.
func (d Date) ordinal() int {
	return d.Year*10000 + d.Month*100 + d.Day
}

// encodeBCD packs the date as 4 bytes of BCD YYYYMMDD. An unset date packs
// as the all-zero open-ended sentinel.
func (d Date) encodeBCD() [DateSize]byte {
	var out [DateSize]byte
	if d.IsZero() {
		return out
	}
	out[0] = bcdByte(d.Year / 100)
	out[1] = bcdByte(d.Year % 100)
	out[2] = bcdByte(d.Month)
	out[3] = bcdByte(d.Day)
	return out
}

func bcdByte(v int) byte {
	return byte(v/10)<<4 | byte(v%10)
}

// decodeBCD is the inverse of encodeBCD. It rejects nibbles that are not
// decimal digits.
func decodeBCD(b [DateSize]byte) (Date, error) {
	if b == [DateSize]byte{} {
		return Date{}, nil
	}
	var digits [8]int
	for i, by := range b {
		hi, lo := int(by>>4), int(by&0x0F)
		if hi > 9 || lo > 9 {
			return Date{}, NewError(KindParse, "CERT-PARSE-004", "date field is not valid BCD")
		}
		digits[2*i] = hi
		digits[2*i+1] = lo
	}
	return Date{
		Year:  digits[0]*1000 + digits[1]*100 + digits[2]*10 + digits[3],
		Month: digits[4]*10 + digits[5],
		Day:   digits[6]*10 + digits[7],
	}, nil
}

// ValidityPeriod bounds the trust window of a certificate. Either bound may
// be unset; a period with both bounds unset is open-ended.
//
// The encoder does not enforce Start <= End; that is the caller's
// responsibility.
type ValidityPeriod struct {
	Start Date
	End   Date
}

// Contains reports whether now falls within the period. Unset bounds do not
// constrain. Bounds are inclusive, at day granularity.
func (p ValidityPeriod) Contains(now time.Time) bool {
	n := now.Year()*10000 + int(now.Month())*100 + now.Day()
	if !p.Start.IsZero() && n < p.Start.ordinal() {
		return false
	}
	if !p.End.IsZero() && n > p.End.ordinal() {
		return false
	}
	return true
}

// Expired reports whether now is strictly after the end bound.
func (p ValidityPeriod) Expired(now time.Time) bool {
	if p.End.IsZero() {
		return false
	}
	n := now.Year()*10000 + int(now.Month())*100 + now.Day()
	return n > p.End.ordinal()
}
