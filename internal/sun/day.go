package sun

import "time"

// UTCDay returns midnight UTC of the UTC calendar day containing t.
func UTCDay(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// LocalDay maps a local instant to the UTC day whose events belong to that
// local date. The zone offset is added before flooring to days, so a local
// evening still selects the local calendar day rather than the next UTC
// day. Offsets beyond +12h are wrapped to their negative equivalent.
func LocalDay(t time.Time) time.Time {
	_, secs := t.Zone()
	offset := time.Duration(secs) * time.Second
	if offset > 12*time.Hour {
		offset -= 24 * time.Hour
	}
	return UTCDay(t.UTC().Add(offset))
}

// Days returns count consecutive UTC days starting with the day of start.
func Days(start time.Time, count int) []time.Time {
	if count <= 0 {
		return nil
	}
	first := UTCDay(start)
	out := make([]time.Time, count)
	for i := range out {
		out[i] = first.AddDate(0, 0, i)
	}
	return out
}
