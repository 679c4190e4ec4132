package console

// EstimateCrackTime maps password length to a coarse human label. This is a
// local display heuristic only; the real scoring happens server-side.
func EstimateCrackTime(password string) string {
	if password == "" {
		return "Instant"
	}
	switch n := len(password); {
	case n < 6:
		return "<1 second"
	case n < 8:
		return "<1 minute"
	case n < 10:
		return "<1 hour"
	case n < 12:
		return "<1 day"
	case n < 14:
		return "<1 year"
	default:
		return ">100 years"
	}
}
