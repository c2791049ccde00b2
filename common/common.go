package common

// Lower returns the side as a lowercase string for reason building
func (s Side) Lower() string {
	b := []byte(s)
	for i := range b {
		if b[i] >= 'A' && b[i] <= 'Z' {
			b[i] += 'a' - 'A'
		}
	}
	return string(b)
}

// String implements the stringer interface
func (s Side) String() string {
	return string(s)
}

// String returns a readable name for an event kind
func (k Kind) String() string {
	switch k {
	case KindMarket:
		return "MARKET"
	case KindSignal:
		return "SIGNAL"
	case KindOrder:
		return "ORDER"
	case KindFill:
		return "FILL"
	}
	return "UNKNOWN"
}
