// Package tier maps cluster indices to tuition-tier labels.
package tier

// Tier is the category reported for a student record.
type Tier int

const (
	Low Tier = iota
	High
	Unresolved
)

var labels = [...]string{
	Low:        "low tuition tier",
	High:       "high tuition tier",
	Unresolved: "needs further interpretation",
}

func (t Tier) String() string {
	if t < Low || t > Unresolved {
		return labels[Unresolved]
	}
	return labels[t]
}

// MarshalText renders the tier label, so JSON encodes a Tier as its label.
func (t Tier) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// Resolve maps a cluster index to a tier. Indices other than 0 and 1 resolve to Unresolved.
func Resolve(cluster int) Tier {
	switch cluster {
	case 0:
		return Low
	case 1:
		return High
	default:
		return Unresolved
	}
}

// Labels returns every label a Tier can render as.
func Labels() []string {
	out := make([]string, len(labels))
	copy(out, labels[:])
	return out
}
