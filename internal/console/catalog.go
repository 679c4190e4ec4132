package console

// Severity of a simulated attack event.
type Severity string

const (
	SeverityMedium   Severity = "MEDIUM"
	SeverityHigh     Severity = "HIGH"
	SeverityCritical Severity = "CRITICAL"
)

type attackArchetype struct {
	Type     string
	Origin   string
	Target   string
	Severity Severity
}

// attackCatalog is the fixed pool the attack feed samples from. All of it is
// synthetic display data, unrelated to real security telemetry.
var attackCatalog = []attackArchetype{
	{Type: "Brute Force", Origin: "Shenzhen, CN", Target: "Banking Portal", Severity: SeverityCritical},
	{Type: "Credential Stuffing", Origin: "Moscow, RU", Target: "E-Commerce Site", Severity: SeverityHigh},
	{Type: "Dictionary Attack", Origin: "Lagos, NG", Target: "Email Provider", Severity: SeverityHigh},
	{Type: "Rainbow Table", Origin: "Kyiv, UA", Target: "Gaming Platform", Severity: SeverityMedium},
	{Type: "Password Spraying", Origin: "Sao Paulo, BR", Target: "Corporate VPN", Severity: SeverityCritical},
	{Type: "Brute Force", Origin: "Mumbai, IN", Target: "Cloud Storage", Severity: SeverityMedium},
	{Type: "Credential Stuffing", Origin: "Bucharest, RO", Target: "Streaming Service", Severity: SeverityHigh},
	{Type: "Hybrid Attack", Origin: "Hanoi, VN", Target: "Social Network", Severity: SeverityMedium},
}

type liveCheckSample struct {
	Password string
	Result   string
	Reason   string
	Location string

	// generated entries get a fresh pseudo-random strong password per tick
	// instead of the static literal.
	generated bool
}

var liveCheckCatalog = []liveCheckSample{
	{Password: "123456", Result: "CRITICAL", Reason: "most common password worldwide", Location: "Berlin, DE"},
	{Password: "qwerty2024", Result: "WEAK", Reason: "keyboard walk with year suffix", Location: "Austin, US"},
	{Password: "Summer2025!", Result: "FAIR", Reason: "seasonal pattern, predictable", Location: "London, UK"},
	{Password: "dragonball", Result: "WEAK", Reason: "dictionary words only", Location: "Osaka, JP"},
	{Password: "P@ssw0rd", Result: "CRITICAL", Reason: "trivial leetspeak substitution", Location: "Sydney, AU"},
	{generated: true, Result: "SECURE", Reason: "high entropy, all character classes", Location: "Zurich, CH"},
}

const strongPasswordAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%^&*"

func randomStrongPassword(rng Rand, length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = strongPasswordAlphabet[rng.Intn(len(strongPasswordAlphabet))]
	}
	return string(out)
}
