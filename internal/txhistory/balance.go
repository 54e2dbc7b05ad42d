package txhistory

// Balance is an account's STX position. Amounts are microSTX decimal strings
// as reported by the upstream API.
type Balance struct {
	Balance       string
	TotalSent     string
	TotalReceived string
	Locked        string
}
