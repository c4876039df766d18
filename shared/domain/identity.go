package domain

// Identity is the anonymous, device-local triple a post or reaction displays
// as. There is no account behind it; uniqueness is not enforced and collisions
// are tolerated (anonymity over uniqueness).
type Identity struct {
	Id       string `json:"id"`
	Nickname string `json:"nickname"`
	Color    string `json:"color"`
}

// Zero reports whether any of the three fields is missing. A partial identity
// never enters the system: absence of one field forces regeneration of all three.
func (i Identity) Zero() bool {
	return i.Id == "" || i.Nickname == "" || i.Color == ""
}
