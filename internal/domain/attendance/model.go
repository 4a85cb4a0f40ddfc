package attendance

import "fmt"

// Absence marks one roster member as unavailable for one match. Guests are
// tracked in their own table and never appear here.
type Absence struct {
	MatchID  string
	MemberID int64
	Note     string
}

func (a Absence) Validate() error {
	if a.MatchID == "" {
		return fmt.Errorf("absence match id is required")
	}
	if a.MemberID <= 0 {
		return fmt.Errorf("absence member id must be greater than zero")
	}
	return nil
}
