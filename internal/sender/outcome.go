package sender

import "fmt"

// Outcome is the tagged result of one logical send. Exactly one of the two
// shapes is populated: a delivery (Delivered true, SID/Status/Price set) or
// a classified failure (Delivered false, Cause/Code/Message/Hint set).
// Attempts counts the remote calls actually issued.
type Outcome struct {
	Delivered bool
	Attempts  int

	// Delivery fields.
	SID       string
	Status    string
	Price     string
	PriceUnit string
	Segments  int

	// Failure fields.
	Cause   Cause
	Code    int
	Message string
	Hint    string
}

// Summary renders a one-line human readable description of the outcome.
func (o *Outcome) Summary() string {
	if o.Delivered {
		return fmt.Sprintf("delivered (sid=%s status=%s attempts=%d)", o.SID, o.Status, o.Attempts)
	}
	return fmt.Sprintf("failed (cause=%s code=%d attempts=%d): %s", o.Cause, o.Code, o.Attempts, o.Message)
}
