package service

import "time"

// Clock abstracts the current time so that window checks can be tested.
type Clock interface {
	Now() time.Time
}
