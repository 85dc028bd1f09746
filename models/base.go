package models

import "github.com/google/uuid"

// assignID gives a record a UUID when the caller did not set one.
func assignID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}
