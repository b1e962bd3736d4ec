package repository

import "github.com/google/uuid"

// validID filters identifiers before they reach a uuid column; postgres
// rejects malformed literals with an error rather than an empty result.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
