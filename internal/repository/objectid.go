package repository

import "go.mongodb.org/mongo-driver/bson/primitive"

// parseID converts a hex id taken from a URL. Malformed ids cannot match any
// document, so callers treat ok == false exactly like a missing record.
func parseID(hex string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}
