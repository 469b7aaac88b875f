package models

import "time"

// SavedGrant is the bookmark relation between a user and a grant.
// At most one row exists per (userId, grantId) pair; the store enforces
// this with a unique compound index.
type SavedGrant struct {
	ID        string    `bson:"id" json:"id"`
	UserID    string    `bson:"userId" json:"userId"`
	GrantID   string    `bson:"grantId" json:"grantId"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}

// SavedGrantEntry is a saved-grant row joined with its grant record,
// as returned by the saved listing.
type SavedGrantEntry struct {
	SavedGrant `bson:",inline"`
	Grant      *Grant `bson:"grant" json:"grant"`
}
