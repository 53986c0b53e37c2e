package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const LeadStatusNew = "new"

// Lead is a captured quote request. Written once, never updated.
type Lead struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	Email     string             `bson:"email" json:"email"`
	Company   string             `bson:"company,omitempty" json:"company,omitempty"`
	Platform  string             `bson:"platform,omitempty" json:"platform,omitempty"`
	Budget    string             `bson:"budget,omitempty" json:"budget,omitempty"`
	Timeline  string             `bson:"timeline,omitempty" json:"timeline,omitempty"`
	Message   string             `bson:"message,omitempty" json:"message,omitempty"`
	IP        string             `bson:"ip,omitempty" json:"ip,omitempty"`
	UserAgent string             `bson:"user_agent,omitempty" json:"user_agent,omitempty"`
	Browser   string             `bson:"browser,omitempty" json:"browser,omitempty"`
	OS        string             `bson:"os,omitempty" json:"os,omitempty"`
	Device    string             `bson:"device,omitempty" json:"device,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
	Status    string             `bson:"status" json:"status"`
}
