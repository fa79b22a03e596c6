package model

import (
	"time"
)

type Note struct {
	Id        string    `bson:"_id"`
	UserId    string    `bson:"user_id"`
	Content   string    `bson:"content"`
	CreatedAt time.Time `bson:"created_at"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (Note) CollectionName() string {
	return "notes"
}
