package entity

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is returned as-is by the listing endpoint, hence the json tags.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Name        string             `bson:"name" json:"name"`
	Category    string             `bson:"category" json:"category"`
	Image       string             `bson:"image" json:"image"`
	Price       float64            `bson:"price" json:"price"`
	Description string             `bson:"description" json:"description"`
}
