package models

import "fmt"

const (
	MinRating = 1
	MaxRating = 5
)

// Rating is a user's star rating of the service ("calification" on the wire)
type Rating struct {
	ID     int `json:"id,omitempty"`
	UserID int `json:"user_id"`
	Rating int `json:"rating"`
}

func (r *Rating) Validate() error {
	if r.Rating < MinRating || r.Rating > MaxRating {
		return fmt.Errorf("rating must be between %d and %d, got %d", MinRating, MaxRating, r.Rating)
	}
	return nil
}

type RatingList struct {
	Ratings []Rating `json:"califications"`
}

// Last returns the most recent rating value, or nil when the list is empty
func (l *RatingList) Last() *int {
	if len(l.Ratings) == 0 {
		return nil
	}
	v := l.Ratings[len(l.Ratings)-1].Rating
	return &v
}
