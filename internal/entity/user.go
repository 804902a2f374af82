package entity

// UserRef is the public projection of a user attached to gig and bid
// output models. Credentials live in the external auth service; only
// the profile columns are stored here.
type UserRef struct {
	Id    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
