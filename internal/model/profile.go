package model

// UserProfile is the single local user of an installation.
// Friends are owned by the profile and go away with it. Subscriptions only
// reference bills, which outlive the profile.
type UserProfile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Age           int           `json:"age"`
	Location      string        `json:"location"`
	Interests     []string      `json:"interests"`
	Occupation    *string       `json:"occupation"`
	Friends       []UserProfile `json:"friends"`
	Subscriptions []BillRecord  `json:"subscriptions"`
}

// RecommendationRequest is the payload posted to the recommendation endpoint.
type RecommendationRequest struct {
	Name       string   `json:"name"`
	Age        int      `json:"age"`
	Location   string   `json:"location"`
	Interests  []string `json:"interests"`
	Occupation string   `json:"occupation"`
}

// RecommendationRequest builds the recommendation payload for p.
// A missing occupation is sent as "citizen".
func (p UserProfile) RecommendationRequest() RecommendationRequest {
	occupation := "citizen"
	if p.Occupation != nil && *p.Occupation != "" {
		occupation = *p.Occupation
	}
	interests := p.Interests
	if interests == nil {
		interests = []string{}
	}
	return RecommendationRequest{
		Name:       p.Name,
		Age:        p.Age,
		Location:   p.Location,
		Interests:  interests,
		Occupation: occupation,
	}
}

// FindFriend returns the index of the friend with the given id, or -1.
func (p UserProfile) FindFriend(id string) int {
	for i := range p.Friends {
		if p.Friends[i].ID == id {
			return i
		}
	}
	return -1
}
