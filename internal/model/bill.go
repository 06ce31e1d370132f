package model

import (
	"strconv"
)

// BillRecord is a single piece of legislation as seen by the client.
// The same id refers to the same bill across the remote service, the
// on-device cache and the bundled fixture.
type BillRecord struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Summary        string   `json:"summary"`
	FullText       *string  `json:"fullText"`
	Sponsor        string   `json:"sponsor"`
	RelevanceScore *float64 `json:"partyScore"` // sign encodes party alignment
	IsLiked        bool     `json:"isLiked"`
	IsDisliked     bool     `json:"isDisliked"`
	IsSubscribed   bool     `json:"isSubscribed"`
	DateIntroduced *Date    `json:"dateIntroduced"`
	LastUpdated    *Date    `json:"lastUpdated"`
	BillNumber     *string  `json:"billNumber"`
	BillType       *string  `json:"billType"`
	Congress       *string  `json:"congress"`
	PolicyArea     *string  `json:"policyArea"`
	LatestAction   *string  `json:"latestAction"`
}

// Like moves the bill into the Liked state. Dislike is always cleared.
func (b *BillRecord) Like() {
	b.IsLiked = true
	b.IsDisliked = false
}

// Dislike moves the bill into the Disliked state. Like is always cleared.
func (b *BillRecord) Dislike() {
	b.IsLiked = false
	b.IsDisliked = true
}

// LastUpdatedOrZero returns the update time, or the zero time when absent.
// The zero time sorts before every real date.
func (b BillRecord) LastUpdatedOrZero() Date {
	if b.LastUpdated == nil {
		return Date{}
	}
	return *b.LastUpdated
}

// RecommendedBill is the scored shape returned by the recommendation endpoint.
type RecommendedBill struct {
	ID           string  `json:"id"`
	Score        float64 `json:"score"`
	Title        string  `json:"title"`
	BillNumber   string  `json:"bill_number"`
	BillType     string  `json:"bill_type"`
	Sponsor      string  `json:"sponsor"`
	Congress     float64 `json:"congress"`
	PolicyArea   string  `json:"policy_area"`
	LatestAction string  `json:"latest_action"`
	Summary      string  `json:"summary"`
}

// ToBill maps a recommendation onto a BillRecord with neutral local state.
func (r RecommendedBill) ToBill() BillRecord {
	score := r.Score
	congress := strconv.FormatFloat(r.Congress, 'f', -1, 64)
	return BillRecord{
		ID:             r.ID,
		Title:          r.Title,
		Summary:        r.Summary,
		Sponsor:        r.Sponsor,
		RelevanceScore: &score,
		BillNumber:     stringPtr(r.BillNumber),
		BillType:       stringPtr(r.BillType),
		Congress:       &congress,
		PolicyArea:     stringPtr(r.PolicyArea),
		LatestAction:   stringPtr(r.LatestAction),
	}
}

// FindBill returns the index of the bill with the given id, or -1.
func FindBill(bills []BillRecord, id string) int {
	for i := range bills {
		if bills[i].ID == id {
			return i
		}
	}
	return -1
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
