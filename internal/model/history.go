package model

import "time"

// MaxHistory bounds the number of retained history entries.
const MaxHistory = 50

// HistoryRecord notes that a bill was viewed. BillID is not checked against
// the bill store and may outlive the bill it points to.
type HistoryRecord struct {
	ID       string    `json:"id"`
	BillID   string    `json:"billId"`
	ViewedAt time.Time `json:"viewedAt"`
}
