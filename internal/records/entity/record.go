package entity

// Record is one CSV row. Field order here is the JSON key order.
type Record struct {
	ID    string `csv:"id" json:"id"`
	Name  string `csv:"name" json:"name"`
	Email string `csv:"email" json:"email"`
}
