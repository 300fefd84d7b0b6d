package db

import (
	"database/sql"
	"fmt"
)

// demo data for a freshly initialized database. Every seeded account shares
// the password hash passed to Seed.
var demoUsers = []struct {
	name, email, phone string
}{
	{"Rahul Sharma", "rahul.sharma@example.com", "9876543210"},
	{"Priya Verma", "priya.verma@example.com", "8765432109"},
	{"Amit Kumar", "amit.kumar@example.com", "9123456780"},
	{"Sneha Singh", "sneha.singh@example.com", "9988776655"},
	{"Rohit Patel", "rohit.patel@example.com", "9090909090"},
}

var demoItems = []struct {
	title, description, category string
	status, date, location       string
	userID                       int64
}{
	{"Black Wallet", "Leather wallet with some cash and ID cards", "Accessories", "lost", "2025-10-01", "Mumbai Central Station", 1},
	{"iPhone 14", "White iPhone with transparent case", "Electronics", "lost", "2025-09-20", "Pune Bus Stand", 2},
	{"Golden Bracelet", "Small gold bracelet found near park bench", "Jewellery", "found", "2025-10-10", "Hyderabad City Park", 3},
	{"Backpack", "Blue backpack containing books and laptop", "Bags", "lost", "2025-10-15", "Delhi Metro Station", 4},
	{"Wrist Watch", "Silver Titan wrist watch found in cafeteria", "Accessories", "found", "2025-10-05", "Bangalore Cafe", 5},
}

var demoClaims = []struct {
	itemID, claimantID int64
	message, status    string
}{
	{3, 1, "This bracelet looks like the one I lost last week.", "pending"},
	{5, 2, "I think this watch belongs to me, can you please verify?", "pending"},
	{1, 4, "I found a similar wallet nearby, could it be mine?", "approved"},
	{2, 5, "That iPhone seems to be mine. Can I confirm via IMEI?", "pending"},
	{4, 3, "This backpack matches the one I saw near the metro.", "rejected"},
}

var demoMessages = []struct {
	claimID, senderID int64
	body              string
}{
	{1, 1, "Hello, I lost a bracelet like this. Can I describe it?"},
	{1, 3, "Sure, please tell me the design details."},
	{2, 2, "Can you check if the back of the watch has PV engraved?"},
	{2, 5, "Yes, it does! It must be yours."},
	{4, 5, "I can share the IMEI number if needed to confirm ownership."},
}

// Seed inserts demo users, items, claims and messages into an empty
// database. passwordHash is used for every demo account.
func Seed(db *sql.DB, passwordHash string) error {
	for _, u := range demoUsers {
		if _, err := db.Exec(
			`INSERT INTO users (name, email, phone, password_hash) VALUES (?, ?, ?, ?)`,
			u.name, u.email, u.phone, passwordHash,
		); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.email, err)
		}
	}

	for _, it := range demoItems {
		if _, err := db.Exec(
			`INSERT INTO items (title, description, category, status, date_reported, location, user_id)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			it.title, it.description, it.category, it.status, it.date, it.location, it.userID,
		); err != nil {
			return fmt.Errorf("seeding item %s: %w", it.title, err)
		}
	}

	for _, c := range demoClaims {
		if _, err := db.Exec(
			`INSERT INTO claims (item_id, claimant_id, message, status) VALUES (?, ?, ?, ?)`,
			c.itemID, c.claimantID, c.message, c.status,
		); err != nil {
			return fmt.Errorf("seeding claim for item %d: %w", c.itemID, err)
		}
	}

	for _, m := range demoMessages {
		if _, err := db.Exec(
			`INSERT INTO messages (claim_id, sender_id, body) VALUES (?, ?, ?)`,
			m.claimID, m.senderID, m.body,
		); err != nil {
			return fmt.Errorf("seeding message on claim %d: %w", m.claimID, err)
		}
	}

	return nil
}
