package models

import "time"

type User struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	IsActive     bool      `db:"is_active"`
	IsAdmin      bool      `db:"is_admin"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

type Campaign struct {
	ID              string     `db:"id"`
	Name            string     `db:"name"`
	Organizer       string     `db:"organizer"`
	Description     string     `db:"description"`
	Category        string     `db:"category"`
	TargetAmount    float64    `db:"target_amount"`
	CollectedAmount float64    `db:"collected_amount"`
	StartDate       *time.Time `db:"start_date"`
	EndDate         *time.Time `db:"end_date"`
	IsActive        bool       `db:"is_active"`
	Images          []byte     `db:"images"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

type Donation struct {
	ID         string    `db:"id"`
	Amount     float64   `db:"amount"`
	CampaignID *string   `db:"campaign_id"`
	UserID     *string   `db:"user_id"`
	Message    *string   `db:"message"`
	PaymentID  string    `db:"payment_id"`
	CreatedAt  time.Time `db:"created_at"`
}

type ServerMetricSample struct {
	ID                string    `db:"id"`
	CapturedAt        time.Time `db:"captured_at"`
	HeapUsedBytes     int64     `db:"heap_used_bytes"`
	SystemMemoryTotal int64     `db:"system_memory_total_bytes"`
	SystemMemoryUsed  int64     `db:"system_memory_used_bytes"`
	DiskTotalBytes    int64     `db:"disk_total_bytes"`
	DiskUsedBytes     int64     `db:"disk_used_bytes"`
	ProcessCpuLoad    float64   `db:"process_cpu_load"`
	SystemCpuLoad     float64   `db:"system_cpu_load"`
}
