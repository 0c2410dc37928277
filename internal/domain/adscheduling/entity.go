package adscheduling

import "time"

// Status is the run lifecycle of a schedule:
//
//	Scheduled -> Running -> Completed
//	Scheduled -> Running -> Failed -> (retry) -> Scheduled
//	Scheduled -> Cancelled
//	Scheduled -> Paused -> Scheduled
type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusCancelled Status = "cancelled"
	StatusPaused    Status = "paused"
)

const DefaultMaxRetries = 3

// Schedule binds an ad and one of its time slots to a concrete
// calendar date. RunDate is a plain YYYY-MM-DD string; schedules
// compare dates by equality, never by instant.
//
// The partial unique index on (time_slot_id, run_date) backs the
// conflict check: a second live schedule for the same slot and date
// is rejected by the database even when two transactions pass the
// check concurrently.
type Schedule struct {
	ID            int64      `json:"id" gorm:"column:id;primaryKey"`
	AdID          int64      `json:"ad_id" gorm:"column:ad_id;index"`
	TimeSlotID    int64      `json:"time_slot_id" gorm:"column:time_slot_id;index;uniqueIndex:uq_live_slot_run,where:status = 'scheduled' or status = 'running'"`
	RunDate       string     `json:"run_date" gorm:"column:run_date;index;uniqueIndex:uq_live_slot_run"`
	Status        Status     `json:"status" gorm:"column:status;index"`
	RetryCount    int        `json:"retry_count" gorm:"column:retry_count"`
	MaxRetries    int        `json:"max_retries" gorm:"column:max_retries"`
	FailureReason string     `json:"failure_reason,omitempty" gorm:"column:failure_reason"`
	NextRetryAt   *time.Time `json:"next_retry_at,omitempty" gorm:"column:next_retry_at"`
	CreatedAt     time.Time  `json:"created_at" gorm:"column:created_at"`
	UpdatedAt     time.Time  `json:"updated_at" gorm:"column:updated_at"`
}

func (Schedule) TableName() string { return "ad_schedules" }

// ExecutionLog is an append-only record of an action taken against a
// schedule. Rows are never updated or deleted.
type ExecutionLog struct {
	ID         string         `json:"id" gorm:"column:id;primaryKey"`
	ScheduleID int64          `json:"schedule_id" gorm:"column:schedule_id;index"`
	Action     string         `json:"action" gorm:"column:action"`
	Status     string         `json:"status" gorm:"column:status"`
	Message    string         `json:"message,omitempty" gorm:"column:message"`
	Details    map[string]any `json:"details,omitempty" gorm:"column:details;serializer:json"`
	CreatedAt  time.Time      `json:"created_at" gorm:"column:created_at"`
}

func (ExecutionLog) TableName() string { return "ad_execution_logs" }
