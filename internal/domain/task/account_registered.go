package task

import "time"

const TypeAccountRegistered = "AccountRegisteredTask"

type AccountRegisteredTask struct {
	UserID       string    `json:"user_id"`
	Email        string    `json:"email"`
	FullName     string    `json:"full_name"`
	RegisteredAt time.Time `json:"registered_at"`
	RetryCount   int       `json:"retry_count"`
}

func (t *AccountRegisteredTask) TaskType() string {
	return TypeAccountRegistered
}

func (t *AccountRegisteredTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
