package task

import "time"

const TypePasswordReset = "PasswordResetTask"

type PasswordResetTask struct {
	Email             string    `json:"email"`
	UserName          string    `json:"user_name"`
	TemporaryPassword string    `json:"temporary_password"`
	RequestedAt       time.Time `json:"requested_at"`
	RetryCount        int       `json:"retry_count"`
}

func (t *PasswordResetTask) TaskType() string {
	return TypePasswordReset
}

func (t *PasswordResetTask) TaskValue() ([]byte, error) {
	return DefaultTaskValue(t)
}
