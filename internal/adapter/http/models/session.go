package models

type SessionStatusResponse struct {
	Username         string `json:"username"`
	RemainingSeconds int    `json:"remainingSeconds"`
	Clock            string `json:"clock"`
	Sorted           bool   `json:"sorted"`
}
