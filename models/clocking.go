package models

// ClockEvent is one attendance record. Events are append-only; repeated or
// out-of-order scans are recorded as-is, there is no in/out state machine.
type ClockEvent struct {
	ID         string `dynamodbav:"id" json:"id"`
	StaffID    string `dynamodbav:"staffId" json:"staffId"`
	StaffName  string `dynamodbav:"staffName" json:"staffName"`
	Direction  string `dynamodbav:"direction" json:"direction"`
	ClockedAt  string `dynamodbav:"clockedAt" json:"clockedAt"`
	VerifiedBy string `dynamodbav:"verifiedBy" json:"verifiedBy"`
	Source     string `dynamodbav:"source" json:"source"`
}

// ClockingsTable is the DynamoDB table name for attendance events
const ClockingsTable = "Clockings"
