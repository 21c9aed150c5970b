package models

// StaffRecord is a staff directory entry keyed by the identifier printed on
// the badge the clock screen scans.
type StaffRecord struct {
	StaffID string `dynamodbav:"staffId" json:"staffId"`
	Name    string `dynamodbav:"name" json:"name"`
	Ward    string `dynamodbav:"ward" json:"ward"`
}

// StaffTable is the DynamoDB table name for the staff directory
const StaffTable = "Staff"
