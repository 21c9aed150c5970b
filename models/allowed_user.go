package models

// AllowedUser is a directory record gating board access by account email.
// CanVerifyClock additionally allows the account to record attendance events
// for scanned staff identifiers.
type AllowedUser struct {
	Email          string `dynamodbav:"email" json:"email"`
	DisplayName    string `dynamodbav:"displayName" json:"displayName"`
	CanVerifyClock bool   `dynamodbav:"canVerifyClock" json:"canVerifyClock"`
}

// AllowedUsersTable is the DynamoDB table name for the access allow-list
const AllowedUsersTable = "AllowedUsers"
