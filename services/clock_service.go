package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"talkboard_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var (
	// ErrEmptyIdentifier rejects scans that are blank after trimming.
	ErrEmptyIdentifier = errors.New("identifier must not be empty")
	// ErrUnknownStaff is returned when the identifier has no directory record.
	ErrUnknownStaff = errors.New("staff not found")
	// ErrUnauthorizedVerifier rejects sessions not allowed to record clockings.
	ErrUnauthorizedVerifier = errors.New("account is not allowed to verify clockings")
	// ErrInvalidDirection rejects directions other than "in" and "out".
	ErrInvalidDirection = errors.New("direction must be \"in\" or \"out\"")
)

// ClockStore is the slice of the document store the clock screen needs.
// *DynamoService satisfies it.
type ClockStore interface {
	PutItem(ctx context.Context, tableName string, item interface{}) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
}

// ClockService records attendance events from scanned staff identifiers.
// One directory read, one event append. No dedup and no in/out alternation:
// whatever is scanned is what gets recorded.
type ClockService struct {
	Dynamo ClockStore
}

// RecordClock validates a scanned identifier against the staff directory and
// appends an attendance event tagged with the verifying session's email.
func (s *ClockService) RecordClock(ctx context.Context, identifier, direction string, verifier models.Identity) (models.ClockEvent, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" {
		return models.ClockEvent{}, ErrEmptyIdentifier
	}
	if !models.IsValidClockDirection(direction) {
		return models.ClockEvent{}, ErrInvalidDirection
	}

	allowed, err := s.lookupVerifier(ctx, verifier.Email)
	if err != nil {
		return models.ClockEvent{}, err
	}
	if !allowed.CanVerifyClock {
		return models.ClockEvent{}, ErrUnauthorizedVerifier
	}

	staff, err := s.lookupStaff(ctx, identifier)
	if err != nil {
		return models.ClockEvent{}, err
	}

	event := models.ClockEvent{
		ID:         uuid.New().String(),
		StaffID:    staff.StaffID,
		StaffName:  staff.Name,
		Direction:  direction,
		ClockedAt:  time.Now().UTC().Format(time.RFC3339Nano),
		VerifiedBy: verifier.Email,
		Source:     models.ClockSourceScanned,
	}

	if err := s.Dynamo.PutItem(ctx, models.ClockingsTable, event); err != nil {
		return models.ClockEvent{}, fmt.Errorf("failed to store clock event: %w", err)
	}

	log.Printf("⏱️ Clock-%s recorded for %s (verified by %s)", direction, staff.Name, verifier.Email)
	return event, nil
}

func (s *ClockService) lookupVerifier(ctx context.Context, email string) (models.AllowedUser, error) {
	key := map[string]types.AttributeValue{
		"email": &types.AttributeValueMemberS{Value: email},
	}
	item, err := s.Dynamo.GetItem(ctx, models.AllowedUsersTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.AllowedUser{}, ErrUnauthorizedVerifier
		}
		return models.AllowedUser{}, fmt.Errorf("failed to look up verifier %s: %w", email, err)
	}

	var allowed models.AllowedUser
	if err := attributevalue.UnmarshalMap(item, &allowed); err != nil {
		return models.AllowedUser{}, fmt.Errorf("failed to parse verifier record: %w", err)
	}
	return allowed, nil
}

func (s *ClockService) lookupStaff(ctx context.Context, identifier string) (models.StaffRecord, error) {
	key := map[string]types.AttributeValue{
		"staffId": &types.AttributeValueMemberS{Value: identifier},
	}
	item, err := s.Dynamo.GetItem(ctx, models.StaffTable, key)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.StaffRecord{}, ErrUnknownStaff
		}
		return models.StaffRecord{}, fmt.Errorf("failed to look up staff %s: %w", identifier, err)
	}

	var staff models.StaffRecord
	if err := attributevalue.UnmarshalMap(item, &staff); err != nil {
		return models.StaffRecord{}, fmt.Errorf("failed to parse staff record: %w", err)
	}
	return staff, nil
}
