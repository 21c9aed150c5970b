package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"talkboard_server/models"
	"talkboard_server/utils"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
)

var (
	// ErrEmptyText rejects posts and replies with a blank body.
	ErrEmptyText = errors.New("text must not be empty")
	// ErrMessageNotFound is returned when the target message id has no record.
	ErrMessageNotFound = errors.New("message not found")
	// ErrNotAuthor rejects deletes issued by anyone but the stored author.
	ErrNotAuthor = errors.New("only the author can delete a message")
)

// MessageStore is the slice of the document store the board needs: append,
// read one, patch, and full-snapshot read. *DynamoService satisfies it.
type MessageStore interface {
	PutItem(ctx context.Context, tableName string, item interface{}) error
	GetItem(ctx context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error)
	UpdateItem(ctx context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, expressionAttributeNames map[string]string) (map[string]types.AttributeValue, error)
	ScanAll(ctx context.Context, tableName string, result interface{}) error
}

// SnapshotNotifier receives the full message snapshot after every successful
// mutation, playing the part of the live feed toward connected clients.
type SnapshotNotifier interface {
	NotifySnapshot(snapshot []models.Message)
}

// BoardService translates board mutation intents into store writes and keeps
// the live feed fed. The store is the only source of truth: nothing written
// here is treated as applied until the next snapshot reflects it.
type BoardService struct {
	Dynamo   MessageStore
	Notifier SnapshotNotifier
}

// LoadSnapshot reads the full, unordered message collection.
func (s *BoardService) LoadSnapshot(ctx context.Context) ([]models.Message, error) {
	var snapshot []models.Message
	if err := s.Dynamo.ScanAll(ctx, models.MessagesTable, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to load message snapshot: %w", err)
	}
	return snapshot, nil
}

// GetBoard loads the snapshot, recomputes the projection and renders it for
// the selected ward.
func (s *BoardService) GetBoard(ctx context.Context, ward string) (RenderedBoard, error) {
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return RenderedBoard{}, err
	}
	return Recompute(snapshot).Render(ward), nil
}

// GetThread returns one root message and its rendered replies. The root is
// returned as stored, deleted or not; its replies are render-filtered.
func (s *BoardService) GetThread(ctx context.Context, id string) (models.Message, []models.Message, error) {
	item, err := s.Dynamo.GetItem(ctx, models.MessagesTable, messageKey(id))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return models.Message{}, nil, ErrMessageNotFound
		}
		return models.Message{}, nil, fmt.Errorf("failed to fetch message %s: %w", id, err)
	}

	root := messageFromItem(item)

	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		return models.Message{}, nil, err
	}
	return root, Recompute(snapshot).Replies(id), nil
}

// CreatePost appends a new top-level message. A whitespace-only body is a
// local validation failure: no store call is issued.
func (s *BoardService) CreatePost(ctx context.Context, text, title, ward string, author models.Identity) (models.Message, error) {
	if strings.TrimSpace(text) == "" {
		return models.Message{}, ErrEmptyText
	}

	msg := models.NewRoot(text, title, ward, author)
	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, msg); err != nil {
		return models.Message{}, fmt.Errorf("failed to store post: %w", err)
	}

	log.Printf("📝 Post %s created in ward %s by %s", msg.ID, ward, author.DisplayName)
	s.notify(ctx)
	return msg, nil
}

// CreateReply appends a reply under parentID. A blank body is rejected unless
// the caller explicitly allows it; the board screen sends allowBlank on the
// reply form, matching its submit behavior.
func (s *BoardService) CreateReply(ctx context.Context, parentID, text string, author models.Identity, allowBlank bool) (models.Message, error) {
	if strings.TrimSpace(text) == "" && !allowBlank {
		return models.Message{}, ErrEmptyText
	}

	msg := models.NewReply(parentID, text, author)
	msg.ID = uuid.New().String()
	msg.CreatedAt = time.Now().UTC().Format(time.RFC3339Nano)

	if err := s.Dynamo.PutItem(ctx, models.MessagesTable, msg); err != nil {
		return models.Message{}, fmt.Errorf("failed to store reply: %w", err)
	}

	log.Printf("💬 Reply %s created under %s by %s", msg.ID, parentID, author.DisplayName)
	s.notify(ctx)
	return msg, nil
}

// LikeMessage patches likeCount to the caller's observed count plus one.
// This is a blind write of a client-observed value, not an atomic increment:
// two likers reading the same stale count collapse into one. Kept as-is; a
// server-side "ADD likeCount :one" would close the race.
func (s *BoardService) LikeMessage(ctx context.Context, id string, currentLikeCount int) error {
	if currentLikeCount < 0 {
		currentLikeCount = 0
	}

	updateExpression := "SET likeCount = :count"
	expressionValues := map[string]types.AttributeValue{
		":count": &types.AttributeValueMemberN{Value: strconv.Itoa(currentLikeCount + 1)},
	}

	_, err := s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, messageKey(id), expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to like message %s: %w", id, err)
	}

	s.notify(ctx)
	return nil
}

// DeleteMessage soft-deletes a message after checking that the caller is its
// author. The check compares the immutable author id captured at post time,
// not the display name. The tombstone stays in the store; there is no
// undelete.
func (s *BoardService) DeleteMessage(ctx context.Context, id string, caller models.Identity) error {
	item, err := s.Dynamo.GetItem(ctx, models.MessagesTable, messageKey(id))
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			return ErrMessageNotFound
		}
		return fmt.Errorf("failed to fetch message %s: %w", id, err)
	}

	if utils.ExtractString(item, "authorId") != caller.ID {
		return ErrNotAuthor
	}

	updateExpression := "SET isDeleted = :true"
	expressionValues := map[string]types.AttributeValue{
		":true": &types.AttributeValueMemberBOOL{Value: true},
	}

	_, err = s.Dynamo.UpdateItem(ctx, models.MessagesTable, updateExpression, messageKey(id), expressionValues, nil)
	if err != nil {
		return fmt.Errorf("failed to delete message %s: %w", id, err)
	}

	log.Printf("🗑️ Message %s soft-deleted by %s", id, caller.DisplayName)
	s.notify(ctx)
	return nil
}

// notify re-reads the snapshot and hands it to the feed. Mutations are
// fire-and-forget from the caller's perspective: a failed notification is
// logged, never surfaced.
func (s *BoardService) notify(ctx context.Context) {
	if s.Notifier == nil {
		return
	}
	snapshot, err := s.LoadSnapshot(ctx)
	if err != nil {
		log.Printf("❌ Failed to load snapshot for feed notification: %v", err)
		return
	}
	s.Notifier.NotifySnapshot(snapshot)
}

func messageKey(id string) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: id},
	}
}

func messageFromItem(item map[string]types.AttributeValue) models.Message {
	msg := models.Message{
		ID:          utils.ExtractString(item, "id"),
		Text:        utils.ExtractString(item, "text"),
		Title:       utils.ExtractString(item, "title"),
		Ward:        utils.ExtractString(item, "ward"),
		AuthorID:    utils.ExtractString(item, "authorId"),
		AuthorName:  utils.ExtractString(item, "authorName"),
		AuthorPhoto: utils.ExtractString(item, "authorPhoto"),
		CreatedAt:   utils.ExtractString(item, "createdAt"),
		LikeCount:   utils.ExtractInt(item, "likeCount"),
		IsDeleted:   utils.ExtractBool(item, "isDeleted"),
	}
	if parentID := utils.ExtractString(item, "parentId"); parentID != "" {
		msg.ParentID = &parentID
	}
	return msg
}
