package services

import (
	"context"
	"testing"

	"talkboard_server/models"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type putCall struct {
	table string
	item  interface{}
}

type updateCall struct {
	table      string
	expression string
	key        map[string]types.AttributeValue
	values     map[string]types.AttributeValue
}

// fakeStore satisfies MessageStore, ClockStore and DirectoryStore for tests.
// Seeded records live in items keyed by "table/keyValue".
type fakeStore struct {
	items       map[string]map[string]types.AttributeValue
	snapshot    []models.Message
	putCalls    []putCall
	updateCalls []updateCall
}

func newFakeStore() *fakeStore {
	return &fakeStore{items: make(map[string]map[string]types.AttributeValue)}
}

func (f *fakeStore) seed(t *testing.T, table, keyValue string, record interface{}) {
	t.Helper()
	item, err := attributevalue.MarshalMap(record)
	require.NoError(t, err)
	f.items[table+"/"+keyValue] = item
}

func (f *fakeStore) PutItem(_ context.Context, tableName string, item interface{}) error {
	f.putCalls = append(f.putCalls, putCall{table: tableName, item: item})
	return nil
}

func (f *fakeStore) GetItem(_ context.Context, tableName string, key map[string]types.AttributeValue) (map[string]types.AttributeValue, error) {
	var keyValue string
	for _, v := range key {
		keyValue = v.(*types.AttributeValueMemberS).Value
	}
	item, ok := f.items[tableName+"/"+keyValue]
	if !ok {
		return nil, ErrItemNotFound
	}
	return item, nil
}

func (f *fakeStore) UpdateItem(_ context.Context, tableName string, updateExpression string, key map[string]types.AttributeValue, expressionAttributeValues map[string]types.AttributeValue, _ map[string]string) (map[string]types.AttributeValue, error) {
	f.updateCalls = append(f.updateCalls, updateCall{
		table:      tableName,
		expression: updateExpression,
		key:        key,
		values:     expressionAttributeValues,
	})
	return map[string]types.AttributeValue{}, nil
}

func (f *fakeStore) ScanAll(_ context.Context, _ string, result interface{}) error {
	*(result.(*[]models.Message)) = f.snapshot
	return nil
}

type fakeNotifier struct {
	snapshots [][]models.Message
}

func (f *fakeNotifier) NotifySnapshot(snapshot []models.Message) {
	f.snapshots = append(f.snapshots, snapshot)
}

var testAuthor = models.Identity{
	ID:          "user-1",
	Email:       "author@example.com",
	DisplayName: "Author One",
	PhotoURL:    "https://photos.example.com/u1.png",
}

func TestBoardService_CreatePost(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := &BoardService{Dynamo: store, Notifier: notifier}

	msg, err := svc.CreatePost(context.Background(), "hello ward", "greetings", models.Ward1st, testAuthor)
	require.NoError(t, err)

	assert.NotEmpty(t, msg.ID)
	assert.NotEmpty(t, msg.CreatedAt)
	assert.Equal(t, "hello ward", msg.Text)
	assert.Equal(t, "greetings", msg.Title)
	assert.Equal(t, models.Ward1st, msg.Ward)
	assert.Equal(t, testAuthor.ID, msg.AuthorID)
	assert.Equal(t, testAuthor.DisplayName, msg.AuthorName)
	assert.Equal(t, 0, msg.LikeCount)
	assert.False(t, msg.IsDeleted)
	assert.Nil(t, msg.ParentID)

	require.Len(t, store.putCalls, 1)
	assert.Equal(t, models.MessagesTable, store.putCalls[0].table)
	assert.Len(t, notifier.snapshots, 1)
}

func TestBoardService_CreatePost_EmptyTextIssuesNoStoreCall(t *testing.T) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	svc := &BoardService{Dynamo: store, Notifier: notifier}

	_, err := svc.CreatePost(context.Background(), "   ", "title", models.Ward1st, testAuthor)
	assert.ErrorIs(t, err, ErrEmptyText)

	assert.Empty(t, store.putCalls)
	assert.Empty(t, notifier.snapshots)
}

func TestBoardService_CreateReply(t *testing.T) {
	store := newFakeStore()
	svc := &BoardService{Dynamo: store}

	msg, err := svc.CreateReply(context.Background(), "parent-1", "a reply", testAuthor, false)
	require.NoError(t, err)

	require.NotNil(t, msg.ParentID)
	assert.Equal(t, "parent-1", *msg.ParentID)
	assert.Empty(t, msg.Title)
	assert.Empty(t, msg.Ward)
	require.Len(t, store.putCalls, 1)
}

func TestBoardService_CreateReply_BlankText(t *testing.T) {
	store := newFakeStore()
	svc := &BoardService{Dynamo: store}

	_, err := svc.CreateReply(context.Background(), "parent-1", "", testAuthor, false)
	assert.ErrorIs(t, err, ErrEmptyText)
	assert.Empty(t, store.putCalls)

	// Blank replies go through when explicitly allowed
	_, err = svc.CreateReply(context.Background(), "parent-1", "", testAuthor, true)
	require.NoError(t, err)
	assert.Len(t, store.putCalls, 1)
}

func TestBoardService_LikeMessage_PatchesObservedCountPlusOne(t *testing.T) {
	store := newFakeStore()
	svc := &BoardService{Dynamo: store}

	err := svc.LikeMessage(context.Background(), "m1", 3)
	require.NoError(t, err)

	require.Len(t, store.updateCalls, 1)
	call := store.updateCalls[0]
	assert.Equal(t, models.MessagesTable, call.table)
	assert.Equal(t, "SET likeCount = :count", call.expression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "m1"}, call.key["id"])
	assert.Equal(t, &types.AttributeValueMemberN{Value: "4"}, call.values[":count"])
}

func TestBoardService_DeleteMessage(t *testing.T) {
	store := newFakeStore()
	store.seed(t, models.MessagesTable, "m1", models.Message{ID: "m1", AuthorID: testAuthor.ID, Text: "bye"})
	svc := &BoardService{Dynamo: store}

	err := svc.DeleteMessage(context.Background(), "m1", testAuthor)
	require.NoError(t, err)

	require.Len(t, store.updateCalls, 1)
	call := store.updateCalls[0]
	assert.Equal(t, "SET isDeleted = :true", call.expression)
	assert.Equal(t, &types.AttributeValueMemberBOOL{Value: true}, call.values[":true"])
}

func TestBoardService_DeleteMessage_RejectsNonAuthor(t *testing.T) {
	store := newFakeStore()
	store.seed(t, models.MessagesTable, "m1", models.Message{ID: "m1", AuthorID: "someone-else"})
	svc := &BoardService{Dynamo: store}

	err := svc.DeleteMessage(context.Background(), "m1", testAuthor)
	assert.ErrorIs(t, err, ErrNotAuthor)
	assert.Empty(t, store.updateCalls)
}

func TestBoardService_DeleteMessage_NotFound(t *testing.T) {
	store := newFakeStore()
	svc := &BoardService{Dynamo: store}

	err := svc.DeleteMessage(context.Background(), "missing", testAuthor)
	assert.ErrorIs(t, err, ErrMessageNotFound)
	assert.Empty(t, store.updateCalls)
}

func TestBoardService_GetBoard(t *testing.T) {
	store := newFakeStore()
	store.snapshot = []models.Message{
		root("a", models.Ward1st, "2025-02-01T10:00:00Z"),
		root("b", models.Ward2nd, "2025-01-01T10:00:00Z"),
		reply("c", "a", "2025-03-01T10:00:00Z"),
	}
	svc := &BoardService{Dynamo: store}

	board, err := svc.GetBoard(context.Background(), models.Ward1st)
	require.NoError(t, err)

	require.Len(t, board.TopLevel, 1)
	assert.Equal(t, "a", board.TopLevel[0].ID)
	require.Len(t, board.RepliesByParent["a"], 1)
}

func TestBoardService_GetThread(t *testing.T) {
	store := newFakeStore()
	store.seed(t, models.MessagesTable, "a", models.Message{ID: "a", Ward: models.Ward1st, Text: "root"})
	store.snapshot = []models.Message{
		root("a", models.Ward1st, "2025-02-01T10:00:00Z"),
		reply("c", "a", "2025-03-01T10:00:00Z"),
	}
	svc := &BoardService{Dynamo: store}

	rootMsg, replies, err := svc.GetThread(context.Background(), "a")
	require.NoError(t, err)
	assert.Equal(t, "a", rootMsg.ID)
	require.Len(t, replies, 1)
	assert.Equal(t, "c", replies[0].ID)

	_, _, err = svc.GetThread(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrMessageNotFound)
}
