package models

// Message is a single board entry. A nil/empty parentId marks a top-level
// thread root; a non-empty parentId marks a one-level reply to a root. Replies
// never nest further and carry an empty title and ward by convention.
type Message struct {
	ID          string  `dynamodbav:"id" json:"id"`
	Text        string  `dynamodbav:"text" json:"text"`
	Title       string  `dynamodbav:"title" json:"title"`
	Ward        string  `dynamodbav:"ward" json:"ward"`
	AuthorID    string  `dynamodbav:"authorId" json:"authorId"`
	AuthorName  string  `dynamodbav:"authorName" json:"authorName"`
	AuthorPhoto string  `dynamodbav:"authorPhoto" json:"authorPhoto"`
	CreatedAt   string  `dynamodbav:"createdAt" json:"createdAt"`
	LikeCount   int     `dynamodbav:"likeCount" json:"likeCount"`
	IsDeleted   bool    `dynamodbav:"isDeleted" json:"isDeleted"`
	ParentID    *string `dynamodbav:"parentId,omitempty" json:"parentId,omitempty"`
}

// MessagesTable is the DynamoDB table name for board messages
const MessagesTable = "Messages"

// IsReply reports whether the message is a reply to a thread root.
func (m Message) IsReply() bool {
	return m.ParentID != nil && *m.ParentID != ""
}

// NewRoot builds a top-level message with the author identity snapshot taken
// at post time. The id and createdAt are assigned by the service on append.
func NewRoot(text, title, ward string, author Identity) Message {
	return Message{
		Text:        text,
		Title:       title,
		Ward:        ward,
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName,
		AuthorPhoto: author.PhotoURL,
		LikeCount:   0,
		IsDeleted:   false,
	}
}

// NewReply builds a reply to the given root. Title and ward stay empty on
// replies.
func NewReply(parentID, text string, author Identity) Message {
	return Message{
		Text:        text,
		Title:       "",
		Ward:        "",
		AuthorID:    author.ID,
		AuthorName:  author.DisplayName,
		AuthorPhoto: author.PhotoURL,
		LikeCount:   0,
		IsDeleted:   false,
		ParentID:    &parentID,
	}
}
