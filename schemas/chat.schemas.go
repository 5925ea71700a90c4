package schemas

// AddMessageSchema struct
type AddMessageSchema struct {
	Body string `validate:"required,max=2000"`
}

// ChatMessageSchema struct
type ChatMessageSchema struct {
	Sender  string
	Body    string
	Created int64
}

// ConversationSchema struct
type ConversationSchema struct {
	PairKey  string
	Created  int64
	Messages []ChatMessageSchema
}
