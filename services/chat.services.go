package services

import (
	"AMALGAM_server/errors"
	"AMALGAM_server/global"
	"AMALGAM_server/schemas"
	"AMALGAM_server/social"

	"github.com/gofiber/fiber/v2"
)

// chatPartner decodes the :email route param and checks the caller is friends
// with that account; messaging is only open inside accepted friendships
func chatPartner(c *fiber.Ctx, email string) (string, error) {

	partner, err := relationTarget(c)
	if partner == "" {
		return "", err
	}
	partner = social.NormalizeEmail(partner)

	account, err := global.Store.Account(global.Context, email)
	if err != nil {
		return "", errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	if !social.Contains(account.Friends, partner) {
		return "", errors.HandleInvalidRequestError(c, "Relation", "invalid")
	}
	return partner, nil
}

// conversationMapper maps a conversation record to its response schema
func conversationMapper(conversation *social.Conversation) schemas.ConversationSchema {

	mapped := schemas.ConversationSchema{
		PairKey:  conversation.PairKey,
		Created:  conversation.Created.UnixMilli(),
		Messages: make([]schemas.ChatMessageSchema, 0, len(conversation.Messages)),
	}

	for _, message := range conversation.Messages {
		mapped.Messages = append(mapped.Messages, schemas.ChatMessageSchema{
			Sender:  message.Sender,
			Body:    message.Body,
			Created: message.Created.UnixMilli(),
		})
	}
	return mapped
}

// GetConversation retrieves the caller's conversation with a friend
func GetConversation(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	partner, err := chatPartner(c, email)
	if partner == "" {
		return err
	}

	conversation, err := global.Social.FindOrCreateConversation(global.Context, email, partner)
	if err != nil {
		return errors.HandleInternalError(c, "conversations", err.Error())
	}

	return c.JSON(conversationMapper(conversation))
}

// AddMessage appends a text message to the caller's conversation with a friend
func AddMessage(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	partner, err := chatPartner(c, email)
	if partner == "" {
		return err
	}

	req := new(schemas.AddMessageSchema)

	if err = c.BodyParser(req); err != nil {
		return errors.HandleBadJsonError(c)
	}

	if err = global.Validator.Struct(req); err != nil {
		return errors.HandleValidatorError(c, err)
	}

	pairKey := social.DerivePairKey(email, partner)

	message, err := global.Social.AppendMessage(global.Context, pairKey, email, req.Body)
	if err != nil {
		if err == social.ErrInvalidMessage {
			return errors.HandleBadRequestError(c, "Message", "invalid")
		}
		return errors.HandleInternalError(c, "conversation_messages", err.Error())
	}

	return c.JSON(schemas.ChatMessageSchema{
		Sender:  message.Sender,
		Body:    message.Body,
		Created: message.Created.UnixMilli(),
	})
}
