package services

import (
	"net/url"

	"AMALGAM_server/errors"
	"AMALGAM_server/global"
	"AMALGAM_server/schemas"
	"AMALGAM_server/social"

	"github.com/gofiber/fiber/v2"
)

// relationTarget decodes the :email route param
func relationTarget(c *fiber.Ctx) (string, error) {
	target, err := url.QueryUnescape(c.Params("email"))
	if err != nil || target == "" {
		return "", errors.HandleBadRequestError(c, "Email", "invalid")
	}
	return target, nil
}

// RequestRelation sends a friend request to the target account. A reverse
// pending request resolves as an immediate mutual acceptance.
func RequestRelation(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	target, err := relationTarget(c)
	if target == "" {
		return err
	}

	result, err := global.Social.SendRequest(global.Context, email, target)
	if err != nil {
		switch err {
		case social.ErrSelfRequest:
			return errors.HandleBadRequestError(c, "Email", "self")
		case social.ErrAccountNotFound:
			return errors.HandleInvalidRequestError(c, "Email", "invalid")
		case social.ErrDuplicateRelationship:
			return errors.HandleInvalidRequestError(c, "Relation", "exists")
		}
		return errors.HandleInternalError(c, "user_relations", err.Error())
	}

	return c.JSON(schemas.RelationUpdateSchema{
		Status: string(result),
	})
}

// AcceptRelation accepts a pending request from the target account
func AcceptRelation(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	target, err := relationTarget(c)
	if target == "" {
		return err
	}

	if err = global.Social.AcceptRequest(global.Context, email, target); err != nil {
		switch err {
		case social.ErrAccountNotFound:
			return errors.HandleInvalidRequestError(c, "Email", "invalid")
		case social.ErrNoSuchRequest:
			return errors.HandleInvalidRequestError(c, "Request", "invalid")
		}
		return errors.HandleInternalError(c, "user_relations", err.Error())
	}

	return c.JSON(schemas.RelationUpdateSchema{
		Status: string(social.RequestAccepted),
	})
}

// DeclineRelation declines a pending request from the target account
func DeclineRelation(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	target, err := relationTarget(c)
	if target == "" {
		return err
	}

	if err = global.Social.DeclineRequest(global.Context, email, target); err != nil {
		switch err {
		case social.ErrAccountNotFound:
			return errors.HandleInvalidRequestError(c, "Email", "invalid")
		case social.ErrNoSuchRequest:
			return errors.HandleInvalidRequestError(c, "Request", "invalid")
		}
		return errors.HandleInternalError(c, "user_relations", err.Error())
	}

	return c.JSON(schemas.RelationUpdateSchema{
		Status: "declined",
	})
}
