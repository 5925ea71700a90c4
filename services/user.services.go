package services

import (
	"strings"

	"AMALGAM_server/errors"
	"AMALGAM_server/global"
	"AMALGAM_server/helpers"
	"AMALGAM_server/schemas"
	"AMALGAM_server/social"

	"github.com/gofiber/fiber/v2"
)

// Me retrieves the caller's profile and resolved relationship lists
func Me(c *fiber.Ctx) error {

	email := c.Locals("email").(string)

	account, err := global.Store.Account(global.Context, email)
	if err != nil {
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	info, err := helpers.UserInfoMapper(account)
	if err != nil {
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	return c.JSON(info)
}

// Search finds accounts by name or email
func Search(c *fiber.Ctx) error {

	name := c.Query("name")
	email := strings.ToLower(c.Query("email"))

	if name == "" && email == "" {
		return errors.HandleBadRequestError(c, "Query", "name or email required")
	}

	if email != "" {
		account, err := global.Store.Account(global.Context, email)
		if err != nil {
			if err == social.ErrAccountNotFound {
				return c.JSON([]schemas.PublicUserSchema{})
			}
			return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
		}
		return c.JSON(helpers.PublicUsers([]*social.Account{account}))
	}

	accounts, err := global.Store.SearchByName(global.Context, name)
	if err != nil {
		return errors.HandleInternalError(c, "accounts_by_name", "ScyllaDB: "+err.Error())
	}

	return c.JSON(helpers.PublicUsers(accounts))
}
