package services

import (
	"regexp"
	"strings"
	"time"

	"AMALGAM_server/errors"
	"AMALGAM_server/global"
	"AMALGAM_server/helpers"
	"AMALGAM_server/schemas"
	"AMALGAM_server/social"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

var validName = regexp.MustCompile(`^[a-zA-Z0-9_ ]+$`)

// Register creates an account and logs it straight in
func Register(c *fiber.Ctx) error {

	req := new(schemas.RegisterSchema)

	if err := c.BodyParser(req); err != nil {
		return errors.HandleBadJsonError(c)
	}

	if err := global.Validator.Struct(req); err != nil {
		return errors.HandleValidatorError(c, err)
	}

	if !validName.MatchString(req.Name) {
		return errors.HandleBadRequestError(c, "Name", "regex")
	}

	req.Email = strings.ToLower(req.Email)

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errors.HandleInternalError(c, "password", "hashing error")
	}

	account := &social.Account{
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: string(passwordHash),
		Created:      time.Now().UTC(),
	}

	err = global.Store.CreateAccount(global.Context, account)
	if err != nil {
		if err == social.ErrAccountExists {
			return errors.HandleInvalidRequestError(c, "Email", "exists")
		}
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	if err = helpers.CreateSession(c, account.Email); err != nil {
		return errors.HandleInternalError(c, "session", err.Error())
	}

	info, err := helpers.UserInfoMapper(account)
	if err != nil {
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	return c.JSON(info)
}

// Login verifies credentials and opens a session
func Login(c *fiber.Ctx) error {

	req := new(schemas.LoginSchema)

	if err := c.BodyParser(req); err != nil {
		return errors.HandleBadJsonError(c)
	}

	if err := global.Validator.Struct(req); err != nil {
		return errors.HandleValidatorError(c, err)
	}

	req.Email = strings.ToLower(req.Email)

	account, err := global.Store.Account(global.Context, req.Email)
	if err != nil {
		if err == social.ErrAccountNotFound {
			return errors.HandleInvalidRequestError(c, "Credentials", "invalid")
		}
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	if err = bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(req.Password)); err != nil {
		return errors.HandleInvalidRequestError(c, "Credentials", "invalid")
	}

	if err = helpers.CreateSession(c, account.Email); err != nil {
		return errors.HandleInternalError(c, "session", err.Error())
	}

	info, err := helpers.UserInfoMapper(account)
	if err != nil {
		return errors.HandleInternalError(c, "accounts", "ScyllaDB: "+err.Error())
	}

	return c.JSON(info)
}

// Logout destroys the caller's session
func Logout(c *fiber.Ctx) error {

	if err := helpers.DestroySession(c); err != nil {
		return errors.HandleInternalError(c, "session", "Redis: "+err.Error())
	}
	return helpers.OKResponse(c)
}
