package helpers

import (
	"AMALGAM_server/global"
	"AMALGAM_server/schemas"
	"AMALGAM_server/social"
)

// PublicUsers maps account records to their public schema
func PublicUsers(accounts []*social.Account) []schemas.PublicUserSchema {
	users := make([]schemas.PublicUserSchema, 0, len(accounts))
	for _, account := range accounts {
		users = append(users, schemas.PublicUserSchema{
			Name:  account.Name,
			Email: account.Email,
		})
	}
	return users
}

// ResolveEmails loads the public profiles behind a relationship list
func ResolveEmails(emails []string) ([]schemas.PublicUserSchema, error) {
	accounts, err := global.Store.Accounts(global.Context, emails)
	if err != nil {
		return nil, err
	}
	return PublicUsers(accounts), nil
}

// UserInfoMapper builds the authenticated profile with each relationship list
// resolved to public profiles
func UserInfoMapper(account *social.Account) (schemas.UserInfoSchema, error) {

	info := schemas.UserInfoSchema{
		Name:  account.Name,
		Email: account.Email,
	}

	var err error
	if info.Relations.Friends, err = ResolveEmails(account.Friends); err != nil {
		return info, err
	}
	if info.Relations.Requests, err = ResolveEmails(account.Requests); err != nil {
		return info, err
	}
	if info.Relations.Requested, err = ResolveEmails(account.Pending); err != nil {
		return info, err
	}
	return info, nil
}
