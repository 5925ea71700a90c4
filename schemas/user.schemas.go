package schemas

// PublicUserSchema struct
type PublicUserSchema struct {
	Name  string
	Email string
}

// RelationsSchema struct
type RelationsSchema struct {
	Friends   []PublicUserSchema
	Requests  []PublicUserSchema
	Requested []PublicUserSchema
}

// UserInfoSchema struct
type UserInfoSchema struct {
	Name      string
	Email     string
	Relations RelationsSchema
}
