package schemas

// RegisterSchema struct
type RegisterSchema struct {
	Name     string `validate:"required,max=30"`
	Email    string `validate:"required,email,max=1000"`
	Password string `validate:"required,min=8,max=72"`
}

// LoginSchema struct
type LoginSchema struct {
	Email    string `validate:"required,email,max=1000"`
	Password string `validate:"required,max=72"`
}
