package service

import (
	"errors"
	"time"

	dmn "github.com/FilipeBHenriques/AlgoVizualizer/domain"
	"github.com/FilipeBHenriques/AlgoVizualizer/service/i"
	"github.com/google/uuid"
)

const sessionTokenLifetime = 24 * time.Hour

type Auth struct {
	userRepo  i.UserRepo
	tokenizer i.Tokenizer
}

// NewAuthService wires the user repository and tokenizer into an
// authenticator.
func NewAuthService(userRepo i.UserRepo, tokenizer i.Tokenizer) (*Auth, error) {
	if userRepo == nil {
		return nil, errors.New("auth service requires a user repository")
	}
	if tokenizer == nil {
		return nil, errors.New("auth service requires a tokenizer")
	}

	return &Auth{
		userRepo:  userRepo,
		tokenizer: tokenizer,
	}, nil
}

func (a *Auth) Register(username, password string) error {
	userConfig := dmn.UserConfig{
		ID:            uuid.New(),
		Username:      username,
		PlainPassword: password,
	}

	user, err := dmn.NewUser(userConfig)
	if err != nil {
		return err
	}

	err = a.userRepo.Save(user)
	if err != nil {
		return err
	}

	return nil
}

func (a *Auth) SignIn(username, password string) (*dmn.User, string, error) {
	user, err := a.userRepo.ByUsername(username)
	if err != nil {
		return nil, "", errors.New("invalid username or password")
	}

	if !user.VerifyPassword(password) {
		return nil, "", errors.New("invalid username or password")
	}

	token, err := a.tokenizer.Generate(map[string]interface{}{
		"userID":   user.ID,
		"username": user.Username,
	}, sessionTokenLifetime)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}
