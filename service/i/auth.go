package i

import (
	dmn "github.com/FilipeBHenriques/AlgoVizualizer/domain"
)

type Authenticator interface {
	Register(string, string) error
	SignIn(string, string) (*dmn.User, string, error)
}
