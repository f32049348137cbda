package repo

import (
	"fmt"
	"strings"
)

// Username is a value object representing an upstream account login.
// The value is kept verbatim; only blank input is rejected.
type Username struct {
	value string
}

// NewUsername creates a new Username with validation
func NewUsername(login string) (Username, error) {
	if strings.TrimSpace(login) == "" {
		return Username{}, ErrInvalidArgument("username", fmt.Errorf("username cannot be empty"))
	}
	return Username{value: login}, nil
}

func (u Username) String() string {
	return u.value
}

// Name is a value object representing a repository name
type Name struct {
	value string
}

// NewName creates a new Name with validation
func NewName(name string) (Name, error) {
	if strings.TrimSpace(name) == "" {
		return Name{}, ErrInvalidArgument("repository name", fmt.Errorf("repository name cannot be empty"))
	}
	return Name{value: name}, nil
}

func (n Name) String() string {
	return n.value
}
