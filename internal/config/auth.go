package config

import "fmt"

// Auth carries the two shared secrets of the admin API: the bearer key
// admins call with, and the bcrypt hash of the key devices must present
// once to register.
type Auth struct {
	AdminKey            string
	RegistrationKeyHash []byte
}

func NewAuth() (*Auth, error) {
	adminKey, err := requireEnv("ADMIN_API_KEY")
	if err != nil {
		return nil, err
	}

	hash, err := requireEnv("DEVICE_REGISTRATION_KEY_HASH")
	if err != nil {
		return nil, err
	}
	if len(hash) == 0 {
		return nil, fmt.Errorf("DEVICE_REGISTRATION_KEY_HASH is empty")
	}

	return &Auth{
		AdminKey:            adminKey,
		RegistrationKeyHash: []byte(hash),
	}, nil
}
