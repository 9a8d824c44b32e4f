package config

import (
	"os"
	"time"
)

var JWTSecret []byte
var JWTExpiration time.Duration

// InitJWT reads the signing secret after the environment has been loaded.
func InitJWT() {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "pulsehub-dev-secret-change-this-in-production"
	}
	JWTSecret = []byte(secret)
	JWTExpiration = 24 * time.Hour
}
