package auth

import (
	"invitacion/internal/models"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	adminIssuer  = "invitacion-admin"
	deviceIssuer = "invitacion-device"
)

type AppClaims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func GenerateJWT(admin *models.Admin, secret string) (string, error) {
	expirationTime := time.Now().Add(1 * time.Hour)

	claims := &AppClaims{
		Username: admin.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    adminIssuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

func VerifyJWT(tokenString, secret string) (*AppClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AppClaims{}, keyFunc(secret), jwt.WithIssuer(adminIssuer))
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*AppClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrInvalidKey
}

// GenerateDeviceToken signs a device id for the identity cookie. Device
// tokens do not expire; the cookie's max age bounds their lifetime.
func GenerateDeviceToken(deviceID, secret string) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:  deviceID,
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Issuer:   deviceIssuer,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

func VerifyDeviceToken(tokenString, secret string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, keyFunc(secret), jwt.WithIssuer(deviceIssuer))
	if err != nil {
		return "", err
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", jwt.ErrInvalidKey
	}

	return claims.Subject, nil
}

func keyFunc(secret string) jwt.Keyfunc {
	return func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	}
}
