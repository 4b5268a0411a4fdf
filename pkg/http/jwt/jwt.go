// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-arcade/socd/pkg/id"
	"github.com/go-arcade/socd/pkg/log"
	"github.com/golang-jwt/jwt/v5"
)

const issuer = "socd"

// ErrTokenExpired is returned by ParseToken for tokens past their exp claim.
var ErrTokenExpired = jwt.ErrTokenExpired

type AuthClaims struct {
	UserId string `json:"userId"`
	jwt.RegisteredClaims
}

// GenToken signs an HS256 access token for userId. The jti claim is unique per token
// so sessions can be revoked one by one.
func GenToken(userId string, secretKey []byte, expire time.Duration) (string, *AuthClaims, error) {
	now := time.Now()
	claims := &AuthClaims{
		UserId: userId,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userId,
			ID:        id.GetUUIDWithoutDashes(),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(expire)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
	if err != nil {
		log.Errorw("sign token failed", "userId", userId, "error", err)
		return "", nil, err
	}
	return token, claims, nil
}

// ParseToken validates signature, issuer and time claims.
func ParseToken(token, secretKey string) (*AuthClaims, error) {
	claims := new(AuthClaims)
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	}, jwt.WithIssuer(issuer))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid || claims.UserId == "" {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
