package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

type JWT struct {
	key    []byte
	expiry time.Duration // 默认有效期
}

type User struct {
	ID      uint
	Expires int64 // Unix second
}

var (
	// ErrTokenExpired 用于在日志里把过期与其他无效情况区分开
	ErrTokenExpired = jwt.ErrTokenExpired

	ErrMissingSubject = errors.New("token has no subject")
)

func New(key string, expiry time.Duration) (*JWT, error) {
	if len(key) == 0 {
		return nil, errors.New("key is empty")
	}

	return &JWT{key: []byte(key), expiry: expiry}, nil
}

func (j *JWT) SignToken(userID uint, extra map[string]any) (string, error) {
	return j.SignTokenWithTTL(userID, j.expiry, extra)
}

func (j *JWT) SignTokenWithTTL(userID uint, ttl time.Duration, extra map[string]any) (string, error) {
	// 创建声明
	claims := jwt.MapClaims{
		"id":  userID,
		"exp": time.Now().Add(ttl).Unix(),
	}
	for k, v := range extra {
		claims[k] = v
	}

	// 创建令牌
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// 签名并返回
	return token.SignedString(j.key)
}

func (j *JWT) ParseUser(tokenString string) (*User, error) {
	// 检查是否有效
	if len(tokenString) == 0 {
		return nil, errors.New("token string is empty")
	}

	// 映射字段
	user := &User{}
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// 只接受对称签名，避免算法混淆
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return j.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse jwt failed: %w", err)
	}

	// 匹配内容
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	id, ok := claims["id"].(float64)
	if !ok {
		return nil, ErrMissingSubject
	}
	exp, _ := claims["exp"].(float64)

	user.ID = uint(id)
	user.Expires = int64(exp)

	return user, nil
}
