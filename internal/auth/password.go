package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher はbcryptによるパスワードのハッシュ化と照合を行う。
// 状態を持たないため、複数のgoroutineから同時に使用できる。
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher はPasswordHasherを生成する。
// costが0以下の場合はbcrypt.DefaultCostを使用し、範囲外の値はbcryptの許容範囲に丸める。
func NewPasswordHasher(cost int) *PasswordHasher {
	switch {
	case cost <= 0:
		cost = bcrypt.DefaultCost
	case cost < bcrypt.MinCost:
		cost = bcrypt.MinCost
	case cost > bcrypt.MaxCost:
		cost = bcrypt.MaxCost
	}
	return &PasswordHasher{cost: cost}
}

// Cost は使用するbcryptコストを返す。
func (h *PasswordHasher) Cost() int {
	return h.cost
}

// Hash は平文パスワードからソルト付きハッシュを生成する。
// 同じ入力でも呼び出しごとに異なるハッシュを返す。
func (h *PasswordHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", fmt.Errorf("password is empty")
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", fmt.Errorf("password is too long: %w", err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Verify は平文パスワードが保存済みハッシュと一致するかを判定する。
// 比較は定数時間で行われる。
// ハッシュの形式不正・未知のバージョン・不一致はすべてfalseを返す（フェイルクローズ）。
func (h *PasswordHasher) Verify(password, storedHash string) bool {
	if storedHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
}
