package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// uniqueViolation はPostgreSQLの一意制約違反のエラーコード。
const uniqueViolation = "23505"

// isUniqueViolation はerrが一意制約違反かを判定する。
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return false
}

// isUUID はidがUUID形式かを判定する。
// UUID形式でないIDで検索するとPostgreSQLが構文エラーを返すため、事前に弾く。
func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
