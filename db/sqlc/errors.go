package db

import "github.com/lib/pq"

const (
	DuplicateEntry      pq.ErrorCode = "23505"
	ForeignKeyViolation pq.ErrorCode = "23503"
	LockNotAvailable    pq.ErrorCode = "55P03"
)
