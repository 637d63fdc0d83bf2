package repository

import (
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
)

func TestNewOrderArchive(t *testing.T) {
	pool := &pgxpool.Pool{}
	archive := NewOrderArchive(pool)
	assert.NotNil(t, archive)
}
