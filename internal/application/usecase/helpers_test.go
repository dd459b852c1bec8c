package usecase_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/print3d-api/internal/application/session"
	"github.com/jhoicas/print3d-api/internal/domain/auth"
	"github.com/jhoicas/print3d-api/internal/infrastructure/storage"
	"github.com/jhoicas/print3d-api/pkg/logger"
)

// aliceID es el ID que recibe el primer usuario creado en loggedIn.
const aliceID = "u1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// loggedIn abre una sesión en memoria con "alice" autenticada.
func loggedIn(t *testing.T) (*session.Session, *storage.MemoryStore) {
	t.Helper()
	kv := storage.NewMemoryStore()
	n := 0
	reducer := auth.NewReducer(auth.WithIDGenerator(func() string { n++; return fmt.Sprintf("u%d", n) }))
	sess := session.New(kv, "3dp", logger.Nop(), session.WithAuthReducer(reducer))
	require.NoError(t, sess.Open(context.Background()))
	t.Cleanup(sess.Close)
	sess.DispatchAuth(auth.CreateUser{Username: "alice", Password: "hash"})
	sess.DispatchAuth(auth.Login{User: sess.Auth().Users["alice"].User})
	require.True(t, sess.Hydrated())
	return sess, kv
}
